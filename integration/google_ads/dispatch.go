package google_ads

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"

	"gadstag/model/model"
	"gadstag/taglog"
	U "gadstag/util"
)

const (
	GoogleAdsAPIBaseURL = "https://googleads.googleapis.com"
	GoogleAdsAPIVersion = "18"

	// OAuth scope of the bearer credential on the own auth flow.
	AdwordsOAuthScope = "https://www.googleapis.com/auth/adwords"

	tagName = "GAdsConversionAdjustments"
)

// DispatchResult is the single terminal outcome of one upload attempt.
// Success means a response status in [200,400), anything else including
// transport failure is a failure.
type DispatchResult struct {
	StatusCode int
	Headers    http.Header
	Body       string
	Success    bool
}

// Dispatcher sends assembled adjustment requests. The auth-flow branch
// only decides the destination URL and the header set, the send path is
// shared.
type Dispatcher struct {
	Client      *http.Client
	TokenSource oauth2.TokenSource
	Logger      *taglog.Dispatcher

	// Overridable for tests, default to the public endpoint.
	BaseURL    string
	APIVersion string
}

func (d *Dispatcher) client() *http.Client {
	if d.Client != nil {
		return d.Client
	}
	return http.DefaultClient
}

func (d *Dispatcher) baseURL() string {
	if d.BaseURL != "" {
		return d.BaseURL
	}
	return GoogleAdsAPIBaseURL
}

func (d *Dispatcher) apiVersion() string {
	if d.APIVersion != "" {
		return d.APIVersion
	}
	return GoogleAdsAPIVersion
}

// buildRequestHeaders returns the outbound header set for the invocation.
// Both flows send the content type and login customer id, the own flow
// additionally sends the developer token and a bearer credential.
func (d *Dispatcher) buildRequestHeaders(tagCtx *TagContext) (map[string]string, error) {
	headers := map[string]string{
		"Content-Type":      "application/json",
		"login-customer-id": tagCtx.Config.CustomerId,
	}

	if tagCtx.Config.AuthFlow != model.AuthFlowOwn {
		return headers, nil
	}

	headers["developer-token"] = tagCtx.Config.DeveloperToken

	if d.TokenSource == nil {
		return nil, errors.New("no token source configured for the own auth flow")
	}
	token, err := d.TokenSource.Token()
	if err != nil {
		return nil, errors.Wrap(err, "failed to mint google ads access token")
	}
	headers["Authorization"] = "Bearer " + token.AccessToken

	return headers, nil
}

// SendAdjustments issues the single outbound POST of the invocation and
// maps its completion to exactly one success or failure outcome. The
// request is logged right before dispatch and the response right after.
func (d *Dispatcher) SendAdjustments(ctx context.Context, tagCtx *TagContext,
	payload *model.AdjustmentRequest) (*DispatchResult, error) {

	postURL := BuildRequestURL(tagCtx, d.baseURL(), d.apiVersion())

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal adjustment request")
	}

	headers, err := d.buildRequestHeaders(tagCtx)
	if err != nil {
		return nil, err
	}

	d.logEvent(tagCtx, &model.LogEvent{
		Name:          tagName,
		Type:          model.LogEventTypeRequest,
		TraceId:       tagCtx.TraceId,
		EventName:     U.GetPropertyValueAsString(tagCtx.Config.ConversionActionId),
		RequestMethod: http.MethodPost,
		RequestUrl:    postURL,
		RequestBody:   payload,
	})

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, postURL,
		bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create adjustment request")
	}
	for name, value := range headers {
		request.Header.Set(name, value)
	}

	response, err := d.client().Do(request)
	if err != nil {
		// Transport failure is indistinguishable from an API rejection
		// in the outcome, the detail lives only in the log record.
		d.logEvent(tagCtx, &model.LogEvent{
			Name:         tagName,
			Type:         model.LogEventTypeResponse,
			TraceId:      tagCtx.TraceId,
			EventName:    U.GetPropertyValueAsString(tagCtx.Config.ConversionActionId),
			ResponseBody: err.Error(),
		})
		return &DispatchResult{Success: false, Body: err.Error()}, nil
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		responseBody = []byte{}
	}

	d.logEvent(tagCtx, &model.LogEvent{
		Name:               tagName,
		Type:               model.LogEventTypeResponse,
		TraceId:            tagCtx.TraceId,
		EventName:          U.GetPropertyValueAsString(tagCtx.Config.ConversionActionId),
		ResponseStatusCode: response.StatusCode,
		ResponseHeaders:    response.Header,
		ResponseBody:       string(responseBody),
	})

	return &DispatchResult{
		StatusCode: response.StatusCode,
		Headers:    response.Header,
		Body:       string(responseBody),
		Success:    response.StatusCode >= 200 && response.StatusCode < 400,
	}, nil
}

func (d *Dispatcher) logEvent(tagCtx *TagContext, event *model.LogEvent) {
	if d.Logger == nil {
		return
	}

	d.Logger.Dispatch(event, taglog.Options{
		Console:  taglog.Policy(tagCtx.Config.LogType),
		BigQuery: taglog.Policy(tagCtx.Config.BigQueryLogType),
		Kafka:    taglog.Policy(tagCtx.Config.KafkaLogType),
		Debug:    tagCtx.Debug,
	})
}
