package handler

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	C "gadstag/config"
	GA "gadstag/integration/google_ads"
	"gadstag/model/model"
	"gadstag/taglog"
	U "gadstag/util"
)

type AdjustmentTrackPayload struct {
	TagConfig model.TagConfig `json:"tag_config"`
	EventData U.PropertiesMap `json:"event_data"`
}

type AdjustmentTrackResponse struct {
	Message    string `json:"message,omitempty"`
	Error      string `json:"error,omitempty"`
	StatusCode int    `json:"status_code,omitempty"`
}

var adjustmentsDispatcher *GA.Dispatcher
var dispatcherOnce sync.Once

// SetAdjustmentsDispatcher overrides the dispatcher. For tests.
func SetAdjustmentsDispatcher(dispatcher *GA.Dispatcher) {
	adjustmentsDispatcher = dispatcher
	dispatcherOnce = sync.Once{}
}

func getAdjustmentsDispatcher() *GA.Dispatcher {
	dispatcherOnce.Do(func() {
		if adjustmentsDispatcher != nil {
			return
		}

		logger := &taglog.Dispatcher{}
		logger.AddSink("console",
			func(o taglog.Options) taglog.Policy { return o.Console },
			taglog.IdentityTransform, taglog.WriteConsole)

		dispatcher := &GA.Dispatcher{Logger: logger}

		if config := C.GetConfig(); config != nil {
			dispatcher.APIVersion = config.GAdsAPIVersion
		}
		if services := C.GetServices(); services != nil {
			dispatcher.TokenSource = services.TokenSource

			if services.BigQueryClient != nil {
				config := C.GetConfig()
				sink := taglog.NewBigQuerySink(services.BigQueryClient,
					config.BigQuery.Dataset, config.BigQuery.Table)
				logger.AddSink("bigquery",
					func(o taglog.Options) taglog.Policy { return o.BigQuery },
					taglog.TableTransform, sink.Write)
			}
			if services.KafkaSink != nil {
				logger.AddSink("kafka",
					func(o taglog.Options) taglog.Policy { return o.Kafka },
					taglog.TableTransform, services.KafkaSink.Write)
			}
		}

		adjustmentsDispatcher = dispatcher
	})
	return adjustmentsDispatcher
}

// TrackAdjustmentHandler runs one tag invocation: decode the payload,
// gate on consent, build the adjustment request and dispatch it, mapping
// the outcome to exactly one terminal response.
func TrackAdjustmentHandler(c *gin.Context) {
	logCtx := log.WithFields(log.Fields{
		"reqId": c.Request.Header.Get("X-Req-Id"),
	})

	var payload AdjustmentTrackPayload
	if err := json.NewDecoder(c.Request.Body).Decode(&payload); err != nil {
		logCtx.WithError(err).Error("Failed to decode adjustment track payload.")
		c.JSON(http.StatusBadRequest,
			AdjustmentTrackResponse{Error: "Invalid payload."})
		return
	}

	if payload.TagConfig.OpCustomerId == "" || payload.TagConfig.ConversionAction == "" {
		c.JSON(http.StatusBadRequest, AdjustmentTrackResponse{
			Error: "Missing op_customer_id or conversion_action."})
		return
	}

	tagCtx := &GA.TagContext{
		Config:              payload.TagConfig,
		Event:               payload.EventData,
		TraceId:             c.Request.Header.Get("trace-id"),
		ContainerIdentifier: c.Request.Header.Get("x-gtm-identifier"),
		DefaultDomain:       c.Request.Header.Get("x-gtm-default-domain"),
		ContainerApiKey:     c.Request.Header.Get("x-gtm-api-key"),
		Debug: payload.TagConfig.DebugEnabled ||
			c.Request.Header.Get("x-gtm-server-preview") != "",
	}

	if !GA.IsConsentGrantedOrNotRequired(tagCtx) {
		// Not an error, the adjustment is skipped deliberately.
		c.JSON(http.StatusOK, AdjustmentTrackResponse{
			Message: "Consent not granted. Conversion adjustment skipped."})
		return
	}

	request := GA.BuildAdjustmentRequest(tagCtx)

	result, err := getAdjustmentsDispatcher().SendAdjustments(
		c.Request.Context(), tagCtx, request)
	if err != nil {
		logCtx.WithError(err).Error("Failed to dispatch conversion adjustment.")
		c.JSON(http.StatusInternalServerError,
			AdjustmentTrackResponse{Error: "Failed to dispatch conversion adjustment."})
		return
	}

	if !result.Success {
		c.JSON(http.StatusBadGateway, AdjustmentTrackResponse{
			Error:      "Conversion adjustment upload failed.",
			StatusCode: result.StatusCode,
		})
		return
	}

	c.JSON(http.StatusOK, AdjustmentTrackResponse{
		Message:    "Conversion adjustment uploaded.",
		StatusCode: result.StatusCode,
	})
}
