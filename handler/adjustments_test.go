package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/oauth2"

	GA "gadstag/integration/google_ads"
	"gadstag/model/model"
	U "gadstag/util"
)

func newTagServiceRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	InitTagServiceRoutes(r)
	return r
}

func trackAdjustment(t *testing.T, r *gin.Engine, payload interface{},
	headers map[string]string) (*httptest.ResponseRecorder, AdjustmentTrackResponse) {

	body, err := json.Marshal(payload)
	assert.Nil(t, err)

	req, err := http.NewRequest(http.MethodPost, "/gads/adjustments",
		bytes.NewReader(body))
	assert.Nil(t, err)
	for name, value := range headers {
		req.Header.Set(name, value)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var response AdjustmentTrackResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	return w, response
}

func useBackend(t *testing.T, status int) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}))
	t.Cleanup(server.Close)

	SetAdjustmentsDispatcher(&GA.Dispatcher{
		TokenSource: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "test-token"}),
		BaseURL:     server.URL,
	})
	t.Cleanup(func() { SetAdjustmentsDispatcher(nil) })
	return server
}

func validPayload() AdjustmentTrackPayload {
	return AdjustmentTrackPayload{
		TagConfig: model.TagConfig{
			CustomerId:       "111",
			OpCustomerId:     "123",
			ConversionAction: "456",
			AuthFlow:         model.AuthFlowOwn,
			DeveloperToken:   "dev-token",
			Gclid:            "c1",
		},
		EventData: U.PropertiesMap{},
	}
}

func TestStatusHandler(t *testing.T) {
	r := newTagServiceRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/status", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTrackAdjustmentInvalidJSON(t *testing.T) {
	r := newTagServiceRouter()

	req, _ := http.NewRequest(http.MethodPost, "/gads/adjustments",
		bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTrackAdjustmentMissingRequiredConfig(t *testing.T) {
	r := newTagServiceRouter()

	payload := validPayload()
	payload.TagConfig.OpCustomerId = ""
	w, response := trackAdjustment(t, r, payload, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotEmpty(t, response.Error)

	payload = validPayload()
	payload.TagConfig.ConversionAction = ""
	w, _ = trackAdjustment(t, r, payload, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTrackAdjustmentConsentDenied(t *testing.T) {
	useBackend(t, http.StatusOK)
	r := newTagServiceRouter()

	payload := validPayload()
	payload.TagConfig.AdStorageConsent = model.ConsentRequired
	payload.EventData = U.PropertiesMap{
		"consent_state": map[string]interface{}{"ad_storage": false},
	}

	w, response := trackAdjustment(t, r, payload, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, response.Message, "skipped")
}

func TestTrackAdjustmentSuccess(t *testing.T) {
	useBackend(t, http.StatusOK)
	r := newTagServiceRouter()

	w, response := trackAdjustment(t, r, validPayload(), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, http.StatusOK, response.StatusCode)
	assert.Contains(t, response.Message, "uploaded")
}

func TestTrackAdjustmentBackendRejection(t *testing.T) {
	useBackend(t, http.StatusBadRequest)
	r := newTagServiceRouter()

	w, response := trackAdjustment(t, r, validPayload(), nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, http.StatusBadRequest, response.StatusCode)
	assert.NotEmpty(t, response.Error)
}

func TestTrackAdjustmentValidateOnly(t *testing.T) {
	var gotBody model.AdjustmentRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	SetAdjustmentsDispatcher(&GA.Dispatcher{
		TokenSource: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "test-token"}),
		BaseURL:     server.URL,
	})
	t.Cleanup(func() { SetAdjustmentsDispatcher(nil) })

	r := newTagServiceRouter()

	// The preview header only turns on debug logging, the upload stays a
	// real one.
	w, _ := trackAdjustment(t, r, validPayload(),
		map[string]string{"x-gtm-server-preview": "enabled"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, gotBody.ValidateOnly)

	// The config debug flag is what requests server-side validation only.
	payload := validPayload()
	payload.TagConfig.DebugEnabled = true
	w, _ = trackAdjustment(t, r, payload, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, gotBody.ValidateOnly)
}
