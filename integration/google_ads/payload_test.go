package google_ads

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"gadstag/model/model"
	U "gadstag/util"
)

func TestBuildAdjustmentRequest(t *testing.T) {
	tagCtx := &TagContext{
		Config: model.TagConfig{
			OpCustomerId:       "123",
			ConversionAction:   "456",
			AuthFlow:           model.AuthFlowOwn,
			Gclid:              "c1",
			ConversionDateTime: "2024-01-01 00:00:00+00:00",
			ConversionValue:    10,
			CurrencyCode:       "EUR",
		},
		Event: U.PropertiesMap{},
	}

	request := BuildAdjustmentRequest(tagCtx)

	assert.Len(t, request.ConversionAdjustments, 1)
	assert.True(t, request.PartialFailure)
	assert.False(t, request.ValidateOnly)

	adjustment := request.ConversionAdjustments[0]
	assert.Equal(t, "customers/123/conversionActions/456", adjustment.ConversionAction)
	assert.Equal(t, model.AdjustmentTypeUnspecified, adjustment.AdjustmentType)
	assert.Equal(t, &model.GclidDateTimePair{
		Gclid:              "c1",
		ConversionDateTime: "2024-01-01 00:00:00+00:00",
	}, adjustment.GclidDateTimePair)
	assert.Equal(t, &model.RestatementValue{
		AdjustedValue: 10,
		CurrencyCode:  "EUR",
	}, adjustment.RestatementValue)
	assert.Nil(t, adjustment.UserIdentifiers)

	// The empty identifier list must not serialize at all.
	encoded, err := json.Marshal(request)
	assert.Nil(t, err)
	assert.NotContains(t, string(encoded), "userIdentifiers")
}

func TestBuildAdjustmentRequestAdjustmentType(t *testing.T) {
	tagCtx := &TagContext{
		Config: model.TagConfig{
			OpCustomerId:             "123",
			ConversionAction:         "456",
			ConversionAdjustmentType: "RESTATEMENT",
		},
		Event: U.PropertiesMap{},
	}

	request := BuildAdjustmentRequest(tagCtx)
	assert.Equal(t, "RESTATEMENT", request.ConversionAdjustments[0].AdjustmentType)
}

func TestBuildAdjustmentRequestValidateOnlyOnDebug(t *testing.T) {
	tagCtx := &TagContext{
		Config: model.TagConfig{
			OpCustomerId:     "123",
			ConversionAction: "456",
			DebugEnabled:     true,
		},
		Event: U.PropertiesMap{},
	}

	assert.True(t, BuildAdjustmentRequest(tagCtx).ValidateOnly)

	// The container debug flag gates logging only. A real adjustment in
	// preview mode still uploads for real.
	tagCtx = &TagContext{
		Config: model.TagConfig{
			OpCustomerId:     "123",
			ConversionAction: "456",
		},
		Event: U.PropertiesMap{},
		Debug: true,
	}
	assert.False(t, BuildAdjustmentRequest(tagCtx).ValidateOnly)
}

func TestBuildRequestURL(t *testing.T) {
	t.Run("OwnFlow", func(t *testing.T) {
		tagCtx := &TagContext{Config: model.TagConfig{
			AuthFlow:     model.AuthFlowOwn,
			OpCustomerId: "1234567890",
		}}
		assert.Equal(t,
			"https://googleads.googleapis.com/v18/customers/1234567890:uploadConversionAdjustments",
			BuildRequestURL(tagCtx, GoogleAdsAPIBaseURL, GoogleAdsAPIVersion))
	})

	t.Run("StapeFlow", func(t *testing.T) {
		tagCtx := &TagContext{
			Config:              model.TagConfig{AuthFlow: model.AuthFlowStape},
			ContainerIdentifier: "abc",
			DefaultDomain:       "example.io",
			ContainerApiKey:     "key123",
		}
		assert.Equal(t,
			"https://abc.example.io/stape-api/key123/v2/gads/auth-proxy/adjustments",
			BuildRequestURL(tagCtx, GoogleAdsAPIBaseURL, GoogleAdsAPIVersion))
	})
}

func TestIsConsentGrantedOrNotRequired(t *testing.T) {
	t.Run("NotRequired", func(t *testing.T) {
		tagCtx := &TagContext{Config: model.TagConfig{}, Event: U.PropertiesMap{}}
		assert.True(t, IsConsentGrantedOrNotRequired(tagCtx))
	})

	t.Run("RequiredAndGranted", func(t *testing.T) {
		tagCtx := &TagContext{
			Config: model.TagConfig{AdStorageConsent: model.ConsentRequired},
			Event: U.PropertiesMap{
				"consent_state": map[string]interface{}{"ad_storage": "granted"},
			},
		}
		assert.True(t, IsConsentGrantedOrNotRequired(tagCtx))
	})

	t.Run("RequiredAndDenied", func(t *testing.T) {
		tagCtx := &TagContext{
			Config: model.TagConfig{AdStorageConsent: model.ConsentRequired},
			Event: U.PropertiesMap{
				"consent_state": map[string]interface{}{"ad_storage": false},
			},
		}
		assert.False(t, IsConsentGrantedOrNotRequired(tagCtx))
	})

	t.Run("RequiredNoSignal", func(t *testing.T) {
		tagCtx := &TagContext{
			Config: model.TagConfig{AdStorageConsent: model.ConsentRequired},
			Event:  U.PropertiesMap{},
		}
		assert.False(t, IsConsentGrantedOrNotRequired(tagCtx))
	})

	t.Run("GcsCode", func(t *testing.T) {
		tagCtx := &TagContext{
			Config: model.TagConfig{AdStorageConsent: model.ConsentRequired},
			Event:  U.PropertiesMap{"x-ga-gcs": "G111"},
		}
		assert.True(t, IsConsentGrantedOrNotRequired(tagCtx))

		tagCtx.Event["x-ga-gcs"] = "G101"
		assert.False(t, IsConsentGrantedOrNotRequired(tagCtx))
	})
}
