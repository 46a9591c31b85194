package google_ads

import (
	"fmt"
	"net/url"

	"gadstag/model/model"
	U "gadstag/util"
)

// BuildAdjustmentRequest assembles the upload payload for one invocation:
// the conversion action resource path, the reconciled attribution fields
// and the merged user identifiers, wrapped in the partial-failure
// envelope.
func BuildAdjustmentRequest(tagCtx *TagContext) *model.AdjustmentRequest {
	data := tagCtx.Config

	adjustment := model.ConversionAdjustment{
		ConversionAction: "customers/" + data.OpCustomerId +
			"/conversionActions/" + data.ConversionAction,
		AdjustmentType: U.GetPropertyValueAsString(U.FirstTruthy(
			data.ConversionAdjustmentType, model.AdjustmentTypeUnspecified)),
	}

	fillConversionAttribution(tagCtx, &adjustment)
	fillUserIdentifiers(tagCtx, &adjustment)

	return &model.AdjustmentRequest{
		ConversionAdjustments: []model.ConversionAdjustment{adjustment},
		PartialFailure:        true,
		ValidateOnly:          data.DebugEnabled,
	}
}

// BuildRequestURL selects the destination by auth flow: the versioned
// per-customer Google Ads endpoint for the own flow, the stape auth proxy
// addressed via the container routing values otherwise.
func BuildRequestURL(tagCtx *TagContext, baseURL, apiVersion string) string {
	if tagCtx.Config.AuthFlow == model.AuthFlowOwn {
		return fmt.Sprintf("%s/v%s/customers/%s:uploadConversionAdjustments",
			baseURL, apiVersion, url.PathEscape(tagCtx.Config.OpCustomerId))
	}

	return fmt.Sprintf("https://%s.%s/stape-api/%s/v2/gads/auth-proxy/adjustments",
		url.PathEscape(tagCtx.ContainerIdentifier),
		url.PathEscape(tagCtx.DefaultDomain),
		url.PathEscape(tagCtx.ContainerApiKey))
}
