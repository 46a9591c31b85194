package google_ads

import (
	"gadstag/model/model"
	U "gadstag/util"

	log "github.com/sirupsen/logrus"
)

// fillConversionAttribution reconciles the conversion-level fields from
// tag configuration and event data. Configuration wins over event data,
// every field resolves through an ordered fallback chain.
func fillConversionAttribution(tagCtx *TagContext, adjustment *model.ConversionAdjustment) {
	data := tagCtx.Config

	gclid := U.FirstTruthy(data.Gclid, tagCtx.eventValue("gclid"))
	conversionDateTime := U.FirstTruthy(data.ConversionDateTime,
		tagCtx.eventValue("conversionDateTime"))
	if conversionDateTime == nil {
		conversionDateTime = U.FormatTimestampMillis(tagCtx.nowMillis())
	}

	if U.IsTruthy(gclid) && U.IsTruthy(conversionDateTime) {
		adjustment.GclidDateTimePair = &model.GclidDateTimePair{
			Gclid:              U.GetPropertyValueAsString(gclid),
			ConversionDateTime: U.GetPropertyValueAsString(conversionDateTime),
		}
	}

	rawValue := U.FirstTruthy(data.ConversionValue,
		tagCtx.eventValue("conversionValue"),
		tagCtx.eventValue("value"),
		tagCtx.eventValue("x-ga-mp1-ev"),
		tagCtx.eventValue("x-ga-mp1-tr"),
		1)
	adjustedValue, err := U.GetPropertyValueAsFloat64(rawValue)
	if err != nil {
		// Unparseable values drop the restatement, same as NaN would.
		log.WithError(err).WithField("value", rawValue).
			Error("Failed to coerce conversion value to number.")
		adjustedValue = 0
	}

	currencyCode := U.FirstTruthy(data.CurrencyCode,
		tagCtx.eventValue("currencyCode"),
		tagCtx.eventValue("currency"),
		"USD")

	if adjustedValue != 0 && U.IsTruthy(currencyCode) {
		adjustment.RestatementValue = &model.RestatementValue{
			AdjustedValue: adjustedValue,
			CurrencyCode:  U.GetPropertyValueAsString(currencyCode),
		}
	}

	orderId := U.FirstTruthy(data.OrderId,
		tagCtx.eventValue("orderId"),
		tagCtx.eventValue("order_id"),
		tagCtx.eventValue("transaction_id"))
	if U.IsTruthy(orderId) {
		adjustment.OrderId = U.GetPropertyValueAsString(orderId)
	}

	// No "now" fallback here, an adjustment without a date-time is
	// submitted without the field.
	adjustmentDateTime := U.FirstTruthy(data.AdjustmentDateTime,
		tagCtx.eventValue("adjustmentDateTime"))
	if U.IsTruthy(adjustmentDateTime) {
		adjustment.AdjustmentDateTime = U.GetPropertyValueAsString(adjustmentDateTime)
	}

	userAgent := U.FirstTruthy(data.UserAgent, tagCtx.eventValue("userAgent"))
	if U.IsTruthy(userAgent) {
		adjustment.UserAgent = U.GetPropertyValueAsString(userAgent)
	}
}
