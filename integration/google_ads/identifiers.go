package google_ads

import (
	"gadstag/model/model"
	U "gadstag/util"
)

// fillUserIdentifiers merges the configured user data list with
// identifiers derived from event data. At most one entry per identifier
// name, configured entries always precede derived ones and suppress
// derivation of the same name.
func fillUserIdentifiers(tagCtx *TagContext, adjustment *model.ConversionAdjustment) {
	identifiers := make([]model.UserIdentifier, 0)
	usedIdentifiers := make(map[string]bool)

	userEventData := U.PropertiesMap{}
	if nested, ok := tagCtx.eventValue("user_data").(map[string]interface{}); ok {
		userEventData = nested
	}

	for _, entry := range tagCtx.Config.UserDataList {
		if entry.Value == nil || entry.Value == "" {
			continue
		}

		identifiers = append(identifiers, model.UserIdentifier{
			entry.Name:             HashUserData(entry.Name, entry.Value),
			"userIdentifierSource": entry.UserIdentifierSource,
		})
		usedIdentifiers[entry.Name] = true
	}

	hashedEmail := U.FirstTruthy(
		tagCtx.eventValue("hashedEmail"),
		tagCtx.eventValue("email"),
		tagCtx.eventValue("email_address"),
		userEventData["email"],
		userEventData["email_address"])
	if !usedIdentifiers["hashedEmail"] && U.IsTruthy(hashedEmail) {
		identifiers = append(identifiers, model.UserIdentifier{
			"hashedEmail":          HashUserData("hashedEmail", hashedEmail),
			"userIdentifierSource": model.UserIdentifierSourceUnspecified,
		})
	}

	hashedPhoneNumber := U.FirstTruthy(
		tagCtx.eventValue("phone"),
		tagCtx.eventValue("phone_number"),
		userEventData["phone"],
		userEventData["phone_number"])
	if !usedIdentifiers["hashedPhoneNumber"] && U.IsTruthy(hashedPhoneNumber) {
		identifiers = append(identifiers, model.UserIdentifier{
			"hashedPhoneNumber":    HashUserData("hashedPhoneNumber", hashedPhoneNumber),
			"userIdentifierSource": model.UserIdentifierSourceUnspecified,
		})
	}

	// The remaining identifier kinds pass through raw.
	mobileId := tagCtx.eventValue("mobileId")
	if !usedIdentifiers["mobileId"] && U.IsTruthy(mobileId) {
		identifiers = append(identifiers, model.UserIdentifier{
			"mobileId":             mobileId,
			"userIdentifierSource": model.UserIdentifierSourceUnspecified,
		})
	}

	thirdPartyUserId := tagCtx.eventValue("thirdPartyUserId")
	if !usedIdentifiers["thirdPartyUserId"] && U.IsTruthy(thirdPartyUserId) {
		identifiers = append(identifiers, model.UserIdentifier{
			"thirdPartyUserId":     thirdPartyUserId,
			"userIdentifierSource": model.UserIdentifierSourceUnspecified,
		})
	}

	addressInfo := tagCtx.eventValue("addressInfo")
	if !usedIdentifiers["addressInfo"] && U.IsTruthy(addressInfo) {
		identifiers = append(identifiers, model.UserIdentifier{
			"addressInfo":          addressInfo,
			"userIdentifierSource": model.UserIdentifierSourceUnspecified,
		})
	}

	if len(identifiers) > 0 {
		adjustment.UserIdentifiers = identifiers
	}
}
