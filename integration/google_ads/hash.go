package google_ads

import (
	"strings"

	U "gadstag/util"
)

var phoneNumberCleaner = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")

// HashUserData normalizes and hashes a raw identifier value keyed by its
// field name. Slices and maps are hashed leaf-wise preserving shape. Falsy
// values pass through unchanged, they mean "no identifier". Strings that
// already look like a sha256 digest are returned as-is, which makes
// hashing idempotent but also lets a coincidental 64 hex char plaintext
// through unhashed.
func HashUserData(key string, value interface{}) interface{} {
	if !U.IsTruthy(value) {
		return value
	}

	switch typed := value.(type) {
	case []interface{}:
		hashed := make([]interface{}, 0, len(typed))
		for _, element := range typed {
			hashed = append(hashed, HashUserData(key, element))
		}
		return hashed
	case map[string]interface{}:
		hashed := make(map[string]interface{}, len(typed))
		for name, element := range typed {
			hashed[name] = HashUserData(key, element)
		}
		return hashed
	case string:
		// The web container serializes absent values to the literal
		// string "undefined".
		if typed == "undefined" {
			return nil
		}
	}

	stringValue := U.GetPropertyValueAsString(value)
	if U.IsSha256Hex(stringValue) {
		return stringValue
	}

	stringValue = strings.ToLower(strings.TrimSpace(stringValue))

	if key == "hashedPhoneNumber" {
		stringValue = phoneNumberCleaner.Replace(stringValue)
	} else if key == "hashedEmail" {
		parts := strings.Split(stringValue, "@")
		if len(parts) > 1 && (parts[1] == "gmail.com" || parts[1] == "googlemail.com") {
			// Gmail ignores dots in the local part.
			stringValue = strings.ReplaceAll(parts[0], ".", "") + "@" + parts[1]
		}
	}

	return U.HashKeyUsingSha256Checksum(stringValue)
}
