package util

import (
	"fmt"
	"strconv"

	log "github.com/sirupsen/logrus"
)

// PropertiesMap is an untyped bag of event attributes. Any field may be
// absent and types must be checked before use.
type PropertiesMap map[string]interface{}

func GetPropertyValueAsString(value interface{}) string {
	if value == nil {
		return ""
	}

	switch valueType := value.(type) {
	case float32, float64:
		return fmt.Sprintf("%0.0f", value)
	case int, int32, int64:
		return fmt.Sprintf("%v", value)
	case string:
		return value.(string)
	case bool:
		return strconv.FormatBool(value.(bool))
	default:
		log.Error("Invalid value type on GetPropertyValueAsString : ", valueType)
		return ""
	}
}

func GetPropertyValueAsFloat64(value interface{}) (float64, error) {
	if value == nil {
		return 0, nil
	}

	switch valueType := value.(type) {
	case float64:
		return value.(float64), nil
	case float32:
		return float64(value.(float32)), nil
	case int:
		return float64(value.(int)), nil
	case int32:
		return float64(value.(int32)), nil
	case int64:
		return float64(value.(int64)), nil
	case string:
		valueString := value.(string)
		if valueString == "" {
			return 0, nil
		}

		floatValue, err := strconv.ParseFloat(valueString, 64)
		if err != nil {
			return 0, err
		}
		return floatValue, err
	default:
		return 0, fmt.Errorf("invalid property value type %v", valueType)
	}
}

// IsTruthy mirrors javascript truthiness for the value types that survive
// JSON decoding. nil, empty string, numeric zero and false are falsy,
// everything else (including empty maps and slices) is truthy.
func IsTruthy(value interface{}) bool {
	if value == nil {
		return false
	}

	switch v := value.(type) {
	case string:
		return v != ""
	case bool:
		return v
	case int:
		return v != 0
	case int32:
		return v != 0
	case int64:
		return v != 0
	case float32:
		return v != 0
	case float64:
		return v != 0
	default:
		return true
	}
}

// FirstTruthy returns the first truthy value from the ordered fallback
// chain, or nil when none qualifies.
func FirstTruthy(values ...interface{}) interface{} {
	for _, value := range values {
		if IsTruthy(value) {
			return value
		}
	}
	return nil
}
