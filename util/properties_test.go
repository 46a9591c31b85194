package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetPropertyValueAsString(t *testing.T) {
	assert.Equal(t, "", GetPropertyValueAsString(nil))
	assert.Equal(t, "value1", GetPropertyValueAsString("value1"))
	assert.Equal(t, "5", GetPropertyValueAsString(5))
	assert.Equal(t, "5", GetPropertyValueAsString(float64(5)))
	assert.Equal(t, "true", GetPropertyValueAsString(true))
}

func TestGetPropertyValueAsFloat64(t *testing.T) {
	value, err := GetPropertyValueAsFloat64(float64(10.5))
	assert.Nil(t, err)
	assert.Equal(t, 10.5, value)

	value, err = GetPropertyValueAsFloat64("2.5")
	assert.Nil(t, err)
	assert.Equal(t, 2.5, value)

	value, err = GetPropertyValueAsFloat64(nil)
	assert.Nil(t, err)
	assert.Equal(t, float64(0), value)

	_, err = GetPropertyValueAsFloat64("not-a-number")
	assert.NotNil(t, err)
}

func TestIsTruthy(t *testing.T) {
	assert.False(t, IsTruthy(nil))
	assert.False(t, IsTruthy(""))
	assert.False(t, IsTruthy(0))
	assert.False(t, IsTruthy(float64(0)))
	assert.False(t, IsTruthy(false))

	assert.True(t, IsTruthy("x"))
	assert.True(t, IsTruthy(1))
	assert.True(t, IsTruthy(true))
	assert.True(t, IsTruthy(map[string]interface{}{}))
	assert.True(t, IsTruthy([]interface{}{}))
}

func TestFirstTruthy(t *testing.T) {
	assert.Equal(t, "a", FirstTruthy("", nil, "a", "b"))
	assert.Equal(t, 1, FirstTruthy(0, "", 1))
	assert.Nil(t, FirstTruthy("", nil, 0))
	assert.Nil(t, FirstTruthy())
}

func TestIsSha256Hex(t *testing.T) {
	assert.True(t, IsSha256Hex(HashKeyUsingSha256Checksum("value1")))
	assert.False(t, IsSha256Hex("value1"))
	assert.False(t, IsSha256Hex(HashKeyUsingSha256Checksum("value1")+"0"))
}

func TestHashKeyUsingSha256Checksum(t *testing.T) {
	assert.Equal(t,
		"9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08",
		HashKeyUsingSha256Checksum("test"))
}
