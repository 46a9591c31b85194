package util

import (
	"crypto/sha256"
	"fmt"
	"regexp"
)

// HashKeyUsingSha256Checksum returns the hex encoded sha256 digest of data.
func HashKeyUsingSha256Checksum(data string) string {
	sum := sha256.Sum256([]byte(data))
	encryptData := fmt.Sprintf("%x", sum)
	return encryptData
}

var sha256HexRegex = regexp.MustCompile("^[A-Fa-f0-9]{64}$")

// IsSha256Hex tells whether value looks like a hex encoded sha256 digest.
// A 64 hex char plaintext is indistinguishable from a real digest here.
func IsSha256Hex(value string) bool {
	return sha256HexRegex.MatchString(value)
}
