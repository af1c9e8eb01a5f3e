package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"
)

// GenerateUniqueHash returns a hex id derived from the clock and 16 random bytes.
func GenerateUniqueHash() string {
	randomBytes := make([]byte, 16)
	if _, err := rand.Read(randomBytes); err != nil {
		panic("random number generator failed")
	}
	hashInput := append([]byte(strconv.FormatInt(time.Now().UnixNano(), 10)), randomBytes...)
	hash := sha256.Sum256(hashInput)
	return hex.EncodeToString(hash[:])
}

// ShortID truncates an id for display.
func ShortID(id string) string {
	if len(id) <= 12 {
		return id
	}
	return id[:12]
}
