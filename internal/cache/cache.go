// Package cache stores encoded generation responses keyed by request.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Cache defines the interface for response caching.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a cache key from the normalised inputs of a generation request.
func Key(paragraph string, numQuestions int, difficulty string) string {
	hash := sha256.Sum256([]byte(fmt.Sprintf("%d\x00%s\x00%s", numQuestions, difficulty, paragraph)))
	return "teluguqa:v1:" + hex.EncodeToString(hash[:])
}
