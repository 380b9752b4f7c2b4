package breaker

import (
	"context"
	"encoding/json"
	"time"
)

// Store is the persistence backend a circuit breaker delegates its state
// reads and writes to. Any backend satisfying this interface can hold
// breaker state; Incr must be atomic on the backend so concurrent failure
// recording never loses a count.
type Store interface {
	// Get returns the raw value for key. The second return is false when
	// the key does not exist or has expired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value under key. Strings and byte slices pass through
	// raw; everything else is JSON-encoded. A zero ttl means no expiry.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Incr atomically increments the integer at key, creating it at 0
	// first when absent, and returns the new value.
	Incr(ctx context.Context, key string) (int64, error)

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// encodeValue applies the raw-string/bytes pass-through rule shared by all
// store implementations.
func encodeValue(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return json.Marshal(v)
	}
}
