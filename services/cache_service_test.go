package services

import (
	"errors"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestIsRetryableCacheError(t *testing.T) {
	assert.False(t, isRetryableCacheError(nil))

	// A cache miss is a result, not a fault
	assert.False(t, isRetryableCacheError(redis.Nil))

	assert.True(t, isRetryableCacheError(errors.New("dial tcp: connection refused")))
	assert.True(t, isRetryableCacheError(errors.New("read tcp: i/o timeout")))
	assert.True(t, isRetryableCacheError(errors.New("write: broken pipe")))

	assert.False(t, isRetryableCacheError(errors.New("WRONGTYPE Operation against a key holding the wrong kind of value")))
}
