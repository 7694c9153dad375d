package limiter

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCtx(path string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", path, nil)
	return c
}

func TestMethodLimiter_Key(t *testing.T) {
	l := NewMethodLimiter().AddBuckets(
		BucketRule{Key: "/auth", FillInterval: time.Second, Capacity: 2, Quantum: 2},
		BucketRule{Key: "/auth/google/callback", FillInterval: time.Second, Capacity: 1, Quantum: 1},
		BucketRule{Key: "/graphql", FillInterval: time.Second, Capacity: 5, Quantum: 5},
	)

	assert.Equal(t, "/auth", l.Key(newCtx("/api/auth/google")))
	assert.Equal(t, "/auth/google/callback", l.Key(newCtx("/api/auth/google/callback")))
	assert.Equal(t, "/graphql", l.Key(newCtx("/graphql")))
	assert.Equal(t, "", l.Key(newCtx("/api/health")))
}

func TestMethodLimiter_Bucket(t *testing.T) {
	l := NewMethodLimiter().AddBuckets(BucketRule{Key: "/auth", FillInterval: time.Hour, Capacity: 2, Quantum: 1})

	b, ok := l.GetBucket("/auth")
	require.True(t, ok)
	assert.Equal(t, int64(1), b.TakeAvailable(1))
	assert.Equal(t, int64(1), b.TakeAvailable(1))
	assert.Equal(t, int64(0), b.TakeAvailable(1))

	_, ok = l.GetBucket("/missing")
	assert.False(t, ok)
}
