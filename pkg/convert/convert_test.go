package convert

import (
	"testing"
	"time"

	"github.com/haierkeys/trade-journal-service/pkg/timex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrTo(t *testing.T) {
	assert.Equal(t, 42, StrTo(" 42 ").MustInt())
	assert.Equal(t, 0, StrTo("x").MustInt())

	d, err := StrTo("1.23456").Decimal()
	require.NoError(t, err)
	assert.Equal(t, "1.23456", d.String())

	_, err = StrTo("1.2.3").Decimal()
	assert.Error(t, err)
}

func TestCopy(t *testing.T) {
	type src struct {
		ID        string
		Count     int
		CreatedAt time.Time
	}
	type dst struct {
		ID        string
		Count     int
		CreatedAt timex.Time
	}

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	var out dst
	require.NoError(t, Copy(&out, &src{ID: "a", Count: 3, CreatedAt: now}))

	assert.Equal(t, "a", out.ID)
	assert.Equal(t, 3, out.Count)
	assert.Equal(t, timex.Time(now), out.CreatedAt)
}
