package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHMACSHA256Hex(t *testing.T) {
	a := HMACSHA256Hex("secret", "export:orders")
	b := HMACSHA256Hex("secret", "export:orders")
	c := HMACSHA256Hex("other", "export:orders")

	assert.Len(t, a, 64)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestISO(t *testing.T) {
	ts := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-03-01T10:00:00Z", ISO(ts))

	back, err := time.Parse(time.RFC3339, ISO(ts))
	require.NoError(t, err)
	assert.True(t, back.Equal(ts))
}
