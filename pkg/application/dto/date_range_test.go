package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateRange(t *testing.T) {
	t.Run("both ends", func(t *testing.T) {
		r, err := ParseDateRange("2025-06-01", "2025-06-02", time.UTC)
		require.NoError(t, err)
		require.True(t, r.IsSet())
		assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), *r.Start)
		assert.True(t, r.Contains(time.Date(2025, 6, 2, 23, 59, 59, 0, time.UTC)))
		assert.False(t, r.Contains(time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("empty is unset", func(t *testing.T) {
		r, err := ParseDateRange("", "", nil)
		require.NoError(t, err)
		assert.False(t, r.IsSet())
	})

	t.Run("start only does not filter", func(t *testing.T) {
		r, err := ParseDateRange("2025-06-01", "", time.UTC)
		require.NoError(t, err)
		assert.NotNil(t, r.Start)
		assert.False(t, r.IsSet())
	})

	tests := []struct {
		name       string
		start, end string
	}{
		{"bad start", "06/01/2025", ""},
		{"bad end", "", "tomorrow"},
		{"end before start", "2025-06-02", "2025-06-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDateRange(tt.start, tt.end, time.UTC)
			assert.Error(t, err)
		})
	}
}
