package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewFixed(t *testing.T) {
	at := time.Date(2025, 6, 2, 8, 5, 0, 0, time.UTC)
	c := NewFixed(at)
	assert.Equal(t, at, c.Now())
	assert.Equal(t, at, c.Now())
}

func TestNewSystem_UsesLocation(t *testing.T) {
	loc := time.FixedZone("store", -5*60*60)
	now := NewSystem(loc).Now()
	assert.Equal(t, loc, now.Location())
	assert.WithinDuration(t, time.Now(), now, time.Minute)

	assert.Equal(t, time.Local, NewSystem(nil).Now().Location())
}
