package trino

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinearBackoffSchedule(t *testing.T) {
	b := linearBackoff(500 * time.Millisecond)

	for i, want := range []time.Duration{
		1000 * time.Millisecond,
		1500 * time.Millisecond,
		2000 * time.Millisecond,
	} {
		got, stop := b.Next()
		require.False(t, stop, "delay %d", i)
		assert.Equal(t, want, got, "delay %d", i)
	}
}
