package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncStats(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		summary := NewSyncStats().Summary()
		assert.Equal(t, 0, summary.Count)
		assert.Zero(t, summary.MeanMs)
	})

	t.Run("summary in milliseconds", func(t *testing.T) {
		s := NewSyncStats()
		for _, ms := range []int{100, 200, 300, 400} {
			s.Record(time.Duration(ms) * time.Millisecond)
		}

		summary := s.Summary()
		require.Equal(t, 4, summary.Count)
		assert.InDelta(t, 250, summary.MeanMs, 0.001)
		assert.InDelta(t, 250, summary.MedianMs, 0.001)
		assert.InDelta(t, 400, summary.MaxMs, 0.001)
		assert.LessOrEqual(t, summary.P95Ms, summary.MaxMs)
	})

	t.Run("keeps the most recent samples", func(t *testing.T) {
		s := NewSyncStats()
		for i := 0; i < maxSyncSamples+10; i++ {
			s.Record(time.Millisecond)
		}
		s.Record(time.Second)

		summary := s.Summary()
		assert.Equal(t, maxSyncSamples, summary.Count)
		assert.InDelta(t, 1000, summary.MaxMs, 0.001)
	})
}
