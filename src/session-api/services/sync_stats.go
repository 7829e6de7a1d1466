package services

import (
	"sync"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/jiaming2012/broker-session/src/session-api/models"
)

const maxSyncSamples = 256

// SyncStats keeps the most recent fetch latencies in milliseconds.
type SyncStats struct {
	mutex   sync.Mutex
	samples stats.Float64Data
}

func (s *SyncStats) Record(d time.Duration) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.samples = append(s.samples, float64(d)/float64(time.Millisecond))
	if len(s.samples) > maxSyncSamples {
		s.samples = s.samples[len(s.samples)-maxSyncSamples:]
	}
}

func (s *SyncStats) Summary() models.SyncStatsSummary {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	summary := models.SyncStatsSummary{Count: len(s.samples)}
	if len(s.samples) == 0 {
		return summary
	}

	summary.MeanMs, _ = stats.Mean(s.samples)
	summary.MedianMs, _ = stats.Median(s.samples)
	summary.P95Ms, _ = stats.Percentile(s.samples, 95)
	summary.MaxMs, _ = stats.Max(s.samples)

	return summary
}

func NewSyncStats() *SyncStats {
	return &SyncStats{}
}
