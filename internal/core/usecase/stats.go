package usecase

import "sync/atomic"

// Stats counts pipeline outcomes across the process lifetime. All counters are
// safe for concurrent update.
type Stats struct {
	processed  atomic.Int64
	classified atomic.Int64
	extracted  atomic.Int64
	errors     atomic.Int64
}

// StatsSnapshot is a point-in-time view of the counters with derived ratios.
type StatsSnapshot struct {
	Processed  int64   `json:"processed"`
	Classified int64   `json:"classified"`
	Extracted  int64   `json:"extracted"`
	Errors     int64   `json:"errors"`
	Accuracy   float64 `json:"accuracy"`
	ErrorRate  float64 `json:"errorRate"`
}

// Snapshot reads the counters once. Accuracy is extracted over classified,
// ErrorRate is errors over processed; both are zero when the denominator is.
func (s *Stats) Snapshot() StatsSnapshot {
	snap := StatsSnapshot{
		Processed:  s.processed.Load(),
		Classified: s.classified.Load(),
		Extracted:  s.extracted.Load(),
		Errors:     s.errors.Load(),
	}
	if snap.Classified > 0 {
		snap.Accuracy = float64(snap.Extracted) / float64(snap.Classified)
	}
	if snap.Processed > 0 {
		snap.ErrorRate = float64(snap.Errors) / float64(snap.Processed)
	}
	return snap
}
