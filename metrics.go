package lloyd

import (
	"math"
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    rounds prometheus.Counter
//	    runs   prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordRound(change float64, duration time.Duration) {
//	    p.rounds.Inc()
//	}
type MetricsCollector interface {
	// RecordLoad is called after the points are loaded.
	// count is the number of points, err is nil if successful.
	RecordLoad(count int, duration time.Duration, err error)

	// RecordRound is called after each round with the centroid movement.
	RecordRound(change float64, duration time.Duration)

	// RecordRun is called once the iteration stops.
	RecordRun(rounds int, converged bool, duration time.Duration)

	// RecordWrite is called after each output is written.
	RecordWrite(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordLoad(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordRound(float64, time.Duration)   {}
func (NoopMetricsCollector) RecordRun(int, bool, time.Duration)   {}
func (NoopMetricsCollector) RecordWrite(time.Duration, error)     {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	LoadCount       atomic.Int64
	LoadErrors      atomic.Int64
	PointsLoaded    atomic.Int64
	RoundCount      atomic.Int64
	RoundTotalNanos atomic.Int64
	lastChangeBits  atomic.Uint64
	RunCount        atomic.Int64
	RunsConverged   atomic.Int64
	RunTotalNanos   atomic.Int64
	WriteCount      atomic.Int64
	WriteErrors     atomic.Int64
}

// RecordLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLoad(count int, _ time.Duration, err error) {
	b.LoadCount.Add(1)
	if err != nil {
		b.LoadErrors.Add(1)
		return
	}
	b.PointsLoaded.Add(int64(count))
}

// RecordRound implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRound(change float64, duration time.Duration) {
	b.RoundCount.Add(1)
	b.RoundTotalNanos.Add(duration.Nanoseconds())
	b.lastChangeBits.Store(math.Float64bits(change))
}

// RecordRun implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRun(_ int, converged bool, duration time.Duration) {
	b.RunCount.Add(1)
	b.RunTotalNanos.Add(duration.Nanoseconds())
	if converged {
		b.RunsConverged.Add(1)
	}
}

// RecordWrite implements MetricsCollector.
func (b *BasicMetricsCollector) RecordWrite(_ time.Duration, err error) {
	b.WriteCount.Add(1)
	if err != nil {
		b.WriteErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		LoadCount:     b.LoadCount.Load(),
		LoadErrors:    b.LoadErrors.Load(),
		PointsLoaded:  b.PointsLoaded.Load(),
		RoundCount:    b.RoundCount.Load(),
		RoundAvgNanos: b.getAvgRoundNanos(),
		LastChange:    math.Float64frombits(b.lastChangeBits.Load()),
		RunCount:      b.RunCount.Load(),
		RunsConverged: b.RunsConverged.Load(),
		RunTotalNanos: b.RunTotalNanos.Load(),
		WriteCount:    b.WriteCount.Load(),
		WriteErrors:   b.WriteErrors.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgRoundNanos() int64 {
	count := b.RoundCount.Load()
	if count == 0 {
		return 0
	}
	return b.RoundTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	LoadCount     int64
	LoadErrors    int64
	PointsLoaded  int64
	RoundCount    int64
	RoundAvgNanos int64
	LastChange    float64
	RunCount      int64
	RunsConverged int64
	RunTotalNanos int64
	WriteCount    int64
	WriteErrors   int64
}
