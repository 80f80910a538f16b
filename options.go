package lloyd

import (
	"log/slog"
	"time"

	"github.com/hupe1980/lloyd/distance"
)

type options struct {
	metricsCollector MetricsCollector
	logger           *Logger
	maxRounds        int
	kernel           distance.Kernel
	observer         func(RoundStats)
	members          MembershipSink
	memoryLimit      int64
}

// Option configures a clustering run.
type Option func(*options)

// RoundStats describes one finished round.
type RoundStats struct {
	// Round is the one-based round number.
	Round int
	// Change is the summed centroid movement of the round.
	Change float64
	// Sizes holds the number of points assigned to each cluster.
	Sizes    []int
	Duration time.Duration
}

// WithMetricsCollector configures a metrics collector for monitoring runs.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &lloyd.BasicMetricsCollector{}
//	res, _ := lloyd.Cluster(ctx, cfg, src, sink, lloyd.WithMetricsCollector(metrics))
//	stats := metrics.GetStats()
//	fmt.Printf("Rounds: %d, Avg round: %dns\n", stats.RoundCount, stats.RoundAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for runs.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := lloyd.NewJSONLogger(slog.LevelInfo)
//	res, _ := lloyd.Cluster(ctx, cfg, src, sink, lloyd.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMaxRounds stops the iteration after n rounds even if the centroids
// still move. Values <= 0 leave the iteration unbounded.
func WithMaxRounds(n int) Option {
	return func(o *options) {
		o.maxRounds = n
	}
}

// WithKernel selects the distance kernel.
func WithKernel(k distance.Kernel) Option {
	return func(o *options) {
		o.kernel = k
	}
}

// WithRoundObserver registers fn to be called synchronously after every round.
func WithRoundObserver(fn func(RoundStats)) Option {
	return func(o *options) {
		o.observer = fn
	}
}

// WithMembershipSink additionally writes the final cluster memberships to s.
func WithMembershipSink(s MembershipSink) Option {
	return func(o *options) {
		o.members = s
	}
}

// WithMemoryLimit rejects runs whose working set would exceed bytes.
// Zero disables the check.
func WithMemoryLimit(bytes int64) Option {
	return func(o *options) {
		o.memoryLimit = bytes
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		kernel:           distance.KernelScalar,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	return o
}
