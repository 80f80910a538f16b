package lloyd

import (
	"context"
	"fmt"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/lloyd/internal/conv"
	"github.com/hupe1980/lloyd/internal/resource"
	"github.com/hupe1980/lloyd/kmeans"
)

// PointSource supplies the input points of a run.
type PointSource interface {
	Load(ctx context.Context) ([]kmeans.Point, error)
}

// ResultSink receives the final centroids.
type ResultSink interface {
	Write(ctx context.Context, centroids kmeans.CentroidSet) error
}

// MembershipSink receives, for every cluster, the indexes of its points.
type MembershipSink interface {
	WriteMembers(ctx context.Context, members []*roaring.Bitmap) error
}

// Config describes the shape of a run.
type Config struct {
	// Dimensions is the number of coordinates per point (D).
	Dimensions int
	// Points is the number of points to cluster (N).
	Points int
	// Clusters is the number of centroids (K).
	Clusters int
}

// Validate reports the first non-positive field.
func (c Config) Validate() error {
	if c.Dimensions < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidDimension, c.Dimensions)
	}
	if c.Points < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidPointCount, c.Points)
	}
	// Point indexes are stored in 32-bit membership bitmaps.
	if _, err := conv.IntToUint32(c.Points); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPointCount, err)
	}
	if c.Clusters < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidK, c.Clusters)
	}
	return nil
}

// WorkingSet estimates the bytes held while clustering: the points, two
// centroid buffers, the assignment and the cluster sizes. It fails when the
// estimate does not fit in an int64.
func (c Config) WorkingSet() (int64, error) {
	const word = 8
	n, d, k := int64(c.Points), int64(c.Dimensions), int64(c.Clusters)

	points, err := conv.MulInt64(n, d)
	if err != nil {
		return 0, err
	}
	centroids, err := conv.MulInt64(k, d)
	if err != nil {
		return 0, err
	}
	words := points
	for _, v := range []int64{centroids, centroids, n, k} {
		if words, err = conv.AddInt64(words, v); err != nil {
			return 0, err
		}
	}
	return conv.MulInt64(words, word)
}

// Result is the outcome of a run.
type Result struct {
	Centroids kmeans.CentroidSet
	// Rounds is the number of rounds executed.
	Rounds int
	// Change is the movement of the last round.
	Change float64
	// Converged is false when the round limit stopped the iteration.
	Converged bool
	// Sizes holds the final number of points per cluster.
	Sizes []int
	// Members[i] holds the indexes of the points assigned to cluster i.
	Members  []*roaring.Bitmap
	Duration time.Duration
}

// Cluster loads the points from src, runs Lloyd's algorithm until the
// centroids settle and writes the centroids to sink. A nil sink skips the
// write; the centroids are always part of the returned Result.
//
// Nothing is written when ctx is canceled before the iteration finishes.
func Cluster(ctx context.Context, cfg Config, src PointSource, sink ResultSink, optFns ...Option) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := applyOptions(optFns)
	log := o.logger.WithDimension(cfg.Dimensions).WithK(cfg.Clusters).WithCount(cfg.Points)
	start := time.Now()

	rc := resource.NewController(resource.Config{MemoryLimitBytes: o.memoryLimit})
	ws, err := cfg.WorkingSet()
	if err != nil {
		return nil, stageError(StageReserve, fmt.Errorf("%w: %v", resource.ErrMemoryLimitExceeded, err))
	}
	if err := rc.AcquireMemory(ws); err != nil {
		return nil, stageError(StageReserve, fmt.Errorf("%w: need %d bytes, limit %d", err, ws, rc.MemoryLimit()))
	}
	defer rc.ReleaseMemory(ws)

	points, err := load(ctx, cfg, src)
	o.metricsCollector.RecordLoad(len(points), time.Since(start), err)
	log.LogLoad(ctx, len(points), time.Since(start), err)
	if err != nil {
		return nil, stageError(StageLoad, err)
	}

	c, err := kmeans.New(points, cfg.Dimensions, cfg.Clusters, kmeans.WithKernel(o.kernel))
	if err != nil {
		return nil, err
	}

	iterStart := time.Now()
	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("clustering stopped after %d rounds: %w", c.Rounds(), err)
		}
		if o.maxRounds > 0 && c.Rounds() >= o.maxRounds {
			break
		}

		roundStart := time.Now()
		change := c.Step()
		elapsed := time.Since(roundStart)

		o.metricsCollector.RecordRound(change, elapsed)
		log.LogRound(ctx, c.Rounds(), change)
		if o.observer != nil {
			o.observer(RoundStats{
				Round:    c.Rounds(),
				Change:   change,
				Sizes:    c.ClusterSizes(),
				Duration: elapsed,
			})
		}

		if !(change > kmeans.Threshold) {
			break
		}
	}

	res := &Result{
		Centroids: c.Centroids(),
		Rounds:    c.Rounds(),
		Change:    c.Change(),
		Converged: c.Converged(),
		Sizes:     c.ClusterSizes(),
		Members:   members(c.Assignment(), cfg.Clusters),
	}
	o.metricsCollector.RecordRun(res.Rounds, res.Converged, time.Since(iterStart))
	log.LogConverged(ctx, res.Rounds, res.Change, res.Converged)

	if err := emit(ctx, o, log, sink, res); err != nil {
		return nil, err
	}

	res.Duration = time.Since(start)
	return res, nil
}

func load(ctx context.Context, cfg Config, src PointSource) ([]kmeans.Point, error) {
	points, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(points) != cfg.Points {
		return nil, &ErrPointCountMismatch{Expected: cfg.Points, Actual: len(points)}
	}
	for i, p := range points {
		if len(p) != cfg.Dimensions {
			return nil, &ErrDimensionMismatch{Index: i, Expected: cfg.Dimensions, Actual: len(p)}
		}
	}
	return points, nil
}

func members(assignment []int, k int) []*roaring.Bitmap {
	out := make([]*roaring.Bitmap, k)
	for i := range out {
		out[i] = roaring.New()
	}
	for idx, cluster := range assignment {
		out[cluster].Add(uint32(idx))
	}
	for _, bm := range out {
		bm.RunOptimize()
	}
	return out
}

// emit writes the centroids and memberships concurrently.
func emit(ctx context.Context, o options, log *Logger, sink ResultSink, res *Result) error {
	g, gctx := errgroup.WithContext(ctx)

	if sink != nil {
		g.Go(func() error {
			start := time.Now()
			err := sink.Write(gctx, res.Centroids)
			o.metricsCollector.RecordWrite(time.Since(start), err)
			log.LogWrite(gctx, "centroids", err)
			return stageError(StageWriteCentroids, err)
		})
	}

	if o.members != nil {
		g.Go(func() error {
			start := time.Now()
			err := o.members.WriteMembers(gctx, res.Members)
			o.metricsCollector.RecordWrite(time.Since(start), err)
			log.LogWrite(gctx, "members", err)
			return stageError(StageWriteMembers, err)
		})
	}

	return g.Wait()
}
