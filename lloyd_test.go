package lloyd

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/lloyd/distance"
	"github.com/hupe1980/lloyd/internal/resource"
	"github.com/hupe1980/lloyd/kmeans"
	"github.com/hupe1980/lloyd/testutil"
)

type sliceSource struct {
	points []kmeans.Point
	err    error
}

func (s sliceSource) Load(context.Context) ([]kmeans.Point, error) {
	return s.points, s.err
}

type recordingSink struct {
	mu        sync.Mutex
	centroids kmeans.CentroidSet
	members   []*roaring.Bitmap
	calls     int
	err       error
}

func (s *recordingSink) Write(_ context.Context, c kmeans.CentroidSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.centroids = c.Clone()
	return s.err
}

func (s *recordingSink) WriteMembers(_ context.Context, m []*roaring.Bitmap) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members = m
	return s.err
}

func oneDim(values ...float64) []kmeans.Point {
	points := make([]kmeans.Point, len(values))
	for i, v := range values {
		points[i] = kmeans.Point{v}
	}
	return points
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want error
	}{
		{"valid", Config{Dimensions: 1, Points: 1, Clusters: 1}, nil},
		{"zero dimensions", Config{Dimensions: 0, Points: 1, Clusters: 1}, ErrInvalidDimension},
		{"negative points", Config{Dimensions: 1, Points: -1, Clusters: 1}, ErrInvalidPointCount},
		{"zero clusters", Config{Dimensions: 1, Points: 1, Clusters: 0}, ErrInvalidK},
		{"dimensions checked first", Config{}, ErrInvalidDimension},
		{"more clusters than points", Config{Dimensions: 1, Points: 2, Clusters: 3}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCluster_Basic(t *testing.T) {
	ctx := context.Background()
	sink := &recordingSink{}
	metrics := &BasicMetricsCollector{}

	var rounds []RoundStats
	res, err := Cluster(ctx, Config{Dimensions: 1, Points: 4, Clusters: 2},
		sliceSource{points: oneDim(0, 1, 9, 10)}, sink,
		WithMetricsCollector(metrics),
		WithMembershipSink(sink),
		WithRoundObserver(func(s RoundStats) { rounds = append(rounds, s) }),
	)
	require.NoError(t, err)

	assert.Equal(t, kmeans.CentroidSet{{0.5}, {9.5}}, res.Centroids)
	assert.Equal(t, 3, res.Rounds)
	assert.Equal(t, 0.0, res.Change)
	assert.True(t, res.Converged)
	assert.Equal(t, []int{2, 2}, res.Sizes)
	assert.Equal(t, []uint32{0, 1}, res.Members[0].ToArray())
	assert.Equal(t, []uint32{2, 3}, res.Members[1].ToArray())

	assert.Equal(t, 1, sink.calls)
	assert.Equal(t, res.Centroids, sink.centroids)
	require.Len(t, sink.members, 2)

	require.Len(t, rounds, 3)
	assert.Equal(t, 1, rounds[0].Round)
	assert.InDelta(t, 20.0/3-1, rounds[0].Change, 1e-12)
	assert.InDelta(t, 0.5+(9.5-20.0/3), rounds[1].Change, 1e-12)
	assert.Equal(t, []int{2, 2}, rounds[2].Sizes)

	stats := metrics.GetStats()
	assert.Equal(t, int64(1), stats.LoadCount)
	assert.Equal(t, int64(4), stats.PointsLoaded)
	assert.Equal(t, int64(3), stats.RoundCount)
	assert.Equal(t, int64(1), stats.RunsConverged)
	assert.Equal(t, int64(2), stats.WriteCount)
	assert.Zero(t, stats.WriteErrors)
}

func TestCluster_NilSink(t *testing.T) {
	res, err := Cluster(context.Background(), Config{Dimensions: 1, Points: 2, Clusters: 2},
		sliceSource{points: oneDim(3, 7)}, nil)
	require.NoError(t, err)
	assert.Equal(t, kmeans.CentroidSet{{3}, {7}}, res.Centroids)
	assert.Equal(t, 1, res.Rounds)
}

func TestCluster_InvalidConfigFailsBeforeLoad(t *testing.T) {
	loaded := false
	src := sourceFunc(func(context.Context) ([]kmeans.Point, error) {
		loaded = true
		return nil, nil
	})

	_, err := Cluster(context.Background(), Config{Dimensions: 1, Points: 1}, src, nil)
	assert.ErrorIs(t, err, ErrInvalidK)
	assert.False(t, loaded)
}

type sourceFunc func(context.Context) ([]kmeans.Point, error)

func (f sourceFunc) Load(ctx context.Context) ([]kmeans.Point, error) { return f(ctx) }

func TestCluster_LoadErrors(t *testing.T) {
	cfg := Config{Dimensions: 2, Points: 2, Clusters: 1}

	t.Run("source error", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := Cluster(context.Background(), cfg, sliceSource{err: boom}, nil)
		assert.ErrorIs(t, err, boom)

		var se *StageError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, StageLoad, se.Stage)
	})

	t.Run("count mismatch", func(t *testing.T) {
		_, err := Cluster(context.Background(), cfg, sliceSource{points: []kmeans.Point{{1, 2}}}, nil)
		var pm *ErrPointCountMismatch
		require.ErrorAs(t, err, &pm)
		assert.Equal(t, 2, pm.Expected)
		assert.Equal(t, 1, pm.Actual)
	})

	t.Run("dimension mismatch", func(t *testing.T) {
		_, err := Cluster(context.Background(), cfg, sliceSource{points: []kmeans.Point{{1, 2}, {3}}}, nil)
		var dm *ErrDimensionMismatch
		require.ErrorAs(t, err, &dm)
		assert.Equal(t, 1, dm.Index)
		assert.Equal(t, 1, dm.Actual)
	})
}

func TestCluster_MaxRounds(t *testing.T) {
	sink := &recordingSink{}
	res, err := Cluster(context.Background(), Config{Dimensions: 1, Points: 4, Clusters: 2},
		sliceSource{points: oneDim(0, 1, 9, 10)}, sink, WithMaxRounds(1))
	require.NoError(t, err)

	assert.Equal(t, 1, res.Rounds)
	assert.False(t, res.Converged)
	assert.InDelta(t, 20.0/3-1, res.Change, 1e-12)
	assert.Equal(t, 1, sink.calls)
}

func TestCluster_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	sink := &recordingSink{}

	_, err := Cluster(ctx, Config{Dimensions: 1, Points: 4, Clusters: 2},
		sliceSource{points: oneDim(0, 1, 9, 10)}, sink,
		WithRoundObserver(func(RoundStats) { cancel() }))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, sink.calls)
}

func TestCluster_WriteError(t *testing.T) {
	boom := errors.New("disk full")
	sink := &recordingSink{err: boom}
	metrics := &BasicMetricsCollector{}

	_, err := Cluster(context.Background(), Config{Dimensions: 1, Points: 2, Clusters: 1},
		sliceSource{points: oneDim(1, 2)}, sink, WithMetricsCollector(metrics))
	assert.ErrorIs(t, err, boom)

	var se *StageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, StageWriteCentroids, se.Stage)
	assert.Equal(t, int64(1), metrics.GetStats().WriteErrors)
}

func TestCluster_EmptyClusterNaN(t *testing.T) {
	sink := &recordingSink{}
	res, err := Cluster(context.Background(), Config{Dimensions: 1, Points: 3, Clusters: 2},
		sliceSource{points: oneDim(3, 3, 4)}, sink)
	require.NoError(t, err)

	assert.True(t, math.IsNaN(res.Centroids[1][0]))
	assert.True(t, math.IsNaN(sink.centroids[1][0]))
	assert.True(t, res.Converged)
	assert.True(t, res.Members[1].IsEmpty())
}

func TestCluster_MoreClustersThanPoints(t *testing.T) {
	res, err := Cluster(context.Background(), Config{Dimensions: 2, Points: 1, Clusters: 3},
		sliceSource{points: []kmeans.Point{{1, 2}}}, nil)
	require.NoError(t, err)

	assert.Equal(t, kmeans.Point{1, 2}, res.Centroids[0])
	assert.True(t, math.IsNaN(res.Centroids[2][1]))
	assert.Equal(t, []int{1, 0, 0}, res.Sizes)
}

func TestCluster_MemoryLimit(t *testing.T) {
	cfg := Config{Dimensions: 2, Points: 100, Clusters: 4}
	ws, err := cfg.WorkingSet()
	require.NoError(t, err)
	assert.Equal(t, int64(8*(100*2+2*4*2+100+4)), ws)

	_, err = Cluster(context.Background(), cfg, sliceSource{}, nil, WithMemoryLimit(ws-1))
	assert.ErrorIs(t, err, resource.ErrMemoryLimitExceeded)
	var se *StageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, StageReserve, se.Stage)

	rng := testutil.NewRNG(1)
	_, err = Cluster(context.Background(), cfg,
		sliceSource{points: rng.UniformPoints(100, 2, 0, 1)}, nil, WithMemoryLimit(ws))
	assert.NoError(t, err)
}

func TestCluster_KernelsAgree(t *testing.T) {
	rng := testutil.NewRNG(42)
	points := rng.ClusteredPoints(4, 50, 3, 100, 1)
	cfg := Config{Dimensions: 3, Points: len(points), Clusters: 4}

	scalar, err := Cluster(context.Background(), cfg, sliceSource{points: points}, nil)
	require.NoError(t, err)
	vek, err := Cluster(context.Background(), cfg, sliceSource{points: points}, nil, WithKernel(distance.KernelVek))
	require.NoError(t, err)

	assert.Equal(t, scalar.Rounds, vek.Rounds)
	assert.Equal(t, scalar.Sizes, vek.Sizes)
	for i := range scalar.Centroids {
		assert.InDeltaSlice(t, scalar.Centroids[i], vek.Centroids[i], 1e-9)
	}
}

func TestCluster_UnknownKernel(t *testing.T) {
	_, err := Cluster(context.Background(), Config{Dimensions: 1, Points: 1, Clusters: 1},
		sliceSource{points: oneDim(1)}, nil, WithKernel(distance.Kernel(99)))
	assert.Error(t, err)
}

func TestCluster_MembersPartitionPoints(t *testing.T) {
	rng := testutil.NewRNG(7)
	points := rng.ClusteredPoints(5, 40, 2, 50, 2)
	cfg := Config{Dimensions: 2, Points: len(points), Clusters: 5}

	res, err := Cluster(context.Background(), cfg, sliceSource{points: points}, nil)
	require.NoError(t, err)

	union := roaring.FastOr(res.Members...)
	assert.Equal(t, uint64(len(points)), union.GetCardinality())

	var total uint64
	for i, m := range res.Members {
		assert.Equal(t, uint64(res.Sizes[i]), m.GetCardinality())
		total += m.GetCardinality()
	}
	assert.Equal(t, uint64(len(points)), total)
}
