package kmeans_test

import (
	"math"
	"testing"

	"github.com/hupe1980/lloyd/distance"
	"github.com/hupe1980/lloyd/kmeans"
	"github.com/hupe1980/lloyd/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func points1D(values ...float64) []kmeans.Point {
	out := make([]kmeans.Point, len(values))
	for i, v := range values {
		out[i] = kmeans.Point{v}
	}
	return out
}

func TestNew_SeedsWithFirstKPoints(t *testing.T) {
	pts := []kmeans.Point{{1, 2}, {3, 4}, {5, 6}}

	c, err := kmeans.New(pts, 2, 2)
	require.NoError(t, err)

	assert.Equal(t, kmeans.CentroidSet{{1, 2}, {3, 4}}, c.Centroids())
	assert.Equal(t, 0, c.Rounds())
	assert.True(t, math.IsInf(c.Change(), 1))
	assert.False(t, c.Converged())
	assert.Equal(t, 2, c.Dimensions())
	assert.Equal(t, 2, c.K())
	assert.Equal(t, 3, c.N())

	// Seeds are copies; input points stay untouched.
	c.Step()
	assert.Equal(t, []kmeans.Point{{1, 2}, {3, 4}, {5, 6}}, pts)
}

func TestNew_UnknownKernel(t *testing.T) {
	_, err := kmeans.New(points1D(0, 1), 1, 1, kmeans.WithKernel(distance.Kernel(42)))
	assert.Error(t, err)
}

func TestRun_TwoGroups(t *testing.T) {
	c, err := kmeans.New(points1D(0, 1, 9, 10), 1, 2)
	require.NoError(t, err)

	centroids := c.Run()

	require.Len(t, centroids, 2)
	assert.InDelta(t, 0.5, centroids[0][0], 1e-12)
	assert.InDelta(t, 9.5, centroids[1][0], 1e-12)
	assert.Equal(t, []int{0, 0, 1, 1}, c.Assignment())
	assert.Equal(t, []int{2, 2}, c.ClusterSizes())
	assert.Equal(t, 3, c.Rounds())
	assert.True(t, c.Converged())
}

func TestStep_TwoGroupsRoundByRound(t *testing.T) {
	c, err := kmeans.New(points1D(0, 1, 9, 10), 1, 2)
	require.NoError(t, err)

	change := c.Step()
	assert.Equal(t, []int{0, 1, 1, 1}, c.Assignment())
	assert.InDelta(t, 20.0/3-1, change, 1e-12)
	assert.Equal(t, kmeans.CentroidSet{{0}, {1}}, c.Previous())

	change = c.Step()
	assert.Equal(t, []int{0, 0, 1, 1}, c.Assignment())
	assert.InDelta(t, 0.5+(9.5-20.0/3), change, 1e-12)

	change = c.Step()
	assert.Equal(t, 0.0, change)
}

func TestRun_KEqualsN(t *testing.T) {
	pts := []kmeans.Point{{0, 0}, {10, 10}, {20, 20}}
	c, err := kmeans.New(pts, 2, 3)
	require.NoError(t, err)

	centroids := c.Run()

	assert.Equal(t, kmeans.CentroidSet{{0, 0}, {10, 10}, {20, 20}}, centroids)
	assert.Equal(t, 1, c.Rounds())
	assert.Equal(t, 0.0, c.Change())
	assert.Equal(t, []int{1, 1, 1}, c.ClusterSizes())
}

func TestRun_MoreClustersThanPoints(t *testing.T) {
	c, err := kmeans.New(points1D(0, 5), 1, 3)
	require.NoError(t, err)

	// The third centroid has no seed point.
	assert.True(t, math.IsNaN(c.Centroids()[2][0]))

	centroids := c.Run()

	require.Len(t, centroids, 3)
	assert.Equal(t, 0.0, centroids[0][0])
	assert.Equal(t, 5.0, centroids[1][0])
	assert.True(t, math.IsNaN(centroids[2][0]), "empty cluster must become NaN")
	assert.Equal(t, []int{1, 1, 0}, c.ClusterSizes())

	// NaN movement does not compare greater than the threshold, so the loop stops.
	assert.True(t, math.IsNaN(c.Change()))
	assert.Equal(t, 1, c.Rounds())
}

func TestStep_EmptyClusterBecomesNaN(t *testing.T) {
	// Duplicate seeds: every point ties and the lower index wins, so cluster 1
	// is left empty.
	c, err := kmeans.New(points1D(3, 3, 4), 1, 2)
	require.NoError(t, err)

	c.Step()

	assert.Equal(t, []int{0, 0, 0}, c.Assignment())
	assert.Equal(t, []int{3, 0}, c.ClusterSizes())
	centroids := c.Centroids()
	assert.InDelta(t, 10.0/3, centroids[0][0], 1e-12)
	assert.True(t, math.IsNaN(centroids[1][0]))
	assert.True(t, math.IsNaN(c.Change()))
	assert.True(t, c.Converged())
}

func TestStep_TieGoesToLowerIndex(t *testing.T) {
	c, err := kmeans.New(points1D(0, 2, 1), 1, 2)
	require.NoError(t, err)

	c.Step()

	assert.Equal(t, []int{0, 1, 0}, c.Assignment())
}

func TestStep_TieGoesToLowerIndex2D(t *testing.T) {
	pts := []kmeans.Point{{0, 1}, {1, 0}, {1, 1}, {0, 0}}
	c, err := kmeans.New(pts, 2, 2)
	require.NoError(t, err)

	c.Step()

	// {1,1} and {0,0} are both at distance 1 from {0,1} and {1,0}.
	assert.Equal(t, []int{0, 1, 0, 0}, c.Assignment())
}

func TestInvariants(t *testing.T) {
	rng := testutil.NewRNG(4711)
	pts := rng.ClusteredPoints(5, 40, 3, 50, 2)
	rng.Shuffle(pts)

	const k = 5
	c, err := kmeans.New(pts, 3, k)
	require.NoError(t, err)

	for round := 0; round < 100; round++ {
		change := c.Step()

		assignment := c.Assignment()
		sizes := c.ClusterSizes()
		require.Len(t, assignment, len(pts))

		total := 0
		for _, s := range sizes {
			total += s
		}
		require.Equal(t, len(pts), total)

		sums := make([][]float64, k)
		for i := range sums {
			sums[i] = make([]float64, 3)
		}
		for i, a := range assignment {
			require.GreaterOrEqual(t, a, 0)
			require.Less(t, a, k)
			for d := range pts[i] {
				sums[a][d] += pts[i][d]
			}
		}

		centroids := c.Centroids()
		for i := range centroids {
			if sizes[i] == 0 {
				continue
			}
			for d := range centroids[i] {
				require.InDelta(t, sums[i][d]/float64(sizes[i]), centroids[i][d], 1e-9)
			}
		}

		if !(change > kmeans.Threshold) {
			break
		}
	}
	assert.True(t, c.Converged())
}

func TestRun_ExtraRoundDoesNotIncreaseChange(t *testing.T) {
	rng := testutil.NewRNG(99)
	pts := rng.ClusteredPoints(4, 50, 2, 20, 1)
	rng.Shuffle(pts)

	c, err := kmeans.New(pts, 2, 4)
	require.NoError(t, err)

	c.Run()
	last := c.Change()
	require.LessOrEqual(t, last, kmeans.Threshold)

	next := c.Step()
	assert.LessOrEqual(t, next, last+1e-9)
}

func TestRun_Deterministic(t *testing.T) {
	pts := testutil.NewRNG(7).ClusteredPoints(3, 30, 4, 10, 1)

	run := func() kmeans.CentroidSet {
		c, err := kmeans.New(pts, 4, 3)
		require.NoError(t, err)
		return c.Run()
	}

	assert.Equal(t, run(), run())
}

func TestRun_VekKernel(t *testing.T) {
	c, err := kmeans.New(points1D(0, 1, 9, 10), 1, 2, kmeans.WithKernel(distance.KernelVek))
	require.NoError(t, err)

	centroids := c.Run()

	assert.InDelta(t, 0.5, centroids[0][0], 1e-9)
	assert.InDelta(t, 9.5, centroids[1][0], 1e-9)
}

func TestCentroidSet_Clone(t *testing.T) {
	s := kmeans.CentroidSet{{1, 2}, {3, 4}}
	cp := s.Clone()
	cp[0][0] = 99

	assert.Equal(t, 1.0, s[0][0])
	assert.Nil(t, kmeans.CentroidSet(nil).Clone())
}

func BenchmarkStep(b *testing.B) {
	pts := testutil.NewRNG(1).ClusteredPoints(16, 500, 32, 10, 1)
	c, err := kmeans.New(pts, 32, 16)
	require.NoError(b, err)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Step()
	}
}
