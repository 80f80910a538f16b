package testutil

import (
	"math/rand"
	"sync"

	"github.com/hupe1980/lloyd/kmeans"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// UniformPoints generates num points with coordinates in [minVal, maxVal).
func (r *RNG) UniformPoints(num, dim int, minVal, maxVal float64) []kmeans.Point {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float64, num*dim)
	points := make([]kmeans.Point, num)
	for i := range num {
		p := data[i*dim : (i+1)*dim : (i+1)*dim]
		for j := range dim {
			p[j] = minVal + r.rand.Float64()*(maxVal-minVal)
		}
		points[i] = p
	}
	return points
}

// Centers generates k cluster centers with coordinates in [-scale, scale).
func (r *RNG) Centers(k, dim int, scale float64) []kmeans.Point {
	return r.UniformPoints(k, dim, -scale, scale)
}

// ClusteredPoints generates perCluster points around each of k random
// centers with Gaussian noise of the given spread. Points are emitted
// cluster by cluster, so the first k points do not all share a center
// unless perCluster is 1.
func (r *RNG) ClusteredPoints(k, perCluster, dim int, scale, spread float64) []kmeans.Point {
	centers := r.Centers(k, dim, scale)
	return r.AroundCenters(centers, perCluster, spread)
}

// AroundCenters generates perCluster points around each center.
func (r *RNG) AroundCenters(centers []kmeans.Point, perCluster int, spread float64) []kmeans.Point {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(centers) == 0 {
		return nil
	}
	dim := len(centers[0])
	num := len(centers) * perCluster

	data := make([]float64, num*dim)
	points := make([]kmeans.Point, 0, num)
	for c, center := range centers {
		for i := range perCluster {
			off := (c*perCluster + i) * dim
			p := data[off : off+dim : off+dim]
			for j := range dim {
				p[j] = center[j] + r.rand.NormFloat64()*spread
			}
			points = append(points, p)
		}
	}
	return points
}

// Shuffle permutes points in place.
func (r *RNG) Shuffle(points []kmeans.Point) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Shuffle(len(points), func(i, j int) {
		points[i], points[j] = points[j], points[i]
	})
}
