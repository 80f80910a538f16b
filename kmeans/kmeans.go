package kmeans

import (
	"math"
	"slices"

	"github.com/hupe1980/lloyd/distance"
)

// Threshold is the total centroid movement at or below which the clustering
// is considered converged.
const Threshold = 0.1

// Point is an ordered, fixed-length sequence of coordinates.
type Point []float64

// CentroidSet is an ordered sequence of centroids indexed by cluster.
type CentroidSet []Point

// Clone returns a deep copy of s.
func (s CentroidSet) Clone() CentroidSet {
	if s == nil {
		return nil
	}
	out := make(CentroidSet, len(s))
	for i, c := range s {
		out[i] = slices.Clone(c)
	}
	return out
}

type options struct {
	kernel distance.Kernel
}

// Option configures a Clusterer.
type Option func(*options)

// WithKernel selects the Euclidean distance kernel. Defaults to distance.KernelScalar.
func WithKernel(k distance.Kernel) Option {
	return func(o *options) {
		o.kernel = k
	}
}

// Clusterer owns the full state of one Lloyd's k-means run.
//
// Points are borrowed read-only for the lifetime of the Clusterer.
// A Clusterer is not safe for concurrent use.
type Clusterer struct {
	dim    int
	points []Point

	// current holds the centroids of the latest update step; previous holds
	// the ones they replaced. They trade places at every update.
	current  CentroidSet
	previous CentroidSet

	assignment []int
	sizes      []int

	dist   distance.Func
	rounds int
	change float64
}

// New creates a Clusterer over points with dim dimensions and k clusters.
// The first k points become the initial centroids. When k exceeds the number
// of points the unseeded centroids start as NaN.
//
// dim, k and the points are not validated.
func New(points []Point, dim, k int, optFns ...Option) (*Clusterer, error) {
	opts := options{kernel: distance.KernelScalar}
	for _, fn := range optFns {
		fn(&opts)
	}

	dist, err := distance.Provider(opts.kernel)
	if err != nil {
		return nil, err
	}

	c := &Clusterer{
		dim:        dim,
		points:     points,
		current:    newCentroidSet(k, dim),
		previous:   newCentroidSet(k, dim),
		assignment: make([]int, len(points)),
		sizes:      make([]int, k),
		dist:       dist,
		change:     math.Inf(1),
	}

	for i := range c.current {
		if i < len(points) {
			copy(c.current[i], points[i])
			continue
		}
		for j := range c.current[i] {
			c.current[i][j] = math.NaN()
		}
	}

	return c, nil
}

func newCentroidSet(k, dim int) CentroidSet {
	backing := make([]float64, k*dim)
	set := make(CentroidSet, k)
	for i := range set {
		set[i] = backing[i*dim : (i+1)*dim : (i+1)*dim]
	}
	return set
}

// Run iterates until the centroid movement of a round is no longer greater
// than Threshold and returns the final centroids. It never gives up on its
// own; use Step to bound the number of rounds.
func (c *Clusterer) Run() CentroidSet {
	for c.Step() > Threshold {
	}
	return c.Centroids()
}

// Step runs one round (assignment, update and convergence measure) and
// returns the total movement of the centroids in that round.
func (c *Clusterer) Step() float64 {
	c.assign()
	c.update()
	c.change = c.movement()
	c.rounds++
	return c.change
}

// assign maps every point to its nearest current centroid. The scan starts at
// centroid 0 and only a strictly smaller distance replaces the best one.
func (c *Clusterer) assign() {
	for i, p := range c.points {
		best := 0
		minDist := c.dist(p, c.current[0])
		for j := 1; j < len(c.current); j++ {
			if d := c.dist(p, c.current[j]); d < minDist {
				best = j
				minDist = d
			}
		}
		c.assignment[i] = best
	}
}

// update rebuilds the current centroids as the means of their points.
func (c *Clusterer) update() {
	c.current, c.previous = c.previous, c.current

	for i := range c.current {
		c.sizes[i] = 0
		clear(c.current[i])
	}

	for i, p := range c.points {
		cluster := c.assignment[i]
		c.sizes[cluster]++
		centroid := c.current[cluster]
		for d := 0; d < c.dim; d++ {
			centroid[d] += p[d]
		}
	}

	// An empty cluster divides 0 by 0 and ends up NaN.
	for i, centroid := range c.current {
		n := float64(c.sizes[i])
		for d := range centroid {
			centroid[d] /= n
		}
	}
}

func (c *Clusterer) movement() float64 {
	var change float64
	for i := range c.current {
		change += c.dist(c.current[i], c.previous[i])
	}
	return change
}

// Centroids returns a copy of the current centroids.
func (c *Clusterer) Centroids() CentroidSet {
	return c.current.Clone()
}

// Previous returns a copy of the centroids replaced by the latest update.
// Before the first round it holds zeros.
func (c *Clusterer) Previous() CentroidSet {
	return c.previous.Clone()
}

// Assignment returns a copy of the cluster index of every point as computed
// by the latest assignment step.
func (c *Clusterer) Assignment() []int {
	return slices.Clone(c.assignment)
}

// ClusterSizes returns a copy of the number of points per cluster.
func (c *Clusterer) ClusterSizes() []int {
	return slices.Clone(c.sizes)
}

// Rounds returns the number of completed rounds.
func (c *Clusterer) Rounds() int {
	return c.rounds
}

// Change returns the centroid movement of the latest round, or +Inf before
// the first round.
func (c *Clusterer) Change() float64 {
	return c.change
}

// Converged reports whether the latest round ended the loop, i.e. its
// movement was not greater than Threshold.
func (c *Clusterer) Converged() bool {
	return c.rounds > 0 && !(c.change > Threshold)
}

// Dimensions returns the number of coordinates per point.
func (c *Clusterer) Dimensions() int { return c.dim }

// K returns the number of clusters.
func (c *Clusterer) K() int { return len(c.current) }

// N returns the number of points.
func (c *Clusterer) N() int { return len(c.points) }
