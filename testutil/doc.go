// Package testutil provides deterministic point generation for tests,
// benchmarks and the generate command.
//
//	rng := testutil.NewRNG(seed)
//	points := rng.ClusteredPoints(8, 1000, 2, 10, 0.5)
//
// The same seed always yields the same points in the same order.
package testutil
