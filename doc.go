// Package lloyd clusters points with Lloyd's k-means algorithm.
//
// The algorithm itself lives in package kmeans. This package drives it: it
// loads points from a PointSource, runs rounds until the summed centroid
// movement drops to kmeans.Threshold or below, and hands the centroids to a
// ResultSink.
//
// # Quick Start
//
//	ctx := context.Background()
//	store := blobstore.NewLocalStore(".")
//	cfg := lloyd.Config{Dimensions: 2, Points: 10000, Clusters: 8}
//
//	res, err := lloyd.Cluster(ctx, cfg,
//	    pointio.NewSource(store, "points.csv", cfg.Dimensions, cfg.Points),
//	    pointio.NewSink(store, "centroids.csv"),
//	)
//
// # Seeding and Convergence
//
// The first K points seed the centroids. Each round assigns every point to
// its nearest centroid (lowest index on ties), moves each centroid to the
// mean of its points, and sums how far the centroids moved. A cluster that
// loses all its points gets NaN coordinates and keeps them.
//
// # Bounding a Run
//
// The iteration itself has no round limit. Cluster checks ctx between rounds
// and accepts WithMaxRounds; a run stopped by the limit returns a Result with
// Converged set to false.
//
// # Observability
//
// WithLogger, WithMetricsCollector and WithRoundObserver expose per-round
// progress. WithMembershipSink writes the final assignment as one roaring
// bitmap per cluster.
package lloyd
