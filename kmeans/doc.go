// Package kmeans implements sequential Lloyd's k-means clustering.
//
// The Clusterer seeds its centroids with the first K input points, then
// repeats rounds of:
//
//  1. assignment: every point joins the centroid at the smallest Euclidean
//     distance; on ties the lowest centroid index wins.
//  2. update: each centroid becomes the per-dimension mean of its points.
//  3. convergence: the summed movement of all centroids is compared with
//     Threshold.
//
// The loop stops once the movement is no longer greater than Threshold.
// There is no iteration cap. Callers that need one drive the rounds with
// Step instead of Run.
//
// A cluster that receives no points in a round gets NaN coordinates (0/0).
// This is kept as is: NaN then propagates into later distance computations
// and a NaN movement ends the loop, because NaN > Threshold is false.
//
// The package performs no I/O and no input validation.
package kmeans
