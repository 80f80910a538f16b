// Package pointio reads input points from and writes clustering results to
// blob stores.
//
// # Formats
//
//   - CSV: one point per line, coordinates separated by commas. Centroids are
//     written with six decimals, one centroid per line.
//   - JSON: an array of coordinate arrays. Centroids are written as
//     {"centroids": [[...], ...]}. NaN coordinates are encoded as null.
//
// # Compression
//
// Blobs may be compressed with zstd (.zst) or lz4 (.lz4). Format and
// compression are detected from the blob name unless set explicitly:
//
//	src := pointio.NewSource(store, "points.csv.zst", 2, 10000)
//	sink := pointio.NewSink(store, "centroids.json", pointio.WithCodec(codec.JSON{}))
//
// # Membership
//
// MembershipSink stores the point indexes of every cluster as roaring
// bitmaps; ReadMembers loads them back.
package pointio
