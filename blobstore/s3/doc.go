// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("kmeans/"),
//	    s3.WithRegion("eu-central-1"),
//	)
//
//	src := pointio.NewSource(store, "points.csv.zst", 2, 10000)
//
// Credentials come from the default AWS credential chain.
//
// # Features
//
//   - Range reads
//   - Multipart streaming uploads via the transfer manager
//   - Automatic pagination for listing
//   - Configurable key prefix
package s3
