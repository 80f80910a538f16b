package main

import (
	"context"
	"fmt"

	"github.com/hupe1980/lloyd/blobstore"
	"github.com/hupe1980/lloyd/blobstore/minio"
	"github.com/hupe1980/lloyd/blobstore/s3"
	"github.com/hupe1980/lloyd/internal/config"
)

// openStore returns the blob store holding loc and the blob name within it.
func openStore(ctx context.Context, cfg *config.Config, location string) (blobstore.BlobStore, string, error) {
	loc, err := config.ParseLocation(location)
	if err != nil {
		return nil, "", err
	}

	switch loc.Scheme {
	case config.SchemeFile:
		return blobstore.NewLocalStore(loc.Root), loc.Name, nil
	case config.SchemeS3:
		store, err := s3.New(ctx, loc.Bucket,
			s3.WithPrefix(loc.Root),
			s3.WithRegion(cfg.S3.Region),
			s3.WithEndpoint(cfg.S3.Endpoint),
			s3.WithPathStyle(cfg.S3.PathStyle),
		)
		if err != nil {
			return nil, "", err
		}
		return store, loc.Name, nil
	case config.SchemeMinIO:
		if cfg.MinIO.Endpoint == "" {
			return nil, "", fmt.Errorf("%s: minio endpoint is not configured", loc)
		}
		store, err := minio.Dial(minio.Config{
			Endpoint:  cfg.MinIO.Endpoint,
			AccessKey: cfg.MinIO.AccessKey,
			SecretKey: cfg.MinIO.SecretKey,
			Region:    cfg.MinIO.Region,
			UseSSL:    cfg.MinIO.UseSSL,
		}, loc.Bucket, loc.Root)
		if err != nil {
			return nil, "", err
		}
		return store, loc.Name, nil
	default:
		return nil, "", fmt.Errorf("unsupported location %s", loc)
	}
}

// checkWritable creates and discards name so that an unusable output fails
// before any point is read. A local failure reports errWrongArgs like the
// other argument checks.
func checkWritable(ctx context.Context, store blobstore.BlobStore, name string) error {
	w, err := store.Create(ctx, name)
	if err != nil {
		if _, ok := store.(*blobstore.LocalStore); ok {
			return errWrongArgs
		}
		return err
	}
	return blobstore.Abort(w)
}
