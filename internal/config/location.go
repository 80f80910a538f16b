package config

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// Scheme identifies the blob store behind a location.
type Scheme string

const (
	SchemeFile  Scheme = "file"
	SchemeS3    Scheme = "s3"
	SchemeMinIO Scheme = "minio"
)

// Location is a parsed input or output location.
type Location struct {
	Scheme Scheme
	// Bucket is empty for local files.
	Bucket string
	// Root is the directory (local) or key prefix (remote) of the blob.
	Root string
	// Name is the blob name relative to Root.
	Name string
}

// ParseLocation parses "path/to/file", "s3://bucket/key" or
// "minio://bucket/key".
func ParseLocation(s string) (Location, error) {
	if s == "" {
		return Location{}, fmt.Errorf("empty location")
	}

	if !strings.Contains(s, "://") {
		return Location{
			Scheme: SchemeFile,
			Root:   filepath.Dir(s),
			Name:   filepath.Base(s),
		}, nil
	}

	u, err := url.Parse(s)
	if err != nil {
		return Location{}, fmt.Errorf("invalid location %q: %w", s, err)
	}

	var scheme Scheme
	switch strings.ToLower(u.Scheme) {
	case "file":
		p := u.Path
		if u.Host != "" {
			p = u.Host + p
		}
		return ParseLocation(p)
	case "s3":
		scheme = SchemeS3
	case "minio":
		scheme = SchemeMinIO
	default:
		return Location{}, fmt.Errorf("unsupported location scheme %q", u.Scheme)
	}

	key := strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" || strings.HasSuffix(key, "/") {
		return Location{}, fmt.Errorf("invalid location %q: want %s://bucket/key", s, scheme)
	}

	root, name := "", key
	if i := strings.LastIndex(key, "/"); i >= 0 {
		root, name = key[:i+1], key[i+1:]
	}

	return Location{
		Scheme: scheme,
		Bucket: u.Host,
		Root:   root,
		Name:   name,
	}, nil
}

func (l Location) String() string {
	if l.Scheme == SchemeFile {
		return filepath.Join(l.Root, l.Name)
	}
	return fmt.Sprintf("%s://%s/%s%s", l.Scheme, l.Bucket, l.Root, l.Name)
}
