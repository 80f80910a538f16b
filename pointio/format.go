package pointio

import (
	"fmt"
	"path"
	"strings"
)

// Format is the encoding of points and centroids.
type Format int

const (
	// FormatAuto detects the format from the blob name.
	FormatAuto Format = iota
	FormatCSV
	FormatJSON
)

func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatCSV:
		return "csv"
	case FormatJSON:
		return "json"
	default:
		return fmt.Sprintf("Unknown(%d)", f)
	}
}

// ParseFormat returns the format with the given name.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "", "auto":
		return FormatAuto, nil
	case "csv", "txt":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	default:
		return 0, fmt.Errorf("unknown format %q", name)
	}
}

// Compression is the compression applied to a blob.
type Compression int

const (
	// CompressionAuto detects compression from the blob name.
	CompressionAuto Compression = iota
	CompressionNone
	CompressionZstd
	CompressionLZ4
)

func (c Compression) String() string {
	switch c {
	case CompressionAuto:
		return "auto"
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("Unknown(%d)", c)
	}
}

// ParseCompression returns the compression with the given name.
func ParseCompression(name string) (Compression, error) {
	switch strings.ToLower(name) {
	case "", "auto":
		return CompressionAuto, nil
	case "none":
		return CompressionNone, nil
	case "zstd", "zst":
		return CompressionZstd, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("unknown compression %q", name)
	}
}

// Detect resolves auto format and compression from a blob name such as
// "points.json.zst". Explicit values are returned unchanged.
func Detect(name string, f Format, c Compression) (Format, Compression) {
	ext := strings.ToLower(path.Ext(name))
	base := name

	if c == CompressionAuto {
		switch ext {
		case ".zst", ".zstd":
			c = CompressionZstd
		case ".lz4":
			c = CompressionLZ4
		default:
			c = CompressionNone
		}
	}
	switch ext {
	case ".zst", ".zstd", ".lz4":
		base = strings.TrimSuffix(name, path.Ext(name))
	}

	if f == FormatAuto {
		if strings.EqualFold(path.Ext(base), ".json") {
			f = FormatJSON
		} else {
			f = FormatCSV
		}
	}

	return f, c
}
