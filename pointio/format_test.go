package pointio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name        string
		format      Format
		compression Compression
		wantFormat  Format
		wantComp    Compression
	}{
		{"points.txt", FormatAuto, CompressionAuto, FormatCSV, CompressionNone},
		{"points.csv", FormatAuto, CompressionAuto, FormatCSV, CompressionNone},
		{"points.json", FormatAuto, CompressionAuto, FormatJSON, CompressionNone},
		{"points.JSON", FormatAuto, CompressionAuto, FormatJSON, CompressionNone},
		{"points.json.zst", FormatAuto, CompressionAuto, FormatJSON, CompressionZstd},
		{"points.csv.zstd", FormatAuto, CompressionAuto, FormatCSV, CompressionZstd},
		{"points.json.lz4", FormatAuto, CompressionAuto, FormatJSON, CompressionLZ4},
		{"points", FormatAuto, CompressionAuto, FormatCSV, CompressionNone},
		{"points.json", FormatCSV, CompressionZstd, FormatCSV, CompressionZstd},
		{"dir.json/points.lz4", FormatAuto, CompressionAuto, FormatCSV, CompressionLZ4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, c := Detect(tt.name, tt.format, tt.compression)
			assert.Equal(t, tt.wantFormat, f)
			assert.Equal(t, tt.wantComp, c)
		})
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatAuto, "auto": FormatAuto, "CSV": FormatCSV, "txt": FormatCSV, "json": FormatJSON} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("parquet")
	assert.Error(t, err)
	assert.Equal(t, "Unknown(9)", Format(9).String())
}

func TestParseCompression(t *testing.T) {
	for in, want := range map[string]Compression{"": CompressionAuto, "none": CompressionNone, "zst": CompressionZstd, "ZSTD": CompressionZstd, "lz4": CompressionLZ4} {
		got, err := ParseCompression(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseCompression("gzip")
	assert.Error(t, err)
	assert.Equal(t, "zstd", CompressionZstd.String())
}
