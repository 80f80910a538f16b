package distance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEuclidean(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float64
		expected float64
	}{
		{"Simple", []float64{0, 0}, []float64{3, 4}, 5},
		{"Zero", []float64{0, 0, 0}, []float64{0, 0, 0}, 0},
		{"Identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 0},
		{"Mixed", []float64{1, -1}, []float64{-1, 1}, math.Sqrt(8)},
		{"Single", []float64{9}, []float64{10}, 1},
		{"Empty", []float64{}, []float64{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Euclidean(tt.a, tt.b), 1e-12)
		})
	}
}

func TestEuclidean_NaN(t *testing.T) {
	d := Euclidean([]float64{1, math.NaN()}, []float64{1, 2})
	assert.True(t, math.IsNaN(d))
}

func TestEuclideanVek_MatchesScalar(t *testing.T) {
	a := make([]float64, 1024)
	b := make([]float64, 1024)
	for i := range a {
		a[i] = float64(i) * 0.5
		b[i] = float64(1024-i) * 0.25
	}

	assert.InDelta(t, Euclidean(a, b), EuclideanVek(a, b), 1e-6)
	assert.InDelta(t, 5.0, EuclideanVek([]float64{0, 0}, []float64{3, 4}), 1e-12)
}

func TestProvider(t *testing.T) {
	fn, err := Provider(KernelScalar)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, fn([]float64{0, 0}, []float64{3, 4}), 1e-12)

	fn, err = Provider(KernelVek)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, fn([]float64{0, 0}, []float64{3, 4}), 1e-12)

	_, err = Provider(Kernel(99))
	assert.Error(t, err)
}

func TestParseKernel(t *testing.T) {
	tests := []struct {
		in      string
		want    Kernel
		wantErr bool
	}{
		{"", KernelScalar, false},
		{"scalar", KernelScalar, false},
		{"VEK", KernelVek, false},
		{"simd", KernelVek, false},
		{"manhattan", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKernel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got.String(), tt.want.String())
		})
	}
	assert.Equal(t, "Unknown(7)", Kernel(7).String())
}
