package distance

import (
	"fmt"
	"math"
	"strings"

	"github.com/viterin/vek"
)

// Euclidean calculates the Euclidean distance between two vectors.
// Assumes vectors are the same length (caller's responsibility).
// NaN coordinates propagate into the result.
func Euclidean(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// EuclideanVek calculates the Euclidean distance using SIMD acceleration
// when available. It panics if the vectors differ in length.
func EuclideanVek(a, b []float64) float64 {
	return vek.Distance(a, b)
}

// Kernel selects the implementation used to compute Euclidean distances.
type Kernel int

const (
	KernelScalar Kernel = iota
	KernelVek
)

func (k Kernel) String() string {
	switch k {
	case KernelScalar:
		return "scalar"
	case KernelVek:
		return "vek"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// ParseKernel returns the kernel with the given name.
// An empty name selects KernelScalar.
func ParseKernel(name string) (Kernel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "scalar":
		return KernelScalar, nil
	case "vek", "simd":
		return KernelVek, nil
	default:
		return 0, fmt.Errorf("unknown distance kernel %q", name)
	}
}

// Func is a function type for distance calculation.
type Func func(a, b []float64) float64

// Provider returns the distance function for the given kernel.
func Provider(k Kernel) (Func, error) {
	switch k {
	case KernelScalar:
		return Euclidean, nil
	case KernelVek:
		return EuclideanVek, nil
	default:
		return nil, fmt.Errorf("unsupported distance kernel: %v", k)
	}
}
