// Package distance provides the Euclidean distance kernels used by the clusterer.
//
// Both kernels compute the same metric, sqrt(sum((a_i - b_i)^2)):
//
//   - KernelScalar: a plain left-to-right loop. This is the default and the
//     reference for bit-exact output compatibility.
//   - KernelVek: the SIMD implementation from github.com/viterin/vek. Results
//     may differ from the scalar kernel in the last bits because the
//     accumulation order differs.
//
// # Usage
//
//	d := distance.Euclidean(a, b)
//
//	fn, err := distance.Provider(distance.KernelVek)
//	d = fn(a, b)
package distance
