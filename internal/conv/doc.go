// Package conv provides safe integer type conversion utilities.
//
// These functions perform bounds checking to prevent integer overflow
// when converting between Go's platform-dependent int and the fixed-width
// integers of the membership format (point indexes, counts, lengths), and
// when sizing the clustering working set in bytes.
package conv
