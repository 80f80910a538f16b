// Package resource enforces the resource limits of a clustering run.
//
//   - Memory: a fail-fast budget for the loaded points and the clusterer
//     state, backed by a weighted semaphore.
//   - IO: a token bucket that throttles reads from and writes to blob stores.
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes:   1 << 30,
//	    IOLimitBytesPerSec: 64 << 20,
//	})
//
//	if err := rc.AcquireMemory(n); err != nil {
//	    return err // ErrMemoryLimitExceeded
//	}
//	defer rc.ReleaseMemory(n)
//
//	r := rc.Reader(ctx, blobReader)
//
// All methods handle a nil Controller gracefully; they become no-ops.
package resource
