package resource

import (
	"context"
	"io"
)

// Reader wraps r so that reads honor the IO limit.
// Without a limit r is returned unchanged.
func (c *Controller) Reader(ctx context.Context, r io.Reader) io.Reader {
	if c == nil || c.ioLimiter == nil {
		return r
	}
	return &rateLimitedReader{ctx: ctx, r: r, rc: c}
}

// Writer wraps w so that writes honor the IO limit.
// Without a limit w is returned unchanged.
func (c *Controller) Writer(ctx context.Context, w io.Writer) io.Writer {
	if c == nil || c.ioLimiter == nil {
		return w
	}
	return &rateLimitedWriter{ctx: ctx, w: w, rc: c}
}

type rateLimitedReader struct {
	ctx context.Context
	r   io.Reader
	rc  *Controller
}

// Read waits for len(p) tokens up front, capped at the burst size.
func (r *rateLimitedReader) Read(p []byte) (int, error) {
	if burst := r.rc.IOBurst(); len(p) > burst {
		p = p[:burst]
	}
	if err := r.rc.AcquireIO(r.ctx, len(p)); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}

type rateLimitedWriter struct {
	ctx context.Context
	w   io.Writer
	rc  *Controller
}

func (w *rateLimitedWriter) Write(p []byte) (int, error) {
	burst := w.rc.IOBurst()
	written := 0
	for len(p) > 0 {
		chunk := p
		if len(chunk) > burst {
			chunk = chunk[:burst]
		}
		if err := w.rc.AcquireIO(w.ctx, len(chunk)); err != nil {
			return written, err
		}
		n, err := w.w.Write(chunk)
		written += n
		if err != nil {
			return written, err
		}
		p = p[n:]
	}
	return written, nil
}
