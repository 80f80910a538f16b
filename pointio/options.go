package pointio

import (
	"github.com/hupe1980/lloyd/codec"
	"github.com/hupe1980/lloyd/internal/resource"
)

type options struct {
	format      Format
	compression Compression
	codec       codec.Codec
	rc          *resource.Controller
}

// Option configures a Source or Sink.
type Option func(*options)

func newOptions(optFns []Option) options {
	o := options{
		format:      FormatAuto,
		compression: CompressionAuto,
		codec:       codec.Default,
	}
	for _, fn := range optFns {
		fn(&o)
	}
	if o.codec == nil {
		o.codec = codec.Default
	}
	return o
}

// WithFormat overrides format detection.
func WithFormat(f Format) Option {
	return func(o *options) {
		o.format = f
	}
}

// WithCompression overrides compression detection.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithCodec sets the codec used for the JSON format.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		o.codec = c
	}
}

// WithResourceController throttles blob IO through rc.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.rc = rc
	}
}
