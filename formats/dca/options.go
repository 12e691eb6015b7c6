// SPDX-License-Identifier: EPL-2.0

package dca

import "log/slog"

const (
	// DefaultProbeLimit is how many bytes Open reads while looking for the
	// first frame header. It is also the size of every source read.
	DefaultProbeLimit = 24576

	// DefaultRetryBudget is the number of consecutive undecodable frames
	// after which a Session treats the stream as finished.
	DefaultRetryBudget = 8
)

type options struct {
	gain           float32
	adjustLevel    bool
	dynrngDisabled bool
	probeLimit     int
	retryBudget    int
	logger         *slog.Logger
}

// Option configures a Session or Synchronizer.
type Option func(*options)

func newOptions(opts []Option) options {
	o := options{
		gain:        1,
		adjustLevel: true,
		probeLimit:  DefaultProbeLimit,
		retryBudget: DefaultRetryBudget,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}

// WithGain sets the level multiplier handed to the core, 1.0 by default.
func WithGain(gain float32) Option {
	return func(o *options) {
		o.gain = gain
	}
}

// WithoutLevelAdjust stops requesting level adjustment from the core.
func WithoutLevelAdjust() Option {
	return func(o *options) {
		o.adjustLevel = false
	}
}

// WithoutDynamicRange disables dynamic range compression on every frame.
func WithoutDynamicRange() Option {
	return func(o *options) {
		o.dynrngDisabled = true
	}
}

// WithProbeLimit bounds the lookahead for the first frame header.
// Values below HeaderSize are raised to HeaderSize.
func WithProbeLimit(n int) Option {
	return func(o *options) {
		o.probeLimit = max(n, HeaderSize)
	}
}

// WithRetryBudget sets how many consecutive frames may fail to decode
// before reads stop. Zero or less disables the limit.
func WithRetryBudget(n int) Option {
	return func(o *options) {
		o.retryBudget = n
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
