// Copyright 2025 Ember ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package amp

import (
	"github.com/rs/zerolog"

	"github.com/ember-ml/ember/internal/amp"
	"github.com/ember-ml/ember/internal/tensor"
)

// ErrInvalidArgument marks errors caused by absent or inconsistent caller
// input. Test for it with errors.Is.
var ErrInvalidArgument = amp.ErrInvalidArgument

// Config holds the loss scaler tunables.
type Config = amp.Config

// LossScaler is the dynamic loss scale controller.
type LossScaler = amp.LossScaler

// Stats is a point-in-time snapshot of controller state.
type Stats = amp.Stats

// Option configures a LossScaler at construction.
type Option = amp.Option

// New creates a LossScaler from a validated configuration.
func New(backend tensor.Backend, cfg Config, opts ...Option) (*LossScaler, error) {
	return amp.New(backend, cfg, opts...)
}

// WithLogger attaches a structured logger for scale-change events.
func WithLogger(log zerolog.Logger) Option {
	return amp.WithLogger(log)
}

// DefaultConfig returns the configuration used when the caller has no
// preference. It is the FP16 preset.
func DefaultConfig() Config {
	return amp.DefaultConfig()
}

// ForFP16 returns the preset for IEEE half-precision training.
func ForFP16() Config {
	return amp.ForFP16()
}

// ForBF16 returns the preset for bfloat16 training.
func ForBF16() Config {
	return amp.ForBF16()
}

// Disabled returns a valid configuration with scaling switched off.
func Disabled() Config {
	return amp.Disabled()
}
