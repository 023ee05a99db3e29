// Package amp implements automatic mixed-precision support for the Ember
// training runtime. Its centerpiece is the dynamic loss scaler: a closed-loop
// controller that multiplies the loss before the backward pass so small
// gradients stay representable in reduced precision, removes the multiplier
// from gradients before they are applied, and adapts the scale from observed
// overflow.
package amp

import "github.com/cockroachdb/errors"

// ErrInvalidArgument marks errors caused by absent or inconsistent caller
// input. Test for it with errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")

func invalidArgf(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrInvalidArgument)
}

// Config holds the tunables of the loss scaler. A Config is immutable once
// handed to New; the scaler keeps its own copy.
type Config struct {
	// Enabled is the master switch. When false the scaler is a pass-through:
	// losses and gradients are returned untouched and no step is ever
	// skipped, matching training without mixed precision.
	Enabled bool

	// InitScale is the starting loss scale. Must lie in [MinScale, MaxScale].
	InitScale float64

	// MinScale and MaxScale are the inclusive bounds the scale must satisfy
	// at all times. Growth and backoff clamp against them.
	MinScale float64
	MaxScale float64

	// GrowthFactor multiplies the scale after GrowthInterval consecutive
	// overflow-free steps. Must be > 1.
	GrowthFactor float64

	// BackoffFactor multiplies the scale on overflow. Must be in (0, 1).
	BackoffFactor float64

	// GrowthInterval is the number of consecutive overflow-free steps
	// required before the scale grows. Must be > 0.
	GrowthInterval int

	// MaxConsecutiveOverflows is the overflow streak at which the scaler
	// reports itself unstable. Observability only; the scale logic does not
	// consult it.
	MaxConsecutiveOverflows int
}

// DefaultConfig returns the configuration used when the caller has no
// preference. It is the FP16 preset.
func DefaultConfig() Config {
	return ForFP16()
}

// ForFP16 returns the preset for IEEE half-precision training: a high
// initial scale with a long growth window, the values FP16 training
// typically starts from.
func ForFP16() Config {
	return Config{
		Enabled:                 true,
		InitScale:               65536, // 2^16
		MinScale:                1,
		MaxScale:                16777216, // 2^24
		GrowthFactor:            2,
		BackoffFactor:           0.5,
		GrowthInterval:          2000,
		MaxConsecutiveOverflows: 50,
	}
}

// ForBF16 returns the preset for bfloat16 training. BF16 carries float32's
// exponent range, so scaling starts neutral and only grows if the loop
// proves overflow-free.
func ForBF16() Config {
	return Config{
		Enabled:                 true,
		InitScale:               1,
		MinScale:                1,
		MaxScale:                32768, // 2^15
		GrowthFactor:            2,
		BackoffFactor:           0.5,
		GrowthInterval:          1000,
		MaxConsecutiveOverflows: 50,
	}
}

// Disabled returns a valid configuration with scaling switched off.
func Disabled() Config {
	cfg := ForFP16()
	cfg.Enabled = false
	return cfg
}

// Validate checks the configuration for internal consistency. All checks
// apply regardless of Enabled so a later re-enable cannot surface a bad
// config.
func (c Config) Validate() error {
	if c.InitScale <= 0 {
		return invalidArgf("amp: init scale must be > 0, got %g", c.InitScale)
	}
	if c.MinScale <= 0 {
		return invalidArgf("amp: min scale must be > 0, got %g", c.MinScale)
	}
	if c.MaxScale < c.MinScale {
		return invalidArgf("amp: max scale %g must be >= min scale %g", c.MaxScale, c.MinScale)
	}
	if c.InitScale < c.MinScale || c.InitScale > c.MaxScale {
		return invalidArgf("amp: init scale %g outside bounds [%g, %g]", c.InitScale, c.MinScale, c.MaxScale)
	}
	if c.GrowthFactor <= 1 {
		return invalidArgf("amp: growth factor must be > 1, got %g", c.GrowthFactor)
	}
	if c.BackoffFactor <= 0 || c.BackoffFactor >= 1 {
		return invalidArgf("amp: backoff factor must be in (0, 1), got %g", c.BackoffFactor)
	}
	if c.GrowthInterval <= 0 {
		return invalidArgf("amp: growth interval must be > 0, got %d", c.GrowthInterval)
	}
	if c.MaxConsecutiveOverflows < 0 {
		return invalidArgf("amp: max consecutive overflows must be >= 0, got %d", c.MaxConsecutiveOverflows)
	}
	return nil
}
