package amp

import (
	"github.com/rs/zerolog"

	"github.com/ember-ml/ember/internal/tensor"
)

// LossScaler is the dynamic loss scale controller. It owns the current
// scale and its adaptation counters, scales losses up before the backward
// pass, unscales gradients afterwards, detects overflow in gradients, and
// tells the training loop when an optimizer step must be skipped.
//
// A LossScaler is not safe for concurrent use. It is designed to be owned
// by a single training step driver; hosts that share one must serialize
// calls themselves.
//
// Gradient overflow is not an error here. It is expected steady-state input
// that the controller absorbs by backing the scale off and requesting a
// step skip; only absent inputs and inconsistent configuration surface as
// errors, always before any state changes.
type LossScaler struct {
	cfg     Config
	backend tensor.Backend
	log     zerolog.Logger

	scale                float64
	stepsSinceOverflow   int
	consecutiveOverflows int
	totalOverflows       int64
}

// Option configures a LossScaler at construction.
type Option func(*LossScaler)

// WithLogger attaches a structured logger. Scale backoff and growth events
// are logged at debug level, instability at warn. Default is a no-op logger.
func WithLogger(log zerolog.Logger) Option {
	return func(s *LossScaler) {
		s.log = log
	}
}

// New creates a LossScaler from a validated configuration. The backend
// supplies the element-wise kernels; it must not be nil.
func New(backend tensor.Backend, cfg Config, opts ...Option) (*LossScaler, error) {
	if backend == nil {
		return nil, invalidArgf("amp: backend is nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &LossScaler{
		cfg:     cfg,
		backend: backend,
		log:     zerolog.Nop(),
		scale:   cfg.InitScale,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// IsEnabled reports whether scaling is active. Fixed for the scaler's
// lifetime.
func (s *LossScaler) IsEnabled() bool {
	return s.cfg.Enabled
}

// Scale returns the current loss scale.
func (s *LossScaler) Scale() float64 {
	return s.scale
}

// ScaleLoss returns the loss multiplied by the current scale, as a new
// tensor. Disabled scalers return the input itself, untouched. Scaling the
// loss never modifies controller state.
func (s *LossScaler) ScaleLoss(loss *tensor.RawTensor) (*tensor.RawTensor, error) {
	if loss == nil {
		return nil, invalidArgf("amp: scale loss: loss tensor is nil")
	}
	if !s.cfg.Enabled {
		return loss, nil
	}
	return s.backend.MulScalar(loss, s.scale), nil
}

// UnscaleGrads returns a new mapping with every gradient divided by the
// current scale. Keys are preserved exactly; input tensors are not mutated.
// Disabled scalers return the input mapping itself.
func (s *LossScaler) UnscaleGrads(grads map[string]*tensor.RawTensor) (map[string]*tensor.RawTensor, error) {
	if grads == nil {
		return nil, invalidArgf("amp: unscale grads: gradient map is nil")
	}
	if !s.cfg.Enabled {
		return grads, nil
	}

	for name, g := range grads {
		if g == nil {
			return nil, invalidArgf("amp: unscale grads: gradient %q is nil", name)
		}
	}

	unscaled := make(map[string]*tensor.RawTensor, len(grads))
	for name, g := range grads {
		unscaled[name] = s.backend.DivScalar(g, s.scale)
	}
	return unscaled, nil
}

// CheckOverflow reports whether any gradient contains an Inf or NaN
// element. Disabled scalers always report false: a disabled scaler never
// blocks a step. The scan stops at the first bad value and never modifies
// controller state.
func (s *LossScaler) CheckOverflow(grads map[string]*tensor.RawTensor) (bool, error) {
	if grads == nil {
		return false, invalidArgf("amp: check overflow: gradient map is nil")
	}
	if !s.cfg.Enabled {
		return false, nil
	}

	for name, g := range grads {
		if g == nil {
			return false, invalidArgf("amp: check overflow: gradient %q is nil", name)
		}
	}

	for _, g := range grads {
		if s.backend.HasNonFinite(g) {
			return true, nil
		}
	}
	return false, nil
}

// Update advances the adaptation state machine after a step and reports
// whether the optimizer update must be skipped.
//
// On overflow the scale backs off (clamped to MinScale), the overflow
// counters advance, and the step is skipped: the gradients computed under
// the too-high scale are unsafe to apply. On a clean step the overflow
// streak resets and, once GrowthInterval consecutive clean steps have
// accumulated, the scale grows (clamped to MaxScale).
//
// Disabled scalers never request a skip.
func (s *LossScaler) Update(hadOverflow bool) bool {
	if !s.cfg.Enabled {
		return false
	}

	if hadOverflow {
		before := s.scale
		s.scale = clamp(s.scale*s.cfg.BackoffFactor, s.cfg.MinScale, s.cfg.MaxScale)
		s.totalOverflows++
		s.consecutiveOverflows++
		s.stepsSinceOverflow = 0

		s.log.Debug().
			Float64("scale_before", before).
			Float64("scale_after", s.scale).
			Int("consecutive_overflows", s.consecutiveOverflows).
			Int64("total_overflows", s.totalOverflows).
			Msg("loss scale backoff")
		if s.consecutiveOverflows >= s.cfg.MaxConsecutiveOverflows {
			s.log.Warn().
				Int("consecutive_overflows", s.consecutiveOverflows).
				Int("threshold", s.cfg.MaxConsecutiveOverflows).
				Msg("loss scaling unstable")
		}
		return true
	}

	s.consecutiveOverflows = 0
	s.stepsSinceOverflow++
	if s.stepsSinceOverflow >= s.cfg.GrowthInterval {
		before := s.scale
		s.scale = clamp(s.scale*s.cfg.GrowthFactor, s.cfg.MinScale, s.cfg.MaxScale)
		s.stepsSinceOverflow = 0

		s.log.Debug().
			Float64("scale_before", before).
			Float64("scale_after", s.scale).
			Msg("loss scale growth")
	}
	return false
}

// CheckOverflowAndUpdate fuses CheckOverflow and Update into one call,
// returning the skip decision. Convenience only; no logic beyond the two
// steps it composes.
func (s *LossScaler) CheckOverflowAndUpdate(grads map[string]*tensor.RawTensor) (bool, error) {
	overflow, err := s.CheckOverflow(grads)
	if err != nil {
		return false, err
	}
	return s.Update(overflow), nil
}

// Reset restores the scaler to its post-construction state: the scale back
// to InitScale, every counter to zero. Configuration is untouched.
func (s *LossScaler) Reset() {
	s.scale = s.cfg.InitScale
	s.stepsSinceOverflow = 0
	s.consecutiveOverflows = 0
	s.totalOverflows = 0
}

// Stats is a point-in-time snapshot of controller state. It is a value,
// not a view into the live scaler.
type Stats struct {
	Scale                   float64
	StepsSinceOverflow      int
	ConsecutiveOverflows    int
	TotalOverflows          int64
	GrowthInterval          int
	MaxConsecutiveOverflows int

	// Stable is false once the current overflow streak has reached
	// MaxConsecutiveOverflows.
	Stable bool
}

// Stats returns a snapshot of the controller. Pure read; calling it never
// changes subsequent scaler behavior.
func (s *LossScaler) Stats() Stats {
	return Stats{
		Scale:                   s.scale,
		StepsSinceOverflow:      s.stepsSinceOverflow,
		ConsecutiveOverflows:    s.consecutiveOverflows,
		TotalOverflows:          s.totalOverflows,
		GrowthInterval:          s.cfg.GrowthInterval,
		MaxConsecutiveOverflows: s.cfg.MaxConsecutiveOverflows,
		Stable:                  s.consecutiveOverflows < s.cfg.MaxConsecutiveOverflows,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
