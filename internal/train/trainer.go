// Package train provides the mixed-precision training step driver: the
// closed loop that scales the loss, runs the caller's backward pass, checks
// gradients for overflow, and either applies or skips the optimizer step.
package train

import (
	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"

	"github.com/ember-ml/ember/internal/amp"
	"github.com/ember-ml/ember/internal/optim"
	"github.com/ember-ml/ember/internal/tensor"
)

// BackwardFunc runs the caller's backward pass for one step. It receives
// the scaled loss and returns gradients keyed by parameter name. The
// gradients still carry the loss scale; the trainer unscales them.
type BackwardFunc func(scaledLoss *tensor.RawTensor) (map[string]*tensor.RawTensor, error)

// Config holds trainer tunables.
type Config struct {
	// ClipNorm bounds the global gradient norm after unscaling.
	// Zero disables clipping.
	ClipNorm float64
}

// StepResult summarizes one training step.
type StepResult struct {
	Step     int64   // 1-based step counter, skipped steps included
	Skipped  bool    // optimizer update was discarded due to overflow
	Scale    float64 // loss scale after the step's adaptation
	GradNorm float64 // global gradient norm after unscaling; 0 when skipped
}

// Trainer drives the mixed-precision step loop. It owns a loss scaler and
// an optimizer and is, like the scaler, single-caller by contract.
type Trainer struct {
	scaler    *amp.LossScaler
	optimizer optim.Optimizer
	cfg       Config
	log       zerolog.Logger

	steps   int64
	skipped int64
}

// Option configures a Trainer at construction.
type Option func(*Trainer)

// WithLogger attaches a structured logger for step outcomes.
func WithLogger(log zerolog.Logger) Option {
	return func(t *Trainer) {
		t.log = log
	}
}

// New creates a Trainer around a scaler and an optimizer.
func New(scaler *amp.LossScaler, optimizer optim.Optimizer, cfg Config, opts ...Option) (*Trainer, error) {
	if scaler == nil {
		return nil, errors.New("train: loss scaler is nil")
	}
	if optimizer == nil {
		return nil, errors.New("train: optimizer is nil")
	}
	if cfg.ClipNorm < 0 {
		return nil, errors.Newf("train: clip norm must be >= 0, got %g", cfg.ClipNorm)
	}

	t := &Trainer{
		scaler:    scaler,
		optimizer: optimizer,
		cfg:       cfg,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Step runs one training step: scale the loss, run backward, check the
// gradients, and apply or skip the optimizer update.
//
// Gradients are unscaled with the scale they were computed under, so the
// scaler's adaptation runs only after the update is applied (or immediately
// on the skip path, where no unscale happens). Parameter gradient buffers
// are cleared on both paths.
func (t *Trainer) Step(loss *tensor.RawTensor, backward BackwardFunc) (StepResult, error) {
	if loss == nil {
		return StepResult{}, errors.Mark(errors.New("train: loss tensor is nil"), amp.ErrInvalidArgument)
	}
	if backward == nil {
		return StepResult{}, errors.Mark(errors.New("train: backward func is nil"), amp.ErrInvalidArgument)
	}

	scaledLoss, err := t.scaler.ScaleLoss(loss)
	if err != nil {
		return StepResult{}, err
	}

	grads, err := backward(scaledLoss)
	if err != nil {
		return StepResult{}, errors.Wrap(err, "train: backward pass")
	}

	overflow, err := t.scaler.CheckOverflow(grads)
	if err != nil {
		return StepResult{}, err
	}

	t.steps++
	if overflow {
		t.scaler.Update(true)
		t.optimizer.ZeroGrad()
		t.skipped++
		t.log.Warn().
			Int64("step", t.steps).
			Float64("scale", t.scaler.Scale()).
			Int64("skipped_total", t.skipped).
			Msg("gradient overflow, skipping optimizer step")
		return StepResult{Step: t.steps, Skipped: true, Scale: t.scaler.Scale()}, nil
	}

	unscaled, err := t.scaler.UnscaleGrads(grads)
	if err != nil {
		return StepResult{}, err
	}

	var norm float64
	if t.cfg.ClipNorm > 0 {
		norm = ClipByGlobalNorm(unscaled, t.cfg.ClipNorm)
	} else {
		norm = GlobalNorm(unscaled)
	}

	if err := t.optimizer.Step(unscaled); err != nil {
		return StepResult{}, errors.Wrap(err, "train: optimizer step")
	}
	t.optimizer.ZeroGrad()
	t.scaler.Update(false)

	t.log.Debug().
		Int64("step", t.steps).
		Float64("scale", t.scaler.Scale()).
		Float64("grad_norm", norm).
		Msg("optimizer step applied")

	return StepResult{Step: t.steps, Scale: t.scaler.Scale(), GradNorm: norm}, nil
}

// Steps returns the number of steps driven so far, skipped ones included.
func (t *Trainer) Steps() int64 {
	return t.steps
}

// SkippedSteps returns the number of steps discarded due to overflow.
func (t *Trainer) SkippedSteps() int64 {
	return t.skipped
}

// ScalerStats returns the loss scaler's current snapshot.
func (t *Trainer) ScalerStats() amp.Stats {
	return t.scaler.Stats()
}
