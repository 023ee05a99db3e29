// Package optim implements the optimizers of the Ember training runtime.
//
// Optimizers consume gradients as a name -> tensor mapping, the same shape
// the loss scaler checks and unscales, and update float32 master weights in
// place. A parameter whose name is absent from the mapping is skipped, so a
// partial backward pass is not an error.
package optim

import (
	"github.com/cockroachdb/errors"

	"github.com/ember-ml/ember/internal/tensor"
)

// Optimizer is the base interface for all optimization algorithms.
type Optimizer interface {
	// Step applies one gradient update to all parameters. Gradients arrive
	// unscaled (the training driver unscales before stepping).
	Step(grads map[string]*tensor.RawTensor) error

	// ZeroGrad clears the gradient buffers of all parameters, so
	// gradients from one iteration do not leak into the next.
	ZeroGrad()

	// GetLR returns the current learning rate.
	GetLR() float32

	// SetLR updates the learning rate, for scheduling.
	SetLR(lr float32)

	// StateDict returns the optimizer state for serialization.
	StateDict() map[string]*tensor.RawTensor

	// LoadStateDict restores optimizer state from StateDict output.
	LoadStateDict(state map[string]*tensor.RawTensor) error
}

// gradFor fetches and validates the gradient for one parameter.
// A missing gradient returns (nil, nil): the parameter sat out this step.
func gradFor(p *Parameter, grads map[string]*tensor.RawTensor) (*tensor.RawTensor, error) {
	grad, ok := grads[p.Name()]
	if !ok || grad == nil {
		return nil, nil
	}
	if grad.DType() != tensor.Float32 {
		return nil, errors.Newf("optim: gradient for %q is %s, want float32", p.Name(), grad.DType())
	}
	if !grad.Shape().Equal(p.Data().Shape()) {
		return nil, errors.Newf("optim: gradient shape %v for %q does not match parameter shape %v",
			grad.Shape(), p.Name(), p.Data().Shape())
	}
	return grad, nil
}
