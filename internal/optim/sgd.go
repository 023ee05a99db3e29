package optim

import (
	"github.com/cockroachdb/errors"

	"github.com/ember-ml/ember/internal/tensor"
)

// SGD implements stochastic gradient descent with optional momentum.
//
// Update rule without momentum:
//
//	param = param - lr * gradient
//
// Update rule with momentum:
//
//	velocity = momentum * velocity + gradient
//	param = param - lr * velocity
type SGD struct {
	params     []*Parameter
	lr         float32
	momentum   float32
	velocities map[string][]float32
}

// SGDConfig holds configuration for the SGD optimizer.
type SGDConfig struct {
	LR       float32 // Learning rate (default: 0.01)
	Momentum float32 // Momentum factor (default: 0.0, range: [0, 1))
}

// NewSGD creates a new SGD optimizer over the given parameters.
func NewSGD(params []*Parameter, config SGDConfig) *SGD {
	if config.LR == 0 {
		config.LR = 0.01
	}

	return &SGD{
		params:     params,
		lr:         config.LR,
		momentum:   config.Momentum,
		velocities: make(map[string][]float32),
	}
}

// Step applies one SGD update. Parameters without a gradient in the mapping
// are skipped.
func (s *SGD) Step(grads map[string]*tensor.RawTensor) error {
	for _, param := range s.params {
		grad, err := gradFor(param, grads)
		if err != nil {
			return err
		}
		if grad == nil {
			continue
		}

		pd := param.Data().AsFloat32()
		gd := grad.AsFloat32()

		if s.momentum == 0 {
			for i := range pd {
				pd[i] -= s.lr * gd[i]
			}
			continue
		}

		vel, ok := s.velocities[param.Name()]
		if !ok {
			vel = make([]float32, len(pd))
			s.velocities[param.Name()] = vel
		}
		for i := range pd {
			vel[i] = s.momentum*vel[i] + gd[i]
			pd[i] -= s.lr * vel[i]
		}
	}
	return nil
}

// ZeroGrad clears the gradient buffers of all parameters.
func (s *SGD) ZeroGrad() {
	for _, param := range s.params {
		param.ZeroGrad()
	}
}

// GetLR returns the current learning rate.
func (s *SGD) GetLR() float32 {
	return s.lr
}

// SetLR updates the learning rate.
func (s *SGD) SetLR(lr float32) {
	s.lr = lr
}

// StateDict exports the velocity buffers, keyed "velocity.{name}".
// Without momentum the state is empty.
func (s *SGD) StateDict() map[string]*tensor.RawTensor {
	state := make(map[string]*tensor.RawTensor)
	if s.momentum == 0 {
		return state
	}

	for _, param := range s.params {
		vel, ok := s.velocities[param.Name()]
		if !ok {
			continue // no velocity yet, parameter has not been stepped
		}
		t, err := tensor.FromFloat32(vel, param.Data().Shape())
		if err != nil {
			panic(err) // velocity length always matches the parameter shape
		}
		state["velocity."+param.Name()] = t
	}
	return state
}

// LoadStateDict restores velocity buffers from StateDict output. Missing
// entries leave the velocity to be initialized on first step.
func (s *SGD) LoadStateDict(state map[string]*tensor.RawTensor) error {
	if s.momentum == 0 {
		return nil
	}

	s.velocities = make(map[string][]float32)
	for _, param := range s.params {
		t, ok := state["velocity."+param.Name()]
		if !ok {
			continue
		}
		if !t.Shape().Equal(param.Data().Shape()) {
			return errors.Newf("optim: velocity shape %v for %q does not match parameter shape %v",
				t.Shape(), param.Name(), param.Data().Shape())
		}
		vel := make([]float32, t.NumElements())
		copy(vel, t.AsFloat32())
		s.velocities[param.Name()] = vel
	}
	return nil
}
