package optim

import (
	"github.com/cockroachdb/errors"

	"github.com/ember-ml/ember/internal/tensor"
)

// Parameter is a named trainable tensor. Parameters hold float32 master
// weights even when the forward pass runs in reduced precision; gradient
// mappings are keyed by parameter name.
//
// A parameter may also carry its own gradient buffer, set by the backward
// pass and cleared by ZeroGrad between iterations.
type Parameter struct {
	name string
	data *tensor.RawTensor
	grad *tensor.RawTensor
}

// NewParameter wraps a float32 tensor as a named parameter.
func NewParameter(name string, data *tensor.RawTensor) (*Parameter, error) {
	if name == "" {
		return nil, errors.New("optim: parameter name is empty")
	}
	if data == nil {
		return nil, errors.Newf("optim: parameter %q has nil data", name)
	}
	if data.DType() != tensor.Float32 {
		return nil, errors.Newf("optim: parameter %q must hold float32 master weights, got %s", name, data.DType())
	}
	return &Parameter{name: name, data: data}, nil
}

// Name returns the parameter's name, the key its gradient travels under.
func (p *Parameter) Name() string {
	return p.name
}

// Data returns the parameter's tensor. Optimizers update it in place.
func (p *Parameter) Data() *tensor.RawTensor {
	return p.data
}

// Grad returns the parameter's gradient buffer, or nil if no gradient has
// been attached since the last ZeroGrad.
func (p *Parameter) Grad() *tensor.RawTensor {
	return p.grad
}

// SetGrad attaches a gradient buffer. Typically called by the backward
// pass; the optimizer reads it through the gradient mapping.
func (p *Parameter) SetGrad(grad *tensor.RawTensor) {
	p.grad = grad
}

// ZeroGrad releases the gradient buffer so gradients from one iteration
// cannot accumulate into the next.
func (p *Parameter) ZeroGrad() {
	p.grad = nil
}
