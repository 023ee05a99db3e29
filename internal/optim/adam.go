package optim

import (
	"math"

	"github.com/cockroachdb/errors"

	"github.com/ember-ml/ember/internal/tensor"
)

// Adam implements the Adam optimizer with bias correction.
//
// Update rule:
//
//	m_t = beta1 * m_{t-1} + (1-beta1) * gradient
//	v_t = beta2 * v_{t-1} + (1-beta2) * gradient²
//	m_hat = m_t / (1 - beta1^t)
//	v_hat = v_t / (1 - beta2^t)
//	param = param - lr * m_hat / (sqrt(v_hat) + eps)
//
// Reference: "Adam: A Method for Stochastic Optimization" (Kingma & Ba, 2014).
type Adam struct {
	params []*Parameter
	lr     float32
	beta1  float32
	beta2  float32
	eps    float32
	t      int // timestep for bias correction
	m      map[string][]float32
	v      map[string][]float32
}

// AdamConfig holds configuration for the Adam optimizer.
type AdamConfig struct {
	LR    float32    // Learning rate (default: 0.001)
	Betas [2]float32 // Running-average coefficients (default: [0.9, 0.999])
	Eps   float32    // Numerical stability term (default: 1e-8)
}

// NewAdam creates a new Adam optimizer over the given parameters.
func NewAdam(params []*Parameter, config AdamConfig) *Adam {
	if config.LR == 0 {
		config.LR = 0.001
	}
	if config.Betas[0] == 0 {
		config.Betas[0] = 0.9
	}
	if config.Betas[1] == 0 {
		config.Betas[1] = 0.999
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}

	return &Adam{
		params: params,
		lr:     config.LR,
		beta1:  config.Betas[0],
		beta2:  config.Betas[1],
		eps:    config.Eps,
		m:      make(map[string][]float32),
		v:      make(map[string][]float32),
	}
}

// Step applies one Adam update. The timestep advances once per call, not
// per parameter, so bias correction stays consistent across the model.
func (a *Adam) Step(grads map[string]*tensor.RawTensor) error {
	a.t++
	bc1 := 1 - float32(math.Pow(float64(a.beta1), float64(a.t)))
	bc2 := 1 - float32(math.Pow(float64(a.beta2), float64(a.t)))

	for _, param := range a.params {
		grad, err := gradFor(param, grads)
		if err != nil {
			return err
		}
		if grad == nil {
			continue
		}

		pd := param.Data().AsFloat32()
		gd := grad.AsFloat32()

		m, ok := a.m[param.Name()]
		if !ok {
			m = make([]float32, len(pd))
			a.m[param.Name()] = m
		}
		v, ok := a.v[param.Name()]
		if !ok {
			v = make([]float32, len(pd))
			a.v[param.Name()] = v
		}

		for i := range pd {
			g := gd[i]
			m[i] = a.beta1*m[i] + (1-a.beta1)*g
			v[i] = a.beta2*v[i] + (1-a.beta2)*g*g
			mHat := m[i] / bc1
			vHat := v[i] / bc2
			pd[i] -= a.lr * mHat / (float32(math.Sqrt(float64(vHat))) + a.eps)
		}
	}
	return nil
}

// ZeroGrad clears the gradient buffers of all parameters.
func (a *Adam) ZeroGrad() {
	for _, param := range a.params {
		param.ZeroGrad()
	}
}

// GetLR returns the current learning rate.
func (a *Adam) GetLR() float32 {
	return a.lr
}

// SetLR updates the learning rate.
func (a *Adam) SetLR(lr float32) {
	a.lr = lr
}

// StateDict exports moment buffers ("m.{name}", "v.{name}") and the
// timestep ("step").
func (a *Adam) StateDict() map[string]*tensor.RawTensor {
	state := make(map[string]*tensor.RawTensor)

	step := tensor.Zeros(tensor.Shape{1}, tensor.Float32)
	step.AsFloat32()[0] = float32(a.t)
	state["step"] = step

	for _, param := range a.params {
		m, ok := a.m[param.Name()]
		if !ok {
			continue
		}
		mt, err := tensor.FromFloat32(m, param.Data().Shape())
		if err != nil {
			panic(err) // moment length always matches the parameter shape
		}
		vt, err := tensor.FromFloat32(a.v[param.Name()], param.Data().Shape())
		if err != nil {
			panic(err)
		}
		state["m."+param.Name()] = mt
		state["v."+param.Name()] = vt
	}
	return state
}

// LoadStateDict restores moment buffers and the timestep from StateDict
// output.
func (a *Adam) LoadStateDict(state map[string]*tensor.RawTensor) error {
	if step, ok := state["step"]; ok {
		a.t = int(step.AsFloat32()[0])
	}

	a.m = make(map[string][]float32)
	a.v = make(map[string][]float32)
	for _, param := range a.params {
		mt, ok := state["m."+param.Name()]
		if !ok {
			continue
		}
		vt, ok := state["v."+param.Name()]
		if !ok {
			return errors.Newf("optim: state has first moment but no second moment for %q", param.Name())
		}
		if !mt.Shape().Equal(param.Data().Shape()) || !vt.Shape().Equal(param.Data().Shape()) {
			return errors.Newf("optim: moment shape for %q does not match parameter shape %v",
				param.Name(), param.Data().Shape())
		}
		m := make([]float32, mt.NumElements())
		copy(m, mt.AsFloat32())
		v := make([]float32, vt.NumElements())
		copy(v, vt.AsFloat32())
		a.m[param.Name()] = m
		a.v[param.Name()] = v
	}
	return nil
}
