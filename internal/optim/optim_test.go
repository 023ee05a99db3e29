package optim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ember-ml/ember/internal/tensor"
)

func newParam(t *testing.T, name string, values ...float32) *Parameter {
	t.Helper()
	data, err := tensor.FromFloat32(values, tensor.Shape{len(values)})
	require.NoError(t, err)
	p, err := NewParameter(name, data)
	require.NoError(t, err)
	return p
}

func grad(values ...float32) *tensor.RawTensor {
	g, err := tensor.FromFloat32(values, tensor.Shape{len(values)})
	if err != nil {
		panic(err)
	}
	return g
}

// Parameter

func TestNewParameter_Validation(t *testing.T) {
	data, _ := tensor.FromFloat32([]float32{1}, tensor.Shape{1})

	_, err := NewParameter("", data)
	assert.Error(t, err)

	_, err = NewParameter("w", nil)
	assert.Error(t, err)

	half := tensor.Zeros(tensor.Shape{1}, tensor.Float16)
	_, err = NewParameter("w", half)
	assert.Error(t, err, "parameters must hold float32 master weights")
}

func TestParameter_GradLifecycle(t *testing.T) {
	p := newParam(t, "w", 1.0)
	assert.Nil(t, p.Grad(), "fresh parameter carries no gradient")

	g := grad(0.5)
	p.SetGrad(g)
	assert.Same(t, g, p.Grad())

	p.ZeroGrad()
	assert.Nil(t, p.Grad())
}

// SGD

func TestSGD_SimpleUpdate(t *testing.T) {
	p := newParam(t, "x", 2.0)
	sgd := NewSGD([]*Parameter{p}, SGDConfig{LR: 0.1})

	err := sgd.Step(map[string]*tensor.RawTensor{"x": grad(1.0)})
	require.NoError(t, err)

	// x_new = 2.0 - 0.1 * 1.0
	assert.InDelta(t, 1.9, p.Data().AsFloat32()[0], 1e-6)
}

func TestSGD_WithMomentum(t *testing.T) {
	p := newParam(t, "x", 2.0)
	sgd := NewSGD([]*Parameter{p}, SGDConfig{LR: 0.1, Momentum: 0.9})

	require.NoError(t, sgd.Step(map[string]*tensor.RawTensor{"x": grad(1.0)}))
	// v = 1.0, x = 2.0 - 0.1 = 1.9
	assert.InDelta(t, 1.9, p.Data().AsFloat32()[0], 1e-6)

	require.NoError(t, sgd.Step(map[string]*tensor.RawTensor{"x": grad(1.0)}))
	// v = 0.9*1.0 + 1.0 = 1.9, x = 1.9 - 0.19 = 1.71
	assert.InDelta(t, 1.71, p.Data().AsFloat32()[0], 1e-6)
}

func TestSGD_MissingGradientSkipsParameter(t *testing.T) {
	p := newParam(t, "x", 5.0)
	sgd := NewSGD([]*Parameter{p}, SGDConfig{LR: 0.1})

	require.NoError(t, sgd.Step(map[string]*tensor.RawTensor{}))
	assert.Equal(t, float32(5.0), p.Data().AsFloat32()[0])
}

func TestSGD_ShapeMismatch(t *testing.T) {
	p := newParam(t, "x", 1, 2)
	sgd := NewSGD([]*Parameter{p}, SGDConfig{})

	err := sgd.Step(map[string]*tensor.RawTensor{"x": grad(1, 2, 3)})
	assert.Error(t, err)
}

func TestSGD_GradientDTypeMismatch(t *testing.T) {
	p := newParam(t, "x", 1)
	sgd := NewSGD([]*Parameter{p}, SGDConfig{})

	bad := tensor.Zeros(tensor.Shape{1}, tensor.Float64)
	err := sgd.Step(map[string]*tensor.RawTensor{"x": bad})
	assert.Error(t, err)
}

func TestSGD_ZeroGrad(t *testing.T) {
	p := newParam(t, "x", 1.0)
	sgd := NewSGD([]*Parameter{p}, SGDConfig{LR: 0.1})

	p.SetGrad(grad(1.0))
	sgd.ZeroGrad()
	assert.Nil(t, p.Grad())
}

func TestSGD_Defaults(t *testing.T) {
	sgd := NewSGD(nil, SGDConfig{})
	assert.Equal(t, float32(0.01), sgd.GetLR())

	sgd.SetLR(0.5)
	assert.Equal(t, float32(0.5), sgd.GetLR())
}

func TestSGD_StateDictRoundTrip(t *testing.T) {
	p := newParam(t, "x", 2.0)
	sgd := NewSGD([]*Parameter{p}, SGDConfig{LR: 0.1, Momentum: 0.9})
	require.NoError(t, sgd.Step(map[string]*tensor.RawTensor{"x": grad(1.0)}))

	state := sgd.StateDict()
	require.Contains(t, state, "velocity.x")

	p2 := newParam(t, "x", 1.9)
	restored := NewSGD([]*Parameter{p2}, SGDConfig{LR: 0.1, Momentum: 0.9})
	require.NoError(t, restored.LoadStateDict(state))

	// Both optimizers must now produce the same second step.
	require.NoError(t, sgd.Step(map[string]*tensor.RawTensor{"x": grad(1.0)}))
	require.NoError(t, restored.Step(map[string]*tensor.RawTensor{"x": grad(1.0)}))
	assert.InDelta(t, p.Data().AsFloat32()[0], p2.Data().AsFloat32()[0], 1e-6)
}

// Adam

func TestAdam_SingleStep(t *testing.T) {
	p := newParam(t, "x", 1.0)
	adam := NewAdam([]*Parameter{p}, AdamConfig{LR: 0.001})

	require.NoError(t, adam.Step(map[string]*tensor.RawTensor{"x": grad(1.0)}))

	// After bias correction the first step moves by almost exactly lr.
	assert.InDelta(t, 0.999, p.Data().AsFloat32()[0], 1e-5)
}

func TestAdam_Defaults(t *testing.T) {
	adam := NewAdam(nil, AdamConfig{})
	assert.Equal(t, float32(0.001), adam.GetLR())
	assert.Equal(t, float32(0.9), adam.beta1)
	assert.Equal(t, float32(0.999), adam.beta2)
	assert.Equal(t, float32(1e-8), adam.eps)
}

func TestAdam_ZeroGrad(t *testing.T) {
	p := newParam(t, "x", 1.0)
	adam := NewAdam([]*Parameter{p}, AdamConfig{})

	p.SetGrad(grad(1.0))
	adam.ZeroGrad()
	assert.Nil(t, p.Grad())
}

func TestAdam_MissingGradientSkipsParameter(t *testing.T) {
	p := newParam(t, "x", 3.0)
	adam := NewAdam([]*Parameter{p}, AdamConfig{})

	require.NoError(t, adam.Step(map[string]*tensor.RawTensor{}))
	assert.Equal(t, float32(3.0), p.Data().AsFloat32()[0])
}

func TestAdam_StateDictRoundTrip(t *testing.T) {
	p := newParam(t, "x", 1.0)
	adam := NewAdam([]*Parameter{p}, AdamConfig{LR: 0.001})
	require.NoError(t, adam.Step(map[string]*tensor.RawTensor{"x": grad(1.0)}))

	state := adam.StateDict()
	require.Contains(t, state, "step")
	require.Contains(t, state, "m.x")
	require.Contains(t, state, "v.x")

	p2 := newParam(t, "x", p.Data().AsFloat32()[0])
	restored := NewAdam([]*Parameter{p2}, AdamConfig{LR: 0.001})
	require.NoError(t, restored.LoadStateDict(state))
	assert.Equal(t, adam.t, restored.t)

	require.NoError(t, adam.Step(map[string]*tensor.RawTensor{"x": grad(0.5)}))
	require.NoError(t, restored.Step(map[string]*tensor.RawTensor{"x": grad(0.5)}))
	assert.InDelta(t, p.Data().AsFloat32()[0], p2.Data().AsFloat32()[0], 1e-6)
}

func TestAdam_LoadStateDict_MissingSecondMoment(t *testing.T) {
	p := newParam(t, "x", 1.0)
	adam := NewAdam([]*Parameter{p}, AdamConfig{})

	state := map[string]*tensor.RawTensor{"m.x": grad(0.1)}
	assert.Error(t, adam.LoadStateDict(state))
}
