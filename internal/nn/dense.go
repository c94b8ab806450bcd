package nn

import (
	"fmt"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/mlp/internal/tensor"
)

// Dense implements a fully connected layer with hand-derived gradients.
//
// Performs the transformation: y = x @ W.T + b
// where:
//   - x is the input with shape [batch_size, in_features]
//   - W is the weight matrix with shape [out_features, in_features]
//   - b is the optional bias vector with shape [out_features]
//   - y is the output with shape [batch_size, out_features]
//
// Weights are initialized with Kaiming-normal (std = sqrt(2/in_features)),
// biases with zeros.
//
// Forward keeps a private copy of its input; Backward consumes that copy.
// Only the most recent Forward can be back-propagated, so Forward and
// Backward must alternate one-to-one per training step.
//
// Example:
//
//	layer := nn.NewDense(2, 4, true, tensor.NewSource(42))
//	out, err := layer.Forward(x)           // [batch, 4]
//	gradIn, err := layer.Backward(gradOut) // [batch, 2]; fills WeightGrad/BiasGrad
type Dense struct {
	inFeatures  int
	outFeatures int
	weight      *Parameter // [out_features, in_features]
	bias        *Parameter // [out_features], nil when disabled

	cachedInput *tensor.NDArray // [batch, in_features], copy of the last Forward input
}

// NewDense creates a new Dense layer.
//
// Panics if inFeatures or outFeatures is not positive.
func NewDense(inFeatures, outFeatures int, useBias bool, src *tensor.Source) *Dense {
	if inFeatures <= 0 || outFeatures <= 0 {
		panic(fmt.Sprintf("nn.NewDense: features must be positive, got in=%d out=%d", inFeatures, outFeatures))
	}

	weight := NewParameter("weight", KaimingNormal(tensor.Shape{outFeatures, inFeatures}, src))

	var bias *Parameter
	if useBias {
		bias = NewParameter("bias", tensor.Zeros(tensor.Shape{outFeatures}))
	}

	return &Dense{
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
		weight:      weight,
		bias:        bias,
	}
}

// Forward computes output[b,o] = Σ_k input[b,k]*W[o,k] + bias[o].
//
// Input shape: [batch_size, in_features] with batch_size > 0.
// Output shape: [batch_size, out_features].
func (d *Dense) Forward(input *tensor.NDArray) (*tensor.NDArray, error) {
	if err := d.checkInput(input, "dense forward"); err != nil {
		return nil, err
	}
	d.cachedInput = input.Clone()
	return d.affine(d.cachedInput), nil
}

// Infer computes the same output as Forward without caching the input, so
// a pending Backward still sees the last Forward.
func (d *Dense) Infer(input *tensor.NDArray) (*tensor.NDArray, error) {
	if err := d.checkInput(input, "dense infer"); err != nil {
		return nil, err
	}
	return d.affine(input), nil
}

func (d *Dense) checkInput(input *tensor.NDArray, op string) error {
	shape := input.Shape()
	if len(shape) != 2 || shape[1] != d.inFeatures || shape[0] == 0 {
		return errors.Wrapf(tensor.ErrShapeMismatch,
			"%s: expected [batch, %d] with batch > 0, got %v", op, d.inFeatures, shape)
	}
	return nil
}

func (d *Dense) affine(input *tensor.NDArray) *tensor.NDArray {
	batch := input.Shape()[0]

	output := tensor.New(tensor.Shape{batch, d.outFeatures})
	x := mat.NewDense(batch, d.inFeatures, input.Data())
	w := mat.NewDense(d.outFeatures, d.inFeatures, d.weight.Value().Data())
	y := mat.NewDense(batch, d.outFeatures, output.Data())
	y.Mul(x, w.T())

	if d.bias != nil {
		b := d.bias.Value().Data()
		out := output.Data()
		for r := 0; r < batch; r++ {
			floats.Add(out[r*d.outFeatures:(r+1)*d.outFeatures], b)
		}
	}

	return output
}

// Backward computes parameter gradients and the gradient w.r.t. the input.
//
// gradOutput must have shape [batch_size, out_features] with the batch size
// of the preceding Forward. Gradients are reset first, then accumulated over
// the batch:
//
//	weight_grad[o,i] += Σ_b grad_output[b,o] * input[b,i]
//	bias_grad[o]     += Σ_b grad_output[b,o]
//	grad_input[b,i]   = Σ_o grad_output[b,o] * W[o,i]
func (d *Dense) Backward(gradOutput *tensor.NDArray) (*tensor.NDArray, error) {
	if d.cachedInput == nil {
		return nil, errors.Wrap(ErrNoForward, "dense backward")
	}
	batch := d.cachedInput.Shape()[0]
	want := tensor.Shape{batch, d.outFeatures}
	if got := gradOutput.Shape(); !got.Equal(want) {
		return nil, errors.Wrapf(tensor.ErrShapeMismatch,
			"dense backward: expected grad %v, got %v", want, got)
	}

	d.ZeroGrad()

	g := mat.NewDense(batch, d.outFeatures, gradOutput.Data())
	x := mat.NewDense(batch, d.inFeatures, d.cachedInput.Data())
	w := mat.NewDense(d.outFeatures, d.inFeatures, d.weight.Value().Data())

	var dw mat.Dense
	dw.Mul(g.T(), x)
	floats.Add(d.weight.Grad().Data(), dw.RawMatrix().Data)

	if d.bias != nil {
		gb := d.bias.Grad().Data()
		grad := gradOutput.Data()
		for r := 0; r < batch; r++ {
			floats.Add(gb, grad[r*d.outFeatures:(r+1)*d.outFeatures])
		}
	}

	gradInput := tensor.New(tensor.Shape{batch, d.inFeatures})
	gi := mat.NewDense(batch, d.inFeatures, gradInput.Data())
	gi.Mul(g, w)

	return gradInput, nil
}

// UpdateWeights applies a plain gradient-descent step: p -= lr * grad.
func (d *Dense) UpdateWeights(lr float64) {
	for _, p := range d.Parameters() {
		floats.AddScaled(p.Value().Data(), -lr, p.Grad().Data())
	}
}

// ZeroGrad resets weight and bias gradients to zeros.
func (d *Dense) ZeroGrad() {
	for _, p := range d.Parameters() {
		p.ZeroGrad()
	}
}

// Parameters returns [weight, bias] if bias is present, otherwise [weight].
func (d *Dense) Parameters() []*Parameter {
	if d.bias != nil {
		return []*Parameter{d.weight, d.bias}
	}
	return []*Parameter{d.weight}
}

// Weight returns the weight array [out_features, in_features].
func (d *Dense) Weight() *tensor.NDArray {
	return d.weight.Value()
}

// Bias returns the bias array, or nil when the layer has no bias.
func (d *Dense) Bias() *tensor.NDArray {
	if d.bias == nil {
		return nil
	}
	return d.bias.Value()
}

// WeightGrad returns the weight gradient accumulator.
func (d *Dense) WeightGrad() *tensor.NDArray {
	return d.weight.Grad()
}

// BiasGrad returns the bias gradient accumulator, or nil when the layer has no bias.
func (d *Dense) BiasGrad() *tensor.NDArray {
	if d.bias == nil {
		return nil
	}
	return d.bias.Grad()
}

// SetWeight copies w into the weight. The shape must be [out_features, in_features].
func (d *Dense) SetWeight(w *tensor.NDArray) error {
	return d.weight.Set(w)
}

// SetBias copies b into the bias. The shape must be [out_features].
func (d *Dense) SetBias(b *tensor.NDArray) error {
	if d.bias == nil {
		return errors.New("dense layer has no bias")
	}
	return d.bias.Set(b)
}

// InFeatures returns the number of input features.
func (d *Dense) InFeatures() int {
	return d.inFeatures
}

// OutFeatures returns the number of output features.
func (d *Dense) OutFeatures() int {
	return d.outFeatures
}

// HasBias reports whether the layer adds a bias term.
func (d *Dense) HasBias() bool {
	return d.bias != nil
}

// NumParameters returns in*out, plus out when bias is enabled.
func (d *Dense) NumParameters() int {
	n := d.inFeatures * d.outFeatures
	if d.bias != nil {
		n += d.outFeatures
	}
	return n
}
