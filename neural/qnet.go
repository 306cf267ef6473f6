// Package neural provides the action-value network and the learning agent built on it.
package neural

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Activation names used in model files.
const (
	ActivationReLU   = "relu"
	ActivationLinear = "linear"
)

// Architecture describes the layer sizes of a QNetwork.
type Architecture struct {
	Inputs  int
	Hidden  []int
	Outputs int
}

// Layers returns all layer sizes from input to output.
func (a Architecture) Layers() []int {
	layers := make([]int, 0, len(a.Hidden)+2)
	layers = append(layers, a.Inputs)
	layers = append(layers, a.Hidden...)
	return append(layers, a.Outputs)
}

// Activations returns the activation of every non-input layer.
func (a Architecture) Activations() []string {
	acts := make([]string, len(a.Hidden)+1)
	for i := range a.Hidden {
		acts[i] = ActivationReLU
	}
	acts[len(acts)-1] = ActivationLinear
	return acts
}

// Equal reports whether a and b have identical layer sizes.
func (a Architecture) Equal(b Architecture) bool {
	la, lb := a.Layers(), b.Layers()
	if len(la) != len(lb) {
		return false
	}
	for i := range la {
		if la[i] != lb[i] {
			return false
		}
	}
	return true
}

func (a Architecture) String() string {
	return fmt.Sprint(a.Layers())
}

// QNetwork is a fully connected network mapping a state to one value per action.
// Hidden layers use ReLU; the output layer is linear.
//
// Weights[l] is fanIn x fanOut so a batch of row-vector states X forwards as X*W + b.
type QNetwork struct {
	arch    Architecture
	Weights []*mat.Dense
	Biases  []*mat.Dense // 1 x fanOut
}

// NewQNetwork creates a network with Glorot-uniform weights and zero biases.
func NewQNetwork(arch Architecture, rng *rand.Rand) *QNetwork {
	layers := arch.Layers()
	n := &QNetwork{
		arch:    arch,
		Weights: make([]*mat.Dense, len(layers)-1),
		Biases:  make([]*mat.Dense, len(layers)-1),
	}
	for l := 0; l < len(layers)-1; l++ {
		fanIn, fanOut := layers[l], layers[l+1]
		limit := math.Sqrt(6.0 / float64(fanIn+fanOut))
		data := make([]float64, fanIn*fanOut)
		for i := range data {
			data[i] = (rng.Float64()*2 - 1) * limit
		}
		n.Weights[l] = mat.NewDense(fanIn, fanOut, data)
		n.Biases[l] = mat.NewDense(1, fanOut, nil)
	}
	return n
}

// Architecture returns the network's layer layout.
func (n *QNetwork) Architecture() Architecture {
	return Architecture{
		Inputs:  n.arch.Inputs,
		Hidden:  append([]int(nil), n.arch.Hidden...),
		Outputs: n.arch.Outputs,
	}
}

// Predict returns the action values for a single state.
func (n *QNetwork) Predict(state []float64) []float64 {
	if len(state) != n.arch.Inputs {
		panic(fmt.Sprintf("neural: state has %d values, network expects %d", len(state), n.arch.Inputs))
	}
	x := mat.NewDense(1, len(state), append([]float64(nil), state...))
	out := n.PredictBatch(x)
	return append([]float64(nil), out.RawRowView(0)...)
}

// PredictBatch forwards every row of states in a single pass.
func (n *QNetwork) PredictBatch(states *mat.Dense) *mat.Dense {
	acts, _ := n.forward(states)
	return acts[len(acts)-1]
}

// forward returns the activations of every layer (input included) and the
// pre-activations of every non-input layer.
func (n *QNetwork) forward(x *mat.Dense) (acts, pre []*mat.Dense) {
	rows, _ := x.Dims()
	acts = make([]*mat.Dense, len(n.Weights)+1)
	pre = make([]*mat.Dense, len(n.Weights))
	acts[0] = x

	for l, w := range n.Weights {
		_, fanOut := w.Dims()
		z := mat.NewDense(rows, fanOut, nil)
		z.Mul(acts[l], w)
		bias := n.Biases[l].RawRowView(0)
		for r := 0; r < rows; r++ {
			floats.Add(z.RawRowView(r), bias)
		}
		pre[l] = z

		if l == len(n.Weights)-1 {
			acts[l+1] = z
			continue
		}
		a := mat.NewDense(rows, fanOut, nil)
		a.Apply(func(_, _ int, v float64) float64 { return math.Max(v, 0) }, z)
		acts[l+1] = a
	}
	return acts, pre
}

// TrainBatch performs exactly one optimizer step that reduces the mean squared
// error between the network's output for states and targets, averaged over
// every element of the batch. It returns the loss measured before the step.
func (n *QNetwork) TrainBatch(states, targets *mat.Dense, opt *Adam) float64 {
	acts, pre := n.forward(states)
	out := acts[len(acts)-1]

	rows, cols := out.Dims()
	if tr, tc := targets.Dims(); tr != rows || tc != cols {
		panic(fmt.Sprintf("neural: targets are %dx%d, output is %dx%d", tr, tc, rows, cols))
	}

	var diff mat.Dense
	diff.Sub(out, targets)
	count := float64(rows * cols)
	var loss float64
	for r := 0; r < rows; r++ {
		row := diff.RawRowView(r)
		loss += floats.Dot(row, row)
	}
	loss /= count

	// dL/dOut
	delta := mat.DenseCopyOf(&diff)
	delta.Scale(2/count, delta)

	gradW := make([]*mat.Dense, len(n.Weights))
	gradB := make([]*mat.Dense, len(n.Biases))
	for l := len(n.Weights) - 1; l >= 0; l-- {
		fanIn, fanOut := n.Weights[l].Dims()

		gw := mat.NewDense(fanIn, fanOut, nil)
		gw.Mul(acts[l].T(), delta)
		gradW[l] = gw

		gb := mat.NewDense(1, fanOut, nil)
		for c := 0; c < fanOut; c++ {
			gb.Set(0, c, floats.Sum(mat.Col(nil, c, delta)))
		}
		gradB[l] = gb

		if l == 0 {
			break
		}
		next := mat.NewDense(rows, fanIn, nil)
		next.Mul(delta, n.Weights[l].T())
		z := pre[l-1]
		next.Apply(func(i, j int, v float64) float64 {
			if z.At(i, j) > 0 {
				return v
			}
			return 0
		}, next)
		delta = next
	}

	params := make([]*mat.Dense, 0, 2*len(n.Weights))
	grads := make([]*mat.Dense, 0, 2*len(n.Weights))
	for l := range n.Weights {
		params = append(params, n.Weights[l], n.Biases[l])
		grads = append(grads, gradW[l], gradB[l])
	}
	opt.Step(params, grads)

	return loss
}

// Clone returns a deep copy of the network.
func (n *QNetwork) Clone() *QNetwork {
	c := &QNetwork{
		arch:    n.Architecture(),
		Weights: make([]*mat.Dense, len(n.Weights)),
		Biases:  make([]*mat.Dense, len(n.Biases)),
	}
	for l := range n.Weights {
		c.Weights[l] = mat.DenseCopyOf(n.Weights[l])
		c.Biases[l] = mat.DenseCopyOf(n.Biases[l])
	}
	return c
}

// Argmax returns the index of the largest value. Ties go to the lowest index.
func Argmax(values []float64) int {
	return floats.MaxIdx(values)
}

func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
