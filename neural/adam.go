package neural

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Adam hyperparameters besides the learning rate.
const (
	AdamBeta1   = 0.9
	AdamBeta2   = 0.999
	AdamEpsilon = 1e-7
)

// Adam is the Adam optimizer with bias-corrected moment estimates.
// Moment buffers are allocated on the first Step from the parameter shapes.
type Adam struct {
	LearningRate float64

	step int
	m, v []*mat.Dense
}

// NewAdam creates an optimizer with fresh state.
func NewAdam(learningRate float64) *Adam {
	return &Adam{LearningRate: learningRate}
}

// Steps returns the number of updates applied so far.
func (a *Adam) Steps() int {
	return a.step
}

// Step updates params in place from grads. Both slices must keep the same
// order and shapes across calls.
func (a *Adam) Step(params, grads []*mat.Dense) {
	if len(params) != len(grads) {
		panic(fmt.Sprintf("neural: %d params but %d grads", len(params), len(grads)))
	}
	if a.m == nil {
		a.m = make([]*mat.Dense, len(params))
		a.v = make([]*mat.Dense, len(params))
		for i, p := range params {
			r, c := p.Dims()
			a.m[i] = mat.NewDense(r, c, nil)
			a.v[i] = mat.NewDense(r, c, nil)
		}
	}

	a.step++
	corr1 := 1 - math.Pow(AdamBeta1, float64(a.step))
	corr2 := 1 - math.Pow(AdamBeta2, float64(a.step))

	for i, p := range params {
		g := grads[i]
		m, v := a.m[i], a.v[i]
		r, c := p.Dims()
		for row := 0; row < r; row++ {
			pr, gr := p.RawRowView(row), g.RawRowView(row)
			mr, vr := m.RawRowView(row), v.RawRowView(row)
			for j := 0; j < c; j++ {
				mr[j] = AdamBeta1*mr[j] + (1-AdamBeta1)*gr[j]
				vr[j] = AdamBeta2*vr[j] + (1-AdamBeta2)*gr[j]*gr[j]
				mHat := mr[j] / corr1
				vHat := vr[j] / corr2
				pr[j] -= a.LearningRate * mHat / (math.Sqrt(vHat) + AdamEpsilon)
			}
		}
	}
}
