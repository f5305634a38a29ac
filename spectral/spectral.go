// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spectral

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"math/rand"

	"github.com/goki/ki/kit"
	"gonum.org/v1/gonum/mat"
)

// ErrZeroEigenvalue is returned when the largest eigenvalue magnitude is zero,
// so the matrix cannot be rescaled to a target radius
var ErrZeroEigenvalue = errors.New("spectral: largest eigenvalue is zero")

// Method is the spectral radius estimation method
type Method int

//go:generate stringer -type=Method

var KiT_Method = kit.Enums.AddEnum(MethodN, kit.NotBitFlag, nil)

func (ev Method) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Method) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

func (ev Method) MarshalText() ([]byte, error)  { return []byte(ev.String()), nil }
func (ev *Method) UnmarshalText(b []byte) error { return ev.FromString(string(b)) }

// The estimation methods
const (
	// PowerExact uses power iteration, and the exact eigen decomposition
	// if power iteration does not converge
	PowerExact Method = iota

	// Power uses power iteration only, returning the last estimate
	// if it does not converge
	Power

	// Exact uses the dense eigen decomposition
	Exact

	MethodN
)

// Params control spectral radius estimation
type Params struct {
	Method  Method  `desc:"estimation method"`
	MaxIter int     `def:"1000" min:"1" desc:"maximum number of power iterations"`
	Tol     float64 `def:"1e-10" min:"0" desc:"relative change of the estimate at which power iteration has converged"`
	Seed    int64   `def:"1" desc:"seed of the power iteration start vector"`
}

func (sp *Params) Defaults() {
	sp.Method = PowerExact
	sp.MaxIter = 1000
	sp.Tol = 1e-10
	sp.Seed = 1
}

// stableIters is the number of consecutive iterations within tolerance
// required for convergence, so that an oscillating estimate is not taken
// as converged when it momentarily stands still
const stableIters = 3

// PowerIter estimates the largest eigenvalue magnitude by power iteration,
// returning the estimate and whether it converged.
// A matrix that maps the iterate to exactly zero has radius 0.
func PowerIter(m *Sparse, maxIter int, tol float64, seed int64) (float64, bool) {
	if m.N == 0 {
		return 0, true
	}
	rnd := rand.New(rand.NewSource(seed))
	x := make([]float64, m.N)
	y := make([]float64, m.N)
	for i := range x {
		x[i] = 0.5 + rnd.Float64()
	}
	normalize(x)
	lambda := 0.0
	stable := 0
	for it := 0; it < maxIter; it++ {
		m.MulVec(y, x)
		nrm := normalize(y)
		if nrm == 0 {
			return 0, true
		}
		if it > 0 && math.Abs(nrm-lambda) <= tol*nrm {
			stable++
		} else {
			stable = 0
		}
		lambda = nrm
		if stable >= stableIters {
			return lambda, true
		}
		x, y = y, x
	}
	return lambda, false
}

// normalize scales v to unit length, returning its original length
func normalize(v []float64) float64 {
	sum := 0.0
	for _, x := range v {
		sum += x * x
	}
	nrm := math.Sqrt(sum)
	if nrm == 0 {
		return 0
	}
	for i := range v {
		v[i] /= nrm
	}
	return nrm
}

// ExactRadius returns the largest eigenvalue magnitude from the dense eigen decomposition
func ExactRadius(m *Sparse) (float64, error) {
	if m.N == 0 || m.NNZ() == 0 {
		return 0, nil
	}
	var eig mat.Eigen
	if ok := eig.Factorize(m.Dense(), mat.EigenNone); !ok {
		return 0, errors.New("spectral: eigen decomposition failed")
	}
	mx := 0.0
	for _, v := range eig.Values(nil) {
		if a := cmplx.Abs(v); a > mx {
			mx = a
		}
	}
	return mx, nil
}

// Radius returns the spectral radius of m using given parameters
func Radius(m *Sparse, sp *Params) (float64, error) {
	switch sp.Method {
	case Exact:
		return ExactRadius(m)
	case Power:
		r, _ := PowerIter(m, sp.MaxIter, sp.Tol, sp.Seed)
		return r, nil
	}
	r, conv := PowerIter(m, sp.MaxIter, sp.Tol, sp.Seed)
	if conv {
		return r, nil
	}
	return ExactRadius(m)
}

// Normalize rescales m so that its spectral radius equals target,
// returning the scaling factor applied and the radius before scaling.
// Fails with ErrZeroEigenvalue on a degenerate matrix.
func Normalize(m *Sparse, target float64, sp *Params) (scale, radius float64, err error) {
	radius, err = Radius(m, sp)
	if err != nil {
		return 0, 0, err
	}
	if radius == 0 || radius <= 1e-14*m.Frobenius() {
		return 0, radius, fmt.Errorf("spectral: %d x %d matrix with %d values: %w", m.N, m.N, m.NNZ(), ErrZeroEigenvalue)
	}
	scale = target / radius
	m.Scale(scale)
	return scale, radius, nil
}
