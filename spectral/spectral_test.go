// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spectral

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func randSparse(n int, density float64, positive bool, seed int64) *Sparse {
	rnd := rand.New(rand.NewSource(seed))
	var ents []Entry
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if r == c || rnd.Float64() >= density {
				continue
			}
			v := rnd.Float64()
			if !positive {
				v = 2*v - 1
			}
			ents = append(ents, Entry{Row: r, Col: c, Val: v})
		}
	}
	return NewSparse(n, ents)
}

func TestSparse(t *testing.T) {
	m := NewSparse(3, []Entry{{2, 0, 1}, {0, 1, 2}, {0, 1, 0.5}, {1, 2, -1}})
	if m.NNZ() != 3 {
		t.Errorf("nnz: got %d, trg 3", m.NNZ())
	}
	y := make([]float64, 3)
	m.MulVec(y, []float64{1, 2, 3})
	trg := []float64{5, -3, 1}
	for i := range y {
		if y[i] != trg[i] {
			t.Errorf("MulVec[%d]: got %g, trg %g", i, y[i], trg[i])
		}
	}
	d := m.Dense()
	if d.At(0, 1) != 2.5 || d.At(2, 0) != 1 {
		t.Errorf("dense: got %v", d)
	}
}

func TestPowerDiag(t *testing.T) {
	m := NewSparse(3, []Entry{{0, 0, 1}, {1, 1, -3}, {2, 2, 2}})
	r, conv := PowerIter(m, 1000, 1e-12, 1)
	if !conv || math.Abs(r-3) > 1e-6 {
		t.Errorf("diag radius: got %g conv %v, trg 3", r, conv)
	}
}

func TestPowerRotation(t *testing.T) {
	// eigenvalues +/- i
	m := NewSparse(2, []Entry{{0, 1, -1}, {1, 0, 1}})
	r, err := Radius(m, &Params{Method: PowerExact, MaxIter: 100, Tol: 1e-12, Seed: 1})
	if err != nil || math.Abs(r-1) > 1e-9 {
		t.Errorf("rotation radius: got %g err %v, trg 1", r, err)
	}
}

func TestPowerVsExact(t *testing.T) {
	m := randSparse(60, 0.15, true, 5)
	sp := Params{}
	sp.Defaults()
	pr, conv := PowerIter(m, sp.MaxIter, sp.Tol, sp.Seed)
	er, err := ExactRadius(m)
	if err != nil {
		t.Fatal(err)
	}
	if !conv {
		t.Errorf("power iteration did not converge on a positive matrix")
	}
	if math.Abs(pr-er) > 1e-6*er {
		t.Errorf("power %g vs exact %g", pr, er)
	}
}

func TestNormalize(t *testing.T) {
	for _, pos := range []bool{true, false} {
		for _, meth := range []Method{PowerExact, Exact} {
			m := randSparse(80, 0.1, pos, 9)
			sp := Params{}
			sp.Defaults()
			sp.Method = meth
			scale, r0, err := Normalize(m, 0.9, &sp)
			if err != nil {
				t.Fatal(err)
			}
			if scale <= 0 || r0 <= 0 {
				t.Errorf("scale %g radius %g", scale, r0)
			}
			r, _ := ExactRadius(m)
			if math.Abs(r-0.9) > 1e-6*0.9 {
				t.Errorf("positive %v %v: radius after normalize %g, trg 0.9", pos, meth, r)
			}
		}
	}
}

func TestZeroEigenvalue(t *testing.T) {
	sp := Params{}
	sp.Defaults()
	zero := NewSparse(4, []Entry{{0, 1, 0}, {2, 3, 0}})
	if _, _, err := Normalize(zero, 0.9, &sp); !errors.Is(err, ErrZeroEigenvalue) {
		t.Errorf("zero matrix: expected ErrZeroEigenvalue, got %v", err)
	}
	empty := NewSparse(5, nil)
	if _, _, err := Normalize(empty, 0.9, &sp); !errors.Is(err, ErrZeroEigenvalue) {
		t.Errorf("empty matrix: expected ErrZeroEigenvalue, got %v", err)
	}
	// feedforward chain: nilpotent
	chain := NewSparse(4, []Entry{{1, 0, 0.5}, {2, 1, 0.7}, {3, 2, 0.9}})
	if _, _, err := Normalize(chain, 0.9, &sp); !errors.Is(err, ErrZeroEigenvalue) {
		t.Errorf("feedforward chain: expected ErrZeroEigenvalue, got %v", err)
	}
}
