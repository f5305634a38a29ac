// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package spectral estimates the spectral radius (largest eigenvalue magnitude)
of sparse square weight matrices and rescales them to a target radius.

The radius is estimated by power iteration over a compressed sparse row
matrix, falling back on the exact dense eigen decomposition of gonum when
power iteration does not converge (e.g., for a dominant complex pair).
*/
package spectral

import (
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Entry is one nonzero matrix element
type Entry struct {
	Row, Col int
	Val      float64
}

// Sparse is a square matrix in compressed sparse row format
type Sparse struct {
	N     int       `desc:"number of rows and columns"`
	RowSt []int     `desc:"start of each row in Cols / Vals, with a final entry = number of values"`
	Cols  []int     `desc:"column of each value"`
	Vals  []float64 `desc:"values"`
}

// NewSparse returns an n x n matrix with given entries.
// Entries at the same position are summed.
func NewSparse(n int, ents []Entry) *Sparse {
	es := make([]Entry, len(ents))
	copy(es, ents)
	sort.Slice(es, func(i, j int) bool {
		if es[i].Row != es[j].Row {
			return es[i].Row < es[j].Row
		}
		return es[i].Col < es[j].Col
	})
	m := &Sparse{N: n}
	m.RowSt = make([]int, n+1)
	m.Cols = make([]int, 0, len(es))
	m.Vals = make([]float64, 0, len(es))
	for i, e := range es {
		if i > 0 && e.Row == es[i-1].Row && e.Col == es[i-1].Col {
			m.Vals[len(m.Vals)-1] += e.Val
			continue
		}
		m.Cols = append(m.Cols, e.Col)
		m.Vals = append(m.Vals, e.Val)
		m.RowSt[e.Row+1]++
	}
	for r := 0; r < n; r++ {
		m.RowSt[r+1] += m.RowSt[r]
	}
	return m
}

// NNZ returns the number of stored values
func (m *Sparse) NNZ() int {
	return len(m.Vals)
}

// MulVec computes dst = m * x
func (m *Sparse) MulVec(dst, x []float64) {
	for r := 0; r < m.N; r++ {
		sum := 0.0
		for i := m.RowSt[r]; i < m.RowSt[r+1]; i++ {
			sum += m.Vals[i] * x[m.Cols[i]]
		}
		dst[r] = sum
	}
}

// Scale multiplies all values by s
func (m *Sparse) Scale(s float64) {
	for i := range m.Vals {
		m.Vals[i] *= s
	}
}

// Dense returns the matrix as a gonum dense matrix
// Returns nil for an empty matrix.
func (m *Sparse) Dense() *mat.Dense {
	if m.N == 0 {
		return nil
	}
	d := mat.NewDense(m.N, m.N, nil)
	for r := 0; r < m.N; r++ {
		for i := m.RowSt[r]; i < m.RowSt[r+1]; i++ {
			d.Set(r, m.Cols[i], d.At(r, m.Cols[i])+m.Vals[i])
		}
	}
	return d
}

// Frobenius returns the Frobenius norm
func (m *Sparse) Frobenius() float64 {
	if len(m.Vals) == 0 {
		return 0
	}
	d := mat.NewVecDense(len(m.Vals), m.Vals)
	return mat.Norm(d, 2)
}
