// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package runstat provides running aggregates (count, min, max, mean,
variance) over a stream of values, accumulated without storing the values.
*/
package runstat

import (
	"fmt"
	"math"
)

// Stat accumulates running statistics of a stream of values.
// The zero value is not ready for use -- call Init first.
type Stat struct {
	N       int     `desc:"number of samples"`
	NonZero int     `desc:"number of nonzero samples"`
	Sum     float64 `desc:"sum of samples"`
	SumSq   float64 `desc:"sum of squared samples"`
	Min     float64 `desc:"minimum sample"`
	Max     float64 `desc:"maximum sample"`
}

// Init resets the statistics to the empty state
func (st *Stat) Init() {
	st.N = 0
	st.NonZero = 0
	st.Sum = 0
	st.SumSq = 0
	st.Min = math.MaxFloat64
	st.Max = -math.MaxFloat64
}

// Add adds one sample
func (st *Stat) Add(v float64) {
	st.N++
	if v != 0 {
		st.NonZero++
	}
	st.Sum += v
	st.SumSq += v * v
	if v < st.Min {
		st.Min = v
	}
	if v > st.Max {
		st.Max = v
	}
}

// Merge adds all samples of other statistics
func (st *Stat) Merge(o *Stat) {
	if o.N == 0 {
		return
	}
	st.N += o.N
	st.NonZero += o.NonZero
	st.Sum += o.Sum
	st.SumSq += o.SumSq
	if o.Min < st.Min {
		st.Min = o.Min
	}
	if o.Max > st.Max {
		st.Max = o.Max
	}
}

// Mean returns the mean of samples, 0 if there are none
func (st *Stat) Mean() float64 {
	if st.N == 0 {
		return 0
	}
	return st.Sum / float64(st.N)
}

// Var returns the population variance of samples
func (st *Stat) Var() float64 {
	if st.N == 0 {
		return 0
	}
	mn := st.Mean()
	v := st.SumSq/float64(st.N) - mn*mn
	if v < 0 { // round-off
		return 0
	}
	return v
}

// Stdev returns the population standard deviation of samples
func (st *Stat) Stdev() float64 {
	return math.Sqrt(st.Var())
}

// Span returns Max - Min, 0 if there are no samples
func (st *Stat) Span() float64 {
	if st.N == 0 {
		return 0
	}
	return st.Max - st.Min
}

// MinVal returns Min, or 0 if there are no samples
func (st *Stat) MinVal() float64 {
	if st.N == 0 {
		return 0
	}
	return st.Min
}

// MaxVal returns Max, or 0 if there are no samples
func (st *Stat) MaxVal() float64 {
	if st.N == 0 {
		return 0
	}
	return st.Max
}

// Constant returns true if there are samples and all of them are equal
func (st *Stat) Constant() bool {
	return st.N > 0 && st.Max == st.Min
}

func (st *Stat) String() string {
	return fmt.Sprintf("N: %d  Mean: %g  Stdev: %g  Min: %g  Max: %g", st.N, st.Mean(), st.Stdev(), st.MinVal(), st.MaxVal())
}

// Agg aggregates the statistics of a set of streams, such as the neurons
// of a group: the distribution of the stream means, and the pooled samples
// of all streams.
type Agg struct {
	Means Stat `desc:"statistics of the means of the streams"`
	All   Stat `desc:"statistics of all samples of all streams"`
}

// Init resets the aggregate to the empty state
func (ag *Agg) Init() {
	ag.Means.Init()
	ag.All.Init()
}

// Add adds one stream.  Streams without samples only count in All.
func (ag *Agg) Add(st *Stat) {
	if st.N > 0 {
		ag.Means.Add(st.Mean())
	}
	ag.All.Merge(st)
}

// Merge adds all streams of another aggregate
func (ag *Agg) Merge(o *Agg) {
	ag.Means.Merge(&o.Means)
	ag.All.Merge(&o.All)
}
