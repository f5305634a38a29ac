// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package actfun provides the activation dynamics of reservoir neurons:
one-shot analog activation functions used by leaky-integrator neurons,
and ODE-driven spiking membrane models (leaky, exponential and adaptive
exponential integrate-and-fire, and Izhikevich).

Both families bound their input and output to configured ranges before and
after computation, so no value computed here can overflow downstream.
*/
package actfun

import (
	"errors"
	"fmt"
	"math"

	"github.com/emer/etable/minmax"
	"github.com/goki/ki/kit"
)

// AnalogFun is the analog activation function
type AnalogFun int

//go:generate stringer -type=AnalogFun

var KiT_AnalogFun = kit.Enums.AddEnum(AnalogFunN, kit.NotBitFlag, nil)

func (ev AnalogFun) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *AnalogFun) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

func (ev AnalogFun) MarshalText() ([]byte, error)  { return []byte(ev.String()), nil }
func (ev *AnalogFun) UnmarshalText(b []byte) error { return ev.FromString(string(b)) }

// The analog activation functions
const (
	// TanH is the hyperbolic tangent, output in [-1, 1]
	TanH AnalogFun = iota

	// Sigmoid is the logistic function 1 / (1 + e^-x), output in [0, 1]
	Sigmoid

	// Elliot is the Elliot sigmoid x / (1 + |x|), output in [-1, 1]
	Elliot

	// ISRU is the inverse square root unit x / sqrt(1 + Alpha x^2)
	ISRU

	// Identity passes the bounded stimulus through unchanged
	Identity

	// LeakyReLU is x for x >= 0 and Leak * x otherwise
	LeakyReLU

	// SoftPlus is ln(1 + e^x)
	SoftPlus

	// BentIdentity is (sqrt(x^2 + 1) - 1) / 2 + x
	BentIdentity

	// Sinusoid is sin(x), output in [-1, 1]
	Sinusoid

	// Gaussian is e^(-x^2), output in [0, 1]
	Gaussian

	// NoisyXX1 is the thresholded, noise-smoothed x/(x+1) function, output in [0, 1]
	NoisyXX1

	AnalogFunN
)

// AnalogParams are the parameters of an analog activation function.
// The stimulus is clipped to InRange before the function is applied,
// and the result is clipped to OutRange.
type AnalogParams struct {
	Fun     AnalogFun  `desc:"activation function"`
	Alpha   float64    `def:"1" min:"0" desc:"shape of the ISRU function -- output is bounded by +/- 1/sqrt(Alpha)"`
	Leak    float64    `def:"0.05" min:"0" desc:"slope of the LeakyReLU function for negative inputs"`
	InRange minmax.F64 `view:"inline" desc:"range to which the input stimulus is clipped before computing the function"`
	XX1     XX1Params  `view:"inline" viewif:"Fun=NoisyXX1" desc:"parameters of the NoisyXX1 function"`
}

func (ap *AnalogParams) Defaults() {
	ap.Fun = TanH
	ap.Alpha = 1
	ap.Leak = 0.05
	ap.InRange.Min = -10
	ap.InRange.Max = 10
	ap.XX1.Defaults()
}

// Update must be called after any changes to parameters
func (ap *AnalogParams) Update() {
	if ap.InRange.Min > ap.InRange.Max {
		ap.InRange.Min, ap.InRange.Max = ap.InRange.Max, ap.InRange.Min
	}
	ap.XX1.Update()
}

// Validate returns an error if the parameters cannot produce a bounded output
func (ap *AnalogParams) Validate() error {
	if ap.Fun < 0 || ap.Fun >= AnalogFunN {
		return fmt.Errorf("actfun: invalid analog function %d", ap.Fun)
	}
	if math.IsInf(ap.InRange.Min, 0) || math.IsInf(ap.InRange.Max, 0) || math.IsNaN(ap.InRange.Min) || math.IsNaN(ap.InRange.Max) {
		return errors.New("actfun: input range must be finite")
	}
	if ap.InRange.Range() <= 0 {
		return fmt.Errorf("actfun: empty input range [%g, %g]", ap.InRange.Min, ap.InRange.Max)
	}
	if ap.Fun == ISRU && ap.Alpha <= 0 {
		return errors.New("actfun: ISRU requires Alpha > 0")
	}
	if ap.Fun == NoisyXX1 && (ap.XX1.Gain <= 0 || ap.XX1.NVar <= 0 || ap.XX1.InterpRange <= 0 || ap.XX1.GainCorRange <= 0) {
		return errors.New("actfun: NoisyXX1 requires Gain, NVar, InterpRange and GainCorRange > 0")
	}
	return nil
}

// raw computes the function without any bounding
func (ap *AnalogParams) raw(x float64) float64 {
	switch ap.Fun {
	case TanH:
		return math.Tanh(x)
	case Sigmoid:
		return 1 / (1 + math.Exp(-x))
	case Elliot:
		return x / (1 + math.Abs(x))
	case ISRU:
		return x / math.Sqrt(1+ap.Alpha*x*x)
	case LeakyReLU:
		if x < 0 {
			return ap.Leak * x
		}
		return x
	case SoftPlus:
		if x > 30 {
			return x
		}
		return math.Log1p(math.Exp(x))
	case BentIdentity:
		return (math.Sqrt(x*x+1)-1)/2 + x
	case Sinusoid:
		return math.Sin(x)
	case Gaussian:
		return math.Exp(-x * x)
	case NoisyXX1:
		return ap.XX1.NoisyXX1(x)
	}
	return x
}

// OutRange returns the natural output range of the function given InRange.
// Bounded functions report their asymptotic range, unbounded ones the image
// of InRange.
func (ap *AnalogParams) OutRange() minmax.F64 {
	switch ap.Fun {
	case TanH, Elliot, Sinusoid:
		return minmax.F64{Min: -1, Max: 1}
	case Sigmoid, Gaussian, NoisyXX1:
		return minmax.F64{Min: 0, Max: 1}
	case ISRU:
		b := 1 / math.Sqrt(ap.Alpha)
		return minmax.F64{Min: -b, Max: b}
	}
	return minmax.F64{Min: ap.raw(ap.InRange.Min), Max: ap.raw(ap.InRange.Max)}
}

// Compute returns the bounded activation for given stimulus
func (ap *AnalogParams) Compute(x float64) float64 {
	x = ap.InRange.ClipVal(x)
	or := ap.OutRange()
	return or.ClipVal(ap.raw(x))
}

// Derivative returns df/dx at stimulus x, where y = Compute(x) is passed in
// to avoid recomputation for functions whose derivative is a function of y.
func (ap *AnalogParams) Derivative(x, y float64) float64 {
	x = ap.InRange.ClipVal(x)
	switch ap.Fun {
	case TanH:
		return 1 - y*y
	case Sigmoid:
		return y * (1 - y)
	case Elliot:
		d := 1 + math.Abs(x)
		return 1 / (d * d)
	case ISRU:
		d := 1 / math.Sqrt(1+ap.Alpha*x*x)
		return d * d * d
	case LeakyReLU:
		if x < 0 {
			return ap.Leak
		}
		return 1
	case SoftPlus:
		return 1 / (1 + math.Exp(-x))
	case BentIdentity:
		return x/(2*math.Sqrt(x*x+1)) + 1
	case Sinusoid:
		return math.Cos(x)
	case Gaussian:
		return -2 * x * y
	case NoisyXX1:
		return ap.XX1.Deriv(x)
	}
	return 1
}

// Step advances an analog leaky integrator: the new state is
// ret * prev + (1 - ret) * f(stim).  ret = 0 is stateless.
func (ap *AnalogParams) Step(prev, stim, ret float64) float64 {
	act := ap.Compute(stim)
	if ret <= 0 {
		return act
	}
	return ret*prev + (1-ret)*act
}

// Predictor linearly remaps state y from the natural output range onto [-1, 1]
func (ap *AnalogParams) Predictor(y float64) float64 {
	or := ap.OutRange()
	if or.Range() <= 0 {
		return 0
	}
	return 2*or.NormVal(or.ClipVal(y)) - 1
}
