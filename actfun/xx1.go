// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package actfun

import "math"

// XX1Params are the parameters of the noisy x/(x+1) function: a saturating
// response with an initial largely-linear regime above threshold, whose
// x/(x+1) core is smoothed below threshold as if convolved with gaussian
// noise of variance NVar.  A piece-wise approximation replaces the convolution.
type XX1Params struct {
	Thr          float64 `def:"0.5" desc:"threshold of the stimulus above which the response grows as x/(x+1)"`
	Gain         float64 `def:"100,40,20" min:"0" desc:"gain of the response -- lower values give a more graded signal"`
	NVar         float64 `def:"0.005,0.01" min:"0" desc:"variance of the gaussian noise smoothing the response near threshold"`
	SigMult      float64 `def:"0.33" view:"-" desc:"multiplier on the sigmoid used below threshold"`
	SigMultPow   float64 `def:"0.8" view:"-" desc:"power of Gain * NVar in the below-threshold multiplier"`
	SigGain      float64 `def:"3" view:"-" desc:"gain multiplier on the stimulus of the below-threshold sigmoid"`
	InterpRange  float64 `def:"0.01" view:"-" desc:"range above threshold over which the response is interpolated"`
	GainCorRange float64 `def:"10" view:"-" desc:"range in units of NVar over which gain is corrected for the smoothing"`
	GainCor      float64 `def:"0.1" view:"-" desc:"gain correction multiplier"`

	sigGainNVar float64
	sigMultEff  float64
	sigValAt0   float64
	interpVal   float64
}

func (xp *XX1Params) Defaults() {
	xp.Thr = 0.5
	xp.Gain = 100
	xp.NVar = 0.005
	xp.SigMult = 0.33
	xp.SigMultPow = 0.8
	xp.SigGain = 3
	xp.InterpRange = 0.01
	xp.GainCorRange = 10
	xp.GainCor = 0.1
	xp.Update()
}

// Update must be called after any changes to parameters
func (xp *XX1Params) Update() {
	if xp.NVar <= 0 {
		return
	}
	xp.sigGainNVar = xp.SigGain / xp.NVar
	xp.sigMultEff = xp.SigMult * math.Pow(xp.Gain*xp.NVar, xp.SigMultPow)
	xp.sigValAt0 = 0.5 * xp.sigMultEff
	xp.interpVal = xp.gainCor(xp.InterpRange) - xp.sigValAt0
}

// gainCor computes x/(x+1) with the gain corrected within GainCorRange
func (xp *XX1Params) gainCor(x float64) float64 {
	z := xp.corGain(x) * x
	return z / (z + 1)
}

// corGain returns the gain at x, reduced near threshold by GainCor
func (xp *XX1Params) corGain(x float64) float64 {
	cf := (xp.GainCorRange - x/xp.NVar) / xp.GainCorRange
	if cf < 0 {
		return xp.Gain
	}
	return xp.Gain * (1 - xp.GainCor*cf)
}

// NoisyXX1 returns the response to stimulus x
func (xp *XX1Params) NoisyXX1(x float64) float64 {
	x -= xp.Thr
	switch {
	case x < 0:
		return xp.sigMultEff / (1 + math.Exp(-x*xp.sigGainNVar))
	case x < xp.InterpRange:
		return xp.sigValAt0 + (x/xp.InterpRange)*xp.interpVal
	}
	return xp.gainCor(x)
}

// Deriv returns the slope of the response at stimulus x
func (xp *XX1Params) Deriv(x float64) float64 {
	x -= xp.Thr
	switch {
	case x < 0:
		s := 1 / (1 + math.Exp(-x*xp.sigGainNVar))
		return xp.sigMultEff * xp.sigGainNVar * s * (1 - s)
	case x < xp.InterpRange:
		return xp.interpVal / xp.InterpRange
	}
	g := xp.corGain(x)
	dz := g
	if (xp.GainCorRange - x/xp.NVar) >= 0 {
		dz += x * xp.Gain * xp.GainCor / (xp.NVar * xp.GainCorRange)
	}
	z := g * x
	return dz / ((z + 1) * (z + 1))
}
