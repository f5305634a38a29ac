// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package actfun

import (
	"errors"
	"fmt"
	"math"

	"github.com/emer/etable/minmax"
	"github.com/emer/reservoir/ode"
	"github.com/goki/ki/kit"
)

// SpikingModel is the spiking membrane model
type SpikingModel int

//go:generate stringer -type=SpikingModel

var KiT_SpikingModel = kit.Enums.AddEnum(SpikingModelN, kit.NotBitFlag, nil)

func (ev SpikingModel) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *SpikingModel) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

func (ev SpikingModel) MarshalText() ([]byte, error)  { return []byte(ev.String()), nil }
func (ev *SpikingModel) UnmarshalText(b []byte) error { return ev.FromString(string(b)) }

// The spiking membrane models
const (
	// LeakyIF is the leaky integrate-and-fire model
	LeakyIF SpikingModel = iota

	// ExpIF is the exponential integrate-and-fire model
	ExpIF

	// AdExpIF is the adaptive exponential integrate-and-fire model,
	// with a recovery (adaptation) current bumped on each spike
	AdExpIF

	// Izhikevich is the two-variable quadratic model of Izhikevich (2003)
	Izhikevich

	SpikingModelN
)

// MembraneParams are the conductance-based parameters shared by the
// integrate-and-fire family, in mV, ms, pF, nS and pA.
type MembraneParams struct {
	C      float64 `def:"281" min:"0" desc:"membrane capacitance (pF)"`
	GL     float64 `def:"30" min:"0" desc:"leak conductance (nS)"`
	EL     float64 `def:"-70.6" desc:"leak reversal and resting potential (mV)"`
	VReset float64 `def:"-70.6" desc:"reset potential after a spike (mV)"`
	VThr   float64 `def:"-50.4" desc:"firing threshold of the leaky model, and rheobase threshold VT of the exponential models (mV)"`
	VPeak  float64 `def:"-30" desc:"spike detection potential of the exponential models (mV)"`
	Delta  float64 `def:"2" min:"0" desc:"slope factor of the exponential term (mV)"`
	TauW   float64 `def:"144" min:"0" desc:"adaptation time constant (ms)"`
	A      float64 `def:"4" desc:"subthreshold adaptation conductance (nS)"`
	B      float64 `def:"80.5" desc:"spike-triggered adaptation increment (pA)"`
	Gain   float64 `def:"2000" min:"0" desc:"input current (pA) per unit of stimulus"`
}

func (mp *MembraneParams) Defaults() {
	mp.C = 281
	mp.GL = 30
	mp.EL = -70.6
	mp.VReset = -70.6
	mp.VThr = -50.4
	mp.VPeak = -30
	mp.Delta = 2
	mp.TauW = 144
	mp.A = 4
	mp.B = 80.5
	mp.Gain = 2000
}

// IzhParams are the parameters of the Izhikevich model, in its native
// dimensionless-current units.
type IzhParams struct {
	A     float64 `def:"0.02" desc:"time scale of the recovery variable"`
	B     float64 `def:"0.2" desc:"sensitivity of the recovery variable to subthreshold potential"`
	C     float64 `def:"-65" desc:"reset potential after a spike (mV)"`
	D     float64 `def:"8" desc:"recovery increment after a spike"`
	VPeak float64 `def:"30" desc:"spike detection potential (mV)"`
	Gain  float64 `def:"20" min:"0" desc:"input current per unit of stimulus"`
}

func (ip *IzhParams) Defaults() {
	ip.A = 0.02
	ip.B = 0.2
	ip.C = -65
	ip.D = 8
	ip.VPeak = 30
	ip.Gain = 20
}

// SpikingParams are the parameters of a spiking neuron: the membrane model,
// its numerical integration and refractoriness.
type SpikingParams struct {
	Model     SpikingModel   `desc:"membrane model"`
	Mem       MembraneParams `view:"inline" desc:"integrate-and-fire membrane parameters"`
	Izh       IzhParams      `view:"inline" desc:"Izhikevich model parameters"`
	Refrac    int            `def:"1" min:"0" desc:"number of computation cycles after a spike during which the stimulus is ignored"`
	Solver    ode.Method     `desc:"numerical integration method for the membrane equations"`
	SubSteps  int            `def:"2" min:"1" desc:"number of integration sub-steps per computation cycle -- integration stops early at the spike"`
	StepDur   float64        `def:"1" min:"0" desc:"duration of one computation cycle (ms)"`
	VmRange   minmax.F64     `view:"inline" desc:"range to which the membrane potential is bounded after each sub-step"`
	StimRange minmax.F64     `view:"inline" desc:"range to which the stimulus is bounded before integration"`
	Fade      float64        `def:"0.9" min:"0" max:"1" desc:"retention of the fading spike trace used as predictor: trace = Fade * trace + (1 - Fade) * spike"`
}

func (sp *SpikingParams) Defaults() {
	sp.Model = LeakyIF
	sp.Mem.Defaults()
	sp.Izh.Defaults()
	sp.Refrac = 1
	sp.Solver = ode.Euler
	sp.SubSteps = 2
	sp.StepDur = 1
	sp.VmRange.Min = -100
	sp.VmRange.Max = 50
	sp.StimRange.Min = -1
	sp.StimRange.Max = 1
	sp.Fade = 0.9
}

// Update must be called after any changes to parameters
func (sp *SpikingParams) Update() {
	if sp.SubSteps < 1 {
		sp.SubSteps = 1
	}
	if sp.Refrac < 0 {
		sp.Refrac = 0
	}
}

// Validate returns an error for parameters that cannot be integrated
func (sp *SpikingParams) Validate() error {
	if sp.Model < 0 || sp.Model >= SpikingModelN {
		return fmt.Errorf("actfun: invalid spiking model %d", sp.Model)
	}
	if sp.StepDur <= 0 {
		return errors.New("actfun: StepDur must be > 0")
	}
	if sp.Model != Izhikevich && (sp.Mem.C <= 0 || sp.Mem.GL <= 0) {
		return errors.New("actfun: membrane capacitance and leak conductance must be > 0")
	}
	if sp.Model == AdExpIF && sp.Mem.TauW <= 0 {
		return errors.New("actfun: AdExpIF requires TauW > 0")
	}
	if (sp.Model == ExpIF || sp.Model == AdExpIF) && sp.Mem.Delta <= 0 {
		return errors.New("actfun: exponential models require Delta > 0")
	}
	if sp.Thr() < sp.VmRange.Min || sp.Thr() > sp.VmRange.Max {
		return fmt.Errorf("actfun: firing threshold %g outside of VmRange [%g, %g]", sp.Thr(), sp.VmRange.Min, sp.VmRange.Max)
	}
	return nil
}

// Thr returns the potential at which a spike is emitted
func (sp *SpikingParams) Thr() float64 {
	switch sp.Model {
	case LeakyIF:
		return sp.Mem.VThr
	case Izhikevich:
		return sp.Izh.VPeak
	}
	return sp.Mem.VPeak
}

// Rest returns the resting state of the model
func (sp *SpikingParams) Rest() ode.Vec {
	if sp.Model == Izhikevich {
		return ode.Vec{sp.Izh.C, sp.Izh.B * sp.Izh.C}
	}
	return ode.Vec{sp.Mem.EL, 0}
}

// SpikeState is the dynamic state of one spiking neuron
type SpikeState struct {
	Vm     float64 `desc:"membrane potential (mV)"`
	U      float64 `desc:"recovery variable: adaptation current (pA) or Izhikevich u"`
	Refrac int     `desc:"remaining refractory cycles"`
	Stim   float64 `desc:"effective stimulus of the last cycle, after refractoriness"`
	Trace  float64 `desc:"fading trace of emitted spikes, in [0, 1]"`
}

// Init sets the state to rest
func (sp *SpikingParams) Init(st *SpikeState) {
	r := sp.Rest()
	st.Vm = r[0]
	st.U = r[1]
	st.Refrac = 0
	st.Stim = 0
	st.Trace = 0
}

// Deriv implements ode.Deriver for the selected model, where in is the
// input current.
func (sp *SpikingParams) Deriv(y ode.Vec, in float64) ode.Vec {
	v := y[0]
	switch sp.Model {
	case LeakyIF:
		return ode.Vec{(-sp.Mem.GL*(v-sp.Mem.EL) + in) / sp.Mem.C, 0}
	case ExpIF:
		return ode.Vec{(-sp.Mem.GL*(v-sp.Mem.EL) + sp.expTerm(v) + in) / sp.Mem.C, 0}
	case AdExpIF:
		w := y[1]
		dv := (-sp.Mem.GL*(v-sp.Mem.EL) + sp.expTerm(v) - w + in) / sp.Mem.C
		dw := (sp.Mem.A*(v-sp.Mem.EL) - w) / sp.Mem.TauW
		return ode.Vec{dv, dw}
	case Izhikevich:
		u := y[1]
		dv := 0.04*v*v + 5*v + 140 - u + in
		du := sp.Izh.A * (sp.Izh.B*v - u)
		return ode.Vec{dv, du}
	}
	return ode.Vec{}
}

// expTerm is the spike-initiation current of the exponential models,
// with the exponent bounded so the membrane equation stays finite.
func (sp *SpikingParams) expTerm(v float64) float64 {
	x := (v - sp.Mem.VThr) / sp.Mem.Delta
	if x > 20 {
		x = 20
	}
	return sp.Mem.GL * sp.Mem.Delta * math.Exp(x)
}

// gain returns the input current per unit of stimulus
func (sp *SpikingParams) gain() float64 {
	if sp.Model == Izhikevich {
		return sp.Izh.Gain
	}
	return sp.Mem.Gain
}

// OnFire applies the model-specific adjustment made when a spike is emitted
func (sp *SpikingParams) OnFire(st *SpikeState) {
	switch sp.Model {
	case AdExpIF:
		st.U += sp.Mem.B
	case Izhikevich:
		st.U += sp.Izh.D
	}
}

// reset puts the membrane back to its reset potential after a spike
func (sp *SpikingParams) reset(st *SpikeState) {
	if sp.Model == Izhikevich {
		st.Vm = sp.Izh.C
		return
	}
	st.Vm = sp.Mem.VReset
}

// Step advances the neuron by one computation cycle given stimulus,
// returning 1 if it spiked and 0 otherwise.
// A potential at or above threshold from the previous cycle is reset first
// and starts the refractory period, during which the stimulus is ignored.
func (sp *SpikingParams) Step(st *SpikeState, stim float64) float64 {
	thr := sp.Thr()
	if st.Vm >= thr {
		sp.reset(st)
		st.Refrac = sp.Refrac
	}
	stim = sp.StimRange.ClipVal(stim)
	if st.Refrac > 0 {
		stim = 0
		st.Refrac--
	}
	st.Stim = stim
	in := stim * sp.gain()
	dt := sp.StepDur / float64(sp.SubSteps)
	y := ode.Vec{st.Vm, st.U}
	for i := 0; i < sp.SubSteps; i++ {
		y = ode.Step(sp.Solver, sp, y, in, dt)
		y[0] = sp.VmRange.ClipVal(y[0])
		if y[0] >= thr {
			break
		}
	}
	st.Vm = y[0]
	st.U = y[1]
	spike := 0.0
	if st.Vm >= thr {
		spike = 1
		sp.OnFire(st)
	}
	st.Trace = sp.Fade*st.Trace + (1-sp.Fade)*spike
	return spike
}

// Predictor remaps the fading spike trace from [0, 1] onto [-1, 1]
func (sp *SpikingParams) Predictor(st *SpikeState) float64 {
	return 2*st.Trace - 1
}
