// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reservoir

import (
	"unsafe"

	"github.com/emer/reservoir/actfun"
	"github.com/emer/reservoir/runstat"
	"github.com/goki/mat32"
)

// Neuron holds the state of one reservoir neuron.  Analog and spiking
// neurons share the struct: Kind selects the dynamics, and Spike is only
// used by spiking neurons.
type Neuron struct {
	Idx     int32      `desc:"index of the neuron in the reservoir"`
	Pool    int32      `desc:"index of the pool"`
	Group   int32      `desc:"global index of the neuron group"`
	Kind    SignalKind `desc:"analog or spiking -- fixed at build"`
	Role    Role       `desc:"excitatory or inhibitory -- fixed at build"`
	Readout bool       `desc:"provides predictors to the readout"`
	Pos     mat32.Vec3 `desc:"position in space"`
	Bias    float64    `desc:"constant bias added to the stimulus"`
	Ret     float64    `desc:"retainment ratio of analog state, 0 = stateless"`

	InStim  float64 `desc:"stimulus from input synapses in the current cycle"`
	IntStim float64 `desc:"stimulus from internal synapses in the current cycle"`
	Stim    float64 `desc:"total stimulus = InStim + IntStim + Bias"`
	Act     float64 `desc:"activation state: analog state, or membrane potential of spiking neurons"`
	Out     float64 `desc:"output signal transmitted to other neurons: analog state, or 1 on a spike and 0 otherwise"`
	Pred    float64 `desc:"predictor value in [-1, 1]"`

	Spike actfun.SpikeState `desc:"membrane state of spiking neurons"`

	InStimStat  runstat.Stat `desc:"statistics of the input stimulus"`
	IntStimStat runstat.Stat `desc:"statistics of the internal stimulus"`
	StimStat    runstat.Stat `desc:"statistics of the total stimulus"`
	ActStat     runstat.Stat `desc:"statistics of the activation state"`
	OutStat     runstat.Stat `desc:"statistics of the output signal"`
	EffStat     runstat.Stat `desc:"statistics of the efficacy of the plastic synapses received"`
}

// SizeofNeuron is the memory size of one neuron
var SizeofNeuron = int(unsafe.Sizeof(Neuron{}))

// InitStats clears all statistics
func (nrn *Neuron) InitStats() {
	nrn.InStimStat.Init()
	nrn.IntStimStat.Init()
	nrn.StimStat.Init()
	nrn.ActStat.Init()
	nrn.OutStat.Init()
	nrn.EffStat.Init()
}

// NeuronGroup is a built group of neurons sharing kind, role and activation
type NeuronGroup struct {
	Name    string               `desc:"name of the group"`
	Idx     int                  `desc:"global index of the group"`
	Pool    int                  `desc:"index of the pool"`
	Role    Role                 `desc:"excitatory or inhibitory"`
	Kind    SignalKind           `desc:"analog or spiking"`
	Analog  actfun.AnalogParams  `desc:"activation of analog neurons"`
	Spiking actfun.SpikingParams `desc:"dynamics of spiking neurons"`
	Neurons []int32              `desc:"indexes of the member neurons"`
}

// InitAct resets the dynamic state of a neuron of this group
func (ng *NeuronGroup) InitAct(nrn *Neuron) {
	nrn.InStim = 0
	nrn.IntStim = 0
	nrn.Stim = 0
	switch ng.Kind {
	case Analog:
		nrn.Act = 0
		nrn.Out = 0
		nrn.Pred = ng.Analog.Predictor(0)
	case Spiking:
		ng.Spiking.Init(&nrn.Spike)
		nrn.Act = nrn.Spike.Vm
		nrn.Out = 0
		nrn.Pred = ng.Spiking.Predictor(&nrn.Spike)
	}
}

// StepAct advances the neuron by one cycle from its stored stimulus
func (ng *NeuronGroup) StepAct(nrn *Neuron, updtStats bool) {
	switch ng.Kind {
	case Analog:
		nrn.Act = ng.Analog.Step(nrn.Act, nrn.Stim, nrn.Ret)
		nrn.Out = nrn.Act
		nrn.Pred = ng.Analog.Predictor(nrn.Act)
	case Spiking:
		nrn.Out = ng.Spiking.Step(&nrn.Spike, nrn.Stim)
		nrn.Act = nrn.Spike.Vm
		nrn.Pred = ng.Spiking.Predictor(&nrn.Spike)
	}
	if updtStats {
		nrn.ActStat.Add(nrn.Act)
		nrn.OutStat.Add(nrn.Out)
	}
}
