// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reservoir

import (
	"sync"

	"github.com/emer/emergent/timer"
	"github.com/emer/etable/etensor"
	"github.com/emer/etable/minmax"
	"github.com/goki/mat32"
)

// Reservoir is one built reservoir instance: its neurons, stored in one
// contiguous slice, and its input and internal synapses, stored by receiving
// neuron in two banks.  All indexes refer into these slices.
type Reservoir struct {
	Name    string         `desc:"name of the instance"`
	Seed    int64          `desc:"random seed the reservoir was built with"`
	InRange minmax.F64     `desc:"range of external input values, mapped onto [-1, 1]"`
	NInputs int            `desc:"number of input fields"`
	InPos   []mat32.Vec3   `desc:"positions of the virtual input fields"`
	Pools   []*Pool        `desc:"pools of neurons"`
	Groups  []*NeuronGroup `desc:"neuron groups of all pools, in pool order"`
	Neurons []Neuron       `desc:"all neurons, pool by pool"`

	InSyns  []Synapse `desc:"input synapses, grouped by receiving neuron"`
	InSynSt []int32   `desc:"start of each neuron's input synapses in InSyns"`
	InSynN  []int32   `desc:"number of input synapses of each neuron"`
	Syns    []Synapse `desc:"internal synapses, grouped by receiving neuron"`
	SynSt   []int32   `desc:"start of each neuron's internal synapses in Syns"`
	SynN    []int32   `desc:"number of internal synapses of each neuron"`

	InputSyn    SynapseParams `desc:"parameters of input synapses"`
	InternalSyn SynapseParams `desc:"parameters of internal synapses"`

	Readouts  []int32 `desc:"indexes of neurons providing predictors, in predictor order"`
	Augmented bool    `desc:"each predictor is followed by its square"`
	Radius    float64 `desc:"spectral radius of the internal weights before normalization, 0 if not normalized"`
	WtScale   float64 `desc:"factor applied to internal weights by normalization"`

	Inputs []float64 `desc:"current external input, mapped onto [-1, 1]"`
	Cycle  int       `desc:"number of cycles computed since the last Reset"`

	NThreads   int                    `desc:"number of compute threads"`
	ThrSt      []int                  `view:"-" desc:"neuron range of each thread: [ThrSt[th], ThrSt[th+1])"`
	ThrChans   []chan NeurFun         `view:"-" desc:"channels for communicating with the threads"`
	ThrTimes   []timer.Time           `view:"-" desc:"timers for each thread, so you can see how evenly the workload is being distributed"`
	FunTimes   map[string]*timer.Time `view:"-" desc:"timers for each major function (step of processing)"`
	WaitGp     sync.WaitGroup         `view:"-" desc:"network wait group for waiting on threads"`
	thrRunning bool

	updtStats bool
	stimFun   NeurFun
	stateFun  NeurFun
}

// Pool is a built pool: a 3D grid of contiguous neurons
type Pool struct {
	Name   string        `desc:"name of the pool"`
	Idx    int           `desc:"index of the pool"`
	Shape  etensor.Shape `desc:"shape of the neuron grid, Z, Y, X"`
	St     int           `desc:"index of the first neuron"`
	Ed     int           `desc:"index past the last neuron"`
	Groups []int         `desc:"global indexes of the pool's neuron groups"`
}

// NNeurons returns the number of neurons in the pool
func (pl *Pool) NNeurons() int {
	return pl.Ed - pl.St
}

// NSyns returns the number of internal synapses
func (rs *Reservoir) NSyns() int {
	return len(rs.Syns)
}

// NInSyns returns the number of input synapses
func (rs *Reservoir) NInSyns() int {
	return len(rs.InSyns)
}

// RecvSyns returns the internal synapses received by neuron ni
func (rs *Reservoir) RecvSyns(ni int) []Synapse {
	st := rs.SynSt[ni]
	return rs.Syns[st : st+rs.SynN[ni]]
}

// RecvInSyns returns the input synapses received by neuron ni
func (rs *Reservoir) RecvInSyns(ni int) []Synapse {
	st := rs.InSynSt[ni]
	return rs.InSyns[st : st+rs.InSynN[ni]]
}

// PoolByName returns the pool of given name, nil if none
func (rs *Reservoir) PoolByName(name string) *Pool {
	for _, pl := range rs.Pools {
		if pl.Name == name {
			return pl
		}
	}
	return nil
}
