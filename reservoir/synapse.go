// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reservoir

import (
	"math"
	"unsafe"
)

// Synapse is one directed connection, stored with its receiving neuron.
// Send is a neuron index for internal synapses and an input field index
// for input synapses.
type Synapse struct {
	Send  int32       `desc:"sending neuron or input field index"`
	Delay int32       `desc:"delay in computation cycles"`
	Wt    float64     `desc:"signed weight"`
	Queue *DelayQueue `desc:"pipeline of weighted signals of a delayed synapse, nil if undelayed"`
	Eff   Efficacy    `desc:"short-term plasticity state"`
}

// SizeofSynapse is the memory size of one synapse, excluding its delay queue
var SizeofSynapse = int(unsafe.Sizeof(Synapse{}))

// Init resets the dynamic state of the synapse
func (sy *Synapse) Init(pp *PlasticParams) {
	if sy.Queue != nil {
		sy.Queue.Init()
	}
	sy.Eff.Init(pp)
}

// Signal returns the weighted signal delivered for given sending signal.
// A plastic synapse updates its efficacy on every nonzero sending signal and
// scales its weight by it; a delayed synapse delivers the weighted signal
// Delay calls later, and 0 until then.
func (sy *Synapse) Signal(send float64, pp *PlasticParams) float64 {
	wt := sy.Wt
	if pp.On {
		sy.Eff.Update(pp, send != 0)
		wt *= sy.Eff.Eff
	}
	v := send * wt
	if sy.Queue != nil {
		v = sy.Queue.Push(v)
	}
	return v
}

// DelayQueue is a fixed capacity first-in first-out pipeline holding
// delay+1 values
type DelayQueue struct {
	Buf  []float64
	Head int
	N    int
}

// SizeofQueue is the memory size of a delay queue, excluding its buffer
var SizeofQueue = int(unsafe.Sizeof(DelayQueue{}))

// NewDelayQueue returns an empty queue for given delay
func NewDelayQueue(delay int) *DelayQueue {
	return &DelayQueue{Buf: make([]float64, delay+1)}
}

// Init empties the queue
func (dq *DelayQueue) Init() {
	dq.Head = 0
	dq.N = 0
	for i := range dq.Buf {
		dq.Buf[i] = 0
	}
}

// Push adds v to the queue.  Once the queue is full, the oldest value is
// removed and returned, so that v comes out delay calls later; until then
// Push returns 0.
func (dq *DelayQueue) Push(v float64) float64 {
	cp := len(dq.Buf)
	dq.Buf[(dq.Head+dq.N)%cp] = v
	dq.N++
	if dq.N < cp {
		return 0
	}
	out := dq.Buf[dq.Head]
	dq.Head = (dq.Head + 1) % cp
	dq.N--
	return out
}

// Efficacy is the short-term plasticity state of a synapse:
// a facilitation and a depression factor whose product scales the weight.
type Efficacy struct {
	Fac   float64 `desc:"facilitation factor"`
	Dep   float64 `desc:"depression factor"`
	Eff   float64 `desc:"current efficacy = Fac * Dep"`
	Since int32   `desc:"cycles since the last nonzero sending signal, -1 if none yet"`
}

// Init resets the efficacy to the resting state
func (ef *Efficacy) Init(pp *PlasticParams) {
	ef.Fac = pp.Rest
	ef.Dep = 1
	ef.Eff = 1
	if pp.On {
		ef.Eff = pp.Rest
	}
	ef.Since = -1
}

// Update advances the efficacy by one cycle.  On a nonzero sending signal,
// facilitation decays toward the resting efficacy and is boosted by the
// previous facilitation, and depression consumes a share of the resources
// that recover with TauDep, both as a function of the time since the last signal.
func (ef *Efficacy) Update(pp *PlasticParams, signal bool) {
	if ef.Since >= 0 {
		ef.Since++
	}
	if !signal {
		return
	}
	ff, fd := 0.0, 0.0
	if ef.Since > 0 {
		dt := float64(ef.Since)
		ff = math.Exp(-dt / pp.TauFac)
		fd = math.Exp(-dt / pp.TauDep)
	}
	prvFac := ef.Fac
	if ef.Since < 0 {
		prvFac = 0
	}
	ef.Fac = pp.Rest + prvFac*(1-pp.Rest)*ff
	ef.Dep = 1 + (ef.Dep-ef.Dep*prvFac-1)*fd
	ef.Eff = ef.Fac * ef.Dep
	ef.Since = 0
}
