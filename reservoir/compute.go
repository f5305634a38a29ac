// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reservoir

//////////////////////////////////////////////////////////////////////////////////////
//  Compute

// Compute advances the reservoir by one cycle for given external input,
// accumulating statistics if updtStats.  Input values are clipped to the
// input range and mapped onto [-1, 1]; missing values count as the middle
// of the range, extra values are ignored.
// A cycle runs in two phases over all neurons, each completing before the
// next starts: StimPhase gathers the stimulus of every neuron from the
// outputs of the previous cycle, then StatePhase advances every neuron.
func (rs *Reservoir) Compute(input []float64, updtStats bool) {
	for i := range rs.Inputs {
		v := rs.InRange.Min + 0.5*rs.InRange.Range()
		if i < len(input) {
			v = input[i]
		}
		rs.Inputs[i] = rs.normInput(v)
	}
	rs.updtStats = updtStats
	rs.ThrNeurFun(rs.stimFun, "StimPhase")
	rs.ThrNeurFun(rs.stateFun, "StatePhase")
	rs.Cycle++
}

// normInput maps an external value onto [-1, 1]
func (rs *Reservoir) normInput(v float64) float64 {
	if rs.InRange.Range() == 0 {
		return 0
	}
	return 2*rs.InRange.NormVal(rs.InRange.ClipVal(v)) - 1
}

// StimPhase computes the stimulus of neurons [st, ed).  It only reads the
// outputs of other neurons and only writes the stimulus of its own neurons
// and the state of their incoming synapses.
func (rs *Reservoir) StimPhase(st, ed int) {
	inPl := &rs.InputSyn.Plastic
	intPl := &rs.InternalSyn.Plastic
	updt := rs.updtStats
	for ni := st; ni < ed; ni++ {
		nrn := &rs.Neurons[ni]
		in := 0.0
		for si := rs.InSynSt[ni]; si < rs.InSynSt[ni]+rs.InSynN[ni]; si++ {
			sy := &rs.InSyns[si]
			snd := rs.Inputs[sy.Send]
			in += sy.Signal(snd, inPl)
			if updt && inPl.On && snd != 0 {
				nrn.EffStat.Add(sy.Eff.Eff)
			}
		}
		intl := 0.0
		for si := rs.SynSt[ni]; si < rs.SynSt[ni]+rs.SynN[ni]; si++ {
			sy := &rs.Syns[si]
			snd := rs.Neurons[sy.Send].Out
			intl += sy.Signal(snd, intPl)
			if updt && intPl.On && snd != 0 {
				nrn.EffStat.Add(sy.Eff.Eff)
			}
		}
		nrn.InStim = in
		nrn.IntStim = intl
		nrn.Stim = in + intl + nrn.Bias
		if updt {
			nrn.InStimStat.Add(in)
			nrn.IntStimStat.Add(intl)
			nrn.StimStat.Add(nrn.Stim)
		}
	}
}

// StatePhase advances the state of neurons [st, ed) from their stimulus
func (rs *Reservoir) StatePhase(st, ed int) {
	updt := rs.updtStats
	for ni := st; ni < ed; ni++ {
		nrn := &rs.Neurons[ni]
		rs.Groups[nrn.Group].StepAct(nrn, updt)
	}
}

// Reset returns all neurons and synapses to their initial state, and
// clears the statistics if clearStats.  Structure and weights are kept.
func (rs *Reservoir) Reset(clearStats bool) {
	for ni := range rs.Neurons {
		nrn := &rs.Neurons[ni]
		rs.Groups[nrn.Group].InitAct(nrn)
		if clearStats {
			nrn.InitStats()
		}
	}
	for si := range rs.InSyns {
		rs.InSyns[si].Init(&rs.InputSyn.Plastic)
	}
	for si := range rs.Syns {
		rs.Syns[si].Init(&rs.InternalSyn.Plastic)
	}
	for i := range rs.Inputs {
		rs.Inputs[i] = 0
	}
	rs.Cycle = 0
}

//////////////////////////////////////////////////////////////////////////////////////
//  Predictors

// NPredictors returns the number of values written by CopyPredictorsTo
func (rs *Reservoir) NPredictors() int {
	if rs.Augmented {
		return 2 * len(rs.Readouts)
	}
	return len(rs.Readouts)
}

// CopyPredictorsTo writes the predictors of the readout neurons into buf
// starting at offset, in pool then neuron order, each followed by its square
// if Augmented.  Returns the number of values written.  buf must hold at
// least offset + NPredictors() values.
func (rs *Reservoir) CopyPredictorsTo(buf []float64, offset int) int {
	di := offset
	for _, ni := range rs.Readouts {
		p := rs.Neurons[ni].Pred
		buf[di] = p
		di++
		if rs.Augmented {
			buf[di] = p * p
			di++
		}
	}
	return di - offset
}
