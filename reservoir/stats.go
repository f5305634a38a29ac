// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reservoir

import (
	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
	"github.com/emer/reservoir/runstat"
)

// GroupStat are the statistics of a set of neurons, collected since the
// last Reset that cleared statistics
type GroupStat struct {
	Name        string      `desc:"name of the neuron group, or of the pool for pool totals"`
	NNeurons    int         `desc:"number of neurons"`
	Activation  runstat.Agg `desc:"activation state: analog state or membrane potential"`
	InStimuli   runstat.Agg `desc:"stimulus from input synapses"`
	IntStimuli  runstat.Agg `desc:"stimulus from internal synapses"`
	Stimuli     runstat.Agg `desc:"total stimulus"`
	Output      runstat.Agg `desc:"output signal"`
	Efficacy    runstat.Agg `desc:"efficacy of plastic synapses at signal arrival"`
	NoStimuli   int         `desc:"neurons that never received a nonzero input or internal stimulus"`
	NoSignal    int         `desc:"neurons that never emitted a nonzero output"`
	ConstSignal int         `desc:"neurons whose nonzero output never changed"`
	NoFiring    int         `desc:"spiking neurons that never fired"`
}

// Init resets the statistics
func (gs *GroupStat) Init(name string) {
	gs.Name = name
	gs.NNeurons = 0
	gs.Activation.Init()
	gs.InStimuli.Init()
	gs.IntStimuli.Init()
	gs.Stimuli.Init()
	gs.Output.Init()
	gs.Efficacy.Init()
	gs.NoStimuli = 0
	gs.NoSignal = 0
	gs.ConstSignal = 0
	gs.NoFiring = 0
}

// AddNeuron adds the statistics of one neuron
func (gs *GroupStat) AddNeuron(nrn *Neuron) {
	gs.NNeurons++
	gs.Activation.Add(&nrn.ActStat)
	gs.InStimuli.Add(&nrn.InStimStat)
	gs.IntStimuli.Add(&nrn.IntStimStat)
	gs.Stimuli.Add(&nrn.StimStat)
	gs.Output.Add(&nrn.OutStat)
	gs.Efficacy.Add(&nrn.EffStat)
	if nrn.InStimStat.NonZero == 0 && nrn.IntStimStat.NonZero == 0 {
		gs.NoStimuli++
	}
	if nrn.OutStat.NonZero == 0 {
		gs.NoSignal++
		if nrn.Kind == Spiking {
			gs.NoFiring++
		}
	} else if nrn.OutStat.Constant() {
		gs.ConstSignal++
	}
}

// Merge adds the statistics of another set of neurons
func (gs *GroupStat) Merge(o *GroupStat) {
	gs.NNeurons += o.NNeurons
	gs.Activation.Merge(&o.Activation)
	gs.InStimuli.Merge(&o.InStimuli)
	gs.IntStimuli.Merge(&o.IntStimuli)
	gs.Stimuli.Merge(&o.Stimuli)
	gs.Output.Merge(&o.Output)
	gs.Efficacy.Merge(&o.Efficacy)
	gs.NoStimuli += o.NoStimuli
	gs.NoSignal += o.NoSignal
	gs.ConstSignal += o.ConstSignal
	gs.NoFiring += o.NoFiring
}

// PoolStat are the statistics of a pool, per group and in total
type PoolStat struct {
	Name   string      `desc:"name of the pool"`
	Groups []GroupStat `desc:"statistics of each neuron group"`
	Total  GroupStat   `desc:"statistics of all neurons of the pool"`
}

// ReservoirStat are the statistics of all pools
type ReservoirStat struct {
	Name  string     `desc:"name of the reservoir"`
	Cycle int        `desc:"cycle at which statistics were collected"`
	Pools []PoolStat `desc:"statistics of each pool"`
	Total GroupStat  `desc:"statistics of all neurons"`
}

// CollectStatistics aggregates the per-neuron statistics into group, pool
// and reservoir statistics.  It must not be called concurrently with Compute.
func (rs *Reservoir) CollectStatistics() *ReservoirStat {
	st := &ReservoirStat{Name: rs.Name, Cycle: rs.Cycle}
	st.Total.Init(rs.Name)
	st.Pools = make([]PoolStat, len(rs.Pools))
	for pi, pl := range rs.Pools {
		ps := &st.Pools[pi]
		ps.Name = pl.Name
		ps.Total.Init(pl.Name)
		ps.Groups = make([]GroupStat, len(pl.Groups))
		for k, gi := range pl.Groups {
			ng := rs.Groups[gi]
			gs := &ps.Groups[k]
			gs.Init(ng.Name)
			for _, ni := range ng.Neurons {
				gs.AddNeuron(&rs.Neurons[ni])
			}
			ps.Total.Merge(gs)
		}
		st.Total.Merge(&ps.Total)
	}
	return st
}

// Table returns the statistics as a table with one row per neuron group
// and one total row per pool, with an empty group name
func (st *ReservoirStat) Table() *etable.Table {
	dt := &etable.Table{}
	dt.SetMetaData("name", st.Name+"Stats")
	dt.SetMetaData("desc", "Statistics of neuron groups and pools")
	dt.SetMetaData("read-only", "true")
	sch := etable.Schema{
		{Name: "Pool", Type: etensor.STRING, CellShape: nil, DimNames: nil},
		{Name: "Group", Type: etensor.STRING, CellShape: nil, DimNames: nil},
		{Name: "NNeurons", Type: etensor.INT64, CellShape: nil, DimNames: nil},
		{Name: "ActMean", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
		{Name: "ActStdev", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
		{Name: "ActMin", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
		{Name: "ActMax", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
		{Name: "InStimMean", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
		{Name: "IntStimMean", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
		{Name: "StimMean", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
		{Name: "StimStdev", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
		{Name: "OutMean", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
		{Name: "OutStdev", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
		{Name: "EffMean", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
		{Name: "NoStimuli", Type: etensor.INT64, CellShape: nil, DimNames: nil},
		{Name: "NoSignal", Type: etensor.INT64, CellShape: nil, DimNames: nil},
		{Name: "ConstSignal", Type: etensor.INT64, CellShape: nil, DimNames: nil},
		{Name: "NoFiring", Type: etensor.INT64, CellShape: nil, DimNames: nil},
	}
	nrows := 0
	for _, ps := range st.Pools {
		nrows += len(ps.Groups) + 1
	}
	dt.SetFromSchema(sch, nrows)
	row := 0
	for pi := range st.Pools {
		ps := &st.Pools[pi]
		for gi := range ps.Groups {
			setRow(dt, row, ps.Name, ps.Groups[gi].Name, &ps.Groups[gi])
			row++
		}
		setRow(dt, row, ps.Name, "", &ps.Total)
		row++
	}
	return dt
}

func setRow(dt *etable.Table, row int, pool, group string, gs *GroupStat) {
	dt.SetCellString("Pool", row, pool)
	dt.SetCellString("Group", row, group)
	dt.SetCellFloat("NNeurons", row, float64(gs.NNeurons))
	dt.SetCellFloat("ActMean", row, gs.Activation.All.Mean())
	dt.SetCellFloat("ActStdev", row, gs.Activation.All.Stdev())
	dt.SetCellFloat("ActMin", row, gs.Activation.All.MinVal())
	dt.SetCellFloat("ActMax", row, gs.Activation.All.MaxVal())
	dt.SetCellFloat("InStimMean", row, gs.InStimuli.All.Mean())
	dt.SetCellFloat("IntStimMean", row, gs.IntStimuli.All.Mean())
	dt.SetCellFloat("StimMean", row, gs.Stimuli.All.Mean())
	dt.SetCellFloat("StimStdev", row, gs.Stimuli.All.Stdev())
	dt.SetCellFloat("OutMean", row, gs.Output.All.Mean())
	dt.SetCellFloat("OutStdev", row, gs.Output.All.Stdev())
	dt.SetCellFloat("EffMean", row, gs.Efficacy.All.Mean())
	dt.SetCellFloat("NoStimuli", row, float64(gs.NoStimuli))
	dt.SetCellFloat("NoSignal", row, float64(gs.NoSignal))
	dt.SetCellFloat("ConstSignal", row, float64(gs.ConstSignal))
	dt.SetCellFloat("NoFiring", row, float64(gs.NoFiring))
}
