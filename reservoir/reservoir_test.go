// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reservoir

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/emer/emergent/erand"
	"github.com/emer/etable/minmax"
	"github.com/emer/reservoir/actfun"
	"github.com/emer/reservoir/spectral"
	"github.com/emer/reservoir/topo"
	"github.com/goki/mat32"
)

var unitRange = minmax.F64{Min: -1, Max: 1}

// basicDef is a single pool of 100 excitatory tanh neurons, every neuron
// receiving the single input field
func basicDef() *InstanceParams {
	ip := &InstanceParams{}
	ip.Defaults()
	pp := ip.AddPool("Main", 10, 10, 1)
	pp.AddGroup("Exc", Excitatory, Analog)
	pp.Interconn.Density = 0.1
	ip.AddInputConn("Main", 1)
	return ip
}

// mixedDef exercises groups of both roles and kinds, delays, plasticity,
// distance matching and pool connections
func mixedDef(nthr int) *InstanceParams {
	ip := &InstanceParams{}
	ip.Defaults()
	ip.NInputs = 3
	ip.NThreads = nthr
	ip.InternalSyn.Delay = RandomDelay
	ip.InternalSyn.MaxDelay = 3
	ip.InternalSyn.Plastic.On = true
	ip.InputSyn.Delay = DistDelay
	ip.InputSyn.MaxDelay = 2
	ip.Spectral.Method = spectral.Exact

	pa := ip.AddPool("Analog", 8, 5, 1)
	ge := pa.AddGroup("Exc", Excitatory, Analog)
	ge.RelShare = 4
	ge.RetainmentDensity = 0.5
	ge.Bias = minmax.F64{Min: -0.1, Max: 0.1}
	gi := pa.AddGroup("Inh", Inhibitory, Analog)
	gi.Analog.Fun = actfun.Sigmoid
	gi.ReadoutDensity = 0.5
	pa.Interconn.Density = 0.15
	pa.Interconn.ConstCount = false
	pa.Interconn.AvgDist = 2
	pa.Interconn.RatioEE = 4
	pa.Interconn.RatioEI = 1
	pa.Interconn.RatioIE = 2

	ps := ip.AddPool("Spiking", 5, 4, 1)
	ps.Coords.X = 10
	ps.AddGroup("Exc", Excitatory, Spiking)
	gs := ps.AddGroup("Izh", Inhibitory, Spiking)
	gs.Spiking.Model = actfun.Izhikevich
	ps.Interconn.Schema = ToroidSchema
	ps.Interconn.Density = 0.2

	ip.AddPoolConn("Analog", "Spiking", 0.1).SendFilter = ExcitatoryOnly
	ip.AddPoolConn("Spiking", "Analog", 0.05)
	ip.AddInputConn("Analog", 0.3)
	ic := ip.AddInputConn("Spiking", 0.5)
	ic.Fields = []int{2}
	ic.Scale = 2
	return ip
}

func buildTest(t *testing.T, ip *InstanceParams, seed int64) *Reservoir {
	rs, err := Build(ip, unitRange, seed)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return rs
}

func TestBuildBasic(t *testing.T) {
	rs := buildTest(t, basicDef(), 1)
	defer rs.Close()
	if len(rs.Neurons) != 100 {
		t.Errorf("neurons: got %d, trg 100", len(rs.Neurons))
	}
	if rs.NSyns() != 1000 {
		t.Errorf("synapses: got %d, trg 1000", rs.NSyns())
	}
	if rs.NInSyns() != 100 {
		t.Errorf("input synapses: got %d, trg 100", rs.NInSyns())
	}
	for ni := range rs.Neurons {
		seen := make(map[int32]bool)
		for _, sy := range rs.RecvSyns(ni) {
			if sy.Send == int32(ni) {
				t.Errorf("neuron %d: self connection", ni)
			}
			if seen[sy.Send] {
				t.Errorf("neuron %d: duplicate connection from %d", ni, sy.Send)
			}
			seen[sy.Send] = true
			if sy.Wt <= 0 {
				t.Errorf("neuron %d: excitatory weight %g <= 0", ni, sy.Wt)
			}
		}
		if rs.InSynN[ni] != 1 {
			t.Errorf("neuron %d: got %d input synapses, trg 1", ni, rs.InSynN[ni])
		}
	}
	m, _ := rs.WtMatrix(AnalogScope)
	r, err := spectral.ExactRadius(m)
	if err != nil {
		t.Fatal(err)
	}
	if dif := math.Abs(r - 0.9); dif > 1e-6 {
		t.Errorf("spectral radius: got %g, trg 0.9, dif %g", r, dif)
	}
	if rs.NPredictors() != 100 {
		t.Errorf("predictors: got %d, trg 100", rs.NPredictors())
	}
}

func TestComputeStats(t *testing.T) {
	rs := buildTest(t, basicDef(), 3)
	defer rs.Close()
	in := []float64{1}
	for i := 0; i < 20; i++ {
		rs.Compute(in, false)
	}
	for i := 0; i < 30; i++ {
		rs.Compute(in, true)
	}
	for ni := range rs.Neurons {
		nrn := &rs.Neurons[ni]
		if nrn.OutStat.N != 30 {
			t.Errorf("neuron %d: got %d samples, trg 30", ni, nrn.OutStat.N)
			break
		}
		if nrn.Out < -1 || nrn.Out > 1 || nrn.Pred < -1 || nrn.Pred > 1 {
			t.Errorf("neuron %d: out %g pred %g outside of [-1, 1]", ni, nrn.Out, nrn.Pred)
		}
	}
	st := rs.CollectStatistics()
	if len(st.Pools) != 1 || len(st.Pools[0].Groups) != 1 {
		t.Fatalf("stats shape: got %d pools", len(st.Pools))
	}
	gs := &st.Pools[0].Groups[0]
	if gs.NNeurons != 100 || st.Total.NNeurons != 100 {
		t.Errorf("stats neurons: got %d %d, trg 100", gs.NNeurons, st.Total.NNeurons)
	}
	if gs.NoSignal != 0 || gs.NoStimuli != 0 || gs.NoFiring != 0 {
		t.Errorf("pathological neurons: no signal %d, no stimuli %d, no firing %d", gs.NoSignal, gs.NoStimuli, gs.NoFiring)
	}
	if gs.Output.All.N != 3000 || gs.Output.Means.N != 100 {
		t.Errorf("output samples: got %d %d, trg 3000 100", gs.Output.All.N, gs.Output.Means.N)
	}
	if st.Cycle != 50 {
		t.Errorf("cycle: got %d, trg 50", st.Cycle)
	}

	dt := st.Table()
	if dt.Rows != 2 {
		t.Fatalf("table rows: got %d, trg 2", dt.Rows)
	}
	if got := dt.CellString("Group", 0); got != "Exc" {
		t.Errorf("table group: got %q, trg Exc", got)
	}
	if got := dt.CellFloat("NNeurons", 1); got != 100 {
		t.Errorf("table total neurons: got %g, trg 100", got)
	}
	if got := dt.CellFloat("NoSignal", 1); got != 0 {
		t.Errorf("table no signal: got %g, trg 0", got)
	}
}

func TestReset(t *testing.T) {
	rs := buildTest(t, mixedDef(1), 5)
	defer rs.Close()
	in := []float64{0.5, -0.2, 1}
	npred := rs.NPredictors()
	run := func() []float64 {
		buf := make([]float64, 10*npred)
		for i := 0; i < 10; i++ {
			rs.Compute(in, true)
			rs.CopyPredictorsTo(buf, i*npred)
		}
		return buf
	}
	first := run()
	rs.Reset(true)
	if rs.Cycle != 0 {
		t.Errorf("cycle after reset: got %d", rs.Cycle)
	}
	for ni := range rs.Neurons {
		nrn := &rs.Neurons[ni]
		if nrn.Out != 0 || nrn.OutStat.N != 0 || nrn.EffStat.N != 0 {
			t.Fatalf("neuron %d not reset: out %g, samples %d", ni, nrn.Out, nrn.OutStat.N)
		}
	}
	second := run()
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("predictor %d after reset: got %g, trg %g", i, second[i], first[i])
		}
	}
	rs.Reset(false)
	if rs.Neurons[0].OutStat.N != 10 {
		t.Errorf("stats kept: got %d samples, trg 10", rs.Neurons[0].OutStat.N)
	}
}

// sameReservoir reports the first difference between two reservoirs
func sameReservoir(a, b *Reservoir) string {
	if len(a.Neurons) != len(b.Neurons) || len(a.Syns) != len(b.Syns) || len(a.InSyns) != len(b.InSyns) {
		return "sizes differ"
	}
	for ni := range a.Neurons {
		na, nb := &a.Neurons[ni], &b.Neurons[ni]
		if na.Group != nb.Group || na.Bias != nb.Bias || na.Ret != nb.Ret || na.Readout != nb.Readout {
			return "neuron properties differ"
		}
		if na.Out != nb.Out || na.Act != nb.Act || na.Pred != nb.Pred {
			return "neuron states differ"
		}
	}
	for _, pr := range [][2][]Synapse{{a.Syns, b.Syns}, {a.InSyns, b.InSyns}} {
		for si := range pr[0] {
			sa, sb := &pr[0][si], &pr[1][si]
			if sa.Send != sb.Send || sa.Wt != sb.Wt || sa.Delay != sb.Delay {
				return "synapses differ"
			}
		}
	}
	return ""
}

func TestDeterminism(t *testing.T) {
	ref := buildTest(t, mixedDef(1), 42)
	defer ref.Close()
	in := []float64{0.3, 0.9, -0.5}
	for _, nthr := range []int{1, 2, 4, 7} {
		rs := buildTest(t, mixedDef(nthr), 42)
		if dif := sameReservoir(ref, rs); dif != "" {
			t.Errorf("threads %d: %s after build", nthr, dif)
		}
		ref.Reset(true)
		for i := 0; i < 25; i++ {
			ref.Compute(in, true)
			rs.Compute(in, true)
		}
		if dif := sameReservoir(ref, rs); dif != "" {
			t.Errorf("threads %d: %s after compute", nthr, dif)
		}
		rs.Close()
	}
	other := buildTest(t, mixedDef(1), 43)
	defer other.Close()
	if sameReservoir(ref, other) == "" {
		t.Errorf("different seeds built the same reservoir")
	}
}

func TestMixedBuild(t *testing.T) {
	rs := buildTest(t, mixedDef(2), 9)
	defer rs.Close()
	pa, ps := rs.PoolByName("Analog"), rs.PoolByName("Spiking")
	if pa.NNeurons() != 40 || ps.NNeurons() != 20 {
		t.Fatalf("pool sizes: got %d %d", pa.NNeurons(), ps.NNeurons())
	}
	exc := rs.Groups[pa.Groups[0]]
	inh := rs.Groups[pa.Groups[1]]
	if len(exc.Neurons) != 32 || len(inh.Neurons) != 8 {
		t.Errorf("group sizes: got %d %d, trg 32 8", len(exc.Neurons), len(inh.Neurons))
	}
	// 32 + 4 readouts in the analog pool, all spiking neurons
	if len(rs.Readouts) != 56 {
		t.Errorf("readouts: got %d, trg 56", len(rs.Readouts))
	}
	nret := 0
	for _, ni := range exc.Neurons {
		if r := rs.Neurons[ni].Ret; r != 0 {
			nret++
			if r < 0.5 || r > 0.9 {
				t.Errorf("retainment %g outside of [0.5, 0.9]", r)
			}
		}
	}
	if nret != 16 {
		t.Errorf("retaining neurons: got %d, trg 16", nret)
	}
	for ni := range rs.Neurons {
		nrn := &rs.Neurons[ni]
		for _, sy := range rs.RecvSyns(ni) {
			snd := &rs.Neurons[sy.Send]
			if (snd.Role == Inhibitory) != (sy.Wt < 0) {
				t.Fatalf("synapse %d -> %d: weight %g does not match role %v", sy.Send, ni, sy.Wt, snd.Role)
			}
			if sy.Delay < 0 || sy.Delay > 3 || (sy.Delay > 0) != (sy.Queue != nil) {
				t.Fatalf("synapse %d -> %d: bad delay %d", sy.Send, ni, sy.Delay)
			}
			if int(nrn.Pool) == ps.Idx && int(snd.Pool) == pa.Idx && snd.Role != Excitatory {
				t.Fatalf("filtered pool connection from inhibitory neuron %d", sy.Send)
			}
		}
		for _, sy := range rs.RecvInSyns(ni) {
			if int(nrn.Pool) == ps.Idx && sy.Send != 2 {
				t.Fatalf("spiking pool receives field %d", sy.Send)
			}
		}
	}
	m, _ := rs.WtMatrix(AnalogScope)
	r, err := spectral.ExactRadius(m)
	if err != nil {
		t.Fatal(err)
	}
	if dif := math.Abs(r - 0.9); dif > 1e-6 {
		t.Errorf("spectral radius: got %g, trg 0.9", r)
	}
	for i := 0; i < 10; i++ {
		rs.Compute([]float64{1, -1, 1}, true)
	}
	if rep := rs.SizeReport(); !strings.Contains(rep, "Spiking") {
		t.Errorf("size report: %s", rep)
	}
	if rep := rs.TimerReport(); !strings.Contains(rep, "StimPhase") {
		t.Errorf("timer report: %s", rep)
	}
}

func TestSpikingPool(t *testing.T) {
	ip := &InstanceParams{}
	ip.Defaults()
	ip.InputSyn.Wt.Dist = WtDist(erand.Mean)
	ip.InputSyn.Wt.Mean = 1
	pp := ip.AddPool("Spk", 5, 5, 1)
	pp.AddGroup("Exc", Excitatory, Spiking)
	ip.AddInputConn("Spk", 1)
	rs, err := Build(ip, minmax.F64{Min: 0, Max: 1}, 1)
	if err != nil {
		t.Fatal(err)
	}
	defer rs.Close()
	if rs.Radius != 0 || rs.WtScale != 1 {
		t.Errorf("spiking only: weights normalized, radius %g", rs.Radius)
	}
	for i := 0; i < 50; i++ {
		rs.Compute([]float64{1}, true)
	}
	st := rs.CollectStatistics()
	gs := &st.Pools[0].Groups[0]
	if gs.NoFiring != 0 {
		t.Errorf("no firing: got %d, trg 0", gs.NoFiring)
	}
	for ni := range rs.Neurons {
		nrn := &rs.Neurons[ni]
		if nrn.Act != nrn.Spike.Vm {
			t.Errorf("neuron %d: act %g != vm %g", ni, nrn.Act, nrn.Spike.Vm)
		}
		if nrn.Out != 0 && nrn.Out != 1 {
			t.Errorf("neuron %d: spike output %g", ni, nrn.Out)
		}
	}
}

func TestPredictors(t *testing.T) {
	ip := basicDef()
	ip.Predictors.Augmented = true
	ip.Pools[0].Groups[0].ReadoutDensity = 0.5
	rs := buildTest(t, ip, 2)
	defer rs.Close()
	if rs.NPredictors() != 100 {
		t.Fatalf("augmented predictors: got %d, trg 100", rs.NPredictors())
	}
	rs.Compute([]float64{0.7}, false)
	buf := make([]float64, 3+rs.NPredictors())
	if n := rs.CopyPredictorsTo(buf, 3); n != 100 {
		t.Errorf("copied: got %d, trg 100", n)
	}
	if buf[0] != 0 || buf[1] != 0 || buf[2] != 0 {
		t.Errorf("values written before offset")
	}
	for k, ni := range rs.Readouts {
		p := rs.Neurons[ni].Pred
		if buf[3+2*k] != p || buf[4+2*k] != p*p {
			t.Errorf("predictor %d: got %g %g, trg %g %g", k, buf[3+2*k], buf[4+2*k], p, p*p)
		}
		if k > 0 && rs.Readouts[k-1] >= ni {
			t.Errorf("readouts not in neuron order")
		}
	}
}

func TestRingSchema(t *testing.T) {
	ip := &InstanceParams{}
	ip.Defaults()
	pp := ip.AddPool("Ring", 10, 1, 1)
	pp.AddGroup("Exc", Excitatory, Analog)
	pp.Interconn.Schema = RingSchema
	ip.AddInputConn("Ring", 0.1)
	rs := buildTest(t, ip, 1)
	defer rs.Close()
	if rs.NSyns() != 10 {
		t.Fatalf("ring synapses: got %d, trg 10", rs.NSyns())
	}
	for ni := range rs.Neurons {
		sy := rs.RecvSyns(ni)
		if len(sy) != 1 || int(sy[0].Send) != (ni+9)%10 {
			t.Errorf("neuron %d: ring sender %v", ni, sy)
		}
	}
	if dif := math.Abs(rs.Radius*rs.WtScale - 0.9); dif > 1e-6 {
		t.Errorf("ring radius after scaling: got %g", rs.Radius*rs.WtScale)
	}
}

func TestBuildErrors(t *testing.T) {
	ip := basicDef()
	ip.Pools[0].AddGroup("Inh", Inhibitory, Analog)
	if _, err := Build(ip, unitRange, 1); !errors.Is(err, ErrIncompatibleActivation) {
		t.Errorf("tanh inhibitory group: got %v", err)
	}

	ip = basicDef()
	ip.InputConns[0].Filter = SpikingOnly
	if _, err := Build(ip, unitRange, 1); !errors.Is(err, topo.ErrNoTargets) {
		t.Errorf("empty input targets: got %v", err)
	}

	ip = basicDef()
	ip.Pools[0].Interconn.Density = 0
	if _, err := Build(ip, unitRange, 1); !errors.Is(err, spectral.ErrZeroEigenvalue) {
		t.Errorf("no internal synapses: got %v", err)
	}
	ip.Spectral.Radius = 0
	rs, err := Build(ip, unitRange, 1)
	if err != nil {
		t.Errorf("normalization disabled: got %v", err)
	} else {
		rs.Close()
	}

	ip = basicDef()
	ip.InputConns[0].Pool = "Missing"
	ip.Pools[0].Interconn.Density = 2
	_, err = Build(ip, unitRange, 1)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("invalid definition: got %v", err)
	} else if !strings.Contains(err.Error(), "Missing") || !strings.Contains(err.Error(), "density") {
		t.Errorf("invalid definition does not report all problems: %v", err)
	}

	if _, err := Build(basicDef(), minmax.F64{Min: 1, Max: -1}, 1); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("inverted input range: got %v", err)
	}
}

func TestShortInput(t *testing.T) {
	ip := basicDef()
	ip.NInputs = 3
	rs := buildTest(t, ip, 4)
	defer rs.Close()
	rs.Compute(nil, true)
	for i, v := range rs.Inputs {
		if v != 0 {
			t.Errorf("missing input %d: got %g, trg 0", i, v)
		}
	}
	rs.Compute([]float64{5, -5, 0, 9}, true)
	if rs.Inputs[0] != 1 || rs.Inputs[1] != -1 || rs.Inputs[2] != 0 {
		t.Errorf("clipped inputs: got %v", rs.Inputs)
	}
}

// scaleDef is a pool of excitatory and inhibitory neurons with constant
// unit input weights and no internal connections
func scaleDef() *InstanceParams {
	ip := &InstanceParams{}
	ip.Defaults()
	ip.NInputs = 2
	ip.InputSyn.Wt.Dist = WtDist(erand.Mean)
	ip.InputSyn.Wt.Mean = 1
	ip.Spectral.Radius = 0
	pp := ip.AddPool("Main", 4, 4, 1)
	pp.AddGroup("Exc", Excitatory, Analog)
	pp.AddGroup("Inh", Inhibitory, Analog).Analog.Fun = actfun.Sigmoid
	return ip
}

func TestInputScale(t *testing.T) {
	ip := scaleDef()
	ip.AddInputConn("Main", 1).Filter = ExcitatoryOnly
	ic := ip.AddInputConn("Main", 1)
	ic.Filter = InhibitoryOnly
	ic.Scale = 5
	rs := buildTest(t, ip, 1)
	defer rs.Close()
	for ni := range rs.Neurons {
		nrn := &rs.Neurons[ni]
		trg := 1.0
		if nrn.Role == Inhibitory {
			trg = 5
		}
		syns := rs.RecvInSyns(ni)
		if len(syns) != 2 {
			t.Errorf("neuron %d: got %d input synapses, trg 2", ni, len(syns))
		}
		for _, sy := range syns {
			if dif := math.Abs(sy.Wt - trg); dif > difTol {
				t.Errorf("neuron %d %v field %d: got wt %g, trg %g", ni, nrn.Role, sy.Send, sy.Wt, trg)
			}
		}
	}

	// overlapping fields keep the scale of the connection that placed the edge
	ip = scaleDef()
	ip.AddInputConn("Main", 1).Fields = []int{0}
	ic = ip.AddInputConn("Main", 1)
	ic.Scale = 3
	rs2 := buildTest(t, ip, 1)
	defer rs2.Close()
	for ni := range rs2.Neurons {
		for _, sy := range rs2.RecvInSyns(ni) {
			trg := 3.0
			if sy.Send == 0 {
				trg = 1
			}
			if dif := math.Abs(sy.Wt - trg); dif > difTol {
				t.Errorf("neuron %d field %d: got wt %g, trg %g", ni, sy.Send, sy.Wt, trg)
			}
		}
	}
}

func TestPoolGrid(t *testing.T) {
	ip := scaleDef()
	pp := ip.Pools[0]
	pp.Dims = [3]int{3, 2, 2}
	pp.Coords = mat32.Vec3{X: 10, Y: 20, Z: 30}
	ip.AddInputConn("Main", 1)
	rs := buildTest(t, ip, 1)
	defer rs.Close()
	pl := rs.Pools[0]
	if pl.Shape.Len() != 12 || pl.Shape.Dim(0) != 2 || pl.Shape.Dim(2) != 3 {
		t.Fatalf("pool shape: got %v", pl.Shape.Shp)
	}
	for ni := range rs.Neurons {
		trg := mat32.Vec3{X: float32(10 + ni%3), Y: float32(20 + (ni/3)%2), Z: float32(30 + ni/6)}
		if rs.Neurons[ni].Pos != trg {
			t.Errorf("neuron %d: got pos %v, trg %v", ni, rs.Neurons[ni].Pos, trg)
		}
	}
}

func TestBuildKeepsDef(t *testing.T) {
	ip := basicDef()
	ip.NThreads = 0
	ip.InternalSyn.MaxDelay = -2
	rs := buildTest(t, ip, 1)
	defer rs.Close()
	if ip.NThreads != 0 || ip.InternalSyn.MaxDelay != -2 {
		t.Errorf("definition changed: NThreads %d, MaxDelay %d", ip.NThreads, ip.InternalSyn.MaxDelay)
	}
	if rs.NThreads != 1 {
		t.Errorf("threads: got %d, trg 1", rs.NThreads)
	}
	cp := ip.Clone()
	cp.Pools[0].Groups[0].RelShare = 7
	cp.InputConns[0].Fields = append(cp.InputConns[0].Fields, 0)
	if ip.Pools[0].Groups[0].RelShare != 1 || len(ip.InputConns[0].Fields) != 0 {
		t.Errorf("clone shares lists with the original")
	}
}
