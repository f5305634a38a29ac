// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reservoir

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/emer/emergent/erand"
	"github.com/emer/etable/minmax"
	"github.com/emer/reservoir/spectral"
	"github.com/emer/reservoir/topo"
	"github.com/goki/mat32"
	"github.com/sirupsen/logrus"
)

// seed streams of the build stages, combined with the build seed by topo.DeriveSeed
const (
	seedNeurons = iota
	seedInput
	seedWeights
	seedDelays
	seedIntercon
)

// Build constructs a reservoir from its definition.  External input values
// are expected within inRange.  The result is a function of def and seed
// only, never of def.NThreads.  def itself is left unchanged.  Threads are started when NThreads > 1:
// call Close when done with the reservoir.
func Build(def *InstanceParams, inRange minmax.F64, seed int64) (*Reservoir, error) {
	def = def.Clone()
	def.Update()
	if err := def.Validate(); err != nil {
		return nil, err
	}
	if err := def.Compat(); err != nil {
		return nil, err
	}
	if !(inRange.Min <= inRange.Max) || math.IsInf(inRange.Min, 0) || math.IsInf(inRange.Max, 0) {
		return nil, fmt.Errorf("%w: input range [%g, %g]", ErrInvalidConfig, inRange.Min, inRange.Max)
	}
	rs := &Reservoir{Name: def.Name, Seed: seed, InRange: inRange, NInputs: def.NInputs}
	rs.InputSyn = def.InputSyn
	rs.InternalSyn = def.InternalSyn
	rs.Augmented = def.Predictors.Augmented
	rs.NThreads = def.NThreads
	rs.WtScale = 1

	rs.buildNeurons(def)
	if err := rs.buildInputs(def); err != nil {
		return nil, err
	}
	bk, err := rs.buildInterconn(def)
	if err != nil {
		return nil, err
	}
	rs.buildSyns(bk)
	if err := rs.normalize(def); err != nil {
		return nil, err
	}

	rs.stimFun = rs.StimPhase
	rs.stateFun = rs.StatePhase
	rs.BuildThreads()
	rs.StartThreads()
	rs.Reset(true)
	Log.WithFields(logrus.Fields{
		"name":     rs.Name,
		"neurons":  len(rs.Neurons),
		"synapses": len(rs.Syns),
		"inputs":   len(rs.InSyns),
		"radius":   rs.Radius,
	}).Info("built reservoir")
	return rs, nil
}

// splitCount splits total into parts proportional to the weights, using
// largest remainder rounding, ties going to the lower index
func splitCount(total int, wts []float64) []int {
	ns := make([]int, len(wts))
	sum := 0.0
	for _, w := range wts {
		sum += w
	}
	if sum <= 0 || total <= 0 {
		return ns
	}
	rems := make([]float64, len(wts))
	left := total
	for i, w := range wts {
		x := float64(total) * w / sum
		ns[i] = int(math.Floor(x))
		rems[i] = x - float64(ns[i])
		left -= ns[i]
	}
	ord := make([]int, len(wts))
	for i := range ord {
		ord[i] = i
	}
	sort.SliceStable(ord, func(a, b int) bool { return rems[ord[a]] > rems[ord[b]] })
	for k := 0; left > 0; k = (k + 1) % len(ord) {
		ns[ord[k]]++
		left--
	}
	return ns
}

// subset returns a sorted random subset of round(frac * len(idxs)) of idxs
func subset(rnd *rand.Rand, idxs []int32, frac float64) []int32 {
	n := int(math.Round(frac * float64(len(idxs))))
	perm := rnd.Perm(len(idxs))[:n]
	sub := make([]int32, n)
	for i, pi := range perm {
		sub[i] = idxs[pi]
	}
	sort.Slice(sub, func(a, b int) bool { return sub[a] < sub[b] })
	return sub
}

// buildNeurons lays out the pools and assigns the neurons to groups
func (rs *Reservoir) buildNeurons(def *InstanceParams) {
	rnd := rand.New(rand.NewSource(topo.DeriveSeed(rs.Seed, seedNeurons)))
	rs.Neurons = make([]Neuron, def.NNeurons())
	st := 0
	for pi, pp := range def.Pools {
		pl := &Pool{Name: pp.Nm, Idx: pi, St: st}
		pl.Shape.SetShape([]int{pp.Dims[2], pp.Dims[1], pp.Dims[0]}, nil, []string{"Z", "Y", "X"})
		pl.Ed = st + pp.NNeurons()
		rs.Pools = append(rs.Pools, pl)
		for ni := pl.St; ni < pl.Ed; ni++ {
			li := ni - pl.St
			nrn := &rs.Neurons[ni]
			nrn.Idx = int32(ni)
			nrn.Pool = int32(pi)
			zyx := pl.Shape.Index(li)
			nrn.Pos = pp.Coords.Add(mat32.Vec3{X: float32(zyx[2]), Y: float32(zyx[1]), Z: float32(zyx[0])})
		}

		shares := make([]float64, len(pp.Groups))
		for gi, gp := range pp.Groups {
			shares[gi] = gp.RelShare
		}
		counts := splitCount(pl.NNeurons(), shares)
		perm := rnd.Perm(pl.NNeurons())
		off := 0
		for gi, gp := range pp.Groups {
			ng := &NeuronGroup{Name: gp.Name, Idx: len(rs.Groups), Pool: pi, Role: gp.Role, Kind: gp.Kind,
				Analog: gp.Analog, Spiking: gp.Spiking}
			ng.Neurons = make([]int32, counts[gi])
			for k := range ng.Neurons {
				ng.Neurons[k] = int32(pl.St + perm[off+k])
			}
			off += counts[gi]
			sort.Slice(ng.Neurons, func(a, b int) bool { return ng.Neurons[a] < ng.Neurons[b] })
			rs.initGroup(rnd, ng, gp)
			pl.Groups = append(pl.Groups, ng.Idx)
			rs.Groups = append(rs.Groups, ng)
		}
		st = pl.Ed
	}
	for ni := range rs.Neurons {
		if rs.Neurons[ni].Readout {
			rs.Readouts = append(rs.Readouts, int32(ni))
		}
	}
}

// initGroup sets the fixed properties of the group's neurons
func (rs *Reservoir) initGroup(rnd *rand.Rand, ng *NeuronGroup, gp *NeuronGroupParams) {
	for _, ni := range ng.Neurons {
		nrn := &rs.Neurons[ni]
		nrn.Group = int32(ng.Idx)
		nrn.Kind = ng.Kind
		nrn.Role = ng.Role
		nrn.Bias = gp.Bias.Min + rnd.Float64()*gp.Bias.Range()
	}
	if ng.Kind == Analog {
		for _, ni := range subset(rnd, ng.Neurons, gp.RetainmentDensity) {
			rs.Neurons[ni].Ret = gp.Retainment.Min + rnd.Float64()*gp.Retainment.Range()
		}
	}
	ro := subset(rnd, ng.Neurons, gp.ReadoutDensity)
	if len(ro) == 0 && gp.ReadoutDensity > 0 {
		Log.WithFields(logrus.Fields{"group": ng.Name, "neurons": len(ng.Neurons), "density": gp.ReadoutDensity}).
			Warn("readout density selects no neuron")
	}
	for _, ni := range ro {
		rs.Neurons[ni].Readout = true
	}
}

// filterNeurons returns the neurons of pool pl matching filter
func (rs *Reservoir) filterNeurons(pl *Pool, flt Filter) []int {
	var idxs []int
	for ni := pl.St; ni < pl.Ed; ni++ {
		nrn := &rs.Neurons[ni]
		if flt.Match(nrn.Role, nrn.Kind) {
			idxs = append(idxs, ni)
		}
	}
	return idxs
}

// nodes returns the topo nodes of given neurons
func (rs *Reservoir) nodes(idxs []int) []topo.Node {
	nds := make([]topo.Node, len(idxs))
	for i, ni := range idxs {
		nds[i] = topo.Node{Idx: ni, Pos: rs.Neurons[ni].Pos}
	}
	return nds
}

// inWire is the input wiring: the bank and the weight scale of each
// (field, neuron) edge, set by the connection that placed it
type inWire struct {
	bk    *topo.Bank
	scale map[[2]int]float64
}

// buildInputs places the input fields and wires them to the pools
func (rs *Reservoir) buildInputs(def *InstanceParams) error {
	rs.InPos = make([]mat32.Vec3, rs.NInputs)
	for i := range rs.InPos {
		rs.InPos[i] = def.InputPos.Add(mat32.Vec3{Y: float32(i)})
	}
	rs.Inputs = make([]float64, rs.NInputs)
	iw := &inWire{bk: topo.NewBank(rs.NInputs, len(rs.Neurons)), scale: make(map[[2]int]float64)}
	for ci, ic := range def.InputConns {
		pl := rs.Pools[def.PoolByName(ic.Pool)]
		fields := ic.Fields
		if len(fields) == 0 {
			fields = make([]int, rs.NInputs)
			for i := range fields {
				fields[i] = i
			}
		}
		tgts := rs.filterNeurons(pl, ic.Filter)
		_, err := topo.Guaranteed(iw.bk, fields, tgts, ic.Density, topo.DeriveSeed(rs.Seed, seedIntercon+1000+ci))
		if err != nil {
			return fmt.Errorf("input connection %d to pool %s (%v): %w", ci, pl.Name, ic.Filter, err)
		}
		for _, fi := range fields {
			for _, ni := range tgts {
				k := [2]int{fi, ni}
				if _, has := iw.scale[k]; !has && iw.bk.Has(fi, ni) {
					iw.scale[k] = ic.Scale
				}
			}
		}
	}
	rs.buildInSyns(iw)
	return nil
}

// buildInterconn wires the neurons of each pool, and the pools to each other
func (rs *Reservoir) buildInterconn(def *InstanceParams) (*topo.Bank, error) {
	nn := len(rs.Neurons)
	bk := topo.NewBank(nn, nn)
	stage := seedIntercon
	for pi, pp := range def.Pools {
		pl := rs.Pools[pi]
		ic := &pp.Interconn
		all := make([]int, pl.NNeurons())
		for i := range all {
			all[i] = pl.St + i
		}
		fixed := 0
		switch ic.Schema {
		case RingSchema:
			fixed = topo.Ring(bk, all, ic.Bidir)
		case ToroidSchema:
			fixed = topo.Toroid(bk, all, 0, ic.Bidir)
		}
		total := int(math.Round(ic.Density * float64(pl.NNeurons()*pl.NNeurons())))
		resid := total - fixed
		if resid <= 0 {
			continue
		}
		var roles [RoleN][]int
		for _, ni := range all {
			r := rs.Neurons[ni].Role
			roles[r] = append(roles[r], ni)
		}
		type pair struct{ send, recv Role }
		var pairs []pair
		var wts, sizes []float64
		rsum := 0.0
		for s := Role(0); s < RoleN; s++ {
			for r := Role(0); r < RoleN; r++ {
				if len(roles[s]) == 0 || len(roles[r]) == 0 {
					continue
				}
				pairs = append(pairs, pair{s, r})
				wts = append(wts, ic.Ratio(s, r))
				sizes = append(sizes, float64(len(roles[s])*len(roles[r])))
				rsum += ic.Ratio(s, r)
			}
		}
		if rsum <= 0 {
			wts = sizes
		}
		counts := splitCount(resid, wts)
		for k, pr := range pairs {
			stage++
			if counts[k] == 0 {
				continue
			}
			rp := &topo.RandomParams{}
			rp.Defaults()
			rp.Count = counts[k]
			rp.ConstCount = ic.ConstCount
			rp.AllowSelf = ic.AllowSelf
			rp.NoMutual = ic.NoMutual
			rp.AvgDist = ic.AvgDist
			rp.NThreads = def.NThreads
			rp.Seed = topo.DeriveSeed(rs.Seed, stage)
			nc, err := topo.Random(bk, rs.nodes(roles[pr.send]), rs.nodes(roles[pr.recv]), rp)
			if err != nil {
				return nil, fmt.Errorf("pool %s %v -> %v: %w", pl.Name, pr.send, pr.recv, err)
			}
			if nc < counts[k] {
				Log.WithFields(logrus.Fields{"pool": pl.Name, "send": pr.send.String(), "recv": pr.recv.String(),
					"requested": counts[k], "placed": nc}).Debug("interconnection saturated")
			}
		}
	}
	for ci, pc := range def.PoolConns {
		stage++
		if pc.Density <= 0 {
			continue
		}
		spl := rs.Pools[def.PoolByName(pc.Send)]
		rpl := rs.Pools[def.PoolByName(pc.Recv)]
		srcs := rs.filterNeurons(spl, pc.SendFilter)
		tgts := rs.filterNeurons(rpl, pc.RecvFilter)
		rp := &topo.RandomParams{}
		rp.Defaults()
		rp.Count = int(math.Round(pc.Density * float64(len(srcs)*len(tgts))))
		rp.ConstCount = pc.ConstCount
		rp.AvgDist = pc.AvgDist
		rp.NoMutual = pc.NoMutual && spl == rpl
		rp.NThreads = def.NThreads
		rp.Seed = topo.DeriveSeed(rs.Seed, stage)
		if len(srcs) == 0 || len(tgts) == 0 {
			return nil, fmt.Errorf("pool connection %d %s -> %s: %w", ci, spl.Name, rpl.Name, topo.ErrNoTargets)
		}
		if _, err := topo.Random(bk, rs.nodes(srcs), rs.nodes(tgts), rp); err != nil {
			return nil, fmt.Errorf("pool connection %d %s -> %s: %w", ci, spl.Name, rpl.Name, err)
		}
	}
	return bk, nil
}

// genWt draws a value from the weight distribution
func genWt(rnd *rand.Rand, rp *WtParams) float64 {
	switch rp.Dist.Rnd() {
	case erand.Gaussian:
		return rp.Mean + rp.Var*rnd.NormFloat64()
	case erand.Mean:
		return rp.Mean
	}
	return rp.Mean + rp.Var*(2*rnd.Float64()-1)
}

// delays assigns the delay of each edge of a bank, in bank order
func delays(rnd *rand.Rand, sp *SynapseParams, bk *topo.Bank, sendPos func(si int) mat32.Vec3, recvPos func(ri int) mat32.Vec3) []int32 {
	ds := make([]int32, 0, bk.Len())
	switch sp.Delay {
	case RandomDelay:
		bk.Edges(func(send, recv int) {
			ds = append(ds, int32(rnd.Intn(sp.MaxDelay+1)))
		})
	case DistDelay:
		var dists []float32
		var mx float32
		bk.Edges(func(send, recv int) {
			d := sendPos(send).DistTo(recvPos(recv))
			dists = append(dists, d)
			if d > mx {
				mx = d
			}
		})
		for _, d := range dists {
			dl := int32(0)
			if mx > 0 {
				dl = int32(math.Round(float64(d/mx) * float64(sp.MaxDelay)))
			}
			ds = append(ds, dl)
		}
	default:
		bk.Edges(func(send, recv int) {
			ds = append(ds, 0)
		})
	}
	return ds
}

// fill stores the edges of a bank as synapses grouped by receiver
func fill(bk *topo.Bank, syns *[]Synapse, st, n *[]int32, wt func(send, recv int) float64, ds []int32) {
	nn := bk.NRecv()
	*syns = make([]Synapse, 0, bk.Len())
	*st = make([]int32, nn)
	*n = make([]int32, nn)
	for ri := 0; ri < nn; ri++ {
		(*st)[ri] = int32(len(*syns))
		(*n)[ri] = int32(len(bk.Recv[ri]))
		for _, si := range bk.Recv[ri] {
			sy := Synapse{Send: si, Delay: ds[len(*syns)], Wt: wt(int(si), ri)}
			if sy.Delay > 0 {
				sy.Queue = NewDelayQueue(int(sy.Delay))
			}
			*syns = append(*syns, sy)
		}
	}
}

// buildInSyns creates the input synapses
func (rs *Reservoir) buildInSyns(iw *inWire) {
	wrnd := rand.New(rand.NewSource(topo.DeriveSeed(rs.Seed, seedWeights)))
	drnd := rand.New(rand.NewSource(topo.DeriveSeed(rs.Seed, seedDelays)))
	ds := delays(drnd, &rs.InputSyn, iw.bk,
		func(si int) mat32.Vec3 { return rs.InPos[si] },
		func(ri int) mat32.Vec3 { return rs.Neurons[ri].Pos })
	fill(iw.bk, &rs.InSyns, &rs.InSynSt, &rs.InSynN, func(send, recv int) float64 {
		sc := iw.scale[[2]int{send, recv}]
		return sc * genWt(wrnd, &rs.InputSyn.Wt)
	}, ds)
}

// buildSyns creates the internal synapses: weights take the magnitude of the
// generated value and the sign of the sender's role
func (rs *Reservoir) buildSyns(bk *topo.Bank) {
	wrnd := rand.New(rand.NewSource(topo.DeriveSeed(rs.Seed, seedWeights+100)))
	drnd := rand.New(rand.NewSource(topo.DeriveSeed(rs.Seed, seedDelays+100)))
	pos := func(ni int) mat32.Vec3 { return rs.Neurons[ni].Pos }
	ds := delays(drnd, &rs.InternalSyn, bk, pos, pos)
	fill(bk, &rs.Syns, &rs.SynSt, &rs.SynN, func(send, recv int) float64 {
		return rs.Neurons[send].Role.Sign() * math.Abs(genWt(wrnd, &rs.InternalSyn.Wt))
	}, ds)
}

// WtMatrix returns the internal weights among the neurons within scope, as a
// sparse matrix with rows for receivers, and the neuron index of each row
func (rs *Reservoir) WtMatrix(scope Scope) (*spectral.Sparse, []int) {
	idx := make([]int, len(rs.Neurons))
	var rows []int
	for ni := range rs.Neurons {
		idx[ni] = -1
		if scope == AllScope || rs.Neurons[ni].Kind == Analog {
			idx[ni] = len(rows)
			rows = append(rows, ni)
		}
	}
	var ents []spectral.Entry
	for _, ni := range rows {
		for _, sy := range rs.RecvSyns(ni) {
			if c := idx[sy.Send]; c >= 0 {
				ents = append(ents, spectral.Entry{Row: idx[ni], Col: c, Val: sy.Wt})
			}
		}
	}
	return spectral.NewSparse(len(rows), ents), rows
}

// normalize rescales all internal weights so that the weights within the
// spectral scope have the target spectral radius
func (rs *Reservoir) normalize(def *InstanceParams) error {
	sp := &def.Spectral
	if sp.Radius <= 0 {
		return nil
	}
	m, rows := rs.WtMatrix(sp.Scope)
	if len(rows) == 0 {
		Log.WithField("name", rs.Name).Debug("no neurons within spectral scope, weights not normalized")
		return nil
	}
	scale, radius, err := spectral.Normalize(m, sp.Radius, &sp.Params)
	if err != nil {
		return err
	}
	for si := range rs.Syns {
		rs.Syns[si].Wt *= scale
	}
	rs.Radius = radius
	rs.WtScale = scale
	return nil
}
