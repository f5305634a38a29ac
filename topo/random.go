// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package topo

import (
	"math"
	"math/rand"
	"sort"
	"sync"

	"github.com/chewxy/math32"
	"github.com/goki/ki/ints"
	"github.com/goki/mat32"
)

// Node is a connectable unit: its index in the bank space and its position
type Node struct {
	Idx int
	Pos mat32.Vec3
}

// RandomParams control random interconnection of a set of sources to a set of targets
type RandomParams struct {
	Count      int     `min:"0" desc:"total number of connections to create"`
	ConstCount bool    `desc:"give each source the same number of connections (+/- 1) instead of a Gaussian-jittered number"`
	Jitter     float64 `def:"0.33" min:"0" desc:"relative standard deviation of per-source connection counts when not ConstCount"`
	AllowSelf  bool    `desc:"allow a node to connect to itself (only meaningful when sources and targets share the index space)"`
	NoMutual   bool    `desc:"forbid a connection when the reverse connection already exists -- generation is then sequential"`
	AvgDist    float32 `min:"0" desc:"if > 0, target distances are drawn from a Gaussian with this mean and the closest candidate is connected"`
	DistSD     float32 `min:"0" desc:"standard deviation of the target distance -- 0 uses 0.2 * AvgDist"`
	NThreads   int     `min:"1" desc:"number of goroutines placing connections in parallel over sources"`
	Seed       int64   `desc:"random seed -- results are a function of the seed only, never of NThreads"`
}

func (rp *RandomParams) Defaults() {
	rp.ConstCount = true
	rp.Jitter = 0.33
	rp.NThreads = 1
}

// DeriveSeed returns a well-mixed seed for stream idx derived from a base seed
func DeriveSeed(base int64, idx int) int64 {
	z := uint64(base) + uint64(idx+1)*0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	z ^= z >> 31
	return int64(z & math.MaxInt64)
}

// srcState is the placement state of one source: its remaining candidates
// and its private random stream
type srcState struct {
	rnd    *rand.Rand
	cands  []int
	placed int
}

// Random creates up to p.Count connections from srcs to tgts in the bank,
// returning the number created.  Existing connections are never repeated.
// Each source receives a quota, placed in parallel with a per-source random
// stream; quota shortfall from exhausted candidates is then redistributed
// one connection at a time in round-robin order over sources.
func Random(bk *Bank, srcs, tgts []Node, p *RandomParams) (int, error) {
	if p.Count <= 0 {
		return 0, nil
	}
	if len(tgts) == 0 || len(srcs) == 0 {
		return 0, ErrNoTargets
	}
	nthr := ints.MaxInt(p.NThreads, 1)
	if p.NoMutual {
		nthr = 1
	}
	mrnd := rand.New(rand.NewSource(p.Seed))
	quotas := p.Quotas(mrnd, len(srcs))
	exist := bk.SendSets()
	sts := make([]srcState, len(srcs))

	place := func(si int) {
		ss := &sts[si]
		src := srcs[si]
		ss.rnd = rand.New(rand.NewSource(DeriveSeed(p.Seed, si)))
		ss.cands = make([]int, 0, len(tgts))
		var ex map[int32]struct{}
		if src.Idx < len(exist) {
			ex = exist[src.Idx]
		}
		for ti, tg := range tgts {
			if !p.AllowSelf && tg.Idx == src.Idx {
				continue
			}
			if _, has := ex[int32(tg.Idx)]; has {
				continue
			}
			ss.cands = append(ss.cands, ti)
		}
		for ss.placed < quotas[si] {
			if !p.addOne(bk, ss, src, tgts) {
				break
			}
		}
	}

	if nthr == 1 {
		for si := range srcs {
			place(si)
		}
	} else {
		var wg sync.WaitGroup
		chunk := (len(srcs) + nthr - 1) / nthr
		for st := 0; st < len(srcs); st += chunk {
			ed := ints.MinInt(st+chunk, len(srcs))
			wg.Add(1)
			go func(st, ed int) {
				for si := st; si < ed; si++ {
					place(si)
				}
				wg.Done()
			}(st, ed)
		}
		wg.Wait()
	}

	total := 0
	for si := range sts {
		total += sts[si].placed
	}
	slack := p.Count - total
	if slack > 0 {
		off := mrnd.Intn(len(srcs))
		for slack > 0 {
			progress := false
			for k := 0; k < len(srcs) && slack > 0; k++ {
				si := (off + k) % len(srcs)
				if p.addOne(bk, &sts[si], srcs[si], tgts) {
					slack--
					total++
					progress = true
				}
			}
			if !progress {
				break
			}
		}
	}
	bk.Sort()
	return total, nil
}

// addOne connects the source to its next chosen candidate, returning false
// when no candidate is left
func (p *RandomParams) addOne(bk *Bank, ss *srcState, src Node, tgts []Node) bool {
	for len(ss.cands) > 0 {
		ci := p.choose(ss, src, tgts)
		ti := ss.cands[ci]
		last := len(ss.cands) - 1
		ss.cands[ci] = ss.cands[last]
		ss.cands = ss.cands[:last]
		tg := tgts[ti]
		if p.NoMutual && src.Idx < bk.NRecv() && tg.Idx < bk.NSend && bk.Has(tg.Idx, src.Idx) {
			continue
		}
		if bk.TryAdd(src.Idx, tg.Idx) {
			ss.placed++
			return true
		}
	}
	return false
}

// choose returns the position in the candidate list of the next target
func (p *RandomParams) choose(ss *srcState, src Node, tgts []Node) int {
	if p.AvgDist <= 0 {
		return ss.rnd.Intn(len(ss.cands))
	}
	sd := p.DistSD
	if sd <= 0 {
		sd = 0.2 * p.AvgDist
	}
	trg := p.AvgDist + sd*float32(ss.rnd.NormFloat64())
	best := 0
	bestDif := float32(math32.MaxFloat32)
	for ci, ti := range ss.cands {
		dif := math32.Abs(src.Pos.DistTo(tgts[ti].Pos) - trg)
		if dif < bestDif {
			bestDif = dif
			best = ci
		}
	}
	return best
}

// Quotas splits Count over n sources: evenly with the remainder given to
// randomly chosen sources if ConstCount, else proportional to
// Gaussian-jittered weights with largest-remainder rounding.
// The quotas always sum to Count.
func (p *RandomParams) Quotas(rnd *rand.Rand, n int) []int {
	qs := make([]int, n)
	if n == 0 {
		return qs
	}
	if p.ConstCount {
		base := p.Count / n
		rem := p.Count % n
		for i := range qs {
			qs[i] = base
		}
		perm := rnd.Perm(n)
		for k := 0; k < rem; k++ {
			qs[perm[k]]++
		}
		return qs
	}
	ws := make([]float64, n)
	sum := 0.0
	for i := range ws {
		w := 1 + p.Jitter*rnd.NormFloat64()
		if w < 0.05 {
			w = 0.05
		}
		ws[i] = w
		sum += w
	}
	fracs := make([]float64, n)
	tot := 0
	for i, w := range ws {
		ex := float64(p.Count) * w / sum
		qs[i] = int(math.Floor(ex))
		fracs[i] = ex - float64(qs[i])
		tot += qs[i]
	}
	ord := make([]int, n)
	for i := range ord {
		ord[i] = i
	}
	sort.SliceStable(ord, func(a, b int) bool { return fracs[ord[a]] > fracs[ord[b]] })
	for k := 0; tot < p.Count; k++ {
		qs[ord[k%n]]++
		tot++
	}
	return qs
}

// MeanDist returns the mean distance over all connections in the bank,
// given the positions of senders and receivers
func MeanDist(bk *Bank, sendPos, recvPos []mat32.Vec3) float32 {
	n := 0
	sum := float32(0)
	bk.Edges(func(s, r int) {
		sum += sendPos[s].DistTo(recvPos[r])
		n++
	})
	if n == 0 {
		return 0
	}
	return sum / float32(n)
}
