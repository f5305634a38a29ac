// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package topo

import (
	"math"
	"math/rand"

	"github.com/goki/ki/ints"
)

// FieldQuotas returns the number of targets each of nFields sources connects
// to, given nTgts targets and density: every field gets at least
// max(1, round(density * nTgts)), and remaining slack up to the ideal total
// round(nTgts * nFields * density) is handed out one at a time over fields
// in random order.  No quota exceeds nTgts.
func FieldQuotas(rnd *rand.Rand, nFields, nTgts int, density float64) []int {
	qs := make([]int, nFields)
	if nFields == 0 || nTgts == 0 {
		return qs
	}
	mq := ints.MaxInt(1, int(math.Round(density*float64(nTgts))))
	mq = ints.MinInt(mq, nTgts)
	tot := 0
	for i := range qs {
		qs[i] = mq
		tot += mq
	}
	ideal := int(math.Round(float64(nTgts) * float64(nFields) * density))
	ideal = ints.MinInt(ideal, nTgts*nFields)
	if tot >= ideal {
		return qs
	}
	perm := rnd.Perm(nFields)
	for tot < ideal {
		for _, fi := range perm {
			if tot >= ideal {
				break
			}
			if qs[fi] < nTgts {
				qs[fi]++
				tot++
			}
		}
	}
	return qs
}

// Guaranteed connects each of the external input fields (indexes in the
// sending space of the bank) to randomly chosen targets according to
// FieldQuotas, so that no field is starved of connections.
// Returns the number of connections created.
func Guaranteed(bk *Bank, fields, tgts []int, density float64, seed int64) (int, error) {
	if len(fields) == 0 || density <= 0 {
		return 0, nil
	}
	if len(tgts) == 0 {
		return 0, ErrNoTargets
	}
	rnd := rand.New(rand.NewSource(seed))
	qs := FieldQuotas(rnd, len(fields), len(tgts), density)
	nc := 0
	for fi, q := range qs {
		perm := rnd.Perm(len(tgts))
		for _, ti := range perm {
			if q == 0 {
				break
			}
			if bk.TryAdd(fields[fi], tgts[ti]) {
				q--
				nc++
			}
		}
	}
	bk.Sort()
	return nc, nil
}
