// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package actfun

import (
	"testing"

	"github.com/emer/reservoir/ode"
)

func TestSpikingFires(t *testing.T) {
	sp := SpikingParams{}
	sp.Defaults()
	for m := LeakyIF; m < SpikingModelN; m++ {
		sp.Model = m
		for _, slv := range []ode.Method{ode.Euler, ode.RK4} {
			sp.Solver = slv
			if err := sp.Validate(); err != nil {
				t.Fatalf("%v: %v", m, err)
			}
			st := SpikeState{}
			sp.Init(&st)
			nspk := 0
			for i := 0; i < 200; i++ {
				nspk += int(sp.Step(&st, 1))
				if st.Vm < sp.VmRange.Min || st.Vm > sp.VmRange.Max {
					t.Fatalf("%v %v: Vm %g outside of range", m, slv, st.Vm)
				}
			}
			if nspk == 0 {
				t.Errorf("%v %v: no spikes under constant drive", m, slv)
			}
			if st.Trace <= 0 || st.Trace > 1 {
				t.Errorf("%v %v: trace %g outside of (0, 1]", m, slv, st.Trace)
			}
		}
	}
}

func TestSpikingSilent(t *testing.T) {
	sp := SpikingParams{}
	sp.Defaults()
	for m := LeakyIF; m < SpikingModelN; m++ {
		sp.Model = m
		st := SpikeState{}
		sp.Init(&st)
		for i := 0; i < 100; i++ {
			if sp.Step(&st, 0) != 0 {
				t.Errorf("%v: spike without stimulus at cycle %d", m, i)
				break
			}
		}
		if p := sp.Predictor(&st); p != -1 {
			t.Errorf("%v: silent predictor got %g, trg -1", m, p)
		}
	}
}

func TestRefractoryLaw(t *testing.T) {
	sp := SpikingParams{}
	sp.Defaults()
	for _, r := range []int{0, 1, 3} {
		sp.Refrac = r
		st := SpikeState{}
		sp.Init(&st)
		fired := false
		for i := 0; i < 100; i++ {
			if sp.Step(&st, 1) == 1 {
				fired = true
				break
			}
		}
		if !fired {
			t.Fatalf("refrac %d: never fired", r)
		}
		for k := 1; k <= r; k++ {
			spk := sp.Step(&st, 1)
			if st.Stim != 0 {
				t.Errorf("refrac %d: cycle t+%d stimulus got %g, trg 0", r, k, st.Stim)
			}
			if spk != 0 {
				t.Errorf("refrac %d: spike during refractory cycle t+%d", r, k)
			}
		}
		sp.Step(&st, 1)
		if st.Stim != 1 {
			t.Errorf("refrac %d: cycle t+%d stimulus got %g, trg 1", r, r+1, st.Stim)
		}
	}
}

func TestAdaptationOnFire(t *testing.T) {
	sp := SpikingParams{}
	sp.Defaults()
	sp.Model = AdExpIF
	st := SpikeState{}
	sp.Init(&st)
	for i := 0; i < 100; i++ {
		if sp.Step(&st, 1) == 1 {
			break
		}
	}
	if st.U < sp.Mem.B {
		t.Errorf("adaptation after spike: got %g, expected >= %g", st.U, sp.Mem.B)
	}
}
