// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reservoir

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/emer/emergent/erand"
	"github.com/emer/emergent/params"
	"github.com/emer/reservoir/actfun"
)

const testTOML = `
Name = "Test"
NInputs = 2

[Spectral]
Radius = 0.8

[[Pools]]
Name = "Main"
Class = "Core"
Dims = [5, 4, 1]

[Pools.Interconn]
Schema = "RingSchema"
Density = 0.2

[[Pools.Groups]]
Name = "Exc"
RelShare = 4

[[Pools.Groups]]
Name = "Inh"
Role = "Inhibitory"

[Pools.Groups.Analog]
Fun = "Sigmoid"

[[InputConns]]
Pool = "Main"
Density = 0.5
`

func TestDecodeTOML(t *testing.T) {
	ip, err := DecodeInstanceTOML(testTOML)
	if err != nil {
		t.Fatal(err)
	}
	if ip.Name != "Test" || ip.NInputs != 2 || ip.Spectral.Radius != 0.8 {
		t.Errorf("instance: got %q %d %g", ip.Name, ip.NInputs, ip.Spectral.Radius)
	}
	if ip.Spectral.MaxIter != 1000 {
		t.Errorf("spectral defaults lost: MaxIter %d", ip.Spectral.MaxIter)
	}
	if len(ip.Pools) != 1 || len(ip.Pools[0].Groups) != 2 || len(ip.InputConns) != 1 {
		t.Fatalf("lists: got %d pools, %d input connections", len(ip.Pools), len(ip.InputConns))
	}
	pp := ip.Pools[0]
	if pp.Nm != "Main" || pp.Cls != "Core" || pp.Dims != [3]int{5, 4, 1} {
		t.Errorf("pool: got %q %q %v", pp.Nm, pp.Cls, pp.Dims)
	}
	if pp.Interconn.Schema != RingSchema || !pp.Interconn.ConstCount {
		t.Errorf("interconn: got %v %v", pp.Interconn.Schema, pp.Interconn.ConstCount)
	}
	exc, inh := pp.Groups[0], pp.Groups[1]
	if exc.RelShare != 4 || exc.Role != Excitatory || exc.ReadoutDensity != 1 || exc.Analog.Fun != actfun.TanH {
		t.Errorf("excitatory group: got %+v", exc)
	}
	if inh.RelShare != 1 || inh.Role != Inhibitory || inh.Analog.Fun != actfun.Sigmoid || inh.Analog.InRange.Max != 10 {
		t.Errorf("inhibitory group: got %+v", inh)
	}
	if ip.InputConns[0].Scale != 1 || ip.InputConns[0].Density != 0.5 {
		t.Errorf("input connection: got %+v", ip.InputConns[0])
	}

	rs, err := Build(ip, unitRange, 1)
	if err != nil {
		t.Fatal(err)
	}
	defer rs.Close()
	if len(rs.Neurons) != 20 || len(rs.Groups[0].Neurons) != 16 {
		t.Errorf("built: got %d neurons, %d excitatory", len(rs.Neurons), len(rs.Groups[0].Neurons))
	}
	if rs.NSyns() != 80 {
		t.Errorf("synapses: got %d, trg 80", rs.NSyns())
	}
}

func TestDecodeWtDist(t *testing.T) {
	data := testTOML + `
[InputSyn.Wt]
Dist = "Gaussian"
Var = 0.2

[InternalSyn.Wt]
Dist = 6
`
	ip, err := DecodeInstanceTOML(data)
	if err != nil {
		t.Fatal(err)
	}
	if ip.InputSyn.Wt.Dist.Rnd() != erand.Gaussian || ip.InputSyn.Wt.Var != 0.2 {
		t.Errorf("input weights: got %v %g", ip.InputSyn.Wt.Dist, ip.InputSyn.Wt.Var)
	}
	if ip.InternalSyn.Wt.Dist.Rnd() != erand.Mean || ip.InternalSyn.Wt.Mean != 0.5 {
		t.Errorf("internal weights: got %v %g", ip.InternalSyn.Wt.Dist, ip.InternalSyn.Wt.Mean)
	}
	if _, err := DecodeInstanceTOML(testTOML + "\n[InputSyn.Wt]\nDist = \"Bimodal\"\n"); err == nil {
		t.Errorf("unknown distribution: no error")
	}
	ip.InputSyn.Wt.Dist = WtDist(erand.Poisson)
	if _, err := Build(ip, unitRange, 1); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("unsupported distribution: got %v", err)
	}
}

func TestOpenTOML(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "res.toml")
	if err := os.WriteFile(fn, []byte(testTOML), 0644); err != nil {
		t.Fatal(err)
	}
	ip, err := OpenInstanceTOML(fn)
	if err != nil {
		t.Fatal(err)
	}
	if ip.PoolByName("Main") != 0 {
		t.Errorf("pool lookup failed")
	}
	if _, err := OpenInstanceTOML(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Errorf("missing file: no error")
	}
	if _, err := DecodeInstanceTOML("Pools = 3 ="); err == nil {
		t.Errorf("bad syntax: no error")
	}
}

func TestApplyParams(t *testing.T) {
	ip := basicDef()
	ip.AddPool("Second", 4, 4, 1).AddGroup("Exc", Excitatory, Analog)
	ip.Pools[1].Cls = "Small"
	sheet := &params.Sheet{
		{Sel: "Pool", Desc: "all pools",
			Params: params.Params{
				"Pool.Interconn.Density": "0.3",
			}},
		{Sel: ".Small", Desc: "small pools are sparser",
			Params: params.Params{
				"Pool.Interconn.Density": "0.05",
			}},
	}
	applied, err := ip.ApplyParams(sheet, false)
	if err != nil {
		t.Fatal(err)
	}
	if !applied {
		t.Errorf("no parameter applied")
	}
	if d := ip.Pools[0].Interconn.Density; d != 0.3 {
		t.Errorf("Main density: got %g, trg 0.3", d)
	}
	if d := ip.Pools[1].Interconn.Density; d != 0.05 {
		t.Errorf("Second density: got %g, trg 0.05", d)
	}
}
