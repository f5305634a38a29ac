// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reservoir

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/emer/emergent/erand"
	"github.com/emer/emergent/params"
	"github.com/emer/etable/minmax"
	"github.com/emer/reservoir/actfun"
	"github.com/emer/reservoir/spectral"
	"github.com/goki/mat32"
)

///////////////////////////////////////////////////////////////////////
//  params.go contains the definition of a reservoir instance

// InstanceParams is the complete definition of one reservoir instance
type InstanceParams struct {
	Name        string             `desc:"name of the reservoir instance"`
	NInputs     int                `min:"0" desc:"number of external input fields"`
	InputPos    mat32.Vec3         `desc:"position of the first virtual input field -- further fields are placed along Y"`
	Pools       []*PoolParams      `desc:"pools of neurons"`
	PoolConns   []*PoolConnParams  `desc:"connections between pools"`
	InputConns  []*InputConnParams `desc:"connections from input fields to pools"`
	InputSyn    SynapseParams      `view:"inline" desc:"synapses from input fields"`
	InternalSyn SynapseParams      `view:"inline" desc:"synapses between reservoir neurons"`
	Spectral    SpectralParams     `view:"inline" desc:"spectral radius normalization of internal weights"`
	Predictors  PredictorParams    `view:"inline" desc:"predictors exposed to the readout"`
	NThreads    int                `min:"1" desc:"number of goroutines used to build and compute -- results never depend on it"`
}

func (ip *InstanceParams) Defaults() {
	ip.Name = "Reservoir"
	ip.NInputs = 1
	ip.InputPos = mat32.Vec3{X: -1}
	ip.InputSyn.Defaults()
	ip.InputSyn.Wt.Mean = 0
	ip.InputSyn.Wt.Var = 1
	ip.InternalSyn.Defaults()
	ip.Spectral.Defaults()
	ip.Predictors.Defaults()
	ip.NThreads = 1
}

// AddPool adds a pool with default parameters and given grid size
func (ip *InstanceParams) AddPool(name string, x, y, z int) *PoolParams {
	pp := &PoolParams{}
	pp.Defaults()
	pp.Nm = name
	pp.Dims = [3]int{x, y, z}
	ip.Pools = append(ip.Pools, pp)
	return pp
}

// AddPoolConn adds a connection from pool send to pool recv with given density
func (ip *InstanceParams) AddPoolConn(send, recv string, density float64) *PoolConnParams {
	pc := &PoolConnParams{}
	pc.Defaults()
	pc.Send = send
	pc.Recv = recv
	pc.Density = density
	ip.PoolConns = append(ip.PoolConns, pc)
	return pc
}

// AddInputConn adds a connection from all input fields to given pool
func (ip *InstanceParams) AddInputConn(pool string, density float64) *InputConnParams {
	ic := &InputConnParams{}
	ic.Defaults()
	ic.Pool = pool
	ic.Density = density
	ip.InputConns = append(ip.InputConns, ic)
	return ic
}

// Update must be called after any changes to parameters
func (ip *InstanceParams) Update() {
	if ip.NThreads < 1 {
		ip.NThreads = 1
	}
	for _, pp := range ip.Pools {
		pp.Update()
	}
	ip.InputSyn.Update()
	ip.InternalSyn.Update()
}

// Clone returns a deep copy of the definition
func (ip *InstanceParams) Clone() *InstanceParams {
	cp := *ip
	cp.Pools = make([]*PoolParams, len(ip.Pools))
	for pi, pp := range ip.Pools {
		np := *pp
		np.Groups = make([]*NeuronGroupParams, len(pp.Groups))
		for gi, gp := range pp.Groups {
			ng := *gp
			np.Groups[gi] = &ng
		}
		cp.Pools[pi] = &np
	}
	cp.PoolConns = make([]*PoolConnParams, len(ip.PoolConns))
	for ci, pc := range ip.PoolConns {
		nc := *pc
		cp.PoolConns[ci] = &nc
	}
	cp.InputConns = make([]*InputConnParams, len(ip.InputConns))
	for ci, ic := range ip.InputConns {
		nc := *ic
		nc.Fields = append([]int(nil), ic.Fields...)
		cp.InputConns[ci] = &nc
	}
	return &cp
}

// PoolByName returns the index of the pool with given name, -1 if none
func (ip *InstanceParams) PoolByName(name string) int {
	for pi, pp := range ip.Pools {
		if pp.Nm == name {
			return pi
		}
	}
	return -1
}

// NNeurons returns the total number of neurons
func (ip *InstanceParams) NNeurons() int {
	n := 0
	for _, pp := range ip.Pools {
		n += pp.NNeurons()
	}
	return n
}

// Validate checks the definition, reporting all problems in one error
// wrapping ErrInvalidConfig.  Role / activation compatibility is checked
// separately by Compat.
func (ip *InstanceParams) Validate() error {
	var errs []string
	add := func(f string, args ...interface{}) {
		errs = append(errs, fmt.Sprintf(f, args...))
	}
	if len(ip.Pools) == 0 {
		add("no pools")
	}
	if ip.NInputs < 0 {
		add("negative NInputs")
	}
	names := make(map[string]bool)
	for pi, pp := range ip.Pools {
		if pp.Nm == "" {
			add("pool %d has no name", pi)
		}
		if names[pp.Nm] {
			add("pool name %q is not unique", pp.Nm)
		}
		names[pp.Nm] = true
		for _, e := range pp.Validate() {
			add("pool %s: %s", pp.Nm, e)
		}
	}
	for ci, pc := range ip.PoolConns {
		if ip.PoolByName(pc.Send) < 0 {
			add("pool connection %d: unknown sending pool %q", ci, pc.Send)
		}
		if ip.PoolByName(pc.Recv) < 0 {
			add("pool connection %d: unknown receiving pool %q", ci, pc.Recv)
		}
		if pc.Density < 0 || pc.Density > 1 {
			add("pool connection %d: density %g outside of [0, 1]", ci, pc.Density)
		}
	}
	for ci, ic := range ip.InputConns {
		if ip.PoolByName(ic.Pool) < 0 {
			add("input connection %d: unknown pool %q", ci, ic.Pool)
		}
		if ic.Density < 0 || ic.Density > 1 {
			add("input connection %d: density %g outside of [0, 1]", ci, ic.Density)
		}
		for _, fi := range ic.Fields {
			if fi < 0 || fi >= ip.NInputs {
				add("input connection %d: field %d outside of [0, %d)", ci, fi, ip.NInputs)
			}
		}
	}
	for _, e := range ip.InputSyn.Validate() {
		add("input synapses: %s", e)
	}
	for _, e := range ip.InternalSyn.Validate() {
		add("internal synapses: %s", e)
	}
	if ip.Spectral.Radius < 0 {
		add("negative spectral radius")
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(errs, "; "))
}

// Compat checks that every neuron group's activation is compatible with its
// role: inhibitory groups must not emit negative signals, since the sign of
// their output would cancel the inhibitory sign of their weights.
func (ip *InstanceParams) Compat() error {
	for _, pp := range ip.Pools {
		for _, gp := range pp.Groups {
			if gp.Role != Inhibitory || gp.Kind != Analog {
				continue
			}
			or := gp.Analog.OutRange()
			if or.Min < 0 {
				return fmt.Errorf("pool %s group %s: %v output range [%g, %g] is not allowed for an inhibitory group: %w",
					pp.Nm, gp.Name, gp.Analog.Fun, or.Min, or.Max, ErrIncompatibleActivation)
			}
		}
	}
	return nil
}

// ApplyParams applies given parameter sheet to all pools, using the
// pool selectors Pool, .Cls and #Name.  Returns true if any parameter was set.
func (ip *InstanceParams) ApplyParams(pars *params.Sheet, setMsg bool) (bool, error) {
	applied := false
	var rerr error
	for _, pp := range ip.Pools {
		app, err := pars.Apply(pp, setMsg)
		if app {
			applied = true
		}
		if err != nil {
			rerr = err
		}
	}
	ip.Update()
	return applied, rerr
}

///////////////////////////////////////////////////////////////////////
//  Pools

// PoolParams define a pool: a 3D grid of neurons with its own composition
// and interconnection
type PoolParams struct {
	Nm        string               `toml:"Name" desc:"unique name of the pool"`
	Cls       string               `toml:"Class" desc:"space-separated classes for parameter styling"`
	Dims      [3]int               `desc:"X, Y, Z size of the neuron grid"`
	Coords    mat32.Vec3           `desc:"position of the grid origin"`
	Groups    []*NeuronGroupParams `desc:"neuron groups sharing the pool"`
	Interconn InterconnParams      `view:"inline" desc:"interconnection of neurons within the pool"`
}

func (pp *PoolParams) Defaults() {
	pp.Dims = [3]int{10, 10, 1}
	pp.Interconn.Defaults()
}

func (pp *PoolParams) Update() {
	for _, gp := range pp.Groups {
		gp.Update()
	}
}

// AddGroup adds a neuron group with default parameters
func (pp *PoolParams) AddGroup(name string, role Role, kind SignalKind) *NeuronGroupParams {
	gp := &NeuronGroupParams{}
	gp.Defaults()
	gp.Name = name
	gp.Role = role
	gp.Kind = kind
	pp.Groups = append(pp.Groups, gp)
	return gp
}

// TypeName, Class and Name implement params.Styler
func (pp *PoolParams) TypeName() string { return "Pool" }
func (pp *PoolParams) Class() string    { return pp.Cls }
func (pp *PoolParams) Name() string     { return pp.Nm }

// NNeurons returns the number of neurons in the grid
func (pp *PoolParams) NNeurons() int {
	return pp.Dims[0] * pp.Dims[1] * pp.Dims[2]
}

func (pp *PoolParams) Validate() []string {
	var errs []string
	for d, n := range pp.Dims {
		if n < 1 {
			errs = append(errs, fmt.Sprintf("dimension %d must be >= 1", d))
		}
	}
	if len(pp.Groups) == 0 {
		errs = append(errs, "no neuron groups")
	}
	share := 0.0
	for _, gp := range pp.Groups {
		share += gp.RelShare
		for _, e := range gp.Validate() {
			errs = append(errs, fmt.Sprintf("group %s: %s", gp.Name, e))
		}
	}
	if len(pp.Groups) > 0 && share <= 0 {
		errs = append(errs, "neuron group shares sum to 0")
	}
	ic := &pp.Interconn
	if ic.Density < 0 || ic.Density > 1 {
		errs = append(errs, fmt.Sprintf("interconnection density %g outside of [0, 1]", ic.Density))
	}
	if ic.Schema < 0 || ic.Schema >= SchemaN {
		errs = append(errs, "invalid interconnection schema")
	}
	return errs
}

// NeuronGroupParams define a group of neurons of the same kind, role and
// activation within a pool
type NeuronGroupParams struct {
	Name              string               `desc:"name of the group"`
	Role              Role                 `desc:"excitatory or inhibitory"`
	Kind              SignalKind           `desc:"analog or spiking"`
	RelShare          float64              `def:"1" min:"0" desc:"relative share of the pool's neurons"`
	Analog            actfun.AnalogParams  `view:"inline" desc:"activation of analog neurons"`
	Spiking           actfun.SpikingParams `view:"inline" desc:"dynamics of spiking neurons"`
	Bias              minmax.F64           `view:"inline" desc:"range of the constant bias added to each neuron's stimulus"`
	ReadoutDensity    float64              `def:"1" min:"0" max:"1" desc:"fraction of the group's neurons providing predictors"`
	RetainmentDensity float64              `def:"0" min:"0" max:"1" desc:"fraction of the group's analog neurons that retain part of their previous state"`
	Retainment        minmax.F64           `view:"inline" desc:"range of the retainment ratio of retaining analog neurons"`
}

func (gp *NeuronGroupParams) Defaults() {
	gp.RelShare = 1
	gp.Analog.Defaults()
	gp.Spiking.Defaults()
	gp.ReadoutDensity = 1
	gp.RetainmentDensity = 0
	gp.Retainment.Min = 0.5
	gp.Retainment.Max = 0.9
}

func (gp *NeuronGroupParams) Update() {
	gp.Analog.Update()
	gp.Spiking.Update()
}

func (gp *NeuronGroupParams) Validate() []string {
	var errs []string
	if gp.Role < 0 || gp.Role >= RoleN {
		errs = append(errs, "invalid role")
	}
	switch gp.Kind {
	case Analog:
		if err := gp.Analog.Validate(); err != nil {
			errs = append(errs, err.Error())
		}
	case Spiking:
		if err := gp.Spiking.Validate(); err != nil {
			errs = append(errs, err.Error())
		}
	default:
		errs = append(errs, "invalid signal kind")
	}
	if gp.RelShare < 0 {
		errs = append(errs, "negative share")
	}
	if gp.Bias.Min > gp.Bias.Max {
		errs = append(errs, "bias range Min > Max")
	}
	if gp.ReadoutDensity < 0 || gp.ReadoutDensity > 1 || gp.RetainmentDensity < 0 || gp.RetainmentDensity > 1 {
		errs = append(errs, "densities must be in [0, 1]")
	}
	if gp.Retainment.Min < 0 || gp.Retainment.Max >= 1 || gp.Retainment.Min > gp.Retainment.Max {
		errs = append(errs, "retainment range must be within [0, 1)")
	}
	return errs
}

// InterconnParams define the connections among the neurons of one pool
type InterconnParams struct {
	Schema     Schema  `desc:"fixed part of the interconnection, completed by random connections up to Density"`
	Bidir      bool    `desc:"for Ring and Toroid schemas, connect both ways"`
	Density    float64 `min:"0" max:"1" desc:"overall density: number of connections = round(Density * N * N)"`
	ConstCount bool    `def:"true" desc:"give each source neuron the same number of random connections, instead of a Gaussian-jittered number"`
	AvgDist    float32 `min:"0" desc:"if > 0, random connections follow a Gaussian distance distribution with this mean"`
	AllowSelf  bool    `desc:"allow neurons to connect to themselves"`
	NoMutual   bool    `desc:"forbid a random connection when the reverse connection exists"`
	RatioEE    float64 `min:"0" desc:"relative share of excitatory -> excitatory connections -- all ratios 0 means proportional to group sizes"`
	RatioEI    float64 `min:"0" desc:"relative share of excitatory -> inhibitory connections"`
	RatioIE    float64 `min:"0" desc:"relative share of inhibitory -> excitatory connections"`
	RatioII    float64 `min:"0" desc:"relative share of inhibitory -> inhibitory connections"`
}

func (ic *InterconnParams) Defaults() {
	ic.ConstCount = true
}

// Ratio returns the relative share of connections from send to recv role
func (ic *InterconnParams) Ratio(send, recv Role) float64 {
	switch {
	case send == Excitatory && recv == Excitatory:
		return ic.RatioEE
	case send == Excitatory && recv == Inhibitory:
		return ic.RatioEI
	case send == Inhibitory && recv == Excitatory:
		return ic.RatioIE
	}
	return ic.RatioII
}

// PoolConnParams define connections from one pool to another (or to itself)
type PoolConnParams struct {
	Send       string  `desc:"name of the sending pool"`
	Recv       string  `desc:"name of the receiving pool"`
	Density    float64 `min:"0" max:"1" desc:"number of connections = round(Density * NSend * NRecv), counted over filtered neurons"`
	SendFilter Filter  `desc:"which sending neurons take part"`
	RecvFilter Filter  `desc:"which receiving neurons take part"`
	ConstCount bool    `def:"true" desc:"give each sending neuron the same number of connections"`
	AvgDist    float32 `min:"0" desc:"if > 0, connections follow a Gaussian distance distribution with this mean"`
	NoMutual   bool    `desc:"when a pool is connected to itself, forbid a connection when the reverse connection exists"`
}

func (pc *PoolConnParams) Defaults() {
	pc.ConstCount = true
}

// InputConnParams define connections from input fields to one pool
type InputConnParams struct {
	Pool    string  `desc:"name of the receiving pool"`
	Fields  []int   `desc:"input fields to connect -- all fields if empty"`
	Density float64 `min:"0" max:"1" desc:"fraction of the filtered pool neurons each field connects to, at least 1"`
	Filter  Filter  `desc:"which pool neurons receive input"`
	Scale   float64 `def:"1" desc:"multiplier on the generated input weights"`
}

func (ic *InputConnParams) Defaults() {
	ic.Scale = 1
}

///////////////////////////////////////////////////////////////////////
//  Synapses

// SynapseParams define the weights, delays and plasticity of a bank of synapses
type SynapseParams struct {
	Wt       WtParams      `view:"inline" desc:"distribution of weights -- internal weights take its magnitude, signed by the sender's role, input weights keep their generated sign"`
	Delay    DelayMethod   `desc:"how delays are assigned"`
	MaxDelay int           `min:"0" desc:"maximum delay in computation cycles"`
	Plastic  PlasticParams `view:"inline" desc:"short-term plasticity"`
}

func (sp *SynapseParams) Defaults() {
	sp.Wt.Dist = WtDist(erand.Uniform)
	sp.Wt.Mean = 0.5
	sp.Wt.Var = 0.5
	sp.Delay = NoDelay
	sp.MaxDelay = 0
	sp.Plastic.Defaults()
}

// WtParams is the distribution of the weights of a bank of synapses
type WtParams struct {
	Dist WtDist  `desc:"distribution: Uniform, Gaussian or Mean"`
	Mean float64 `desc:"mean of the weights"`
	Var  float64 `desc:"Uniform: half-range around the mean, Gaussian: standard deviation"`
}

// WtDist is an erand distribution that also decodes from its name,
// so that text configurations can say Dist = "Gaussian"
type WtDist erand.RndDists

// Rnd returns the erand distribution
func (ev WtDist) Rnd() erand.RndDists { return erand.RndDists(ev) }

func (ev WtDist) String() string { return ev.Rnd().String() }

func (ev WtDist) MarshalText() ([]byte, error) { return []byte(ev.String()), nil }

// UnmarshalText accepts a distribution name or its integer value
func (ev *WtDist) UnmarshalText(b []byte) error {
	if n, err := strconv.Atoi(string(b)); err == nil {
		*ev = WtDist(n)
		return nil
	}
	var d erand.RndDists
	if err := d.FromString(string(b)); err != nil {
		return err
	}
	*ev = WtDist(d)
	return nil
}

func (sp *SynapseParams) Update() {
	if sp.MaxDelay < 0 {
		sp.MaxDelay = 0
	}
}

func (sp *SynapseParams) Validate() []string {
	var errs []string
	switch sp.Wt.Dist.Rnd() {
	case erand.Uniform, erand.Gaussian, erand.Mean:
	default:
		errs = append(errs, fmt.Sprintf("weight distribution %v not supported", sp.Wt.Dist))
	}
	if sp.Delay < 0 || sp.Delay >= DelayMethodN {
		errs = append(errs, "invalid delay method")
	}
	if sp.MaxDelay < 0 {
		errs = append(errs, "negative MaxDelay")
	}
	if sp.Plastic.On {
		if sp.Plastic.TauFac <= 0 || sp.Plastic.TauDep <= 0 {
			errs = append(errs, "plasticity time constants must be > 0")
		}
		if sp.Plastic.Rest <= 0 || sp.Plastic.Rest > 1 {
			errs = append(errs, "resting efficacy must be in (0, 1]")
		}
	}
	return errs
}

// PlasticParams are the short-term plasticity (facilitation / depression)
// parameters.  Time constants are in computation cycles.
type PlasticParams struct {
	On     bool    `desc:"enable short-term plasticity"`
	TauFac float64 `def:"5" min:"0" viewif:"On" desc:"facilitation decay time constant"`
	TauDep float64 `def:"10" min:"0" viewif:"On" desc:"depression recovery time constant"`
	Rest   float64 `def:"0.5" min:"0" max:"1" viewif:"On" desc:"resting efficacy, the efficacy of an isolated signal"`
}

func (pp *PlasticParams) Defaults() {
	pp.TauFac = 5
	pp.TauDep = 10
	pp.Rest = 0.5
}

///////////////////////////////////////////////////////////////////////
//  Spectral, Predictors

// SpectralParams control normalization of internal weights to a target spectral radius
type SpectralParams struct {
	spectral.Params
	Radius float64 `def:"0.9" min:"0" desc:"target spectral radius -- 0 disables normalization"`
	Scope  Scope   `desc:"which synapses define the weight matrix -- all internal weights are rescaled regardless"`
}

func (sp *SpectralParams) Defaults() {
	sp.Params.Defaults()
	sp.Radius = 0.9
	sp.Scope = AnalogScope
}

// PredictorParams control the predictors exposed to the readout
type PredictorParams struct {
	Augmented bool `desc:"follow each predictor by its square"`
}

func (pp *PredictorParams) Defaults() {
	pp.Augmented = false
}
