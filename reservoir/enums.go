// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reservoir

import (
	"github.com/goki/ki/kit"
)

// Role is the role of a neuron in the network, which determines the sign
// of the weights of its outgoing synapses
type Role int

//go:generate stringer -type=Role

var KiT_Role = kit.Enums.AddEnum(RoleN, kit.NotBitFlag, nil)

func (ev Role) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Role) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

func (ev Role) MarshalText() ([]byte, error)  { return []byte(ev.String()), nil }
func (ev *Role) UnmarshalText(b []byte) error { return ev.FromString(string(b)) }

// The neuron roles
const (
	// Excitatory neurons send positive weights
	Excitatory Role = iota

	// Inhibitory neurons send negative weights
	Inhibitory

	RoleN
)

// Sign returns the sign of outgoing weights for the role
func (ev Role) Sign() float64 {
	if ev == Inhibitory {
		return -1
	}
	return 1
}

// SignalKind is the kind of signal a neuron produces
type SignalKind int

//go:generate stringer -type=SignalKind

var KiT_SignalKind = kit.Enums.AddEnum(SignalKindN, kit.NotBitFlag, nil)

func (ev SignalKind) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *SignalKind) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

func (ev SignalKind) MarshalText() ([]byte, error)  { return []byte(ev.String()), nil }
func (ev *SignalKind) UnmarshalText(b []byte) error { return ev.FromString(string(b)) }

// The signal kinds
const (
	// Analog neurons are leaky integrators transmitting their bounded state
	Analog SignalKind = iota

	// Spiking neurons integrate a membrane ODE and transmit 0 / 1 spikes
	Spiking

	SignalKindN
)

// Schema is the fixed part of an interconnection pattern within a pool
type Schema int

//go:generate stringer -type=Schema

var KiT_Schema = kit.Enums.AddEnum(SchemaN, kit.NotBitFlag, nil)

func (ev Schema) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Schema) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

func (ev Schema) MarshalText() ([]byte, error)  { return []byte(ev.String()), nil }
func (ev *Schema) UnmarshalText(b []byte) error { return ev.FromString(string(b)) }

// The interconnection schemas
const (
	// RandomSchema has no fixed part: all connections are random
	RandomSchema Schema = iota

	// RingSchema connects neurons in a ring in index order
	RingSchema

	// ToroidSchema connects neurons on a doubly-twisted toroid
	ToroidSchema

	SchemaN
)

// DelayMethod determines how synaptic delays are assigned
type DelayMethod int

//go:generate stringer -type=DelayMethod

var KiT_DelayMethod = kit.Enums.AddEnum(DelayMethodN, kit.NotBitFlag, nil)

func (ev DelayMethod) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *DelayMethod) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

func (ev DelayMethod) MarshalText() ([]byte, error)  { return []byte(ev.String()), nil }
func (ev *DelayMethod) UnmarshalText(b []byte) error { return ev.FromString(string(b)) }

// The delay methods
const (
	// NoDelay delivers every signal in the same cycle
	NoDelay DelayMethod = iota

	// RandomDelay draws each delay uniformly from [0, MaxDelay]
	RandomDelay

	// DistDelay makes each delay proportional to the Euclidean distance
	// between endpoints, normalized by the longest synapse of the bank
	DistDelay

	DelayMethodN
)

// Scope selects the neurons whose weights enter spectral radius estimation
type Scope int

//go:generate stringer -type=Scope

var KiT_Scope = kit.Enums.AddEnum(ScopeN, kit.NotBitFlag, nil)

func (ev Scope) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Scope) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

func (ev Scope) MarshalText() ([]byte, error)  { return []byte(ev.String()), nil }
func (ev *Scope) UnmarshalText(b []byte) error { return ev.FromString(string(b)) }

// The spectral scopes
const (
	// AnalogScope uses only synapses between analog neurons
	AnalogScope Scope = iota

	// AllScope uses all internal synapses
	AllScope

	ScopeN
)

// Filter selects neurons by role or kind when wiring
type Filter int

//go:generate stringer -type=Filter

var KiT_Filter = kit.Enums.AddEnum(FilterN, kit.NotBitFlag, nil)

func (ev Filter) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Filter) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

func (ev Filter) MarshalText() ([]byte, error)  { return []byte(ev.String()), nil }
func (ev *Filter) UnmarshalText(b []byte) error { return ev.FromString(string(b)) }

// The neuron filters
const (
	// AnyNeuron selects all neurons
	AnyNeuron Filter = iota

	// ExcitatoryOnly selects excitatory neurons
	ExcitatoryOnly

	// InhibitoryOnly selects inhibitory neurons
	InhibitoryOnly

	// AnalogOnly selects analog neurons
	AnalogOnly

	// SpikingOnly selects spiking neurons
	SpikingOnly

	FilterN
)

// Match returns true if a neuron of given role and kind passes the filter
func (ev Filter) Match(role Role, kind SignalKind) bool {
	switch ev {
	case ExcitatoryOnly:
		return role == Excitatory
	case InhibitoryOnly:
		return role == Inhibitory
	case AnalogOnly:
		return kind == Analog
	case SpikingOnly:
		return kind == Spiking
	}
	return true
}
