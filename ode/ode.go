// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package ode provides fixed-step numerical integration of the small
ordinary differential equation systems used by spiking membrane models.

State is a fixed two-element vector (membrane potential and recovery
variable) so that integration never allocates in the per-tick loop.
All methods share the Step entry point, so higher-order methods are
a drop-in replacement for Euler.
*/
package ode

import (
	"github.com/goki/ki/kit"
)

// Vec is the state vector of a membrane model: [0] is the membrane potential
// and [1] is the recovery (adaptation) variable, unused by one-variable models.
type Vec [2]float64

// Add returns v + o
func (v Vec) Add(o Vec) Vec {
	return Vec{v[0] + o[0], v[1] + o[1]}
}

// AddScaled returns v + s * o
func (v Vec) AddScaled(s float64, o Vec) Vec {
	return Vec{v[0] + s*o[0], v[1] + s*o[1]}
}

// Deriver computes the time derivative dy/dt of a system at state y
// under constant input in.
type Deriver interface {
	Deriv(y Vec, in float64) Vec
}

// Method is the numerical integration method
type Method int

//go:generate stringer -type=Method

var KiT_Method = kit.Enums.AddEnum(MethodN, kit.NotBitFlag, nil)

func (ev Method) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Method) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

func (ev Method) MarshalText() ([]byte, error)  { return []byte(ev.String()), nil }
func (ev *Method) UnmarshalText(b []byte) error { return ev.FromString(string(b)) }

// The integration methods
const (
	// Euler is the explicit first-order Euler method
	Euler Method = iota

	// Midpoint is the explicit second-order midpoint method
	Midpoint

	// RK4 is the classic fourth-order Runge-Kutta method
	RK4

	MethodN
)

// Step advances state y by one step of size dt under input in,
// using given method.
func Step(m Method, d Deriver, y Vec, in, dt float64) Vec {
	switch m {
	case Midpoint:
		k1 := d.Deriv(y, in)
		k2 := d.Deriv(y.AddScaled(0.5*dt, k1), in)
		return y.AddScaled(dt, k2)
	case RK4:
		k1 := d.Deriv(y, in)
		k2 := d.Deriv(y.AddScaled(0.5*dt, k1), in)
		k3 := d.Deriv(y.AddScaled(0.5*dt, k2), in)
		k4 := d.Deriv(y.AddScaled(dt, k3), in)
		sum := k1.AddScaled(2, k2).AddScaled(2, k3).Add(k4)
		return y.AddScaled(dt/6, sum)
	default:
		return y.AddScaled(dt, d.Deriv(y, in))
	}
}

// Order returns the order of accuracy of the method
func (ev Method) Order() int {
	switch ev {
	case Midpoint:
		return 2
	case RK4:
		return 4
	}
	return 1
}
