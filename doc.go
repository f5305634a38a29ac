// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package reservoir is the overall repository for the reservoir computing engine:
construction and simulation of recurrent networks of analog and spiking neurons
with fixed random wiring, driven by external input and read out by a separately
trained predictor.

This top-level of the repository has no functional code -- everything is organized
into the following sub-packages:

* reservoir: instance definitions, building, the two-phase compute cycle,
predictors and statistics.  Start here.

* actfun: analog activation functions and spiking membrane models
(leaky, exponential and adaptive exponential integrate-and-fire, Izhikevich).

* ode: fixed step ODE solvers (Euler, Midpoint, RK4) used by the spiking models.

* topo: connection banks and topology generators: density-controlled random
wiring, guaranteed input wiring, ring and toroid schemas.

* spectral: sparse weight matrices, spectral radius estimation and normalization.

* runstat: running statistics of value streams.
*/
package reservoir
