// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package reservoir builds and runs reservoir instances: recurrent networks of
fixed, randomly wired analog and spiking neurons driven by external input,
whose states are read out as predictors by a separately trained readout.

* `params.go` defines an instance: its pools of neurons on 3D grids, the
  neuron groups sharing each pool (role, kind and activation), the wiring
  within and between pools and from the input fields, synapse weights,
  delays and plasticity, and the spectral radius of the internal weights.
  `config.go` loads an instance from TOML, and `ApplyParams` styles pools
  with emergent params sheets.

* `build.go` constructs a Reservoir from a definition with `Build`.  The
  result depends only on the definition and the seed, never on the number
  of threads.

* `compute.go` advances the reservoir one cycle at a time with `Compute`,
  in two phases over all neurons: every neuron gathers its stimulus from
  the outputs of the previous cycle, then every neuron updates its state.
  `CopyPredictorsTo` exposes the readout neurons' predictors.

* `stats.go` aggregates per-neuron statistics into groups and pools with
  `CollectStatistics`, flagging pathological neurons.

* `threads.go` runs the phases on persistent worker goroutines when
  NThreads > 1.
*/
package reservoir
