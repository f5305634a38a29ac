// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reservoir

import (
	"fmt"
	"strings"

	"github.com/c2h5oh/datasize"
)

// queueMem returns the memory used by the delay queues of synapses
func queueMem(syns []Synapse) int {
	mem := 0
	for si := range syns {
		if q := syns[si].Queue; q != nil {
			mem += SizeofQueue + 8*len(q.Buf)
		}
	}
	return mem
}

// SizeReport returns a string reporting the size of each pool and
// group of the reservoir, and its total memory footprint.
func (rs *Reservoir) SizeReport() string {
	var b strings.Builder
	neur := 0
	neurMem := 0
	syn := 0
	synMem := 0
	for _, pl := range rs.Pools {
		nn := pl.NNeurons()
		nmem := nn * SizeofNeuron
		ns := 0
		for ni := pl.St; ni < pl.Ed; ni++ {
			ns += int(rs.SynN[ni] + rs.InSynN[ni])
		}
		neur += nn
		neurMem += nmem
		fmt.Fprintf(&b, "%14s:\t Neurons: %d\t NeurMem: %v \t Recv Syns: %d\n", pl.Name, nn, (datasize.ByteSize)(nmem).HumanReadable(), ns)
		for _, gi := range pl.Groups {
			ng := rs.Groups[gi]
			fmt.Fprintf(&b, "\t%14s:\t %v %v\t Neurons: %d\n", ng.Name, ng.Role, ng.Kind, len(ng.Neurons))
		}
	}
	syn = len(rs.Syns) + len(rs.InSyns)
	synMem = syn*SizeofSynapse + queueMem(rs.Syns) + queueMem(rs.InSyns)
	fmt.Fprintf(&b, "\n\n%14s:\t Neurons: %d\t NeurMem: %v \t Syns: %d \t SynMem: %v\n", rs.Name, neur, (datasize.ByteSize)(neurMem).HumanReadable(), syn, (datasize.ByteSize)(synMem).HumanReadable())
	return b.String()
}
