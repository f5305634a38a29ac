// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package topo generates connectivity: density-controlled random wiring
with optional distance matching, guaranteed-minimum wiring of external
input fields, and fixed ring and doubly-twisted toroid schemas.

Connections are accumulated in a Bank, which holds for each target the
list of its sources.  Generators may run in parallel over sources;
each target list is protected by its own lock, and lists are sorted after
every generator call so that the resulting topology does not depend on
goroutine scheduling.
*/
package topo

import (
	"errors"
	"sort"
	"sync"
)

// ErrNoTargets is returned when connections are requested into an empty target set
var ErrNoTargets = errors.New("topo: no available target neurons")

// Bank is a set of directed connections (send -> recv), organized by receiver.
// A (send, recv) pair is present at most once.
type Bank struct {
	NSend int       `desc:"size of the sending index space"`
	Recv  [][]int32 `desc:"sending indexes for each receiving index"`

	mus []sync.Mutex
}

// NewBank returns an empty bank for given sending and receiving index spaces
func NewBank(nSend, nRecv int) *Bank {
	bk := &Bank{NSend: nSend}
	bk.Recv = make([][]int32, nRecv)
	bk.mus = make([]sync.Mutex, nRecv)
	return bk
}

// NRecv returns the size of the receiving index space
func (bk *Bank) NRecv() int {
	return len(bk.Recv)
}

// Has returns true if the connection exists.  Not safe during parallel generation.
func (bk *Bank) Has(send, recv int) bool {
	for _, s := range bk.Recv[recv] {
		if int(s) == send {
			return true
		}
	}
	return false
}

// TryAdd adds the connection unless it already exists, returning true if added.
// Safe for concurrent use.
func (bk *Bank) TryAdd(send, recv int) bool {
	mu := &bk.mus[recv]
	mu.Lock()
	defer mu.Unlock()
	if bk.Has(send, recv) {
		return false
	}
	bk.Recv[recv] = append(bk.Recv[recv], int32(send))
	return true
}

// Len returns the total number of connections
func (bk *Bank) Len() int {
	n := 0
	for _, rl := range bk.Recv {
		n += len(rl)
	}
	return n
}

// Sort sorts each receiver's sending list in increasing order
func (bk *Bank) Sort() {
	for _, rl := range bk.Recv {
		sort.Slice(rl, func(i, j int) bool { return rl[i] < rl[j] })
	}
}

// SendN returns the number of connections of each sender
func (bk *Bank) SendN() []int {
	sn := make([]int, bk.NSend)
	for _, rl := range bk.Recv {
		for _, s := range rl {
			sn[s]++
		}
	}
	return sn
}

// SendSets returns for each sender the set of its receivers
func (bk *Bank) SendSets() []map[int32]struct{} {
	ss := make([]map[int32]struct{}, bk.NSend)
	for ri, rl := range bk.Recv {
		for _, s := range rl {
			if ss[s] == nil {
				ss[s] = make(map[int32]struct{})
			}
			ss[s][int32(ri)] = struct{}{}
		}
	}
	return ss
}

// Edges calls fun for every connection, in receiver then sender order
func (bk *Bank) Edges(fun func(send, recv int)) {
	for ri, rl := range bk.Recv {
		for _, s := range rl {
			fun(int(s), ri)
		}
	}
}

// Duplicates returns the number of repeated (send, recv) pairs,
// which is always 0 for a bank built through TryAdd.
func (bk *Bank) Duplicates() int {
	nd := 0
	for _, rl := range bk.Recv {
		seen := make(map[int32]struct{}, len(rl))
		for _, s := range rl {
			if _, has := seen[s]; has {
				nd++
			}
			seen[s] = struct{}{}
		}
	}
	return nd
}
