// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package topo

// Ring connects nodes in a ring: each node to the next one, with the last
// wrapping around to the first, and also to the previous one if bidir.
// Returns the number of connections created.
func Ring(bk *Bank, nodes []int, bidir bool) int {
	n := len(nodes)
	if n < 2 {
		return 0
	}
	nc := 0
	for i, nd := range nodes {
		nx := nodes[(i+1)%n]
		if bk.TryAdd(nd, nx) {
			nc++
		}
		if bidir && bk.TryAdd(nx, nd) {
			nc++
		}
	}
	bk.Sort()
	return nc
}

// ToroidCols returns the row length used for a toroid of n nodes:
// the integer square root, so the grid is as square as possible.
func ToroidCols(n int) int {
	c := 1
	for (c+1)*(c+1) <= n {
		c++
	}
	return c
}

// Toroid connects nodes on a doubly-twisted toroidal grid with rows of cols
// nodes: each node i connects to i+1 and i+cols modulo n, so that the end of
// a row wraps into the next row and the last row wraps into the first row
// shifted by one.  Works for any n, not only multiples of cols.
// If bidir, the reverse connections are created too.
// Returns the number of connections created.
func Toroid(bk *Bank, nodes []int, cols int, bidir bool) int {
	n := len(nodes)
	if n < 2 {
		return 0
	}
	if cols < 1 {
		cols = ToroidCols(n)
	}
	nc := 0
	for i, nd := range nodes {
		for _, off := range []int{1, cols} {
			j := (i + off) % n
			if j == i {
				continue
			}
			nx := nodes[j]
			if bk.TryAdd(nd, nx) {
				nc++
			}
			if bidir && bk.TryAdd(nx, nd) {
				nc++
			}
		}
	}
	bk.Sort()
	return nc
}
