// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reservoir

import (
	"fmt"
	"sort"
	"strings"

	"github.com/emer/emergent/timer"
	"github.com/goki/ki/ints"
)

//////////////////////////////////////////////////////////////////////////////////////
//  Threading infrastructure

// NeurFun is a function applied to a contiguous range [st, ed) of neurons
type NeurFun func(st, ed int)

// BuildThreads partitions the neurons into NThreads contiguous chunks
func (rs *Reservoir) BuildThreads() {
	nn := len(rs.Neurons)
	nthr := ints.MaxInt(1, ints.MinInt(rs.NThreads, nn))
	rs.NThreads = nthr
	rs.ThrSt = make([]int, nthr+1)
	for th := 0; th <= nthr; th++ {
		rs.ThrSt[th] = (th * nn) / nthr
	}
	rs.ThrChans = make([]chan NeurFun, nthr)
	rs.ThrTimes = make([]timer.Time, nthr)
	rs.FunTimes = make(map[string]*timer.Time)
	for th := 0; th < nthr; th++ {
		rs.ThrChans[th] = make(chan NeurFun)
	}
}

// StartThreads starts up the computation threads, which monitor the channels for work
func (rs *Reservoir) StartThreads() {
	if rs.NThreads <= 1 || rs.thrRunning {
		return
	}
	Log.WithField("threads", rs.NThreads).Debug("starting compute threads")
	for th := 0; th < rs.NThreads; th++ {
		go rs.ThrWorker(th)
	}
	rs.thrRunning = true
}

// StopThreads stops the computation threads
func (rs *Reservoir) StopThreads() {
	if !rs.thrRunning {
		return
	}
	for th := 0; th < rs.NThreads; th++ {
		close(rs.ThrChans[th])
	}
	rs.thrRunning = false
}

// Close releases the computation threads.  The reservoir can still compute
// afterwards, on the calling goroutine only.
func (rs *Reservoir) Close() {
	rs.StopThreads()
}

// ThrWorker is the worker function run by the worker threads
func (rs *Reservoir) ThrWorker(th int) {
	st, ed := rs.ThrSt[th], rs.ThrSt[th+1]
	for fun := range rs.ThrChans[th] {
		rs.ThrTimes[th].Start()
		fun(st, ed)
		rs.ThrTimes[th].Stop()
		rs.WaitGp.Done()
	}
}

// ThrNeurFun calls function on all neurons, using threaded (go routine worker)
// computation if the threads are running, and otherwise the current thread.
// It returns only when all neurons are done.
func (rs *Reservoir) ThrNeurFun(fun NeurFun, funame string) {
	rs.FunTimerStart(funame)
	if !rs.thrRunning {
		fun(0, len(rs.Neurons))
	} else {
		for th := 0; th < rs.NThreads; th++ {
			rs.WaitGp.Add(1)
			rs.ThrChans[th] <- fun
		}
		rs.WaitGp.Wait()
	}
	rs.FunTimerStop(funame)
}

// FunTimerStart starts function timer for given function name -- ensures creation of timer
func (rs *Reservoir) FunTimerStart(fun string) {
	ft, ok := rs.FunTimes[fun]
	if !ok {
		ft = &timer.Time{}
		rs.FunTimes[fun] = ft
	}
	ft.Start()
}

// FunTimerStop stops function timer -- timer must already exist
func (rs *Reservoir) FunTimerStop(fun string) {
	ft := rs.FunTimes[fun]
	ft.Stop()
}

// ThrTimerReset resets the per-thread and per-function timers
func (rs *Reservoir) ThrTimerReset() {
	for th := range rs.ThrTimes {
		rs.ThrTimes[th].Reset()
	}
	for _, ft := range rs.FunTimes {
		ft.Reset()
	}
}

// TimerReport reports the amount of time spent in each function, and in each thread
func (rs *Reservoir) TimerReport() string {
	var b strings.Builder
	fmt.Fprintf(&b, "TimerReport: %v, NThreads: %v\n", rs.Name, rs.NThreads)
	fmt.Fprintf(&b, "\t%13s \t%7s\t%7s\n", "Function Name", "Secs", "Pct")
	fnms := make([]string, 0, len(rs.FunTimes))
	for k := range rs.FunTimes {
		fnms = append(fnms, k)
	}
	sort.Strings(fnms)
	pcts := make([]float64, len(fnms))
	tot := 0.0
	for i, fn := range fnms {
		pcts[i] = rs.FunTimes[fn].TotalSecs()
		tot += pcts[i]
	}
	for i, fn := range fnms {
		fmt.Fprintf(&b, "\t%13s \t%7.3f\t%7.1f\n", fn, pcts[i], 100*(pcts[i]/tot))
	}
	fmt.Fprintf(&b, "\t%13s \t%7.3f\n", "Total", tot)
	if rs.NThreads <= 1 {
		return b.String()
	}
	fmt.Fprintf(&b, "\n\tThr\tSecs\tPct\n")
	pcts = make([]float64, rs.NThreads)
	tot = 0.0
	for th := 0; th < rs.NThreads; th++ {
		pcts[th] = rs.ThrTimes[th].TotalSecs()
		tot += pcts[th]
	}
	for th := 0; th < rs.NThreads; th++ {
		fmt.Fprintf(&b, "\t%v \t%7.3f\t%7.1f\n", th, pcts[th], 100*(pcts[th]/tot))
	}
	return b.String()
}
