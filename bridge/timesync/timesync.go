/*
Copyright (c) the cosim-bridge authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package timesync maintains the triple of clocks the bridge must keep
// coherent: the peer's pli_time, the sub-cycle delta counter, and the HDL
// kernel's own verilog_time.
package timesync

import (
	"fmt"

	"github.com/myhdl/cosim-bridge/bridge/errs"
)

// Ratio is the fixed number of kernel time units per one peer time unit.
// It is a constant of the wire protocol, not something a config can change.
const Ratio = 1000

// MaxDelta is the bound on the sub-cycle counter (spec invariant: delta < 1000).
// Reaching it without an intervening time advance is a peer protocol violation.
const MaxDelta = 1000

// State holds the (pli_time, delta, verilog_time) triple defined by the
// wire protocol and asserts the invariants relating them.
type State struct {
	PliTime     uint64
	Delta       uint32
	VerilogTime uint64
}

// coherent reports whether verilog_time == pli_time*Ratio+delta, compared
// modulo 2^32 to tolerate kernels whose time word is 32 bits wide.
func (s *State) coherent() bool {
	want := s.PliTime*Ratio + uint64(s.Delta)
	return uint32(s.VerilogTime) == uint32(want)
}

// SyncFromKernel records the kernel's reported current time and checks it
// against the bridge's own (pli_time, delta) bookkeeping.
func (s *State) SyncFromKernel(now uint64) error {
	s.VerilogTime = now
	if !s.coherent() {
		return fmt.Errorf("%w: verilog_time=%#x pli_time=%d delta=%d", errs.ErrTimeCoherence, now, s.PliTime, s.Delta)
	}
	return nil
}

// AdvanceTo processes a peer-requested absolute time. If peerTime is ahead
// of pli_time it returns the number of kernel units to delay before the
// next read-only callback; otherwise it books one more delta iteration and
// returns a zero delay (no time advance, so no delay callback is needed).
func (s *State) AdvanceTo(peerTime uint64) (delay uint64, err error) {
	if peerTime > s.PliTime {
		delay = (peerTime-s.PliTime)*Ratio - uint64(s.Delta)
		s.Delta = 0
		s.PliTime = peerTime
		return delay, nil
	}
	s.Delta++
	if s.Delta >= MaxDelta {
		return 0, fmt.Errorf("%w: delta reached %d at pli_time=%d", errs.ErrDeltaOverflow, s.Delta, s.PliTime)
	}
	return 0, nil
}
