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

// Package sync implements the time-synchronization state machine (spec C6):
// the core that orchestrates read-only sampling, drive-frame reception,
// delay-vs-delta scheduling decisions, and input application. It is the
// largest and most load-bearing package in the bridge.
package sync

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash"
	"github.com/fatih/color"
	"github.com/hashicorp/go-version"
	log "github.com/sirupsen/logrus"

	"github.com/myhdl/cosim-bridge/bridge/errs"
	"github.com/myhdl/cosim-bridge/bridge/handshake"
	"github.com/myhdl/cosim-bridge/bridge/kernel"
	"github.com/myhdl/cosim-bridge/bridge/registry"
	"github.com/myhdl/cosim-bridge/bridge/stats"
	"github.com/myhdl/cosim-bridge/bridge/timesync"
	"github.com/myhdl/cosim-bridge/bridge/transport"
)

// state tags the three callback-driven phases of the state machine
// (Design Note, spec.md §9: "variant callback kinds → tagged state").
type state int

const (
	stateInit state = iota
	stateRO
	stateDelay
	stateDelta
)

func (s state) String() string {
	switch s {
	case stateInit:
		return "S_INIT"
	case stateRO:
		return "S_RO"
	case stateDelay:
		return "S_DELAY"
	case stateDelta:
		return "S_DELTA"
	default:
		return "S_UNKNOWN"
	}
}

var sentColor = color.New(color.FgGreen)
var recvColor = color.New(color.FgBlue)

// Machine is the single owned object holding all process-wide sync state
// (Design Note, spec.md §9: "global mutable state → single owned object").
// It is not safe for concurrent use; the bridge runs inside one evaluation
// thread (the kernel's, or the compiled-model host loop's).
type Machine struct {
	t   transport.Transport
	reg *registry.Registry
	ts  timesync.State

	state state

	firstRO         bool
	lastDriveValues []string

	// MinPeerVersion, if set, is compared against an optional version
	// token on the START ack (SPEC_FULL A11). Advisory only: a mismatch
	// logs a warning and never aborts the bridge.
	MinPeerVersion *version.Version

	// Stats, if set, is fed frame/timing counters as the machine runs
	// (SPEC_FULL A3, A8). Nil is a valid, no-op value.
	Stats *stats.Stats
}

// New returns a Machine in state S_INIT, ready to be driven by Init.
func New(t transport.Transport, reg *registry.Registry) *Machine {
	return &Machine{
		t:       t,
		reg:     reg,
		state:   stateInit,
		firstRO: true,
	}
}

// State reports the machine's current tagged state, for logging and tests.
func (m *Machine) State() string { return m.state.String() }

// Init is the S_INIT action: the caller (bridge/vpi or bridge/compiledmodel)
// is expected to have already run the FROM/TO handshake (bridge/handshake)
// before calling this, since that happens once per task at time 0 while
// this schedules the first RO and the pre-scheduled Delta per spec.md §4.6.
func (m *Machine) Init(k kernel.Callbacks) {
	k.ScheduleReadOnly(func() { m.onReadOnly(k) })
	k.ScheduleDelta(func() { m.onDelta(k) })
}

func (m *Machine) onReadOnly(k kernel.Callbacks) {
	m.state = stateRO

	if m.firstRO {
		ack, err := m.exchange(k, "START")
		if err != nil {
			m.handlePeerError(k, err)
			return
		}
		if ack == "" {
			k.Abort(fmt.Errorf("empty ack to START"))
			return
		}
		handshake.CheckPeerVersion(ack, m.MinPeerVersion)
		m.firstRO = false
	}

	if err := m.ts.SyncFromKernel(k.CurrentTime()); err != nil {
		k.Abort(err)
		return
	}

	frame, err := m.buildSampleFrame(k)
	if err != nil {
		k.Abort(err)
		return
	}

	reply, err := m.exchange(k, frame)
	if err != nil {
		m.handlePeerError(k, err)
		return
	}

	tokens := strings.Fields(reply)
	if len(tokens) == 0 {
		k.Abort(fmt.Errorf("empty drive frame"))
		return
	}
	myhdlTime, err := strconv.ParseUint(tokens[0], 10, 64)
	if err != nil {
		k.Abort(fmt.Errorf("drive frame: bad myhdl_time %q: %w", tokens[0], err))
		return
	}
	m.lastDriveValues = tokens[1:]

	prevPli := m.ts.PliTime
	delay, err := m.ts.AdvanceTo(myhdlTime)
	if err != nil {
		k.Abort(err)
		return
	}

	if myhdlTime > prevPli {
		if m.Stats != nil {
			m.Stats.IncTimeAdvances()
			m.Stats.IncDeltaResets()
		}
		k.ScheduleDelay(delay, func() { m.onDelay(k) })
		return
	}
	// Same time requested again: delta was already incremented above.
	// No new callback is scheduled here — a Delta callback is always
	// already pending, pre-scheduled by S_INIT or the previous S_DELTA.
}

func (m *Machine) onDelay(k kernel.Callbacks) {
	m.state = stateDelay
	k.ScheduleReadOnly(func() { m.onReadOnly(k) })
	k.ScheduleDelta(func() { m.onDelta(k) })
}

func (m *Machine) onDelta(k kernel.Callbacks) {
	m.state = stateDelta

	if m.ts.Delta == 0 {
		// Stale: a time advance already rescheduled RO/Delta from
		// onReadOnly's Delay branch. This pre-scheduled callback is a
		// leftover and does nothing.
		return
	}

	if err := m.reg.ApplyDrive(m.lastDriveValues); err != nil {
		k.Abort(err)
		return
	}
	for _, in := range m.reg.Inputs() {
		if in.Pending == nil {
			continue
		}
		if err := k.WriteInput(in.Name, in.Pending); err != nil {
			k.Abort(err)
			return
		}
	}

	k.ScheduleReadOnly(func() { m.onReadOnly(k) })
	k.ScheduleDelta(func() { m.onDelta(k) })
}

// buildSampleFrame samples every output's current value from the kernel,
// then formats the changed (or, on first push, all) ones into the wire
// frame "<pli_time> [<name> <hexval>]… " (spec.md §6).
func (m *Machine) buildSampleFrame(k kernel.Callbacks) (string, error) {
	for _, o := range m.reg.Outputs() {
		v, err := k.ReadOutput(o.Index)
		if err != nil {
			return "", fmt.Errorf("sampling output %q: %w", o.Name, err)
		}
		if err := m.reg.SetCurrent(o.Index, v); err != nil {
			return "", err
		}
	}

	changed := m.reg.Changed()
	var b strings.Builder
	b.WriteString(strconv.FormatUint(m.ts.PliTime, 10))
	b.WriteByte(' ')
	for _, o := range changed {
		b.WriteString(o.Name)
		b.WriteByte(' ')
		b.WriteString(o.Current.Text(16))
		b.WriteByte(' ')
	}
	return b.String(), nil
}

// exchange writes frame and reads the peer's reply, logging both sides
// (colorized, fingerprinted with xxhash per spec.md's A10 expansion) and
// feeding frame counts and round-trip latency into m.Stats (SPEC_FULL A3,
// A8).
func (m *Machine) exchange(k kernel.Callbacks, frame string) (string, error) {
	log.Debugf("%s %s", sentColor.Sprint("->"), logLine(frame))
	start := time.Now()
	if m.Stats != nil {
		m.Stats.IncFramesSent()
	}
	reply, err := m.t.Exchange(frame)
	if err != nil {
		return "", err
	}
	if m.Stats != nil {
		m.Stats.IncFramesReceived()
		m.Stats.RecordRoundTrip(time.Since(start).Seconds())
	}
	log.Debugf("%s %s", recvColor.Sprint("<-"), logLine(reply))
	return reply, nil
}

func logLine(frame string) string {
	return fmt.Sprintf("%q [xxhash=%x]", frame, xxhash.Sum64String(frame))
}

// handlePeerError turns a transport-closed error into a clean Finish and
// anything else into an Abort, per spec.md §4.6's failure semantics.
func (m *Machine) handlePeerError(k kernel.Callbacks, err error) {
	if errors.Is(err, errs.ErrTransportClosed) {
		log.Infof("peer simulator down")
		if m.Stats != nil {
			m.Stats.IncPeerEOF()
		}
		k.Finish()
		return
	}
	k.Abort(err)
}
