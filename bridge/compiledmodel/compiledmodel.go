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

// Package compiledmodel implements the compiled-model entry points (spec
// C7, spec.md §4.7): myhdl_init/myhdl_push_outputs/myhdl_pull_inputs,
// realized here as a Host that satisfies kernel.Callbacks with its own
// due-time scheduler, since a compiled model has no HDL kernel event queue
// of its own — "the external loop is the scheduler" (spec.md §4.7).
//
// Host reuses bridge/sync.Machine rather than re-deriving the RO/Delay/Delta
// logic: myhdl_push_outputs and myhdl_pull_inputs are not separate methods
// here, they are exactly the Machine's onReadOnly/onDelta callbacks, driven
// by Host.Run's event loop instead of a kernel's callback queue.
package compiledmodel

import (
	"fmt"
	"math/big"

	"github.com/coreos/go-systemd/daemon"
	log "github.com/sirupsen/logrus"

	"github.com/myhdl/cosim-bridge/bridge/descriptors"
	"github.com/myhdl/cosim-bridge/bridge/handshake"
	"github.com/myhdl/cosim-bridge/bridge/registry"
	"github.com/myhdl/cosim-bridge/bridge/sync"
	"github.com/myhdl/cosim-bridge/bridge/transport"
)

// Model is the compiled HDL model itself: Eval settles combinational and
// sequential logic for the current main_time, Output/SetInput access the
// compiled model's signal storage by registry index/name.
type Model interface {
	Eval()
	Output(index int) (*big.Int, error)
	SetInput(name string, value *big.Int) error
}

type pendingCall struct {
	due    uint64
	reason string
	fn     func()
}

// Host drives bridge/sync.Machine as the compiled-model path's "kernel": it
// satisfies kernel.Callbacks with a tiny due-time event queue instead of a
// real simulator's callback registration API.
type Host struct {
	transport transport.Transport
	reg       *registry.Registry
	machine   *sync.Machine
	model     Model

	mainTime uint64
	pending  []pendingCall
	finished bool
	aborted  error

	// AfterPush, if set, runs after every read-only callback returns (also
	// one that ended the run), with the registry's Current values as last
	// sampled; cmd/hdlbridge run attaches bridge/watch here (SPEC_FULL A9).
	AfterPush func(reg *registry.Registry)

	watchdogUsec bool
}

// NewHost builds a Host over t, with outputs/inputs populated from specs
// (typically loaded by bridge/descriptors.LoadINI).
func NewHost(t transport.Transport, outputs, inputs []descriptors.Spec, model Model) (*Host, error) {
	reg := registry.New()
	for _, o := range outputs {
		if _, err := reg.AddOutput(o.Name, o.Width); err != nil {
			return nil, err
		}
	}
	for _, i := range inputs {
		if err := reg.AddInput(i.Name, i.Width); err != nil {
			return nil, err
		}
	}
	return &Host{
		transport: t,
		reg:       reg,
		machine:   sync.New(t, reg),
		model:     model,
	}, nil
}

// Registry exposes the signal table for introspection (the "signals" CLI
// command, SPEC_FULL A6) and for AfterPush hooks.
func (h *Host) Registry() *registry.Registry { return h.reg }

// Machine exposes the underlying sync.Machine, e.g. for attaching a
// *stats.Stats before Init runs (SPEC_FULL A3, A8).
func (h *Host) Machine() *sync.Machine { return h.machine }

// Init is myhdl_init(): runs the FROM/TO handshake and schedules the first
// read-only push, exactly as the original myhdl.cpp's myhdl_init does both
// headers from one function (grounded on
// original_source/cosimulation/verilator/myhdl.cpp's myhdl_init).
func (h *Host) Init() error {
	if err := handshake.Run(h.transport, h.reg); err != nil {
		return err
	}
	if err := daemon.SdNotify(false, daemon.SdNotifyReady); err != nil {
		log.Debugf("compiledmodel: sd_notify ready failed (not running under systemd?): %v", err)
	}
	h.machine.Init(h)
	return nil
}

// Run pops the earliest-due pending callback until the peer closes the
// pipe (Finish) or a protocol violation aborts the run (Abort). This is the
// host main loop the spec.md §4.7 pseudocode describes.
func (h *Host) Run() error {
	for {
		if h.finished {
			return nil
		}
		if h.aborted != nil {
			return h.aborted
		}
		if len(h.pending) == 0 {
			return fmt.Errorf("compiledmodel: no callback scheduled, host is stuck")
		}

		idx := h.earliestPending()
		next := h.pending[idx]
		h.pending = append(h.pending[:idx], h.pending[idx+1:]...)
		h.mainTime = next.due

		if next.reason == "RO" {
			h.model.Eval()
		}
		if h.watchdogUsec {
			_ = daemon.SdNotify(false, daemon.SdNotifyWatchdog)
		}

		next.fn()

		if next.reason == "RO" && h.AfterPush != nil {
			h.AfterPush(h.reg)
		}
	}
}

func (h *Host) earliestPending() int {
	best := 0
	for i, p := range h.pending {
		if p.due < h.pending[best].due {
			best = i
		}
	}
	return best
}

func (h *Host) schedule(reason string, due uint64, fn func()) {
	h.pending = append(h.pending, pendingCall{due: due, reason: reason, fn: fn})
}

// EnableWatchdog turns on a per-cycle go-systemd watchdog ping (no-op when
// not run under systemd, matching daemon.SdNotify's own behavior).
func (h *Host) EnableWatchdog() { h.watchdogUsec = true }

// kernel.Callbacks implementation.

func (h *Host) CurrentTime() uint64 { return h.mainTime }

func (h *Host) ReadOutput(index int) (*big.Int, error) { return h.model.Output(index) }

func (h *Host) WriteInput(name string, value *big.Int) error {
	return h.model.SetInput(name, value)
}

func (h *Host) ScheduleReadOnly(fn func()) { h.schedule("RO", h.mainTime, fn) }

func (h *Host) ScheduleDelay(units uint64, fn func()) { h.schedule("Delay", h.mainTime+units, fn) }

func (h *Host) ScheduleDelta(fn func()) { h.schedule("Delta", h.mainTime+1, fn) }

func (h *Host) Abort(err error) {
	if h.aborted == nil {
		h.aborted = err
	}
}

func (h *Host) Finish() { h.finished = true }
