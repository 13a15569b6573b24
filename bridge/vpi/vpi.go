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

// Package vpi implements the interpreted-VPI task bindings (spec C7):
// $to_myhdl and $from_myhdl, each called exactly once at kernel time 0,
// driving the shared sync.Machine through a kernel.Callbacks a cgo layer
// would supply.
package vpi

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/myhdl/cosim-bridge/bridge/errs"
	"github.com/myhdl/cosim-bridge/bridge/handshake"
	"github.com/myhdl/cosim-bridge/bridge/kernel"
	"github.com/myhdl/cosim-bridge/bridge/registry"
	"github.com/myhdl/cosim-bridge/bridge/sync"
	"github.com/myhdl/cosim-bridge/bridge/transport"
)

// Argument stands in for a VPI argument handle: the real binding would
// construct these from vpi_iterate/vpi_scan over vpiArgument, reading
// vpiName, vpiSize, and (for $from_myhdl) testing the handle's writability.
type Argument interface {
	Name() string
	Width() int
	// IsWritableRegister is only consulted for $from_myhdl arguments.
	IsWritableRegister() bool
}

// Bridge holds the one instance of the interpreted-VPI path's state,
// mirroring the source's file-scope statics (from_myhdl_flag,
// to_myhdl_flag, the pipe fds) as fields of a single owned object (Design
// Note, spec.md §9).
type Bridge struct {
	reg       *registry.Registry
	transport transport.Transport
	machine   *sync.Machine

	calledFrom bool
	calledTo   bool
}

// New returns a Bridge ready to receive FromMyHDL and ToMyHDL calls over t.
func New(t transport.Transport) *Bridge {
	reg := registry.New()
	return &Bridge{
		reg:       reg,
		transport: t,
		machine:   sync.New(t, reg),
	}
}

// Machine exposes the underlying sync.Machine, e.g. for setting
// MinPeerVersion before the handshake runs.
func (b *Bridge) Machine() *sync.Machine { return b.machine }

// FromMyHDL is $from_myhdl's calltf: register driven inputs. Must be
// called exactly once, at kernel time 0, with only writable-register
// arguments (spec.md §4.3, §6, invariant 1).
func (b *Bridge) FromMyHDL(now uint64, args []Argument) error {
	if b.calledFrom {
		return fmt.Errorf("%w: $from_myhdl", errs.ErrDuplicateTask)
	}
	if now != 0 {
		return fmt.Errorf("%w: $from_myhdl called at time %d", errs.ErrNonZeroStart, now)
	}
	for _, a := range args {
		if !a.IsWritableRegister() {
			return fmt.Errorf("%w: %q", errs.ErrBadFromArgument, a.Name())
		}
		if err := b.reg.AddInput(a.Name(), a.Width()); err != nil {
			return err
		}
	}
	b.calledFrom = true
	log.Debugf("vpi: $from_myhdl registered %d input(s)", len(args))
	return nil
}

// ToMyHDL is $to_myhdl's calltf: register monitored outputs, run the
// FROM/TO handshake, and kick off the sync state machine (S_INIT). Must be
// called exactly once, at kernel time 0 (spec.md §4.3, §6, invariant 1).
//
// The handshake is run here rather than split across both calltfs (as the
// original C does independently in from_myhdl_calltf/to_myhdl_calltf)
// because Go's registry needs both signal tables populated before it can
// build either header frame; this assumes the generated testbench invokes
// $from_myhdl before $to_myhdl, which matches every cosimulation wrapper
// in original_source/.
func (b *Bridge) ToMyHDL(now uint64, args []Argument, k kernel.Callbacks) error {
	if b.calledTo {
		return fmt.Errorf("%w: $to_myhdl", errs.ErrDuplicateTask)
	}
	if now != 0 {
		return fmt.Errorf("%w: $to_myhdl called at time %d", errs.ErrNonZeroStart, now)
	}
	for _, a := range args {
		if _, err := b.reg.AddOutput(a.Name(), a.Width()); err != nil {
			return err
		}
	}
	b.calledTo = true
	log.Debugf("vpi: $to_myhdl registered %d output(s)", len(args))

	if err := handshake.Run(b.transport, b.reg); err != nil {
		return err
	}
	b.machine.Init(k)
	return nil
}
