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

// Package kernel defines the abstraction the sync state machine needs from
// its host: callback scheduling, time query, and signal read/write. A cgo
// binding layer satisfies it for the interpreted-VPI path (bridge/vpi); the
// compiled-model path (bridge/compiledmodel) satisfies it directly with a
// plain loop, standing in for the HDL kernel's callback queue.
package kernel

import "math/big"

// Callbacks is the set of primitives the HDL kernel (or its compiled-model
// stand-in) must provide to drive bridge/sync.Machine. Schedule* calls
// register fn to run at the named phase; the caller never calls fn itself.
type Callbacks interface {
	// CurrentTime returns the kernel's own notion of the current time, in
	// kernel units, for the RO-entry coherence check.
	CurrentTime() uint64

	// ReadOutput samples the current value of the monitored output at the
	// given registry index.
	ReadOutput(index int) (*big.Int, error)

	// WriteInput assigns value to the named driven input using no-delay
	// (immediate, within the current scheduling bucket) semantics.
	WriteInput(name string, value *big.Int) error

	// ScheduleReadOnly registers fn to run at the next read-only sample phase.
	ScheduleReadOnly(fn func())

	// ScheduleDelay registers fn to run after units kernel time units.
	ScheduleDelay(units uint64, fn func())

	// ScheduleDelta registers fn to run after one kernel time unit.
	ScheduleDelta(fn func())

	// Abort signals a hard, unrecoverable protocol violation (duplicate
	// task call, non-zero start, time coherence, delta overflow). The
	// kernel is expected to terminate the simulation.
	Abort(err error)

	// Finish signals a clean shutdown triggered by peer EOF.
	Finish()
}
