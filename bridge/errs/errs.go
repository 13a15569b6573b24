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

// Package errs holds the sentinel error kinds the bridge reports to its
// caller. All of them are fatal at the simulation level; none are locally
// retried, since the peer is the sole authority on simulation progression.
package errs

import "errors"

var (
	// ErrMissingPipeEnv is returned when MYHDL_TO_PIPE or MYHDL_FROM_PIPE
	// is absent or not a valid decimal file descriptor.
	ErrMissingPipeEnv = errors.New("missing or invalid pipe environment variable")
	// ErrTransportClosed is returned when the peer closed its end of the pipe.
	ErrTransportClosed = errors.New("peer simulator down")
	// ErrTransportOverflow is returned when an outbound frame would exceed
	// the transport's fixed buffer.
	ErrTransportOverflow = errors.New("frame exceeds transport buffer")
	// ErrDuplicateTask is returned when $to_myhdl or $from_myhdl fires twice.
	ErrDuplicateTask = errors.New("task called more than once")
	// ErrNonZeroStart is returned when a task fires at a kernel time other than 0.
	ErrNonZeroStart = errors.New("task must be called at time 0")
	// ErrBadFromArgument is returned when a $from_myhdl argument is not a
	// writable register.
	ErrBadFromArgument = errors.New("from_myhdl argument is not a writable register")
	// ErrDuplicateSignalName is returned when a signal table has two
	// entries with the same name on the same side.
	ErrDuplicateSignalName = errors.New("duplicate signal name")
	// ErrTooManyOutputs is returned when $to_myhdl is given more than MAXARGS arguments.
	ErrTooManyOutputs = errors.New("too many monitored outputs")
	// ErrShortDriveFrame is returned when a drive frame carries fewer
	// values than there are registered inputs.
	ErrShortDriveFrame = errors.New("drive frame has fewer values than registered inputs")
	// ErrTimeCoherence is a hard assertion: the kernel's reported time
	// disagrees with pli_time*1000+delta (mod 2^32).
	ErrTimeCoherence = errors.New("time coherence violated")
	// ErrDeltaOverflow is a hard assertion: the peer failed to advance
	// time before delta reached its bound.
	ErrDeltaOverflow = errors.New("delta overflow: peer failed to advance time")
)
