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

// Package transport implements the bridge's pipe-oriented wire transport:
// two file descriptors named by environment variables, ASCII frame-at-a-time
// read/write, exactly one outstanding message per direction.
package transport

import (
	"fmt"
	"os"
	"strconv"

	"golang.org/x/sys/unix"

	"github.com/myhdl/cosim-bridge/bridge/errs"
)

// BufSize is the fixed frame buffer size. Overlong frames are never
// silently truncated: they fail loudly with ErrTransportOverflow.
const BufSize = 4096

// EnvToPipe and EnvFromPipe name the environment variables the bridge
// reads its pipe file descriptors from.
const (
	EnvToPipe   = "MYHDL_TO_PIPE"
	EnvFromPipe = "MYHDL_FROM_PIPE"
)

// Transport is what the handshake and sync state machine need from a
// duplex connection to the peer: write a frame, then read the reply.
// Pipe implements it over raw fds; tests use an in-memory fake instead.
type Transport interface {
	Write(frame string) error
	Read() (string, error)
	Exchange(frame string) (string, error)
}

// Pipe is a duplex, single-outstanding-message-per-direction transport to
// the peer, backed by a pair of raw file descriptors.
type Pipe struct {
	wfd int
	rfd int
}

// OpenFromEnv opens the pipe transport using the fds named by
// MYHDL_TO_PIPE (write) and MYHDL_FROM_PIPE (read).
func OpenFromEnv() (*Pipe, error) {
	wfd, err := parseFDEnv(EnvToPipe)
	if err != nil {
		return nil, err
	}
	rfd, err := parseFDEnv(EnvFromPipe)
	if err != nil {
		return nil, err
	}
	return &Pipe{wfd: wfd, rfd: rfd}, nil
}

func parseFDEnv(name string) (int, error) {
	v := os.Getenv(name)
	if v == "" {
		return 0, fmt.Errorf("%w: %s not set", errs.ErrMissingPipeEnv, name)
	}
	fd, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not numeric", errs.ErrMissingPipeEnv, name, v)
	}
	return fd, nil
}

// Write sends a single ASCII frame to the peer. The caller is expected to
// Read a reply before calling Write again (invariant: one outstanding
// message per direction).
func (p *Pipe) Write(frame string) error {
	b := []byte(frame)
	if len(b) > BufSize {
		return fmt.Errorf("%w: %d bytes exceeds %d", errs.ErrTransportOverflow, len(b), BufSize)
	}
	for written := 0; written < len(b); {
		n, err := unix.Write(p.wfd, b[written:])
		if err != nil {
			return fmt.Errorf("writing frame: %w", err)
		}
		written += n
	}
	return nil
}

// Read blocks for the peer's whole reply and returns it as a single frame.
// An empty read (EOF) is ErrTransportClosed: the peer is down and the
// caller must trigger a clean kernel shutdown, not treat this as
// recoverable.
func (p *Pipe) Read() (string, error) {
	buf := make([]byte, BufSize)
	n, err := unix.Read(p.rfd, buf)
	if err != nil {
		return "", fmt.Errorf("reading frame: %w", err)
	}
	if n == 0 {
		return "", errs.ErrTransportClosed
	}
	return string(buf[:n]), nil
}

// Exchange writes frame and returns the peer's reply in one step, the
// shape every handshake and sample/drive interaction uses.
func (p *Pipe) Exchange(frame string) (string, error) {
	if err := p.Write(frame); err != nil {
		return "", err
	}
	return p.Read()
}
