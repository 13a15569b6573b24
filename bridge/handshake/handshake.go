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

// Package handshake performs the bridge's initial FROM/TO header exchange
// with the peer (spec C4). The later START exchange happens on first entry
// into the sync state machine, since it must occur inside the very first
// read-only callback — see bridge/sync.
package handshake

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hashicorp/go-version"
	log "github.com/sirupsen/logrus"

	"github.com/myhdl/cosim-bridge/bridge/registry"
	"github.com/myhdl/cosim-bridge/bridge/transport"
)

// Run sends the FROM header (driven inputs) and the TO header (monitored
// outputs), reading and discarding a non-empty ack after each.
func Run(t transport.Transport, reg *registry.Registry) error {
	if err := sendFromHeader(t, reg); err != nil {
		return fmt.Errorf("sending FROM header: %w", err)
	}
	if err := sendToHeader(t, reg); err != nil {
		return fmt.Errorf("sending TO header: %w", err)
	}
	return nil
}

func sendFromHeader(t transport.Transport, reg *registry.Registry) error {
	var b strings.Builder
	b.WriteString("FROM 0 ")
	for _, in := range reg.Inputs() {
		b.WriteString(in.Name)
		b.WriteByte(' ')
		b.WriteString(strconv.Itoa(in.Width))
		b.WriteByte(' ')
	}
	return exchangeAck(t, "FROM", b.String())
}

func sendToHeader(t transport.Transport, reg *registry.Registry) error {
	var b strings.Builder
	b.WriteString("TO 0 ")
	for _, out := range reg.Outputs() {
		b.WriteString(out.Name)
		b.WriteByte(' ')
		b.WriteString(strconv.Itoa(out.Width))
		b.WriteByte(' ')
	}
	return exchangeAck(t, "TO", b.String())
}

func exchangeAck(t transport.Transport, kind, frame string) error {
	ack, err := t.Exchange(frame)
	if err != nil {
		return err
	}
	if ack == "" {
		return fmt.Errorf("empty ack to %s header", kind)
	}
	log.Debugf("handshake: sent %q, got ack %q", frame, ack)
	return nil
}

// CheckPeerVersion parses an optional trailing version token on a START ack
// and compares it against minVersion, logging (never failing) on mismatch.
// The wire protocol only promises "any non-empty ack" (spec.md §6), so this
// is purely advisory.
func CheckPeerVersion(ack string, minVersion *version.Version) {
	if minVersion == nil {
		return
	}
	fields := strings.Fields(ack)
	if len(fields) < 2 {
		return
	}
	peerVer, err := version.NewVersion(fields[1])
	if err != nil {
		log.Debugf("handshake: ack %q has no parseable version token: %v", ack, err)
		return
	}
	if peerVer.LessThan(minVersion) {
		log.Warningf("peer advertises version %s, below configured minimum %s", peerVer, minVersion)
	}
}
