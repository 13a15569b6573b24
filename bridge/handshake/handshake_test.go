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

package handshake

import (
	"testing"

	"github.com/hashicorp/go-version"
	"github.com/stretchr/testify/require"

	"github.com/myhdl/cosim-bridge/bridge/registry"
	"github.com/myhdl/cosim-bridge/bridge/transport"
)

func TestRunSendsFromThenTo(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.AddInput("d", 4))
	require.NoError(t, reg.AddInput("rst", 1))
	_, err := reg.AddOutput("clk", 1)
	require.NoError(t, err)
	_, err = reg.AddOutput("q", 4)
	require.NoError(t, err)

	f := &transport.Fake{Replies: []string{"OK", "OK"}}
	require.NoError(t, Run(f, reg))

	require.Equal(t, []string{"FROM 0 d 4 rst 1 ", "TO 0 clk 1 q 4 "}, f.Sent)
}

func TestRunEmptyAckFails(t *testing.T) {
	reg := registry.New()
	f := &transport.Fake{Replies: []string{""}}
	err := Run(f, reg)
	require.Error(t, err)
}

func TestCheckPeerVersionWarnsBelowMinimum(t *testing.T) {
	min, err := version.NewVersion("2.0.0")
	require.NoError(t, err)
	// Exercises the parse + compare path; logs only, never errors.
	CheckPeerVersion("OK 1.0.0", min)
	CheckPeerVersion("OK", min)
	CheckPeerVersion("OK not-a-version", min)
}
