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

package transport

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/myhdl/cosim-bridge/bridge/errs"
)

// pipePair wires up two os.Pipe()s into a Pipe whose write end a test peer
// can read, and whose read end a test peer can write to.
func pipePair(t *testing.T) (*Pipe, *os.File, *os.File) {
	t.Helper()
	toPeerR, toPeerW, err := os.Pipe()
	require.NoError(t, err)
	fromPeerR, fromPeerW, err := os.Pipe()
	require.NoError(t, err)
	p := &Pipe{wfd: int(toPeerW.Fd()), rfd: int(fromPeerR.Fd())}
	t.Cleanup(func() {
		toPeerW.Close()
		toPeerR.Close()
		fromPeerW.Close()
		fromPeerR.Close()
	})
	return p, toPeerR, fromPeerW
}

func TestWriteThenPeerReads(t *testing.T) {
	p, toPeerR, _ := pipePair(t)
	require.NoError(t, p.Write("TO 0 clk 1 "))
	buf := make([]byte, BufSize)
	n, err := toPeerR.Read(buf)
	require.NoError(t, err)
	require.Equal(t, "TO 0 clk 1 ", string(buf[:n]))
}

func TestReadFromPeer(t *testing.T) {
	p, _, fromPeerW := pipePair(t)
	_, err := fromPeerW.Write([]byte("OK"))
	require.NoError(t, err)
	got, err := p.Read()
	require.NoError(t, err)
	require.Equal(t, "OK", got)
}

func TestReadEOFIsTransportClosed(t *testing.T) {
	p, _, fromPeerW := pipePair(t)
	require.NoError(t, fromPeerW.Close())
	_, err := p.Read()
	require.ErrorIs(t, err, errs.ErrTransportClosed)
}

func TestWriteOverflow(t *testing.T) {
	p, _, _ := pipePair(t)
	big := make([]byte, BufSize+1)
	for i := range big {
		big[i] = 'a'
	}
	err := p.Write(string(big))
	require.ErrorIs(t, err, errs.ErrTransportOverflow)
}

func TestParseFDEnvMissing(t *testing.T) {
	t.Setenv(EnvToPipe, "")
	t.Setenv(EnvFromPipe, "")
	os.Unsetenv(EnvToPipe)
	os.Unsetenv(EnvFromPipe)
	_, err := OpenFromEnv()
	require.ErrorIs(t, err, errs.ErrMissingPipeEnv)
}

func TestParseFDEnvNonNumeric(t *testing.T) {
	t.Setenv(EnvToPipe, "not-a-number")
	t.Setenv(EnvFromPipe, "3")
	_, err := OpenFromEnv()
	require.ErrorIs(t, err, errs.ErrMissingPipeEnv)
}
