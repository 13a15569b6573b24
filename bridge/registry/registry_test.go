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

package registry

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/myhdl/cosim-bridge/bridge/errs"
)

func TestAddOutputDuplicateName(t *testing.T) {
	r := New()
	_, err := r.AddOutput("q", 4)
	require.NoError(t, err)
	_, err = r.AddOutput("q", 4)
	require.ErrorIs(t, err, errs.ErrDuplicateSignalName)
}

func TestFirstPushContainsAll(t *testing.T) {
	r := New()
	_, _ = r.AddOutput("clk", 1)
	_, _ = r.AddOutput("q", 4)
	require.NoError(t, r.SetCurrent(0, big.NewInt(0)))
	require.NoError(t, r.SetCurrent(1, big.NewInt(0)))

	changed := r.Changed()
	require.Len(t, changed, 2)
}

func TestChangeFidelity(t *testing.T) {
	// E4: two change callbacks for q between pushes, clk never marked.
	r := New()
	_, _ = r.AddOutput("clk", 1)
	qi, _ := r.AddOutput("q", 4)
	require.NoError(t, r.SetCurrent(0, big.NewInt(0)))
	require.NoError(t, r.SetCurrent(1, big.NewInt(0)))
	_ = r.Changed() // consume the first (all-inclusive) push

	require.NoError(t, r.SetCurrent(qi, big.NewInt(1)))
	require.NoError(t, r.MarkChanged(qi))
	require.NoError(t, r.SetCurrent(qi, big.NewInt(2)))
	require.NoError(t, r.MarkChanged(qi))

	changed := r.Changed()
	require.Len(t, changed, 1)
	require.Equal(t, "q", changed[0].Name)
	require.Equal(t, big.NewInt(2), changed[0].Current)
}

func TestApplyDrivePositional(t *testing.T) {
	r := New()
	require.NoError(t, r.AddInput("d", 4))
	require.NoError(t, r.AddInput("rst", 1))

	require.NoError(t, r.ApplyDrive([]string{"a", "1", "extra"}))
	require.Equal(t, big.NewInt(0xa), r.Inputs()[0].Pending)
	require.Equal(t, big.NewInt(1), r.Inputs()[1].Pending)
}

func TestApplyDriveShortFrame(t *testing.T) {
	r := New()
	require.NoError(t, r.AddInput("d", 4))
	require.NoError(t, r.AddInput("rst", 1))

	err := r.ApplyDrive([]string{"a"})
	require.ErrorIs(t, err, errs.ErrShortDriveFrame)
}

func TestMaxOutputs(t *testing.T) {
	r := New()
	for i := 0; i < MaxOutputs; i++ {
		_, err := r.AddOutput(string(rune('a'+i%26))+string(rune(i)), 1)
		require.NoError(t, err)
	}
	_, err := r.AddOutput("overflow", 1)
	require.ErrorIs(t, err, errs.ErrTooManyOutputs)
}
