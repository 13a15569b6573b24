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

package cmd

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/myhdl/cosim-bridge/bridge/descriptors"
)

func TestPassthroughModelEchoesDrivenInputByName(t *testing.T) {
	outputs := []descriptors.Spec{{Name: "clk", Width: 1}, {Name: "d_out", Width: 4}}
	m := newPassthroughModel(outputs)

	require.NoError(t, m.SetInput("d_out", big.NewInt(7)))

	v, err := m.Output(1)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(7), v)
}

func TestPassthroughModelDefaultsUndrivenOutputToZero(t *testing.T) {
	outputs := []descriptors.Spec{{Name: "clk", Width: 1}}
	m := newPassthroughModel(outputs)

	v, err := m.Output(0)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(0), v)
}

func TestPassthroughModelRejectsOutOfRangeIndex(t *testing.T) {
	m := newPassthroughModel(nil)
	_, err := m.Output(0)
	require.Error(t, err)
}
