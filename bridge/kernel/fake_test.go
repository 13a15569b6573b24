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

package kernel

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFakeScheduleAndFireOrder(t *testing.T) {
	f := NewFake()
	var ran []string
	f.ScheduleReadOnly(func() { ran = append(ran, "RO") })
	f.ScheduleDelta(func() { ran = append(ran, "Delta") })

	require.True(t, f.FireNext("RO"))
	require.True(t, f.FireNext("Delta"))
	require.False(t, f.FireNext("Delay"))
	require.Equal(t, []string{"RO", "Delta"}, ran)
	require.EqualValues(t, 1, f.Now)
}

func TestFakeReadWriteOutputsInputs(t *testing.T) {
	f := NewFake()
	f.Outputs[0] = big.NewInt(7)
	v, err := f.ReadOutput(0)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(7), v)

	_, err = f.ReadOutput(1)
	require.Error(t, err)

	require.NoError(t, f.WriteInput("d", big.NewInt(3)))
	require.Equal(t, big.NewInt(3), f.Inputs["d"])
}

func TestFakeDelayAdvancesTime(t *testing.T) {
	f := NewFake()
	f.ScheduleDelay(4999, func() {})
	require.True(t, f.FireNext("Delay"))
	require.EqualValues(t, 4999, f.Now)
}
