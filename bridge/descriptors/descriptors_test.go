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

package descriptors

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeINI(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "signals.ini")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadINI(t *testing.T) {
	path := writeINI(t, "[outputs]\nclk = 1\nq = 4\n\n[inputs]\nd = 4\nrst = 1\n")

	outputs, inputs, err := LoadINI(path)
	require.NoError(t, err)
	require.Equal(t, []Spec{{Name: "clk", Width: 1}, {Name: "q", Width: 4}}, outputs)
	require.Equal(t, []Spec{{Name: "d", Width: 4}, {Name: "rst", Width: 1}}, inputs)
}

func TestLoadINIMissingSection(t *testing.T) {
	path := writeINI(t, "[outputs]\nclk = 1\n")
	_, _, err := LoadINI(path)
	require.Error(t, err)
}

func TestLoadINIBadWidth(t *testing.T) {
	path := writeINI(t, "[outputs]\nclk = not-a-number\n\n[inputs]\nd = 4\n")
	_, _, err := LoadINI(path)
	require.Error(t, err)
}
