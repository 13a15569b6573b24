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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValidates(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestValidateRejectsBadLogLevel(t *testing.T) {
	c := DefaultConfig()
	c.LogLevel = "verbose"
	require.Error(t, c.Validate())
}

func TestValidateRejectsZeroTimeout(t *testing.T) {
	c := DefaultConfig()
	c.PeerAckTimeout = 0
	require.Error(t, c.Validate())
}

func TestReadConfigOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bridge.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: debug\ndescriptor_file: /tmp/signals.ini\n"), 0o644))

	c, err := ReadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "debug", c.LogLevel)
	require.Equal(t, "/tmp/signals.ini", c.DescriptorFile)
	// Untouched fields keep their defaults.
	require.Equal(t, DefaultConfig().PeerAckTimeout, c.PeerAckTimeout)
}

func TestPrepareConfigAppliesCLIOverrides(t *testing.T) {
	c, err := PrepareConfig("", "/tmp/signals.ini", "debug", true)
	require.NoError(t, err)
	require.Equal(t, "/tmp/signals.ini", c.DescriptorFile)
	require.Equal(t, "debug", c.LogLevel)
	require.True(t, c.Watchdog)
}

func TestPrepareConfigPropagatesReadError(t *testing.T) {
	_, err := PrepareConfig("/no/such/file.yaml", "", "", false)
	require.Error(t, err)
}
