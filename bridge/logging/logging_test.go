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

package logging

import (
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestConfigureVerboseForcesDebug(t *testing.T) {
	Configure("info", true)
	require.Equal(t, log.DebugLevel, log.GetLevel())
}

func TestConfigureParsesLevel(t *testing.T) {
	Configure("warning", false)
	require.Equal(t, log.WarnLevel, log.GetLevel())
}

func TestConfigureFallsBackToInfoOnBadLevel(t *testing.T) {
	Configure("not-a-level", false)
	require.Equal(t, log.InfoLevel, log.GetLevel())
}
