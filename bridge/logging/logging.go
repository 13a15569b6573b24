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

// Package logging configures the bridge's logrus output, mirroring
// cmd/sptp/main.go's -verbose flag handling (SPEC_FULL A2). Frame-level
// send/receive colorization lives in bridge/sync itself, since it needs
// the frame content in scope; this package only owns level selection.
package logging

import (
	log "github.com/sirupsen/logrus"
)

// Configure sets the global logrus level: info by default, debug when
// verbose is true or level is "debug". An unrecognized level falls back
// to info rather than failing the run.
func Configure(level string, verbose bool) {
	if verbose {
		log.SetLevel(log.DebugLevel)
		return
	}
	parsed, err := log.ParseLevel(level)
	if err != nil {
		log.SetLevel(log.InfoLevel)
		return
	}
	log.SetLevel(parsed)
}
