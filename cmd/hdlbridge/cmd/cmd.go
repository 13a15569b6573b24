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

// Package cmd implements the hdlbridge command tree: run, signals, and
// version, mirroring calnex/cmd's cobra root + subcommand-registers-itself
// structure (SPEC_FULL A5).
package cmd

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// RootCmd is the hdlbridge entry point.
var RootCmd = &cobra.Command{
	Use:   "hdlbridge",
	Short: "HDL cosimulation bridge: compiled-model host and signal tooling",
}

var (
	configFlag         string
	verboseFlag        bool
	logLevelFlag       string
	descriptorFileFlag string
)

func init() {
	RootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "path to the bridge config file")
	RootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "verbose (debug) logging")
	RootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "log level (debug, info, warning, error)")
}

// Execute runs the root command, exiting the process on error.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
