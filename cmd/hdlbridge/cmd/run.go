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
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/hashicorp/go-version"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/myhdl/cosim-bridge/bridge/compiledmodel"
	"github.com/myhdl/cosim-bridge/bridge/config"
	"github.com/myhdl/cosim-bridge/bridge/descriptors"
	"github.com/myhdl/cosim-bridge/bridge/logging"
	"github.com/myhdl/cosim-bridge/bridge/registry"
	"github.com/myhdl/cosim-bridge/bridge/stats"
	"github.com/myhdl/cosim-bridge/bridge/transport"
	"github.com/myhdl/cosim-bridge/bridge/watch"
)

var watchdogFlag bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "run the compiled-model host loop against a descriptor file and peer pipes",
	Long: `run starts bridge/compiledmodel.Host's event loop with a built-in
passthrough model: driven inputs are echoed straight to same-named outputs
on every evaluation. This exercises the wire protocol and time
synchronization state machine end to end without a real compiled HDL
model attached. A real compiled model is expected to link bridge/compiledmodel
directly from its own generated main(), the way myhdl_init/myhdl_push_outputs/
myhdl_pull_inputs are linked into a specific Verilator binary rather than
invoked through a generic command line tool.`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&descriptorFileFlag, "descriptor-file", "", "path to the INI descriptor file (SPEC_FULL A7)")
	runCmd.Flags().BoolVar(&watchdogFlag, "watchdog", false, "enable go-systemd watchdog pings (SPEC_FULL A12)")
	RootCmd.AddCommand(runCmd)
}

// passthroughModel is a minimal Model for protocol-conformance testing: it
// copies every driven input to the identically named output, if one
// exists, and otherwise leaves outputs at zero.
type passthroughModel struct {
	outputNames []string
	byName      map[string]*big.Int
}

func newPassthroughModel(outputs []descriptors.Spec) *passthroughModel {
	names := make([]string, len(outputs))
	for i, o := range outputs {
		names[i] = o.Name
	}
	return &passthroughModel{outputNames: names, byName: map[string]*big.Int{}}
}

func (m *passthroughModel) Eval() {}

func (m *passthroughModel) Output(index int) (*big.Int, error) {
	if index < 0 || index >= len(m.outputNames) {
		return nil, fmt.Errorf("output index %d out of range", index)
	}
	if v, ok := m.byName[m.outputNames[index]]; ok {
		return v, nil
	}
	return big.NewInt(0), nil
}

func (m *passthroughModel) SetInput(name string, value *big.Int) error {
	m.byName[name] = value
	return nil
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.PrepareConfig(configFlag, descriptorFileFlag, logLevelFlag, watchdogFlag)
	if err != nil {
		return err
	}
	logging.Configure(cfg.LogLevel, verboseFlag)

	if cfg.DescriptorFile == "" {
		return fmt.Errorf("descriptor file must be set (--descriptor-file or config descriptor_file)")
	}
	outputs, inputs, err := descriptors.LoadINI(cfg.DescriptorFile)
	if err != nil {
		return fmt.Errorf("loading descriptor file: %w", err)
	}

	pipe, err := transport.OpenFromEnv()
	if err != nil {
		return fmt.Errorf("opening pipe transport: %w", err)
	}

	st := stats.New()
	var watcher *watch.Watcher
	if len(cfg.WatchExpressions) > 0 {
		specs := map[string]string{}
		for i, expr := range cfg.WatchExpressions {
			specs[fmt.Sprintf("watch_%d", i)] = expr
		}
		watcher, err = watch.NewWatcher(specs)
		if err != nil {
			return fmt.Errorf("compiling watch expressions: %w", err)
		}
	}

	model := newPassthroughModel(outputs)

	host, err := compiledmodel.NewHost(pipe, outputs, inputs, model)
	if err != nil {
		return fmt.Errorf("constructing host: %w", err)
	}
	if cfg.Watchdog {
		host.EnableWatchdog()
	}
	host.Machine().Stats = st
	if cfg.MinPeerVersion != "" {
		minVer, err := version.NewVersion(cfg.MinPeerVersion)
		if err != nil {
			return fmt.Errorf("parsing min_peer_version: %w", err)
		}
		host.Machine().MinPeerVersion = minVer
	}
	host.AfterPush = func(r *registry.Registry) {
		watcher.Check(r)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var eg errgroup.Group

	eg.Go(func() error { return st.Start(ctx, cfg.MetricsListenAddr) })

	var sys stats.SysStats
	eg.Go(func() error {
		ticker := time.NewTicker(cfg.SysstatsInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				collected, err := sys.Collect(cfg.SysstatsInterval)
				if err != nil {
					log.Warningf("sysstats: %v", err)
					continue
				}
				for k, v := range collected {
					st.SetCounter(k, v)
				}
			}
		}
	})

	eg.Go(func() error {
		defer cancel()
		if err := host.Init(); err != nil {
			return fmt.Errorf("handshake failed: %w", err)
		}
		return host.Run()
	})

	return eg.Wait()
}
