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

// Package config loads and validates bridge configuration, layering
// defaults, an on-disk YAML file, and CLI flag overrides exactly the way
// the facebook-time client configuration does (SPEC_FULL A1).
package config

import (
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	yaml "gopkg.in/yaml.v2"

	"github.com/myhdl/cosim-bridge/bridge/transport"
)

// Config specifies bridge run options.
type Config struct {
	ToPipeEnv          string        `yaml:"to_pipe_env"`
	FromPipeEnv        string        `yaml:"from_pipe_env"`
	PeerAckTimeout     time.Duration `yaml:"peer_ack_timeout"`
	MaxSignalWidth     int           `yaml:"max_signal_width"`
	DescriptorFile     string        `yaml:"descriptor_file"`
	LogLevel           string        `yaml:"log_level"`
	MetricsListenAddr  string        `yaml:"metrics_listen_addr"`
	MinPeerVersion     string        `yaml:"min_peer_version"`
	WatchExpressions   []string      `yaml:"watch_expressions"`
	SysstatsInterval   time.Duration `yaml:"sysstats_interval"`
	Watchdog           bool          `yaml:"watchdog"`
}

// DefaultConfig returns Config initialized with default values.
func DefaultConfig() *Config {
	return &Config{
		ToPipeEnv:         transport.EnvToPipe,
		FromPipeEnv:       transport.EnvFromPipe,
		PeerAckTimeout:    5 * time.Second,
		MaxSignalWidth:    1 << 20,
		LogLevel:          "info",
		MetricsListenAddr: "127.0.0.1:9110",
		SysstatsInterval:  30 * time.Second,
	}
}

// Validate checks that config is internally consistent.
func (c *Config) Validate() error {
	if c.ToPipeEnv == "" || c.FromPipeEnv == "" {
		return fmt.Errorf("to_pipe_env and from_pipe_env must both be set")
	}
	if c.PeerAckTimeout <= 0 {
		return fmt.Errorf("peer_ack_timeout must be greater than zero")
	}
	if c.MaxSignalWidth <= 0 {
		return fmt.Errorf("max_signal_width must be positive")
	}
	if c.SysstatsInterval <= 0 {
		return fmt.Errorf("sysstats_interval must be greater than zero")
	}
	switch c.LogLevel {
	case "debug", "info", "warning", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warning, error, got %q", c.LogLevel)
	}
	if c.MetricsListenAddr == "" {
		return fmt.Errorf("metrics_listen_addr must be set")
	}
	return nil
}

// ReadConfig reads config from path, overlaying it on top of DefaultConfig.
func ReadConfig(path string) (*Config, error) {
	c := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, err
	}
	return c, nil
}

// PrepareConfig layers defaults, an optional on-disk file, and CLI flag
// overrides, and validates the result — mirroring the teacher's function
// of the same name.
func PrepareConfig(cfgPath string, descriptorFile string, logLevel string, watchdog bool) (*Config, error) {
	cfg := DefaultConfig()
	var err error
	if cfgPath != "" {
		cfg, err = ReadConfig(cfgPath)
		if err != nil {
			return nil, fmt.Errorf("reading config from %q: %w", cfgPath, err)
		}
	}
	if descriptorFile != "" {
		log.Debugf("overriding descriptor_file from CLI flag")
		cfg.DescriptorFile = descriptorFile
	}
	if logLevel != "" {
		log.Debugf("overriding log_level from CLI flag")
		cfg.LogLevel = logLevel
	}
	if watchdog {
		cfg.Watchdog = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
