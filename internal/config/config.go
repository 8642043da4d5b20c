/*
Copyright 2026 IONOS Cloud.

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

// Package config loads the rdr-latency configuration from flags, environment and an optional config file.
package config

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/prsurve/rdr-latency/pkg/machineconfig"
	"github.com/prsurve/rdr-latency/pkg/nodeaddr"
)

// Keys of the configuration.
const (
	KeyConfigFile    = "config"
	KeyHubKubeconfig = "hub-kubeconfig"
	KeyC1Kubeconfig  = "c1-kubeconfig"
	KeyC2Kubeconfig  = "c2-kubeconfig"
	KeyZones         = "zones"
	KeyLatency       = "latency"
	KeyRoles         = "roles"
	KeyPriority      = "priority"
	KeyOutputDir     = "output-dir"
	KeySource        = "source"
	KeyOC            = "oc"
	KeyTimeout       = "timeout"
	KeyDryRun        = "dry-run"

	// EnvPrefix is prepended to the upper-cased keys, e.g. RDR_LATENCY_HUB_KUBECONFIG.
	EnvPrefix = "RDR_LATENCY"
)

// Sources of node addresses.
const (
	SourceOC  = "oc"
	SourceAPI = "api"
)

var (
	// ErrNoZones is returned if less than two zones are configured.
	ErrNoZones = errors.New("at least two zones are required")

	// ErrDuplicateZone is returned if two zones share a name.
	ErrDuplicateZone = errors.New("duplicate zone")

	// ErrMissingZoneName is returned if a zone has no name.
	ErrMissingZoneName = errors.New("zone name is not set")

	// ErrMissingKubeconfig is returned if a zone has no kubeconfig.
	ErrMissingKubeconfig = errors.New("kubeconfig is not set")

	// ErrMissingLatency is returned if the latency is set by neither flag, environment nor config file.
	ErrMissingLatency = errors.New("latency is not set")

	// ErrInvalidLatency is returned for a negative latency.
	ErrInvalidLatency = errors.New("latency must not be negative")

	// ErrNoRoles is returned if no role is configured.
	ErrNoRoles = errors.New("at least one role is required")

	// ErrUnknownSource is returned for an unsupported address source.
	ErrUnknownSource = errors.New("unknown address source")
)

// Zone is a cluster between whose nodes and the nodes of all other zones latency is injected.
type Zone struct {
	Name       string `mapstructure:"name"`
	Kubeconfig string `mapstructure:"kubeconfig"`
}

// Config of a rdr-latency run.
type Config struct {
	Zones     []Zone        `mapstructure:"zones"`
	Latency   int           `mapstructure:"latency"`
	Roles     []string      `mapstructure:"roles"`
	Priority  int           `mapstructure:"priority"`
	OutputDir string        `mapstructure:"output-dir"`
	Source    string        `mapstructure:"source"`
	OC        string        `mapstructure:"oc"`
	Timeout   time.Duration `mapstructure:"timeout"`
	DryRun    bool          `mapstructure:"dry-run"`
}

// AddFlags registers the configuration flags and binds them to v.
func AddFlags(fs *pflag.FlagSet, v *viper.Viper) error {
	fs.String(KeyConfigFile, "", "Config file, may declare an arbitrary list of zones.")
	fs.StringP(KeyHubKubeconfig, "H", "", "Kubeconfig location for the hub cluster.")
	fs.String(KeyC1Kubeconfig, "", "Kubeconfig location for the C1 cluster.")
	fs.String(KeyC2Kubeconfig, "", "Kubeconfig location for the C2 cluster.")
	fs.IntP(KeyLatency, "l", 0, "Round trip network latency in ms to be created among zones (required).")
	fs.StringSlice(KeyRoles, []string{"master", "worker"}, "MachineConfigPool roles to generate MachineConfigs for.")
	fs.Int(KeyPriority, machineconfig.DefaultPriority, "Name prefix of the generated MachineConfigs.")
	fs.String(KeyOutputDir, "output", "Directory the <zone>-mc.yaml files are written to.")
	fs.String(KeySource, SourceOC, "Where node addresses are read from, one of oc or api.")
	fs.String(KeyOC, nodeaddr.DefaultExecutable, "Path of the oc executable.")
	fs.Duration(KeyTimeout, nodeaddr.DefaultTimeout, "Timeout of a single node address lookup.")
	fs.Bool(KeyDryRun, false, "Print the MachineConfigs to stdout instead of writing files.")

	return v.BindPFlags(fs)
}

// Load reads the configuration from v, including the config file if one is set.
func Load(v *viper.Viper) (*Config, error) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if file := v.GetString(KeyConfigFile); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "reading config file %s", file)
		}
	}

	// 0 is a valid latency, so the default cannot tell whether one was given
	if !v.IsSet(KeyLatency) {
		return nil, ErrMissingLatency
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "unable to decode config")
	}

	// without zones in the config file, fall back to the hub/c1/c2 flags
	if len(cfg.Zones) == 0 {
		cfg.Zones = []Zone{
			{Name: "hub", Kubeconfig: v.GetString(KeyHubKubeconfig)},
			{Name: "c1", Kubeconfig: v.GetString(KeyC1Kubeconfig)},
			{Name: "c2", Kubeconfig: v.GetString(KeyC2Kubeconfig)},
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if len(c.Zones) < 2 {
		return ErrNoZones
	}
	seen := map[string]bool{}
	for _, z := range c.Zones {
		if z.Name == "" {
			return ErrMissingZoneName
		}
		if seen[z.Name] {
			return errors.Wrapf(ErrDuplicateZone, "%q", z.Name)
		}
		seen[z.Name] = true
		if z.Kubeconfig == "" {
			return errors.Wrapf(ErrMissingKubeconfig, "zone %q", z.Name)
		}
	}
	if c.Latency < 0 {
		return errors.Wrapf(ErrInvalidLatency, "%d", c.Latency)
	}
	if len(c.Roles) == 0 {
		return ErrNoRoles
	}
	switch c.Source {
	case SourceOC, SourceAPI:
	default:
		return errors.Wrapf(ErrUnknownSource, "%q", c.Source)
	}
	return nil
}
