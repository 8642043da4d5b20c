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

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, args ...string) (*Config, error) {
	t.Helper()

	v := viper.New()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	require.NoError(t, AddFlags(fs, v))
	require.NoError(t, fs.Parse(args))
	return Load(v)
}

func TestLoad_Flags(t *testing.T) {
	cfg, err := load(t, "-H", "/k/hub", "--c1-kubeconfig", "/k/c1", "--c2-kubeconfig", "/k/c2", "-l", "40")
	require.NoError(t, err)

	require.Equal(t, []Zone{
		{Name: "hub", Kubeconfig: "/k/hub"},
		{Name: "c1", Kubeconfig: "/k/c1"},
		{Name: "c2", Kubeconfig: "/k/c2"},
	}, cfg.Zones)
	require.Equal(t, 40, cfg.Latency)
	require.Equal(t, []string{"master", "worker"}, cfg.Roles)
	require.Equal(t, 99, cfg.Priority)
	require.Equal(t, "output", cfg.OutputDir)
	require.Equal(t, SourceOC, cfg.Source)
	require.Equal(t, "oc", cfg.OC)
	require.Equal(t, 10*time.Minute, cfg.Timeout)
	require.False(t, cfg.DryRun)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("RDR_LATENCY_HUB_KUBECONFIG", "/env/hub")
	t.Setenv("RDR_LATENCY_C1_KUBECONFIG", "/env/c1")
	t.Setenv("RDR_LATENCY_C2_KUBECONFIG", "/env/c2")
	t.Setenv("RDR_LATENCY_LATENCY", "100")

	cfg, err := load(t, "--source", "api")
	require.NoError(t, err)
	require.Equal(t, "/env/c1", cfg.Zones[1].Kubeconfig)
	require.Equal(t, 100, cfg.Latency)
	require.Equal(t, SourceAPI, cfg.Source)
}

func TestLoad_ConfigFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "rdr-latency.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`zones:
- name: east
  kubeconfig: /k/east
- name: west
  kubeconfig: /k/west
latency: 30
roles:
- worker
`), 0o600))

	cfg, err := load(t, "--config", file)
	require.NoError(t, err)
	require.Equal(t, []Zone{{Name: "east", Kubeconfig: "/k/east"}, {Name: "west", Kubeconfig: "/k/west"}}, cfg.Zones)
	require.Equal(t, 30, cfg.Latency)
	require.Equal(t, []string{"worker"}, cfg.Roles)

	_, err = load(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoad_MissingLatency(t *testing.T) {
	_, err := load(t, "-H", "/k/hub", "--c1-kubeconfig", "/k/c1", "--c2-kubeconfig", "/k/c2")
	require.ErrorIs(t, err, ErrMissingLatency)

	cfg, err := load(t, "-H", "/k/hub", "--c1-kubeconfig", "/k/c1", "--c2-kubeconfig", "/k/c2", "-l", "0")
	require.NoError(t, err)
	require.Equal(t, 0, cfg.Latency)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{
			Zones:   []Zone{{Name: "a", Kubeconfig: "/a"}, {Name: "b", Kubeconfig: "/b"}},
			Latency: 10,
			Roles:   []string{"worker"},
			Source:  SourceOC,
		}
	}

	cases := map[string]struct {
		reason string
		mutate func(c *Config)
		want   error
	}{
		"Valid": {
			reason: "valid config",
			mutate: func(*Config) {},
		},
		"SingleZone": {
			reason: "latency needs two zones",
			mutate: func(c *Config) { c.Zones = c.Zones[:1] },
			want:   ErrNoZones,
		},
		"DuplicateZone": {
			reason: "zone names are output file names",
			mutate: func(c *Config) { c.Zones[1].Name = "a" },
			want:   ErrDuplicateZone,
		},
		"UnnamedZone": {
			reason: "zone names are required",
			mutate: func(c *Config) { c.Zones[1].Name = "" },
			want:   ErrMissingZoneName,
		},
		"MissingKubeconfig": {
			reason: "every zone needs a kubeconfig",
			mutate: func(c *Config) { c.Zones[0].Kubeconfig = "" },
			want:   ErrMissingKubeconfig,
		},
		"NegativeLatency": {
			reason: "latency must not be negative",
			mutate: func(c *Config) { c.Latency = -1 },
			want:   ErrInvalidLatency,
		},
		"NoRoles": {
			reason: "roles are required",
			mutate: func(c *Config) { c.Roles = nil },
			want:   ErrNoRoles,
		},
		"UnknownSource": {
			reason: "only oc and api are supported",
			mutate: func(c *Config) { c.Source = "ssh" },
			want:   ErrUnknownSource,
		},
	}

	for n, tc := range cases {
		t.Run(n, func(t *testing.T) {
			c := valid()
			tc.mutate(&c)
			require.ErrorIs(t, c.Validate(), tc.want, tc.reason)
		})
	}
}
