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

// Package cmd implements the rdr-latency command line.
package cmd

import (
	"context"
	"flag"
	"io"

	"github.com/go-logr/logr"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"k8s.io/klog/v2"

	"github.com/prsurve/rdr-latency/internal/config"
	"github.com/prsurve/rdr-latency/internal/generate"
	"github.com/prsurve/rdr-latency/pkg/machineconfig"
	"github.com/prsurve/rdr-latency/pkg/nodeaddr"
)

// SourceFactory returns the node address source of a zone.
type SourceFactory func(cfg *config.Config, zone config.Zone, logger logr.Logger) (nodeaddr.Source, error)

// NewSource is the default SourceFactory. It runs oc or talks to the API server, depending on cfg.Source.
func NewSource(cfg *config.Config, zone config.Zone, logger logr.Logger) (nodeaddr.Source, error) {
	switch cfg.Source {
	case config.SourceOC:
		return &nodeaddr.OCSource{
			Kubeconfig: zone.Kubeconfig,
			Executable: cfg.OC,
			Timeout:    cfg.Timeout,
			Logger:     logger,
		}, nil
	case config.SourceAPI:
		return nodeaddr.NewAPISource(zone.Kubeconfig, cfg.Timeout)
	default:
		return nil, errors.Wrapf(config.ErrUnknownSource, "%q", cfg.Source)
	}
}

// NewRootCommand returns the rdr-latency command. Files are written to fs, nil means the OS filesystem.
func NewRootCommand(newSource SourceFactory, fs afero.Fs) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "rdr-latency",
		Short: "Generate MachineConfigs injecting network latency between clusters",
		Long: `rdr-latency reads the external node addresses of every zone and writes
output/<zone>-mc.yaml for each of them. Every file holds one MachineConfig per role
which delays traffic towards the nodes of all other zones by half the given round trip latency.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cmd.OutOrStdout(), cfg, newSource, fs, klog.Background())
		},
	}

	// AddFlags only fails if a flag is nil
	cobra.CheckErr(config.AddFlags(cmd.Flags(), v))

	goFlags := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(goFlags)
	cmd.Flags().AddGoFlagSet(goFlags)

	return cmd
}

func run(ctx context.Context, out io.Writer, cfg *config.Config, newSource SourceFactory, fs afero.Fs, logger logr.Logger) error {
	zones := make([]generate.Zone, 0, len(cfg.Zones))
	for _, z := range cfg.Zones {
		src, err := newSource(cfg, z, logger.WithValues("zone", z.Name))
		if err != nil {
			return errors.Wrapf(err, "setting up address source of zone %s", z.Name)
		}
		zones = append(zones, generate.Zone{Name: z.Name, Source: src})
	}

	opts := generate.Options{
		Latency:   cfg.Latency,
		Roles:     cfg.Roles,
		Priority:  cfg.Priority,
		OutputDir: cfg.OutputDir,
	}
	g := &generate.Generator{
		Logger: logger,
		Writer: machineconfig.NewWriter(fs),
	}

	if cfg.DryRun {
		results, err := g.Plan(ctx, zones, opts)
		if err != nil {
			return err
		}
		return generate.Print(out, results)
	}

	results, err := g.Run(ctx, zones, opts)
	if err != nil {
		return err
	}
	generate.Summary(out, results, opts)
	return nil
}
