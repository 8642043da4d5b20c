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

// Package generate produces the latency MachineConfig files of every zone.
package generate

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/go-logr/logr"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/prsurve/rdr-latency/pkg/latency"
	"github.com/prsurve/rdr-latency/pkg/machineconfig"
	"github.com/prsurve/rdr-latency/pkg/nodeaddr"
)

// Zone is a cluster and where to read its node addresses from.
type Zone struct {
	Name   string
	Source nodeaddr.Source
}

// Options of a generation run.
type Options struct {
	Latency   int
	Roles     []string
	Priority  int
	OutputDir string
}

// Result holds the MachineConfigs of one zone.
type Result struct {
	Zone           string
	Path           string
	Peers          []string
	MachineConfigs []*machineconfig.MachineConfig
}

// Generator fetches node addresses, assembles MachineConfigs and writes them.
type Generator struct {
	Logger logr.Logger
	Writer *machineconfig.Writer
}

// Run generates <zone>-mc.yaml for every zone. Nothing is written unless every
// MachineConfig of every zone could be assembled.
func (g *Generator) Run(ctx context.Context, zones []Zone, opts Options) ([]Result, error) {
	results, err := g.Plan(ctx, zones, opts)
	if err != nil {
		return nil, err
	}

	outputs := make([]machineconfig.Output, len(results))
	for i, r := range results {
		outputs[i] = machineconfig.Output{Path: r.Path, MachineConfigs: r.MachineConfigs}
	}
	if err := g.Writer.WriteAll(outputs); err != nil {
		return nil, err
	}
	for _, r := range results {
		g.Logger.Info("wrote MachineConfigs", "zone", r.Zone, "path", r.Path, "count", len(r.MachineConfigs))
	}
	return results, nil
}

// Plan fetches the node addresses of all zones and assembles their MachineConfigs
// without writing anything.
func (g *Generator) Plan(ctx context.Context, zones []Zone, opts Options) ([]Result, error) {
	addrs, err := g.FetchAddresses(ctx, zones)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(zones))
	for i, z := range zones {
		names[i] = z.Name
	}
	return Assemble(names, addrs, opts)
}

// FetchAddresses reads the external node addresses of all zones concurrently.
func (g *Generator) FetchAddresses(ctx context.Context, zones []Zone) (map[string][]string, error) {
	addrs := make([][]string, len(zones))

	eg, ctx := errgroup.WithContext(ctx)
	for i, z := range zones {
		eg.Go(func() error {
			ips, err := z.Source.ExternalIPs(ctx)
			if err != nil {
				return errors.Wrapf(err, "fetching node addresses of zone %s", z.Name)
			}
			g.Logger.V(2).Info("fetched node addresses", "zone", z.Name, "addresses", ips)
			addrs[i] = ips
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	byZone := make(map[string][]string, len(zones))
	for i, z := range zones {
		byZone[z.Name] = addrs[i]
	}
	return byZone, nil
}

// Assemble builds the MachineConfigs of every zone in memory. The peers of a zone are the
// addresses of all other zones, in zone order.
func Assemble(zones []string, addrs map[string][]string, opts Options) ([]Result, error) {
	results := make([]Result, 0, len(zones))
	for _, zone := range zones {
		peers := []string{}
		for _, other := range zones {
			if other != zone {
				peers = append(peers, addrs[other]...)
			}
		}

		r := Result{
			Zone:  zone,
			Path:  filepath.Join(opts.OutputDir, fmt.Sprintf("%s-mc.yaml", zone)),
			Peers: peers,
		}
		for _, role := range opts.Roles {
			mc, err := latency.Build(latency.Params{
				Role:     role,
				Latency:  opts.Latency,
				Peers:    peers,
				Priority: opts.Priority,
			})
			if err != nil {
				return nil, errors.Wrapf(err, "assembling %s MachineConfig of zone %s", role, zone)
			}
			r.MachineConfigs = append(r.MachineConfigs, mc)
		}
		results = append(results, r)
	}
	return results, nil
}

// Print writes every MachineConfig of the results to w as a single YAML stream.
func Print(w io.Writer, results []Result) error {
	var mcs []*machineconfig.MachineConfig
	for _, r := range results {
		mcs = append(mcs, r.MachineConfigs...)
	}
	return machineconfig.Encode(w, mcs...)
}

// Summary renders a table of the generated MachineConfigs.
func Summary(w io.Writer, results []Result, opts Options) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Zone", "MachineConfig", "Peers", "Delay (ms)", "Path"})
	for _, r := range results {
		for _, mc := range r.MachineConfigs {
			t.AppendRow(table.Row{r.Zone, mc.Name, len(r.Peers), latency.EffectiveDelay(opts.Latency), r.Path})
		}
	}
	t.Render()
}
