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

// Package latency assembles MachineConfigs which delay the traffic between the nodes of a cluster
// and the nodes of other clusters (zones) with tc netem.
package latency

import (
	_ "embed"
	"strconv"

	ignitionTypes "github.com/coreos/ignition/v2/config/v3_1/types"
	"github.com/pkg/errors"
	"k8s.io/utils/ptr"

	"github.com/prsurve/rdr-latency/pkg/machineconfig"
)

const (
	// NameSuffix is the suffix of every MachineConfig name generated by this package.
	NameSuffix = "network-latency"

	// ScriptName is the basename of the tc script, placed in machineconfig.DefaultTargetDir.
	ScriptName = "network-latency.sh"

	// ServiceName is the name of the systemd unit running the script at boot.
	ServiceName = "network-latency.service"

	// ModulesLoadDir is read by systemd-modules-load at boot.
	ModulesLoadDir = "/etc/modules-load.d"

	// ModuleConfName loads the netem qdisc kernel module.
	ModuleConfName = "sch_netem.conf"

	// LatencyPlaceholder is replaced with the effective delay in the service template.
	LatencyPlaceholder = "LATENCY_VALUE"

	// EnvironmentFileDirective is dropped from the service template, the delay is baked into the unit.
	EnvironmentFileDirective = "EnvironmentFile=/etc/network-split.env\n"
)

var (
	//go:embed assets/sch_netem.conf
	moduleConf []byte

	//go:embed assets/network-latency.service
	serviceTpl string
)

// Params of a latency MachineConfig.
type Params struct {
	// Role is the MachineConfigPool role, usually master or worker.
	Role string
	// Latency is the requested round trip latency in ms between this zone and the peers.
	Latency int
	// Peers are the addresses of the nodes in other zones.
	Peers []string
	// Priority is the name prefix of the MachineConfig.
	Priority int
}

// EffectiveDelay returns the delay each node injects so that both directions add up to latency.
// Odd values are truncated.
func EffectiveDelay(latency int) int {
	return latency / 2
}

// NewMachineConfig returns the latency MachineConfig for role with the default priority.
func NewMachineConfig(role string, latency int, peers []string) (*machineconfig.MachineConfig, error) {
	return Build(Params{
		Role:     role,
		Latency:  latency,
		Peers:    peers,
		Priority: machineconfig.DefaultPriority,
	})
}

// Build assembles a MachineConfig with the netem module config, the tc script and its
// systemd unit, in that order.
func Build(p Params) (*machineconfig.MachineConfig, error) {
	if p.Latency < 0 {
		return nil, errors.Wrapf(ErrNegativeLatency, "%d", p.Latency)
	}
	peers, err := ParsePeers(p.Peers)
	if err != nil {
		return nil, err
	}
	delay := EffectiveDelay(p.Latency)

	mc, err := machineconfig.New(p.Role, NameSuffix, p.Priority)
	if err != nil {
		return nil, err
	}

	modFile, err := machineconfig.NewFile(ModuleConfName, moduleConf, ModulesLoadDir)
	if err != nil {
		return nil, errors.Wrap(err, "unable to create netem module config")
	}
	mc.AddFile(modFile)

	script, err := RenderScript(peers)
	if err != nil {
		return nil, err
	}
	scriptFile, err := machineconfig.NewFile(ScriptName, script, machineconfig.DefaultTargetDir)
	if err != nil {
		return nil, errors.Wrap(err, "unable to create latency script")
	}
	scriptFile.Mode = ptr.To(machineconfig.ExecutableFileMode)
	mc.AddFile(scriptFile)

	unit, err := newServiceUnit(delay)
	if err != nil {
		return nil, err
	}
	mc.AddUnit(unit)

	if err := mc.Validate(); err != nil {
		return nil, err
	}
	return mc, nil
}

func newServiceUnit(delay int) (ignitionTypes.Unit, error) {
	contents, err := Substitute(serviceTpl,
		Replacement{Old: LatencyPlaceholder, New: strconv.Itoa(delay)},
		Replacement{Old: EnvironmentFileDirective, New: ""},
	)
	if err != nil {
		return ignitionTypes.Unit{}, errors.Wrapf(err, "rendering %s", ServiceName)
	}
	return machineconfig.NewUnit(ServiceName, contents)
}
