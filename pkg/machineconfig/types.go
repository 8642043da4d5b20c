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

// Package machineconfig builds MachineConfig documents which embed an Ignition v3.1 config
// with files and systemd units for the machine-config-operator to deploy on every node of a role.
package machineconfig

import (
	ignitionTypes "github.com/coreos/ignition/v2/config/v3_1/types"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

const (
	// APIVersion of the MachineConfig resource.
	APIVersion = "machineconfiguration.openshift.io/v1"

	// Kind of the MachineConfig resource.
	Kind = "MachineConfig"

	// RoleLabel selects the MachineConfigPool a MachineConfig is rendered into.
	RoleLabel = "machineconfiguration.openshift.io/role"

	// IgnitionVersion is the Ignition spec version of the embedded config.
	IgnitionVersion = "3.1.0"

	// DefaultPriority is the name prefix used when the caller has no preference.
	DefaultPriority = 99
)

// MachineConfig is a single unit of node configuration targeting one role.
type MachineConfig struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec MachineConfigSpec `json:"spec"`
}

// MachineConfigSpec holds the embedded Ignition config.
type MachineConfigSpec struct {
	Config ignitionTypes.Config `json:"config"`
}

// Role returns the role label of the MachineConfig.
func (m *MachineConfig) Role() string {
	return m.Labels[RoleLabel]
}

// Files returns the files of the embedded Ignition config in attachment order.
func (m *MachineConfig) Files() []ignitionTypes.File {
	return m.Spec.Config.Storage.Files
}

// Units returns the systemd units of the embedded Ignition config in attachment order.
func (m *MachineConfig) Units() []ignitionTypes.Unit {
	return m.Spec.Config.Systemd.Units
}

// AddFile appends a file to the embedded Ignition config.
func (m *MachineConfig) AddFile(f ignitionTypes.File) {
	m.Spec.Config.Storage.Files = append(m.Spec.Config.Storage.Files, f)
}

// AddUnit appends a systemd unit to the embedded Ignition config.
func (m *MachineConfig) AddUnit(u ignitionTypes.Unit) {
	m.Spec.Config.Systemd.Units = append(m.Spec.Config.Systemd.Units, u)
}
