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

package machineconfig

import (
	"encoding/json"
	"fmt"

	ignition "github.com/coreos/ignition/v2/config/v3_1"
	ignitionTypes "github.com/coreos/ignition/v2/config/v3_1/types"
	"github.com/pkg/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// New returns an empty MachineConfig named <priority>-<role>-<suffix> for the given role.
func New(role, suffix string, priority int) (*MachineConfig, error) {
	if role == "" {
		return nil, ErrEmptyRole
	}
	if suffix == "" {
		return nil, ErrEmptySuffix
	}

	return &MachineConfig{
		TypeMeta: metav1.TypeMeta{
			APIVersion: APIVersion,
			Kind:       Kind,
		},
		ObjectMeta: metav1.ObjectMeta{
			Name: fmt.Sprintf("%d-%s-%s", priority, role, suffix),
			Labels: map[string]string{
				RoleLabel: role,
			},
		},
		Spec: MachineConfigSpec{
			Config: ignitionTypes.Config{
				Ignition: ignitionTypes.Ignition{
					Version: IgnitionVersion,
				},
			},
		},
	}, nil
}

// Validate runs the Ignition v3.1 validation on the embedded config.
func (m *MachineConfig) Validate() error {
	raw, err := json.Marshal(&m.Spec.Config)
	if err != nil {
		return errors.Wrapf(err, "marshaling ignition config of %s", m.Name)
	}

	_, report, err := ignition.Parse(raw)
	if err != nil {
		return errors.Wrapf(ErrInvalidIgnition, "%s: %v: %s", m.Name, err, report.String())
	}
	return nil
}
