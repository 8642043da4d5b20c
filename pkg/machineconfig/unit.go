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
	ignitionTypes "github.com/coreos/ignition/v2/config/v3_1/types"
	"k8s.io/utils/ptr"
)

// NewUnit returns an enabled systemd unit entry. The contents are not validated here.
func NewUnit(name, contents string) (ignitionTypes.Unit, error) {
	if name == "" {
		return ignitionTypes.Unit{}, ErrEmptyUnitName
	}

	return ignitionTypes.Unit{
		Name:     name,
		Enabled:  ptr.To(true),
		Contents: ptr.To(contents),
	}, nil
}
