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
	"io"

	"github.com/pkg/errors"
	yamlv3 "gopkg.in/yaml.v3"
	"sigs.k8s.io/yaml"
)

const documentSeparator = "---\n"

// Encode writes the MachineConfigs to w as a multi-document YAML stream, in the given order.
// Nothing is written for an empty list.
func Encode(w io.Writer, mcs ...*MachineConfig) error {
	for i, mc := range mcs {
		data, err := yaml.Marshal(mc)
		if err != nil {
			return errors.Wrapf(err, "marshaling MachineConfig %s", mc.Name)
		}
		if i > 0 {
			if _, err := io.WriteString(w, documentSeparator); err != nil {
				return err
			}
		}
		if _, err := w.Write(data); err != nil {
			return err
		}
	}
	return nil
}

// Decode reads every MachineConfig document of a multi-document YAML stream.
func Decode(r io.Reader) ([]*MachineConfig, error) {
	var mcs []*MachineConfig

	dec := yamlv3.NewDecoder(r)
	for {
		var doc map[string]any
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			return mcs, nil
		}
		if err != nil {
			return nil, errors.Wrap(err, "decoding yaml document")
		}
		if doc == nil {
			continue
		}

		// MachineConfig only carries json tags, so go through JSON like sigs.k8s.io/yaml does.
		raw, err := json.Marshal(doc)
		if err != nil {
			return nil, errors.Wrap(err, "converting yaml document to json")
		}
		mc := &MachineConfig{}
		if err := json.Unmarshal(raw, mc); err != nil {
			return nil, errors.Wrap(err, "unmarshaling MachineConfig")
		}
		mcs = append(mcs, mc)
	}
}
