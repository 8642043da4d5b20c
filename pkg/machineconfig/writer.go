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
	"bytes"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

const (
	dirMode  = 0o755
	fileMode = 0o644

	stagingSuffix = ".tmp"
)

// Output is a file holding one or more MachineConfigs.
type Output struct {
	Path           string
	MachineConfigs []*MachineConfig
}

// Writer persists MachineConfigs as YAML streams.
type Writer struct {
	fs afero.Fs
}

// NewWriter returns a Writer on top of fs. A nil fs writes to the OS filesystem.
func NewWriter(fs afero.Fs) *Writer {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Writer{fs: fs}
}

// WriteFile writes the MachineConfigs to path, replacing any existing file.
// Parent directories are created as needed.
func (w *Writer) WriteFile(path string, mcs ...*MachineConfig) error {
	return w.WriteAll([]Output{{Path: path, MachineConfigs: mcs}})
}

// WriteAll writes every output or none of them. All documents are encoded and staged next to
// their destination first; destinations are only replaced once every output has been staged.
// If replacing a destination fails, the destinations replaced before it are restored to their
// previous content, or removed if they did not exist.
func (w *Writer) WriteAll(outputs []Output) error {
	encoded := make([][]byte, len(outputs))
	for i, out := range outputs {
		if out.Path == "" {
			return errors.New("output path is not set")
		}
		buf := &bytes.Buffer{}
		if err := Encode(buf, out.MachineConfigs...); err != nil {
			return errors.Wrapf(err, "encoding %s", out.Path)
		}
		encoded[i] = buf.Bytes()
	}

	staged := make([]string, 0, len(outputs))
	cleanup := func() {
		for _, p := range staged {
			_ = w.fs.Remove(p)
		}
	}

	for i, out := range outputs {
		if err := w.fs.MkdirAll(filepath.Dir(out.Path), dirMode); err != nil {
			cleanup()
			return errors.Wrapf(err, "creating directory for %s", out.Path)
		}
		tmp := out.Path + stagingSuffix
		// tracked before writing, a failed write may leave a partial file behind
		staged = append(staged, tmp)
		if err := afero.WriteFile(w.fs, tmp, encoded[i], fileMode); err != nil {
			cleanup()
			return errors.Wrapf(err, "writing %s", tmp)
		}
	}

	previous := make([]*[]byte, len(outputs))
	for i, out := range outputs {
		data, err := afero.ReadFile(w.fs, out.Path)
		switch {
		case err == nil:
			previous[i] = &data
		case !errors.Is(err, os.ErrNotExist):
			cleanup()
			return errors.Wrapf(err, "reading %s", out.Path)
		}
	}

	for i, out := range outputs {
		if err := w.fs.Rename(staged[i], out.Path); err != nil {
			w.restore(outputs[:i], previous[:i])
			cleanup()
			return errors.Wrapf(err, "renaming %s to %s", staged[i], out.Path)
		}
	}
	return nil
}

// restore puts back the previous content of already replaced outputs. Errors are ignored,
// the caller already returns the error that triggered the restore.
func (w *Writer) restore(replaced []Output, previous []*[]byte) {
	for i, out := range replaced {
		if previous[i] == nil {
			_ = w.fs.Remove(out.Path)
			continue
		}
		_ = afero.WriteFile(w.fs, out.Path, *previous[i], fileMode)
	}
}
