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
	"encoding/base64"
	"path"
	"strings"

	ignitionTypes "github.com/coreos/ignition/v2/config/v3_1/types"
	"github.com/pkg/errors"
	"k8s.io/utils/ptr"
)

const (
	// DefaultTargetDir is the directory files are placed in unless told otherwise.
	DefaultTargetDir = "/etc"

	// DefaultFileMode is world readable. Ignition takes the mode as a plain integer (292).
	DefaultFileMode = 0o444

	// ExecutableFileMode is used for scripts run by systemd units (356).
	ExecutableFileMode = 0o544

	// DataURLPrefix is prepended to the base64 encoded file contents (RFC 2397).
	DataURLPrefix = "data:text/plain;charset=utf-8;base64,"

	fileOwner = "root"
)

// The machine-config-operator only writes below these directories.
var permittedRoots = []string{"/etc", "/var"}

// NewFile returns an Ignition file entry placing content at targetDir/basename.
// The content is embedded as a base64 data URL so that no fetch is needed during provisioning.
func NewFile(basename string, content []byte, targetDir string) (ignitionTypes.File, error) {
	if basename == "" {
		return ignitionTypes.File{}, ErrEmptyBasename
	}
	if !path.IsAbs(targetDir) {
		return ignitionTypes.File{}, errors.Wrapf(ErrRelativeTargetDir, "%q", targetDir)
	}
	targetDir = path.Clean(targetDir)
	if !isPermitted(targetDir) {
		return ignitionTypes.File{}, errors.Wrapf(ErrTargetDirNotPermitted, "%q", targetDir)
	}

	// a basename with ".." could still escape the target directory
	filePath := path.Join(targetDir, basename)
	if !isPermitted(filePath) || filePath == targetDir {
		return ignitionTypes.File{}, errors.Wrapf(ErrTargetDirNotPermitted, "%q", filePath)
	}

	return ignitionTypes.File{
		Node: ignitionTypes.Node{
			Path:  filePath,
			User:  ignitionTypes.NodeUser{Name: ptr.To(fileOwner)},
			Group: ignitionTypes.NodeGroup{Name: ptr.To(fileOwner)},
		},
		FileEmbedded1: ignitionTypes.FileEmbedded1{
			Mode: ptr.To(DefaultFileMode),
			Contents: ignitionTypes.Resource{
				Source: ptr.To(DataURL(content)),
			},
		},
	}, nil
}

// DataURL encodes content as a base64 text/plain data URL.
func DataURL(content []byte) string {
	return DataURLPrefix + base64.StdEncoding.EncodeToString(content)
}

// DecodeDataURL reverses DataURL.
func DecodeDataURL(source string) ([]byte, error) {
	encoded, ok := strings.CutPrefix(source, DataURLPrefix)
	if !ok {
		return nil, errors.Errorf("source %q is not a base64 data URL", source)
	}
	return base64.StdEncoding.DecodeString(encoded)
}

func isPermitted(p string) bool {
	for _, root := range permittedRoots {
		if p == root || strings.HasPrefix(p, root+"/") {
			return true
		}
	}
	return false
}
