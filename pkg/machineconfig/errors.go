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

import "github.com/pkg/errors"

var (
	// ErrInvalidArgument is the root of every validation error returned while building a MachineConfig.
	// Callers can match any of the errors below with errors.Is(err, ErrInvalidArgument).
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrEmptyRole is returned if the MachineConfig role is empty.
	ErrEmptyRole = errors.WithMessage(ErrInvalidArgument, "empty role")

	// ErrEmptySuffix is returned if the MachineConfig name suffix is empty.
	ErrEmptySuffix = errors.WithMessage(ErrInvalidArgument, "empty name suffix")

	// ErrEmptyBasename is returned if a file is created without a basename.
	ErrEmptyBasename = errors.WithMessage(ErrInvalidArgument, "empty basename")

	// ErrRelativeTargetDir is returned if the target directory of a file is not an absolute path.
	ErrRelativeTargetDir = errors.WithMessage(ErrInvalidArgument, "relative target_dir")

	// ErrTargetDirNotPermitted is returned if a file would be placed outside of /etc or /var.
	ErrTargetDirNotPermitted = errors.WithMessage(ErrInvalidArgument, "target_dir outside permitted roots")

	// ErrEmptyUnitName is returned if a systemd unit is created without a name.
	ErrEmptyUnitName = errors.WithMessage(ErrInvalidArgument, "empty unit name")

	// ErrInvalidIgnition is returned if the embedded Ignition config does not pass validation.
	ErrInvalidIgnition = errors.New("invalid ignition config")
)
