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

package latency

import (
	"github.com/pkg/errors"

	"github.com/prsurve/rdr-latency/pkg/machineconfig"
)

var (
	// ErrNegativeLatency is returned if the requested latency is below zero.
	ErrNegativeLatency = errors.WithMessage(machineconfig.ErrInvalidArgument, "negative latency")

	// ErrInvalidPeerAddress is returned if a peer is not an IPv4 or IPv6 literal.
	ErrInvalidPeerAddress = errors.WithMessage(machineconfig.ErrInvalidArgument, "invalid peer address")

	// ErrPlaceholderNotFound is returned if a template does not contain a placeholder it is expected to contain.
	ErrPlaceholderNotFound = errors.WithMessage(machineconfig.ErrInvalidArgument, "placeholder not found")
)
