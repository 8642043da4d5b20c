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
	"testing"

	"github.com/stretchr/testify/require"
	"k8s.io/utils/ptr"
)

func TestNew(t *testing.T) {
	type args struct {
		role     string
		suffix   string
		priority int
	}

	type want struct {
		name string
		err  error
	}

	cases := map[string]struct {
		reason string
		args   args
		want   want
	}{
		"Worker": {
			reason: "default priority",
			args:   args{role: "worker", suffix: "network-latency", priority: DefaultPriority},
			want:   want{name: "99-worker-network-latency"},
		},
		"MasterLowPriority": {
			reason: "custom priority",
			args:   args{role: "master", suffix: "network-latency", priority: 50},
			want:   want{name: "50-master-network-latency"},
		},
		"EmptyRole": {
			reason: "role is required",
			args:   args{suffix: "network-latency", priority: DefaultPriority},
			want:   want{err: ErrEmptyRole},
		},
		"EmptySuffix": {
			reason: "suffix is required",
			args:   args{role: "worker", priority: DefaultPriority},
			want:   want{err: ErrEmptySuffix},
		},
	}

	for n, tc := range cases {
		t.Run(n, func(t *testing.T) {
			mc, err := New(tc.args.role, tc.args.suffix, tc.args.priority)
			require.ErrorIs(t, err, tc.want.err, tc.reason)
			if tc.want.err != nil {
				require.ErrorIs(t, err, ErrInvalidArgument)
				require.Nil(t, mc)
				return
			}
			require.Equal(t, tc.want.name, mc.Name)
			require.Equal(t, APIVersion, mc.APIVersion)
			require.Equal(t, Kind, mc.Kind)
			require.Equal(t, tc.args.role, mc.Role())
			require.Equal(t, IgnitionVersion, mc.Spec.Config.Ignition.Version)
			require.Empty(t, mc.Files())
			require.Empty(t, mc.Units())
		})
	}
}

func TestNewUnit(t *testing.T) {
	u, err := NewUnit("network-latency.service", "[Unit]\n")
	require.NoError(t, err)
	require.Equal(t, "network-latency.service", u.Name)
	require.True(t, *u.Enabled)
	require.Equal(t, "[Unit]\n", *u.Contents)

	for _, contents := range []string{"", "[Unit]\n", "garbage"} {
		_, err = NewUnit("", contents)
		require.ErrorIs(t, err, ErrEmptyUnitName)
		require.ErrorIs(t, err, ErrInvalidArgument)
	}
}

func TestMachineConfig_AddAndValidate(t *testing.T) {
	mc, err := New("worker", "test", DefaultPriority)
	require.NoError(t, err)
	require.NoError(t, mc.Validate())

	f, err := NewFile("hello.conf", []byte("hello"), "/etc")
	require.NoError(t, err)
	mc.AddFile(f)

	u, err := NewUnit("hello.service", "[Unit]\nDescription=hello\n\n[Service]\nType=oneshot\nExecStart=/bin/true\n\n[Install]\nWantedBy=multi-user.target\n")
	require.NoError(t, err)
	mc.AddUnit(u)

	require.Len(t, mc.Files(), 1)
	require.Len(t, mc.Units(), 1)
	require.NoError(t, mc.Validate())

	// relative paths are rejected by ignition itself
	mc.Spec.Config.Storage.Files[0].Path = "relative"
	require.ErrorIs(t, mc.Validate(), ErrInvalidIgnition)

	mc.Spec.Config.Storage.Files[0].Path = "/etc/hello.conf"
	mc.Spec.Config.Ignition.Version = "2.3.0"
	require.ErrorIs(t, mc.Validate(), ErrInvalidIgnition)

	mc.Spec.Config.Ignition.Version = IgnitionVersion
	mc.Spec.Config.Storage.Files[0].Mode = ptr.To(-1)
	require.ErrorIs(t, mc.Validate(), ErrInvalidIgnition)
}
