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
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePeers(t *testing.T) {
	type want struct {
		v4  string
		v6  string
		err error
	}

	cases := map[string]struct {
		reason string
		peers  []string
		want   want
	}{
		"Empty": {
			reason: "no peers",
			peers:  nil,
			want:   want{},
		},
		"OrderAndDuplicatesKept": {
			reason: "peers are passed through in order",
			peers:  []string{"10.0.0.2", "10.0.0.1", "10.0.0.2"},
			want:   want{v4: "'10.0.0.2' '10.0.0.1' '10.0.0.2'"},
		},
		"Mixed": {
			reason: "ipv6 peers are split out",
			peers:  []string{"10.0.0.1", "2001:DB8::1", "192.168.1.1"},
			want:   want{v4: "'10.0.0.1' '192.168.1.1'", v6: "'2001:db8::1'"},
		},
		"IPv4Mapped": {
			reason: "ipv4-mapped addresses are filtered as ipv4",
			peers:  []string{"::ffff:10.0.0.1", "2001:db8::1"},
			want:   want{v4: "'10.0.0.1'", v6: "'2001:db8::1'"},
		},
		"Garbage": {
			reason: "non ip literals are rejected",
			peers:  []string{"10.0.0.1", "node-1.example.com"},
			want:   want{err: ErrInvalidPeerAddress},
		},
		"Injection": {
			reason: "shell metacharacters are rejected",
			peers:  []string{"10.0.0.1' ) ; rm -rf / ; ( '"},
			want:   want{err: ErrInvalidPeerAddress},
		},
		"Whitespace": {
			reason: "addresses are not trimmed",
			peers:  []string{" 10.0.0.1"},
			want:   want{err: ErrInvalidPeerAddress},
		},
		"CIDR": {
			reason: "prefixes are not addresses",
			peers:  []string{"10.0.0.0/24"},
			want:   want{err: ErrInvalidPeerAddress},
		},
		"Zone": {
			reason: "zoned addresses are rejected",
			peers:  []string{"fe80::1%eth0"},
			want:   want{err: ErrInvalidPeerAddress},
		},
	}

	for n, tc := range cases {
		t.Run(n, func(t *testing.T) {
			peers, err := ParsePeers(tc.peers)
			require.ErrorIs(t, err, tc.want.err, tc.reason)
			if tc.want.err != nil {
				return
			}
			require.Len(t, peers, len(tc.peers))
			require.Equal(t, tc.want.v4, peers.IPv4().ShellArray())
			require.Equal(t, tc.want.v6, peers.IPv6().ShellArray())
		})
	}
}

func TestShellQuote(t *testing.T) {
	require.Equal(t, `'a'`, shellQuote("a"))
	require.Equal(t, `'a'\''b'`, shellQuote("a'b"))
}

func TestRenderScript(t *testing.T) {
	peers, err := ParsePeers([]string{"10.0.0.1", "2001:db8::2"})
	require.NoError(t, err)

	script, err := RenderScript(peers)
	require.NoError(t, err)

	s := string(script)
	require.True(t, strings.HasPrefix(s, "#!/bin/bash\n"))
	require.Contains(t, s, "declare -a ip_list=('10.0.0.1')\n")
	require.Contains(t, s, "declare -a ip6_list=('2001:db8::2')\n")
	require.Contains(t, s, `ip route show default`)
	require.Contains(t, s, `tc qdisc add dev "${iface}" root handle 1: prio`)
	require.Contains(t, s, `match ip dst "${ip_addr}"/32 flowid 1:1`)
	require.Contains(t, s, `match ip6 dst "${ip_addr}"/128 flowid 1:1`)
	require.Contains(t, s, "DEBUG_MODE=echo")
	require.NotContains(t, s, "{{")
}

func TestSubstitute(t *testing.T) {
	out, err := Substitute("a=X\nb=X\nc=Y\n",
		Replacement{Old: "X", New: "1"},
		Replacement{Old: "c=Y\n", New: ""},
	)
	require.NoError(t, err)
	require.Equal(t, "a=1\nb=1\n", out)

	_, err = Substitute("a=X\n", Replacement{Old: "UNKNOWN", New: "1"})
	require.ErrorIs(t, err, ErrPlaceholderNotFound)

	_, err = Substitute("a=X\n", Replacement{Old: "", New: "1"})
	require.ErrorIs(t, err, ErrPlaceholderNotFound)
}

func TestServiceTemplate(t *testing.T) {
	require.Contains(t, serviceTpl, LatencyPlaceholder)
	require.Contains(t, serviceTpl, EnvironmentFileDirective)

	u, err := newServiceUnit(50)
	require.NoError(t, err)
	require.Contains(t, *u.Contents, "ExecStart=/etc/network-latency.sh 50\n")
}
