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
	"net/netip"
	"strings"

	"github.com/pkg/errors"
)

// PeerList is an ordered list of peer addresses. Duplicates are kept.
type PeerList []netip.Addr

// ParsePeers validates every peer as an IPv4 or IPv6 literal.
func ParsePeers(peers []string) (PeerList, error) {
	list := make(PeerList, 0, len(peers))
	for _, p := range peers {
		addr, err := netip.ParseAddr(p)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidPeerAddress, "%q", p)
		}
		// zones are interface names of the generating host and mean nothing on the node
		if addr.Zone() != "" {
			return nil, errors.Wrapf(ErrInvalidPeerAddress, "%q has a zone", p)
		}
		// ::ffff:a.b.c.d reaches the node over IPv4 and needs an IPv4 filter
		list = append(list, addr.Unmap())
	}
	return list, nil
}

// IPv4 returns the IPv4 peers.
func (p PeerList) IPv4() PeerList {
	return p.filter(netip.Addr.Is4)
}

// IPv6 returns the IPv6 peers.
func (p PeerList) IPv6() PeerList {
	return p.filter(netip.Addr.Is6)
}

// ShellArray renders the peers as the elements of a bash array literal, e.g. '10.0.0.1' '10.0.0.2'.
func (p PeerList) ShellArray() string {
	quoted := make([]string, len(p))
	for i, addr := range p {
		quoted[i] = shellQuote(addr.String())
	}
	return strings.Join(quoted, " ")
}

func (p PeerList) filter(keep func(netip.Addr) bool) PeerList {
	out := PeerList{}
	for _, addr := range p {
		if keep(addr) {
			out = append(out, addr)
		}
	}
	return out
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
