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
	"bytes"
	"strings"
	"text/template"

	"github.com/pkg/errors"
)

const (
	// scriptTpl is the tc script installed on every node. The delay is passed as the first
	// argument at run time, while the peers are baked in since the node has no access to
	// the state of the other clusters.
	scriptTpl = `#!/bin/bash
#
# Delay egress traffic heading to the nodes of other zones via tc netem.
#
# usage: network-latency.sh [-d] LATENCY_MS
#
#   -d  print the tc commands instead of running them

show_help() {
  echo "usage: $(basename "$0") [-d] LATENCY_MS"
  echo "  -d  print the tc commands instead of running them"
}

if [[ $# = 0 ]]; then
  show_help
  exit
fi

if [[ $1 = "-d" ]]; then
  # shellcheck disable=SC2209
  DEBUG_MODE=echo
  shift
else
  unset DEBUG_MODE
fi

# integer with egress latency in ms is the only argument of the script
case $1 in
  help|-h)   show_help; exit;;
  ''|*[!0-9]*) show_help; exit 1;;
  *)         latency=$1; shift;;
esac

# locate main network interface (assuming all nodes are on a single network)
iface=$(ip route show default | awk '/^default/ {print $5; exit}')
if [[ -z "${iface}" ]]; then
  echo "no default route found" >&2
  exit 1
fi

$DEBUG_MODE tc qdisc del dev "${iface}" root 2>/dev/null || true
$DEBUG_MODE tc qdisc add dev "${iface}" root handle 1: prio
$DEBUG_MODE tc qdisc add dev "${iface}" parent 1:1 handle 2: netem delay "${latency}"ms

# classify traffic heading to the nodes of other zones into the netem band
declare -a ip_list=({{ .IPv4 }})
declare -a ip6_list=({{ .IPv6 }})

for ip_addr in "${ip_list[@]}"; do
  $DEBUG_MODE tc filter add dev "${iface}" parent 1: protocol ip prio 2 u32 match ip dst "${ip_addr}"/32 flowid 1:1
done

for ip_addr in "${ip6_list[@]}"; do
  $DEBUG_MODE tc filter add dev "${iface}" parent 1: protocol ipv6 prio 3 u32 match ip6 dst "${ip_addr}"/128 flowid 1:1
done
`
)

type scriptData struct {
	IPv4 string
	IPv6 string
}

// RenderScript renders the tc script for the given peers.
func RenderScript(peers PeerList) ([]byte, error) {
	tpl, err := template.New("network-latency.sh").Parse(scriptTpl)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse network-latency.sh template")
	}

	buffer := &bytes.Buffer{}
	data := scriptData{
		IPv4: peers.IPv4().ShellArray(),
		IPv6: peers.IPv6().ShellArray(),
	}
	if err = tpl.Execute(buffer, data); err != nil {
		return nil, errors.Wrap(err, "failed to render network-latency.sh")
	}
	return buffer.Bytes(), nil
}

// Replacement replaces every occurrence of Old with New.
type Replacement struct {
	Old string
	New string
}

// Substitute applies the replacements in order. Every Old must occur in the text, so that
// templates drifting away from the code are caught instead of silently left unchanged.
func Substitute(text string, replacements ...Replacement) (string, error) {
	for _, r := range replacements {
		if r.Old == "" || !strings.Contains(text, r.Old) {
			return "", errors.Wrapf(ErrPlaceholderNotFound, "%q", r.Old)
		}
		text = strings.ReplaceAll(text, r.Old, r.New)
	}
	return text, nil
}
