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

// Package nodeaddr looks up the external addresses of the nodes of a cluster.
package nodeaddr

import (
	"context"

	corev1 "k8s.io/api/core/v1"
)

// Source returns the external addresses of every node of a cluster.
type Source interface {
	ExternalIPs(ctx context.Context) ([]string, error)
}

// ExternalIPs returns the ExternalIP addresses of the nodes, in node and address order.
func ExternalIPs(nodes []corev1.Node) []string {
	addrs := []string{}
	for _, node := range nodes {
		for _, addr := range node.Status.Addresses {
			if addr.Type != corev1.NodeExternalIP {
				continue
			}
			addrs = append(addrs, addr.Address)
		}
	}
	return addrs
}
