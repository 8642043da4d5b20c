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

package nodeaddr

import (
	"context"
	"time"

	"github.com/pkg/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"
)

var _ Source = &APISource{}

// APISource reads node addresses from the Kubernetes API.
type APISource struct {
	Client kubernetes.Interface
}

// NewAPISource returns an APISource for the given kubeconfig. An empty path uses the
// default loading rules (KUBECONFIG, ~/.kube/config, in-cluster).
func NewAPISource(kubeconfig string, timeout time.Duration) (*APISource, error) {
	rules := clientcmd.NewDefaultClientConfigLoadingRules()
	rules.ExplicitPath = kubeconfig

	cfg, err := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(rules, &clientcmd.ConfigOverrides{}).ClientConfig()
	if err != nil {
		return nil, errors.Wrapf(err, "unable to load kubeconfig %q", kubeconfig)
	}
	cfg.Timeout = timeout

	client, err := kubernetes.NewForConfig(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "unable to create kubernetes client")
	}
	return &APISource{Client: client}, nil
}

// ExternalIPs implements Source.
func (s *APISource) ExternalIPs(ctx context.Context) ([]string, error) {
	nodes, err := s.Client.CoreV1().Nodes().List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, errors.Wrap(err, "unable to list nodes")
	}
	return ExternalIPs(nodes.Items), nil
}
