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

// main is the main package of rdr-latency.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"k8s.io/klog/v2"

	// Import all Kubernetes client auth plugins (e.g. Azure, GCP, OIDC, etc.)
	// so kubeconfigs using them work with --source=api.
	_ "k8s.io/client-go/plugin/pkg/client/auth"

	"github.com/prsurve/rdr-latency/internal/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := cmd.NewRootCommand(cmd.NewSource, nil).ExecuteContext(ctx)
	stop()
	if err != nil {
		klog.Background().Error(err, "rdr-latency failed")
		klog.Flush()
		os.Exit(1)
	}
	klog.Flush()
}
