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
	"bytes"
	"context"
	"os/exec"
	"time"

	"github.com/go-logr/logr"
	"github.com/pkg/errors"
	corev1 "k8s.io/api/core/v1"
	"sigs.k8s.io/yaml"
)

const (
	// DefaultExecutable is the cluster CLI looked up in PATH.
	DefaultExecutable = "oc"

	// DefaultTimeout bounds a single CLI invocation.
	DefaultTimeout = 10 * time.Minute
)

var _ Source = &OCSource{}

// OCSource reads node addresses by running `oc get nodes -o yaml`.
type OCSource struct {
	// Kubeconfig overrides the default kubeconfig of the CLI if set.
	Kubeconfig string
	// Executable defaults to DefaultExecutable.
	Executable string
	// Timeout defaults to DefaultTimeout.
	Timeout time.Duration
	Logger  logr.Logger
}

// ExternalIPs implements Source.
func (s *OCSource) ExternalIPs(ctx context.Context) ([]string, error) {
	stdout, _, err := s.Run(ctx, "get", "nodes", "-o", "yaml")
	if err != nil {
		return nil, err
	}

	nodes := &corev1.NodeList{}
	if err := yaml.Unmarshal(stdout, nodes); err != nil {
		return nil, errors.Wrap(err, "unable to parse node list")
	}
	return ExternalIPs(nodes.Items), nil
}

// Run runs the CLI with the given arguments and logs its whole output.
// A non-zero exit code is returned as *CommandError.
func (s *OCSource) Run(ctx context.Context, args ...string) (stdout, stderr []byte, err error) {
	executable := s.Executable
	if executable == "" {
		executable = DefaultExecutable
	}
	timeout := s.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	cmdArgs := []string{}
	if s.Kubeconfig != "" {
		cmdArgs = append(cmdArgs, "--kubeconfig", s.Kubeconfig)
	}
	cmdArgs = append(cmdArgs, args...)

	logger := s.Logger.WithValues("command", append([]string{executable}, cmdArgs...))
	logger.V(2).Info("going to execute command")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var outBuf, errBuf bytes.Buffer
	cmd := exec.CommandContext(ctx, executable, cmdArgs...) //nolint:gosec // the executable is set by the operator
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf
	runErr := cmd.Run()

	exitCode := -1
	if cmd.ProcessState != nil {
		exitCode = cmd.ProcessState.ExitCode()
	}

	if runErr == nil {
		logger.V(4).Info("command finished", "stdout", outBuf.String(), "stderr", errBuf.String(), "exitCode", exitCode)
		return outBuf.Bytes(), errBuf.Bytes(), nil
	}

	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		runErr = errors.Wrapf(ctx.Err(), "command timed out after %s", timeout)
	case ctx.Err() != nil:
		runErr = errors.Wrap(ctx.Err(), "command cancelled")
	}
	logger.Error(runErr, "command failed", "stdout", outBuf.String(), "stderr", errBuf.String(), "exitCode", exitCode)
	return outBuf.Bytes(), errBuf.Bytes(), &CommandError{
		Args:     append([]string{executable}, cmdArgs...),
		ExitCode: exitCode,
		Stdout:   outBuf.Bytes(),
		Stderr:   errBuf.Bytes(),
		Err:      runErr,
	}
}
