// Package ec2 drives the classic EC2 API tools and interprets their tabular
// text output.
package ec2

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// External tools this package shells out to.
const (
	runTool       = "ec2-run-instances"
	describeTool  = "ec2-describe-instances"
	tagTool       = "ec2-create-tags"
	terminateTool = "ec2-terminate-instances"
	sshKeygenTool = "ssh-keygen"
)

// ErrMissingDependency indicates the EC2 API tools are not installed.
var ErrMissingDependency = errors.New("ec2 api tools not found")

// Runner executes an external command and returns its combined output.
// A non-zero exit is reported as an error alongside whatever was printed.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

type execRunner struct{}

// NewRunner returns a Runner backed by os/exec.
func NewRunner() Runner {
	return execRunner{}
}

func (execRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	// #nosec G204 -- command arguments are built from validated configuration
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		return string(out), fmt.Errorf("%s: %w", name, err)
	}
	return string(out), nil
}

// CheckLaunchTools verifies the tools the launch operation shells out to
// are on PATH, so a missing toolchain bails early instead of mid-launch.
func CheckLaunchTools() error {
	return checkTools(runTool, describeTool, tagTool)
}

// CheckTerminateTools verifies the tools the terminate operation shells out to.
func CheckTerminateTools() error {
	return checkTools(describeTool, terminateTool, sshKeygenTool)
}

// CheckListTools verifies the tools the list operation shells out to.
func CheckListTools() error {
	return checkTools(describeTool)
}

func checkTools(names ...string) error {
	for _, name := range names {
		if _, err := exec.LookPath(name); err != nil {
			return fmt.Errorf("%w: %s is not on PATH", ErrMissingDependency, name)
		}
	}
	return nil
}
