package ec2

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/instlab/instctl/internal/config"
	"github.com/instlab/instctl/internal/logger"
	"github.com/instlab/instctl/internal/types"
)

var (
	// ErrProvisionTimeout indicates an instance never reached running state
	// within the polling budget.
	ErrProvisionTimeout = errors.New("timed out waiting for instance to reach running state")
	// ErrNoAddress indicates the describe output carried no usable address.
	ErrNoAddress = errors.New("could not resolve instance address")
)

// Polling defaults. The budget check uses a strict > after each status
// query, so one final query fires just past the budget before the bail;
// worst case the loop waits one interval beyond the budget.
const (
	defaultPollInterval = 5 * time.Second
	defaultPollBudget   = 181 * time.Second
)

// Manager drives instance lifecycle operations through the EC2 API tools.
type Manager struct {
	cfg    *config.Config
	runner Runner

	// Injectable so the polling loop is testable without real sleeps.
	pollInterval time.Duration
	pollBudget   time.Duration
	sleep        func(time.Duration)
}

// NewManager creates a Manager for the given configuration.
func NewManager(cfg *config.Config, runner Runner) *Manager {
	return &Manager{
		cfg:          cfg,
		runner:       runner,
		pollInterval: defaultPollInterval,
		pollBudget:   defaultPollBudget,
		sleep:        time.Sleep,
	}
}

// Launch provisions a new instance, waits for it to reach running state,
// tags it with the given name, and returns the instance with its address
// resolved.
func (m *Manager) Launch(ctx context.Context, tag string) (*types.Instance, error) {
	args := []string{
		m.cfg.AMI,
		"-t", m.cfg.InstanceType,
		"-g", m.cfg.Group,
		"--region", m.cfg.Region,
		"-k", m.cfg.Keypair,
	}
	if m.cfg.Subnet != "" {
		args = append(args, "-s", m.cfg.Subnet)
	}

	out, err := m.runner.Run(ctx, runTool, args...)
	if err != nil {
		return nil, fmt.Errorf("error launching instance: %w", err)
	}
	id, err := ParseInstanceID(out)
	if err != nil {
		return nil, err
	}

	logger.Infof("⏳ Waiting for instance %s to reach running state...", id)
	if err := m.WaitForRunning(ctx, id); err != nil {
		return nil, err
	}

	if _, err := m.runner.Run(ctx, tagTool, id, "--tag", "Name="+tag, "--region", m.cfg.Region); err != nil {
		// No rollback: the instance stays running, untagged.
		return nil, fmt.Errorf("error tagging instance %s: %w", id, err)
	}

	ip, err := m.ResolveIP(ctx, id)
	if err != nil {
		return nil, err
	}

	logger.Infof("✅ Instance %s is running at %s", id, ip)
	return &types.Instance{ID: id, IP: ip}, nil
}

// Terminate shuts down the given instance. It first waits for the instance
// to reach running state so its address can be resolved and scrubbed from
// the local known_hosts file before the termination command runs.
func (m *Manager) Terminate(ctx context.Context, id string) error {
	if err := m.WaitForRunning(ctx, id); err != nil {
		return err
	}
	ip, err := m.ResolveIP(ctx, id)
	if err != nil {
		return err
	}

	if _, err := m.runner.Run(ctx, sshKeygenTool, "-R", ip); err != nil {
		logger.Warnf("could not remove %s from known_hosts: %v", ip, err)
	}

	if _, err := m.runner.Run(ctx, terminateTool, id, "--region", m.cfg.Region); err != nil {
		return fmt.Errorf("error terminating instance %s: %w", id, err)
	}

	logger.Infof("✅ Instance %s terminated", id)
	return nil
}

// List returns the running instances in the configured region.
func (m *Manager) List(ctx context.Context) ([]types.Instance, error) {
	out, err := m.runner.Run(ctx, describeTool, "--region", m.cfg.Region)
	if err != nil {
		return nil, fmt.Errorf("error describing instances: %w", err)
	}
	return ParseRunningInstances(out), nil
}

// ResolveIP returns the address of the given instance, or ErrNoAddress when
// the describe output carries none.
func (m *Manager) ResolveIP(ctx context.Context, id string) (string, error) {
	out, err := m.runner.Run(ctx, describeTool, id, "--region", m.cfg.Region)
	if err != nil {
		return "", fmt.Errorf("error describing instance %s: %w", id, err)
	}
	ip := ParseIPFromDescribe(out)
	if ip == "" {
		return "", fmt.Errorf("%w: %s", ErrNoAddress, id)
	}
	return ip, nil
}

// WaitForRunning polls the instance status at a fixed interval until the
// describe output reports the running state. Accumulated wait time past the
// budget bails with ErrProvisionTimeout; the check runs after each query,
// so the status source gets one last look just beyond the budget.
func (m *Manager) WaitForRunning(ctx context.Context, id string) error {
	var elapsed time.Duration
	for {
		out, err := m.runner.Run(ctx, describeTool, id, "--region", m.cfg.Region)
		if err != nil {
			return fmt.Errorf("error describing instance %s: %w", id, err)
		}
		if strings.Contains(out, string(types.StatusRunning)) {
			return nil
		}
		if elapsed > m.pollBudget {
			return fmt.Errorf("%w: %s after %s", ErrProvisionTimeout, id, elapsed)
		}

		logger.Debugf("instance %s not running yet, retrying in %s (%s elapsed)", id, m.pollInterval, elapsed)
		m.sleep(m.pollInterval)
		elapsed += m.pollInterval
	}
}
