// Package types provides type definitions for the application
package types

import "path/filepath"

// InstanceStatus is the provider-side lifecycle state of an instance.
type InstanceStatus string

// Instance lifecycle states as reported by the describe output.
const (
	StatusPending    InstanceStatus = "pending"
	StatusRunning    InstanceStatus = "running"
	StatusTerminated InstanceStatus = "terminated"
)

// Instance represents a provisioned compute instance.
type Instance struct {
	ID   string // opaque identifier assigned by the provider
	Name string // public DNS name, when assigned
	IP   string // resolved address, empty until the instance is running
}

// ResolveTag returns the display name attached to a launched instance.
// An explicit override wins; otherwise the tag is derived from the working
// directory basename, the optional role, and the environment name.
func ResolveTag(override, workdir, role, environment string) string {
	if override != "" {
		return override
	}
	tag := filepath.Base(workdir)
	if role != "" {
		tag += "_" + role
	}
	return tag + "_" + environment
}
