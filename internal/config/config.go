// Package config loads and persists the per-environment settings used to
// launch instances.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultEnvironment is used when no environment is given on the command line.
const DefaultEnvironment = "staging"

// DefaultGroup is the security group used when GROUP is not configured.
const DefaultGroup = "default"

var (
	// ErrMissingConfig indicates the environment file does not exist.
	ErrMissingConfig = errors.New("no such file")
	// ErrInvalidConfig indicates a required setting is absent or empty.
	ErrInvalidConfig = errors.New("invalid config")
)

// Config holds the settings read from a .env.<environment> file.
type Config struct {
	InstanceType string // INSTANCE_TYPE, required
	Region       string // REGION, required
	Keypair      string // KEYPAIR, required
	AMI          string // AMI, required
	Group        string // GROUP, defaults to "default"
	Subnet       string // SUBNET, optional; selects a VPC subnet
	Tag          string // TAG, optional; overrides the derived instance tag
	Server       string // SERVER, rewritten after a successful launch
}

// FileName returns the conventional config file name for an environment.
func FileName(environment string) string {
	return ".env." + environment
}

// Load reads .env.<environment> from dir. The file is parsed as strict
// key=value pairs; it is never sourced or executed.
func Load(dir, environment string) (*Config, error) {
	path := filepath.Join(dir, FileName(environment))
	values, err := godotenv.Read(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrMissingConfig, path)
		}
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}

	cfg := &Config{
		InstanceType: values["INSTANCE_TYPE"],
		Region:       values["REGION"],
		Keypair:      values["KEYPAIR"],
		AMI:          values["AMI"],
		Group:        values["GROUP"],
		Subnet:       values["SUBNET"],
		Tag:          values["TAG"],
		Server:       values["SERVER"],
	}

	if cfg.InstanceType == "" || cfg.Region == "" || cfg.Keypair == "" || cfg.AMI == "" {
		return nil, fmt.Errorf("%w: INSTANCE_TYPE, REGION, KEYPAIR and AMI must be set in %s", ErrInvalidConfig, path)
	}
	if cfg.Group == "" {
		cfg.Group = DefaultGroup
	}

	return cfg, nil
}

// SaveServer rewrites the SERVER= line of .env.<environment> to the given
// address, leaving every other line untouched. The file is replaced via a
// temporary file and rename so an interrupted write cannot truncate it.
func SaveServer(dir, environment, address string) error {
	path := filepath.Join(dir, FileName(environment))
	data, err := os.ReadFile(path) // #nosec G304 -- path is built from the environment name
	if err != nil {
		return fmt.Errorf("error reading %s: %w", path, err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("error reading %s: %w", path, err)
	}

	tmp, err := writeServerTemp(dir, environment, data, address, info.Mode())
	if err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("error replacing %s: %w", path, err)
	}
	return nil
}

// writeServerTemp writes the updated config to a temporary file in dir and
// returns its path. The rename happens in SaveServer; everything up to that
// point leaves the original file intact.
func writeServerTemp(dir, environment string, data []byte, address string, mode os.FileMode) (string, error) {
	lines := strings.Split(string(data), "\n")
	replaced := false
	for i, line := range lines {
		if strings.HasPrefix(line, "SERVER=") {
			lines[i] = "SERVER=" + address
			replaced = true
		}
	}
	if !replaced {
		// Append, keeping the trailing newline where one exists.
		if n := len(lines); n > 0 && lines[n-1] == "" {
			lines = append(lines[:n-1], "SERVER="+address, "")
		} else {
			lines = append(lines, "SERVER="+address)
		}
	}

	tmp, err := os.CreateTemp(dir, FileName(environment)+".*")
	if err != nil {
		return "", fmt.Errorf("error creating temp config: %w", err)
	}
	if _, err := tmp.WriteString(strings.Join(lines, "\n")); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("error writing temp config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("error writing temp config: %w", err)
	}
	if err := os.Chmod(tmp.Name(), mode); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("error writing temp config: %w", err)
	}
	return tmp.Name(), nil
}
