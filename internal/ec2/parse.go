package ec2

import (
	"errors"
	"fmt"
	"strings"

	"github.com/instlab/instctl/internal/types"
)

// Field offsets within an INSTANCE row of the describe output. The classic
// tools emit fixed tab-separated columns; offsets are zero-based positions
// after splitting on whitespace runs.
const (
	colInstanceID = 1
	colPublicDNS  = 3
	colInstanceIP = 14
)

// Row markers in the tools' tabular output.
const (
	// instanceToken prefixes the row carrying per-instance fields.
	instanceToken = "INSTANCE"
	// nicAssociationToken prefixes the row carrying the public address of a
	// subnet-backed network interface.
	nicAssociationToken = "NICASSOCIATION"
)

var errNoInstanceID = errors.New("could not extract instance id")

// ParseInstanceID extracts the new instance's identifier from
// ec2-run-instances output. Everything up to and including the INSTANCE
// token is discarded, then the id is the text before the next whitespace
// run. An empty extraction is an error; the caller must not proceed with a
// blank id.
func ParseInstanceID(raw string) (string, error) {
	_, after, found := strings.Cut(raw, instanceToken)
	if !found {
		return "", fmt.Errorf("%w from %q", errNoInstanceID, strings.TrimSpace(raw))
	}
	fields := strings.Fields(after)
	if len(fields) == 0 {
		return "", fmt.Errorf("%w from %q", errNoInstanceID, strings.TrimSpace(raw))
	}
	return fields[0], nil
}

// ParseIPFromDescribe extracts an instance address from the describe
// output. Subnet-backed instances carry it on a NICASSOCIATION row; classic
// instances fall back to a fixed column of the INSTANCE row. Returns ""
// when neither row yields an address — callers treat that as a resolution
// failure, never as a printable value.
func ParseIPFromDescribe(raw string) string {
	lines := strings.Split(raw, "\n")
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) >= 2 && fields[0] == nicAssociationToken {
			return fields[1]
		}
	}
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) > colInstanceIP && fields[0] == instanceToken {
			return fields[colInstanceIP]
		}
	}
	return ""
}

// ParseRunningInstances returns the instances in the describe output whose
// row reports the running state.
func ParseRunningInstances(raw string) []types.Instance {
	var instances []types.Instance
	for _, line := range strings.Split(raw, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 || fields[0] != instanceToken {
			continue
		}
		if !strings.Contains(line, string(types.StatusRunning)) {
			continue
		}
		inst := types.Instance{}
		if len(fields) > colInstanceID {
			inst.ID = fields[colInstanceID]
		}
		if len(fields) > colPublicDNS {
			inst.Name = fields[colPublicDNS]
		}
		if len(fields) > colInstanceIP {
			inst.IP = fields[colInstanceIP]
		}
		instances = append(instances, inst)
	}
	return instances
}
