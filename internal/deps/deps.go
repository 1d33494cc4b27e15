package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"nfoforge/internal/config"
)

// Requirement defines an external binary nfoforge can call.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a requirement.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	// Path is the resolved executable when Available is set.
	Path   string
	Detail string
}

// Requirements lists the binaries the configuration points at. ffprobe is
// optional because media info may also come from JSON files.
func Requirements(cfg *config.Config) []Requirement {
	binary := "ffprobe"
	if cfg != nil {
		binary = cfg.FFprobeBinary()
	}
	return []Requirement{{
		Name:        "FFprobe",
		Command:     binary,
		Description: "Reads stream metadata for --probe",
		Optional:    true,
	}}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		results = append(results, Check(req))
	}
	return results
}

// Check resolves a single requirement on PATH.
func Check(req Requirement) Status {
	cmd := strings.TrimSpace(req.Command)
	status := Status{
		Name:        req.Name,
		Command:     cmd,
		Description: strings.TrimSpace(req.Description),
		Optional:    req.Optional,
	}
	if cmd == "" {
		status.Detail = "command not configured"
		return status
	}
	path, err := exec.LookPath(cmd)
	if err != nil {
		status.Detail = fmt.Sprintf("binary %q not found", cmd)
		return status
	}
	status.Available = true
	status.Path = path
	return status
}
