package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement defines an external tool sublint can use.
type Requirement struct {
	Name        string
	Command     string
	Description string
	// Optional tools only switch individual checks off when missing.
	Optional bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Path        string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Requirements lists the tools behind video probing, frame sampling and the
// installed font check.
func Requirements(ffmpeg, ffprobe, fcList string) []Requirement {
	return []Requirement{
		{Name: "FFprobe", Command: ffprobe, Description: "Reads video resolution and frame timing", Optional: true},
		{Name: "FFmpeg", Command: ffmpeg, Description: "Decodes frames for scene boundary snapping", Optional: true},
		{Name: "fc-list", Command: fcList, Description: "Lists installed fonts", Optional: true},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		resolved, err := exec.LookPath(cmd)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Path = resolved
		status.Available = true
		results = append(results, status)
	}
	return results
}

// Missing returns the unavailable required dependencies.
func Missing(statuses []Status) []Status {
	var out []Status
	for _, status := range statuses {
		if !status.Available && !status.Optional {
			out = append(out, status)
		}
	}
	return out
}
