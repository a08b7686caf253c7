// Package deps checks the availability of the external tools the conversion
// pipeline shells out to.
package deps

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"djutil/internal/config"
)

// Requirement defines an external binary the tool relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Requirements returns the external binaries for the given config. Explicit
// paths from the config take precedence over PATH lookup.
func Requirements(cfg *config.Config) []Requirement {
	ffmpeg := strings.TrimSpace(cfg.Conversion.FFmpegPath)
	if ffmpeg == "" {
		ffmpeg = "ffmpeg"
	}
	ffprobe := strings.TrimSpace(cfg.Conversion.FFprobePath)
	if ffprobe == "" {
		ffprobe = "ffprobe"
	}
	return []Requirement{
		{Name: "FFmpeg", Command: ffmpeg, Description: "Audio format conversion"},
		{Name: "FFprobe", Command: ffprobe, Description: "Source format detection", Optional: true},
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
		resolved, err := resolve(cmd)
		if err != nil {
			status.Detail = fmt.Sprintf("not found: %v", err)
			results = append(results, status)
			continue
		}
		status.Command = resolved
		status.Available = true
		results = append(results, status)
	}
	return results
}

// AllRequiredAvailable reports whether every non-optional dependency resolved.
func AllRequiredAvailable(statuses []Status) bool {
	for _, status := range statuses {
		if !status.Optional && !status.Available {
			return false
		}
	}
	return true
}

func resolve(command string) (string, error) {
	if strings.ContainsRune(command, os.PathSeparator) {
		info, err := os.Stat(command)
		if err != nil {
			return "", err
		}
		if info.IsDir() || info.Mode()&0o111 == 0 {
			return "", fmt.Errorf("%s is not an executable file", command)
		}
		return command, nil
	}
	return exec.LookPath(command)
}
