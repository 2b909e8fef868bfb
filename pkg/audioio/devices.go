package audioio

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// ListDevices enumerates audio input devices by shelling out to the
// platform's lister, trying each candidate in order. Best-effort: returns
// raw output lines for a human to read, typically in response to a capture
// failure.
func ListDevices(ctx context.Context) ([]string, error) {
	listers := [][]string{
		{"arecord", "-l"},
		{"pactl", "list", "short", "sources"},
		{"ffmpeg", "-hide_banner", "-sources", "pulse"},
	}

	var lastErr error
	for _, lister := range listers {
		out, err := exec.CommandContext(ctx, lister[0], lister[1:]...).CombinedOutput()
		if err != nil {
			lastErr = fmt.Errorf("%s: %w", lister[0], err)
			continue
		}
		var lines []string
		for _, line := range strings.Split(string(out), "\n") {
			if line = strings.TrimRight(line, "\r"); strings.TrimSpace(line) != "" {
				lines = append(lines, line)
			}
		}
		return lines, nil
	}

	return nil, fmt.Errorf("audioio: no device lister available: %w", lastErr)
}
