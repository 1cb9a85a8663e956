package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// resolveMaxFeatures maps the CLI's -1 ("default") sentinel to
// sqrt(numFeatures), floored at 1; any explicit positive value passes
// through, matching the teacher's -max-features -1 convention in rf.go.
func resolveMaxFeatures(requested, numFeatures int) int {
	if requested > 0 {
		return requested
	}
	f := int(math.Sqrt(float64(numFeatures)))
	if f < 1 {
		f = 1
	}
	return f
}

// newRunDir creates a fresh runs/<timestamp>-<short-uuid>/ directory
// under parent for one fit run's artifacts.
func newRunDir(parent string) (string, error) {
	name := fmt.Sprintf("%s-%s", time.Now().UTC().Format("20060102T150405Z"), uuid.New().String()[:8])
	dir := filepath.Join(parent, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("rfctl: creating run directory %s: %w", dir, err)
	}
	return dir, nil
}

// parseIntList parses a comma-separated list of integers, e.g. a
// tune subcommand's grid flag value. Blank entries are skipped.
func parseIntList(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("rfctl: invalid integer %q", part)
		}
		out = append(out, v)
	}
	return out, nil
}
