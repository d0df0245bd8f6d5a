package sheetinspect

import (
	"fmt"
	"os"
	"strings"
)

// CandidateKeywords are matched case-insensitively against file names when
// the workbook cannot be loaded.
var CandidateKeywords = []string{"planilla", "pesaje"}

// FindCandidates lists the entries of dir whose names look like the expected
// workbook, sorted by name.
func FindCandidates(dir string) ([]string, error) {
	if dir == "" {
		dir = "."
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	out := make([]string, 0)
	for _, e := range entries {
		if matchesCandidate(e.Name()) {
			out = append(out, e.Name())
		}
	}
	return out, nil
}

func matchesCandidate(name string) bool {
	lower := strings.ToLower(name)
	for _, kw := range CandidateKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
