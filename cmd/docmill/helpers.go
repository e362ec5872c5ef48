package main

import (
	"sort"

	"docmill/internal/state"
)

func sortedFailurePaths(journal *state.State) []string {
	paths := make([]string, 0, len(journal.FailedFiles))
	for path := range journal.FailedFiles {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}
