// Package dirlist lists the immediate files or subdirectories of a base
// directory, filtered by name prefix, sorted, and optionally paginated.
package dirlist

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
)

const (
	SortOrderAscending  = "asc"
	SortOrderDescending = "desc"
)

// ErrCannotReadDir is wrapped when the base directory cannot be listed.
var ErrCannotReadDir = errors.New("failed to read directory")

// ListFiles returns the names of regular files in baseDir that start with
// prefix. An empty prefix matches everything. A pageSize <= 0 disables
// pagination and returns the full listing with an empty next token.
func ListFiles(
	baseDir string,
	prefix string,
	sortOrder string,
	pageToken string,
	pageSize int,
) (files []string, nextPageToken string, err error) {
	return list(baseDir, prefix, sortOrder, pageToken, pageSize, false)
}

// ListDirs is ListFiles for immediate subdirectories.
func ListDirs(
	baseDir string,
	prefix string,
	sortOrder string,
	pageToken string,
	pageSize int,
) (dirs []string, nextPageToken string, err error) {
	return list(baseDir, prefix, sortOrder, pageToken, pageSize, true)
}

func list(
	baseDir, prefix, sortOrder, pageToken string,
	pageSize int,
	wantDirs bool,
) (names []string, nextPageToken string, err error) {
	entries, err := os.ReadDir(baseDir)
	if err != nil {
		return nil, "", fmt.Errorf("%w %q: %w", ErrCannotReadDir, baseDir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() != wantDirs {
			continue
		}
		if name := entry.Name(); strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}

	switch strings.ToLower(sortOrder) {
	case SortOrderAscending:
		sort.Strings(names)
	case SortOrderDescending:
		sort.Sort(sort.Reverse(sort.StringSlice(names)))
	default:
		return nil, "", fmt.Errorf("invalid sort order: %s", sortOrder)
	}

	if pageSize <= 0 {
		return names, "", nil
	}

	// Decode page token.
	start := 0
	if pageToken != "" {
		tokenData, err := base64.StdEncoding.DecodeString(pageToken)
		if err != nil {
			return nil, "", fmt.Errorf("invalid page token: %w", err)
		}
		if err := json.Unmarshal(tokenData, &start); err != nil {
			return nil, "", fmt.Errorf("invalid page token: %w", err)
		}
	}
	if start > len(names) {
		start = len(names)
	}

	// Apply pagination.
	end := min(start+pageSize, len(names))

	// Generate next page token.
	if end < len(names) {
		nextPageTokenData, _ := json.Marshal(end)
		nextPageToken = base64.StdEncoding.EncodeToString(nextPageTokenData)
	}

	return names[start:end], nextPageToken, nil
}
