// Package versionedfilename encodes and decodes file names of the form
// "<prefix>-<yyyy_MM_dd>-<version>", e.g. "tx-2015_05_21-14".
package versionedfilename

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DatePattern is the reference-time form of the date segment (yyyy_MM_dd).
const DatePattern = "2006_01_02"

// ErrIllegalFileName is wrapped by every build or parse failure.
var ErrIllegalFileName = errors.New("illegal versioned file name")

// FileInfo is the logical information encoded in a versioned file name.
type FileInfo struct {
	// Full file name as built or as found on disk.
	Name   string
	Prefix string
	// Midnight UTC of the encoded calendar date.
	FileDate time.Time
	Version  int64
}

// Build constructs a file name of the form "<prefix>-<date>-<version>".
// The prefix must be non-empty and must not contain a dash, because the dash
// is the segment delimiter; versions are non-negative.
func Build(prefix string, fileDate time.Time, version int64) (FileInfo, error) {
	if prefix == "" {
		return FileInfo{}, fmt.Errorf("%w: empty prefix", ErrIllegalFileName)
	}
	if strings.Contains(prefix, "-") {
		return FileInfo{}, fmt.Errorf("%w: prefix %q contains a dash", ErrIllegalFileName, prefix)
	}
	if version < 0 {
		return FileInfo{}, fmt.Errorf("%w: negative version %d", ErrIllegalFileName, version)
	}
	day := time.Date(fileDate.Year(), fileDate.Month(), fileDate.Day(), 0, 0, 0, 0, time.UTC)
	name := fmt.Sprintf("%s-%s-%d", prefix, day.Format(DatePattern), version)
	return FileInfo{
		Name:     name,
		Prefix:   prefix,
		FileDate: day,
		Version:  version,
	}, nil
}

// Parse extracts the prefix, date and version from a versioned file name.
// The name must consist of exactly three dash-separated segments and must
// round-trip with Build.
func Parse(fileName string) (FileInfo, error) {
	parts := strings.Split(fileName, "-")
	if len(parts) != 3 {
		return FileInfo{}, fmt.Errorf("%w: %q is not <prefix>-<date>-<version>", ErrIllegalFileName, fileName)
	}
	day, err := time.ParseInLocation(DatePattern, parts[1], time.UTC)
	if err != nil {
		return FileInfo{}, fmt.Errorf("%w: %q: %w", ErrIllegalFileName, fileName, err)
	}
	version, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return FileInfo{}, fmt.Errorf("%w: %q: %w", ErrIllegalFileName, fileName, err)
	}
	return FileInfo{
		Name:     fileName,
		Prefix:   parts[0],
		FileDate: day,
		Version:  version,
	}, nil
}
