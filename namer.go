// Package versionedfile derives, parses and enumerates date-stamped,
// version-numbered file names such as "tx-2015_05_21-14" within a base
// directory. It only manipulates names; creating or writing the files
// themselves is up to the caller.
package versionedfile

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/revenolabs/versionedfile-go/dirlist"
	"github.com/revenolabs/versionedfile-go/internal/daymath"
	"github.com/revenolabs/versionedfile-go/versionedfilename"
)

// ErrClockSkew is returned when the newest file for today is dated after the
// current day, i.e. the system clock moved backwards relative to the data.
var ErrClockSkew = errors.New("system clock is out of sync with versioned file data")

// Namer derives versioned file names for one prefix within one base
// directory. It holds no mutable state and is safe for concurrent use, but
// two callers deriving the next name concurrently can obtain the same name;
// serializing file creation is the caller's responsibility.
type Namer struct {
	baseDir string
	prefix  string
	now     func() time.Time
}

// Option is a functional option for configuring a Namer.
type Option func(*Namer)

// WithClock overrides the clock used to determine "today".
func WithClock(now func() time.Time) Option {
	return func(n *Namer) {
		n.now = now
	}
}

// NewNamer creates a Namer for the given base directory and prefix. The
// prefix must be non-empty and must not contain a dash, the name segment
// delimiter.
func NewNamer(baseDir, prefix string, opts ...Option) (*Namer, error) {
	// Build carries the prefix validation rules.
	if _, err := versionedfilename.Build(prefix, time.Now(), 0); err != nil {
		return nil, err
	}
	n := &Namer{
		baseDir: baseDir,
		prefix:  prefix,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n, nil
}

// NextVersionFile returns the name for the next file of today: the newest
// file already named for today with its version incremented by one, or
// version 1 when today has no files yet.
func (n *Namer) NextVersionFile() (string, error) {
	return n.nextVersionFile(nil)
}

// NextVersionFileWithVersion is NextVersionFile with an explicit version
// instead of the derived one.
func (n *Namer) NextVersionFileWithVersion(version int64) (string, error) {
	return n.nextVersionFile(&version)
}

func (n *Namer) nextVersionFile(override *int64) (string, error) {
	today := daymath.Day(n.now())

	files, err := n.ListFiles(true)
	if err != nil {
		return "", err
	}

	next := func(lastVersion int64) (string, error) {
		version := lastVersion + 1
		if override != nil {
			version = *override
		}
		info, err := versionedfilename.Build(n.prefix, today, version)
		if err != nil {
			return "", err
		}
		return info.Name, nil
	}

	if len(files) == 0 {
		slog.Debug("no versioned files for today", "baseDir", n.baseDir, "prefix", n.prefix)
		return next(0)
	}

	last, err := versionedfilename.Parse(files[len(files)-1])
	if err != nil {
		return "", err
	}
	// The listing filters on today's date, so a later date here means the
	// clock moved backwards since the file was named.
	if daymath.DaysBetween(last.FileDate, today) < 0 {
		return "", fmt.Errorf("%w: %s is dated after %s", ErrClockSkew, last.Name, today.Format(versionedfilename.DatePattern))
	}
	return next(last.Version)
}

// LastVersionFile returns the lexicographically last file name with the
// Namer's prefix, regardless of date, or "" when none exists.
func (n *Namer) LastVersionFile() (string, error) {
	files, err := n.ListFiles(false)
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", nil
	}
	return files[len(files)-1], nil
}

// LastVersionedFile is LastVersionFile parsed, or nil when no file exists.
func (n *Namer) LastVersionedFile() (*versionedfilename.FileInfo, error) {
	name, err := n.LastVersionFile()
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, nil
	}
	info, err := versionedfilename.Parse(name)
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// ListFiles returns the sorted names of regular files in the base directory
// that start with the prefix; with todayOnly they are further narrowed to
// files dated today.
func (n *Namer) ListFiles(todayOnly bool) ([]string, error) {
	prefix := n.prefix
	if todayOnly {
		prefix = n.prefix + "-" + daymath.Day(n.now()).Format(versionedfilename.DatePattern)
	}
	files, _, err := dirlist.ListFiles(n.baseDir, prefix, dirlist.SortOrderAscending, "", 0)
	return files, err
}

// ListFolders returns the sorted names of immediate subdirectories of the
// base directory that start with the prefix.
func (n *Namer) ListFolders() ([]string, error) {
	dirs, _, err := dirlist.ListDirs(n.baseDir, n.prefix, dirlist.SortOrderAscending, "", 0)
	return dirs, err
}

// ListVersioned parses every file ListFiles(false) returns. A single
// malformed name fails the whole listing.
func (n *Namer) ListVersioned() ([]versionedfilename.FileInfo, error) {
	files, err := n.ListFiles(false)
	if err != nil {
		return nil, err
	}
	infos := make([]versionedfilename.FileInfo, 0, len(files))
	for _, name := range files {
		info, err := versionedfilename.Parse(name)
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, nil
}
