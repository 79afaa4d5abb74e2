package walker

import (
	"fmt"
	"os"
)

type EntryKind int

const (
	// KindOther covers symlinks, devices, sockets and pipes.
	KindOther EntryKind = iota
	KindFile
	KindDirectory
)

func (k EntryKind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDirectory:
		return "directory"
	default:
		return "other"
	}
}

// Filesystem is the directory access the builder depends on.
type Filesystem interface {
	// ListEntries returns the entry names of a directory, sorted.
	ListEntries(path string) ([]string, error)
	// StatEntry reports the kind of path without following symlinks.
	StatEntry(path string) (EntryKind, error)
}

// AccessError reports a path that could not be listed or inspected.
type AccessError struct {
	Op   string
	Path string
	Err  error
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *AccessError) Unwrap() error {
	return e.Err
}

// OSFilesystem reads the local disk.
type OSFilesystem struct{}

func (OSFilesystem) ListEntries(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}

func (OSFilesystem) StatEntry(path string) (EntryKind, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return KindOther, err
	}

	mode := info.Mode()
	switch {
	case mode.IsRegular():
		return KindFile, nil
	case mode.IsDir():
		return KindDirectory, nil
	default:
		return KindOther, nil
	}
}
