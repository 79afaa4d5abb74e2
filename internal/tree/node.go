package tree

import "errors"

// ErrNoClassifiedFiles is returned by Ratio for a node whose subtree holds no
// recognized files, or that has not been aggregated yet.
var ErrNoClassifiedFiles = errors.New("coverage undefined: no classified files")

// FileTree mirrors one scanned directory.
type FileTree struct {
	// Files maps a file name to true for the target family, false for legacy.
	Files map[string]bool `json:"files"`
	// Directories maps a subdirectory name to its subtree.
	Directories map[string]*FileTree `json:"directories"`
	// Coverage is nil until Aggregate runs, and stays nil when undefined.
	Coverage *float64 `json:"coverage"`
}

func New() *FileTree {
	return &FileTree{
		Files:       map[string]bool{},
		Directories: map[string]*FileTree{},
	}
}

// Ratio returns the aggregated coverage or ErrNoClassifiedFiles.
func (t *FileTree) Ratio() (float64, error) {
	if t == nil || t.Coverage == nil {
		return 0, ErrNoClassifiedFiles
	}
	return *t.Coverage, nil
}

// IsLeaf reports whether the node has no subdirectories.
func (t *FileTree) IsLeaf() bool {
	return len(t.Directories) == 0
}
