package tree

import "sort"

// Stats is what Aggregate reports to the parent of a node.
type Stats struct {
	Percentage *float64
	FileCount  int
}

// Aggregate annotates t and every descendant with Coverage, post-order.
//
// A node without subdirectories is measured over its own files. A node with
// subdirectories is the file-count weighted average of its children and does
// not count its own direct files. Nodes with nothing to measure get a nil
// Coverage and contribute a FileCount of 0 upward.
func Aggregate(t *FileTree) Stats {
	if t.IsLeaf() {
		var targets int
		for _, isTarget := range t.Files {
			if isTarget {
				targets++
			}
		}
		return t.annotate(float64(targets), len(t.Files))
	}

	// Fixed order keeps the floating point sum identical between runs.
	names := make([]string, 0, len(t.Directories))
	for name := range t.Directories {
		names = append(names, name)
	}
	sort.Strings(names)

	var (
		weighted float64
		total    int
	)
	for _, name := range names {
		child := Aggregate(t.Directories[name])
		if child.FileCount == 0 || child.Percentage == nil {
			continue
		}
		total += child.FileCount
		weighted += float64(child.FileCount) * *child.Percentage
	}

	return t.annotate(weighted, total)
}

func (t *FileTree) annotate(numerator float64, fileCount int) Stats {
	if fileCount == 0 {
		t.Coverage = nil
		return Stats{FileCount: 0}
	}
	pct := numerator / float64(fileCount)
	t.Coverage = &pct
	return Stats{Percentage: &pct, FileCount: fileCount}
}
