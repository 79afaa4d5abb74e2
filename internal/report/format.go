package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"migration-coverage/internal/tree"
)

// FormatCoverage renders a coverage value as a percentage, or "n/a" when the
// subtree has no classified files.
func FormatCoverage(t *tree.FileTree) string {
	ratio, err := t.Ratio()
	if err != nil {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", ratio*100)
}

// Classification names the family a file belongs to.
func Classification(isTarget bool) string {
	if isTarget {
		return "target"
	}
	return "legacy"
}

// Dump writes an indented listing of t: directories first, then files, each
// group sorted by name.
func Dump(w io.Writer, name string, t *tree.FileTree) error {
	if _, err := fmt.Fprintf(w, "%s (%s)\n", name, FormatCoverage(t)); err != nil {
		return err
	}
	return dump(w, t, 1)
}

func dump(w io.Writer, t *tree.FileTree, depth int) error {
	indent := strings.Repeat("  ", depth)

	for _, name := range sortedKeys(t.Directories) {
		child := t.Directories[name]
		if _, err := fmt.Fprintf(w, "%s%s/ (%s)\n", indent, name, FormatCoverage(child)); err != nil {
			return err
		}
		if err := dump(w, child, depth+1); err != nil {
			return err
		}
	}

	for _, name := range sortedKeys(t.Files) {
		if _, err := fmt.Fprintf(w, "%s%s [%s]\n", indent, name, Classification(t.Files[name])); err != nil {
			return err
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
