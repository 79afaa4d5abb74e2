package walker

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Classifier sorts file names into the legacy and target extension families.
type Classifier struct {
	legacy map[string]bool
	target map[string]bool
}

func NewClassifier(legacy, target []string) *Classifier {
	c := &Classifier{
		legacy: make(map[string]bool, len(legacy)),
		target: make(map[string]bool, len(target)),
	}
	for _, ext := range legacy {
		c.legacy[ext] = true
	}
	for _, ext := range target {
		c.target[ext] = true
	}
	return c
}

// Classify reports whether name belongs to the target family. ok is false
// when the extension is in neither family.
func (c *Classifier) Classify(name string) (isTarget bool, ok bool) {
	ext := Extension(name)
	if ext == "" {
		return false, false
	}
	if c.target[ext] {
		return true, true
	}
	if c.legacy[ext] {
		return false, true
	}
	return false, false
}

// Extension returns the text after the last dot, case preserved. A leading
// dot alone does not start an extension, so ".eslintrc" has none.
func Extension(name string) string {
	i := strings.LastIndex(name, ".")
	if i <= 0 {
		return ""
	}
	return name[i+1:]
}

// Excluder decides which directories are never visited.
type Excluder struct {
	patterns []string
	paths    map[string]bool
}

// NewExcluder accepts plain names ("node_modules") and doublestar globs
// ("build*", "packages/*/dist").
func NewExcluder(patterns []string) (*Excluder, error) {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid exclude pattern %q", p)
		}
	}
	return &Excluder{patterns: patterns, paths: map[string]bool{}}, nil
}

// ExcludePath skips exactly one directory, given as a path relative to the
// scan root. Unlike a pattern it never matches the same name elsewhere.
func (e *Excluder) ExcludePath(rel string) {
	rel = path.Clean(filepath.ToSlash(rel))
	if rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
		return
	}
	e.paths[rel] = true
}

// Excluded matches name against every pattern, and rel (the slash separated
// path from the scan root) against patterns containing a slash and against
// paths added with ExcludePath.
func (e *Excluder) Excluded(name, rel string) bool {
	if e.paths[rel] {
		return true
	}
	for _, pattern := range e.patterns {
		if pattern == name {
			return true
		}
		if matched, err := doublestar.Match(pattern, name); err == nil && matched {
			return true
		}
		if strings.Contains(pattern, "/") {
			if matched, err := doublestar.Match(pattern, rel); err == nil && matched {
				return true
			}
		}
	}
	return false
}
