package tree

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type SerializedReport struct {
	Generator   string    `json:"generator"`
	Created     time.Time `json:"created"`
	Root        string    `json:"root"`
	Fingerprint string    `json:"fingerprint"`
	Coverage    *float64  `json:"coverage"`
	Totals      Totals    `json:"totals"`
	Tree        *FileTree `json:"tree"`
}

// NewReport wraps an aggregated tree for serialization.
func NewReport(t *FileTree, rootPath string) (*SerializedReport, error) {
	fp, err := Fingerprint(t)
	if err != nil {
		return nil, err
	}

	return &SerializedReport{
		Generator:   "migration-coverage",
		Created:     time.Now(),
		Root:        rootPath,
		Fingerprint: fp,
		Coverage:    t.Coverage,
		Totals:      Summarize(t),
		Tree:        t,
	}, nil
}

func Save(report *SerializedReport, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}
