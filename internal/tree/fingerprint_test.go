package tree

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree() *FileTree {
	return &FileTree{
		Files: map[string]bool{"x.js": false, "y.ts": true},
		Directories: map[string]*FileTree{
			"b": leaf(map[string]bool{"z.ts": true, "w.tsx": true}),
			"c": New(),
		},
	}
}

func TestFingerprint_Deterministic(t *testing.T) {
	fp1, err := Fingerprint(sampleTree())
	require.NoError(t, err)

	fp2, err := Fingerprint(sampleTree())
	require.NoError(t, err)

	assert.NotEmpty(t, fp1)
	assert.Equal(t, fp1, fp2)
}

func TestFingerprint_ClassificationChange(t *testing.T) {
	before, err := Fingerprint(sampleTree())
	require.NoError(t, err)

	converted := sampleTree()
	delete(converted.Files, "x.js")
	converted.Files["x.ts"] = true

	after, err := Fingerprint(converted)
	require.NoError(t, err)

	assert.NotEqual(t, before, after)
}

func TestFingerprint_IgnoresCoverage(t *testing.T) {
	plain := sampleTree()
	aggregated := sampleTree()
	Aggregate(aggregated)

	fp1, err := Fingerprint(plain)
	require.NoError(t, err)
	fp2, err := Fingerprint(aggregated)
	require.NoError(t, err)

	assert.Equal(t, fp1, fp2)
}

func TestFingerprint_SmallTrees(t *testing.T) {
	empty, err := Fingerprint(New())
	require.NoError(t, err)

	single, err := Fingerprint(leaf(map[string]bool{"a.ts": true}))
	require.NoError(t, err)

	assert.NotEmpty(t, empty)
	assert.NotEmpty(t, single)
	assert.NotEqual(t, empty, single)
}

func TestSave(t *testing.T) {
	root := sampleTree()
	Aggregate(root)

	report, err := NewReport(root, "/repo")
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "coverage.json")
	require.NoError(t, Save(report, out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var decoded struct {
		Generator   string   `json:"generator"`
		Root        string   `json:"root"`
		Fingerprint string   `json:"fingerprint"`
		Coverage    *float64 `json:"coverage"`
		Totals      Totals   `json:"totals"`
		Tree        struct {
			Directories map[string]struct {
				Coverage *float64 `json:"coverage"`
			} `json:"directories"`
		} `json:"tree"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "migration-coverage", decoded.Generator)
	assert.Equal(t, "/repo", decoded.Root)
	assert.Equal(t, report.Fingerprint, decoded.Fingerprint)
	require.NotNil(t, decoded.Coverage)
	assert.InDelta(t, 1.0, *decoded.Coverage, 1e-9)
	assert.Equal(t, 4, decoded.Totals.Files())
	assert.Nil(t, decoded.Tree.Directories["c"].Coverage)
}
