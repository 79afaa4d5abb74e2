package tree

import (
	"encoding/hex"
	"fmt"
	"path"
	"sort"

	mt "github.com/txaty/go-merkletree"

	"migration-coverage/internal/hash"
)

type entryBlock []byte

func (b entryBlock) Serialize() ([]byte, error) {
	return b, nil
}

// Fingerprint returns a hex Merkle root over the tree's classified structure.
// Two scans of an unchanged directory produce the same fingerprint; coverage
// is not part of the input since it is derived from the classification.
//
// Leaves are the sorted records "relpath\x00kind" where kind is "d" for a
// directory, "t" for a target file and "l" for a legacy file.
func Fingerprint(t *FileTree) (string, error) {
	records := make([]string, 0)
	collectRecords(t, "", &records)
	sort.Strings(records)

	switch len(records) {
	case 0:
		root, err := hash.XXHashFunc([]byte("empty-tree"))
		if err != nil {
			return "", fmt.Errorf("failed to hash empty tree: %w", err)
		}
		return hex.EncodeToString(root), nil
	case 1:
		// go-merkletree needs at least two leaves
		root, err := hash.XXHashFunc([]byte(records[0]))
		if err != nil {
			return "", fmt.Errorf("failed to hash single entry: %w", err)
		}
		return hex.EncodeToString(root), nil
	}

	blocks := make([]mt.DataBlock, 0, len(records))
	for _, r := range records {
		blocks = append(blocks, entryBlock(r))
	}

	tree, err := mt.New(&mt.Config{
		HashFunc: hash.XXHashFunc,
		Mode:     mt.ModeTreeBuild,
	}, blocks)
	if err != nil {
		return "", fmt.Errorf("failed to build merkle tree: %w", err)
	}

	return hex.EncodeToString(tree.Root), nil
}

func collectRecords(t *FileTree, prefix string, records *[]string) {
	for name, isTarget := range t.Files {
		kind := "l"
		if isTarget {
			kind = "t"
		}
		*records = append(*records, path.Join(prefix, name)+"\x00"+kind)
	}
	for name, child := range t.Directories {
		rel := path.Join(prefix, name)
		*records = append(*records, rel+"\x00d")
		collectRecords(child, rel, records)
	}
}
