package tree

// Totals counts every classified file in a subtree, including the direct
// files of interior directories that Aggregate leaves out.
type Totals struct {
	Target      int `json:"target"`
	Legacy      int `json:"legacy"`
	Directories int `json:"directories"`
}

func Summarize(t *FileTree) Totals {
	var totals Totals
	summarize(t, &totals)
	return totals
}

func summarize(t *FileTree, totals *Totals) {
	totals.Directories++
	for _, isTarget := range t.Files {
		if isTarget {
			totals.Target++
		} else {
			totals.Legacy++
		}
	}
	for _, child := range t.Directories {
		summarize(child, totals)
	}
}

func (t Totals) Files() int {
	return t.Target + t.Legacy
}

// Ratio is the unweighted share of target files over the whole subtree.
func (t Totals) Ratio() (float64, error) {
	if t.Files() == 0 {
		return 0, ErrNoClassifiedFiles
	}
	return float64(t.Target) / float64(t.Files()), nil
}
