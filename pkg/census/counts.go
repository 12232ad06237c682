package census

import (
	"cmp"
	"slices"
)

// ExtCounts maps an extension token to the number of files carrying it.
type ExtCounts map[string]int

// ExtCount is one entry of ExtCounts.
type ExtCount struct {
	Ext   string `json:"ext" yaml:"ext"`
	Count int    `json:"count" yaml:"count"`
}

func (c ExtCounts) Add(ext string, n int) {
	c[ext] += n
}

// Merge adds every count of other into c.
func (c ExtCounts) Merge(other ExtCounts) {
	for ext, n := range other {
		c[ext] += n
	}
}

func (c ExtCounts) Total() (total int) {
	for _, n := range c {
		total += n
	}
	return total
}

func (c ExtCounts) Clone() ExtCounts {
	clone := make(ExtCounts, len(c))
	for ext, n := range c {
		clone[ext] = n
	}
	return clone
}

// MostCommon returns up to k entries ordered by descending count, ties by token.
// k < 0 returns all entries.
func (c ExtCounts) MostCommon(k int) []ExtCount {
	all := make([]ExtCount, 0, len(c))
	for ext, n := range c {
		all = append(all, ExtCount{Ext: ext, Count: n})
	}
	slices.SortFunc(all, func(a, b ExtCount) int {
		if a.Count != b.Count {
			return cmp.Compare(b.Count, a.Count)
		}
		return cmp.Compare(a.Ext, b.Ext)
	})
	if k >= 0 && k < len(all) {
		all = all[:k]
	}
	return all
}
