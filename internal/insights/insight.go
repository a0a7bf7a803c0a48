// Package insights implements the DFS-driven insight generator (§4.I):
// matching every node against the compiled ruleset, retaining the largest
// per-category hits in bounded heaps, and producing a sorted InsightBundle.
package insights

import "github.com/mobanhawi/dux/internal/config"

// Insight is one reclaimable-space finding (§3).
type Insight struct {
	Path      string
	SizeBytes int64
	DiskUsage int64
	Category  config.InsightCategory
	Summary   string
	IsDir     bool
}

// CategoryStats is the unbounded aggregate for one category — every match
// contributes here, unlike the bounded per-category heap used for display.
type CategoryStats struct {
	Count     int
	SizeBytes int64
	DiskUsage int64
	Paths     map[string]struct{}
}

func newCategoryStats() *CategoryStats {
	return &CategoryStats{Paths: make(map[string]struct{})}
}

func (cs *CategoryStats) record(in Insight) {
	cs.Count++
	cs.SizeBytes += in.SizeBytes
	cs.DiskUsage += in.DiskUsage
	cs.Paths[in.Path] = struct{}{}
}

// InsightBundle is the result of one GenerateInsights call (§3).
type InsightBundle struct {
	Insights   []Insight
	ByCategory map[config.InsightCategory]*CategoryStats
}

// FilterInsights returns the subset of bundle.Insights whose category is in
// categories (§4.I), preserving the bundle's existing disk-usage-descending
// order.
func FilterInsights(bundle *InsightBundle, categories map[config.InsightCategory]bool) []Insight {
	var out []Insight
	for _, in := range bundle.Insights {
		if categories[in.Category] {
			out = append(out, in)
		}
	}
	return out
}
