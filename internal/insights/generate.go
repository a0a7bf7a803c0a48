package insights

import (
	"sort"
	"strings"

	"github.com/mobanhawi/dux/internal/config"
	"github.com/mobanhawi/dux/internal/patterns"
	"github.com/mobanhawi/dux/internal/scanner"
)

// frame is one entry on the explicit DFS stack: the node to visit and
// whether an ancestor already matched as TEMP or CACHE (in which case this
// node is skipped outright — its size already counts toward the parent).
type frame struct {
	node          *scanner.ScanNode
	inTempOrCache bool
}

// GenerateInsights walks root and produces an InsightBundle (§4.I):
//  1. additional_paths become synthetic PatternRules so they flow through
//     the same matcher as glob patterns.
//  2. every rule is compiled into one CompiledRuleSet.
//  3. an explicit-stack DFS matches each node, recording hits into both an
//     unbounded per-category aggregate and a bounded per-category heap.
//  4. the heaps are drained into one flat list, sorted by disk usage
//     descending, deduplicated by path within each category.
func GenerateInsights(root *scanner.ScanNode, cfg config.AppConfig) (*InsightBundle, error) {
	additionalPaths, err := buildAdditionalPathRules(cfg)
	if err != nil {
		return nil, err
	}

	ruleset := patterns.CompileRuleSet(cfg.Patterns, additionalPaths)

	heaps := make(map[config.InsightCategory]*insightHeap)
	seen := make(map[config.InsightCategory]map[string]int64)
	byCategory := make(map[config.InsightCategory]*CategoryStats)

	ensureCategory := func(cat config.InsightCategory) {
		if _, ok := heaps[cat]; !ok {
			heaps[cat] = &insightHeap{}
			seen[cat] = make(map[string]int64)
			byCategory[cat] = newCategoryStats()
		}
	}
	for _, cat := range config.AllCategories {
		ensureCategory(cat)
	}

	record := func(in Insight) {
		ensureCategory(in.Category)
		byCategory[in.Category].record(in)
		heapPush(heaps[in.Category], seen[in.Category], in, cfg.MaxInsightsPerCategory)
	}

	stack := []frame{{node: root, inTempOrCache: false}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.inTempOrCache {
			continue
		}

		node := f.node
		lpath := strings.ToLower(node.Path)
		lbase := strings.ToLower(node.Name)

		matchedRules := patterns.MatchAll(ruleset, lpath, lbase, node.IsDir(), node.Path)

		localInTempOrCache := false
		var buildRule *config.PatternRule
		for _, rule := range matchedRules {
			record(insightFromRule(node, rule))
			if rule.Category == config.Temp || rule.Category == config.Cache {
				localInTempOrCache = true
			}
			if rule.StopRecursion {
				buildRule = rule
			}
		}

		if node.IsDir() {
			if buildRule != nil {
				continue
			}
			// Push in reverse so the LIFO stack visits children in their
			// original (finalize-sorted, largest-disk-usage-first) order.
			for i := len(node.Children) - 1; i >= 0; i-- {
				stack = append(stack, frame{node: node.Children[i], inTempOrCache: localInTempOrCache})
			}
		}
	}

	allInsights := mergeHeaps(heaps)

	return &InsightBundle{Insights: allInsights, ByCategory: byCategory}, nil
}

func insightFromRule(node *scanner.ScanNode, rule *config.PatternRule) Insight {
	return Insight{
		Path:      node.Path,
		SizeBytes: node.SizeBytes,
		DiskUsage: node.DiskUsage,
		Category:  rule.Category,
		Summary:   rule.Name,
		IsDir:     node.IsDir(),
	}
}

// mergeHeaps drains every category's heap into a single list, descending by
// disk usage within each category and deduplicated by path (the lazy-dedup
// strategy's second phase — see heapPush), then sorts the whole thing by
// disk usage descending. Cross-category duplicates — the same path
// appearing once per matching category — are kept intentionally, so a
// per-category filtered view stays internally consistent.
func mergeHeaps(heaps map[config.InsightCategory]*insightHeap) []Insight {
	cats := make([]config.InsightCategory, 0, len(heaps))
	for cat := range heaps {
		cats = append(cats, cat)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })

	var all []Insight
	for _, cat := range cats {
		entries := append([]heapEntry(nil), (*heaps[cat])...)
		sort.Slice(entries, func(i, j int) bool {
			if entries[i].diskUsage != entries[j].diskUsage {
				return entries[i].diskUsage > entries[j].diskUsage
			}
			return entries[i].path < entries[j].path
		})
		catSeen := make(map[string]struct{})
		for _, e := range entries {
			if _, ok := catSeen[e.path]; ok {
				continue
			}
			catSeen[e.path] = struct{}{}
			all = append(all, e.insight)
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].DiskUsage != all[j].DiskUsage {
			return all[i].DiskUsage > all[j].DiskUsage
		}
		return all[i].Path < all[j].Path
	})
	return all
}

// buildAdditionalPathRules wraps each configured additional_paths entry as
// a synthetic PatternRule matched via the additional-paths tier (§4.H),
// normalizing each base the same way the main pipeline normalizes paths:
// "~" expansion, trailing-slash trim, lowercase.
func buildAdditionalPathRules(cfg config.AppConfig) ([]patterns.AdditionalPath, error) {
	var out []patterns.AdditionalPath
	for category, sources := range cfg.AdditionalPaths {
		for _, raw := range sources {
			expanded, err := config.ExpandUserPath(raw)
			if err != nil {
				return nil, err
			}
			base := strings.ToLower(strings.TrimRight(expanded, "/"))
			rule := config.PatternRule{
				Name:     "Additional " + string(category) + " path",
				Pattern:  base,
				Category: category,
				ApplyTo:  config.ApplyBoth,
			}
			out = append(out, patterns.AdditionalPath{Base: base, Rule: &rule})
		}
	}
	return out, nil
}
