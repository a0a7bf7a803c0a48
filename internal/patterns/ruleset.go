package patterns

import (
	"github.com/mobanhawi/dux/internal/ahocorasick"
	"github.com/mobanhawi/dux/internal/config"
)

// acEntry is the value stored in the Aho-Corasick automaton for one key:
// which rule it belongs to, and whether the match is only accepted when it
// ends at the last byte of the searched path.
type acEntry struct {
	rule    *config.PatternRule
	endOnly bool
}

// byKind holds every compiled rule applicable to one node kind (file or
// dir), indexed by matcher tier so MatchAll never branches on pattern
// shape at match time.
type byKind struct {
	exact      map[string][]*config.PatternRule
	ac         *ahocorasick.Automaton
	startswith []prefixRule
	glob       []globRule
	additional []additionalRule
}

type prefixRule struct {
	prefix string
	rule   *config.PatternRule
}

type globRule struct {
	pattern string
	rule    *config.PatternRule
}

type additionalRule struct {
	base string
	rule *config.PatternRule
}

// byKindBuilder accumulates entries for one node kind during compilation.
type byKindBuilder struct {
	exact      map[string][]*config.PatternRule
	acEntries  []acPreEntry
	startswith []prefixRule
	glob       []globRule
}

type acPreEntry struct {
	value, alt string
	rule       *config.PatternRule
}

func (b *byKindBuilder) add(m matcher, rule *config.PatternRule) {
	switch m.kind {
	case kindExact:
		if b.exact == nil {
			b.exact = make(map[string][]*config.PatternRule)
		}
		b.exact[m.value] = append(b.exact[m.value], rule)
	case kindContains:
		b.acEntries = append(b.acEntries, acPreEntry{value: m.value, alt: m.alt, rule: rule})
	case kindEndsWith:
		// Empty value tells buildAC to skip the any-position key; only the
		// end-only alt key (the suffix) is registered.
		b.acEntries = append(b.acEntries, acPreEntry{value: "", alt: m.value, rule: rule})
	case kindStartsWith:
		b.startswith = append(b.startswith, prefixRule{prefix: m.value, rule: rule})
	default:
		b.glob = append(b.glob, globRule{pattern: m.value, rule: rule})
	}
}

func (b *byKindBuilder) build() byKind {
	return byKind{
		exact:      b.exact,
		ac:         buildAC(b.acEntries),
		startswith: b.startswith,
		glob:       b.glob,
	}
}

// buildAC merges every CONTAINS/ENDSWITH entry into one automaton keyed by
// matched substring, each key's value carrying every (rule, endOnly) pair
// that registered it.
func buildAC(entries []acPreEntry) *ahocorasick.Automaton {
	if len(entries) == 0 {
		return nil
	}
	grouped := make(map[string][]acEntry)
	for _, e := range entries {
		if e.value != "" {
			grouped[e.value] = append(grouped[e.value], acEntry{rule: e.rule, endOnly: false})
		}
		if e.alt != "" {
			grouped[e.alt] = append(grouped[e.alt], acEntry{rule: e.rule, endOnly: true})
		}
	}
	ac := ahocorasick.New()
	for key, val := range grouped {
		ac.AddWord(key, val)
	}
	ac.MakeAutomaton()
	return ac
}

// CompiledRuleSet holds every pattern rule, pre-split by file/dir (§4.H).
type CompiledRuleSet struct {
	forFile byKind
	forDir  byKind
}

// AdditionalPath is one user-configured directory that should be matched by
// literal prefix rather than a glob, e.g. an expanded "~/.cache" entry.
type AdditionalPath struct {
	Base string
	Rule *config.PatternRule
}

// CompileRuleSet builds a CompiledRuleSet from every PatternRule plus any
// pre-normalized additional-path entries (§4.H). Rules with ApplyBoth are
// distributed into both the file and dir builders at compile time so
// MatchAll never branches on apply_to.
func CompileRuleSet(rules []config.PatternRule, additionalPaths []AdditionalPath) *CompiledRuleSet {
	fileBuilder := &byKindBuilder{}
	dirBuilder := &byKindBuilder{}

	for i := range rules {
		rule := &rules[i]
		for _, expanded := range ExpandBraces(rule.Pattern) {
			m := classify(expanded)
			if rule.ApplyTo&config.ApplyFile != 0 {
				fileBuilder.add(m, rule)
			}
			if rule.ApplyTo&config.ApplyDir != 0 {
				dirBuilder.add(m, rule)
			}
		}
	}

	rs := &CompiledRuleSet{forFile: fileBuilder.build(), forDir: dirBuilder.build()}

	for _, ap := range additionalPaths {
		if ap.Rule.ApplyTo&config.ApplyFile != 0 {
			rs.forFile.additional = append(rs.forFile.additional, additionalRule{base: ap.Base, rule: ap.Rule})
		}
		if ap.Rule.ApplyTo&config.ApplyDir != 0 {
			rs.forDir.additional = append(rs.forDir.additional, additionalRule{base: ap.Base, rule: ap.Rule})
		}
	}

	return rs
}

// MatchAll returns every matching rule for one node, at most one rule per
// category (first match wins), in tier order EXACT → CONTAINS/ENDSWITH →
// STARTSWITH → GLOB → additional paths (§4.H).
//
// lpath and lbase must already be lowercased; rawPath keeps its original
// case, since the additional-path tier compares it, without case folding,
// against each AdditionalPath.Base exactly as that Base was passed in.
func MatchAll(rs *CompiledRuleSet, lpath, lbase string, isDir bool, rawPath string) []*config.PatternRule {
	bk := rs.forFile
	if isDir {
		bk = rs.forDir
	}

	var matched []*config.PatternRule
	seen := make(map[config.InsightCategory]bool)
	try := func(rule *config.PatternRule) {
		if !seen[rule.Category] {
			seen[rule.Category] = true
			matched = append(matched, rule)
		}
	}

	if hits, ok := bk.exact[lbase]; ok {
		for _, rule := range hits {
			try(rule)
		}
	}

	if bk.ac != nil {
		lastIdx := len(lpath) - 1
		for _, m := range bk.ac.Iter(lpath) {
			entries := m.Value.([]acEntry)
			for _, e := range entries {
				if e.endOnly && m.Index != lastIdx {
					continue
				}
				try(e.rule)
			}
		}
	}

	for _, p := range bk.startswith {
		if len(lbase) >= len(p.prefix) && lbase[:len(p.prefix)] == p.prefix {
			try(p.rule)
		}
	}

	for _, g := range bk.glob {
		if matchSlow(g.pattern, lpath, lbase) {
			try(g.rule)
		}
	}

	for _, a := range bk.additional {
		if rawPath == a.base || (len(rawPath) > len(a.base) && rawPath[:len(a.base)+1] == a.base+"/") {
			try(a.rule)
		}
	}

	return matched
}
