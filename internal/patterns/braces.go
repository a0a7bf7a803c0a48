// Package patterns implements the glob compilation and matching engine
// (§4.G/§4.H): brace expansion, matcher-kind classification, and the
// tiered CompiledRuleSet/MatchAll dispatch.
package patterns

import "strings"

// ExpandBraces expands the first "{a,b,c}" group in pattern into one
// pattern per choice, recursively expanding any further groups in each
// result. A pattern with no brace group expands to itself.
func ExpandBraces(pattern string) []string {
	start := strings.IndexByte(pattern, '{')
	if start == -1 {
		return []string{pattern}
	}
	end := strings.IndexByte(pattern[start+1:], '}')
	if end == -1 {
		return []string{pattern}
	}
	end += start + 1

	prefix := pattern[:start]
	suffix := pattern[end+1:]
	choices := strings.Split(pattern[start+1:end], ",")

	var expanded []string
	for _, choice := range choices {
		expanded = append(expanded, ExpandBraces(prefix+choice+suffix)...)
	}
	return expanded
}
