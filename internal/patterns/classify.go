package patterns

import "strings"

// matcherKind selects which fast operation a compiled pattern uses.
type matcherKind int8

const (
	// kindContains matches "/segment/" anywhere in the path (**/segment/**).
	kindContains matcherKind = iota
	// kindEndsWith matches a basename suffix (**/*.ext).
	kindEndsWith
	// kindStartsWith matches a basename prefix (**/prefix*).
	kindStartsWith
	// kindExact matches a basename exactly (**/name).
	kindExact
	// kindGlob falls back to full fnmatch-style glob matching.
	kindGlob
)

// matcher is the result of classifying one expanded glob pattern. value and
// alt are both lowercased so callers can match against pre-lowercased
// paths. For CONTAINS, value matches anywhere and alt matches only when the
// path ends with the bare segment (no trailing separator). For ENDSWITH,
// STARTSWITH and EXACT, value carries the literal and alt is empty; the
// builder registers an ENDSWITH suffix as an end-only automaton key.
type matcher struct {
	kind  matcherKind
	value string
	alt   string
}

func hasGlobChars(s string) bool {
	return strings.ContainsAny(s, "*?[")
}

// classify turns one expanded pattern into a matcher. Patterns not shaped
// like "**/..." always fall back to kindGlob, matching the original
// fnmatch-based engine's behavior for arbitrary user patterns.
func classify(pattern string) matcher {
	if !strings.HasPrefix(pattern, "**/") {
		return matcher{kind: kindGlob, value: strings.ToLower(pattern)}
	}

	rest := pattern[3:]

	if strings.HasSuffix(rest, "/**") {
		middle := rest[:len(rest)-3]
		if !hasGlobChars(middle) {
			mid := strings.ToLower(middle)
			return matcher{kind: kindContains, value: "/" + mid + "/", alt: "/" + mid}
		}
		return matcher{kind: kindGlob, value: strings.ToLower(pattern)}
	}

	if strings.HasPrefix(rest, "*") && !hasGlobChars(rest[1:]) {
		return matcher{kind: kindEndsWith, value: strings.ToLower(rest[1:])}
	}

	if strings.HasSuffix(rest, "*") && !hasGlobChars(rest[:len(rest)-1]) {
		return matcher{kind: kindStartsWith, value: strings.ToLower(rest[:len(rest)-1])}
	}

	if !hasGlobChars(rest) {
		return matcher{kind: kindExact, value: strings.ToLower(rest)}
	}

	return matcher{kind: kindGlob, value: strings.ToLower(pattern)}
}
