// Package config carries the user-facing configuration model (§3/§6):
// PatternRule, AppConfig, and the small enums they're built from.
package config

import "strings"

// InsightCategory classifies what kind of reclaimable space a PatternRule
// or Insight represents. It is an open string type rather than a closed Go
// enum so additional_paths keys and user-authored rules round-trip through
// JSON without a lookup table.
type InsightCategory string

const (
	// Temp marks ephemeral scratch data (os temp dirs, swap files).
	Temp InsightCategory = "temp"
	// Cache marks regenerable cache data (package manager caches, browser
	// caches).
	Cache InsightCategory = "cache"
	// BuildArtifact marks build output that a clean/rebuild regenerates.
	BuildArtifact InsightCategory = "build_artifact"
)

// AllCategories lists the built-in categories, used to seed the insight
// generator's per-category heaps/stats before traversal so every category
// appears in a bundle even when it has zero matches. A rule carrying a
// category outside this list is still recorded faithfully — the insight
// generator creates its heap/stats lazily on first match — this list is
// only the guaranteed-present baseline.
var AllCategories = []InsightCategory{Temp, Cache, BuildArtifact}

// Label renders the category for display, e.g. "Build Artifact".
func (c InsightCategory) Label() string {
	words := strings.Split(string(c), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// ApplyTo is a bitflag selecting whether a PatternRule matches files,
// directories, or both.
type ApplyTo int8

const (
	// ApplyFile matches regular files only.
	ApplyFile ApplyTo = 1 << iota
	// ApplyDir matches directories only.
	ApplyDir
	// ApplyBoth matches both.
	ApplyBoth = ApplyFile | ApplyDir
)

// ApplyToFromString parses the JSON "applyTo" string, defaulting to
// ApplyBoth for anything unrecognized (matching the Python original's
// permissive from_str).
func ApplyToFromString(s string) ApplyTo {
	switch s {
	case "file":
		return ApplyFile
	case "dir":
		return ApplyDir
	default:
		return ApplyBoth
	}
}

// String renders ApplyTo back to its JSON form.
func (a ApplyTo) String() string {
	switch a {
	case ApplyFile:
		return "file"
	case ApplyDir:
		return "dir"
	default:
		return "both"
	}
}

// PatternRule is one user- or default-authored matching rule (§6).
type PatternRule struct {
	Name          string
	Pattern       string
	Category      InsightCategory
	ApplyTo       ApplyTo
	StopRecursion bool
}

// AppConfig is the full set of user-tunable knobs (§3). Six integer fields
// carry an enforced minimum, applied both when loading from JSON and when
// a caller sets them directly via Clamp.
type AppConfig struct {
	Patterns               []PatternRule
	AdditionalPaths        map[InsightCategory][]string
	MaxDepth               *int
	ScanWorkers            int
	TopCount               int
	PageSize               int
	MaxInsightsPerCategory int
	OverviewTopDirs        int
	ScrollStep             int
}

// intField is a (jsonKey, minimum) pair mirroring dux's _INT_FIELDS table.
// Clamp reads its floors from intFields; JSON decoding in loader.go keeps
// its own table listing the same keys and floors.
type intField struct {
	jsonKey string
	minimum int
}

var intFields = []intField{
	{"scanWorkers", 1},
	{"topCount", 1},
	{"pageSize", 10},
	{"maxInsightsPerCategory", 10},
	{"overviewTopDirs", 5},
	{"scrollStep", 1},
}

func clamp(value, minimum int) int {
	if value < minimum {
		return minimum
	}
	return value
}

// Clamp enforces every integer field's minimum in place, for configs built
// or mutated outside of LoadConfig (e.g. CLI flag overrides).
func (c *AppConfig) Clamp() {
	c.ScanWorkers = clamp(c.ScanWorkers, intFields[0].minimum)
	c.TopCount = clamp(c.TopCount, intFields[1].minimum)
	c.PageSize = clamp(c.PageSize, intFields[2].minimum)
	c.MaxInsightsPerCategory = clamp(c.MaxInsightsPerCategory, intFields[3].minimum)
	c.OverviewTopDirs = clamp(c.OverviewTopDirs, intFields[4].minimum)
	c.ScrollStep = clamp(c.ScrollStep, intFields[5].minimum)
}
