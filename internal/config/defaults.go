package config

// DefaultConfig returns the built-in ruleset and knob values used when no
// config file exists yet, or a loaded file omits a field (§6). The pattern
// set covers the handful of directories virtually every project tree
// accumulates: VCS metadata, dependency caches, and build output.
func DefaultConfig() AppConfig {
	return AppConfig{
		Patterns: []PatternRule{
			{Name: "node_modules", Pattern: "**/node_modules/**", Category: BuildArtifact, ApplyTo: ApplyDir, StopRecursion: true},
			{Name: "git", Pattern: "**/.git/**", Category: Cache, ApplyTo: ApplyDir, StopRecursion: true},
			{Name: "pycache", Pattern: "**/__pycache__/**", Category: Cache, ApplyTo: ApplyDir, StopRecursion: true},
			{Name: "go-build-cache", Pattern: "**/{.cache,go-build}/**", Category: Cache, ApplyTo: ApplyDir},
			{Name: "target", Pattern: "**/target/**", Category: BuildArtifact, ApplyTo: ApplyDir, StopRecursion: true},
			{Name: "dist-build", Pattern: "**/{dist,build}/**", Category: BuildArtifact, ApplyTo: ApplyDir},
			{Name: "vendor", Pattern: "**/vendor/**", Category: BuildArtifact, ApplyTo: ApplyDir},
			{Name: "tmp-suffix", Pattern: "**/*.tmp", Category: Temp, ApplyTo: ApplyFile},
			{Name: "log-suffix", Pattern: "**/*.log", Category: Temp, ApplyTo: ApplyFile},
			{Name: "ds-store", Pattern: "**/.DS_Store", Category: Temp, ApplyTo: ApplyFile},
		},
		AdditionalPaths:        map[InsightCategory][]string{},
		MaxDepth:               nil,
		ScanWorkers:            4,
		TopCount:               15,
		PageSize:               100,
		MaxInsightsPerCategory: 1000,
		OverviewTopDirs:        100,
		ScrollStep:             20,
	}
}
