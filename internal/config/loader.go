package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultConfigPath mirrors dux/config/loader.py's CONFIG_PATH constant.
const DefaultConfigPath = "~/.config/dux/config.json"

// LoadConfig reads path (DefaultConfigPath if empty), returning DefaultConfig
// untouched when no file exists yet. This performs no JSON Schema
// validation — a malformed file is reported as a plain error, the same
// shape as dux's load_config Err branch.
func LoadConfig(path string) (AppConfig, error) {
	if path == "" {
		path = DefaultConfigPath
	}
	resolved, err := expandUser(path)
	if err != nil {
		return AppConfig{}, err
	}
	raw, err := os.ReadFile(resolved)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return AppConfig{}, fmt.Errorf("reading config at %s: %w", resolved, err)
	}

	var data map[string]json.RawMessage
	if err := json.Unmarshal(raw, &data); err != nil {
		return AppConfig{}, fmt.Errorf("config at %s must be a JSON object: %w", resolved, err)
	}
	return fromJSONFields(data, DefaultConfig())
}

// ExpandUserPath expands a leading "~" the same way LoadConfig resolves its
// own path argument. Exported for additional_paths normalization in
// internal/insights, which needs the identical expansion rule.
func ExpandUserPath(path string) (string, error) {
	return expandUser(path)
}

func expandUser(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}

// wirePatternRule is the JSON shape of a PatternRule (§6).
type wirePatternRule struct {
	Name          string `json:"name"`
	Pattern       string `json:"pattern"`
	Category      string `json:"category"`
	ApplyTo       string `json:"applyTo"`
	StopRecursion bool   `json:"stopRecursion"`
}

func (r PatternRule) toWire() wirePatternRule {
	return wirePatternRule{
		Name:          r.Name,
		Pattern:       r.Pattern,
		Category:      string(r.Category),
		ApplyTo:       r.ApplyTo.String(),
		StopRecursion: r.StopRecursion,
	}
}

func (w wirePatternRule) toRule() PatternRule {
	return PatternRule{
		Name:          w.Name,
		Pattern:       w.Pattern,
		Category:      InsightCategory(w.Category),
		ApplyTo:       ApplyToFromString(w.ApplyTo),
		StopRecursion: w.StopRecursion,
	}
}

// fromJSONFields builds an AppConfig by overlaying whichever top-level keys
// are present in data onto defaults, field by field — the same
// key-present-or-fall-back-to-default semantics as AppConfig.from_dict.
func fromJSONFields(data map[string]json.RawMessage, defaults AppConfig) (AppConfig, error) {
	cfg := defaults

	if raw, ok := data["maxDepth"]; ok {
		var depth *int
		if err := json.Unmarshal(raw, &depth); err != nil {
			return AppConfig{}, fmt.Errorf("maxDepth: %w", err)
		}
		cfg.MaxDepth = depth
	}

	if raw, ok := data["additionalPaths"]; ok {
		var m map[string][]string
		if err := json.Unmarshal(raw, &m); err != nil {
			return AppConfig{}, fmt.Errorf("additionalPaths: %w", err)
		}
		paths := make(map[InsightCategory][]string, len(m))
		for k, v := range m {
			paths[InsightCategory(k)] = v
		}
		cfg.AdditionalPaths = paths
	}

	if raw, ok := data["patterns"]; ok {
		var wire []wirePatternRule
		if err := json.Unmarshal(raw, &wire); err != nil {
			return AppConfig{}, fmt.Errorf("patterns: %w", err)
		}
		rules := make([]PatternRule, len(wire))
		for i, w := range wire {
			rules[i] = w.toRule()
		}
		cfg.Patterns = rules
	}

	for _, f := range []struct {
		key    string
		target *int
		min    int
	}{
		{"scanWorkers", &cfg.ScanWorkers, 1},
		{"topCount", &cfg.TopCount, 1},
		{"pageSize", &cfg.PageSize, 10},
		{"maxInsightsPerCategory", &cfg.MaxInsightsPerCategory, 10},
		{"overviewTopDirs", &cfg.OverviewTopDirs, 5},
		{"scrollStep", &cfg.ScrollStep, 1},
	} {
		if raw, ok := data[f.key]; ok {
			var v int
			if err := json.Unmarshal(raw, &v); err != nil {
				return AppConfig{}, fmt.Errorf("%s: %w", f.key, err)
			}
			*f.target = clamp(v, f.min)
		} else {
			*f.target = clamp(*f.target, f.min)
		}
	}

	return cfg, nil
}

// wireAppConfig is the JSON shape of AppConfig, field order matching
// dux's to_dict for a stable, readable sample file.
type wireAppConfig struct {
	AdditionalPaths        map[string][]string `json:"additionalPaths"`
	MaxDepth               *int                `json:"maxDepth"`
	ScanWorkers            int                 `json:"scanWorkers"`
	TopCount               int                 `json:"topCount"`
	PageSize               int                 `json:"pageSize"`
	MaxInsightsPerCategory int                 `json:"maxInsightsPerCategory"`
	OverviewTopDirs        int                 `json:"overviewTopDirs"`
	ScrollStep             int                 `json:"scrollStep"`
	Patterns               []wirePatternRule   `json:"patterns"`
}

func toWire(c AppConfig) wireAppConfig {
	additional := make(map[string][]string, len(c.AdditionalPaths))
	for cat, paths := range c.AdditionalPaths {
		additional[string(cat)] = paths
	}
	patterns := make([]wirePatternRule, len(c.Patterns))
	for i, r := range c.Patterns {
		patterns[i] = r.toWire()
	}
	return wireAppConfig{
		AdditionalPaths:        additional,
		MaxDepth:               c.MaxDepth,
		ScanWorkers:            c.ScanWorkers,
		TopCount:               c.TopCount,
		PageSize:               c.PageSize,
		MaxInsightsPerCategory: c.MaxInsightsPerCategory,
		OverviewTopDirs:        c.OverviewTopDirs,
		ScrollStep:             c.ScrollStep,
		Patterns:               patterns,
	}
}

// SampleConfigJSON renders DefaultConfig as indented JSON, for `dux config
// sample` (mirrors dux/config/loader.py::sample_config_json).
func SampleConfigJSON() (string, error) {
	out, err := json.MarshalIndent(toWire(DefaultConfig()), "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}
