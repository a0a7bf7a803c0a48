package patterns

import (
	"strings"
	"testing"

	"github.com/mobanhawi/dux/internal/config"
)

func rule(name, pattern string, cat config.InsightCategory, applyTo config.ApplyTo) config.PatternRule {
	return config.PatternRule{Name: name, Pattern: pattern, Category: cat, ApplyTo: applyTo}
}

func TestExpandBraces(t *testing.T) {
	got := ExpandBraces("**/*.{swp,bak}")
	want := []string{"**/*.swp", "**/*.bak"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestExpandBraces_NoGroup(t *testing.T) {
	got := ExpandBraces("**/node_modules")
	if len(got) != 1 || got[0] != "**/node_modules" {
		t.Fatalf("got %v", got)
	}
}

func TestMatchAll_ExactTier(t *testing.T) {
	r := rule("nm", "**/node_modules", config.BuildArtifact, config.ApplyDir)
	rs := CompileRuleSet([]config.PatternRule{r}, nil)
	got := MatchAll(rs, "/home/user/project/node_modules", "node_modules", true, "/home/user/project/node_modules")
	if len(got) != 1 || got[0].Name != "nm" {
		t.Fatalf("got %v", got)
	}
}

func TestMatchAll_ContainsTier(t *testing.T) {
	r := rule("tmp", "**/tmp/**", config.Temp, config.ApplyBoth)
	rs := CompileRuleSet([]config.PatternRule{r}, nil)
	got := MatchAll(rs, "/var/tmp/foo", "foo", false, "/var/tmp/foo")
	if len(got) != 1 || got[0].Name != "tmp" {
		t.Fatalf("got %v", got)
	}
}

func TestMatchAll_ContainsTier_EndOfPath(t *testing.T) {
	r := rule("tmp", "**/tmp/**", config.Temp, config.ApplyBoth)
	rs := CompileRuleSet([]config.PatternRule{r}, nil)
	got := MatchAll(rs, "/a/tmp", "tmp", true, "/a/tmp")
	if len(got) != 1 || got[0].Name != "tmp" {
		t.Fatalf("got %v", got)
	}
}

func TestMatchAll_EndsWithTier(t *testing.T) {
	r := rule("log", "**/*.log", config.Temp, config.ApplyFile)
	rs := CompileRuleSet([]config.PatternRule{r}, nil)
	got := MatchAll(rs, "/var/log/app.log", "app.log", false, "/var/log/app.log")
	if len(got) != 1 || got[0].Name != "log" {
		t.Fatalf("got %v", got)
	}
}

func TestMatchAll_EndsWithTier_MidPathDoesNotMatch(t *testing.T) {
	r := rule("log", "**/*.log", config.Temp, config.ApplyFile)
	rs := CompileRuleSet([]config.PatternRule{r}, nil)
	got := MatchAll(rs, "/var/app.log.d/config", "config", false, "/var/app.log.d/config")
	if len(got) != 0 {
		t.Fatalf("got %v, want no match", got)
	}
}

func TestMatchAll_StartsWithTier(t *testing.T) {
	r := rule("cache-prefix", "**/cache_*", config.Cache, config.ApplyDir)
	rs := CompileRuleSet([]config.PatternRule{r}, nil)
	got := MatchAll(rs, "/a/cache_v2", "cache_v2", true, "/a/cache_v2")
	if len(got) != 1 || got[0].Name != "cache-prefix" {
		t.Fatalf("got %v", got)
	}
}

func TestMatchAll_GlobFallback(t *testing.T) {
	r := rule("weird", "**/a?c", config.Cache, config.ApplyFile)
	rs := CompileRuleSet([]config.PatternRule{r}, nil)
	got := MatchAll(rs, "/x/abc", "abc", false, "/x/abc")
	if len(got) != 1 || got[0].Name != "weird" {
		t.Fatalf("got %v", got)
	}
}

func TestMatchAll_AdditionalPaths(t *testing.T) {
	r := rule("user-cache", "__additional__", config.Cache, config.ApplyBoth)
	rs := CompileRuleSet(nil, []AdditionalPath{{Base: "/home/user/.cache", Rule: &r}})
	got := MatchAll(rs, "/home/user/.cache/pip", "pip", true, "/home/user/.cache/pip")
	if len(got) != 1 || got[0].Name != "user-cache" {
		t.Fatalf("got %v", got)
	}
}

func TestMatchAll_FirstMatchPerCategoryWins(t *testing.T) {
	a := rule("a", "**/tmp", config.Temp, config.ApplyDir)
	b := rule("b", "**/tmp", config.Temp, config.ApplyDir)
	rs := CompileRuleSet([]config.PatternRule{a, b}, nil)
	got := MatchAll(rs, "/x/tmp", "tmp", true, "/x/tmp")
	if len(got) != 1 {
		t.Fatalf("got %v, want exactly one match for the shared category", got)
	}
}

func TestMatchAll_CrossCategoryDuplicatesKept(t *testing.T) {
	a := rule("a", "**/build", config.BuildArtifact, config.ApplyDir)
	b := rule("b", "**/build", config.Cache, config.ApplyDir)
	rs := CompileRuleSet([]config.PatternRule{a, b}, nil)
	got := MatchAll(rs, "/x/build", "build", true, "/x/build")
	if len(got) != 2 {
		t.Fatalf("got %v, want both categories represented", got)
	}
}
