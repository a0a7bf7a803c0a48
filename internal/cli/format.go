// Package cli wires the cobra command tree: a root command that launches
// the interactive browser and a scan subcommand for headless/scriptable
// use (§ AMBIENT STACK).
package cli

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	linebreak "github.com/dgryski/go-linebreak"

	"github.com/mobanhawi/dux/internal/config"
	"github.com/mobanhawi/dux/internal/insights"
	"github.com/mobanhawi/dux/internal/scanner"
)

const reportWidth = 100

// formatBytes renders a byte count in IEC units (e.g. "1.0 KiB"); the TUI
// uses SI units instead.
func formatBytes(n int64) string {
	return humanize.IBytes(uint64(n))
}

// wrap wraps long text (insight summaries, paths) to reportWidth instead of
// letting a plain-text report cut mid-word; the TUI has its own truncation
// and doesn't need this.
func wrap(text string) string {
	return linebreak.Wrap(text, reportWidth, reportWidth)
}

// RenderSummary writes a plain-text report equivalent to dux's Rich-based
// render_summary: a stats panel, the top disk-usage consumers, and a
// per-category insights table, sorted by size descending within each
// section. Grounded on dux/services/summary.py's three-section shape;
// text/tabwriter stands in for Rich's Table here, the same column-aligning
// role it plays wherever a Go CLI needs tabular stdout without a curses dep.
func RenderSummary(w io.Writer, snapshot *scanner.ScanSnapshot, bundle *insights.InsightBundle, cfg config.AppConfig) error {
	stats := snapshot.Stats.Snapshot()

	fmt.Fprintf(w, "Scan summary for %s\n", snapshot.Root.Path)
	fmt.Fprintf(w, "  files: %d   dirs: %d   errors: %d   scanned: %s\n\n",
		stats.FilesScanned, stats.DirsScanned, stats.Errors, formatBytes(stats.BytesScanned))

	tw := tabwriter.NewWriter(w, 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, "TOP SPACE CONSUMERS")
	fmt.Fprintln(tw, "SIZE\tPATH")
	top := scanner.TopNodes(snapshot.Root, cfg.OverviewTopDirs, nil)
	for _, node := range top {
		fmt.Fprintf(tw, "%s\t%s\n", formatBytes(node.DiskUsage), node.Path)
	}
	fmt.Fprintln(tw)
	if err := tw.Flush(); err != nil {
		return err
	}

	return renderInsightsTable(w, bundle)
}

// renderInsightsTable prints every category's retained insights, largest
// first within each category, category order alphabetical for a stable
// report across runs.
func renderInsightsTable(w io.Writer, bundle *insights.InsightBundle) error {
	tw := tabwriter.NewWriter(w, 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, "INSIGHTS")
	fmt.Fprintln(tw, "CATEGORY\tSIZE\tPATH\tSUMMARY")

	cats := make([]config.InsightCategory, 0, len(bundle.ByCategory))
	for cat := range bundle.ByCategory {
		cats = append(cats, cat)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })

	for _, cat := range cats {
		items := insights.FilterInsights(bundle, map[config.InsightCategory]bool{cat: true})
		for _, in := range items {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", cat.Label(), formatBytes(in.DiskUsage), in.Path, wrap(in.Summary))
		}
	}
	return tw.Flush()
}
