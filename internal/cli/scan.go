package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/mobanhawi/dux/internal/config"
	"github.com/mobanhawi/dux/internal/insights"
	"github.com/mobanhawi/dux/internal/scanner"
)

const progressThrottle = 50 * time.Millisecond

func newScanCommand() *cobra.Command {
	var (
		maxDepth   int
		workers    int
		configPath string
		categories []string
		noProgress bool
	)

	cmd := &cobra.Command{
		Use:   "scan <path>",
		Short: "Scan a directory tree and print a summary report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if maxDepth >= 0 {
				d := maxDepth
				cfg.MaxDepth = &d
			}
			if workers > 0 {
				cfg.ScanWorkers = workers
			}
			cfg.Clamp()

			snapshot, scanErr := runScan(args[0], cfg, !noProgress)
			if scanErr != nil {
				return scanErr
			}

			bundle, err := insights.GenerateInsights(snapshot.Root, cfg)
			if err != nil {
				return err
			}

			if len(categories) > 0 {
				wanted := parseCategories(categories)
				for _, in := range insights.FilterInsights(bundle, wanted) {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", in.Category.Label(), formatBytes(in.DiskUsage), in.Path)
				}
				return nil
			}

			return RenderSummary(cmd.OutOrStdout(), snapshot, bundle, cfg)
		},
	}

	cmd.Flags().IntVar(&maxDepth, "max-depth", -1, "limit recursion depth (-1 = unlimited, 0 = root's direct children only)")
	cmd.Flags().IntVar(&workers, "workers", 0, "worker pool size (0 = use the config's scanWorkers)")
	cmd.Flags().StringVar(&configPath, "config", "", "config file path (default: "+config.DefaultConfigPath+")")
	cmd.Flags().StringSliceVar(&categories, "category", nil, "only print insights for these categories (temp,cache,build_artifact)")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "disable the progress spinner")

	return cmd
}

func runScan(path string, cfg config.AppConfig, showProgress bool) (*scanner.ScanSnapshot, error) {
	fs := scanner.NewOSFileSystem()

	var bar *progressbar.ProgressBar
	if showProgress {
		bar = progressbar.NewOptions(-1,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionThrottle(progressThrottle),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionSetElapsedTime(false),
		)
	}

	progress := func(_ string, files, dirs int64) {
		if bar != nil {
			bar.Describe(fmt.Sprintf("scanned %d files, %d dirs", files, dirs))
			_ = bar.Add(1)
		}
	}

	opts := scanner.ScanOptions{MaxDepth: cfg.MaxDepth, Workers: cfg.ScanWorkers}
	snapshot, scanErr := scanner.Scan(fs, path, opts, progress, nil)
	if bar != nil {
		_ = bar.Finish()
	}
	if scanErr != nil {
		return nil, scanErr
	}
	return snapshot, nil
}

func parseCategories(raw []string) map[config.InsightCategory]bool {
	out := make(map[config.InsightCategory]bool, len(raw))
	for _, r := range raw {
		out[config.InsightCategory(strings.TrimSpace(r))] = true
	}
	return out
}
