package cli

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mobanhawi/dux/internal/config"
	"github.com/mobanhawi/dux/internal/ui"
)

var version = "dev"

// NewRootCommand builds the dux command tree: `dux <path>` launches the
// interactive TUI browser (the default, bare-path invocation), `dux scan`
// is the headless alternative for CI/SSH use, and `dux config sample`
// prints a starter config file.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:     "dux <path>",
		Short:   "Find what's taking up disk space",
		Version: version,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) == 1 {
				path = args[0]
			}
			return runUI(path)
		},
	}

	root.AddCommand(newScanCommand())
	root.AddCommand(newConfigCommand())

	return root
}

func runUI(path string) error {
	absRoot, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}
	if _, err := os.Stat(absRoot); err != nil {
		return fmt.Errorf("%w", err)
	}

	cfg, err := config.LoadConfig("")
	if err != nil {
		return err
	}

	model := ui.New(absRoot, cfg)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "sample",
		Short: "Print a starter config.json",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := config.SampleConfigJSON()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	})
	return cmd
}
