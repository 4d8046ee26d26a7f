package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/getlawrence/langreg/internal/detector"
	"github.com/getlawrence/langreg/internal/ui"
	"github.com/spf13/cobra"
)

func newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Count files per registered language in a directory tree",
		Long: `Scan walks the specified directory (or the current one), resolves every file
against the registry and reports file counts per language, the primary
language of each directory and extensions no language claims.

Example usage:
  langreg scan                    # Scan current directory
  langreg scan /path/to/project   # Scan specific directory
  langreg scan --max-depth 2      # Limit traversal depth`,
		Args: cobra.MaximumNArgs(1),
		RunE: runScan,
	}
	cmd.Flags().Int("max-depth", -1, "maximum directory depth (0 = unlimited, default from config)")
	cmd.Flags().StringSlice("exclude", nil, "additional directory names to skip")
	return cmd
}

func runScan(cmd *cobra.Command, args []string) error {
	app, err := requireApp(cmd)
	if err != nil {
		return err
	}

	targetPath := "."
	if len(args) > 0 {
		targetPath = args[0]
	}
	absPath, err := filepath.Abs(targetPath)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}
	if _, statErr := os.Stat(absPath); os.IsNotExist(statErr) {
		return fmt.Errorf("path does not exist: %s", absPath)
	}

	opts := detector.ScanOptions{
		ExcludePaths: app.Config.Scan.ExcludePaths,
		MaxDepth:     app.Config.Scan.MaxDepth,
		Workers:      app.Config.Scan.Workers,
		Logger:       app.Logger,
	}
	if depth, _ := cmd.Flags().GetInt("max-depth"); depth >= 0 {
		opts.MaxDepth = depth
	}
	if extra, _ := cmd.Flags().GetStringSlice("exclude"); len(extra) > 0 {
		opts.ExcludePaths = append(append([]string{}, opts.ExcludePaths...), extra...)
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	interactive := ui.IsInteractive() && !verbose && outputFormat(cmd, app) == "text"

	var result *detector.ScanResult
	runErr := ui.RunSpinner(cmd.Context(), "Scanning "+absPath, interactive, func(ctx context.Context) error {
		var e error
		result, e = detector.Scan(ctx, app.Registry, absPath, opts)
		return e
	})
	if runErr != nil {
		return runErr
	}

	return writeOutput(cmd, app, result, func(st ui.Styles) string {
		return ui.RenderScan(st, result)
	})
}
