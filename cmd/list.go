package cmd

import (
	"github.com/getlawrence/langreg/internal/languages"
	"github.com/getlawrence/langreg/internal/ui"
	"github.com/spf13/cobra"
)

type listOutput struct {
	Count     int                 `json:"count" yaml:"count"`
	Languages []languages.Support `json:"languages" yaml:"languages"`
	Overlaps  map[string][]string `json:"overlaps,omitempty" yaml:"overlaps,omitempty"`
}

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered languages",
		Long: `List displays every registered language in registration order, which is
also the priority order for extension lookups.

Example usage:
  langreg list                 # Built-ins plus configured languages
  langreg list --overlaps      # Also show extensions claimed by several languages
  langreg list -o yaml         # Machine-readable output`,
		Args: cobra.NoArgs,
		RunE: runList,
	}
	cmd.Flags().Bool("overlaps", false, "show extensions shared by more than one language")
	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	app, err := requireApp(cmd)
	if err != nil {
		return err
	}
	showOverlaps, _ := cmd.Flags().GetBool("overlaps")

	result := listOutput{
		Count:     app.Registry.Count(),
		Languages: app.Registry.All(),
	}
	if showOverlaps {
		result.Overlaps = app.Registry.Overlaps()
	}

	return writeOutput(cmd, app, result, func(st ui.Styles) string {
		return ui.RenderLanguages(st, result.Languages, result.Overlaps)
	})
}
