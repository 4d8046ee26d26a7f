package cmd

import (
	"github.com/getlawrence/langreg/internal/detector"
	"github.com/getlawrence/langreg/internal/ui"
	"github.com/spf13/cobra"
)

type detectOutput struct {
	Resolved []detector.Resolution `json:"resolved" yaml:"resolved"`
	Missed   []string              `json:"missed,omitempty" yaml:"missed,omitempty"`
}

func newDetectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detect <file>...",
		Short: "Show which registered language each file maps to",
		Long: `Detect resolves files to registered languages. The file extension is looked
up in the registry first; when no language claims it, the file name and
content are classified and matched against registered language names.
Extensions match case-sensitively: MAIN.PY is not Python unless some language
registers "PY", and such files are never classified by name or content.

Example usage:
  langreg detect main.cpp include/widget.h scripts/tool`,
		Args: cobra.MinimumNArgs(1),
		RunE: runDetect,
	}
}

func runDetect(cmd *cobra.Command, args []string) error {
	app, err := requireApp(cmd)
	if err != nil {
		return err
	}

	result := detectOutput{}
	for _, path := range args {
		if res, ok := detector.Resolve(app.Registry, path); ok {
			result.Resolved = append(result.Resolved, res)
		} else {
			result.Missed = append(result.Missed, path)
		}
	}

	return writeOutput(cmd, app, result, func(st ui.Styles) string {
		return ui.RenderResolutions(st, result.Resolved, result.Missed)
	})
}
