package cmd

import (
	"fmt"
	"os"

	"github.com/getlawrence/langreg/internal/host"
	"github.com/getlawrence/langreg/internal/ui"
	"github.com/spf13/cobra"
)

func newOpenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <file>...",
		Short: "Realize buffers the way an editor would",
		Long: `Open resolves each file's language, runs the language's init hook the
first time that language is opened, and reports which lexer the buffer gets.
Languages that opt out of the generic lexer and name a known grammar are
parsed once so syntax errors are reported.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runOpen,
	}
}

func runOpen(cmd *cobra.Command, args []string) error {
	app, err := requireApp(cmd)
	if err != nil {
		return err
	}

	session := host.NewSession(app.Registry, app.Logger)
	var buffers []*host.Buffer
	for _, path := range args {
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("cannot open %s: %w", path, err)
		}
		buf, err := session.Open(cmd.Context(), path)
		if err != nil {
			return err
		}
		buffers = append(buffers, buf)
	}

	return writeOutput(cmd, app, buffers, func(st ui.Styles) string {
		var out string
		for i, buf := range buffers {
			if i > 0 {
				out += "\n"
			}
			out += ui.RenderBuffer(st, buf)
		}
		return out
	})
}
