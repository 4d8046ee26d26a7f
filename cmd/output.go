package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/getlawrence/langreg/internal/ui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// outputFormat returns the --output flag, falling back to the config file.
func outputFormat(cmd *cobra.Command, app *AppConfig) string {
	format, _ := cmd.Flags().GetString("output")
	if format == "" && app != nil {
		format = app.Config.Output.Format
	}
	if format == "" {
		format = "text"
	}
	return format
}

func styles(cmd *cobra.Command, app *AppConfig) ui.Styles {
	noColor, _ := cmd.Flags().GetBool("no-color")
	color := !noColor && app.Config.Output.Color && ui.IsInteractive()
	return ui.NewStyles(color)
}

// writeOutput renders v in the selected format; text is produced lazily.
func writeOutput(cmd *cobra.Command, app *AppConfig, v interface{}, text func(ui.Styles) string) error {
	out := cmd.OutOrStdout()
	switch format := outputFormat(cmd, app); format {
	case "json":
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case "text":
		_, err := fmt.Fprint(out, text(styles(cmd, app)))
		return err
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func requireApp(cmd *cobra.Command) (*AppConfig, error) {
	app := appConfigFrom(cmd.Context())
	if app == nil {
		return nil, fmt.Errorf("language registry not set up")
	}
	return app, nil
}
