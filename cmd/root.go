package cmd

import (
	"context"
	"fmt"

	"github.com/getlawrence/langreg/internal/config"
	"github.com/getlawrence/langreg/internal/hooks"
	"github.com/getlawrence/langreg/internal/languages"
	"github.com/getlawrence/langreg/internal/logger"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = NewRootCmd()

// NewRootCmd builds the full command tree. Tests build their own so flag
// state never leaks between runs.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "langreg",
		Short: "Language-support registry for editors and tooling",
		Long: `langreg manages the catalog of languages a host editor knows about:
which file extensions select a language, whether it needs an init hook and
which lexer it should use.

Built-in languages are registered first; user languages come from manifest
files and the config file and are registered after them, so built-ins keep
priority for any shared extension.`,
		Version:           Version,
		SilenceUsage:      true,
		PersistentPreRunE: setupRegistry,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringP("output", "o", "", "output format (text, json, yaml)")
	cmd.PersistentFlags().StringP("config", "c", "", "config file (default .langreg.yaml in cwd or home)")
	cmd.PersistentFlags().StringSliceP("manifest", "m", nil, "additional language manifest files")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")

	cmd.AddCommand(
		newListCmd(),
		newDetectCmd(),
		newOpenCmd(),
		newScanCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)
	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

// setupRegistry loads configuration and populates the registry: built-ins
// first, then manifests, then inline config languages.
func setupRegistry(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	configPath, _ := cmd.Flags().GetString("config")
	extraManifests, _ := cmd.Flags().GetStringSlice("manifest")

	log := logger.NewVerbose(&logger.StdoutLogger{W: cmd.ErrOrStderr()}, verbose)

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}

	app := NewAppConfig(cfg, log)
	if err := languages.RegisterDefaults(app.Registry); err != nil {
		return err
	}

	hookFactory := hooks.Factory(&logger.StdoutLogger{W: cmd.ErrOrStderr()})
	for _, path := range append(cfg.ManifestPaths(), extraManifests...) {
		m, err := languages.LoadManifest(path)
		if err != nil {
			return err
		}
		if err := m.Apply(app.Registry, hookFactory); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s: %v\n", path, err)
		}
	}
	if len(cfg.Languages) > 0 {
		m := languages.NewManifest(cfg.Languages, cfg.Dir())
		if err := m.Apply(app.Registry, hookFactory); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: config languages: %v\n", err)
		}
	}

	log.Logf("registered %d languages", app.Registry.Count())
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, ConfigKey, app))
	return nil
}
