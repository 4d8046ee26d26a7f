package cmd

import (
	"fmt"
	"os"

	"github.com/getlawrence/langreg/internal/config"
	"github.com/getlawrence/langreg/internal/languages"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the langreg configuration file",
		// Overrides the root's registry setup so a broken config file can
		// still be shown or rewritten.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Args:  cobra.NoArgs,
		RunE:  runConfigInit,
	}
	initCmd.Flags().BoolP("force", "f", false, "overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	}

	cmd.AddCommand(initCmd, showCmd)
	return cmd
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	explicit, _ := cmd.Flags().GetString("config")
	force, _ := cmd.Flags().GetBool("force")
	path := config.GetConfigPath(explicit)

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
	}

	cfg := config.DefaultConfig()
	cfg.Languages = []languages.ManifestEntry{
		{Name: "Go", Extensions: []string{"go"}, Grammar: "go"},
	}
	if err := config.SaveConfig(cfg, path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	explicit, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadConfig(explicit)
	if err != nil {
		return err
	}
	if p := cfg.Path(); p != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "# %s\n", p)
	}
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}
