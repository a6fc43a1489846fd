package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rohankatakam/git-hours/internal/config"
	"github.com/rohankatakam/git-hours/internal/errors"
)

func newConfigCmd(a *app) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage git-hours configuration",
		Long:  `View and initialize git-hours configuration settings.`,
	}

	configShowCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Long: `Print the configuration after defaults, config file, .env files,
GIT_HOURS_* environment variables and flags have been applied.`,
		Args: cobra.NoArgs,
		RunE: a.runConfigShow,
	}

	var force bool
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the effective configuration to a config file",
		Long: `Write the effective configuration to path, or to .git-hours/config.yaml
in the current directory when no path is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := filepath.Join(config.DirName, "config.yaml")
			if len(args) == 1 {
				path = args[0]
			}
			return a.runConfigInit(cmd, path, force)
		},
	}
	configInitCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	return configCmd
}

func (a *app) runConfigShow(cmd *cobra.Command, args []string) error {
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(a.cfg); err != nil {
		return errors.InternalErrorf("failed to encode config: %v", err)
	}
	return enc.Close()
}

func (a *app) runConfigInit(cmd *cobra.Command, path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.PreconditionError(fmt.Sprintf("%s already exists, use --force to overwrite", path))
	}

	if err := a.cfg.Save(path); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
