package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/smallie-dev/smallie/internal/config"
	"github.com/smallie-dev/smallie/internal/errors"
)

func initCmd(opts *rootOptions) *cobra.Command {
	var (
		name  string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default smallie.json",
		Long: `Write smallie.json with default settings into the project directory.

Examples:
  smallie init
  smallie init --name "My todos"
  smallie -C ./site init --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if config.Exists(opts.dir) && !force {
				return errors.New("E120").
					WithDetail(filepath.Join(opts.dir, config.ConfigFileName) + " already exists.").
					WithSuggestion("Pass --force to overwrite it.")
			}

			cfg := config.New()
			if name != "" {
				cfg.Name = name
			}
			path := filepath.Join(opts.dir, config.ConfigFileName)
			if err := cfg.SaveTo(path); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Wrote %s", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Application name used as the page title")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing smallie.json")

	return cmd
}
