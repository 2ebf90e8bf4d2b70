package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/TimelordUK/mcat/internal/config"
)

func (a *app) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), config.GetConfigPath())
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.GetConfigPath()
			if path == "" {
				return fmt.Errorf("cannot determine config path")
			}
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists", path)
			}
			if err := config.SaveTo(path, config.DefaultConfig()); err != nil {
				return err
			}
			a.log.Info("config written", "path", path)
			_, err := fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	})

	return cmd
}
