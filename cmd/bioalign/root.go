package main

import (
	"fmt"

	"github.com/mandalnilabja/bioalign/internal/config"
	"github.com/mandalnilabja/bioalign/internal/version"
	"github.com/spf13/cobra"
)

// newRootCmd builds the command tree. A fresh tree per call keeps tests independent.
func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "bioalign",
		Short: "Landing page for the Biological Alignment Tool",
		Long: `bioalign serves the entry page of the Biological Alignment Tool, an
educational web app for global and local sequence alignment. The page links
to the Background, Global Alignment and Local Alignment pages of the
companion alignment app.`,
		Version:      version.Version,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config.toml (default "+config.ConfigPath()+")")

	root.AddCommand(
		newServeCmd(&configPath),
		newRenderCmd(&configPath),
		newLinksCmd(&configPath),
		newAdminPasswordCmd(&configPath),
		newVersionCmd(),
	)

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "bioalign %s\n", version.Version)
		},
	}
}

// loadConfig loads and validates configuration with flag overrides applied.
func loadConfig(o config.Overrides) (*config.Config, error) {
	cfg, err := config.Load(o)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
