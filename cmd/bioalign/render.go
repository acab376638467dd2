package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/mandalnilabja/bioalign/internal/config"
	"github.com/spf13/cobra"
)

func newRenderCmd(configPath *string) *cobra.Command {
	var baseURL string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Write the landing page HTML to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(config.Overrides{ConfigPath: *configPath, BaseURL: baseURL})
			if err != nil {
				return err
			}
			page, err := cfg.Page()
			if err != nil {
				return err
			}
			return page.Render(cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", "", "root URL of the alignment app")
	return cmd
}

func newLinksCmd(configPath *string) *cobra.Command {
	var baseURL string

	cmd := &cobra.Command{
		Use:   "links",
		Short: "List the navigation links",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(config.Overrides{ConfigPath: *configPath, BaseURL: baseURL})
			if err != nil {
				return err
			}
			page, err := cfg.Page()
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "LABEL\tURL")
			for _, l := range page.Links {
				fmt.Fprintf(tw, "%s\t%s\n", l.Label, l.URL)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", "", "root URL of the alignment app")
	return cmd
}
