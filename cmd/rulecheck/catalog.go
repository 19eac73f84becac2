// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/rulecheck/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the effective keyword catalog",
	Long: `Catalog prints the keywords that decide whether a paragraph or a string
literal is rule-like, after applying catalog.keywords, catalog.extra_keywords
and --keywords-file. One keyword per line.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := catalogConfig()
		if err != nil {
			return err
		}
		cat, err := catalog.FromConfig(cfg)
		if err != nil {
			return err
		}
		for _, kw := range cat.Keywords() {
			fmt.Fprintln(cmd.OutOrStdout(), kw)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "%d keywords\n", cat.Len())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}
