// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/rulecheck/internal/classify"
	"github.com/pdiddy/rulecheck/internal/render"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [document]",
	Short: "Sort document paragraphs into diagnostic rule categories",
	Long: `Classify reads the document and reports paragraph totals and the excerpts
recorded for each category: namespaces, schema types, array definitions,
required elements, currency handling, and encoding rules. The report is
diagnostic and does not affect check.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runClassify,
}

func runClassify(cmd *cobra.Command, args []string) error {
	doc := viper.GetString("document")
	if len(args) == 1 {
		doc = args[0]
	}
	if doc == "" {
		doc = defaultDocument
	}

	cls, err := classifierConfig()
	if err != nil {
		return err
	}

	paragraphs, err := defaultReader().Paragraphs(cmd.Context(), doc)
	if err != nil {
		return err
	}
	report := classify.New(cls).Classify(paragraphs)

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Document: %s\n", doc)
	return render.Classification(cmd.OutOrStdout(), report)
}

func init() {
	classifyCmd.Flags().Bool("json", false, "output the report as JSON")
	rootCmd.AddCommand(classifyCmd)
}
