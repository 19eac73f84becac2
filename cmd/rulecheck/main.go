// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the rulecheck CLI. rulecheck reports
// which rule-like statements of an ISO 20022 JSON Schema generation document
// have no trace in the ConversionRules artifact that implements them.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is replaced in PersistentPreRunE.
var logger = zap.NewNop()

// errCoverageGaps is returned by check when --fail-on-unmatched is set and
// some statements are unmatched.
var errCoverageGaps = errors.New("coverage gaps found")

// rootCmd is the base command for the rulecheck CLI.
var rootCmd = &cobra.Command{
	Use:   "rulecheck",
	Short: "Check a conversion-rules artifact against its specification document",
	Long: `rulecheck extracts rule-like statements from an ISO 20022 JSON Schema
generation document and identifiers from the Java artifact that implements
the conversion rules, then lists the statements with no matching identifier.

Matching is substring containment in either direction, so the report is a
coverage heuristic: it flags candidates for review, not proven gaps.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if viper.GetBool("verbose") {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./rulecheck.yaml or ~/.config/rulecheck/rulecheck.yaml)")
	pf.BoolP("verbose", "v", false, "debug logging")
	pf.String("document", defaultDocument, "specification document (.docx, .md, .txt, .html, .pdf, .doc, .odt, .rtf)")
	pf.String("keywords-file", "", "YAML file with keywords and/or extra_keywords overriding the catalog")
	pf.Int("batch-size", 100, "paragraphs classified per batch")
	pf.Int("excerpt-length", 100, "characters kept per classifier excerpt")
	pf.String("container-runtime", "", "container runtime for converted formats: docker or podman (default: detect)")
	pf.String("converter-image", "markitdown:latest", "container image converting pdf, doc, odt and rtf to Markdown")

	for _, name := range []string{"verbose", "document", "keywords-file", "batch-size", "excerpt-length", "container-runtime", "converter-image"} {
		_ = viper.BindPFlag(name, pf.Lookup(name))
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("rulecheck")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "rulecheck"))
		}
	}

	viper.SetEnvPrefix("RULECHECK")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errCoverageGaps) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
