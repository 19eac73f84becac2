// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/pdiddy/rulecheck/internal/catalog"
	"github.com/pdiddy/rulecheck/internal/document"
	"github.com/pdiddy/rulecheck/internal/watch"
	"github.com/pdiddy/rulecheck/pkg/types"
)

const (
	defaultDocument = "docs/iso/ISO 20022 - JSON Schema Draft 2020-12 generation (v20250321) (clean).docx"
	defaultArtifact = "src/main/java/com/tsg/crossmsg/signing/config/ConversionRules.java"
)

// catalogConfig merges the catalog section of the config file with the
// optional keywords file. File keywords replace configured ones; extra
// keywords from both sources are kept.
func catalogConfig() (types.CatalogConfig, error) {
	cfg := types.CatalogConfig{
		Keywords:      viper.GetStringSlice("catalog.keywords"),
		ExtraKeywords: viper.GetStringSlice("catalog.extra_keywords"),
	}
	if path := viper.GetString("keywords-file"); path != "" {
		file, err := catalog.LoadFile(path)
		if err != nil {
			return types.CatalogConfig{}, err
		}
		if len(file.Keywords) > 0 {
			cfg.Keywords = file.Keywords
		}
		cfg.ExtraKeywords = append(cfg.ExtraKeywords, file.ExtraKeywords...)
	}
	if _, err := catalog.FromConfig(cfg); err != nil {
		return types.CatalogConfig{}, err
	}
	return cfg, nil
}

func readerConfig() types.ReaderConfig {
	return types.ReaderConfig{
		ContainerRuntime: viper.GetString("container-runtime"),
		ConverterImage:   viper.GetString("converter-image"),
	}
}

func classifierConfig() (types.ClassifierConfig, error) {
	cfg := types.ClassifierConfig{
		BatchSize:     viper.GetInt("batch-size"),
		ExcerptLength: viper.GetInt("excerpt-length"),
	}
	if cfg.BatchSize < 0 || cfg.ExcerptLength < 0 {
		return cfg, fmt.Errorf("batch-size and excerpt-length must not be negative")
	}
	return cfg, nil
}

// checkConfig assembles a CheckConfig from flags, environment and config file.
func checkConfig() (types.CheckConfig, error) {
	cat, err := catalogConfig()
	if err != nil {
		return types.CheckConfig{}, err
	}
	cls, err := classifierConfig()
	if err != nil {
		return types.CheckConfig{}, err
	}

	artifacts := viper.GetStringSlice("artifact")
	if len(artifacts) == 0 {
		artifacts = []string{defaultArtifact}
	}
	doc := viper.GetString("document")
	if doc == "" {
		doc = defaultDocument
	}

	matcher := types.MatcherKind(strings.ToLower(viper.GetString("matcher")))
	switch matcher {
	case "", types.MatcherLinear, types.MatcherSQLite:
	default:
		return types.CheckConfig{}, fmt.Errorf("unsupported matcher %q: use linear or sqlite", matcher)
	}

	return types.CheckConfig{
		Document:             doc,
		Artifacts:            artifacts,
		AllowMissingArtifact: viper.GetBool("allow-missing-artifact"),
		Matcher:              matcher,
		Catalog:              cat,
		Classifier:           cls,
		Reader:               readerConfig(),
	}, nil
}

func outputConfig() (types.OutputConfig, error) {
	format := types.OutputFormat(strings.ToLower(viper.GetString("format")))
	switch format {
	case "":
		format = types.FormatText
	case types.FormatText, types.FormatMarkdown, types.FormatJSON, types.FormatYAML:
	default:
		return types.OutputConfig{}, fmt.Errorf("unsupported format %q: use text, markdown, json, or yaml", format)
	}
	return types.OutputConfig{
		Format:          format,
		Path:            viper.GetString("output"),
		MetricsFile:     viper.GetString("metrics-file"),
		FailOnUnmatched: viper.GetBool("fail-on-unmatched"),
	}, nil
}

func watchConfig() types.WatchConfig {
	d := viper.GetDuration("debounce")
	if d <= 0 {
		d = watch.DefaultDebounce
	}
	return types.WatchConfig{
		Enabled:  viper.GetBool("watch"),
		Debounce: d,
	}
}

// defaultReader is the document registry used by the subcommands.
func defaultReader() *document.Registry {
	return document.Default(readerConfig())
}
