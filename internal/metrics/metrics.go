// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metrics exports the counts of a check run as Prometheus gauges
// in the node_exporter textfile format.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/pdiddy/rulecheck/pkg/types"
)

var (
	identifiersDesc = prometheus.NewDesc(
		"rulecheck_identifiers",
		"Distinct identifiers extracted from the artifacts",
		nil, nil,
	)
	statementsDesc = prometheus.NewDesc(
		"rulecheck_statements",
		"Rule-like statements extracted from the document",
		nil, nil,
	)
	unmatchedDesc = prometheus.NewDesc(
		"rulecheck_unmatched_statements",
		"Statements with no matching identifier",
		nil, nil,
	)
	paragraphsDesc = prometheus.NewDesc(
		"rulecheck_paragraphs_total",
		"Paragraphs read from the document",
		nil, nil,
	)
	schemaDesc = prometheus.NewDesc(
		"rulecheck_schema_paragraphs",
		"Non-empty paragraphs mentioning schema",
		nil, nil,
	)
	categoryDesc = prometheus.NewDesc(
		"rulecheck_category_paragraphs",
		"Paragraphs recorded per classifier category",
		[]string{"category"}, nil,
	)
)

// ResultCollector emits the gauges of one CheckResult on each collection.
type ResultCollector struct {
	result *types.CheckResult
}

// NewResultCollector returns a collector over result.
func NewResultCollector(result *types.CheckResult) *ResultCollector {
	return &ResultCollector{result: result}
}

// Describe sends every metric descriptor to the channel.
func (c *ResultCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- identifiersDesc
	ch <- statementsDesc
	ch <- unmatchedDesc
	ch <- paragraphsDesc
	ch <- schemaDesc
	ch <- categoryDesc
}

// Collect emits the result's counts as gauges.
func (c *ResultCollector) Collect(ch chan<- prometheus.Metric) {
	r := c.result
	gauge := func(desc *prometheus.Desc, v int, labels ...string) {
		ch <- prometheus.MustNewConstMetric(desc, prometheus.GaugeValue, float64(v), labels...)
	}
	gauge(identifiersDesc, len(r.Identifiers))
	gauge(statementsDesc, len(r.Statements))
	gauge(unmatchedDesc, len(r.Unmatched))
	if r.Report == nil {
		return
	}
	gauge(paragraphsDesc, r.Report.TotalParagraphs)
	gauge(schemaDesc, r.Report.SchemaElements)
	for _, b := range r.Report.RuleMatches {
		gauge(categoryDesc, len(b.Excerpts), string(b.Name))
	}
}

// WriteTextfile writes the gauges for result to path through a private
// registry. The file is replaced atomically.
func WriteTextfile(path string, result *types.CheckResult) error {
	if result == nil {
		return fmt.Errorf("metrics: nil result")
	}
	reg := prometheus.NewRegistry()
	if err := reg.Register(NewResultCollector(result)); err != nil {
		return fmt.Errorf("registering collector: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
