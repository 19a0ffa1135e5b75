package app

import (
	"strings"

	"codescan-report/internal/types"
)

const DefaultOutputPath = "alerts.xlsx"

func defaultReportConfig() types.ReportConfig {
	return types.ReportConfig{
		AlertPivot: types.PivotSpec{
			RowKeys:    []string{"rule"},
			ColumnKeys: []string{"severity"},
			ValueKey:   "alertNumber",
			Aggregator: types.AggregatorCount,
		},
		DependencyPivot: types.PivotSpec{
			RowKeys:    []string{"manifest"},
			ColumnKeys: []string{"license"},
			ValueKey:   "packageName",
			Aggregator: types.AggregatorCount,
		},
	}
}

// applyReportDefaults replaces every pivot layout left unset in cfg with
// the built-in layout.
func applyReportDefaults(cfg types.ReportConfig) types.ReportConfig {
	defaults := defaultReportConfig()
	cfg.AlertPivot = pivotOrDefault(cfg.AlertPivot, defaults.AlertPivot)
	cfg.DependencyPivot = pivotOrDefault(cfg.DependencyPivot, defaults.DependencyPivot)
	return cfg
}

func pivotOrDefault(spec types.PivotSpec, fallback types.PivotSpec) types.PivotSpec {
	if len(spec.RowKeys) == 0 && len(spec.ColumnKeys) == 0 && strings.TrimSpace(spec.ValueKey) == "" {
		return fallback
	}
	if strings.TrimSpace(string(spec.Aggregator)) == "" {
		spec.Aggregator = types.AggregatorCount
	}
	return spec
}

func outputPathOrDefault(path string) string {
	if strings.TrimSpace(path) == "" {
		return DefaultOutputPath
	}
	return strings.TrimSpace(path)
}
