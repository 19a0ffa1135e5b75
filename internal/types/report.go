package types

// PivotSpec describes one cross-tabulation of a source table.
type PivotSpec struct {
	RowKeys    []string       `yaml:"rows"`
	ColumnKeys []string       `yaml:"columns"`
	ValueKey   string         `yaml:"value"`
	Aggregator AggregatorName `yaml:"aggregator,omitempty"`
}

// ReportConfig holds the pivot layouts applied to the alert and
// dependency tables. Zero fields fall back to the built-in defaults.
type ReportConfig struct {
	AlertPivot      PivotSpec `yaml:"alert_pivot"`
	DependencyPivot PivotSpec `yaml:"dependency_pivot"`
}
