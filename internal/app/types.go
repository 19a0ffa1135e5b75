package app

import (
	"codescan-report/internal/ports"
	"codescan-report/internal/types"
)

type ReportRequest struct {
	OutputPath       string
	ReportConfigPath string
	Filter           ports.AlertFilter
}

type ReportResult struct {
	Repository          types.Repository
	RepositoryLicense   string
	OutputPath          string
	Alerts              int
	Dependencies        int
	AlertPivotRows      int
	DependencyPivotRows int
}

type InspectRequest struct {
	Path string
}

type InspectSheetSummary struct {
	Name    string
	Columns int
	Rows    int
}

type InspectResult struct {
	Sheets []InspectSheetSummary
}
