package app

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"codescan-report/internal/core"
	"codescan-report/internal/types"
)

var validAlertStates = map[types.AlertState]struct{}{
	"":                        {},
	types.AlertStateOpen:      {},
	types.AlertStateClosed:    {},
	types.AlertStateDismissed: {},
	types.AlertStateFixed:     {},
}

// Report runs the whole pipeline: resolve the repository, fetch alerts,
// fetch the dependency graph, pivot both tables and write the workbook.
// The first failing step aborts the run, so no workbook is written unless
// every fetch succeeded.
func (s Service) Report(ctx context.Context, req ReportRequest) (ReportResult, error) {
	if _, ok := validAlertStates[req.Filter.State]; !ok {
		return ReportResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid alert state %q", req.Filter.State))
	}
	outputPath := outputPathOrDefault(req.OutputPath)
	cfg, err := s.ReportConfig.Load(req.ReportConfigPath)
	if err != nil {
		return ReportResult{}, err
	}
	cfg = applyReportDefaults(cfg)

	repo, err := s.Identity.Resolve()
	if err != nil {
		return ReportResult{}, err
	}
	logger := log.With().Str("repository", repo.String()).Logger()
	ctx = logger.WithContext(ctx)

	alerts, err := s.Alerts.ListAlerts(ctx, repo, req.Filter)
	if err != nil {
		return ReportResult{}, err
	}
	logger.Info().Int("alerts", len(alerts)).Msg("code scanning alerts fetched")

	graph, err := s.Dependencies.ListDependencies(ctx, repo)
	if err != nil {
		return ReportResult{}, err
	}
	logger.Info().
		Int("dependencies", len(graph.Dependencies)).
		Str("license", graph.License).
		Msg("dependency graph fetched")

	alertTable := core.AlertTable(ctx, alerts)
	dependencyTable := core.DependencyTable(ctx, graph.Dependencies)
	dependencyPivot, err := s.Pivot.Pivot(ctx, dependencyTable, cfg.DependencyPivot)
	if err != nil {
		return ReportResult{}, err
	}
	alertPivot, err := s.Pivot.Pivot(ctx, alertTable, cfg.AlertPivot)
	if err != nil {
		return ReportResult{}, err
	}

	sheets := []types.Sheet{
		{Name: types.SheetCodeScanningIssues, Table: alertTable},
		{Name: types.SheetDependenciesList, Table: dependencyTable},
		{Name: types.SheetDependenciesPivot, Table: dependencyPivot},
		{Name: types.SheetCodeScanningPivot, Table: alertPivot},
	}
	if err := s.Workbook.WriteWorkbook(outputPath, sheets); err != nil {
		return ReportResult{}, err
	}
	logger.Info().Str("path", outputPath).Msg("workbook written")

	return ReportResult{
		Repository:          repo,
		RepositoryLicense:   graph.License,
		OutputPath:          outputPath,
		Alerts:              alertTable.Len(),
		Dependencies:        dependencyTable.Len(),
		AlertPivotRows:      alertPivot.Len(),
		DependencyPivotRows: dependencyPivot.Len(),
	}, nil
}
