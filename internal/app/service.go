package app

import (
	"context"

	"codescan-report/internal/adapters"
	"codescan-report/internal/core"
	"codescan-report/internal/ports"
)

type Service struct {
	Identity       ports.IdentityPort
	Alerts         ports.AlertSourcePort
	Dependencies   ports.DependencySourcePort
	Workbook       ports.WorkbookPort
	WorkbookReader ports.WorkbookReaderPort
	ReportConfig   ports.ReportConfigPort
	Pivot          core.PivotEngine
}

// GitHubConfig carries the credentials and endpoints used to reach the
// hosting platform.
type GitHubConfig struct {
	Token      string
	APIURL     string
	GraphQLURL string
	Repository string
}

// NewService wires the GitHub backed adapters. It fails when the token
// is missing or an endpoint URL is malformed.
func NewService(ctx context.Context, cfg GitHubConfig) (Service, error) {
	httpClient, err := adapters.NewGitHubHTTPClient(ctx, cfg.Token)
	if err != nil {
		return Service{}, err
	}
	alerts, err := adapters.NewGitHubAlertsAdapter(httpClient, cfg.APIURL)
	if err != nil {
		return Service{}, err
	}
	deps, err := adapters.NewGitHubDependencyAdapter(httpClient, cfg.GraphQLURL)
	if err != nil {
		return Service{}, err
	}
	service := NewOfflineService()
	service.Identity = adapters.NewEventIdentityAdapter(cfg.Repository)
	service.Alerts = alerts
	service.Dependencies = deps
	return service, nil
}

// NewOfflineService wires only the local adapters, enough for commands
// that never contact the platform.
func NewOfflineService() Service {
	workbook := adapters.NewExcelWorkbookAdapter()
	return Service{
		Workbook:       workbook,
		WorkbookReader: workbook,
		ReportConfig:   adapters.NewReportConfigFileAdapter(),
		Pivot:          core.NewPivotEngine(),
	}
}
