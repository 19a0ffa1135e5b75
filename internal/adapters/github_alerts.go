package adapters

import (
	"context"
	"net/http"
	"strconv"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-github/v69/github"
	"github.com/rs/zerolog/log"

	"codescan-report/internal/ports"
	"codescan-report/internal/shared"
	"codescan-report/internal/types"
)

const defaultAlertsPerPage = 100

// GitHubAlertsAdapter lists code scanning alerts through the REST API.
type GitHubAlertsAdapter struct {
	Client  *github.Client
	PerPage int
}

func NewGitHubAlertsAdapter(httpClient *http.Client, apiURL string) (GitHubAlertsAdapter, error) {
	baseURL, err := parseBaseURL(apiURL, DefaultGitHubAPIURL)
	if err != nil {
		return GitHubAlertsAdapter{}, err
	}
	client := github.NewClient(httpClient)
	client.BaseURL = baseURL
	return GitHubAlertsAdapter{
		Client:  client,
		PerPage: defaultAlertsPerPage,
	}, nil
}

// ListAlerts walks every page of the repository's alerts and returns
// them in the order the API reported them.
func (a GitHubAlertsAdapter) ListAlerts(ctx context.Context, repo types.Repository, filter ports.AlertFilter) ([]types.AlertRecord, error) {
	if repo.IsZero() {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("repository owner and name are required")
	}
	perPage := a.PerPage
	if perPage <= 0 {
		perPage = defaultAlertsPerPage
	}
	opts := &github.AlertListOptions{
		State:       string(filter.State),
		Ref:         filter.Ref,
		ToolName:    filter.ToolName,
		ListOptions: github.ListOptions{PerPage: perPage},
	}

	var alerts []*github.Alert
	for {
		page, resp, err := a.Client.CodeScanning.ListAlertsForRepo(ctx, repo.Owner, repo.Name, opts)
		if err != nil {
			return nil, githubError(err, "failed to list code scanning alerts for "+repo.String())
		}
		alerts = append(alerts, page...)
		log.Ctx(ctx).Debug().
			Str("repository", repo.String()).
			Int("page", opts.ListOptions.Page).
			Int("alerts", len(page)).
			Msg("code scanning page fetched")
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.ListOptions.Page = resp.NextPage
	}

	records := make([]types.AlertRecord, 0, len(alerts))
	for _, alert := range alerts {
		records = append(records, alertRecord(alert))
	}
	return records, nil
}

func alertRecord(alert *github.Alert) types.AlertRecord {
	location := alert.GetMostRecentInstance().GetLocation()
	record := types.AlertRecord{
		ToolName:    alert.GetTool().GetName(),
		ToolVersion: alert.GetTool().GetVersion(),
		Number:      strconv.Itoa(alert.GetNumber()),
		URL:         alert.GetHTMLURL(),
		State:       alert.GetState(),
		Rule:        alert.GetRule().GetID(),
		Severity:    alertSeverity(alert.GetRule()),
		Path:        location.GetPath(),
		CreatedAt:   formatTime(alert.GetCreatedAt().Time),
		UpdatedAt:   formatTime(alert.GetUpdatedAt().Time),
		FixedAt:     formatTime(alert.GetFixedAt().Time),
		DismissedAt: formatTime(alert.GetDismissedAt().Time),
		DismissedBy: alert.GetDismissedBy().GetLogin(),
	}
	if location != nil {
		record.StartLine = shared.OptionalInt(location.StartLine)
		record.EndLine = shared.OptionalInt(location.EndLine)
	}
	return record
}

// alertSeverity prefers the security severity level of the rule and
// falls back to its generic severity.
func alertSeverity(rule *github.Rule) string {
	if level := rule.GetSecuritySeverityLevel(); level != "" {
		return level
	}
	return rule.GetSeverity()
}

var _ ports.AlertSourcePort = GitHubAlertsAdapter{}
