package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codescan-report/internal/app"
	"codescan-report/internal/ports"
	"codescan-report/internal/types"
)

type reportOptions struct {
	Token        string
	Repository   string
	APIURL       string
	GraphQLURL   string
	Output       string
	ReportConfig string
	State        string
	Ref          string
	ToolName     string
}

func newReportCommand() *cobra.Command {
	opts := reportOptions{}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Fetch alerts and dependencies and write the workbook",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReport(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Token, "token", "", "GitHub token (defaults to INPUT_TOKEN or GITHUB_TOKEN)")
	cmd.Flags().StringVar(&opts.Repository, "repository", "", "Repository as owner/name (defaults to the workflow event)")
	cmd.Flags().StringVar(&opts.APIURL, "api-url", "", "GitHub REST API base URL")
	cmd.Flags().StringVar(&opts.GraphQLURL, "graphql-url", "", "GitHub GraphQL endpoint")
	cmd.Flags().StringVar(&opts.Output, "output", app.DefaultOutputPath, "Workbook output path")
	cmd.Flags().StringVar(&opts.ReportConfig, "report-config", "", "YAML file with pivot layouts")
	cmd.Flags().StringVar(&opts.State, "state", "", "Only include alerts in this state (open, closed, dismissed, fixed)")
	cmd.Flags().StringVar(&opts.Ref, "ref", "", "Only include alerts for this Git ref")
	cmd.Flags().StringVar(&opts.ToolName, "tool-name", "", "Only include alerts from this tool")

	_ = viper.BindPFlag("token", cmd.Flags().Lookup("token"))
	_ = viper.BindPFlag("repository", cmd.Flags().Lookup("repository"))
	_ = viper.BindPFlag("api_url", cmd.Flags().Lookup("api-url"))
	_ = viper.BindPFlag("graphql_url", cmd.Flags().Lookup("graphql-url"))
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("report_config", cmd.Flags().Lookup("report-config"))
	_ = viper.BindPFlag("state", cmd.Flags().Lookup("state"))
	_ = viper.BindPFlag("ref", cmd.Flags().Lookup("ref"))
	_ = viper.BindPFlag("tool_name", cmd.Flags().Lookup("tool-name"))

	return cmd
}

func runReport(ctx context.Context, cmd *cobra.Command, opts reportOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	service, err := app.NewService(ctx, app.GitHubConfig{
		Token:      resolveString(cmd, opts.Token, "token", "token"),
		APIURL:     resolveString(cmd, opts.APIURL, "api_url", "api-url"),
		GraphQLURL: resolveString(cmd, opts.GraphQLURL, "graphql_url", "graphql-url"),
		Repository: resolveString(cmd, opts.Repository, "repository", "repository"),
	})
	if err != nil {
		return err
	}
	result, err := service.Report(ctx, app.ReportRequest{
		OutputPath:       resolveString(cmd, opts.Output, "output", "output"),
		ReportConfigPath: resolveString(cmd, opts.ReportConfig, "report_config", "report-config"),
		Filter: ports.AlertFilter{
			State:    types.AlertState(resolveString(cmd, opts.State, "state", "state")),
			Ref:      resolveString(cmd, opts.Ref, "ref", "ref"),
			ToolName: resolveString(cmd, opts.ToolName, "tool_name", "tool-name"),
		},
	})
	if err != nil {
		return err
	}
	fmt.Printf("report: %s alerts=%d dependencies=%d -> %s\n",
		result.Repository, result.Alerts, result.Dependencies, result.OutputPath)
	return nil
}
