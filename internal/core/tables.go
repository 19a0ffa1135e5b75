package core

import (
	"context"

	"github.com/rs/zerolog/log"

	"codescan-report/internal/types"
)

var AlertHeader = []string{
	"toolName",
	"toolVersion",
	"alertNumber",
	"htmlUrl",
	"state",
	"rule",
	"severity",
	"location",
	"start-line",
	"end-line",
	"createdAt",
	"updatedAt",
	"fixedAt",
	"dismissedAt",
	"dismissedBy",
}

var DependencyHeader = []string{
	"manifest",
	"packageName",
	"packageManager",
	"requirements",
	"license",
}

// AlertTable flattens alerts into a table headed by AlertHeader, one row
// per alert in the order given.
func AlertTable(ctx context.Context, alerts []types.AlertRecord) types.Table {
	table := types.NewTable(AlertHeader)
	for _, alert := range alerts {
		table.Append([]string{
			alert.ToolName,
			alert.ToolVersion,
			alert.Number,
			alert.URL,
			alert.State,
			alert.Rule,
			alert.Severity,
			alert.Path,
			alert.StartLine,
			alert.EndLine,
			alert.CreatedAt,
			alert.UpdatedAt,
			alert.FixedAt,
			alert.DismissedAt,
			alert.DismissedBy,
		})
	}
	log.Ctx(ctx).Debug().Int("alerts", table.Len()).Msg("alert table built")
	return table
}

// DependencyTable flattens dependency edges into a table headed by
// DependencyHeader.
func DependencyTable(ctx context.Context, deps []types.DependencyRecord) types.Table {
	table := types.NewTable(DependencyHeader)
	for _, dep := range deps {
		table.Append([]string{
			dep.Manifest,
			dep.PackageName,
			dep.PackageManager,
			dep.Requirements,
			dep.License,
		})
	}
	log.Ctx(ctx).Debug().Int("dependencies", table.Len()).Msg("dependency table built")
	return table
}
