package ports

import (
	"context"

	"codescan-report/internal/types"
)

type AlertFilter struct {
	State    types.AlertState
	Ref      string
	ToolName string
}

type AlertSourcePort interface {
	ListAlerts(ctx context.Context, repo types.Repository, filter AlertFilter) ([]types.AlertRecord, error)
}
