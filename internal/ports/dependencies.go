package ports

import (
	"context"

	"codescan-report/internal/types"
)

type DependencySourcePort interface {
	ListDependencies(ctx context.Context, repo types.Repository) (types.DependencyGraph, error)
}
