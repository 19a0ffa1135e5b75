package ports

import "codescan-report/internal/types"

// IdentityPort resolves the repository a run reports on from the
// invoking environment.
type IdentityPort interface {
	Resolve() (types.Repository, error)
}
