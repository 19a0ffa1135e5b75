package ports

import "codescan-report/internal/types"

type ReportConfigPort interface {
	Load(path string) (types.ReportConfig, error)
}
