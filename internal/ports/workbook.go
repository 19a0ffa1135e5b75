package ports

import "codescan-report/internal/types"

type WorkbookPort interface {
	WriteWorkbook(path string, sheets []types.Sheet) error
}

type WorkbookReaderPort interface {
	ReadWorkbook(path string) ([]types.Sheet, error)
}
