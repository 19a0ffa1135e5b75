package app

import (
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// Inspect summarizes the sheets of an existing workbook.
func (s Service) Inspect(req InspectRequest) (InspectResult, error) {
	path := strings.TrimSpace(req.Path)
	if path == "" {
		return InspectResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("workbook path is required")
	}
	sheets, err := s.WorkbookReader.ReadWorkbook(path)
	if err != nil {
		return InspectResult{}, err
	}
	var result InspectResult
	for _, sheet := range sheets {
		result.Sheets = append(result.Sheets, InspectSheetSummary{
			Name:    sheet.Name,
			Columns: len(sheet.Table.Header),
			Rows:    sheet.Table.Len(),
		})
	}
	return result, nil
}
