package adapters

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"codescan-report/internal/ports"
	"codescan-report/internal/types"
)

type ExcelWorkbookAdapter struct{}

func NewExcelWorkbookAdapter() ExcelWorkbookAdapter {
	return ExcelWorkbookAdapter{}
}

// WriteWorkbook writes one sheet per table, in order, to path. The file
// is assembled next to path and renamed into place, so a failed write
// leaves any previous workbook untouched.
func (a ExcelWorkbookAdapter) WriteWorkbook(path string, sheets []types.Sheet) error {
	if strings.TrimSpace(path) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("workbook path is empty")
	}
	if len(sheets) == 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("workbook has no sheets")
	}
	if err := validateSheetNames(sheets); err != nil {
		return err
	}

	file := excelize.NewFile()
	defer file.Close()
	defaultSheet := file.GetSheetName(0)
	for i, sheet := range sheets {
		if err := sheet.Table.Validate(); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg(fmt.Sprintf("sheet %s is not rectangular", sheet.Name)).
				WithCause(err)
		}
		if i == 0 {
			if err := file.SetSheetName(defaultSheet, sheet.Name); err != nil {
				return sheetError(sheet.Name, err)
			}
		} else if _, err := file.NewSheet(sheet.Name); err != nil {
			return sheetError(sheet.Name, err)
		}
		if err := writeSheetRows(file, sheet); err != nil {
			return err
		}
	}
	file.SetActiveSheet(0)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create workbook directory").
			WithCause(err)
	}
	tmp, err := os.CreateTemp(dir, ".workbook-*.xlsx")
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create workbook file").
			WithCause(err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)
	if _, err := file.WriteTo(tmp); err != nil {
		_ = tmp.Close()
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write workbook").
			WithCause(err)
	}
	if err := tmp.Close(); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write workbook").
			WithCause(err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to move workbook into place").
			WithCause(err)
	}
	log.Debug().Str("path", path).Int("sheets", len(sheets)).Msg("workbook written")
	return nil
}

// ReadWorkbook loads every sheet of an existing workbook. The first row
// of each sheet becomes the header; shorter rows are padded to its width.
func (a ExcelWorkbookAdapter) ReadWorkbook(path string) ([]types.Sheet, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to open workbook").
			WithCause(err)
	}
	defer file.Close()

	var sheets []types.Sheet
	for _, name := range file.GetSheetList() {
		rows, err := file.GetRows(name)
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("failed to read sheet %s", name)).
				WithCause(err)
		}
		sheets = append(sheets, types.Sheet{Name: name, Table: tableFromRows(rows)})
	}
	return sheets, nil
}

func writeSheetRows(file *excelize.File, sheet types.Sheet) error {
	for i, record := range sheet.Table.Records() {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return sheetError(sheet.Name, err)
		}
		row := make([]interface{}, len(record))
		for j, value := range record {
			row[j] = value
		}
		if err := file.SetSheetRow(sheet.Name, cell, &row); err != nil {
			return sheetError(sheet.Name, err)
		}
	}
	return nil
}

func tableFromRows(rows [][]string) types.Table {
	if len(rows) == 0 {
		return types.Table{}
	}
	width := len(rows[0])
	for _, row := range rows[1:] {
		if len(row) > width {
			width = len(row)
		}
	}
	table := types.NewTable(padRow(rows[0], width))
	for _, row := range rows[1:] {
		table.Append(padRow(row, width))
	}
	return table
}

func padRow(row []string, width int) []string {
	padded := make([]string, width)
	copy(padded, row)
	return padded
}

func validateSheetNames(sheets []types.Sheet) error {
	seen := map[string]struct{}{}
	for _, sheet := range sheets {
		name := strings.TrimSpace(sheet.Name)
		if name == "" {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("sheet name is empty")
		}
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("duplicate sheet name " + name)
		}
		seen[key] = struct{}{}
	}
	return nil
}

func sheetError(name string, err error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg(fmt.Sprintf("failed to write sheet %s", name)).
		WithCause(err)
}

var (
	_ ports.WorkbookPort       = ExcelWorkbookAdapter{}
	_ ports.WorkbookReaderPort = ExcelWorkbookAdapter{}
)
