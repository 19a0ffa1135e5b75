package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"codescan-report/internal/types"
)

func sampleSheets() []types.Sheet {
	issues := types.NewTable([]string{"rule", "severity"})
	issues.Append([]string{"A", "error"})
	issues.Append([]string{"B", "warning"})
	pivot := types.NewTable([]string{"manifest", "MIT", ""})
	pivot.Append([]string{"package-lock.json", "2", "1"})
	return []types.Sheet{
		{Name: types.SheetCodeScanningIssues, Table: issues},
		{Name: types.SheetDependenciesPivot, Table: pivot},
	}
}

func TestExcelWorkbookAdapterRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "alerts.xlsx")
	adapter := NewExcelWorkbookAdapter()

	require.NoError(t, adapter.WriteWorkbook(path, sampleSheets()))
	require.FileExists(t, path)

	sheets, err := adapter.ReadWorkbook(path)
	require.NoError(t, err)
	if diff := cmp.Diff(sampleSheets(), sheets); diff != "" {
		t.Fatalf("unexpected workbook content (-want +got):\n%s", diff)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary workbook left behind")
}

func TestExcelWorkbookAdapterKeepsPreviousFileOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alerts.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("previous"), 0644))

	sheets := sampleSheets()
	sheets[1].Name = sheets[0].Name
	err := NewExcelWorkbookAdapter().WriteWorkbook(path, sheets)
	require.Error(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "previous", string(data))
}

func TestExcelWorkbookAdapterRejectsInvalidInput(t *testing.T) {
	adapter := NewExcelWorkbookAdapter()
	dir := t.TempDir()

	require.Error(t, adapter.WriteWorkbook("", sampleSheets()))
	require.Error(t, adapter.WriteWorkbook(filepath.Join(dir, "a.xlsx"), nil))

	ragged := types.NewTable([]string{"a", "b"})
	ragged.Append([]string{"only-one"})
	require.Error(t, adapter.WriteWorkbook(filepath.Join(dir, "b.xlsx"), []types.Sheet{{Name: "ragged", Table: ragged}}))

	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))
	require.Error(t, adapter.WriteWorkbook(filepath.Join(blocker, "c.xlsx"), sampleSheets()))
}

func TestExcelWorkbookAdapterReadMissingFile(t *testing.T) {
	_, err := NewExcelWorkbookAdapter().ReadWorkbook(filepath.Join(t.TempDir(), "missing.xlsx"))
	require.Error(t, err)
}
