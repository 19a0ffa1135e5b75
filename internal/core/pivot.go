package core

import (
	"context"
	"fmt"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"codescan-report/internal/types"
)

// LabelSeparator joins the values of a composite axis label. Axis entries
// are keyed by their label, so composites that render the same, such as
// ("a / b", "c") and ("a", "b / c"), share one row or column.
const LabelSeparator = " / "

type PivotEngine struct {
	aggregators map[types.AggregatorName]Aggregator
}

func NewPivotEngine() PivotEngine {
	return PivotEngine{aggregators: defaultAggregators()}
}

// Pivot cross-tabulates table. The row axis holds one entry per distinct
// combination of spec.RowKeys and the column axis one per distinct
// combination of spec.ColumnKeys, both in order of first appearance.
// Rows with an empty row-key value are left out of the grid; an empty
// column-key value forms its own column. Every bucket is filled, empty
// buckets with the aggregator's zero value.
func (e PivotEngine) Pivot(ctx context.Context, table types.Table, spec types.PivotSpec) (types.Table, error) {
	spec = withDefaultAggregator(spec)
	if err := validatePivotSpec(spec); err != nil {
		return types.Table{}, err
	}
	aggregate, ok := e.aggregators[spec.Aggregator]
	if !ok {
		return types.Table{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unknown pivot aggregator %q", spec.Aggregator))
	}
	rowColumns, err := columnIndexes(table, spec.RowKeys)
	if err != nil {
		return types.Table{}, err
	}
	colColumns, err := columnIndexes(table, spec.ColumnKeys)
	if err != nil {
		return types.Table{}, err
	}
	valueColumns, err := columnIndexes(table, []string{spec.ValueKey})
	if err != nil {
		return types.Table{}, err
	}
	assert.NotEmpty(ctx, spec.ValueKey, "pivot value key must be set")

	rows := newAxis()
	cols := newAxis()
	buckets := map[bucket][]string{}
	skipped := 0
	for _, row := range table.Rows {
		rowValues, complete := cellsAt(row, rowColumns)
		if !complete {
			skipped++
			continue
		}
		colValues, _ := cellsAt(row, colColumns)
		key := bucket{row: rows.index(rowValues), col: cols.index(colValues)}
		buckets[key] = append(buckets[key], cellAt(row, valueColumns[0]))
	}

	header := make([]string, 0, len(cols.labels)+1)
	header = append(header, strings.Join(spec.RowKeys, LabelSeparator))
	header = append(header, cols.labels...)
	result := types.NewTable(header)
	for r, label := range rows.labels {
		line := make([]string, 0, len(header))
		line = append(line, label)
		for c := range cols.labels {
			value, err := aggregate(buckets[bucket{row: r, col: c}])
			if err != nil {
				return types.Table{}, errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg(fmt.Sprintf("cannot aggregate %s with %s", spec.ValueKey, spec.Aggregator)).
					WithCause(err)
			}
			line = append(line, value)
		}
		result.Append(line)
	}

	log.Ctx(ctx).Debug().
		Strs("rows", spec.RowKeys).
		Strs("columns", spec.ColumnKeys).
		Int("row_labels", len(rows.labels)).
		Int("column_labels", len(cols.labels)).
		Int("skipped", skipped).
		Msg("pivot built")
	return result, nil
}

type bucket struct {
	row int
	col int
}

// axis assigns a stable position to each distinct label.
type axis struct {
	positions map[string]int
	labels    []string
}

func newAxis() *axis {
	return &axis{positions: map[string]int{}}
}

func (a *axis) index(values []string) int {
	label := strings.Join(values, LabelSeparator)
	if pos, ok := a.positions[label]; ok {
		return pos
	}
	pos := len(a.labels)
	a.positions[label] = pos
	a.labels = append(a.labels, label)
	return pos
}

// cellsAt returns the cells at the given positions and whether all of
// them are non-empty.
func cellsAt(row []string, columns []int) ([]string, bool) {
	values := make([]string, len(columns))
	complete := true
	for i, column := range columns {
		values[i] = cellAt(row, column)
		if strings.TrimSpace(values[i]) == "" {
			complete = false
		}
	}
	return values, complete
}

func cellAt(row []string, column int) string {
	if column < 0 || column >= len(row) {
		return ""
	}
	return row[column]
}

func columnIndexes(table types.Table, names []string) ([]int, error) {
	indexes := make([]int, 0, len(names))
	for _, name := range names {
		idx := table.Column(name)
		if idx < 0 {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("pivot column %q not found in table", name))
		}
		indexes = append(indexes, idx)
	}
	return indexes, nil
}

func withDefaultAggregator(spec types.PivotSpec) types.PivotSpec {
	if strings.TrimSpace(string(spec.Aggregator)) == "" {
		spec.Aggregator = types.AggregatorCount
	}
	return spec
}

func validatePivotSpec(spec types.PivotSpec) error {
	if len(spec.RowKeys) == 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("pivot requires at least one row key")
	}
	if len(spec.ColumnKeys) == 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("pivot requires at least one column key")
	}
	if strings.TrimSpace(spec.ValueKey) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("pivot value key is required")
	}
	return nil
}
