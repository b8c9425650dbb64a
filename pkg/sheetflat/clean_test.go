package sheetflat

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/sheetflat/pkg/sheetflat/models"
	"github.com/xuri/excelize/v2"
)

// writeContactBook saves a workbook whose header spans two rows: "Contact"
// merged over A1:B1 with the leaf labels in row 2. Row 4 is empty.
func writeContactBook(t *testing.T, dir string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sheet1"
	require.NoError(t, f.SetCellValue(sheet, "A1", "Contact"))
	require.NoError(t, f.MergeCell(sheet, "A1", "B1"))
	require.NoError(t, f.SetCellValue(sheet, "A2", "Name"))
	require.NoError(t, f.SetCellValue(sheet, "B2", "Phone"))
	require.NoError(t, f.SetCellValue(sheet, "A3", "Alice"))
	require.NoError(t, f.SetCellValue(sheet, "B3", "555-1000"))
	require.NoError(t, f.SetCellValue(sheet, "A5", "Bob"))
	require.NoError(t, f.SetCellValue(sheet, "B5", "555-2000"))

	path := filepath.Join(dir, "contacts.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func readRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetList()[0])
	require.NoError(t, err)
	return rows
}

func TestCleanSpreadsheet_Contact(t *testing.T) {
	dir := t.TempDir()
	in := writeContactBook(t, dir)
	out := filepath.Join(dir, "contacts_cleaned.xlsx")

	summary, err := CleanSpreadsheet(in, out, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"Contact Name", "Contact Phone"}, summary.Header)
	assert.Equal(t, 1, summary.HeaderRow)
	assert.Equal(t, 2, summary.LastHeaderRow)
	assert.Equal(t, 3, summary.DataStartRow)
	assert.Equal(t, 2, summary.RowsKept)
	assert.Equal(t, 1, summary.RowsDropped)
	assert.Equal(t, "Sheet1", summary.Sheet)
	assert.Equal(t, in, summary.InputPath)
	assert.Equal(t, out, summary.OutputPath)
	assert.NotEmpty(t, summary.RunID)
	assert.NotEmpty(t, summary.Duration)

	assert.Equal(t, [][]string{
		{"Contact Name", "Contact Phone"},
		{"Alice", "555-1000"},
		{"Bob", "555-2000"},
	}, readRows(t, out))
}

func TestCleanSpreadsheet_Idempotent(t *testing.T) {
	dir := t.TempDir()
	in := writeContactBook(t, dir)
	first := filepath.Join(dir, "first.xlsx")
	second := filepath.Join(dir, "second.xlsx")

	s1, err := CleanSpreadsheet(in, first, DefaultOptions())
	require.NoError(t, err)
	s2, err := CleanSpreadsheet(first, second, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, s1.Header, s2.Header)
	assert.Equal(t, s1.RowsKept, s2.RowsKept)
	assert.Zero(t, s2.RowsDropped)
	assert.Equal(t, readRows(t, first), readRows(t, second))
}

func TestCleanSpreadsheet_CSV(t *testing.T) {
	dir := t.TempDir()
	in := writeContactBook(t, dir)
	out := filepath.Join(dir, "contacts.csv")

	_, err := CleanSpreadsheet(in, out, DefaultOptions())
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "Contact Name,Contact Phone\nAlice,555-1000\nBob,555-2000\n", string(data))
}

func TestCleanSpreadsheet_FormattedNumbers(t *testing.T) {
	dir := t.TempDir()
	f := excelize.NewFile()
	sheet := "Sheet1"
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"Name", "Joined", "Share"}))
	require.NoError(t, f.SetCellValue(sheet, "A2", "Alice"))
	require.NoError(t, f.SetCellValue(sheet, "B2", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, f.SetCellValue(sheet, "C2", 0.25))
	pct, err := f.NewStyle(&excelize.Style{NumFmt: 9})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle(sheet, "C2", "C2", pct))
	in := filepath.Join(dir, "joined.xlsx")
	require.NoError(t, f.SaveAs(in))
	require.NoError(t, f.Close())

	source := readRows(t, in)
	require.Len(t, source, 2)
	joined := source[1][1]
	require.NotEqual(t, "45293", joined)

	out := filepath.Join(dir, "joined_cleaned.xlsx")
	_, err = CleanSpreadsheet(in, out, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Name", "Joined", "Share"},
		{"Alice", joined, "25%"},
	}, readRows(t, out))

	csvOut := filepath.Join(dir, "joined_cleaned.csv")
	_, err = CleanSpreadsheet(in, csvOut, DefaultOptions())
	require.NoError(t, err)
	data, err := os.ReadFile(csvOut)
	require.NoError(t, err)
	assert.Equal(t, "Name,Joined,Share\nAlice,"+joined+",25%\n", string(data))
}

func TestCleanSpreadsheet_EmptySheet(t *testing.T) {
	dir := t.TempDir()
	f := excelize.NewFile()
	in := filepath.Join(dir, "empty.xlsx")
	require.NoError(t, f.SaveAs(in))
	require.NoError(t, f.Close())

	out := filepath.Join(dir, "empty.csv")
	for _, s := range []Strategy{StrategyMaxFill, StrategyMergeExtent} {
		opts := DefaultOptions()
		opts.Strategy = s
		summary, err := CleanSpreadsheet(in, out, opts)
		require.NoError(t, err, s)
		assert.Empty(t, summary.Header)
		assert.Zero(t, summary.RowsKept)
		assert.Zero(t, summary.HeaderRow)
		assert.FileExists(t, out)
	}
}

func TestCleanSpreadsheet_KeywordMiss(t *testing.T) {
	dir := t.TempDir()
	in := writeContactBook(t, dir)
	out := filepath.Join(dir, "out.xlsx")

	opts := DefaultOptions()
	opts.Strategy = StrategyKeyword
	opts.Keywords = []string{"Item Description"}

	_, err := CleanSpreadsheet(in, out, opts)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrHeaderNotFound)

	var se *StageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, StageBoundary, se.Stage)
	assert.Equal(t, in, se.Path)
	assert.NoFileExists(t, out)
}

func TestCleanSpreadsheet_Keyword(t *testing.T) {
	dir := t.TempDir()
	in := writeContactBook(t, dir)
	out := filepath.Join(dir, "out.csv")

	opts := DefaultOptions()
	opts.Strategy = StrategyKeyword
	opts.Keywords = []string{"Phone"}

	summary, err := CleanSpreadsheet(in, out, opts)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.HeaderRow)
	assert.Equal(t, []string{"Contact Name", "Contact Phone"}, summary.Header)
	assert.Equal(t, 2, summary.RowsKept)
}

func TestCleanSpreadsheet_NotReadable(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.xlsx")

	_, err := CleanSpreadsheet(filepath.Join(dir, "missing.xlsx"), out, DefaultOptions())
	assert.ErrorIs(t, err, ErrFileNotReadable)

	junk := filepath.Join(dir, "junk.xlsx")
	require.NoError(t, os.WriteFile(junk, []byte("not a workbook"), 0o644))
	_, err = CleanSpreadsheet(junk, out, DefaultOptions())
	assert.ErrorIs(t, err, ErrFileNotReadable)
	assert.NoFileExists(t, out)
}

func TestCleanSpreadsheet_UnknownSheet(t *testing.T) {
	dir := t.TempDir()
	in := writeContactBook(t, dir)

	opts := DefaultOptions()
	opts.Sheet = "Nope"
	_, err := CleanSpreadsheet(in, filepath.Join(dir, "out.xlsx"), opts)
	var se *StageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, StageRead, se.Stage)
}

func TestClean_MalformedMerge(t *testing.T) {
	grid := models.NewGrid("Sheet1", [][]models.Value{
		{models.StringValue("a"), models.StringValue("b")},
	}, []models.MergeRange{
		{MinRow: 1, MaxRow: 1, MinCol: 1, MaxCol: 2},
		{MinRow: 1, MaxRow: 2, MinCol: 2, MaxCol: 2},
	})

	_, _, err := Clean(grid, DefaultOptions())
	assert.ErrorIs(t, err, ErrMalformedMergeRange)
	var se *StageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, StageMerges, se.Stage)
}

func TestClean_DoesNotModifyGrid(t *testing.T) {
	grid := models.NewGrid("Sheet1", [][]models.Value{
		{models.StringValue("Sales"), models.Empty},
		{models.StringValue("Q1"), models.StringValue("Q2")},
		{models.NumberValue(1, ""), models.NumberValue(2, "")},
	}, []models.MergeRange{{MinRow: 1, MaxRow: 1, MinCol: 1, MaxCol: 2}})
	before := *grid
	before.Cells = make([][]models.Value, len(grid.Cells))
	for i, row := range grid.Cells {
		before.Cells[i] = append([]models.Value(nil), row...)
	}
	before.Merges = append([]models.MergeRange(nil), grid.Merges...)

	table, summary, err := Clean(grid, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"Sales Q1", "Sales Q2"}, table.Header)
	assert.Equal(t, [][]models.Value{{models.NumberValue(1, ""), models.NumberValue(2, "")}}, table.Rows)
	assert.Empty(t, summary.InputPath)
	assert.Equal(t, &before, grid)
}

func TestClean_DedupPolicy(t *testing.T) {
	grid := models.NewGrid("Sheet1", [][]models.Value{
		{models.StringValue("Total"), models.StringValue("Region")},
		{models.StringValue("Total"), models.StringValue("North")},
		{models.NumberValue(5, ""), models.StringValue("x")},
	}, nil)

	opts := DefaultOptions()
	opts.Strategy = StrategyKeyword
	opts.Keywords = []string{"North"}

	table, _, err := Clean(grid, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"Total Total", "Region North"}, table.Header)

	opts.HeaderPolicy = PolicyDedup
	table, _, err = Clean(grid, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"Total", "Region North"}, table.Header)
}

func TestClean_TrailingWhitespaceRowsCounted(t *testing.T) {
	grid := models.NewGrid("Sheet1", [][]models.Value{
		{models.StringValue("Name")},
		{models.StringValue("Alice")},
		{models.StringValue("  ")},
		{models.StringValue("\t")},
	}, nil)

	table, summary, err := Clean(grid, DefaultOptions())
	require.NoError(t, err)
	assert.Len(t, table.Rows, 1)
	assert.Equal(t, 2, summary.RowsDropped)
	assert.Equal(t, grid.MaxRow-summary.LastHeaderRow, summary.RowsKept+summary.RowsDropped)
}

func TestCleanSpreadsheet_TrailingWhitespaceRows(t *testing.T) {
	dir := t.TempDir()
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Name", "Phone"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"Alice", "555"}))
	require.NoError(t, f.SetCellValue("Sheet1", "A3", " "))
	require.NoError(t, f.SetCellValue("Sheet1", "B4", " "))
	in := filepath.Join(dir, "padded.xlsx")
	require.NoError(t, f.SaveAs(in))
	require.NoError(t, f.Close())

	summary, err := CleanSpreadsheet(in, filepath.Join(dir, "out.csv"), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.RowsKept)
	assert.Equal(t, 2, summary.RowsDropped)
}

func TestClean_InvalidOptionsStage(t *testing.T) {
	opts := DefaultOptions()
	opts.Strategy = StrategyExpr
	opts.Expr = "filled >"

	_, _, err := Clean(models.NewGrid("Sheet1", nil, nil), opts)
	assert.ErrorIs(t, err, ErrInvalidOptions)
	var se *StageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, StageOptions, se.Stage)

	_, err = CleanSpreadsheet("in.xlsx", "out.xlsx", opts)
	require.True(t, errors.As(err, &se))
	assert.Equal(t, StageOptions, se.Stage)
	assert.Equal(t, "in.xlsx", se.Path)
	assert.Contains(t, err.Error(), "in.xlsx: options stage")
}

func TestOptions_PrepareCompilesExprOnce(t *testing.T) {
	opts := DefaultOptions()
	opts.Strategy = StrategyExpr
	opts.Expr = "filled >= 2"

	bopts, err := opts.prepare()
	require.NoError(t, err)
	require.NotNil(t, bopts.Matcher)

	grid := models.NewGrid("Sheet1", [][]models.Value{
		{models.StringValue("title")},
		{models.StringValue("a"), models.StringValue("b")},
		{models.StringValue("1"), models.StringValue("2")},
	}, nil)
	table, summary, err := clean(grid, opts, bopts)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.HeaderRow)
	assert.Equal(t, []string{"a", "b"}, table.Header)

	opts.Strategy = StrategyMaxFill
	bopts, err = opts.prepare()
	require.NoError(t, err)
	assert.Nil(t, bopts.Matcher)
}

func TestOptions_Validate(t *testing.T) {
	assert.NoError(t, DefaultOptions().Validate())

	tests := []struct {
		name   string
		modify func(*Options)
	}{
		{"keyword without keywords", func(o *Options) { o.Strategy = StrategyKeyword }},
		{"expr without expression", func(o *Options) { o.Strategy = StrategyExpr }},
		{"expr syntax error", func(o *Options) { o.Strategy = StrategyExpr; o.Expr = "filled >" }},
		{"unknown strategy", func(o *Options) { o.Strategy = "densest" }},
		{"unknown policy", func(o *Options) { o.HeaderPolicy = "merge" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.modify(&opts)
			assert.ErrorIs(t, opts.Validate(), ErrInvalidOptions)
		})
	}
}

func TestStageError(t *testing.T) {
	err := NewStageError("in.xlsx", StageWrite, errors.New("disk full"))
	assert.Equal(t, "in.xlsx: write stage: disk full", err.Error())
	assert.Equal(t, "boundary stage: x", NewStageError("", StageBoundary, errors.New("x")).Error())
}
