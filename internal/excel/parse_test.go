package excel

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	book := excelize.NewFile()
	sheet := book.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, book.SetSheetRow(sheet, cell, &row))
	}
	buf, err := book.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestParseHeadersAndValues(t *testing.T) {
	buf := workbook(t, [][]any{
		{"Name", "Score", "Passed"},
		{"Ann", 91.5, true},
		{"Ben", 42, false},
	})

	sheet, err := Parse(buf)
	require.NoError(t, err)
	require.Equal(t, []string{"Name", "Score", "Passed"}, sheet.Headers)
	require.Len(t, sheet.Rows, 2)

	name, _ := sheet.Rows[0].Get("Name")
	score, _ := sheet.Rows[0].Get("Score")
	passed, _ := sheet.Rows[0].Get("Passed")
	require.Equal(t, "Ann", name)
	require.Equal(t, 91.5, score)
	require.Equal(t, true, passed)

	require.Equal(t, []string{"Name", "Score", "Passed"}, sheet.Rows[0].Keys())
}

func TestParseMissingCellsAreNull(t *testing.T) {
	buf := workbook(t, [][]any{
		{"A", "B", "C"},
		{"x"},
		{"y", nil, "z"},
	})

	sheet, err := Parse(buf)
	require.NoError(t, err)
	require.Len(t, sheet.Rows, 2)

	for _, row := range sheet.Rows {
		require.Equal(t, 3, row.Len(), "every row carries the full header set")
	}

	b, ok := sheet.Rows[0].Get("B")
	require.True(t, ok)
	require.Nil(t, b)
	c, ok := sheet.Rows[0].Get("C")
	require.True(t, ok)
	require.Nil(t, c)

	b, _ = sheet.Rows[1].Get("B")
	require.Nil(t, b)
	c, _ = sheet.Rows[1].Get("C")
	require.Equal(t, "z", c)
}

func TestParseSkipsBlankRows(t *testing.T) {
	buf := workbook(t, [][]any{
		{"A"},
		{"one"},
		{nil},
		{"two"},
	})

	sheet, err := Parse(buf)
	require.NoError(t, err)
	require.Len(t, sheet.Rows, 2)
}

func TestParseHeaderNaming(t *testing.T) {
	buf := workbook(t, [][]any{
		{"A", nil, "A", nil},
		{"1", "2", "3", "4"},
	})

	sheet, err := Parse(buf)
	require.NoError(t, err)
	require.Equal(t, []string{"A", "__EMPTY", "A_1", "__EMPTY_1"}, sheet.Headers)
}

func TestParseTrailingBlankHeaderKeepsColumn(t *testing.T) {
	buf := workbook(t, [][]any{
		{"A", "B", nil},
		{"a", "b", "x"},
	})

	sheet, err := Parse(buf)
	require.NoError(t, err)
	require.Equal(t, []string{"A", "B", "__EMPTY"}, sheet.Headers)
	require.Len(t, sheet.Rows, 1)

	v, ok := sheet.Rows[0].Get("__EMPTY")
	require.True(t, ok)
	require.Equal(t, "x", v)
}

func TestParseHeaderSuffixCollision(t *testing.T) {
	buf := workbook(t, [][]any{
		{"A", "A_1", "A"},
		{"1", "2", "3"},
	})

	sheet, err := Parse(buf)
	require.NoError(t, err)
	require.Equal(t, []string{"A", "A_1", "A_2"}, sheet.Headers)
	require.Equal(t, 3, sheet.Rows[0].Len())
}

func TestParseFirstSheetOnly(t *testing.T) {
	book := excelize.NewFile()
	first := book.GetSheetName(0)
	require.NoError(t, book.SetSheetRow(first, "A1", &[]any{"Keep"}))
	require.NoError(t, book.SetSheetRow(first, "A2", &[]any{"yes"}))

	_, err := book.NewSheet("Second")
	require.NoError(t, err)
	require.NoError(t, book.SetSheetRow("Second", "A1", &[]any{"Ignore"}))
	require.NoError(t, book.SetSheetRow("Second", "A2", &[]any{"no"}))

	buf, err := book.WriteToBuffer()
	require.NoError(t, err)

	sheet, err := Parse(buf)
	require.NoError(t, err)
	require.Equal(t, []string{"Keep"}, sheet.Headers)
	require.Len(t, sheet.Rows, 1)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse(strings.NewReader("this is not a workbook"))
	require.Error(t, err)
}

func TestParseEmptySheet(t *testing.T) {
	book := excelize.NewFile()
	buf, err := book.WriteToBuffer()
	require.NoError(t, err)

	sheet, err := Parse(buf)
	require.NoError(t, err)
	require.Empty(t, sheet.Headers)
	require.Empty(t, sheet.Rows)
}
