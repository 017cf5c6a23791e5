package excel

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"
)

var ErrNoSheets = errors.New("excel: workbook has no sheets")

// Sheet is the decoded first worksheet of an uploaded workbook.
type Sheet struct {
	Headers []string
	Rows    Rows
}

// Parse decodes an xlsx workbook and converts the first sheet (by position,
// not by name) into ordered row objects. Headers come from the first row;
// every data row carries the full header set, with empty cells as explicit
// nulls. Fully blank rows are skipped.
func Parse(r io.Reader) (*Sheet, error) {
	book, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("decode workbook: %w", err)
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}

	raw, err := book.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(raw) == 0 {
		return &Sheet{Headers: []string{}, Rows: Rows{}}, nil
	}

	// GetRows trims trailing empty cells per row, so the header row alone
	// can understate the column count. Pad it to the widest row first;
	// otherwise a trailing blank header loses its column and every value
	// under it.
	width := 0
	for _, cells := range raw {
		if len(cells) > width {
			width = len(cells)
		}
	}
	headerCells := make([]string, width)
	copy(headerCells, raw[0])

	headers := headerNames(headerCells)
	rows := make(Rows, 0, len(raw)-1)
	for _, cells := range raw[1:] {
		if blank(cells) {
			continue
		}
		var row Row
		for i, header := range headers {
			if i < len(cells) {
				row.Set(header, cellValue(cells[i]))
			} else {
				row.Set(header, nil)
			}
		}
		rows = append(rows, row)
	}

	return &Sheet{Headers: headers, Rows: rows}, nil
}

// headerNames mirrors how sheet_to_json labels columns: blank header cells
// become __EMPTY, __EMPTY_1, ... and duplicates get _1, _2, ... suffixes.
func headerNames(cells []string) []string {
	headers := make([]string, 0, len(cells))
	used := map[string]bool{}
	empties := 0
	for _, cell := range cells {
		name := cell
		if name == "" {
			if empties == 0 {
				name = "__EMPTY"
			} else {
				name = fmt.Sprintf("__EMPTY_%d", empties)
			}
			empties++
		}
		if used[name] {
			base := name
			for n := 1; ; n++ {
				candidate := fmt.Sprintf("%s_%d", base, n)
				if !used[candidate] {
					name = candidate
					break
				}
			}
		}
		used[name] = true
		headers = append(headers, name)
	}
	return headers
}

// cellValue converts the formatted cell text to the JSON type consumers
// expect: nil for empty cells, numbers and booleans where the text parses
// as one, strings otherwise.
func cellValue(text string) any {
	if text == "" {
		return nil
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return f
	}
	switch text {
	case "TRUE":
		return true
	case "FALSE":
		return false
	}
	return text
}

func blank(cells []string) bool {
	for _, cell := range cells {
		if cell != "" {
			return false
		}
	}
	return true
}
