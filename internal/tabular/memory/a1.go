package memory

import (
	"fmt"
	"strconv"
	"strings"
)

// rangeRef is a parsed A1 range. Row numbers are 1-based as written;
// StartRow/EndRow of 0 mean the bound is open (whole-column ranges like
// "Members!A:C"). Column indices are 0-based; EndCol of -1 means open.
type rangeRef struct {
	Sheet    string
	StartCol int
	EndCol   int
	StartRow int
	EndRow   int
}

func (r rangeRef) boundedRows() bool { return r.StartRow > 0 }

func parseRange(rng string) (rangeRef, error) {
	sheet, ref, ok := strings.Cut(rng, "!")
	if !ok || sheet == "" {
		return rangeRef{}, fmt.Errorf("range %q missing sheet name", rng)
	}
	sheet = strings.Trim(sheet, "'")

	first, second, _ := strings.Cut(ref, ":")
	sc, sr, err := parseCell(first)
	if err != nil {
		return rangeRef{}, fmt.Errorf("range %q: %w", rng, err)
	}
	out := rangeRef{Sheet: sheet, StartCol: sc, EndCol: sc, StartRow: sr, EndRow: sr}
	if second != "" {
		ec, er, err := parseCell(second)
		if err != nil {
			return rangeRef{}, fmt.Errorf("range %q: %w", rng, err)
		}
		out.EndCol, out.EndRow = ec, er
	}
	if out.EndRow == 0 && out.StartRow > 0 {
		out.EndRow = out.StartRow
	}
	if out.EndCol == -1 && out.StartCol >= 0 {
		out.EndCol = out.StartCol
	}
	return out, nil
}

// parseCell splits a reference like "C12" into column index 2 and row 12.
// "C" alone yields row 0 (open), "12" alone yields column -1 (open).
func parseCell(cell string) (col, row int, err error) {
	cell = strings.TrimSpace(strings.ToUpper(cell))
	if cell == "" {
		return 0, 0, fmt.Errorf("empty cell reference")
	}
	i := 0
	for i < len(cell) && cell[i] >= 'A' && cell[i] <= 'Z' {
		i++
	}
	letters, digits := cell[:i], cell[i:]
	col = -1
	if letters != "" {
		col = 0
		for _, ch := range letters {
			col = col*26 + int(ch-'A'+1)
		}
		col--
	}
	if digits != "" {
		row, err = strconv.Atoi(digits)
		if err != nil || row < 1 {
			return 0, 0, fmt.Errorf("bad row in cell %q", cell)
		}
	}
	return col, row, nil
}
