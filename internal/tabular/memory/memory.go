// Package memory provides an in-process tabular backend with the same range
// semantics as the Google Sheets implementation. It backs the "memory" data
// backend and doubles as the test double for everything above the port.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"iuran/internal/tabular"
)

type Backend struct {
	mu     sync.Mutex
	sheets map[string][][]string
}

func New() *Backend {
	return &Backend{sheets: make(map[string][][]string)}
}

// Seed replaces the contents of a sheet. Not part of the port; used to
// bootstrap header rows and to arrange fixtures in tests.
func (b *Backend) Seed(sheet string, rows [][]string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	cp := make([][]string, len(rows))
	for i, r := range rows {
		cp[i] = append([]string(nil), r...)
	}
	b.sheets[sheet] = cp
}

// Rows returns a copy of a sheet's raw rows. Test helper.
func (b *Backend) Rows(sheet string) [][]string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return copyRows(b.sheets[sheet])
}

func (b *Backend) Get(_ context.Context, rng string) ([][]string, error) {
	ref, err := parseRange(rng)
	if err != nil {
		return nil, &tabular.ReadError{Range: rng, Err: err}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	rows := b.sheets[ref.Sheet]
	if ref.boundedRows() {
		start, end := ref.StartRow-1, ref.EndRow
		if start >= len(rows) {
			return nil, nil
		}
		if end > len(rows) {
			end = len(rows)
		}
		rows = rows[start:end]
	}
	return copyRows(rows), nil
}

func (b *Backend) Append(_ context.Context, rng string, rows [][]any) error {
	ref, err := parseRange(rng)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	existing := b.sheets[ref.Sheet]
	// The Sheets values.append call writes after the last populated row, so
	// trailing cleared rows get reused rather than skipped.
	for len(existing) > 0 && blank(existing[len(existing)-1]) {
		existing = existing[:len(existing)-1]
	}
	for _, row := range rows {
		existing = append(existing, stringify(row))
	}
	b.sheets[ref.Sheet] = existing
	return nil
}

func (b *Backend) Update(_ context.Context, cellRng string, rows [][]any) error {
	ref, err := parseRange(cellRng)
	if err != nil {
		return err
	}
	if !ref.boundedRows() {
		return fmt.Errorf("update needs a bounded range, got %s", cellRng)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	grid := b.sheets[ref.Sheet]
	for i, row := range rows {
		r := ref.StartRow - 1 + i
		for j, v := range stringify(row) {
			c := ref.StartCol + j
			grid = setCell(grid, r, c, v)
		}
	}
	b.sheets[ref.Sheet] = grid
	return nil
}

func (b *Backend) Clear(_ context.Context, cellRng string) error {
	ref, err := parseRange(cellRng)
	if err != nil {
		return err
	}
	if !ref.boundedRows() {
		return fmt.Errorf("clear needs a bounded range, got %s", cellRng)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	grid := b.sheets[ref.Sheet]
	for r := ref.StartRow - 1; r < ref.EndRow && r < len(grid); r++ {
		if r < 0 {
			continue
		}
		end := ref.EndCol
		if end < 0 || end >= len(grid[r]) {
			end = len(grid[r]) - 1
		}
		for c := ref.StartCol; c <= end; c++ {
			if c < len(grid[r]) {
				grid[r][c] = ""
			}
		}
	}
	b.sheets[ref.Sheet] = grid
	return nil
}

var _ tabular.Backend = (*Backend)(nil)

func copyRows(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = append([]string(nil), r...)
	}
	return out
}

func stringify(row []any) []string {
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = fmt.Sprint(v)
	}
	return out
}

func setCell(grid [][]string, r, c int, v string) [][]string {
	for len(grid) <= r {
		grid = append(grid, nil)
	}
	for len(grid[r]) <= c {
		grid[r] = append(grid[r], "")
	}
	grid[r][c] = v
	return grid
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
