// Package tabular defines the port to the external row/column store the
// ledger persists in. Ranges are addressed in A1 notation, sheet name
// included (e.g. "Members!A:C").
package tabular

import (
	"context"
	"fmt"
)

// Backend is the capability set the ledger requires from a tabular store.
type Backend interface {
	// Get returns the populated rows of a range in order. Missing trailing
	// cells may be absent from a row; callers must not assume rectangular
	// output.
	Get(ctx context.Context, rng string) ([][]string, error)

	// Append inserts rows after the last populated row of the range. It
	// never shifts existing rows.
	Append(ctx context.Context, rng string, rows [][]any) error

	// Update overwrites the exact cell range with the given rows.
	Update(ctx context.Context, cellRng string, rows [][]any) error

	// Clear blanks the cells of the exact range. The row itself remains, so
	// row indices of subsequent rows are preserved.
	Clear(ctx context.Context, cellRng string) error
}

// ReadError reports a failed range fetch, carrying the range identifier the
// caller addressed.
type ReadError struct {
	Range string
	Err   error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read range %s: %v", e.Range, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }
