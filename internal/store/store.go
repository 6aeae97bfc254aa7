// Package store is the record layer between the typed ledger domain and the
// tabular backend: it reads and normalizes the three ranges, seeds the member
// roster on first contact, and routes named mutations to single range
// operations.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"iuran/internal/core"
	"iuran/internal/tabular"
)

const DefaultMonthlyAmount = 20000

var (
	ErrNotFound      = errors.New("not found")
	ErrUnknownAction = errors.New("unknown action")
	ErrInvalidInput  = errors.New("invalid input")
)

// Config names the sheets backing each range and the seed data. Zero values
// fall back to the defaults the spreadsheet template uses.
type Config struct {
	MembersSheet      string
	PaymentsSheet     string
	TransactionsSheet string

	// AmountCell optionally names a single cell holding the monthly due
	// (e.g. "Config!B1"). When unset or unreadable, MonthlyAmount applies.
	AmountCell    string
	MonthlyAmount int64

	// Roster seeds the member sheet when it is found empty.
	Roster []string
}

type Ledger struct {
	backend tabular.Backend
	cfg     Config
}

func New(backend tabular.Backend, cfg Config) *Ledger {
	if cfg.MembersSheet == "" {
		cfg.MembersSheet = "Members"
	}
	if cfg.PaymentsSheet == "" {
		cfg.PaymentsSheet = "Payments"
	}
	if cfg.TransactionsSheet == "" {
		cfg.TransactionsSheet = "Transactions"
	}
	if cfg.MonthlyAmount <= 0 {
		cfg.MonthlyAmount = DefaultMonthlyAmount
	}
	if cfg.Roster == nil {
		cfg.Roster = DefaultRoster
	}
	return &Ledger{backend: backend, cfg: cfg}
}

func (l *Ledger) membersRange() string      { return l.cfg.MembersSheet + "!A:C" }
func (l *Ledger) paymentsRange() string     { return l.cfg.PaymentsSheet + "!A:C" }
func (l *Ledger) transactionsRange() string { return l.cfg.TransactionsSheet + "!A:E" }

// Snapshot reads the full ledger state. The member range is read first so
// the seeder can run; payments and transactions are fetched concurrently and
// the first failure aborts the whole read. Nothing is cached between calls.
func (l *Ledger) Snapshot(ctx context.Context) (core.Snapshot, error) {
	memberRows, err := l.ensureSeeded(ctx)
	if err != nil {
		return core.Snapshot{}, err
	}

	var (
		paymentRows     [][]string
		transactionRows [][]string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		paymentRows, err = l.backend.Get(gctx, l.paymentsRange())
		return err
	})
	g.Go(func() error {
		var err error
		transactionRows, err = l.backend.Get(gctx, l.transactionsRange())
		return err
	})
	if err := g.Wait(); err != nil {
		return core.Snapshot{}, err
	}

	return core.Snapshot{
		Members:       normalizeMembers(memberRows),
		Payments:      normalizePayments(paymentRows),
		Transactions:  normalizeTransactions(transactionRows),
		MonthlyAmount: l.monthlyAmount(ctx),
	}, nil
}

// monthlyAmount reads the configured amount cell when one is set. Any
// failure degrades to the static default; the snapshot never fails on it.
func (l *Ledger) monthlyAmount(ctx context.Context) int64 {
	if l.cfg.AmountCell == "" {
		return l.cfg.MonthlyAmount
	}
	rows, err := l.backend.Get(ctx, l.cfg.AmountCell)
	if err != nil {
		slog.WarnContext(ctx, "Amount cell unreadable, using default",
			"cell", l.cfg.AmountCell, "default", l.cfg.MonthlyAmount, "error", err)
		return l.cfg.MonthlyAmount
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return l.cfg.MonthlyAmount
	}
	amount, err := strconv.ParseInt(strings.TrimSpace(rows[0][0]), 10, 64)
	if err != nil || amount <= 0 {
		slog.WarnContext(ctx, "Amount cell not a positive integer, using default",
			"cell", l.cfg.AmountCell, "value", rows[0][0], "default", l.cfg.MonthlyAmount)
		return l.cfg.MonthlyAmount
	}
	return amount
}

// ensureSeeded populates the member range from the roster when it holds at
// most a header row, then re-reads it. Existing rows are never overwritten;
// a failed re-read after a successful append is surfaced as-is, no rollback.
func (l *Ledger) ensureSeeded(ctx context.Context) ([][]string, error) {
	rows, err := l.backend.Get(ctx, l.membersRange())
	if err != nil {
		return nil, err
	}
	if len(rows) > 1 {
		return rows, nil
	}

	slog.InfoContext(ctx, "Member range empty, seeding roster", "members", len(l.cfg.Roster))
	var seed [][]any
	if len(rows) == 0 {
		// A brand-new sheet has no header either; write it so row 1 stays
		// reserved and seeded members survive normalization.
		seed = append(seed, []any{"id", "name", "active"})
	}
	for i, name := range l.cfg.Roster {
		seed = append(seed, []any{i + 1, name, "TRUE"})
	}
	if err := l.backend.Append(ctx, l.membersRange(), seed); err != nil {
		return nil, fmt.Errorf("seed members: %w", err)
	}
	return l.backend.Get(ctx, l.membersRange())
}
