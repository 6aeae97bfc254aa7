package store

import (
	"context"
	"errors"
	"testing"

	"iuran/internal/tabular"
	"iuran/internal/tabular/memory"
)

func newTestBackend() *memory.Backend {
	b := memory.New()
	b.Seed("Members", [][]string{{"id", "name", "active"}})
	b.Seed("Payments", [][]string{{"paymentKey", "memberId", "month"}})
	b.Seed("Transactions", [][]string{{"id", "date", "description", "type", "amount"}})
	return b
}

func TestEnsureSeededPopulatesEmptyRoster(t *testing.T) {
	backend := newTestBackend()
	roster := []string{"ALPHA", "BRAVO", "CHARLIE"}
	ledger := New(backend, Config{Roster: roster})

	snap, err := ledger.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(snap.Members) != len(roster) {
		t.Fatalf("expected %d members, got %d", len(roster), len(snap.Members))
	}
	for i, m := range snap.Members {
		if m.ID != int64(i+1) {
			t.Fatalf("member %d: id=%d", i, m.ID)
		}
		if m.Name != roster[i] {
			t.Fatalf("member %d: name=%q", i, m.Name)
		}
		if !m.Active {
			t.Fatalf("member %d should be active", i)
		}
	}
	// The stored flag is the exact string "TRUE".
	rows := backend.Rows("Members")
	if rows[1][2] != "TRUE" {
		t.Fatalf("stored flag = %q", rows[1][2])
	}
}

func TestEnsureSeededWritesHeaderOnBlankSheet(t *testing.T) {
	backend := memory.New() // no header anywhere
	ledger := New(backend, Config{Roster: []string{"ALPHA", "BRAVO"}})

	snap, err := ledger.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(snap.Members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(snap.Members))
	}
	rows := backend.Rows("Members")
	if len(rows) != 3 || rows[0][0] != "id" {
		t.Fatalf("expected header plus two rows, got %v", rows)
	}
}

func TestEnsureSeededIsNoOpWhenPopulated(t *testing.T) {
	backend := newTestBackend()
	backend.Seed("Members", [][]string{
		{"id", "name", "active"},
		{"1", "EXISTING", "TRUE"},
	})
	ledger := New(backend, Config{Roster: []string{"ALPHA", "BRAVO"}})

	snap, err := ledger.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(snap.Members) != 1 || snap.Members[0].Name != "EXISTING" {
		t.Fatalf("seeder must not touch a populated range: %+v", snap.Members)
	}
}

func TestSnapshotDefaultRosterSize(t *testing.T) {
	ledger := New(newTestBackend(), Config{})
	snap, err := ledger.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(snap.Members) != len(DefaultRoster) {
		t.Fatalf("expected %d members, got %d", len(DefaultRoster), len(snap.Members))
	}
	for _, m := range snap.Members {
		if !m.Active {
			t.Fatalf("seeded member %d should be active", m.ID)
		}
	}
	if snap.MonthlyAmount != DefaultMonthlyAmount {
		t.Fatalf("monthly amount = %d", snap.MonthlyAmount)
	}
}

func TestSnapshotMonthlyAmountFromCell(t *testing.T) {
	backend := newTestBackend()
	backend.Seed("Config", [][]string{{"25000"}})
	ledger := New(backend, Config{Roster: []string{"A"}, AmountCell: "Config!A1"})

	snap, err := ledger.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if snap.MonthlyAmount != 25000 {
		t.Fatalf("monthly amount = %d", snap.MonthlyAmount)
	}
}

func TestSnapshotMonthlyAmountCellFallback(t *testing.T) {
	backend := newTestBackend()
	backend.Seed("Config", [][]string{{"not a number"}})
	ledger := New(backend, Config{Roster: []string{"A"}, AmountCell: "Config!A1", MonthlyAmount: 15000})

	snap, err := ledger.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if snap.MonthlyAmount != 15000 {
		t.Fatalf("expected fallback amount, got %d", snap.MonthlyAmount)
	}
}

// failingBackend fails Get for one range, delegating everything else.
type failingBackend struct {
	tabular.Backend
	failRange string
	err       error
}

func (f *failingBackend) Get(ctx context.Context, rng string) ([][]string, error) {
	if rng == f.failRange {
		return nil, &tabular.ReadError{Range: rng, Err: f.err}
	}
	return f.Backend.Get(ctx, rng)
}

func TestSnapshotAbortsOnAnyRangeFailure(t *testing.T) {
	boom := errors.New("permission denied")
	for _, failRange := range []string{"Members!A:C", "Payments!A:C", "Transactions!A:E"} {
		backend := &failingBackend{Backend: newTestBackend(), failRange: failRange, err: boom}
		ledger := New(backend, Config{Roster: []string{"A"}})

		_, err := ledger.Snapshot(context.Background())
		if err == nil {
			t.Fatalf("%s: expected error", failRange)
		}
		var readErr *tabular.ReadError
		if !errors.As(err, &readErr) {
			t.Fatalf("%s: expected ReadError, got %v", failRange, err)
		}
		if readErr.Range != failRange {
			t.Fatalf("expected range %s in error, got %s", failRange, readErr.Range)
		}
		if !errors.Is(err, boom) {
			t.Fatalf("%s: underlying cause lost: %v", failRange, err)
		}
	}
}
