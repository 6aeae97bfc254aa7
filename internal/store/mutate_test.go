package store

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"iuran/internal/core"
)

func TestApplyUnknownAction(t *testing.T) {
	ledger := New(newTestBackend(), Config{Roster: []string{"A"}})
	_, err := ledger.Apply(context.Background(), Mutation{Action: "EXPORT_PDF"})
	if !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("expected ErrUnknownAction, got %v", err)
	}
}

func TestAddMember(t *testing.T) {
	backend := newTestBackend()
	ledger := New(backend, Config{Roster: []string{"A"}})

	ack, err := ledger.Apply(context.Background(), Mutation{Action: ActionAddMember, ID: 99, Name: "new guy"})
	if err != nil || !ack.Success {
		t.Fatalf("ack=%+v err=%v", ack, err)
	}
	rows := backend.Rows("Members")
	last := rows[len(rows)-1]
	if last[0] != "99" || last[1] != "NEW GUY" || last[2] != "TRUE" {
		t.Fatalf("unexpected appended row: %v", last)
	}

	if _, err := ledger.Apply(context.Background(), Mutation{Action: ActionAddMember, ID: 0, Name: "x"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAddTransaction(t *testing.T) {
	backend := newTestBackend()
	ledger := New(backend, Config{Roster: []string{"A"}})

	ack, err := ledger.Apply(context.Background(), Mutation{
		Action:      ActionAddTransaction,
		ID:          1700000000000,
		Date:        "1/9/2026",
		Description: "cleaning supplies",
		Type:        "expense",
		Amount:      5000,
	})
	if err != nil || !ack.Success {
		t.Fatalf("ack=%+v err=%v", ack, err)
	}
	rows := backend.Rows("Transactions")
	want := []string{"1700000000000", "1/9/2026", "cleaning supplies", "expense", "5000"}
	if !reflect.DeepEqual(rows[len(rows)-1], want) {
		t.Fatalf("unexpected row: %v", rows[len(rows)-1])
	}

	bad := Mutation{Action: ActionAddTransaction, ID: 1, Description: "x", Type: "transfer", Amount: 1}
	if _, err := ledger.Apply(context.Background(), bad); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestTogglePaymentInvolution(t *testing.T) {
	backend := newTestBackend()
	ledger := New(backend, Config{Roster: []string{"A"}})
	ctx := context.Background()
	m := Mutation{Action: ActionTogglePayment, PaymentKey: "1-3", MemberID: 1, Month: 3}

	paid := func() bool {
		snap, err := ledger.Snapshot(ctx)
		if err != nil {
			t.Fatalf("snapshot: %v", err)
		}
		return snap.Payments.Paid(1, 3)
	}

	// Existence alternates false, true, false, true across repeated toggles.
	if paid() {
		t.Fatalf("expected unpaid initially")
	}
	want := []bool{true, false, true}
	wantMsg := []string{"payment recorded", "payment cleared", "payment recorded"}
	for i, w := range want {
		ack, err := ledger.Apply(ctx, m)
		if err != nil || !ack.Success {
			t.Fatalf("toggle %d: ack=%+v err=%v", i, ack, err)
		}
		if ack.Message != wantMsg[i] {
			t.Fatalf("toggle %d: message=%q", i, ack.Message)
		}
		if paid() != w {
			t.Fatalf("toggle %d: paid=%v, want %v", i, paid(), w)
		}
	}
}

func TestTogglePaymentClearsNotDeletes(t *testing.T) {
	backend := newTestBackend()
	backend.Seed("Payments", [][]string{
		{"paymentKey", "memberId", "month"},
		{"1-0", "1", "0"},
		{"2-0", "2", "0"},
	})
	ledger := New(backend, Config{Roster: []string{"A"}})

	if _, err := ledger.Apply(context.Background(), Mutation{Action: ActionTogglePayment, PaymentKey: "1-0", MemberID: 1, Month: 0}); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	rows := backend.Rows("Payments")
	// Row 2 is blanked in place; row 3 keeps its index.
	if len(rows) != 3 {
		t.Fatalf("row count changed: %d", len(rows))
	}
	if rows[1][0] != "" {
		t.Fatalf("row not cleared: %v", rows[1])
	}
	if rows[2][0] != "2-0" {
		t.Fatalf("subsequent row shifted: %v", rows[2])
	}
}

func TestTogglePaymentFirstMatchOnly(t *testing.T) {
	backend := newTestBackend()
	backend.Seed("Payments", [][]string{
		{"paymentKey", "memberId", "month"},
		{"5-2", "5", "2"},
		{"5-2", "5", "2"}, // duplicate: only the first is ever acted on
	})
	ledger := New(backend, Config{Roster: []string{"A"}})

	if _, err := ledger.Apply(context.Background(), Mutation{Action: ActionTogglePayment, PaymentKey: "5-2", MemberID: 5, Month: 2}); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	rows := backend.Rows("Payments")
	if rows[1][0] != "" || rows[2][0] != "5-2" {
		t.Fatalf("expected first duplicate cleared only: %v", rows)
	}
}

func TestTogglePaymentRejectsBadMonth(t *testing.T) {
	ledger := New(newTestBackend(), Config{Roster: []string{"A"}})
	m := Mutation{Action: ActionTogglePayment, PaymentKey: "1-12", MemberID: 1, Month: 12}
	if _, err := ledger.Apply(context.Background(), m); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestDeleteTransaction(t *testing.T) {
	backend := newTestBackend()
	backend.Seed("Transactions", [][]string{
		{"id", "date", "description", "type", "amount"},
		{"100", "1/9/2026", "a", "income", "1000"},
		{"200", "1/9/2026", "b", "expense", "2000"},
	})
	ledger := New(backend, Config{Roster: []string{"A"}})

	ack, err := ledger.Apply(context.Background(), Mutation{Action: ActionDeleteTransaction, ID: 100})
	if err != nil || !ack.Success {
		t.Fatalf("ack=%+v err=%v", ack, err)
	}
	rows := backend.Rows("Transactions")
	if rows[1][0] != "" || rows[2][0] != "200" {
		t.Fatalf("unexpected rows after delete: %v", rows)
	}
}

func TestDeleteTransactionNotFoundLeavesRangeUntouched(t *testing.T) {
	backend := newTestBackend()
	backend.Seed("Transactions", [][]string{
		{"id", "date", "description", "type", "amount"},
		{"100", "1/9/2026", "a", "income", "1000"},
	})
	ledger := New(backend, Config{Roster: []string{"A"}})
	before := backend.Rows("Transactions")

	_, err := ledger.Apply(context.Background(), Mutation{Action: ActionDeleteTransaction, ID: 999})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	after := backend.Rows("Transactions")
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("range changed on not-found: before=%v after=%v", before, after)
	}
}

func TestToggleMemberStatus(t *testing.T) {
	backend := newTestBackend()
	backend.Seed("Members", [][]string{
		{"id", "name", "active"},
		{"1", "A", "TRUE"},
		{"2", "B", "TRUE"},
	})
	ledger := New(backend, Config{Roster: []string{"A"}})
	ctx := context.Background()

	ack, err := ledger.Apply(ctx, Mutation{Action: ActionToggleMemberStatus, ID: 2, NewStatus: false})
	if err != nil || !ack.Success {
		t.Fatalf("ack=%+v err=%v", ack, err)
	}
	rows := backend.Rows("Members")
	// Only the status cell changes; id and name stay.
	if rows[2][0] != "2" || rows[2][1] != "B" || rows[2][2] != "FALSE" {
		t.Fatalf("unexpected member row: %v", rows[2])
	}

	ack, err = ledger.Apply(ctx, Mutation{Action: ActionToggleMemberStatus, ID: 2, NewStatus: true})
	if err != nil || !ack.Success {
		t.Fatalf("ack=%+v err=%v", ack, err)
	}
	if got := backend.Rows("Members")[2][2]; got != "TRUE" {
		t.Fatalf("flag = %q", got)
	}

	if _, err := ledger.Apply(ctx, Mutation{Action: ActionToggleMemberStatus, ID: 404, NewStatus: true}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestExpenseIncreasesOnlyExpenseTotal(t *testing.T) {
	backend := newTestBackend()
	ledger := New(backend, Config{Roster: []string{"A"}})
	ctx := context.Background()

	before, err := ledger.Snapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	beforeTotals := core.Summarize(before)

	_, err = ledger.Apply(ctx, Mutation{
		Action: ActionAddTransaction, ID: 1, Date: "1/9/2026",
		Description: "supplies", Type: "expense", Amount: 5000,
	})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	after, err := ledger.Snapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	afterTotals := core.Summarize(after)
	if afterTotals.Expense != beforeTotals.Expense+5000 {
		t.Fatalf("expense: before=%d after=%d", beforeTotals.Expense, afterTotals.Expense)
	}
	if afterTotals.Income != beforeTotals.Income {
		t.Fatalf("income changed: before=%d after=%d", beforeTotals.Income, afterTotals.Income)
	}
}
