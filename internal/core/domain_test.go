package core

import "testing"

func TestPaymentKey(t *testing.T) {
	cases := []struct {
		memberID int64
		month    int
		want     string
	}{
		{1, 0, "1-0"},
		{42, 11, "42-11"},
		{7, 5, "7-5"},
	}
	for i, tc := range cases {
		if got := PaymentKey(tc.memberID, tc.month); got != tc.want {
			t.Fatalf("case %d: got %q, want %q", i, got, tc.want)
		}
	}
}

func TestMemberValidate(t *testing.T) {
	good := Member{ID: 1, Name: "BAGAS RESTU WIJAYA", Active: true}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Member{
		{ID: 0, Name: "x"},
		{ID: -3, Name: "x"},
		{ID: 5, Name: "   "},
	}
	for i, m := range bads {
		if err := m.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{ID: 1700000000000, Date: "1/9/2026", Description: "donation", Type: Income, Amount: 50000}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Transaction{ID: 1, Date: "x", Description: "free", Type: Expense, Amount: 0}).Validate(); err != nil {
		t.Fatalf("zero amount should be valid, got %v", err)
	}

	bads := []Transaction{
		{ID: 0, Description: "a", Type: Income, Amount: 1},
		{ID: 1, Description: "", Type: Income, Amount: 1},
		{ID: 1, Description: "a", Type: "transfer", Amount: 1},
		{ID: 1, Description: "a", Type: Expense, Amount: -5},
	}
	for i, tr := range bads {
		if err := tr.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestPaymentSetPaid(t *testing.T) {
	p := PaymentSet{"3-4": true}
	if !p.Paid(3, 4) {
		t.Fatalf("expected paid")
	}
	if p.Paid(3, 5) || p.Paid(4, 4) {
		t.Fatalf("expected unpaid")
	}
}
