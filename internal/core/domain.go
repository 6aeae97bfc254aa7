package core

import (
	"errors"
	"fmt"
	"strings"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

type (
	TransactionType string

	// Member is a dues-paying member. Members are never deleted, only
	// deactivated, so ids stay stable for the lifetime of the ledger.
	Member struct {
		ID     int64  `json:"id"`
		Name   string `json:"name"`
		Active bool   `json:"active"`
	}

	// Transaction is an ad-hoc income or expense entry. The id is
	// caller-supplied, typically a millisecond timestamp, and is never
	// reused once its row has been cleared.
	Transaction struct {
		ID          int64           `json:"id"`
		Date        string          `json:"date"`
		Description string          `json:"description"`
		Type        TransactionType `json:"type"`
		Amount      int64           `json:"amount"`
	}

	// PaymentSet marks paid (member, month) pairs. Presence of a key means
	// the monthly due is paid; absence means unpaid.
	PaymentSet map[string]bool

	// Snapshot is the full read-side view of the ledger. It is derived on
	// every read and never persisted as such.
	Snapshot struct {
		Members       []Member      `json:"members"`
		Payments      PaymentSet    `json:"payments"`
		Transactions  []Transaction `json:"transactions"`
		MonthlyAmount int64         `json:"monthlyAmount"`
	}
)

var (
	ErrInvalidID        = errors.New("invalid id")
	ErrEmptyName        = errors.New("empty name")
	ErrInvalidType      = errors.New("invalid transaction type")
	ErrNegativeAmount   = errors.New("negative amount")
	ErrEmptyDescription = errors.New("empty description")
	ErrInvalidMonth     = errors.New("invalid month index")
	ErrEmptyPaymentKey  = errors.New("empty payment key")
)

// PaymentKey builds the composite key that marks a monthly due as paid.
// Month is a zero-based calendar month index (0 = January).
func PaymentKey(memberID int64, month int) string {
	return fmt.Sprintf("%d-%d", memberID, month)
}

func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

func (m Member) Validate() error {
	if m.ID <= 0 {
		return ErrInvalidID
	}
	if strings.TrimSpace(m.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

func (t Transaction) Validate() error {
	if t.ID <= 0 {
		return ErrInvalidID
	}
	if strings.TrimSpace(t.Description) == "" {
		return ErrEmptyDescription
	}
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	if t.Amount < 0 {
		return ErrNegativeAmount
	}
	return nil
}

// Paid reports whether the given member has a mark for the given month.
func (p PaymentSet) Paid(memberID int64, month int) bool {
	return p[PaymentKey(memberID, month)]
}
