package store

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"iuran/internal/core"
)

const (
	ActionAddMember          = "ADD_MEMBER"
	ActionAddTransaction     = "ADD_TRANSACTION"
	ActionTogglePayment      = "TOGGLE_PAYMENT"
	ActionDeleteTransaction  = "DELETE_TRANSACTION"
	ActionToggleMemberStatus = "TOGGLE_MEMBER_STATUS"
)

// Mutation is the decoded body of a POST /data request: the action name plus
// whichever fields that action consumes.
type Mutation struct {
	Action string `json:"action"`

	ID        int64  `json:"id,omitempty"`
	Name      string `json:"name,omitempty"`
	NewStatus bool   `json:"newStatus,omitempty"`

	Date        string `json:"date,omitempty"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type,omitempty"`
	Amount      int64  `json:"amount,omitempty"`

	PaymentKey string `json:"paymentKey,omitempty"`
	MemberID   int64  `json:"memberId,omitempty"`
	Month      int    `json:"month,omitempty"`
}

// Ack reports the outcome of a mutation.
type Ack struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Apply routes a named action to exactly one backend write. Toggle, delete
// and status actions locate their target row with a linear scan first; no
// lock is held between the scan and the write, so a concurrent writer can
// shift the located row (accepted hazard, see DESIGN.md).
func (l *Ledger) Apply(ctx context.Context, m Mutation) (Ack, error) {
	slog.InfoContext(ctx, "Applying mutation", "action", m.Action)

	switch m.Action {
	case ActionAddMember:
		return l.addMember(ctx, m)
	case ActionAddTransaction:
		return l.addTransaction(ctx, m)
	case ActionTogglePayment:
		return l.togglePayment(ctx, m)
	case ActionDeleteTransaction:
		return l.deleteTransaction(ctx, m)
	case ActionToggleMemberStatus:
		return l.toggleMemberStatus(ctx, m)
	default:
		return Ack{}, fmt.Errorf("%w: %q", ErrUnknownAction, m.Action)
	}
}

func (l *Ledger) addMember(ctx context.Context, m Mutation) (Ack, error) {
	member := core.Member{ID: m.ID, Name: strings.ToUpper(strings.TrimSpace(m.Name)), Active: true}
	if err := member.Validate(); err != nil {
		return Ack{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	row := []any{member.ID, member.Name, "TRUE"}
	if err := l.backend.Append(ctx, l.membersRange(), [][]any{row}); err != nil {
		return Ack{}, err
	}
	return Ack{Success: true, Message: "member added"}, nil
}

func (l *Ledger) addTransaction(ctx context.Context, m Mutation) (Ack, error) {
	t := core.Transaction{
		ID:          m.ID,
		Date:        m.Date,
		Description: strings.TrimSpace(m.Description),
		Type:        core.TransactionType(m.Type),
		Amount:      m.Amount,
	}
	if err := t.Validate(); err != nil {
		return Ack{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	row := []any{t.ID, t.Date, t.Description, string(t.Type), t.Amount}
	if err := l.backend.Append(ctx, l.transactionsRange(), [][]any{row}); err != nil {
		return Ack{}, err
	}
	return Ack{Success: true, Message: "transaction added"}, nil
}

func (l *Ledger) togglePayment(ctx context.Context, m Mutation) (Ack, error) {
	key := strings.TrimSpace(m.PaymentKey)
	if key == "" && m.MemberID > 0 {
		key = core.PaymentKey(m.MemberID, m.Month)
	}
	if key == "" {
		return Ack{}, fmt.Errorf("%w: %v", ErrInvalidInput, core.ErrEmptyPaymentKey)
	}
	if m.Month < 0 || m.Month > 11 {
		return Ack{}, fmt.Errorf("%w: %v", ErrInvalidInput, core.ErrInvalidMonth)
	}

	rows, err := l.backend.Get(ctx, l.paymentsRange())
	if err != nil {
		return Ack{}, err
	}
	idx := findRow(rows, func(row []string) bool { return cell(row, 0) == key })
	if idx > 0 {
		rng := fmt.Sprintf("%s!A%d:C%d", l.cfg.PaymentsSheet, idx+1, idx+1)
		if err := l.backend.Clear(ctx, rng); err != nil {
			return Ack{}, err
		}
		return Ack{Success: true, Message: "payment cleared"}, nil
	}
	row := []any{key, m.MemberID, m.Month}
	if err := l.backend.Append(ctx, l.paymentsRange(), [][]any{row}); err != nil {
		return Ack{}, err
	}
	return Ack{Success: true, Message: "payment recorded"}, nil
}

func (l *Ledger) deleteTransaction(ctx context.Context, m Mutation) (Ack, error) {
	rows, err := l.backend.Get(ctx, l.transactionsRange())
	if err != nil {
		return Ack{}, err
	}
	idx := findRow(rows, matchID(m.ID))
	if idx <= 0 {
		return Ack{}, fmt.Errorf("transaction %d: %w", m.ID, ErrNotFound)
	}
	rng := fmt.Sprintf("%s!A%d:E%d", l.cfg.TransactionsSheet, idx+1, idx+1)
	if err := l.backend.Clear(ctx, rng); err != nil {
		return Ack{}, err
	}
	return Ack{Success: true, Message: "transaction deleted"}, nil
}

func (l *Ledger) toggleMemberStatus(ctx context.Context, m Mutation) (Ack, error) {
	rows, err := l.backend.Get(ctx, l.membersRange())
	if err != nil {
		return Ack{}, err
	}
	idx := findRow(rows, matchID(m.ID))
	if idx <= 0 {
		return Ack{}, fmt.Errorf("member %d: %w", m.ID, ErrNotFound)
	}
	flag := "FALSE"
	if m.NewStatus {
		flag = "TRUE"
	}
	rng := fmt.Sprintf("%s!C%d", l.cfg.MembersSheet, idx+1)
	if err := l.backend.Update(ctx, rng, [][]any{{flag}}); err != nil {
		return Ack{}, err
	}
	return Ack{Success: true, Message: "member status updated"}, nil
}

// findRow returns the index of the first matching row, or -1. The caller
// must still reject index 0, which is the header; later duplicates are never
// reached (given behavior of the external format, not deduplicated here).
func findRow(rows [][]string, match func([]string) bool) int {
	for i, row := range rows {
		if len(row) > 0 && match(row) {
			return i
		}
	}
	return -1
}

func matchID(id int64) func([]string) bool {
	return func(row []string) bool {
		got, ok := parseID(cell(row, 0))
		return ok && got == id
	}
}
