package store

import (
	"strconv"
	"strings"

	"iuran/internal/core"
)

// The header row of every range is positional only: column 0 is the id/key,
// the remaining columns follow the fixed layout. Header text is ignored.
// Rows whose id column fails integer parsing are dropped silently; they are
// a data-quality issue, not an error.

func normalizeMembers(rows [][]string) []core.Member {
	members := make([]core.Member, 0, max(0, len(rows)-1))
	for _, row := range skipHeader(rows) {
		id, ok := parseID(cell(row, 0))
		if !ok {
			continue
		}
		members = append(members, core.Member{
			ID:   id,
			Name: cell(row, 1),
			// The stored flag is the literal string "TRUE"; anything else,
			// "FALSE" and empty included, is inactive.
			Active: cell(row, 2) == "TRUE",
		})
	}
	return members
}

func normalizeTransactions(rows [][]string) []core.Transaction {
	transactions := make([]core.Transaction, 0, max(0, len(rows)-1))
	for _, row := range skipHeader(rows) {
		id, ok := parseID(cell(row, 0))
		if !ok {
			continue
		}
		amount, err := strconv.ParseInt(cell(row, 4), 10, 64)
		if err != nil {
			amount = 0
		}
		transactions = append(transactions, core.Transaction{
			ID:          id,
			Date:        cell(row, 1),
			Description: cell(row, 2),
			Type:        core.TransactionType(cell(row, 3)),
			Amount:      amount,
		})
	}
	return transactions
}

func normalizePayments(rows [][]string) core.PaymentSet {
	payments := make(core.PaymentSet)
	for _, row := range skipHeader(rows) {
		// Presence of the key is the whole record; the memberId and month
		// columns are write-only metadata and are not re-validated here.
		if key := cell(row, 0); key != "" {
			payments[key] = true
		}
	}
	return payments
}

func skipHeader(rows [][]string) [][]string {
	if len(rows) <= 1 {
		return nil
	}
	return rows[1:]
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseID(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
