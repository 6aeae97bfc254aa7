package core

// Totals is the cash position derived from a snapshot.
type Totals struct {
	Income  int64 `json:"totalIncome"`
	Expense int64 `json:"totalExpense"`
	Balance int64 `json:"totalBalance"`
}

// MemberDues is the per-member payment summary for a calendar year.
type MemberDues struct {
	MemberID   int64 `json:"memberId"`
	PaidMonths int   `json:"paidMonths"`
	PaidAmount int64 `json:"paidAmount"`
}

// Summarize derives the cash totals from a snapshot. Every payment mark is
// worth one monthly amount; ad-hoc transactions add on top. Pure and
// recomputed from scratch on every call.
func Summarize(s Snapshot) Totals {
	income := int64(len(s.Payments)) * s.MonthlyAmount
	var expense int64
	for _, t := range s.Transactions {
		switch t.Type {
		case Income:
			income += t.Amount
		case Expense:
			expense += t.Amount
		}
	}
	return Totals{
		Income:  income,
		Expense: expense,
		Balance: income - expense,
	}
}

// Dues counts the paid months (indices 0..11) for one member.
func Dues(s Snapshot, memberID int64) MemberDues {
	d := MemberDues{MemberID: memberID}
	for month := 0; month < 12; month++ {
		if s.Payments.Paid(memberID, month) {
			d.PaidMonths++
		}
	}
	d.PaidAmount = int64(d.PaidMonths) * s.MonthlyAmount
	return d
}

// Unpaid returns the active members lacking a payment mark for the given
// month index. Inactive members are excluded regardless of their marks.
func Unpaid(s Snapshot, month int) []Member {
	var out []Member
	for _, m := range s.Members {
		if !m.Active {
			continue
		}
		if !s.Payments.Paid(m.ID, month) {
			out = append(out, m)
		}
	}
	return out
}
