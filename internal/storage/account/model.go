package account

import (
	"database/sql"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/ledger"
)

// Row mirrors one accounts-table row. The r and term columns are NULL for
// checking accounts.
type Row struct {
	ID       int64           `db:"id"`
	Balance  decimal.Decimal `db:"balance"`
	Type     string          `db:"type"`
	MemberID string          `db:"member_id"`
	R        sql.NullFloat64 `db:"r"`
	Term     sql.NullFloat64 `db:"term"`
}

func (r *Row) ToAccount() *ledger.Account {
	account := &ledger.Account{
		ID:       r.ID,
		Balance:  r.Balance,
		Kind:     ledger.AccountKind(r.Type),
		MemberID: r.MemberID,
	}
	if r.R.Valid {
		rate := r.R.Float64
		account.Rate = &rate
	}
	if r.Term.Valid {
		term := r.Term.Float64
		account.Term = &term
	}
	return account
}

func RowFromAccount(a *ledger.Account) *Row {
	row := &Row{
		ID:       a.ID,
		Balance:  a.Balance,
		Type:     string(a.Kind),
		MemberID: a.MemberID,
	}
	if a.Rate != nil {
		row.R = sql.NullFloat64{Float64: *a.Rate, Valid: true}
	}
	if a.Term != nil {
		row.Term = sql.NullFloat64{Float64: *a.Term, Valid: true}
	}
	return row
}
