package member

import (
	"database/sql"

	"github.com/carson-networks/ledger-server/internal/ledger"
)

// Row mirrors one members-table row.
type Row struct {
	ID          string        `db:"id"`
	FName       string        `db:"f_name"`
	LName       string        `db:"l_name"`
	CreditScore sql.NullInt64 `db:"credit_score"`
	PassHash    []byte        `db:"pass_hash"`
	PinHash     []byte        `db:"pin_hash"`
}

// ToIdentity copies the identity columns onto a fresh aggregate. Accounts,
// transactions and loans are loaded separately by the gateway.
func (r *Row) ToIdentity() *ledger.Member {
	m := &ledger.Member{
		ID:       r.ID,
		FName:    r.FName,
		LName:    r.LName,
		PassHash: r.PassHash,
		PINHash:  r.PinHash,
	}
	if r.CreditScore.Valid {
		score := int(r.CreditScore.Int64)
		m.CreditScore = &score
	}
	return m
}

func RowFromMember(m *ledger.Member) *Row {
	row := &Row{
		ID:       m.ID,
		FName:    m.FName,
		LName:    m.LName,
		PassHash: m.PassHash,
		PinHash:  m.PINHash,
	}
	if m.CreditScore != nil {
		row.CreditScore = sql.NullInt64{Int64: int64(*m.CreditScore), Valid: true}
	}
	return row
}
