package storage

import (
	"context"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/storage/account"
	"github.com/carson-networks/ledger-server/internal/storage/loan"
	"github.com/carson-networks/ledger-server/internal/storage/member"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

// Gateway translates Member aggregates to and from store rows. It owns
// the reload-on-startup and save-on-mutation protocol: every persist call
// commits durably before returning.
type Gateway struct {
	storage *Storage
}

func NewGateway(s *Storage) *Gateway {
	return &Gateway{storage: s}
}

// HydrateAll loads every member aggregate from the store in id order.
func (g *Gateway) HydrateAll(ctx context.Context) ([]*ledger.Member, error) {
	reader := g.storage.Read()

	ids, err := reader.Members.IDs(ctx)
	if err != nil {
		return nil, err
	}

	members := make([]*ledger.Member, 0, len(ids))
	for _, id := range ids {
		m, err := g.hydrateMember(ctx, reader, id)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, nil
}

func (g *Gateway) hydrateMember(ctx context.Context, reader *Reader, id string) (*ledger.Member, error) {
	identity, err := reader.Members.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	m := identity.ToIdentity()

	accountRows, err := reader.Accounts.ListByMember(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, row := range accountRows {
		m.Accounts = append(m.Accounts, row.ToAccount())
	}
	m.PinChecking()

	// The member appears in a row as payer or recipient; the stored amount
	// is recipient-positive, so the payer view comes back negated.
	paid, err := reader.Transactions.ListByPayer(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, row := range paid {
		m.Transactions = append(m.Transactions, row.ToTransaction(id))
	}
	received, err := reader.Transactions.ListByRecipient(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, row := range received {
		m.Transactions = append(m.Transactions, row.ToTransaction(id))
	}
	m.SortTransactions()

	loanRows, err := reader.Loans.ListByMember(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, row := range loanRows {
		m.Loans = append(m.Loans, row.ToLoan())
	}

	m.SyncBalance()
	return m, nil
}

// PersistAll writes every given member inside one store transaction and
// commits before returning, so a charge's two sides can never land
// half-written. Store-assigned ids are copied back onto the aggregates.
func (g *Gateway) PersistAll(ctx context.Context, members ...*ledger.Member) error {
	writer, err := g.storage.Write(ctx)
	if err != nil {
		return &ledger.PersistenceError{Op: "begin", Err: err}
	}

	for _, m := range members {
		if err := g.persistMember(ctx, writer, m); err != nil {
			_ = writer.Rollback()
			return &ledger.PersistenceError{Op: "persist member " + m.ID, Err: err}
		}
	}

	if err := writer.Commit(); err != nil {
		return &ledger.PersistenceError{Op: "commit", Err: err}
	}
	return nil
}

func (g *Gateway) persistMember(ctx context.Context, w *Writer, m *ledger.Member) error {
	if err := w.Member.Upsert(ctx, member.RowFromMember(m)); err != nil {
		return err
	}

	// Only the recipient side of a transaction owns its row; writing the
	// payer side too would double-insert every charge.
	for _, t := range m.Transactions {
		if t.RecipientID != m.ID {
			continue
		}
		id, err := w.Transaction.Upsert(ctx, transaction.RowFromTransaction(t))
		if err != nil {
			return err
		}
		t.ID = id
	}

	// Accounts and loans can be removed, so the row sets are replaced
	// wholesale rather than diffed.
	if err := w.Account.DeleteByMember(ctx, m.ID); err != nil {
		return err
	}
	for _, a := range m.Accounts {
		id, err := w.Account.Insert(ctx, account.RowFromAccount(a))
		if err != nil {
			return err
		}
		a.ID = id
	}

	if err := w.Loan.DeleteByMember(ctx, m.ID); err != nil {
		return err
	}
	for _, l := range m.Loans {
		id, err := w.Loan.Insert(ctx, loan.RowFromLoan(l))
		if err != nil {
			return err
		}
		l.ID = id
	}

	return nil
}

// LoadPool returns the remaining unallocated member-identifier pool.
func (g *Gateway) LoadPool(ctx context.Context) ([]int64, error) {
	return g.storage.Read().Members.PoolIDs(ctx)
}

// ClaimPoolID removes one identifier from the pool and commits
// immediately, so a crash after the claim can never reissue the id.
func (g *Gateway) ClaimPoolID(ctx context.Context, id int64) error {
	writer, err := g.storage.Write(ctx)
	if err != nil {
		return &ledger.PersistenceError{Op: "begin", Err: err}
	}
	if err := writer.Member.RemovePoolID(ctx, id); err != nil {
		_ = writer.Rollback()
		return &ledger.PersistenceError{Op: "claim pool id", Err: err}
	}
	if err := writer.Commit(); err != nil {
		return &ledger.PersistenceError{Op: "commit", Err: err}
	}
	return nil
}

// Close flushes nothing itself (callers flush members first) and releases
// the store handle.
func (g *Gateway) Close() error {
	return g.storage.Close()
}
