package storage

import (
	"context"

	"github.com/stephenafamo/bob"

	"github.com/carson-networks/ledger-server/internal/storage/account"
	"github.com/carson-networks/ledger-server/internal/storage/loan"
	"github.com/carson-networks/ledger-server/internal/storage/member"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

type Writer struct {
	tx          bob.Tx
	Member      *member.Writer
	Account     *account.Writer
	Transaction *transaction.Writer
	Loan        *loan.Writer
}

func NewWriter(tx bob.Tx) Writer {
	return Writer{
		tx:          tx,
		Member:      member.NewWriter(tx),
		Account:     account.NewWriter(tx),
		Transaction: transaction.NewWriter(tx),
		Loan:        loan.NewWriter(tx),
	}
}

func (w *Writer) Commit() error {
	return w.tx.Commit(context.Background())
}

func (w *Writer) Rollback() error {
	return w.tx.Rollback(context.Background())
}
