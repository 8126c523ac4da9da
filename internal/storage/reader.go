package storage

import (
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/ledger-server/internal/storage/account"
	"github.com/carson-networks/ledger-server/internal/storage/loan"
	"github.com/carson-networks/ledger-server/internal/storage/member"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

type Reader struct {
	Members      *member.Reader
	Accounts     *account.Reader
	Transactions *transaction.Reader
	Loans        *loan.Reader
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{
		Members:      member.NewReader(exec),
		Accounts:     account.NewReader(exec),
		Transactions: transaction.NewReader(exec),
		Loans:        loan.NewReader(exec),
	}
}
