package engine

import (
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/ledger"
)

// undoLog captures the state an operation is about to mutate so a failed
// persist can put memory back exactly where disk still is. Snapshots are
// taken before any mutation, so restoring is order-independent even when
// two roles alias the same account.
type undoLog struct {
	balances     []balanceSnapshot
	transactions []transactionSnapshot
	accounts     []accountSnapshot
	loans        []loanSnapshot
	loanStates   []loanStateSnapshot
}

type balanceSnapshot struct {
	account *ledger.Account
	balance decimal.Decimal
}

type transactionSnapshot struct {
	member *ledger.Member
	length int
}

type accountSnapshot struct {
	member   *ledger.Member
	accounts []*ledger.Account
}

type loanSnapshot struct {
	member *ledger.Member
	loans  []*ledger.Loan
}

type loanStateSnapshot struct {
	loan      *ledger.Loan
	principal decimal.Decimal
	rate      float64
}

func newUndoLog() *undoLog {
	return &undoLog{}
}

func (u *undoLog) snapshotBalances(accounts ...*ledger.Account) {
	for _, a := range accounts {
		u.balances = append(u.balances, balanceSnapshot{account: a, balance: a.Balance})
	}
}

func (u *undoLog) snapshotTransactions(members ...*ledger.Member) {
	for _, m := range members {
		u.transactions = append(u.transactions, transactionSnapshot{member: m, length: len(m.Transactions)})
	}
}

func (u *undoLog) snapshotAccounts(members ...*ledger.Member) {
	for _, m := range members {
		accounts := make([]*ledger.Account, len(m.Accounts))
		copy(accounts, m.Accounts)
		u.accounts = append(u.accounts, accountSnapshot{member: m, accounts: accounts})
	}
}

func (u *undoLog) snapshotLoans(members ...*ledger.Member) {
	for _, m := range members {
		loans := make([]*ledger.Loan, len(m.Loans))
		copy(loans, m.Loans)
		u.loans = append(u.loans, loanSnapshot{member: m, loans: loans})
		for _, l := range m.Loans {
			u.loanStates = append(u.loanStates, loanStateSnapshot{loan: l, principal: l.Principal, rate: l.Rate})
		}
	}
}

func (u *undoLog) restore() {
	for _, s := range u.balances {
		s.account.Balance = s.balance
	}
	for _, s := range u.transactions {
		s.member.Transactions = s.member.Transactions[:s.length]
	}
	for _, s := range u.accounts {
		s.member.Accounts = s.accounts
	}
	for _, s := range u.loans {
		s.member.Loans = s.loans
	}
	for _, s := range u.loanStates {
		s.loan.Principal = s.principal
		s.loan.Rate = s.rate
	}
}
