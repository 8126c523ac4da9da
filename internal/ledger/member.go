package ledger

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Member is the aggregate root: identity plus the accounts, transactions
// and loans it exclusively owns. Balance is derived from the accounts and
// never persisted on its own.
type Member struct {
	ID          string
	FName       string
	LName       string
	CreditScore *int
	PassHash    []byte
	PINHash     []byte // nil until the member enables debit charges

	Accounts     []*Account
	Transactions []*Transaction
	Loans        []*Loan

	Balance decimal.Decimal

	// Checking is the primary checking account: the first checking-kind
	// account opened, used as the implicit source/destination for charges.
	Checking *Account
}

// NewMember creates a fresh member with a zero-balance primary checking
// account. The id must already have been claimed from the identifier pool.
func NewMember(id, fName, lName string, passHash []byte) *Member {
	m := &Member{
		ID:       id,
		FName:    fName,
		LName:    lName,
		PassHash: passHash,
		Balance:  decimal.Zero,
	}
	checking := NewCheckingAccount(id)
	m.Accounts = append(m.Accounts, checking)
	m.Checking = checking
	return m
}

// SyncBalance recomputes the derived balance: the sum of every liquid
// (non-CD) account balance. Call it after any mutation that touches an
// account balance, before persisting.
func (m *Member) SyncBalance() {
	total := decimal.Zero
	for _, account := range m.Accounts {
		if account.Liquid() {
			total = total.Add(account.Balance)
		}
	}
	m.Balance = total
}

// PinChecking scans the account list and pins the first checking account
// as primary. Used after hydration, where creation order is the row order.
func (m *Member) PinChecking() {
	for _, account := range m.Accounts {
		if account.Kind == AccountChecking {
			m.Checking = account
			return
		}
	}
}

// Account returns the owned account with the given id.
func (m *Member) Account(id int64) (*Account, bool) {
	for _, account := range m.Accounts {
		if account.ID == id {
			return account, true
		}
	}
	return nil, false
}

// RemoveAccount drops the owned account with the given id, preserving the
// creation order of the rest.
func (m *Member) RemoveAccount(id int64) bool {
	for i, account := range m.Accounts {
		if account.ID == id {
			m.Accounts = append(m.Accounts[:i], m.Accounts[i+1:]...)
			return true
		}
	}
	return false
}

// Loan returns the owned loan with the given id.
func (m *Member) Loan(id int64) (*Loan, bool) {
	for _, loan := range m.Loans {
		if loan.ID == id {
			return loan, true
		}
	}
	return nil, false
}

// SortTransactions orders the transaction list by store id ascending, the
// stable display order.
func (m *Member) SortTransactions() {
	sort.Slice(m.Transactions, func(i, j int) bool {
		return m.Transactions[i].ID < m.Transactions[j].ID
	})
}

// DebitEnabled reports whether the member has set a debit PIN.
func (m *Member) DebitEnabled() bool {
	return len(m.PINHash) != 0
}
