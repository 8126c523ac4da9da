// Package engine implements the balance-mutation operations: charges
// between members, account opening/closing, intra-member transfers and
// loan issuance/payment.
// Every mutating operation ends with a synchronous write-through; if the
// write fails, the in-memory mutation is rolled back so memory never runs
// ahead of disk.
package engine

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/auth"
	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/rate"
)

// MemberSource resolves member ids to live aggregates.
type MemberSource interface {
	Lookup(id string) (*ledger.Member, bool)
}

// Gateway is the slice of the persistence layer the engine needs: one
// durable commit covering every member touched by an operation.
type Gateway interface {
	PersistAll(ctx context.Context, members ...*ledger.Member) error
}

// ChargeResult reports the outcome of a charge. Bounced charges are an
// expected outcome, not an error: no mutation happened and Shortfall
// carries how far the payer's checking balance fell below the amount.
type ChargeResult struct {
	Requested    decimal.Decimal
	SalesTax     decimal.Decimal
	PayerBalance decimal.Decimal
	Shortfall    decimal.Decimal
	Bounced      bool
}

type Engine struct {
	members     MemberSource
	gateway     Gateway
	verifier    auth.Verifier
	rates       *rate.Policy
	taxRate     decimal.Decimal
	collectorID string
}

func NewEngine(members MemberSource, gateway Gateway, verifier auth.Verifier, rates *rate.Policy, salesTaxPercent float64, collectorID string) *Engine {
	return &Engine{
		members:     members,
		gateway:     gateway,
		verifier:    verifier,
		rates:       rates,
		taxRate:     decimal.NewFromFloat(salesTaxPercent),
		collectorID: collectorID,
	}
}

// Charge moves amount from the payer's primary checking account to the
// recipient's. When taxable, the payer is debited amount plus sales tax,
// the recipient credited amount minus sales tax, and the tax-collector
// member's checking credited the tax. A payer who cannot cover amount
// plus tax bounces the whole charge with zero mutation on either side.
func (e *Engine) Charge(ctx context.Context, payer, recipient *ledger.Member, amount decimal.Decimal, taxable bool) (ChargeResult, error) {
	if amount.IsNegative() {
		return ChargeResult{}, ledger.ErrNegativeAmount
	}

	tax := decimal.Zero
	if taxable {
		tax = e.taxRate.Mul(amount)
	}

	result := ChargeResult{Requested: amount, SalesTax: tax}

	if payer.Checking.Balance.LessThan(amount.Add(tax)) {
		result.Bounced = true
		result.Shortfall = payer.Checking.Balance.Sub(amount)
		result.PayerBalance = payer.Balance
		return result, nil
	}

	var collector *ledger.Member
	if taxable {
		var ok bool
		collector, ok = e.members.Lookup(e.collectorID)
		if !ok {
			return ChargeResult{}, ledger.ErrUnknownMember
		}
	}

	undo := newUndoLog()
	undo.snapshotBalances(payer.Checking, recipient.Checking)
	undo.snapshotTransactions(payer, recipient)
	if collector != nil {
		undo.snapshotBalances(collector.Checking)
	}

	payer.Checking.Balance = payer.Checking.Balance.Sub(amount.Add(tax))
	recipient.Checking.Balance = recipient.Checking.Balance.Add(amount.Sub(tax))
	if collector != nil {
		collector.Checking.Balance = collector.Checking.Balance.Add(tax)
	}

	now := time.Now()
	payerView := &ledger.Transaction{
		Amount:      amount.Neg(),
		PayerID:     payer.ID,
		RecipientID: recipient.ID,
		Date:        now,
	}
	recipientView := &ledger.Transaction{
		Amount:      amount,
		PayerID:     payer.ID,
		RecipientID: recipient.ID,
		Date:        now,
	}
	payer.Transactions = append(payer.Transactions, payerView)
	recipient.Transactions = append(recipient.Transactions, recipientView)

	touched := dedupe(payer, recipient, collector)
	syncAll(touched)

	if err := e.gateway.PersistAll(ctx, touched...); err != nil {
		undo.restore()
		syncAll(touched)
		return ChargeResult{}, err
	}

	// The recipient side owns the persisted row; mirror its assigned id.
	payerView.ID = recipientView.ID

	result.PayerBalance = payer.Balance
	return result, nil
}

// ChargeWithPIN is the debit-endpoint entry: it verifies the payer's PIN
// before delegating to Charge.
func (e *Engine) ChargeWithPIN(ctx context.Context, payerID, recipientID string, amount decimal.Decimal, taxable bool, pin string) (ChargeResult, error) {
	payer, ok := e.members.Lookup(payerID)
	if !ok {
		return ChargeResult{}, ledger.ErrUnknownMember
	}
	recipient, ok := e.members.Lookup(recipientID)
	if !ok {
		return ChargeResult{}, ledger.ErrUnknownMember
	}

	if !payer.DebitEnabled() {
		return ChargeResult{}, ledger.ErrDebitNotEnabled
	}
	if !e.verifier.Verify(payer.PINHash, pin) {
		return ChargeResult{}, ledger.ErrWrongPIN
	}

	return e.Charge(ctx, payer, recipient, amount, taxable)
}

// OpenAccount opens a new account funded by a debit from the member's
// primary checking account and returns the store-assigned account id.
// When no explicit rate is given, savings and CD rates are derived from
// the member's credit score; a member without a score cannot open an
// interest-bearing account.
func (e *Engine) OpenAccount(ctx context.Context, m *ledger.Member, kind ledger.AccountKind, startingAmount decimal.Decimal, accountRate *float64, term *float64) (int64, error) {
	if startingAmount.IsNegative() {
		return 0, ledger.ErrNegativeAmount
	}
	if m.Checking.Balance.LessThan(startingAmount) {
		return 0, ledger.ErrInsufficientFunds
	}

	var account *ledger.Account
	var err error
	switch kind {
	case ledger.AccountChecking:
		account = ledger.NewCheckingAccount(m.ID)
		account.Balance = startingAmount
	case ledger.AccountSavings, ledger.AccountCD:
		if accountRate == nil {
			accountRate, err = e.deriveRate(m, rate.Kind(kind), term)
			if err != nil {
				return 0, err
			}
		}
		if kind == ledger.AccountSavings {
			account, err = ledger.NewSavingsAccount(m.ID, startingAmount, accountRate)
		} else {
			account, err = ledger.NewCDAccount(m.ID, startingAmount, accountRate, term)
		}
	default:
		return 0, ledger.ErrUnknownAccountKind
	}
	if err != nil {
		return 0, err
	}

	undo := newUndoLog()
	undo.snapshotBalances(m.Checking)
	undo.snapshotAccounts(m)

	m.Checking.Balance = m.Checking.Balance.Sub(startingAmount)
	m.Accounts = append(m.Accounts, account)
	m.SyncBalance()

	if err := e.gateway.PersistAll(ctx, m); err != nil {
		undo.restore()
		m.SyncBalance()
		return 0, err
	}
	return account.ID, nil
}

// CloseAccount removes a zero-balance account. The primary checking
// account can never be closed; an account still holding money must be
// transferred out first.
func (e *Engine) CloseAccount(ctx context.Context, m *ledger.Member, accountID int64) error {
	account, ok := m.Account(accountID)
	if !ok {
		return ledger.ErrUnknownAccount
	}
	if account == m.Checking {
		return ledger.ErrPrimaryChecking
	}
	if !account.Balance.IsZero() {
		return ledger.ErrNonZeroBalance
	}

	undo := newUndoLog()
	undo.snapshotAccounts(m)

	m.RemoveAccount(accountID)
	m.SyncBalance()

	if err := e.gateway.PersistAll(ctx, m); err != nil {
		undo.restore()
		m.SyncBalance()
		return err
	}
	return nil
}

// TransferBetweenOwnAccounts moves money between two accounts owned by
// the same member. No tax applies and no transaction records are written;
// transaction rows model member-to-member charges only.
func (e *Engine) TransferBetweenOwnAccounts(ctx context.Context, m *ledger.Member, fromID, toID int64, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ledger.ErrNegativeAmount
	}
	if fromID == toID {
		return ledger.ErrSameAccount
	}

	from, ok := m.Account(fromID)
	if !ok {
		return ledger.ErrUnknownAccount
	}
	to, ok := m.Account(toID)
	if !ok {
		return ledger.ErrUnknownAccount
	}
	if from.Balance.LessThan(amount) {
		return ledger.ErrInsufficientFunds
	}

	undo := newUndoLog()
	undo.snapshotBalances(from, to)

	from.Balance = from.Balance.Sub(amount)
	to.Balance = to.Balance.Add(amount)
	m.SyncBalance()

	if err := e.gateway.PersistAll(ctx, m); err != nil {
		undo.restore()
		m.SyncBalance()
		return err
	}
	return nil
}

// TakeLoan issues a loan at the member's derived loan rate and deposits
// the principal into the primary checking account. Returns the
// store-assigned loan id.
func (e *Engine) TakeLoan(ctx context.Context, m *ledger.Member, principal decimal.Decimal) (int64, error) {
	if principal.IsNegative() {
		return 0, ledger.ErrNegativeAmount
	}

	loanRate, err := e.deriveRate(m, rate.KindLoan, nil)
	if err != nil {
		return 0, err
	}

	loan := &ledger.Loan{
		Principal: principal,
		Rate:      *loanRate,
		MemberID:  m.ID,
	}

	undo := newUndoLog()
	undo.snapshotBalances(m.Checking)
	undo.snapshotLoans(m)

	m.Checking.Balance = m.Checking.Balance.Add(principal)
	m.Loans = append(m.Loans, loan)
	m.SyncBalance()

	if err := e.gateway.PersistAll(ctx, m); err != nil {
		undo.restore()
		m.SyncBalance()
		return 0, err
	}
	return loan.ID, nil
}

// PayLoan applies a payment from the member's primary checking account
// against a loan. Interest comes off the top of the payment; the
// remainder reduces the principal.
func (e *Engine) PayLoan(ctx context.Context, m *ledger.Member, loanID int64, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ledger.ErrNegativeAmount
	}

	loan, ok := m.Loan(loanID)
	if !ok {
		return ledger.ErrUnknownLoan
	}
	if m.Checking.Balance.LessThan(amount) {
		return ledger.ErrInsufficientFunds
	}

	undo := newUndoLog()
	undo.snapshotBalances(m.Checking)
	undo.snapshotLoans(m)

	m.Checking.Balance = m.Checking.Balance.Sub(amount)
	if err := loan.Pay(amount); err != nil {
		undo.restore()
		m.SyncBalance()
		return err
	}
	m.SyncBalance()

	if err := e.gateway.PersistAll(ctx, m); err != nil {
		undo.restore()
		m.SyncBalance()
		return err
	}
	return nil
}

// RateQuote lists the rates a member currently qualifies for: savings,
// the flat loan rate, and one CD rate per configured term (keyed by term
// months). Everything stays empty for a member with no credit score.
type RateQuote struct {
	Savings *float64
	Loan    *float64
	CD      map[string]float64
}

// QuoteRates derives every product rate for the member at their current
// credit score, the numbers shown before opening an account or taking a
// loan.
func (e *Engine) QuoteRates(m *ledger.Member) RateQuote {
	quote := RateQuote{CD: make(map[string]float64)}

	if r, ok, err := e.rates.For(rate.KindSavings, m.CreditScore, nil); err == nil && ok {
		quote.Savings = &r
	}
	if r, ok, err := e.rates.For(rate.KindLoan, m.CreditScore, nil); err == nil && ok {
		quote.Loan = &r
	}
	for _, term := range e.rates.Terms() {
		t := term
		if r, ok, err := e.rates.For(rate.KindCD, m.CreditScore, &t); err == nil && ok {
			quote.CD[rate.TermKey(term)] = r
		}
	}
	return quote
}

// deriveRate maps a member's credit score to a rate for the given kind.
// A member with no score yet cannot hold a rated product.
func (e *Engine) deriveRate(m *ledger.Member, kind rate.Kind, term *float64) (*float64, error) {
	derived, ok, err := e.rates.For(kind, m.CreditScore, term)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ledger.ErrRateRequired
	}
	return &derived, nil
}

// VerifyCredential checks a presented password against the member's
// stored credential hash. Hashing itself happens outside the core.
func (e *Engine) VerifyCredential(m *ledger.Member, presented string) bool {
	return e.verifier.Verify(m.PassHash, presented)
}

func dedupe(members ...*ledger.Member) []*ledger.Member {
	seen := make(map[string]bool, len(members))
	out := make([]*ledger.Member, 0, len(members))
	for _, m := range members {
		if m == nil || seen[m.ID] {
			continue
		}
		seen[m.ID] = true
		out = append(out, m)
	}
	return out
}

func syncAll(members []*ledger.Member) {
	for _, m := range members {
		m.SyncBalance()
	}
}
