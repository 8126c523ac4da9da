package ledger

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientFunds indicates a debit would overdraw the source
	// account. Recoverable; the caller decides whether to retry or bounce.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrNonZeroBalance indicates an account close was attempted while the
	// account still holds money.
	ErrNonZeroBalance = errors.New("account balance is not zero")
	// ErrPrimaryChecking indicates an attempt to close a member's primary
	// checking account, which must always exist once created.
	ErrPrimaryChecking = errors.New("primary checking account cannot be closed")
	// ErrUnknownMember indicates a member id with no registered member.
	ErrUnknownMember = errors.New("unknown member")
	// ErrUnknownAccount indicates an account id not owned by the member.
	ErrUnknownAccount = errors.New("unknown account")
	// ErrUnknownAccountKind indicates an account kind outside
	// checking/savings/cd.
	ErrUnknownAccountKind = errors.New("unknown account kind")
	// ErrUnknownLoan indicates a loan id not owned by the member.
	ErrUnknownLoan = errors.New("unknown loan")
	// ErrSameAccount indicates a transfer naming one account as both
	// source and destination.
	ErrSameAccount = errors.New("transfer requires two distinct accounts")
	// ErrIDSpaceExhausted indicates the member identifier pool is empty.
	// Fatal to the registration, not to the process.
	ErrIDSpaceExhausted = errors.New("ran out of available member ids")
	// ErrDebitNotEnabled indicates a PIN-gated charge against a member who
	// never set a debit PIN.
	ErrDebitNotEnabled = errors.New("debit not enabled for member")
	// ErrWrongPIN indicates PIN verification failed.
	ErrWrongPIN = errors.New("wrong pin")
	// ErrRateRequired indicates a savings or cd account constructed
	// without a rate.
	ErrRateRequired = errors.New("rate required for savings/cd accounts")
	// ErrTermRequired indicates a cd account constructed without a term.
	ErrTermRequired = errors.New("term required for cd accounts")
	// ErrNegativeAmount indicates a negative amount where only zero or
	// positive amounts are valid.
	ErrNegativeAmount = errors.New("amount must not be negative")
)

// PersistenceError wraps a store write failure. It must always propagate;
// swallowing it would leave in-memory state ahead of disk.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure in %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
