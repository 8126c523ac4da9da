// Package rate derives member-specific interest rates from the configured
// base-rate tables. Savings and CD rates scale with the member's credit
// score against the 850 ceiling; loan rates are flat.
package rate

import (
	"errors"
	"strconv"

	"github.com/carson-networks/ledger-server/internal/config"
)

type Kind string

const (
	KindSavings Kind = "savings"
	KindCD      Kind = "cd"
	KindLoan    Kind = "loan"
)

const maxCreditScore = 850

var (
	// ErrInvalidKind indicates a rate was requested for a kind that has no
	// configured base rate.
	ErrInvalidKind = errors.New("rate: invalid account kind")
	// ErrUnknownTerm indicates a CD rate was requested for a term length
	// missing from the base-rate table.
	ErrUnknownTerm = errors.New("rate: no base rate for term")
	// ErrTermRequired indicates a CD rate was requested without a term.
	ErrTermRequired = errors.New("rate: term required for cd")
)

type Policy struct {
	base config.BaseRates
}

func NewPolicy(base config.BaseRates) *Policy {
	return &Policy{base: base}
}

// For returns the rate for the given kind and credit score. The second
// return is false when no rate can be computed because the member has no
// credit score yet; that is an expected outcome, not an error.
func (p *Policy) For(kind Kind, creditScore *int, term *float64) (float64, bool, error) {
	if creditScore == nil {
		return 0, false, nil
	}

	scale := float64(*creditScore) / maxCreditScore

	switch kind {
	case KindSavings:
		return p.base.Savings * scale, true, nil
	case KindCD:
		if term == nil {
			return 0, false, ErrTermRequired
		}
		base, ok := p.base.CD[TermKey(*term)]
		if !ok {
			return 0, false, ErrUnknownTerm
		}
		return base * scale, true, nil
	case KindLoan:
		return p.base.Loan, true, nil
	default:
		return 0, false, ErrInvalidKind
	}
}

// Terms lists the configured CD term lengths, in months.
func (p *Policy) Terms() []float64 {
	terms := make([]float64, 0, len(p.base.CD))
	for key := range p.base.CD {
		term, err := strconv.ParseFloat(key, 64)
		if err != nil {
			continue
		}
		terms = append(terms, term)
	}
	return terms
}

// TermKey renders a term length the way the base-rate table keys it.
func TermKey(term float64) string {
	return strconv.FormatFloat(term, 'f', -1, 64)
}
