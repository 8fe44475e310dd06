package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry represents a single immutable double-entry record: one debit
// account, one credit account, equal amount. There is no multi-line variant;
// every business event in this domain is a single cash-in/cash-out pair.
type JournalEntry struct {
	EntryID         string          `json:"entryID"`     // Primary Key (UUID)
	EntryDate       time.Time       `json:"entryDate"`   // Date the event occurred
	Description     string          `json:"description"` // Required
	DebitAccountID  string          `json:"debitAccountID"`
	CreditAccountID string          `json:"creditAccountID"`
	Amount          decimal.Decimal `json:"amount"`    // Positive
	Reference       string          `json:"reference"` // Originating event ID (sale/purchase/return), if any
	AuditFields
}

// AccountBalance is the raw debit/credit aggregate for one account over a
// window. Balance is debit - credit and is NOT sign-adjusted; callers apply
// the normal-balance rule for the account's type.
type AccountBalance struct {
	AccountID string          `json:"accountID"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Balance   decimal.Decimal `json:"balance"`
}

// EntriesSummary aggregates a filtered set of journal entries.
type EntriesSummary struct {
	Count       int64           `json:"count"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

// EntryFilters narrows the entries considered by EntriesSummary.
type EntryFilters struct {
	AccountID string
	From      *time.Time
	To        *time.Time
}
