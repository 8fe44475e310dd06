package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry represents one immutable row in the journal_entries table.
type JournalEntry struct {
	EntryID         string          `db:"entry_id"`
	EntryDate       time.Time       `db:"entry_date"`
	Description     string          `db:"description"`
	DebitAccountID  string          `db:"debit_account_id"`
	CreditAccountID string          `db:"credit_account_id"`
	Amount          decimal.Decimal `db:"amount"`
	Reference       string          `db:"reference"` // Nullable
	AuditFields
}
