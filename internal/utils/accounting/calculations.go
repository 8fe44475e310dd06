package accounting

import (
	"fmt"

	"github.com/maslamhussaini/posaccoutingapp/internal/core/domain"
	"github.com/shopspring/decimal"
)

// NormalBalance applies the normal-balance convention for an account type to
// raw debit and credit totals. This is used everywhere a signed balance is
// reported (trial balance, account balance, P&L) to keep the sign convention
// in one place.
//
// ASSET/EXPENSE -> debit - credit
// LIABILITY/EQUITY/REVENUE -> credit - debit
func NormalBalance(accountType domain.AccountType, debit, credit decimal.Decimal) (decimal.Decimal, error) {
	switch accountType {
	case domain.Asset, domain.Expense:
		return debit.Sub(credit), nil
	case domain.Liability, domain.Equity, domain.Revenue:
		return credit.Sub(debit), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s'", accountType)
	}
}

// EntrySides returns the raw debit/credit contribution of a single journal
// entry to a given account: the full amount on the debit side if the account
// is the entry's debit account, on the credit side if it is the credit
// account, zero otherwise.
func EntrySides(entry domain.JournalEntry, accountID string) (debit, credit decimal.Decimal) {
	if entry.DebitAccountID == accountID {
		debit = entry.Amount
	}
	if entry.CreditAccountID == accountID {
		credit = entry.Amount
	}
	return debit, credit
}
