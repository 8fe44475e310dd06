package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrialBalanceRow represents a single account line in a trial balance report.
// Debit/Credit are raw sums; Balance is sign-adjusted for the account's
// normal-balance convention.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
}

// TrialBalance is the full report as of a date. For any closed set of entries
// Totals.Debit equals Totals.Credit.
type TrialBalance struct {
	AsOf   time.Time         `json:"asOf"`
	Rows   []TrialBalanceRow `json:"rows"`
	Totals struct {
		Debit  decimal.Decimal `json:"debit"`
		Credit decimal.Decimal `json:"credit"`
	} `json:"totals"`
}

// DailySummary buckets one calendar day of cash movements by type.
type DailySummary struct {
	Date        time.Time       `json:"date"`
	RegisterID  string          `json:"registerID,omitempty"` // Empty when summarising all registers
	Opening     decimal.Decimal `json:"opening"`
	Sales       decimal.Decimal `json:"sales"`
	Returns     decimal.Decimal `json:"returns"`
	Deposits    decimal.Decimal `json:"deposits"`
	Withdrawals decimal.Decimal `json:"withdrawals"`
	NetCashFlow decimal.Decimal `json:"netCashFlow"` // sales + deposits - returns - withdrawals
}

// RegisterStatus reports a user's open register together with the live
// expected balance and the drift of the incremental balance against it.
type RegisterStatus struct {
	Register        CashRegister    `json:"register"`
	ExpectedBalance decimal.Decimal `json:"expectedBalance"`
	Drift           decimal.Decimal `json:"drift"` // currentBalance - expectedBalance
}
