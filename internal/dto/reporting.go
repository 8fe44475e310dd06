package dto

import (
	"time"

	"github.com/maslamhussaini/posaccoutingapp/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TrialBalanceRowResponse represents a row in the trial balance report response
type TrialBalanceRowResponse struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	AccountName string          `json:"accountName"`
	AccountType string          `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
}

// TrialBalanceResponse represents the trial balance report response
type TrialBalanceResponse struct {
	AsOf   string                    `json:"asOf"`
	Rows   []TrialBalanceRowResponse `json:"rows"`
	Totals struct {
		Debit  decimal.Decimal `json:"debit"`
		Credit decimal.Decimal `json:"credit"`
	} `json:"totals"`
}

// ToTrialBalanceResponse converts a domain trial balance to a DTO response
func ToTrialBalanceResponse(tb *domain.TrialBalance) TrialBalanceResponse {
	response := TrialBalanceResponse{
		AsOf: tb.AsOf.Format("2006-01-02"),
		Rows: make([]TrialBalanceRowResponse, len(tb.Rows)),
	}
	for i, row := range tb.Rows {
		response.Rows[i] = TrialBalanceRowResponse{
			AccountID:   row.AccountID,
			Code:        row.Code,
			AccountName: row.AccountName,
			AccountType: string(row.AccountType),
			Debit:       row.Debit,
			Credit:      row.Credit,
			Balance:     row.Balance,
		}
	}
	response.Totals.Debit = tb.Totals.Debit
	response.Totals.Credit = tb.Totals.Credit
	return response
}

// DailySummaryResponse buckets one day of cash movements by type.
type DailySummaryResponse struct {
	Date        string          `json:"date"`
	RegisterID  string          `json:"registerID,omitempty"`
	Opening     decimal.Decimal `json:"opening"`
	Sales       decimal.Decimal `json:"sales"`
	Returns     decimal.Decimal `json:"returns"`
	Deposits    decimal.Decimal `json:"deposits"`
	Withdrawals decimal.Decimal `json:"withdrawals"`
	NetCashFlow decimal.Decimal `json:"netCashFlow"`
}

// ToDailySummaryResponse converts a domain.DailySummary to its DTO.
func ToDailySummaryResponse(s *domain.DailySummary) DailySummaryResponse {
	return DailySummaryResponse{
		Date:        s.Date.Format("2006-01-02"),
		RegisterID:  s.RegisterID,
		Opening:     s.Opening,
		Sales:       s.Sales,
		Returns:     s.Returns,
		Deposits:    s.Deposits,
		Withdrawals: s.Withdrawals,
		NetCashFlow: s.NetCashFlow,
	}
}

// RegisterStatusResponse reports a user's open register with live figures.
type RegisterStatusResponse struct {
	Register        CashRegisterResponse `json:"register"`
	ExpectedBalance decimal.Decimal      `json:"expectedBalance"`
	Drift           decimal.Decimal      `json:"drift"`
}

// ToRegisterStatusResponse converts a domain.RegisterStatus to its DTO.
func ToRegisterStatusResponse(s *domain.RegisterStatus) RegisterStatusResponse {
	return RegisterStatusResponse{
		Register:        ToCashRegisterResponse(&s.Register),
		ExpectedBalance: s.ExpectedBalance,
		Drift:           s.Drift,
	}
}

// DailySummaryParams defines query parameters for the daily summary.
type DailySummaryParams struct {
	Date       time.Time `form:"date" time_format:"2006-01-02" binding:"required"`
	RegisterID string    `form:"registerID"`
}

// PostingRequest carries a domain event into the posting rules. PaymentMethod
// is one of cash, card, bank_transfer, check, digital_wallet; unknown values
// fall back to the cash account.
type PostingRequest struct {
	EventID       string          `json:"eventID" binding:"required"` // sale/purchase/return ID
	Total         decimal.Decimal `json:"total" binding:"required"`
	PaymentMethod string          `json:"paymentMethod"`
}
