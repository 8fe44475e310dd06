package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// IsValid reports whether t is one of the five known account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// Well-known account codes the posting rules depend on. They are seeded by the
// initial migration; posting fails with ErrConfiguration if one goes missing.
const (
	CodeCash            = "1001"
	CodeBank            = "1002"
	CodeCheck           = "1003"
	CodeDigitalWallet   = "1004"
	CodeInventory       = "1200"
	CodeAccountsPayable = "2000"
	CodeSalesRevenue    = "4000"
)

// Account represents a node in the chart of accounts.
// This is the primary representation used by services.
type Account struct {
	AccountID       string      `json:"accountID"`       // Primary Key (UUID)
	Code            string      `json:"code"`            // Unique, user-facing account code (e.g. "1001")
	Name            string      `json:"name"`            // User-defined name
	AccountType     AccountType `json:"accountType"`     // ASSET, LIABILITY, etc.
	ParentAccountID string      `json:"parentAccountID"` // Nullable FK -> accounts.account_id (self-referencing)
	Description     string      `json:"description"`     // Nullable user description
	IsActive        bool        `json:"isActive"`        // Soft delete flag; accounts are never hard-deleted
	AuditFields
}

// AccountNode is an Account plus its attached children, produced by the
// hierarchy builder.
type AccountNode struct {
	Account
	Children []*AccountNode `json:"children"`
}
