package domain

// AccountType defines the fundamental accounting type of a chart account.
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

// Well-known chart codes the posting rules resolve against.
// Codes, not ids, are the integration contract with the chart of accounts.
const (
	CodeCash                   = "1000"
	CodeBank                   = "1100"
	CodeChequesUnderCollection = "1150"
	CodePayables               = "2000"
	CodeDepositsReceived       = "2100"
	CodeVAT                    = "2200"
	CodeRevenue                = "4000"
	CodeRevenueAlt             = "4100"
	CodeExpense                = "5000"
)

// ChartAccount is a node in the chart of accounts.
type ChartAccount struct {
	ID        string      `json:"id"`
	Code      string      `json:"code"`
	NameAr    string      `json:"nameAr"`
	NameEn    string      `json:"nameEn"`
	Type      AccountType `json:"type"`
	ParentID  string      `json:"parentId,omitempty"`
	IsActive  bool        `json:"isActive"`
	SortOrder int         `json:"sortOrder"`
	Timestamps
}
