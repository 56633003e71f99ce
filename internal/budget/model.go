package budget

import (
	"strings"
	"time"

	appErrors "github.com/fatali-fataliyev/finance_ledger/customErrors"
	"github.com/fatali-fataliyev/finance_ledger/internal/date"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// ParseTransactionType accepts "income" or "expense" in any case.
func ParseTransactionType(s string) (TransactionType, error) {
	switch t := TransactionType(strings.ToLower(strings.TrimSpace(s))); t {
	case Income, Expense:
		return t, nil
	}
	return "", appErrors.New(appErrors.ErrInvalidInput, "invalid transaction type '%s', allowed types are: income and expense", s)
}

// REQUESTS START:
type TransactionRequest struct {
	Amount   decimal.Decimal
	Category string
	Date     date.Date
	Type     string
}

// REQUESTS END:

// MODELS:

// Transaction is one ledger entry. ID is the surrogate key used to address the
// stored row; callers see the positional index only.
type Transaction struct {
	ID       string
	Amount   decimal.Decimal
	Category string
	Date     date.Date
	Type     TransactionType
}

// Account is the in-memory ledger of a logged-in user.
type Account struct {
	UserName     string
	Transactions []Transaction
	Budgets      map[string]decimal.Decimal
}

// Budget returns the limit for category, zero when none is set.
func (a *Account) Budget(category string) decimal.Decimal {
	return a.Budgets[category]
}

// Record is a flat transaction row as exchanged with backups.
type Record struct {
	UserName string
	Amount   decimal.Decimal
	Category string
	Date     date.Date
	Type     TransactionType
}

// RESPONSES:

// BudgetWarning reports that expenses of the current month exceed a category budget.
type BudgetWarning struct {
	Category string
	Budget   decimal.Decimal
	Spent    decimal.Decimal
	Year     int
	Month    time.Month
}

type Report struct {
	Start         date.Date
	End           date.Date
	TotalIncome   decimal.Decimal
	TotalExpenses decimal.Decimal
	Savings       decimal.Decimal
	Categories    []CategoryExpense // first-encountered order
}

type CategoryExpense struct {
	Category string
	Amount   decimal.Decimal
	Percent  decimal.Decimal // share of TotalExpenses, 0 when there are no expenses
	Budget   decimal.Decimal
	// The fields below are meaningful only when HasBudget is set.
	HasBudget bool
	Over      bool
	Delta     decimal.Decimal
}
