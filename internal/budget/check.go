package budget

import (
	"context"

	"github.com/fatali-fataliyev/finance_ledger/internal/contextutil"
	"github.com/fatali-fataliyev/finance_ledger/internal/date"
	"github.com/fatali-fataliyev/finance_ledger/logging"
	"github.com/shopspring/decimal"
)

// checkBudget compares this month's expenses in category against its budget. "This
// month" is the month of the tracker clock at call time, not of any transaction date.
func (s *Session) checkBudget(ctx context.Context, category string) *BudgetWarning {
	acc := s.account
	limit := acc.Budget(category)
	if !limit.IsPositive() {
		return nil
	}

	today := date.Of(s.tracker.now())
	spent := decimal.Zero
	for _, t := range acc.Transactions {
		if t.Category == category && t.Type == Expense && t.Date.SameMonth(today) {
			spent = spent.Add(t.Amount)
		}
	}
	if !spent.GreaterThan(limit) {
		return nil
	}

	logging.Logger.Warnf("[TraceID=%s] | '%s' exceeded the '%s' budget: spent %s of %s in %s %d",
		contextutil.TraceIDFromContext(ctx), acc.UserName, category, spent.StringFixed(2), limit.StringFixed(2), today.Month(), today.Year())
	return &BudgetWarning{
		Category: category,
		Budget:   limit,
		Spent:    spent,
		Year:     today.Year(),
		Month:    today.Month(),
	}
}
