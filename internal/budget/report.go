package budget

import (
	"github.com/fatali-fataliyev/finance_ledger/internal/date"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// GenerateReport aggregates the transactions dated within [start, end].
func (s *Session) GenerateReport(start, end date.Date) (Report, error) {
	acc, err := s.current()
	if err != nil {
		return Report{}, err
	}

	report := Report{
		Start:         start,
		End:           end,
		TotalIncome:   decimal.Zero,
		TotalExpenses: decimal.Zero,
	}

	byCategory := make(map[string]int)
	for _, t := range acc.Transactions {
		if !t.Date.Between(start, end) {
			continue
		}
		if t.Type == Income {
			report.TotalIncome = report.TotalIncome.Add(t.Amount)
			continue
		}
		report.TotalExpenses = report.TotalExpenses.Add(t.Amount)
		i, ok := byCategory[t.Category]
		if !ok {
			i = len(report.Categories)
			byCategory[t.Category] = i
			report.Categories = append(report.Categories, CategoryExpense{Category: t.Category, Amount: decimal.Zero})
		}
		report.Categories[i].Amount = report.Categories[i].Amount.Add(t.Amount)
	}
	report.Savings = report.TotalIncome.Sub(report.TotalExpenses)

	for i := range report.Categories {
		c := &report.Categories[i]
		c.Percent = decimal.Zero
		if !report.TotalExpenses.IsZero() {
			c.Percent = c.Amount.Div(report.TotalExpenses).Mul(hundred)
		}
		c.Budget = acc.Budget(c.Category)
		if c.Budget.IsPositive() {
			c.HasBudget = true
			c.Over = c.Amount.GreaterThan(c.Budget)
			c.Delta = c.Budget.Sub(c.Amount).Abs()
		}
	}
	return report, nil
}
