package renderer

import (
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/fatali-fataliyev/finance_ledger/internal/budget"
	"github.com/fatali-fataliyev/finance_ledger/internal/date"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// tables parses src as GitHub flavored markdown and counts its tables.
func tables(t *testing.T, src string) int {
	t.Helper()
	parser := goldmark.New(goldmark.WithExtensions(extension.Table)).Parser()
	doc := parser.Parse(text.NewReader([]byte(src)))

	count := 0
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering && n.Kind() == extast.KindTable {
			count++
		}
		return ast.WalkContinue, nil
	})
	require.NoError(t, err)
	return count
}

// rowWidths returns the number of cells of every row, header included, across all tables
// of src.
func rowWidths(t *testing.T, src string) []int {
	t.Helper()
	parser := goldmark.New(goldmark.WithExtensions(extension.Table)).Parser()
	doc := parser.Parse(text.NewReader([]byte(src)))

	var widths []int
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering && (n.Kind() == extast.KindTableHeader || n.Kind() == extast.KindTableRow) {
			widths = append(widths, n.ChildCount())
		}
		return ast.WalkContinue, nil
	})
	require.NoError(t, err)
	return widths
}

func TestMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"12.5", "$12.50"},
		{"1234.567", "$1,234.57"},
		{"1000000", "$1,000,000.00"},
		{"-42.1", "-$42.10"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Money(dec(tt.in)))
		})
	}
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "88.9%", Percent(dec("88.8888888888888889")))
	assert.Equal(t, "0.0%", Percent(decimal.Zero))
	assert.Equal(t, "100.0%", Percent(dec("100")))
}

func TestReportMarkdown(t *testing.T) {
	report := budget.Report{
		Start:         date.MustParse("2025-03-01"),
		End:           date.MustParse("2025-03-31"),
		TotalIncome:   dec("3000"),
		TotalExpenses: dec("900"),
		Savings:       dec("2100"),
		Categories: []budget.CategoryExpense{
			{Category: "Rent", Amount: dec("800"), Percent: dec("88.888"), Budget: dec("900"), HasBudget: true, Over: false, Delta: dec("100")},
			{Category: "Food", Amount: dec("100"), Percent: dec("11.111"), Budget: dec("50"), HasBudget: true, Over: true, Delta: dec("50")},
			{Category: "Books", Amount: dec("0.01"), Percent: dec("0.001")},
		},
	}

	out := ReportMarkdown(report)

	assert.Contains(t, out, "Financial Report (2025-03-01 to 2025-03-31)")
	assert.Contains(t, out, "$3,000.00")
	assert.Contains(t, out, "$2,100.00")
	assert.Contains(t, out, "88.9%")
	assert.Contains(t, out, "$900.00 (Under by $100.00)")
	assert.Contains(t, out, "$50.00 (Over by $50.00)")
	assert.Less(t, strings.Index(out, "Rent"), strings.Index(out, "Food"), "categories keep their order")
	assert.Equal(t, 2, tables(t, out))
}

func TestReportMarkdown_NoExpenses(t *testing.T) {
	out := ReportMarkdown(budget.Report{
		Start:       date.MustParse("2025-03-01"),
		End:         date.MustParse("2025-03-31"),
		TotalIncome: dec("10"),
		Savings:     dec("10"),
	})
	assert.Contains(t, out, "No expenses in this period.")
	assert.Equal(t, 1, tables(t, out))
}

func TestTransactionsMarkdown(t *testing.T) {
	transactions := []budget.Transaction{
		{ID: "a", Amount: dec("12.5"), Category: "Food", Date: date.MustParse("2025-03-01"), Type: budget.Expense},
		{ID: "b", Amount: dec("3000"), Category: "Salary", Date: date.MustParse("2025-03-02"), Type: budget.Income},
	}

	out := TransactionsMarkdown("alice", slices.All(transactions))
	assert.Contains(t, out, "Transactions of alice")
	assert.Contains(t, out, "$12.50")
	assert.Contains(t, out, "2025-03-02")
	assert.Contains(t, out, "income")
	assert.NotContains(t, out, "No transactions found.")
	assert.Equal(t, 1, tables(t, out))

	empty := TransactionsMarkdown("alice", slices.All([]budget.Transaction(nil)))
	assert.Contains(t, empty, "No transactions found.")
	assert.Equal(t, 0, tables(t, empty))
}

func TestWarningMarkdown(t *testing.T) {
	out := WarningMarkdown(&budget.BudgetWarning{
		Category: "Food",
		Budget:   dec("50"),
		Spent:    dec("75.5"),
		Year:     2025,
		Month:    time.March,
	})
	assert.Contains(t, out, "exceeded your budget for Food")
	assert.Contains(t, out, "$75.50 of $50.00 in March 2025")
}

func TestMarkdownEscapesCategories(t *testing.T) {
	awkward := "Food|Drinks\nLate night"
	transactions := []budget.Transaction{
		{ID: "a", Amount: dec("12.5"), Category: awkward, Date: date.MustParse("2025-03-01"), Type: budget.Expense},
		{ID: "b", Amount: dec("3"), Category: "Bus", Date: date.MustParse("2025-03-02"), Type: budget.Expense},
	}

	out := TransactionsMarkdown("alice", slices.All(transactions))
	require.Equal(t, 1, tables(t, out))
	assert.Equal(t, []int{5, 5, 5}, rowWidths(t, out))
	assert.Contains(t, out, `Food\|Drinks Late night`)

	report := ReportMarkdown(budget.Report{
		Start:         date.MustParse("2025-03-01"),
		End:           date.MustParse("2025-03-31"),
		TotalExpenses: dec("15.5"),
		Savings:       dec("-15.5"),
		Categories: []budget.CategoryExpense{
			{Category: awkward, Amount: dec("12.5"), Percent: dec("80.6")},
			{Category: "Bus", Amount: dec("3"), Percent: dec("19.4")},
		},
	})
	require.Equal(t, 2, tables(t, report))
	assert.Equal(t, []int{2, 2, 2, 2, 4, 4, 4}, rowWidths(t, report))

	warning := WarningMarkdown(&budget.BudgetWarning{Category: awkward, Budget: dec("10"), Spent: dec("12.5"), Year: 2025, Month: time.March})
	assert.NotContains(t, strings.TrimSpace(warning), "\n", "the warning stays on one line")
}
