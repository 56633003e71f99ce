package budget

import (
	"context"
	"testing"

	"github.com/fatali-fataliyev/finance_ledger/internal/date"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestGenerateReportSingleDay(t *testing.T) {
	bt, _ := newTestTracker(t)
	session := loginAs(t, bt, "john")
	ctx := context.Background()
	d := date.MustParse("2025-03-15")

	_, err := session.AddTransaction(ctx, txReq("100", "Food", d.String(), "expense"))
	require.NoError(t, err)
	_, err = session.AddTransaction(ctx, txReq("200", "Salary", d.String(), "income"))
	require.NoError(t, err)

	report, err := session.GenerateReport(d, d)
	require.NoError(t, err)
	requireDecimal(t, "200", report.TotalIncome)
	requireDecimal(t, "100", report.TotalExpenses)
	requireDecimal(t, "100", report.Savings)
	require.Len(t, report.Categories, 1)
	require.Equal(t, "Food", report.Categories[0].Category)
	requireDecimal(t, "100", report.Categories[0].Amount)
	requireDecimal(t, "100", report.Categories[0].Percent)
	require.False(t, report.Categories[0].HasBudget)
}

func TestGenerateReportWithoutExpenses(t *testing.T) {
	bt, _ := newTestTracker(t)
	session := loginAs(t, bt, "john")
	ctx := context.Background()

	_, err := session.AddTransaction(ctx, txReq("200", "Salary", "2025-03-01", "income"))
	require.NoError(t, err)

	report, err := session.GenerateReport(date.MustParse("2025-03-01"), date.MustParse("2025-03-31"))
	require.NoError(t, err)
	require.True(t, report.TotalExpenses.IsZero())
	requireDecimal(t, "200", report.Savings)
	require.Empty(t, report.Categories)

	empty, err := session.GenerateReport(date.MustParse("2030-01-01"), date.MustParse("2030-01-31"))
	require.NoError(t, err)
	require.True(t, empty.TotalIncome.IsZero())
	require.True(t, empty.Savings.IsZero())
	require.Empty(t, empty.Categories)
}

func TestGenerateReportRangeAndBreakdown(t *testing.T) {
	bt, _ := newTestTracker(t)
	session := loginAs(t, bt, "john")
	ctx := context.Background()

	require.NoError(t, session.SetBudget(ctx, "Rent", decimal.NewFromInt(900)))
	require.NoError(t, session.SetBudget(ctx, "Food", decimal.NewFromInt(50)))

	for _, r := range []TransactionRequest{
		txReq("999", "Rent", "2025-02-28", "expense"), // before range
		txReq("800", "Rent", "2025-03-01", "expense"), // first day, inclusive
		txReq("30", "Food", "2025-03-05", "expense"),
		txReq("1000", "Salary", "2025-03-10", "income"),
		txReq("45.50", "Food", "2025-03-20", "expense"),
		txReq("24.50", "Fun", "2025-03-31", "expense"), // last day, inclusive
		txReq("5", "Fun", "2025-04-01", "expense"),     // after range
	} {
		_, err := session.AddTransaction(ctx, r)
		require.NoError(t, err)
	}

	report, err := session.GenerateReport(date.MustParse("2025-03-01"), date.MustParse("2025-03-31"))
	require.NoError(t, err)

	requireDecimal(t, "1000", report.TotalIncome)
	requireDecimal(t, "900", report.TotalExpenses)
	requireDecimal(t, "100", report.Savings)

	require.Len(t, report.Categories, 3)
	require.Equal(t, "Rent", report.Categories[0].Category)
	require.Equal(t, "Food", report.Categories[1].Category)
	require.Equal(t, "Fun", report.Categories[2].Category)

	rent := report.Categories[0]
	requireDecimal(t, "800", rent.Amount)
	require.Equal(t, "88.9", rent.Percent.StringFixed(1))
	require.True(t, rent.HasBudget)
	require.False(t, rent.Over)
	requireDecimal(t, "100", rent.Delta)

	food := report.Categories[1]
	requireDecimal(t, "75.5", food.Amount)
	require.True(t, food.HasBudget)
	require.True(t, food.Over)
	requireDecimal(t, "25.5", food.Delta)

	fun := report.Categories[2]
	require.False(t, fun.HasBudget)
	require.Equal(t, "2.7", fun.Percent.StringFixed(1))
}

func TestGenerateReportNegativeSavings(t *testing.T) {
	bt, _ := newTestTracker(t)
	session := loginAs(t, bt, "john")
	ctx := context.Background()

	_, err := session.AddTransaction(ctx, txReq("10", "Salary", "2025-03-01", "income"))
	require.NoError(t, err)
	_, err = session.AddTransaction(ctx, txReq("35.25", "Food", "2025-03-01", "expense"))
	require.NoError(t, err)

	report, err := session.GenerateReport(date.MustParse("2025-03-01"), date.MustParse("2025-03-01"))
	require.NoError(t, err)
	requireDecimal(t, "-25.25", report.Savings)
}

func TestGenerateReportInvertedRangeIsEmpty(t *testing.T) {
	bt, _ := newTestTracker(t)
	session := loginAs(t, bt, "john")

	_, err := session.AddTransaction(context.Background(), txReq("10", "Food", "2025-03-10", "expense"))
	require.NoError(t, err)

	report, err := session.GenerateReport(date.MustParse("2025-03-31"), date.MustParse("2025-03-01"))
	require.NoError(t, err)
	require.True(t, report.TotalExpenses.IsZero())
	require.Empty(t, report.Categories)
}
