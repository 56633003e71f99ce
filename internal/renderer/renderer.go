// Package renderer turns ledger data into markdown for the terminal.
package renderer

import (
	"bytes"
	"fmt"
	"iter"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/fatali-fataliyev/finance_ledger/internal/budget"
	md "github.com/nao1215/markdown"
	"github.com/shopspring/decimal"
)

// cellEscaper keeps free text on one table row and inside its cell.
var cellEscaper = strings.NewReplacer("|", `\|`, "\r\n", " ", "\n", " ", "\r", " ")

func cell(s string) string {
	return cellEscaper.Replace(s)
}

// Money formats an amount in dollars, e.g. "$1,234.50".
func Money(d decimal.Decimal) string {
	cents := d.Round(2).Shift(2).IntPart()
	return money.New(cents, money.USD).Display()
}

// Percent formats a share with one decimal, e.g. "88.9%".
func Percent(d decimal.Decimal) string {
	return d.StringFixed(1) + "%"
}

// ReportMarkdown renders the totals and the expense breakdown of a report.
func ReportMarkdown(r budget.Report) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Financial Report (%s to %s)", r.Start, r.End))
	doc.Table(md.TableSet{
		Header: []string{"Summary", "Amount"},
		Rows: [][]string{
			{"Total Income", Money(r.TotalIncome)},
			{"Total Expenses", Money(r.TotalExpenses)},
			{"Savings", Money(r.Savings)},
		},
	})

	doc.H2("Expense Breakdown by Category")
	if len(r.Categories) == 0 {
		doc.PlainText("No expenses in this period.")
		return doc.String()
	}

	rows := make([][]string, 0, len(r.Categories))
	for _, c := range r.Categories {
		rows = append(rows, []string{cell(c.Category), Money(c.Amount), Percent(c.Percent), budgetColumn(c)})
	}
	doc.Table(md.TableSet{
		Header: []string{"Category", "Spent", "Share", "Budget"},
		Rows:   rows,
	})

	return doc.String()
}

func budgetColumn(c budget.CategoryExpense) string {
	if !c.HasBudget {
		return "-"
	}
	verdict := "Under"
	if c.Over {
		verdict = "Over"
	}
	return fmt.Sprintf("%s (%s by %s)", Money(c.Budget), verdict, Money(c.Delta))
}

// TransactionsMarkdown lists transactions with their positional index, the number the
// update and delete commands take.
func TransactionsMarkdown(username string, transactions iter.Seq2[int, budget.Transaction]) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Transactions of %s", username))

	var rows [][]string
	for i, t := range transactions {
		rows = append(rows, []string{fmt.Sprint(i), t.Date.String(), cell(t.Category), Money(t.Amount), string(t.Type)})
	}
	if len(rows) == 0 {
		doc.PlainText("No transactions found.")
		return doc.String()
	}

	doc.Table(md.TableSet{
		Header: []string{"#", "Date", "Category", "Amount", "Type"},
		Rows:   rows,
	})
	return doc.String()
}

// WarningMarkdown renders a budget warning as a block quote.
func WarningMarkdown(w *budget.BudgetWarning) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.Blockquote(fmt.Sprintf("Warning: You have exceeded your budget for %s! Spent %s of %s in %s %d.",
		cell(w.Category), Money(w.Spent), Money(w.Budget), w.Month, w.Year))
	return doc.String()
}
