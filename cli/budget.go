package cli

import (
	"context"
	"flag"
	"strings"

	appErrors "github.com/fatali-fataliyev/finance_ledger/customErrors"
	"github.com/fatali-fataliyev/finance_ledger/internal/contextutil"
	"github.com/fatali-fataliyev/finance_ledger/internal/date"
	"github.com/fatali-fataliyev/finance_ledger/internal/renderer"
	"github.com/google/subcommands"
)

type budgetCmd struct {
	sessionFlags
	category string
	amount   string
	app      *App
}

func (*budgetCmd) Name() string     { return "budget" }
func (*budgetCmd) Synopsis() string { return "set or show the monthly budget of a category" }
func (*budgetCmd) Usage() string {
	return `ledger budget -u <user> -category <category> [-amount <amount>]

  Sets the budget of a category. Without -amount the current budget is shown.
  A budget of 0 removes the limit.
`
}

func (c *budgetCmd) SetFlags(f *flag.FlagSet) {
	c.sessionFlags.SetFlags(f)
	f.StringVar(&c.category, "category", "", "Category name.")
	f.StringVar(&c.amount, "amount", "", "Budget amount, a non negative decimal.")
}

func (c *budgetCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctx = contextutil.WithTraceID(ctx)

	category := strings.TrimSpace(c.category)
	if category == "" {
		return c.app.reportError(appErrors.New(appErrors.ErrInvalidInput, "Category is required, use -category."))
	}
	session, err := c.login(ctx, c.app.Tracker)
	if err != nil {
		return c.app.reportError(err)
	}

	if c.amount == "" {
		current, err := session.Budget(category)
		if err != nil {
			return c.app.reportError(err)
		}
		if current.IsZero() {
			c.app.printf("No budget set for %s.\n", category)
		} else {
			c.app.printf("Budget for %s: %s\n", category, renderer.Money(current))
		}
		return subcommands.ExitSuccess
	}

	amount, err := parseAmount(c.amount)
	if err != nil {
		return c.app.reportError(err)
	}
	if err := session.SetBudget(ctx, category, amount); err != nil {
		return c.app.reportError(err)
	}
	c.app.printf("Budget set for %s: %s\n", category, renderer.Money(amount))
	return subcommands.ExitSuccess
}

type reportCmd struct {
	sessionFlags
	start string
	end   string
	app   *App
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "income, expenses and savings over a period" }
func (*reportCmd) Usage() string {
	return `ledger report -u <user> [-s <start_date>] [-d <end_date>]

  Reports totals and the expense breakdown by category between two dates, both included.
  Defaults to the current month up to today.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	c.sessionFlags.SetFlags(f)
	today := date.Today()
	f.StringVar(&c.start, "s", date.New(today.Year(), today.Month(), 1).String(), "Start date, YYYY-MM-DD.")
	f.StringVar(&c.end, "d", today.String(), "End date, YYYY-MM-DD.")
}

func (c *reportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctx = contextutil.WithTraceID(ctx)

	start, err := parseDate(c.start)
	if err != nil {
		return c.app.reportError(err)
	}
	end, err := parseDate(c.end)
	if err != nil {
		return c.app.reportError(err)
	}
	session, err := c.login(ctx, c.app.Tracker)
	if err != nil {
		return c.app.reportError(err)
	}
	report, err := session.GenerateReport(start, end)
	if err != nil {
		return c.app.reportError(err)
	}
	c.app.printMarkdown(renderer.ReportMarkdown(report))
	return subcommands.ExitSuccess
}
