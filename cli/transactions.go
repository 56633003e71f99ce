package cli

import (
	"context"
	"flag"

	"github.com/fatali-fataliyev/finance_ledger/internal/contextutil"
	"github.com/fatali-fataliyev/finance_ledger/internal/date"
	"github.com/fatali-fataliyev/finance_ledger/internal/renderer"
	"github.com/google/subcommands"
)

func (c *transactionInput) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.amount, "amount", "", "Amount, a positive decimal like 12.50.")
	f.StringVar(&c.category, "category", "", "Category name.")
	f.StringVar(&c.date, "d", date.Today().String(), "Date, YYYY-MM-DD.")
	f.StringVar(&c.typ, "type", "expense", "Transaction type: income or expense.")
}

// addCmd holds the flags for the 'add' subcommand.
type addCmd struct {
	sessionFlags
	transactionInput
	app *App
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record an income or an expense" }
func (*addCmd) Usage() string {
	return `ledger add -u <user> -amount <amount> -category <category> [-d <date>] [-type income|expense]

  Records a transaction and warns when the category budget of the current month is exceeded.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	c.sessionFlags.SetFlags(f)
	c.transactionInput.SetFlags(f)
}

func (c *addCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctx = contextutil.WithTraceID(ctx)

	req, err := c.request()
	if err != nil {
		return c.app.reportError(err)
	}
	session, err := c.login(ctx, c.app.Tracker)
	if err != nil {
		return c.app.reportError(err)
	}
	warning, err := session.AddTransaction(ctx, req)
	if err != nil {
		return c.app.reportError(err)
	}
	c.app.printf("Transaction added successfully.\n")
	c.app.printWarning(warning)
	return subcommands.ExitSuccess
}

type listCmd struct {
	sessionFlags
	app *App
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list transactions with their index" }
func (*listCmd) Usage() string {
	return `ledger list -u <user>

  Lists the transactions of the user in the order they were recorded. The index in the
  first column is what update and delete take.
`
}

func (c *listCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctx = contextutil.WithTraceID(ctx)

	session, err := c.login(ctx, c.app.Tracker)
	if err != nil {
		return c.app.reportError(err)
	}
	transactions, err := session.Transactions()
	if err != nil {
		return c.app.reportError(err)
	}
	c.app.printMarkdown(renderer.TransactionsMarkdown(session.UserName(), transactions))
	return subcommands.ExitSuccess
}

type updateCmd struct {
	sessionFlags
	transactionInput
	index string
	app   *App
}

func (*updateCmd) Name() string     { return "update" }
func (*updateCmd) Synopsis() string { return "replace the transaction at an index" }
func (*updateCmd) Usage() string {
	return `ledger update -u <user> -i <index> -amount <amount> -category <category> [-d <date>] [-type income|expense]

  Replaces every field of the transaction at the given index, see 'ledger list'.
`
}

func (c *updateCmd) SetFlags(f *flag.FlagSet) {
	c.sessionFlags.SetFlags(f)
	c.transactionInput.SetFlags(f)
	f.StringVar(&c.index, "i", "", "Index of the transaction, as shown by list.")
}

func (c *updateCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctx = contextutil.WithTraceID(ctx)

	index, err := parseIndex(c.index)
	if err != nil {
		return c.app.reportError(err)
	}
	req, err := c.request()
	if err != nil {
		return c.app.reportError(err)
	}
	session, err := c.login(ctx, c.app.Tracker)
	if err != nil {
		return c.app.reportError(err)
	}
	warning, err := session.UpdateTransaction(ctx, index, req)
	if err != nil {
		return c.app.reportError(err)
	}
	c.app.printf("Transaction updated successfully.\n")
	c.app.printWarning(warning)
	return subcommands.ExitSuccess
}

type deleteCmd struct {
	sessionFlags
	index string
	app   *App
}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "delete the transaction at an index" }
func (*deleteCmd) Usage() string {
	return `ledger delete -u <user> -i <index>

  Deletes the transaction at the given index, see 'ledger list'. Later transactions move
  down by one.
`
}

func (c *deleteCmd) SetFlags(f *flag.FlagSet) {
	c.sessionFlags.SetFlags(f)
	f.StringVar(&c.index, "i", "", "Index of the transaction, as shown by list.")
}

func (c *deleteCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctx = contextutil.WithTraceID(ctx)

	index, err := parseIndex(c.index)
	if err != nil {
		return c.app.reportError(err)
	}
	session, err := c.login(ctx, c.app.Tracker)
	if err != nil {
		return c.app.reportError(err)
	}
	if err := session.DeleteTransaction(ctx, index); err != nil {
		return c.app.reportError(err)
	}
	c.app.printf("Transaction deleted successfully.\n")
	return subcommands.ExitSuccess
}
