// Package cli is the command line surface of the ledger: one subcommand per operation
// plus an interactive menu.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	appErrors "github.com/fatali-fataliyev/finance_ledger/customErrors"
	"github.com/fatali-fataliyev/finance_ledger/internal/budget"
	"github.com/fatali-fataliyev/finance_ledger/internal/renderer"
	"github.com/fatali-fataliyev/finance_ledger/logging"
	"github.com/google/subcommands"
)

const wordWrap = 100

type App struct {
	Tracker *budget.BudgetTracker
	Out     io.Writer
	Err     io.Writer
	// Raw prints markdown as is instead of rendering it for the terminal.
	Raw bool
}

func NewApp(tracker *budget.BudgetTracker) *App {
	return &App{
		Tracker: tracker,
		Out:     os.Stdout,
		Err:     os.Stderr,
	}
}

// Register adds every ledger subcommand to c.
func Register(c *subcommands.Commander, app *App) {
	c.Register(&registerCmd{app: app}, "account")

	c.Register(&addCmd{app: app}, "transactions")
	c.Register(&listCmd{app: app}, "transactions")
	c.Register(&updateCmd{app: app}, "transactions")
	c.Register(&deleteCmd{app: app}, "transactions")

	c.Register(&budgetCmd{app: app}, "budgets")
	c.Register(&reportCmd{app: app}, "budgets")

	c.Register(&backupCmd{app: app}, "data")
	c.Register(&restoreCmd{app: app}, "data")

	c.Register(&menuCmd{app: app}, "")
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.Out, format, args...)
}

func (a *App) printMarkdown(md string) {
	if a.Raw {
		fmt.Fprint(a.Out, md)
		return
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wordWrap),
	)
	if err != nil {
		logging.Logger.Warnf("markdown renderer unavailable: %v", err)
		fmt.Fprint(a.Out, md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		logging.Logger.Warnf("failed to render markdown: %v", err)
		fmt.Fprint(a.Out, md)
		return
	}
	fmt.Fprint(a.Out, out)
}

func (a *App) printWarning(w *budget.BudgetWarning) {
	if w != nil {
		a.printMarkdown(renderer.WarningMarkdown(w))
	}
}

// reportError prints err for the user and returns the matching exit status.
func (a *App) reportError(err error) subcommands.ExitStatus {
	fmt.Fprintf(a.Err, "Error: %s\n", userMessage(err))
	return exitStatusFromError(err)
}

// userMessage prefers the coded message over the wrapped chain. Input errors keep
// their cause since it names what was wrong.
func userMessage(err error) string {
	var resp appErrors.ErrorResponse
	if !errors.As(err, &resp) {
		return err.Error()
	}
	if resp.Err != nil && resp.Code == appErrors.ErrInvalidInput {
		return fmt.Sprintf("%s: %v", resp.Message, resp.Err)
	}
	return resp.Message
}

func exitStatusFromError(err error) subcommands.ExitStatus {
	switch appErrors.CodeOf(err) {
	case appErrors.ErrInvalidInput, appErrors.ErrIndexOutOfRange:
		return subcommands.ExitUsageError // bad input
	default:
		return subcommands.ExitFailure
	}
}
