package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatali-fataliyev/finance_ledger/internal/auth"
	"github.com/fatali-fataliyev/finance_ledger/internal/budget"
	"github.com/fatali-fataliyev/finance_ledger/internal/contextutil"
	"github.com/fatali-fataliyev/finance_ledger/internal/renderer"
	"github.com/fatali-fataliyev/finance_ledger/logging"
	"github.com/google/subcommands"
	"golang.org/x/term"
)

const menuText = `
Menu Options:
1. Register
2. Login
3. Add Transaction
4. Update Transaction
5. Delete Transaction
6. List Transactions
7. Generate Report
8. Set Budget
9. Backup Data
10. Restore Data
11. Exit
`

// Menu is the interactive surface. It keeps at most one session, replaced on every login.
type Menu struct {
	app     *App
	in      io.Reader
	scanner *bufio.Scanner
	session *budget.Session
}

func NewMenu(app *App, in io.Reader) *Menu {
	return &Menu{
		app:     app,
		in:      in,
		scanner: bufio.NewScanner(in),
	}
}

// Run loops until the user exits or the input ends. Failed actions are reported and
// the loop goes on.
func (m *Menu) Run(ctx context.Context) error {
	m.app.printf("Personal Finance Management System\n")
	m.app.printf("Data is stored in the '%s' backend.\n", m.app.Tracker.StorageType)

	for {
		m.app.printf("%s", menuText)
		choice, err := m.prompt("Enter your choice: ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		actionCtx := contextutil.WithTraceID(ctx)
		var actionErr error
		switch choice {
		case "1":
			actionErr = m.register(actionCtx)
		case "2":
			actionErr = m.login(actionCtx)
		case "3":
			actionErr = m.requireLogin(actionCtx, m.add)
		case "4":
			actionErr = m.requireLogin(actionCtx, m.update)
		case "5":
			actionErr = m.requireLogin(actionCtx, m.delete)
		case "6":
			actionErr = m.requireLogin(actionCtx, m.list)
		case "7":
			actionErr = m.requireLogin(actionCtx, m.report)
		case "8":
			actionErr = m.requireLogin(actionCtx, m.setBudget)
		case "9":
			actionErr = m.backup(actionCtx)
		case "10":
			actionErr = m.restore(actionCtx)
		case "11":
			m.session.Logout()
			m.app.printf("Goodbye!\n")
			return nil
		default:
			m.app.printf("Invalid choice. Please try again.\n")
			continue
		}

		if errors.Is(actionErr, io.EOF) {
			return nil
		}
		if actionErr != nil {
			logging.Logger.Debugf("[TraceID=%s] | menu option %s failed: %v", contextutil.TraceIDFromContext(actionCtx), choice, actionErr)
			m.app.printf("%s\n", userMessage(actionErr))
		}
	}
}

func (m *Menu) prompt(label string) (string, error) {
	m.app.printf("%s", label)
	if !m.scanner.Scan() {
		if err := m.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(m.scanner.Text()), nil
}

// promptPassword hides the input when reading from a terminal.
func (m *Menu) promptPassword(label string) (string, error) {
	f, ok := m.in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return m.prompt(label)
	}
	m.app.printf("%s", label)
	password, err := term.ReadPassword(int(f.Fd()))
	m.app.printf("\n")
	if err != nil {
		return "", err
	}
	return string(password), nil
}

func (m *Menu) promptAll(labels ...string) ([]string, error) {
	values := make([]string, len(labels))
	for i, label := range labels {
		v, err := m.prompt(label)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

func (m *Menu) promptTransaction() (transactionInput, error) {
	v, err := m.promptAll("Enter amount: ", "Enter category: ", "Enter date (YYYY-MM-DD): ", "Enter type (income/expense): ")
	if err != nil {
		return transactionInput{}, err
	}
	return transactionInput{amount: v[0], category: v[1], date: v[2], typ: v[3]}, nil
}

func (m *Menu) requireLogin(ctx context.Context, action func(context.Context) error) error {
	if !m.session.LoggedIn() {
		m.app.printf("Please log in first.\n")
		return nil
	}
	return action(ctx)
}

func (m *Menu) credentials() (auth.UserCredentialsPure, error) {
	username, err := m.prompt("Enter username: ")
	if err != nil {
		return auth.UserCredentialsPure{}, err
	}
	password, err := m.promptPassword("Enter password: ")
	if err != nil {
		return auth.UserCredentialsPure{}, err
	}
	return auth.UserCredentialsPure{UserName: username, PasswordPlain: password}, nil
}

func (m *Menu) register(ctx context.Context) error {
	m.app.printf("=== User Registration ===\n")
	credentials, err := m.credentials()
	if err != nil {
		return err
	}
	newUser := auth.NewUser{UserName: credentials.UserName, PasswordPlain: credentials.PasswordPlain}
	if err := m.app.Tracker.Register(ctx, newUser); err != nil {
		return err
	}
	m.app.printf("User registered successfully.\n")
	return nil
}

func (m *Menu) login(ctx context.Context) error {
	m.app.printf("=== User Login ===\n")
	credentials, err := m.credentials()
	if err != nil {
		return err
	}
	session, err := m.app.Tracker.Login(ctx, credentials)
	if err != nil {
		return err
	}
	m.session.Logout()
	m.session = session
	m.app.printf("Welcome, %s!\n", session.UserName())
	return nil
}

func (m *Menu) add(ctx context.Context) error {
	in, err := m.promptTransaction()
	if err != nil {
		return err
	}
	req, err := in.request()
	if err != nil {
		return err
	}
	warning, err := m.session.AddTransaction(ctx, req)
	if err != nil {
		return err
	}
	m.app.printf("Transaction added successfully.\n")
	m.app.printWarning(warning)
	return nil
}

func (m *Menu) update(ctx context.Context) error {
	if err := m.list(ctx); err != nil {
		return err
	}
	rawIndex, err := m.prompt("Enter transaction index to update: ")
	if err != nil {
		return err
	}
	in, err := m.promptTransaction()
	if err != nil {
		return err
	}
	index, err := parseIndex(rawIndex)
	if err != nil {
		return err
	}
	req, err := in.request()
	if err != nil {
		return err
	}
	warning, err := m.session.UpdateTransaction(ctx, index, req)
	if err != nil {
		return err
	}
	m.app.printf("Transaction updated successfully.\n")
	m.app.printWarning(warning)
	return nil
}

func (m *Menu) delete(ctx context.Context) error {
	if err := m.list(ctx); err != nil {
		return err
	}
	rawIndex, err := m.prompt("Enter transaction index to delete: ")
	if err != nil {
		return err
	}
	index, err := parseIndex(rawIndex)
	if err != nil {
		return err
	}
	if err := m.session.DeleteTransaction(ctx, index); err != nil {
		return err
	}
	m.app.printf("Transaction deleted successfully.\n")
	return nil
}

func (m *Menu) list(context.Context) error {
	transactions, err := m.session.Transactions()
	if err != nil {
		return err
	}
	m.app.printMarkdown(renderer.TransactionsMarkdown(m.session.UserName(), transactions))
	return nil
}

func (m *Menu) report(context.Context) error {
	v, err := m.promptAll("Enter start date (YYYY-MM-DD): ", "Enter end date (YYYY-MM-DD): ")
	if err != nil {
		return err
	}
	start, err := parseDate(v[0])
	if err != nil {
		return err
	}
	end, err := parseDate(v[1])
	if err != nil {
		return err
	}
	report, err := m.session.GenerateReport(start, end)
	if err != nil {
		return err
	}
	m.app.printMarkdown(renderer.ReportMarkdown(report))
	return nil
}

func (m *Menu) setBudget(ctx context.Context) error {
	v, err := m.promptAll("Enter category: ", "Enter budget amount: ")
	if err != nil {
		return err
	}
	amount, err := parseAmount(v[1])
	if err != nil {
		return err
	}
	if err := m.session.SetBudget(ctx, v[0], amount); err != nil {
		return err
	}
	m.app.printf("Budget set for %s: %s\n", v[0], renderer.Money(amount))
	return nil
}

func (m *Menu) backup(ctx context.Context) error {
	path, err := m.prompt(fmt.Sprintf("Enter backup filename [%s]: ", defaultBackupFile))
	if err != nil {
		return err
	}
	if path == "" {
		path = defaultBackupFile
	}
	n, err := m.app.backupTo(ctx, path)
	if err != nil {
		return err
	}
	m.app.printf("Data backed up to %s (%d transactions).\n", path, n)
	return nil
}

// restore imports the backup and reloads the open session so it sees the new rows.
func (m *Menu) restore(ctx context.Context) error {
	path, err := m.prompt(fmt.Sprintf("Enter restore filename [%s]: ", defaultBackupFile))
	if err != nil {
		return err
	}
	if path == "" {
		path = defaultBackupFile
	}
	n, err := m.app.restoreFrom(ctx, path)
	if err != nil {
		return err
	}
	if m.session.LoggedIn() {
		if err := m.session.Reload(ctx); err != nil {
			return err
		}
	}
	m.app.printf("Data restored from %s (%d transactions).\n", path, n)
	return nil
}

type menuCmd struct {
	app *App
}

func (*menuCmd) Name() string     { return "menu" }
func (*menuCmd) Synopsis() string { return "interactive menu" }
func (*menuCmd) Usage() string {
	return `ledger menu

  Starts the numbered menu on standard input.
`
}

func (*menuCmd) SetFlags(*flag.FlagSet) {}

func (c *menuCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := NewMenu(c.app, os.Stdin).Run(ctx); err != nil {
		return c.app.reportError(err)
	}
	return subcommands.ExitSuccess
}
