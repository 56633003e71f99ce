package cli

import (
	"context"
	"flag"
	"os"
	"strconv"
	"strings"

	appErrors "github.com/fatali-fataliyev/finance_ledger/customErrors"
	"github.com/fatali-fataliyev/finance_ledger/internal/auth"
	"github.com/fatali-fataliyev/finance_ledger/internal/budget"
	"github.com/fatali-fataliyev/finance_ledger/internal/date"
	"github.com/shopspring/decimal"
)

const passwordEnv = "LEDGER_PASSWORD"

// REQUESTS START:

// transactionInput holds the raw text of a transaction as typed by the user.
type transactionInput struct {
	amount   string
	category string
	date     string
	typ      string
}

func (in transactionInput) request() (budget.TransactionRequest, error) {
	amount, err := parseAmount(in.amount)
	if err != nil {
		return budget.TransactionRequest{}, err
	}
	on, err := parseDate(in.date)
	if err != nil {
		return budget.TransactionRequest{}, err
	}
	return budget.TransactionRequest{
		Amount:   amount,
		Category: strings.TrimSpace(in.category),
		Date:     on,
		Type:     in.typ,
	}, nil
}

// REQUESTS END:

func parseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, appErrors.New(appErrors.ErrInvalidInput, "Invalid amount '%s', expected a decimal number like 12.50.", s)
	}
	return amount, nil
}

func parseDate(s string) (date.Date, error) {
	on, err := date.Parse(strings.TrimSpace(s))
	if err != nil {
		return date.Date{}, appErrors.New(appErrors.ErrInvalidInput, "Invalid date '%s', expected YYYY-MM-DD.", s)
	}
	return on, nil
}

func parseIndex(s string) (int, error) {
	index, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, appErrors.New(appErrors.ErrInvalidInput, "Invalid transaction index '%s', expected a number.", s)
	}
	return index, nil
}

// sessionFlags are the credentials of the non-interactive commands.
type sessionFlags struct {
	user     string
	password string
}

func (c *sessionFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.user, "u", "", "Username.")
	f.StringVar(&c.password, "p", "", "Password. Defaults to $"+passwordEnv+".")
}

func (c *sessionFlags) credentials() (auth.UserCredentialsPure, error) {
	password := c.password
	if password == "" {
		password = os.Getenv(passwordEnv)
	}
	if c.user == "" {
		return auth.UserCredentialsPure{}, appErrors.New(appErrors.ErrInvalidInput, "Username is required, use -u.")
	}
	if password == "" {
		return auth.UserCredentialsPure{}, appErrors.New(appErrors.ErrInvalidInput, "Password is required, use -p or set %s.", passwordEnv)
	}
	return auth.UserCredentialsPure{UserName: c.user, PasswordPlain: password}, nil
}

func (c *sessionFlags) login(ctx context.Context, tracker *budget.BudgetTracker) (*budget.Session, error) {
	credentials, err := c.credentials()
	if err != nil {
		return nil, err
	}
	return tracker.Login(ctx, credentials)
}
