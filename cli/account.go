package cli

import (
	"context"
	"flag"

	"github.com/fatali-fataliyev/finance_ledger/internal/auth"
	"github.com/fatali-fataliyev/finance_ledger/internal/contextutil"
	"github.com/google/subcommands"
)

type registerCmd struct {
	sessionFlags
	app *App
}

func (*registerCmd) Name() string     { return "register" }
func (*registerCmd) Synopsis() string { return "create a new user" }
func (*registerCmd) Usage() string {
	return `ledger register -u <user> [-p <password>]

  Creates a user. Usernames are lower case letters, digits and underscores.
`
}

func (c *registerCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctx = contextutil.WithTraceID(ctx)

	credentials, err := c.credentials()
	if err != nil {
		return c.app.reportError(err)
	}
	newUser := auth.NewUser{
		UserName:      credentials.UserName,
		PasswordPlain: credentials.PasswordPlain,
	}
	if err := c.app.Tracker.Register(ctx, newUser); err != nil {
		return c.app.reportError(err)
	}
	c.app.printf("User registered successfully.\n")
	return subcommands.ExitSuccess
}
