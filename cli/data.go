package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	appErrors "github.com/fatali-fataliyev/finance_ledger/customErrors"
	"github.com/fatali-fataliyev/finance_ledger/internal/backup"
	"github.com/fatali-fataliyev/finance_ledger/internal/contextutil"
	"github.com/google/subcommands"
)

const defaultBackupFile = "finance_backup.csv"

// backupTo writes every transaction in the store to path.
func (a *App) backupTo(ctx context.Context, path string) (int, error) {
	records, err := a.Tracker.ExportAll(ctx)
	if err != nil {
		return 0, err
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, appErrors.Wrap(appErrors.ErrInvalidInput, err, fmt.Sprintf("Cannot create backup file %s.", path))
	}
	if err := backup.Write(f, records); err != nil {
		f.Close()
		return 0, err
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("failed to close backup file: %w", err)
	}
	return len(records), nil
}

// restoreFrom reads the whole backup at path before inserting anything.
func (a *App) restoreFrom(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, appErrors.Wrap(appErrors.ErrInvalidInput, err, fmt.Sprintf("Cannot open backup file %s.", path))
	}
	defer f.Close()

	records, err := backup.Read(f)
	if err != nil {
		return 0, err
	}
	if err := a.Tracker.ImportAll(ctx, records); err != nil {
		return 0, err
	}
	return len(records), nil
}

type backupCmd struct {
	file string
	app  *App
}

func (*backupCmd) Name() string     { return "backup" }
func (*backupCmd) Synopsis() string { return "export all transactions to a CSV file" }
func (*backupCmd) Usage() string {
	return `ledger backup [-f <file>]

  Writes the transactions of every user to a CSV file with the header
  username,amount,category,date,type.
`
}

func (c *backupCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", defaultBackupFile, "Backup file to write.")
}

func (c *backupCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctx = contextutil.WithTraceID(ctx)

	n, err := c.app.backupTo(ctx, c.file)
	if err != nil {
		return c.app.reportError(err)
	}
	c.app.printf("Data backed up to %s (%d transactions).\n", c.file, n)
	return subcommands.ExitSuccess
}

type restoreCmd struct {
	file string
	app  *App
}

func (*restoreCmd) Name() string     { return "restore" }
func (*restoreCmd) Synopsis() string { return "import transactions from a CSV backup" }
func (*restoreCmd) Usage() string {
	return `ledger restore [-f <file>]

  Inserts every row of the backup as a new transaction. Rows already in the ledger are
  not detected, restoring the same file twice doubles them. A malformed file is
  rejected as a whole.
`
}

func (c *restoreCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", defaultBackupFile, "Backup file to read.")
}

func (c *restoreCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctx = contextutil.WithTraceID(ctx)

	n, err := c.app.restoreFrom(ctx, c.file)
	if err != nil {
		return c.app.reportError(err)
	}
	c.app.printf("Data restored from %s (%d transactions).\n", c.file, n)
	return subcommands.ExitSuccess
}
