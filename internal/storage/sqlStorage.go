package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	appErrors "github.com/fatali-fataliyev/finance_ledger/customErrors"
	"github.com/fatali-fataliyev/finance_ledger/internal/auth"
	"github.com/fatali-fataliyev/finance_ledger/internal/budget"
	"github.com/fatali-fataliyev/finance_ledger/internal/contextutil"
	"github.com/fatali-fataliyev/finance_ledger/logging"
	"github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const (
	dialectSQLite = "sqlite"
	dialectMySQL  = "mysql"

	mysqlDuplicateEntry = 1062
	pingAttempts        = 5
	pingInterval        = time.Second
)

type dialect struct {
	name         string
	driverName   string
	upsertBudget string
	isDuplicate  func(error) bool
}

var sqliteDialect = dialect{
	name:       dialectSQLite,
	driverName: "sqlite",
	upsertBudget: `INSERT INTO budgets (username, category, amount) VALUES (?, ?, ?)
		ON CONFLICT(username, category) DO UPDATE SET amount = excluded.amount`,
	isDuplicate: func(err error) bool {
		var sqliteErr *sqlite.Error
		return errors.As(err, &sqliteErr) && sqliteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
	},
}

var mysqlDialect = dialect{
	name:       dialectMySQL,
	driverName: "mysql",
	upsertBudget: `INSERT INTO budgets (username, category, amount) VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE amount = VALUES(amount)`,
	isDuplicate: func(err error) bool {
		var mysqlErr *mysql.MySQLError
		return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
	},
}

// SQLStorage keeps the ledger in SQLite or MySQL. Both share the queries below; only
// the budget upsert and the duplicate-key error differ.
type SQLStorage struct {
	db      *sql.DB
	dialect dialect
}

// --- INIT START --- //

// NewSQLiteStorage opens (creating if needed) the database file at dbPath and brings its
// schema up to date.
func NewSQLiteStorage(ctx context.Context, dbPath string) (*SQLStorage, error) {
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	if err := runMigrations(sqliteDialect, dbPath); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	db, err := sql.Open(sqliteDialect.driverName, dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// one writer at a time, sqlite locks the whole file anyway
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	logging.Logger.Infof("Connected to sqlite database at %s", dbPath)
	return &SQLStorage{db: db, dialect: sqliteDialect}, nil
}

// NewMySQLStorage connects with dsn, waiting a few seconds for the server to come up.
func NewMySQLStorage(ctx context.Context, dsn string) (*SQLStorage, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid mysql dsn: %w", err)
	}
	cfg.ParseTime = true
	// report matched rather than changed rows, an update with equal values is not a miss
	cfg.ClientFoundRows = true
	dsn = cfg.FormatDSN()

	logging.Logger.Info("Connecting to database...")
	db, err := sql.Open(mysqlDialect.driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database handle: %w", err)
	}

	connected := false
	for i := 0; i < pingAttempts; i++ {
		if err := db.PingContext(ctx); err == nil {
			connected = true
			break
		}
		logging.Logger.Warnf("Database not ready, retrying... (%d/%d)", i+1, pingAttempts)
		select {
		case <-ctx.Done():
			db.Close()
			return nil, ctx.Err()
		case <-time.After(pingInterval):
		}
	}
	if !connected {
		db.Close()
		return nil, fmt.Errorf("database unreachable after multiple attempts")
	}

	logging.Logger.Info("Running migrations...")
	if err := runMigrations(mysqlDialect, dsn); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logging.Logger.Info("Connected to database successfully")
	return &SQLStorage{db: db, dialect: mysqlDialect}, nil
}

// --- INIT END --- //

func (s *SQLStorage) GetStorageType() string {
	return s.dialect.name
}

func (s *SQLStorage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLStorage) failure(ctx context.Context, op string, err error, message string) error {
	logging.Logger.Errorf("[TraceID=%s] | failed in Storage.%s() function | Error: %v", contextutil.TraceIDFromContext(ctx), op, err)
	return appErrors.Wrap(appErrors.ErrStorage, err, message)
}

func (s *SQLStorage) CreateUser(ctx context.Context, user auth.User) error {
	query := "INSERT INTO users (username, password_hash) VALUES (?, ?);"
	_, err := s.db.ExecContext(ctx, query, user.UserName, user.PasswordHashed)
	if err != nil {
		if s.dialect.isDuplicate(err) {
			return appErrors.ErrorResponse{
				Code:    appErrors.ErrDuplicateUser,
				Message: "Username already exists.",
			}
		}
		return s.failure(ctx, "CreateUser", err, "Registration failed, try again later.")
	}
	return nil
}

func (s *SQLStorage) FindCredential(ctx context.Context, username string) (auth.UserCredentials, error) {
	var credentials auth.UserCredentials

	query := "SELECT username, password_hash FROM users WHERE username = ?;"
	err := s.db.QueryRowContext(ctx, query, username).Scan(&credentials.UserName, &credentials.PasswordHashed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return auth.UserCredentials{}, appErrors.ErrorResponse{
				Code:    appErrors.ErrNotFound,
				Message: "User not found.",
			}
		}
		return auth.UserCredentials{}, s.failure(ctx, "FindCredential", err, "Failed to validate user, try again later.")
	}
	return credentials, nil
}

func (s *SQLStorage) processTransactionRows(ctx context.Context, rows *sql.Rows) ([]dbTransaction, error) {
	defer rows.Close()

	var result []dbTransaction
	for rows.Next() {
		var row dbTransaction
		if err := rows.Scan(&row.ID, &row.UserName, &row.Amount, &row.Category, &row.Date, &row.Type); err != nil {
			return nil, s.failure(ctx, "processTransactionRows", err, "Failed to read transactions.")
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, s.failure(ctx, "processTransactionRows", err, "Failed to read transactions.")
	}
	return result, nil
}

// LoadTransactions returns the user's transactions in insertion order; ids are
// time-ordered so ordering by id is enough.
func (s *SQLStorage) LoadTransactions(ctx context.Context, username string) ([]budget.Transaction, error) {
	query := "SELECT id, username, amount, category, date, type FROM transactions WHERE username = ? ORDER BY id;"
	rows, err := s.db.QueryContext(ctx, query, username)
	if err != nil {
		return nil, s.failure(ctx, "LoadTransactions", err, "Failed to load transactions.")
	}

	dbRows, err := s.processTransactionRows(ctx, rows)
	if err != nil {
		return nil, err
	}

	transactions := make([]budget.Transaction, 0, len(dbRows))
	for _, row := range dbRows {
		transactions = append(transactions, row.toTransaction())
	}
	return transactions, nil
}

func (s *SQLStorage) LoadBudgets(ctx context.Context, username string) (map[string]decimal.Decimal, error) {
	query := "SELECT category, amount FROM budgets WHERE username = ?;"
	rows, err := s.db.QueryContext(ctx, query, username)
	if err != nil {
		return nil, s.failure(ctx, "LoadBudgets", err, "Failed to load budgets.")
	}
	defer rows.Close()

	budgets := make(map[string]decimal.Decimal)
	for rows.Next() {
		var row dbBudget
		if err := rows.Scan(&row.Category, &row.Amount); err != nil {
			return nil, s.failure(ctx, "LoadBudgets", err, "Failed to load budgets.")
		}
		budgets[row.Category] = row.Amount
	}
	if err := rows.Err(); err != nil {
		return nil, s.failure(ctx, "LoadBudgets", err, "Failed to load budgets.")
	}
	return budgets, nil
}

func (s *SQLStorage) InsertTransaction(ctx context.Context, username string, t budget.Transaction) error {
	query := "INSERT INTO transactions (id, username, amount, category, date, type) VALUES (?, ?, ?, ?, ?, ?);"
	_, err := s.db.ExecContext(ctx, query, t.ID, username, t.Amount, t.Category, t.Date, string(t.Type))
	if err != nil {
		return s.failure(ctx, "InsertTransaction", err, "Failed to save the transaction, try again later.")
	}
	return nil
}

func (s *SQLStorage) UpdateTransaction(ctx context.Context, username string, t budget.Transaction) error {
	query := "UPDATE transactions SET amount = ?, category = ?, date = ?, type = ? WHERE id = ? AND username = ?;"
	res, err := s.db.ExecContext(ctx, query, t.Amount, t.Category, t.Date, string(t.Type), t.ID, username)
	if err != nil {
		return s.failure(ctx, "UpdateTransaction", err, "Failed to update the transaction, try again later.")
	}
	return s.expectOneRow(ctx, "UpdateTransaction", res)
}

func (s *SQLStorage) DeleteTransaction(ctx context.Context, username string, transactionID string) error {
	query := "DELETE FROM transactions WHERE id = ? AND username = ?;"
	res, err := s.db.ExecContext(ctx, query, transactionID, username)
	if err != nil {
		return s.failure(ctx, "DeleteTransaction", err, "Failed to delete the transaction, try again later.")
	}
	return s.expectOneRow(ctx, "DeleteTransaction", res)
}

func (s *SQLStorage) expectOneRow(ctx context.Context, op string, res sql.Result) error {
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return s.failure(ctx, op, err, "Failed to check affected rows.")
	}
	if rowsAffected == 0 {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrNotFound,
			Message: "Transaction not found.",
		}
	}
	return nil
}

func (s *SQLStorage) UpsertBudget(ctx context.Context, username string, category string, amount decimal.Decimal) error {
	_, err := s.db.ExecContext(ctx, s.dialect.upsertBudget, username, category, amount)
	if err != nil {
		return s.failure(ctx, "UpsertBudget", err, "Failed to save the budget, try again later.")
	}
	return nil
}

func (s *SQLStorage) ExportTransactions(ctx context.Context) ([]budget.Record, error) {
	query := "SELECT id, username, amount, category, date, type FROM transactions ORDER BY id;"
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, s.failure(ctx, "ExportTransactions", err, "Failed to export transactions.")
	}

	dbRows, err := s.processTransactionRows(ctx, rows)
	if err != nil {
		return nil, err
	}

	records := make([]budget.Record, 0, len(dbRows))
	for _, row := range dbRows {
		records = append(records, row.toRecord())
	}
	return records, nil
}

// ImportTransactions inserts every record under a fresh id in one database transaction;
// a failing row rolls the whole batch back.
func (s *SQLStorage) ImportTransactions(ctx context.Context, records []budget.Record) error {
	txn, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return s.failure(ctx, "ImportTransactions", err, "Failed to start import.")
	}
	defer txn.Rollback()

	stmt, err := txn.PrepareContext(ctx, "INSERT INTO transactions (id, username, amount, category, date, type) VALUES (?, ?, ?, ?, ?, ?);")
	if err != nil {
		return s.failure(ctx, "ImportTransactions", err, "Failed to prepare import.")
	}
	defer stmt.Close()

	for _, r := range records {
		id, err := budget.NewTransactionID()
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, id, r.UserName, r.Amount, r.Category, r.Date, string(r.Type)); err != nil {
			return s.failure(ctx, "ImportTransactions", err, "Failed to import transactions.")
		}
	}

	if err := txn.Commit(); err != nil {
		return s.failure(ctx, "ImportTransactions", err, "Failed to commit import.")
	}
	return nil
}
