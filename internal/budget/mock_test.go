package budget

import (
	"context"
	"errors"
	"slices"

	appErrors "github.com/fatali-fataliyev/finance_ledger/customErrors"
	"github.com/fatali-fataliyev/finance_ledger/internal/auth"
	"github.com/shopspring/decimal"
)

// Mocks

type mockRow struct {
	username string
	txn      Transaction
}

type MockStorage struct {
	users   map[string]string
	rows    []mockRow
	budgets map[string]map[string]decimal.Decimal
	failErr error // returned by every mutating call when set
}

func NewMockStorage() *MockStorage {
	return &MockStorage{
		users:   make(map[string]string),
		budgets: make(map[string]map[string]decimal.Decimal),
	}
}

var errDiskFull = errors.New("disk full")

func (m *MockStorage) fail() error {
	if m.failErr != nil {
		return appErrors.Wrap(appErrors.ErrStorage, m.failErr, "Storage unavailable.")
	}
	return nil
}

func (m *MockStorage) GetStorageType() string { return "mock" }
func (m *MockStorage) Close() error           { return nil }

func (m *MockStorage) CreateUser(ctx context.Context, user auth.User) error {
	if err := m.fail(); err != nil {
		return err
	}
	if _, ok := m.users[user.UserName]; ok {
		return appErrors.New(appErrors.ErrDuplicateUser, "Username already exists.")
	}
	m.users[user.UserName] = user.PasswordHashed
	return nil
}

func (m *MockStorage) FindCredential(ctx context.Context, username string) (auth.UserCredentials, error) {
	hash, ok := m.users[username]
	if !ok {
		return auth.UserCredentials{}, appErrors.New(appErrors.ErrNotFound, "user not found")
	}
	return auth.UserCredentials{UserName: username, PasswordHashed: hash}, nil
}

func (m *MockStorage) LoadTransactions(ctx context.Context, username string) ([]Transaction, error) {
	var result []Transaction
	for _, r := range m.rows {
		if r.username == username {
			result = append(result, r.txn)
		}
	}
	return result, nil
}

func (m *MockStorage) LoadBudgets(ctx context.Context, username string) (map[string]decimal.Decimal, error) {
	result := make(map[string]decimal.Decimal)
	for k, v := range m.budgets[username] {
		result[k] = v
	}
	return result, nil
}

func (m *MockStorage) InsertTransaction(ctx context.Context, username string, t Transaction) error {
	if err := m.fail(); err != nil {
		return err
	}
	m.rows = append(m.rows, mockRow{username: username, txn: t})
	return nil
}

func (m *MockStorage) UpdateTransaction(ctx context.Context, username string, t Transaction) error {
	if err := m.fail(); err != nil {
		return err
	}
	for i, r := range m.rows {
		if r.username == username && r.txn.ID == t.ID {
			m.rows[i].txn = t
			return nil
		}
	}
	return appErrors.New(appErrors.ErrNotFound, "transaction not found")
}

func (m *MockStorage) DeleteTransaction(ctx context.Context, username string, id string) error {
	if err := m.fail(); err != nil {
		return err
	}
	for i, r := range m.rows {
		if r.username == username && r.txn.ID == id {
			m.rows = slices.Delete(m.rows, i, i+1)
			return nil
		}
	}
	return appErrors.New(appErrors.ErrNotFound, "transaction not found")
}

func (m *MockStorage) UpsertBudget(ctx context.Context, username string, category string, amount decimal.Decimal) error {
	if err := m.fail(); err != nil {
		return err
	}
	if m.budgets[username] == nil {
		m.budgets[username] = make(map[string]decimal.Decimal)
	}
	m.budgets[username][category] = amount
	return nil
}

func (m *MockStorage) ExportTransactions(ctx context.Context) ([]Record, error) {
	var records []Record
	for _, r := range m.rows {
		records = append(records, Record{
			UserName: r.username,
			Amount:   r.txn.Amount,
			Category: r.txn.Category,
			Date:     r.txn.Date,
			Type:     r.txn.Type,
		})
	}
	return records, nil
}

func (m *MockStorage) ImportTransactions(ctx context.Context, records []Record) error {
	if err := m.fail(); err != nil {
		return err
	}
	for _, r := range records {
		id, err := NewTransactionID()
		if err != nil {
			return err
		}
		m.rows = append(m.rows, mockRow{username: r.UserName, txn: Transaction{
			ID: id, Amount: r.Amount, Category: r.Category, Date: r.Date, Type: r.Type,
		}})
	}
	return nil
}
