package storage

import (
	"context"
	"maps"
	"slices"
	"sync"

	appErrors "github.com/fatali-fataliyev/finance_ledger/customErrors"
	"github.com/fatali-fataliyev/finance_ledger/internal/auth"
	"github.com/fatali-fataliyev/finance_ledger/internal/budget"
	"github.com/shopspring/decimal"
)

type memTransaction struct {
	username string
	txn      budget.Transaction
}

// InMemoryStorage keeps everything in process memory; nothing survives Close.
type InMemoryStorage struct {
	mu           sync.Mutex
	users        []auth.User
	transactions []memTransaction
	budgets      map[string]map[string]decimal.Decimal
}

func NewInMemoryStorage() *InMemoryStorage {
	return &InMemoryStorage{
		budgets: make(map[string]map[string]decimal.Decimal),
	}
}

func (inMem *InMemoryStorage) GetStorageType() string {
	return "inmemory"
}

func (inMem *InMemoryStorage) Close() error {
	return nil
}

func (inMem *InMemoryStorage) CreateUser(ctx context.Context, newUser auth.User) error {
	inMem.mu.Lock()
	defer inMem.mu.Unlock()

	for _, user := range inMem.users {
		if user.UserName == newUser.UserName {
			return appErrors.ErrorResponse{
				Code:    appErrors.ErrDuplicateUser,
				Message: "Username already exists.",
			}
		}
	}
	inMem.users = append(inMem.users, newUser)
	return nil
}

func (inMem *InMemoryStorage) FindCredential(ctx context.Context, username string) (auth.UserCredentials, error) {
	inMem.mu.Lock()
	defer inMem.mu.Unlock()

	for _, user := range inMem.users {
		if user.UserName == username {
			return auth.UserCredentials{UserName: user.UserName, PasswordHashed: user.PasswordHashed}, nil
		}
	}
	return auth.UserCredentials{}, appErrors.ErrorResponse{
		Code:    appErrors.ErrNotFound,
		Message: "User not found.",
	}
}

func (inMem *InMemoryStorage) LoadTransactions(ctx context.Context, username string) ([]budget.Transaction, error) {
	inMem.mu.Lock()
	defer inMem.mu.Unlock()

	var result []budget.Transaction
	for _, t := range inMem.transactions {
		if t.username == username {
			result = append(result, t.txn)
		}
	}
	return result, nil
}

func (inMem *InMemoryStorage) LoadBudgets(ctx context.Context, username string) (map[string]decimal.Decimal, error) {
	inMem.mu.Lock()
	defer inMem.mu.Unlock()

	result := make(map[string]decimal.Decimal)
	maps.Copy(result, inMem.budgets[username])
	return result, nil
}

func (inMem *InMemoryStorage) InsertTransaction(ctx context.Context, username string, t budget.Transaction) error {
	inMem.mu.Lock()
	defer inMem.mu.Unlock()

	inMem.transactions = append(inMem.transactions, memTransaction{username: username, txn: t})
	return nil
}

func (inMem *InMemoryStorage) find(username string, transactionID string) int {
	return slices.IndexFunc(inMem.transactions, func(t memTransaction) bool {
		return t.username == username && t.txn.ID == transactionID
	})
}

func (inMem *InMemoryStorage) UpdateTransaction(ctx context.Context, username string, t budget.Transaction) error {
	inMem.mu.Lock()
	defer inMem.mu.Unlock()

	i := inMem.find(username, t.ID)
	if i < 0 {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrNotFound,
			Message: "Transaction not found.",
		}
	}
	inMem.transactions[i].txn = t
	return nil
}

func (inMem *InMemoryStorage) DeleteTransaction(ctx context.Context, username string, transactionID string) error {
	inMem.mu.Lock()
	defer inMem.mu.Unlock()

	i := inMem.find(username, transactionID)
	if i < 0 {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrNotFound,
			Message: "Transaction not found.",
		}
	}
	inMem.transactions = slices.Delete(inMem.transactions, i, i+1)
	return nil
}

func (inMem *InMemoryStorage) UpsertBudget(ctx context.Context, username string, category string, amount decimal.Decimal) error {
	inMem.mu.Lock()
	defer inMem.mu.Unlock()

	if inMem.budgets[username] == nil {
		inMem.budgets[username] = make(map[string]decimal.Decimal)
	}
	inMem.budgets[username][category] = amount
	return nil
}

func (inMem *InMemoryStorage) ExportTransactions(ctx context.Context) ([]budget.Record, error) {
	inMem.mu.Lock()
	defer inMem.mu.Unlock()

	records := make([]budget.Record, 0, len(inMem.transactions))
	for _, t := range inMem.transactions {
		records = append(records, budget.Record{
			UserName: t.username,
			Amount:   t.txn.Amount,
			Category: t.txn.Category,
			Date:     t.txn.Date,
			Type:     t.txn.Type,
		})
	}
	return records, nil
}

func (inMem *InMemoryStorage) ImportTransactions(ctx context.Context, records []budget.Record) error {
	inMem.mu.Lock()
	defer inMem.mu.Unlock()

	imported := make([]memTransaction, 0, len(records))
	for _, r := range records {
		id, err := budget.NewTransactionID()
		if err != nil {
			return err
		}
		imported = append(imported, memTransaction{
			username: r.UserName,
			txn: budget.Transaction{
				ID:       id,
				Amount:   r.Amount,
				Category: r.Category,
				Date:     r.Date,
				Type:     r.Type,
			},
		})
	}
	inMem.transactions = append(inMem.transactions, imported...)
	return nil
}
