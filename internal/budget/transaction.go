package budget

import (
	"context"
	"fmt"
	"iter"
	"slices"

	appErrors "github.com/fatali-fataliyev/finance_ledger/customErrors"
	"github.com/fatali-fataliyev/finance_ledger/internal/contextutil"
	"github.com/fatali-fataliyev/finance_ledger/logging"
)

func validateTransaction(req TransactionRequest) (TransactionType, error) {
	if !req.Amount.IsPositive() {
		return "", appErrors.New(appErrors.ErrInvalidInput, "transaction amount must be greater than zero, got %s", req.Amount.String())
	}
	if !hasCents(req.Amount) {
		return "", appErrors.New(appErrors.ErrInvalidInput, "transaction amount %s has more than %d decimal places", req.Amount.String(), amountDecimals)
	}
	if req.Amount.GreaterThan(maxTransactionAmount) {
		return "", appErrors.New(appErrors.ErrInvalidInput, "maximum allowed amount per transaction is: %s", maxTransactionAmount.StringFixed(2))
	}
	if req.Category == "" {
		return "", appErrors.New(appErrors.ErrInvalidInput, "category name is empty")
	}
	if len(req.Category) > MAX_TRANSACTION_CATEGORY_NAME_LENGTH {
		return "", appErrors.New(appErrors.ErrInvalidInput, "category name so long, the limit is: %d", MAX_TRANSACTION_CATEGORY_NAME_LENGTH)
	}
	if req.Date.IsZero() {
		return "", appErrors.New(appErrors.ErrInvalidInput, "transaction date is required")
	}
	return ParseTransactionType(req.Type)
}

func (a *Account) checkIndex(index int) error {
	if len(a.Transactions) == 0 {
		return appErrors.New(appErrors.ErrIndexOutOfRange, "Invalid transaction index %d, there are no transactions.", index)
	}
	if index < 0 || index >= len(a.Transactions) {
		return appErrors.New(appErrors.ErrIndexOutOfRange, "Invalid transaction index %d, valid range is 0..%d.", index, len(a.Transactions)-1)
	}
	return nil
}

// AddTransaction stores a new transaction at the end of the ledger and runs the budget
// check for its category. The warning is nil when the budget holds.
func (s *Session) AddTransaction(ctx context.Context, req TransactionRequest) (*BudgetWarning, error) {
	acc, err := s.current()
	if err != nil {
		return nil, err
	}
	txType, err := validateTransaction(req)
	if err != nil {
		return nil, err
	}
	id, err := NewTransactionID()
	if err != nil {
		return nil, err
	}

	txn := Transaction{
		ID:       id,
		Amount:   req.Amount,
		Category: req.Category,
		Date:     req.Date,
		Type:     txType,
	}

	// Persist before touching memory so a storage failure leaves the account as it was.
	if err := s.tracker.storage.InsertTransaction(ctx, acc.UserName, txn); err != nil {
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}
	acc.Transactions = append(acc.Transactions, txn)

	logging.Logger.Infof("[TraceID=%s] | transaction %s added for '%s'", contextutil.TraceIDFromContext(ctx), txn.ID, acc.UserName)
	return s.checkBudget(ctx, txn.Category), nil
}

// UpdateTransaction replaces the transaction at index, keeping its stored identity.
func (s *Session) UpdateTransaction(ctx context.Context, index int, req TransactionRequest) (*BudgetWarning, error) {
	acc, err := s.current()
	if err != nil {
		return nil, err
	}
	if err := acc.checkIndex(index); err != nil {
		return nil, err
	}
	txType, err := validateTransaction(req)
	if err != nil {
		return nil, err
	}

	updated := Transaction{
		ID:       acc.Transactions[index].ID,
		Amount:   req.Amount,
		Category: req.Category,
		Date:     req.Date,
		Type:     txType,
	}
	if err := s.tracker.storage.UpdateTransaction(ctx, acc.UserName, updated); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}
	acc.Transactions[index] = updated

	logging.Logger.Infof("[TraceID=%s] | transaction %s updated for '%s'", contextutil.TraceIDFromContext(ctx), updated.ID, acc.UserName)
	return s.checkBudget(ctx, updated.Category), nil
}

func (s *Session) DeleteTransaction(ctx context.Context, index int) error {
	acc, err := s.current()
	if err != nil {
		return err
	}
	if err := acc.checkIndex(index); err != nil {
		return err
	}

	id := acc.Transactions[index].ID
	if err := s.tracker.storage.DeleteTransaction(ctx, acc.UserName, id); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	acc.Transactions = slices.Delete(acc.Transactions, index, index+1)

	logging.Logger.Infof("[TraceID=%s] | transaction %s deleted for '%s'", contextutil.TraceIDFromContext(ctx), id, acc.UserName)
	return nil
}

// Transactions returns the ledger as (index, transaction) pairs. The sequence iterates
// a copy taken at the call, so it can be ranged over more than once and is not affected
// by later mutations.
func (s *Session) Transactions() (iter.Seq2[int, Transaction], error) {
	acc, err := s.current()
	if err != nil {
		return nil, err
	}
	snapshot := slices.Clone(acc.Transactions)
	return slices.All(snapshot), nil
}

// Len returns the number of transactions in the ledger, 0 without a session.
func (s *Session) Len() int {
	acc, err := s.current()
	if err != nil {
		return 0
	}
	return len(acc.Transactions)
}
