package budget

import (
	"context"
	"fmt"
	"time"

	appErrors "github.com/fatali-fataliyev/finance_ledger/customErrors"
	"github.com/fatali-fataliyev/finance_ledger/internal/auth"
	"github.com/fatali-fataliyev/finance_ledger/internal/contextutil"
	"github.com/fatali-fataliyev/finance_ledger/logging"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	MAX_TRANSACTION_AMOUNT_LIMIT         = "9999999999999.99" // fits DECIMAL(15,2)
	MAX_TRANSACTION_CATEGORY_NAME_LENGTH = 255
	MAX_BUDGET_AMOUNT_LIMIT              = "9999999999999.99"
)

// amountDecimals is the precision of every stored amount, DECIMAL(15,2) in mysql.
const amountDecimals = 2

var (
	maxTransactionAmount = decimal.RequireFromString(MAX_TRANSACTION_AMOUNT_LIMIT)
	maxBudgetAmount      = decimal.RequireFromString(MAX_BUDGET_AMOUNT_LIMIT)
)

type Storage interface {
	CreateUser(ctx context.Context, user auth.User) error
	FindCredential(ctx context.Context, username string) (auth.UserCredentials, error)
	LoadTransactions(ctx context.Context, username string) ([]Transaction, error)
	LoadBudgets(ctx context.Context, username string) (map[string]decimal.Decimal, error)
	InsertTransaction(ctx context.Context, username string, t Transaction) error
	UpdateTransaction(ctx context.Context, username string, t Transaction) error
	DeleteTransaction(ctx context.Context, username string, transactionID string) error
	UpsertBudget(ctx context.Context, username string, category string, amount decimal.Decimal) error
	ExportTransactions(ctx context.Context) ([]Record, error)
	ImportTransactions(ctx context.Context, records []Record) error
	GetStorageType() string
	Close() error
}

type BudgetTracker struct {
	storage     Storage
	StorageType string
	hasher      auth.Hasher
	now         func() time.Time
}

type Option func(*BudgetTracker)

// WithClock replaces time.Now; the budget check reads "today" from it.
func WithClock(now func() time.Time) Option {
	return func(bt *BudgetTracker) { bt.now = now }
}

func WithHasher(h auth.Hasher) Option {
	return func(bt *BudgetTracker) { bt.hasher = h }
}

func NewBudgetTracker(s Storage, opts ...Option) *BudgetTracker {
	bt := &BudgetTracker{
		storage:     s,
		StorageType: s.GetStorageType(),
		hasher:      auth.DefaultHasher,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(bt)
	}
	return bt
}

// hasCents reports whether d fits amountDecimals without rounding; "10.500" does, "10.005"
// does not.
func hasCents(d decimal.Decimal) bool {
	return d.Equal(d.Round(amountDecimals))
}

// NewTransactionID returns a time-ordered surrogate id; ids sort in creation order.
func NewTransactionID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", appErrors.Wrap(appErrors.ErrStorage, err, "Failed to generate transaction id.")
	}
	return id.String(), nil
}

// Register creates a user. A taken username fails with ErrDuplicateUser and leaves the
// stored user untouched.
func (bt *BudgetTracker) Register(ctx context.Context, newUser auth.NewUser) error {
	if err := newUser.ValidateUserFields(); err != nil {
		return err
	}

	hashedPassword, err := bt.hasher.Hash(newUser.PasswordPlain)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := auth.User{
		UserName:       newUser.UserName,
		PasswordHashed: hashedPassword,
	}
	if err := bt.storage.CreateUser(ctx, user); err != nil {
		return fmt.Errorf("failed to registration: %w", err)
	}

	logging.Logger.Infof("[TraceID=%s] | user '%s' registered", contextutil.TraceIDFromContext(ctx), user.UserName)
	return nil
}

// Login checks the credentials and returns a session holding the user's ledger,
// freshly loaded from storage.
func (bt *BudgetTracker) Login(ctx context.Context, credentials auth.UserCredentialsPure) (*Session, error) {
	traceID := contextutil.TraceIDFromContext(ctx)

	stored, err := bt.storage.FindCredential(ctx, credentials.UserName)
	if err != nil {
		if appErrors.Is(err, appErrors.ErrNotFound) {
			logging.Logger.Infof("[TraceID=%s] | login rejected, unknown user '%s'", traceID, credentials.UserName)
			return nil, appErrors.New(appErrors.ErrAuth, "Invalid username or password.")
		}
		return nil, fmt.Errorf("failed to validate user: %w", err)
	}
	if !bt.hasher.Compare(stored.PasswordHashed, credentials.PasswordPlain) {
		logging.Logger.Infof("[TraceID=%s] | login rejected, wrong password for '%s'", traceID, credentials.UserName)
		return nil, appErrors.New(appErrors.ErrAuth, "Invalid username or password.")
	}

	account, err := bt.loadAccount(ctx, stored.UserName)
	if err != nil {
		return nil, err
	}

	session := &Session{
		ID:        uuid.NewString(),
		CreatedAt: bt.now().UTC(),
		tracker:   bt,
		account:   account,
	}
	logging.Logger.Infof("[TraceID=%s] | session %s opened for '%s' with %d transaction(s)", traceID, session.ID, account.UserName, len(account.Transactions))
	return session, nil
}

func (bt *BudgetTracker) loadAccount(ctx context.Context, username string) (*Account, error) {
	transactions, err := bt.storage.LoadTransactions(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	budgets, err := bt.storage.LoadBudgets(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to load budgets: %w", err)
	}
	if budgets == nil {
		budgets = make(map[string]decimal.Decimal)
	}
	return &Account{
		UserName:     username,
		Transactions: transactions,
		Budgets:      budgets,
	}, nil
}

// Session is one login. Its zero value, a nil pointer and a logged out session all
// reject operations with ErrNotAuthenticated.
type Session struct {
	ID        string
	CreatedAt time.Time
	tracker   *BudgetTracker
	account   *Account
}

func (s *Session) current() (*Account, error) {
	if s == nil || s.account == nil || s.tracker == nil {
		return nil, appErrors.New(appErrors.ErrNotAuthenticated, "Please log in first.")
	}
	return s.account, nil
}

func (s *Session) LoggedIn() bool {
	_, err := s.current()
	return err == nil
}

// UserName returns the logged-in user, or "" without a session.
func (s *Session) UserName() string {
	acc, err := s.current()
	if err != nil {
		return ""
	}
	return acc.UserName
}

func (s *Session) Logout() {
	if s == nil {
		return
	}
	s.account = nil
}

// Reload replaces the in-memory ledger with what storage holds, e.g. after a restore.
func (s *Session) Reload(ctx context.Context) error {
	acc, err := s.current()
	if err != nil {
		return err
	}
	fresh, err := s.tracker.loadAccount(ctx, acc.UserName)
	if err != nil {
		return err
	}
	s.account = fresh
	return nil
}

// Budget returns the limit for category, zero when unset.
func (s *Session) Budget(category string) (decimal.Decimal, error) {
	acc, err := s.current()
	if err != nil {
		return decimal.Zero, err
	}
	return acc.Budget(category), nil
}

func (s *Session) SetBudget(ctx context.Context, category string, amount decimal.Decimal) error {
	acc, err := s.current()
	if err != nil {
		return err
	}
	if category == "" {
		return appErrors.New(appErrors.ErrInvalidInput, "category name is empty")
	}
	if len(category) > MAX_TRANSACTION_CATEGORY_NAME_LENGTH {
		return appErrors.New(appErrors.ErrInvalidInput, "category name is too long, the limit is: %d", MAX_TRANSACTION_CATEGORY_NAME_LENGTH)
	}
	if amount.IsNegative() {
		return appErrors.New(appErrors.ErrInvalidInput, "budget amount cannot be negative")
	}
	if !hasCents(amount) {
		return appErrors.New(appErrors.ErrInvalidInput, "budget amount %s has more than %d decimal places", amount.String(), amountDecimals)
	}
	if amount.GreaterThan(maxBudgetAmount) {
		return appErrors.New(appErrors.ErrInvalidInput, "budget amount is too large, the limit is: %s", maxBudgetAmount.StringFixed(2))
	}

	if err := s.tracker.storage.UpsertBudget(ctx, acc.UserName, category, amount); err != nil {
		return fmt.Errorf("failed to save budget: %w", err)
	}
	acc.Budgets[category] = amount

	logging.Logger.Infof("[TraceID=%s] | budget for '%s' set to %s by '%s'", contextutil.TraceIDFromContext(ctx), category, amount.StringFixed(2), acc.UserName)
	return nil
}
