package budget

import (
	"context"
	"fmt"

	appErrors "github.com/fatali-fataliyev/finance_ledger/customErrors"
	"github.com/fatali-fataliyev/finance_ledger/internal/contextutil"
	"github.com/fatali-fataliyev/finance_ledger/logging"
)

// ExportAll returns every stored transaction of every user, in insertion order.
func (bt *BudgetTracker) ExportAll(ctx context.Context) ([]Record, error) {
	records, err := bt.storage.ExportTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export transactions: %w", err)
	}
	logging.Logger.Infof("[TraceID=%s] | exported %d transaction(s)", contextutil.TraceIDFromContext(ctx), len(records))
	return records, nil
}

// ImportAll inserts records as they are: no budget check, no dedup against existing
// rows. Types are stored in their canonical lower case form. Open sessions only see the
// rows after Session.Reload.
func (bt *BudgetTracker) ImportAll(ctx context.Context, records []Record) error {
	normalized := make([]Record, len(records))
	for i, r := range records {
		if r.UserName == "" {
			return appErrors.New(appErrors.ErrInvalidInput, "record %d has no username", i+1)
		}
		typ, err := ParseTransactionType(string(r.Type))
		if err != nil {
			return fmt.Errorf("record %d: %w", i+1, err)
		}
		if r.Date.IsZero() {
			return appErrors.New(appErrors.ErrInvalidInput, "record %d has no date", i+1)
		}
		if !hasCents(r.Amount) {
			return appErrors.New(appErrors.ErrInvalidInput, "record %d amount %s has more than %d decimal places", i+1, r.Amount.String(), amountDecimals)
		}
		r.Type = typ
		normalized[i] = r
	}
	if err := bt.storage.ImportTransactions(ctx, normalized); err != nil {
		return fmt.Errorf("failed to import transactions: %w", err)
	}
	logging.Logger.Infof("[TraceID=%s] | imported %d transaction(s)", contextutil.TraceIDFromContext(ctx), len(normalized))
	return nil
}
