package storage

import (
	"github.com/fatali-fataliyev/finance_ledger/internal/budget"
	"github.com/fatali-fataliyev/finance_ledger/internal/date"
	"github.com/shopspring/decimal"
)

type dbTransaction struct {
	ID       string
	UserName string
	Amount   decimal.Decimal
	Category string
	Date     date.Date
	Type     string
}

func (row dbTransaction) toTransaction() budget.Transaction {
	return budget.Transaction{
		ID:       row.ID,
		Amount:   row.Amount,
		Category: row.Category,
		Date:     row.Date,
		Type:     budget.TransactionType(row.Type),
	}
}

func (row dbTransaction) toRecord() budget.Record {
	return budget.Record{
		UserName: row.UserName,
		Amount:   row.Amount,
		Category: row.Category,
		Date:     row.Date,
		Type:     budget.TransactionType(row.Type),
	}
}

type dbBudget struct {
	Category string
	Amount   decimal.Decimal
}
