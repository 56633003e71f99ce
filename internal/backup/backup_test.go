package backup

import (
	"bytes"
	"strings"
	"testing"

	appErrors "github.com/fatali-fataliyev/finance_ledger/customErrors"
	"github.com/fatali-fataliyev/finance_ledger/internal/budget"
	"github.com/fatali-fataliyev/finance_ledger/internal/date"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	records := []budget.Record{
		{UserName: "alice", Amount: decimal.RequireFromString("12.5"), Category: "Food", Date: date.MustParse("2025-03-01"), Type: budget.Expense},
		{UserName: "bob", Amount: decimal.RequireFromString("3000"), Category: "Salary, March", Date: date.MustParse("2025-03-02"), Type: budget.Income},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, records))

	want := "username,amount,category,date,type\n" +
		"alice,12.50,Food,2025-03-01,expense\n" +
		"bob,3000.00,\"Salary, March\",2025-03-02,income\n"
	assert.Equal(t, want, buf.String())
}

func TestWrite_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, nil))
	assert.Equal(t, "username,amount,category,date,type\n", buf.String())

	records, err := Read(&buf)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestRoundTrip(t *testing.T) {
	records := []budget.Record{
		{UserName: "alice", Amount: decimal.RequireFromString("0.99"), Category: "Snacks", Date: date.MustParse("2024-12-31"), Type: budget.Expense},
		{UserName: "alice", Amount: decimal.RequireFromString("0.99"), Category: "Snacks", Date: date.MustParse("2024-12-31"), Type: budget.Expense},
		{UserName: "carol", Amount: decimal.RequireFromString("1500"), Category: "Freelance", Date: date.MustParse("2025-01-15"), Type: budget.Income},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, records))

	got, err := Read(&buf)
	require.NoError(t, err)
	require.Len(t, got, len(records))
	for i := range records {
		assert.Equal(t, records[i].UserName, got[i].UserName)
		assert.True(t, records[i].Amount.Equal(got[i].Amount))
		assert.Equal(t, records[i].Category, got[i].Category)
		assert.Equal(t, records[i].Date, got[i].Date)
		assert.Equal(t, records[i].Type, got[i].Type)
	}
}

func TestRead_Lenient(t *testing.T) {
	input := "\ufeffUsername, Amount, Category, Date, Type\n" +
		"alice, 10, Food, 2025-3-7, EXPENSE\n"

	records, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, date.MustParse("2025-03-07"), records[0].Date)
	assert.Equal(t, budget.Expense, records[0].Type)
	assert.Equal(t, "Food", records[0].Category)
}

func TestRead_Rejects(t *testing.T) {
	const header = "username,amount,category,date,type\n"

	tests := []struct {
		name    string
		input   string
		message string
	}{
		{"empty", "", "backup is empty"},
		{"wrong header", "user,amount,category,date,type\n", "unexpected backup header"},
		{"bad amount", header + "alice,10,Food,2025-03-01,expense\nalice,ten,Food,2025-03-01,expense\n", "line 3"},
		{"bad date", header + "alice,10,Food,01/03/2025,expense\n", "line 2"},
		{"bad type", header + "alice,10,Food,2025-03-01,transfer\n", "line 2"},
		{"missing user", header + ",10,Food,2025-03-01,expense\n", "line 2"},
		{"field count", header + "alice,10,Food,2025-03-01\n", "line 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := Read(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Nil(t, records)
			assert.Equal(t, appErrors.ErrInvalidInput, appErrors.CodeOf(err))
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}
