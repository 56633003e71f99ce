// Package backup reads and writes the ledger backup file: one CSV row per transaction
// under the header username,amount,category,date,type.
package backup

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	appErrors "github.com/fatali-fataliyev/finance_ledger/customErrors"
	"github.com/fatali-fataliyev/finance_ledger/internal/budget"
	"github.com/fatali-fataliyev/finance_ledger/internal/date"
	"github.com/shopspring/decimal"
)

var Header = []string{"username", "amount", "category", "date", "type"}

// Write emits the header followed by one row per record, dates in ISO form and amounts
// with two decimals.
func Write(w io.Writer, records []budget.Record) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, r := range records {
		row := []string{r.UserName, r.Amount.StringFixed(2), r.Category, r.Date.String(), string(r.Type)}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

// Read parses a whole backup. Any malformed row fails the read with an ErrInvalidInput
// naming its line, and no records are returned.
func Read(r io.Reader) ([]budget.Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(Header)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, appErrors.New(appErrors.ErrInvalidInput, "backup is empty, expected header %s", strings.Join(Header, ","))
		}
		return nil, malformed(err)
	}
	if !slices.Equal(normalize(header), Header) {
		return nil, appErrors.New(appErrors.ErrInvalidInput, "unexpected backup header %q, expected %s", strings.Join(header, ","), strings.Join(Header, ","))
	}

	var records []budget.Record
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, malformed(err)
		}
		line, _ := reader.FieldPos(0)

		record, err := parseRow(row)
		if err != nil {
			return nil, appErrors.Wrap(appErrors.ErrInvalidInput, err, fmt.Sprintf("line %d is malformed", line))
		}
		records = append(records, record)
	}
	return records, nil
}

func parseRow(row []string) (budget.Record, error) {
	username := strings.TrimSpace(row[0])
	if username == "" {
		return budget.Record{}, errors.New("username is empty")
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(row[1]))
	if err != nil {
		return budget.Record{}, fmt.Errorf("invalid amount %q: %w", row[1], err)
	}
	day, err := date.Parse(strings.TrimSpace(row[3]))
	if err != nil {
		return budget.Record{}, err
	}
	typ, err := budget.ParseTransactionType(row[4])
	if err != nil {
		return budget.Record{}, err
	}
	return budget.Record{
		UserName: username,
		Amount:   amount,
		Category: row[2],
		Date:     day,
		Type:     typ,
	}, nil
}

func normalize(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		out[i] = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
	}
	return out
}

func malformed(err error) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return appErrors.Wrap(appErrors.ErrInvalidInput, err, fmt.Sprintf("line %d is malformed", parseErr.StartLine))
	}
	return fmt.Errorf("failed to read backup: %w", err)
}
