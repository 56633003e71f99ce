package cli

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func script(lines ...string) *strings.Reader {
	return strings.NewReader(strings.Join(lines, "\n") + "\n")
}

func TestMenu_Session(t *testing.T) {
	app := newTestApp(t)
	file := filepath.Join(t.TempDir(), "menu_backup.csv")

	input := script(
		"3",                   // add before login
		"1", "alice", "secret", // register
		"1", "alice", "again", // duplicate
		"2", "alice", "wrong", // bad login
		"2", "alice", "secret", // login
		"8", "Food", "50", // budget
		"3", "60", "Food", "2025-03-10", "expense",
		"3", "ten", "Food", "2025-03-10", "expense", // malformed amount, loop goes on
		"3", "20", "Rent", "03/10/2025", "expense", // malformed date
		"3", "1000", "Salary", "2025-03-01", "INCOME",
		"6",
		"4", "7", "1", "Food", "2025-03-10", "expense", // out of range
		"4", "0", "40", "Food", "2025-03-10", "expense",
		"7", "2025-03-01", "2025-03-31",
		"9", file,
		"10", file,
		"6",
		"5", "0",
		"42",
		"11",
	)

	require.NoError(t, NewMenu(app.App, input).Run(context.Background()))
	out := app.out.String()

	assert.Contains(t, out, "Please log in first.")
	assert.Contains(t, out, "User registered successfully.")
	assert.Contains(t, out, "Username already exists.")
	assert.Contains(t, out, "Invalid username or password.")
	assert.Contains(t, out, "Welcome, alice!")
	assert.Contains(t, out, "Budget set for Food: $50.00")
	assert.Contains(t, out, "exceeded your budget for Food")
	assert.Contains(t, out, "Invalid amount 'ten'")
	assert.Contains(t, out, "Invalid date '03/10/2025'")
	assert.Contains(t, out, "Invalid transaction index 7")
	assert.Contains(t, out, "Transaction updated successfully.")
	assert.Contains(t, out, "$960.00", "savings after the update")
	assert.Contains(t, out, "Data backed up to")
	assert.Contains(t, out, "Data restored from")
	assert.Contains(t, out, "Transaction deleted successfully.")
	assert.Contains(t, out, "Invalid choice. Please try again.")
	assert.True(t, strings.HasSuffix(out, "Goodbye!\n"))

	// update and delete show the ledger between the menu choice and the index prompt
	for _, label := range []string{"Enter transaction index to update: ", "Enter transaction index to delete: "} {
		at := strings.Index(out, label)
		require.Positive(t, at, label)
		before := out[:at]
		assert.Greater(t, strings.LastIndex(before, "Transactions of alice"), strings.LastIndex(before, "Enter your choice: "), label)
	}

	// The restore reloaded the session: two Salary rows show in the last listing.
	last := out[strings.LastIndex(out, "Transactions of alice"):]
	assert.Equal(t, 2, strings.Count(last, "Salary"))
}

func TestMenu_EndOfInput(t *testing.T) {
	app := newTestApp(t)

	require.NoError(t, NewMenu(app.App, script("1", "bob")).Run(context.Background()))
	assert.NotContains(t, app.out.String(), "User registered successfully.")

	require.NoError(t, NewMenu(app.App, strings.NewReader("")).Run(context.Background()))
}
