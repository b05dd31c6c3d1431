package reconcile

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nicolas-Barriere/pactole-sub001/src/models"
)

func row(t *testing.T, date, amount, label string) models.ParsedRow {
	t.Helper()
	d, err := time.Parse(models.DateFormat, date)
	require.NoError(t, err)
	a, err := decimal.NewFromString(amount)
	require.NoError(t, err)
	return models.ParsedRow{
		Date:          d,
		Amount:        a,
		Currency:      "EUR",
		Label:         label,
		OriginalLabel: label,
	}
}

func storedFrom(rows []models.ParsedRow) map[models.TransactionKey]models.Transaction {
	stored := make(map[models.TransactionKey]models.Transaction)
	for _, d := range Reconcile(rows, nil) {
		stored[models.KeyOf(d.Row, d.Occurrence)] = models.Transaction{
			ID:            int64(len(stored) + 1),
			Date:          d.Row.Date,
			Amount:        d.Row.Amount,
			Currency:      d.Row.Currency,
			Label:         d.Row.Label,
			OriginalLabel: d.Row.OriginalLabel,
			BankReference: d.Row.BankReference,
			Occurrence:    d.Occurrence,
		}
	}
	return stored
}

func TestReconcile_AllNew(t *testing.T) {
	rows := []models.ParsedRow{
		row(t, "2026-02-10", "-4.50", "CAFE"),
		row(t, "2026-02-11", "2500", "EMPLOYEUR"),
	}
	decisions := Reconcile(rows, nil)
	require.Len(t, decisions, 2)
	for _, d := range decisions {
		assert.Equal(t, ActionAdd, d.Action)
		assert.Equal(t, 1, d.Occurrence)
	}
}

// Two identical coffees the same day get occurrences 1 and 2, in file
// order.
func TestReconcile_OccurrenceCounter(t *testing.T) {
	rows := []models.ParsedRow{
		row(t, "2026-02-10", "-4.50", "CAFE"),
		row(t, "2026-02-10", "-4.50", "CAFE"),
		row(t, "2026-02-10", "-4.50", "CAFE"),
	}
	decisions := Reconcile(rows, nil)
	require.Len(t, decisions, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{decisions[0].Occurrence, decisions[1].Occurrence, decisions[2].Occurrence})
}

func TestReconcile_ReimportSameFileIgnoresAll(t *testing.T) {
	rows := []models.ParsedRow{
		row(t, "2026-02-10", "-4.50", "CAFE"),
		row(t, "2026-02-10", "-4.50", "CAFE"),
		row(t, "2026-02-11", "2500", "EMPLOYEUR"),
	}
	stored := storedFrom(rows)

	for _, d := range Reconcile(rows, stored) {
		assert.Equal(t, ActionIgnore, d.Action)
		require.NotNil(t, d.Existing)
	}
}

// A longer overlapping export adds only the genuinely new rows.
func TestReconcile_OverlappingRangeAddsOnlyNew(t *testing.T) {
	first := []models.ParsedRow{
		row(t, "2026-02-10", "-4.50", "CAFE"),
		row(t, "2026-02-11", "2500", "EMPLOYEUR"),
	}
	stored := storedFrom(first)

	second := append(first,
		row(t, "2026-02-10", "-4.50", "CAFE"), // third identical coffee, new occurrence
		row(t, "2026-02-12", "-30.00", "FNAC"),
	)
	decisions := Reconcile(second, stored)
	require.Len(t, decisions, 4)
	assert.Equal(t, ActionIgnore, decisions[0].Action)
	assert.Equal(t, ActionIgnore, decisions[1].Action)
	assert.Equal(t, ActionAdd, decisions[2].Action)
	assert.Equal(t, 2, decisions[2].Occurrence)
	assert.Equal(t, ActionAdd, decisions[3].Action)
}

// A row whose key exists but whose cleaned label changed supersedes
// the stored transaction.
func TestReconcile_ReplaceOnChangedLabel(t *testing.T) {
	original := row(t, "2026-02-10", "-45.32", "CARTE 10/02 CARREFOUR")
	stored := storedFrom([]models.ParsedRow{original})

	better := original
	better.Label = "CARREFOUR" // cleaning improved; original label unchanged
	decisions := Reconcile([]models.ParsedRow{better}, stored)
	require.Len(t, decisions, 1)
	assert.Equal(t, ActionReplace, decisions[0].Action)
	require.NotNil(t, decisions[0].Existing)
	assert.Equal(t, "CARTE 10/02 CARREFOUR", decisions[0].Existing.Label)
}

func TestReconcile_ReplaceOnChangedReference(t *testing.T) {
	original := row(t, "2026-02-10", "-45.32", "CB CARREFOUR")
	stored := storedFrom([]models.ParsedRow{original})

	withRef := original
	withRef.BankReference = "987654"
	decisions := Reconcile([]models.ParsedRow{withRef}, stored)
	require.Len(t, decisions, 1)
	assert.Equal(t, ActionReplace, decisions[0].Action)
}

func TestReconcile_KeyUsesOriginalLabel(t *testing.T) {
	// Same cleaned label, different original labels: distinct keys.
	a := row(t, "2026-02-10", "-4.50", "CARTE 10/02 CAFE")
	b := row(t, "2026-02-10", "-4.50", "CARTE 10/02/26 CAFE")
	a.Label, b.Label = "CAFE", "CAFE"

	decisions := Reconcile([]models.ParsedRow{a, b}, nil)
	require.Len(t, decisions, 2)
	assert.Equal(t, 1, decisions[0].Occurrence)
	assert.Equal(t, 1, decisions[1].Occurrence)
}

func TestReconcile_EmptyRows(t *testing.T) {
	assert.Empty(t, Reconcile(nil, nil))
}
