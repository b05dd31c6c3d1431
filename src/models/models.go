package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const DateFormat = "2006-01-02"

// ParsedRow is the canonical representation of one statement line.
// Each bank parser is responsible for populating every field it can
// directly from the source file, including the cleaned label.
// Amount carries the sign: negative for debits, positive for credits.
type ParsedRow struct {
	Date          time.Time       `json:"date"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Label         string          `json:"label"`
	OriginalLabel string          `json:"original_label"`
	BankReference string          `json:"bank_reference,omitempty"`
}

// ParseError reports one unusable statement line. Row is the 1-based
// index within the data portion of the file; row 0 is reserved for
// file-level problems (empty file, missing required columns).
type ParseError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

func (e ParseError) Error() string {
	if e.Row == 0 {
		return e.Message
	}
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// KeywordRule maps a label substring to a tag or category target.
// Rules are evaluated from highest Priority to lowest; ties are broken
// by keyword ascending, then ID ascending (see matching.SortRules).
type KeywordRule struct {
	ID       int64  `json:"id"`
	Keyword  string `json:"keyword"`
	TargetID int64  `json:"target_id"`
	Priority int    `json:"priority"`
}

// TransactionKey is the natural dedup key of an imported transaction
// within one account. Occurrence is 1-based and disambiguates
// legitimately identical rows in the same file.
type TransactionKey struct {
	Date          string `json:"date"`   // YYYY-MM-DD
	Amount        string `json:"amount"` // exact decimal, canonical form
	OriginalLabel string `json:"original_label"`
	Occurrence    int    `json:"occurrence"`
}

// KeyOf builds the dedup key of a parsed row at a given occurrence.
func KeyOf(row ParsedRow, occurrence int) TransactionKey {
	return TransactionKey{
		Date:          row.Date.Format(DateFormat),
		Amount:        row.Amount.String(),
		OriginalLabel: row.OriginalLabel,
		Occurrence:    occurrence,
	}
}

// Transaction is the durable record the reconciler writes to storage.
type Transaction struct {
	ID            int64           `json:"id"`
	AccountID     int64           `json:"account_id"`
	Date          time.Time       `json:"date"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Label         string          `json:"label"`
	OriginalLabel string          `json:"original_label"`
	BankReference string          `json:"bank_reference,omitempty"`
	Bank          string          `json:"bank"`
	Occurrence    int             `json:"occurrence"`
	ImportBatch   string          `json:"import_batch"`
	CategoryID    int64           `json:"category_id,omitempty"`
}

// Key returns the stored transaction's dedup key.
func (t Transaction) Key() TransactionKey {
	return TransactionKey{
		Date:          t.Date.Format(DateFormat),
		Amount:        t.Amount.String(),
		OriginalLabel: t.OriginalLabel,
		Occurrence:    t.Occurrence,
	}
}
