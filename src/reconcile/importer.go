package reconcile

import (
	"fmt"
	"time"

	"github.com/Nicolas-Barriere/pactole-sub001/src/logger"
	"github.com/Nicolas-Barriere/pactole-sub001/src/models"
	"github.com/Nicolas-Barriere/pactole-sub001/src/parsers"
	"github.com/google/uuid"
)

// Store is the storage contract the importer needs: the stored dedup
// keys of an account (with their transactions, for the replace
// comparison) and write access for decided rows.
type Store interface {
	ListAccountTransactionKeys(accountID int64) (map[models.TransactionKey]models.Transaction, error)
	InsertTransaction(tx models.Transaction) (int64, error)
	UpdateTransaction(tx models.Transaction) error
}

// ImportResult summarizes one import run.
type ImportResult struct {
	Batch    string `json:"batch"`
	Bank     string `json:"bank"`
	Rows     int    `json:"rows"`
	Added    int    `json:"added"`
	Replaced int    `json:"replaced"`
	Ignored  int    `json:"ignored"`
}

// Importer runs the full ingestion pipeline for one uploaded file:
// normalize, detect (unless the caller supplies a bank hint), parse,
// reconcile, persist.
type Importer struct {
	registry *parsers.Registry
	store    Store
}

func NewImporter(registry *parsers.Registry, store Store) *Importer {
	return &Importer{registry: registry, store: store}
}

// ImportFile ingests raw upload bytes into an account. bankHint may be
// empty, in which case content detection picks the parser. A parse
// with row errors aborts the whole import and surfaces every error via
// *parsers.ParseFailure.
func (im *Importer) ImportFile(accountID int64, raw []byte, bankHint string) (*ImportResult, error) {
	start := time.Now()
	batch := uuid.NewString()
	logger.L.Info("import started", "accountID", accountID, "batch", batch, "bankHint", bankHint, "bytes", len(raw))

	content := parsers.Normalize(raw)

	var parser parsers.BankParser
	var err error
	if bankHint != "" {
		parser, err = im.registry.Get(bankHint)
	} else {
		parser, err = im.registry.Detect(content)
	}
	if err != nil {
		return nil, err
	}

	rows, parseErrs := parser.Parse(content)
	if len(parseErrs) > 0 {
		return nil, &parsers.ParseFailure{Bank: parser.Bank(), Errors: parseErrs}
	}

	existing, err := im.store.ListAccountTransactionKeys(accountID)
	if err != nil {
		return nil, fmt.Errorf("loading account transaction keys: %w", err)
	}

	result := &ImportResult{Batch: batch, Bank: parser.Bank(), Rows: len(rows)}
	for _, d := range Reconcile(rows, existing) {
		switch d.Action {
		case ActionAdd:
			tx := transactionOf(accountID, parser.Bank(), batch, d)
			if _, err := im.store.InsertTransaction(tx); err != nil {
				return nil, fmt.Errorf("inserting transaction: %w", err)
			}
			result.Added++
		case ActionReplace:
			tx := transactionOf(accountID, parser.Bank(), batch, d)
			tx.ID = d.Existing.ID
			tx.CategoryID = d.Existing.CategoryID
			if err := im.store.UpdateTransaction(tx); err != nil {
				return nil, fmt.Errorf("replacing transaction %d: %w", d.Existing.ID, err)
			}
			result.Replaced++
		case ActionIgnore:
			result.Ignored++
		}
	}

	logger.L.Info("import finished",
		"accountID", accountID, "batch", batch, "bank", result.Bank,
		"rows", result.Rows, "added", result.Added, "replaced", result.Replaced,
		"ignored", result.Ignored, "duration", time.Since(start))
	return result, nil
}

func transactionOf(accountID int64, bank, batch string, d Decision) models.Transaction {
	return models.Transaction{
		AccountID:     accountID,
		Date:          d.Row.Date,
		Amount:        d.Row.Amount,
		Currency:      d.Row.Currency,
		Label:         d.Row.Label,
		OriginalLabel: d.Row.OriginalLabel,
		BankReference: d.Row.BankReference,
		Bank:          bank,
		Occurrence:    d.Occurrence,
		ImportBatch:   batch,
	}
}
