package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Nicolas-Barriere/pactole-sub001/src/models"
	"github.com/shopspring/decimal"
)

// Store wraps a sql.DB with the storage contracts consumed by the
// reconciler and the keyword matcher. Amounts are persisted as their
// exact decimal string form, never floats.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// EnsureAccount returns the id of the named account, creating it if
// needed.
func (s *Store) EnsureAccount(name, bank string) (int64, error) {
	var id int64
	err := s.db.QueryRow(`SELECT id FROM accounts WHERE name = ?`, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, fmt.Errorf("looking up account %q: %w", name, err)
	}
	res, err := s.db.Exec(`INSERT INTO accounts (name, bank) VALUES (?, ?)`, name, bank)
	if err != nil {
		return 0, fmt.Errorf("creating account %q: %w", name, err)
	}
	return res.LastInsertId()
}

// ListAccountTransactionKeys returns every stored transaction of the
// account, indexed by its dedup key.
func (s *Store) ListAccountTransactionKeys(accountID int64) (map[models.TransactionKey]models.Transaction, error) {
	rows, err := s.db.Query(`
		SELECT id, account_id, date, amount, currency, label, original_label,
		       COALESCE(bank_reference, ''), bank, occurrence, COALESCE(import_batch, ''),
		       COALESCE(category_id, 0)
		FROM transactions WHERE account_id = ?`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	keys := make(map[models.TransactionKey]models.Transaction)
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		keys[tx.Key()] = tx
	}
	return keys, rows.Err()
}

// ListAccountTransactions returns the account's transactions ordered
// by date, then insertion order.
func (s *Store) ListAccountTransactions(accountID int64) ([]models.Transaction, error) {
	rows, err := s.db.Query(`
		SELECT id, account_id, date, amount, currency, label, original_label,
		       COALESCE(bank_reference, ''), bank, occurrence, COALESCE(import_batch, ''),
		       COALESCE(category_id, 0)
		FROM transactions WHERE account_id = ? ORDER BY date, id`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []models.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

func (s *Store) InsertTransaction(tx models.Transaction) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO transactions
			(account_id, date, amount, currency, label, original_label,
			 bank_reference, bank, occurrence, import_batch, category_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tx.AccountID, tx.Date.Format(models.DateFormat), tx.Amount.String(), tx.Currency,
		tx.Label, tx.OriginalLabel, tx.BankReference, tx.Bank, tx.Occurrence,
		tx.ImportBatch, nullableID(tx.CategoryID))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateTransaction rewrites the mutable fields of a stored
// transaction in place; the id and dedup key stay untouched.
func (s *Store) UpdateTransaction(tx models.Transaction) error {
	_, err := s.db.Exec(`
		UPDATE transactions
		SET label = ?, bank_reference = ?, bank = ?, import_batch = ?, category_id = ?, updated_at = ?
		WHERE id = ?`,
		tx.Label, tx.BankReference, tx.Bank, tx.ImportBatch, nullableID(tx.CategoryID),
		time.Now().UTC(), tx.ID)
	return err
}

// SetTransactionCategory tags one transaction.
func (s *Store) SetTransactionCategory(txID, categoryID int64) error {
	_, err := s.db.Exec(`UPDATE transactions SET category_id = ? WHERE id = ?`, nullableID(categoryID), txID)
	return err
}

// ListKeywordRules returns all rules ordered by priority descending,
// keyword ascending, id ascending — the same deterministic order the
// matcher applies.
func (s *Store) ListKeywordRules() ([]models.KeywordRule, error) {
	rows, err := s.db.Query(`
		SELECT id, keyword, target_id, priority
		FROM keyword_rules
		ORDER BY priority DESC, LOWER(keyword) ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []models.KeywordRule
	for rows.Next() {
		var r models.KeywordRule
		if err := rows.Scan(&r.ID, &r.Keyword, &r.TargetID, &r.Priority); err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return rules, rows.Err()
}

func (s *Store) AddKeywordRule(rule models.KeywordRule) (int64, error) {
	res, err := s.db.Exec(`INSERT INTO keyword_rules (keyword, target_id, priority) VALUES (?, ?, ?)`,
		rule.Keyword, rule.TargetID, rule.Priority)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *Store) DeleteKeywordRule(id int64) error {
	_, err := s.db.Exec(`DELETE FROM keyword_rules WHERE id = ?`, id)
	return err
}

func scanTransaction(rows *sql.Rows) (models.Transaction, error) {
	var tx models.Transaction
	var date, amount string
	var categoryID int64
	if err := rows.Scan(&tx.ID, &tx.AccountID, &date, &amount, &tx.Currency, &tx.Label,
		&tx.OriginalLabel, &tx.BankReference, &tx.Bank, &tx.Occurrence, &tx.ImportBatch,
		&categoryID); err != nil {
		return models.Transaction{}, err
	}
	d, err := time.Parse(models.DateFormat, date)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("corrupt date %q in transaction %d: %w", date, tx.ID, err)
	}
	a, err := decimal.NewFromString(amount)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("corrupt amount %q in transaction %d: %w", amount, tx.ID, err)
	}
	tx.Date = d
	tx.Amount = a
	tx.CategoryID = categoryID
	return tx, nil
}

func nullableID(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}
