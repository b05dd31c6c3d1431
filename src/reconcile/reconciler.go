// Package reconcile decides, for every parsed statement row, whether
// it is new, an exact repeat of a stored transaction, or a row that
// supersedes one, so repeated imports of overlapping date ranges never
// duplicate data.
package reconcile

import (
	"github.com/Nicolas-Barriere/pactole-sub001/src/models"
)

// Action is the per-row outcome of reconciliation.
type Action int

const (
	ActionAdd Action = iota
	ActionReplace
	ActionIgnore
)

func (a Action) String() string {
	switch a {
	case ActionAdd:
		return "add"
	case ActionReplace:
		return "replace"
	case ActionIgnore:
		return "ignore"
	default:
		return "unknown"
	}
}

// Decision pairs one parsed row with its action. Occurrence is the
// 1-based counter disambiguating identical rows within the account;
// Existing is the superseded transaction for ActionReplace.
type Decision struct {
	Action     Action
	Row        models.ParsedRow
	Occurrence int
	Existing   *models.Transaction
}

// Reconcile walks rows in file order, assigning occurrence numbers per
// dedup key, and compares each (key, occurrence) against the stored
// transactions. Because parsers preserve row order, re-importing the
// same file assigns the same occurrence numbers and therefore maps
// every row onto the same stored transaction.
//
// A key that is absent from storage is an add. A key that exists is an
// ignore when the stored cleaned label and bank reference are
// identical, and a replace when they differ, so re-imports pick up
// improved label cleaning without duplicating the transaction.
func Reconcile(rows []models.ParsedRow, existing map[models.TransactionKey]models.Transaction) []Decision {
	type bareKey struct {
		date, amount, label string
	}
	counts := make(map[bareKey]int)

	decisions := make([]Decision, 0, len(rows))
	for _, row := range rows {
		bk := bareKey{
			date:   row.Date.Format(models.DateFormat),
			amount: row.Amount.String(),
			label:  row.OriginalLabel,
		}
		counts[bk]++
		occurrence := counts[bk]

		stored, found := existing[models.KeyOf(row, occurrence)]
		switch {
		case !found:
			decisions = append(decisions, Decision{Action: ActionAdd, Row: row, Occurrence: occurrence})
		case stored.Label == row.Label && stored.BankReference == row.BankReference:
			decisions = append(decisions, Decision{Action: ActionIgnore, Row: row, Occurrence: occurrence, Existing: &stored})
		default:
			decisions = append(decisions, Decision{Action: ActionReplace, Row: row, Occurrence: occurrence, Existing: &stored})
		}
	}
	return decisions
}
