package parsers

import (
	"fmt"
	"strings"

	"github.com/Nicolas-Barriere/pactole-sub001/src/models"
)

// BankParser is a stateless strategy for one bank's export format.
// Implementations are registered once at startup and selected purely
// from file content.
type BankParser interface {
	// Bank returns the stable bank code, e.g. "boursorama".
	Bank() string
	// Detect reports whether content looks like an export from this
	// bank. Content has already been through Normalize.
	Detect(content []byte) bool
	// Parse converts content into canonical rows. Exactly one of the
	// two return values is non-nil: a file with any bad row yields
	// only the errors (all-or-nothing per file). Row order is
	// preserved in both lists.
	Parse(content []byte) ([]models.ParsedRow, []models.ParseError)
}

// ParseFailure wraps the per-row error list of a failed parse so
// callers can surface every row problem, not just the first.
type ParseFailure struct {
	Bank   string
	Errors []models.ParseError
}

func (f *ParseFailure) Error() string {
	if len(f.Errors) == 1 {
		return fmt.Sprintf("%s: %s", f.Bank, f.Errors[0].Error())
	}
	msgs := make([]string, len(f.Errors))
	for i, e := range f.Errors {
		msgs[i] = e.Error()
	}
	return fmt.Sprintf("%s: %d rows failed: %s", f.Bank, len(f.Errors), strings.Join(msgs, "; "))
}
