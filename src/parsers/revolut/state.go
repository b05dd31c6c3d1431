package revolut

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var decimalZero = decimal.Zero

// completedStates are the completion tokens across localizations,
// compared after case folding and accent stripping ("TERMINÉ" folds
// to "termine").
var completedStates = map[string]bool{
	"completed": true,
	"termine":   true,
}

var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func isCompleted(state string) bool {
	return completedStates[foldState(state)]
}

func foldState(state string) string {
	folded := strings.ToLower(strings.TrimSpace(state))
	stripped, _, err := transform.String(accentStripper, folded)
	if err != nil {
		return folded
	}
	return stripped
}
