package caissedepargne

import (
	"regexp"
	"strings"
)

var (
	transferPrefixRe = regexp.MustCompile(`^VIR(?:EMENT)? SEPA `)
	debitPrefixRe    = regexp.MustCompile(`^PRLV(?: SEPA)? `)
	cardPrefixRe     = regexp.MustCompile(`^CB (?:ACHAT )?\d{2}/\d{2} `)
)

// CleanLabel strips Caisse d'Épargne boilerplate markers: SEPA
// transfer and direct-debit prefixes and the card purchase marker.
// Idempotent on already-clean labels.
func CleanLabel(label string) string {
	label = strings.TrimSpace(label)
	label = transferPrefixRe.ReplaceAllString(label, "")
	label = debitPrefixRe.ReplaceAllString(label, "")
	label = cardPrefixRe.ReplaceAllString(label, "")
	return strings.TrimSpace(label)
}
