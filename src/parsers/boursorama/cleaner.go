package boursorama

import (
	"regexp"
	"strings"
)

var (
	cardPrefixRe     = regexp.MustCompile(`^CARTE \d{2}/\d{2}(?:/\d{2})? `)
	terminalSuffixRe = regexp.MustCompile(` CB\*\d{4}$`)
	transferPrefixRe = regexp.MustCompile(`^VIR(?:EMENT)? SEPA `)
)

// CleanLabel strips Boursorama boilerplate from a raw transaction
// description: the "CARTE DD/MM" or "CARTE DD/MM/YY" card purchase
// marker, the trailing "CB*nnnn" terminal suffix and the leading
// "VIR SEPA" / "VIREMENT SEPA" transfer marker.
//
// Some export dialects instead carry a "supplier | raw details" label;
// there the supplier before the pipe is already the canonical name and
// the boilerplate rules are skipped. Cleaning is idempotent.
func CleanLabel(label string) string {
	label = strings.TrimSpace(label)
	if before, _, found := strings.Cut(label, "|"); found {
		return strings.TrimSpace(before)
	}
	label = cardPrefixRe.ReplaceAllString(label, "")
	label = terminalSuffixRe.ReplaceAllString(label, "")
	label = transferPrefixRe.ReplaceAllString(label, "")
	return strings.TrimSpace(label)
}
