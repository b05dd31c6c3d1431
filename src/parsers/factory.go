package parsers

import (
	"errors"
	"fmt"

	"github.com/Nicolas-Barriere/pactole-sub001/src/encoding"
	"github.com/Nicolas-Barriere/pactole-sub001/src/parsers/boursorama"
	"github.com/Nicolas-Barriere/pactole-sub001/src/parsers/caissedepargne"
	"github.com/Nicolas-Barriere/pactole-sub001/src/parsers/revolut"
	"github.com/Nicolas-Barriere/pactole-sub001/src/xlsx"
)

// ErrNoParserMatch is returned when no registered bank recognizes the
// file content.
var ErrNoParserMatch = errors.New("no parser matches file content")

// Registry holds the registered bank parsers in a fixed order; the
// first whose Detect matches wins.
type Registry struct {
	parsers []BankParser
	byBank  map[string]BankParser
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byBank: make(map[string]BankParser)}
}

// Register appends a parser. Panics on a duplicate bank code, which is
// a wiring bug, not an input condition.
func (r *Registry) Register(p BankParser) {
	if _, ok := r.byBank[p.Bank()]; ok {
		panic("duplicate bank parser: " + p.Bank())
	}
	r.parsers = append(r.parsers, p)
	r.byBank[p.Bank()] = p
}

// Get returns the parser for a known bank code, for callers that
// already know the source bank and want to skip detection.
func (r *Registry) Get(bank string) (BankParser, error) {
	p, ok := r.byBank[bank]
	if !ok {
		return nil, fmt.Errorf("no parser available for bank: %s", bank)
	}
	return p, nil
}

// Detect normalizes content and scans the registered parsers in order,
// returning the first match. Detection and parsing run on identical
// normalized content with identical header rules, so a detected file
// cannot fail parsing on header validation alone.
func (r *Registry) Detect(raw []byte) (BankParser, error) {
	content := Normalize(raw)
	if len(content) == 0 {
		return nil, ErrNoParserMatch
	}
	for _, p := range r.parsers {
		if p.Detect(content) {
			return p, nil
		}
	}
	return nil, ErrNoParserMatch
}

// Normalize prepares raw upload bytes for detection and parsing.
// Binary spreadsheet containers pass through untouched; everything
// else gets BOM stripping and encoding repair.
func Normalize(raw []byte) []byte {
	if xlsx.IsSpreadsheet(raw) {
		return raw
	}
	return []byte(encoding.Normalize(raw))
}

// DefaultRegistry returns the registry with every supported bank, in
// detection order.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(boursorama.New())
	r.Register(caissedepargne.New())
	r.Register(revolut.New())
	return r
}
