// Package pipeline holds the row/column plumbing shared by every bank
// parser: line splitting, header indexing, field access and the
// all-or-nothing row collector.
package pipeline

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Nicolas-Barriere/pactole-sub001/src/models"
)

// SplitLines splits file content on both \n and \r\n line endings.
func SplitLines(content string) []string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// SplitFields splits one CSV line on sep, honoring double quotes so
// separators inside quoted fields survive. Surrounding quotes are
// removed and "" inside a quoted field unescapes to one quote.
func SplitFields(line string, sep rune) []string {
	var fields []string
	var b strings.Builder
	inQuotes := false
	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				b.WriteRune('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case r == sep && !inQuotes:
			fields = append(fields, strings.TrimSpace(b.String()))
			b.Reset()
		default:
			b.WriteRune(r)
		}
	}
	fields = append(fields, strings.TrimSpace(b.String()))
	return fields
}

// Header maps lowercased column names to their index in a data line.
// When a name occurs more than once, the first occurrence's index is
// kept but the entry is marked dead: the name still counts as present
// for required-header validation, yet any data access through it
// reports the field as missing. That quirk is observable behavior the
// importing users rely on, so it is preserved rather than merged away.
type Header struct {
	index map[string]int
	dead  map[string]bool
}

// BuildHeader indexes the header fields, case-insensitively. rename
// maps localized names to their canonical form before indexing and may
// be nil.
func BuildHeader(fields []string, rename map[string]string) Header {
	h := Header{index: make(map[string]int), dead: make(map[string]bool)}
	for i, raw := range fields {
		name := strings.ToLower(strings.TrimSpace(raw))
		if canonical, ok := rename[name]; ok {
			name = canonical
		}
		if _, seen := h.index[name]; seen {
			h.dead[name] = true
			continue
		}
		h.index[name] = i
	}
	return h
}

// Has reports whether the column name appeared in the header at all,
// duplicated or not.
func (h Header) Has(name string) bool {
	_, ok := h.index[strings.ToLower(name)]
	return ok
}

// Column returns the index of a usable column. Duplicated names are
// not usable.
func (h Header) Column(name string) (int, bool) {
	name = strings.ToLower(name)
	if h.dead[name] {
		return 0, false
	}
	idx, ok := h.index[name]
	return idx, ok
}

// Field extracts the named column from a data line, or "" when the
// column is unusable or the line is too short.
func (h Header) Field(fields []string, name string) string {
	idx, ok := h.Column(name)
	if !ok || idx >= len(fields) {
		return ""
	}
	return strings.TrimSpace(fields[idx])
}

// Require validates that every named column is present, returning a
// file-level (row 0) error listing the missing ones.
func (h Header) Require(names ...string) *models.ParseError {
	var missing []string
	for _, name := range names {
		if !h.Has(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return &models.ParseError{
		Row:     0,
		Message: fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", ")),
	}
}

// Collector accumulates parsed rows and row errors, enforcing the
// all-or-nothing contract: once any error is recorded, the rows are
// discarded and only the error list is returned.
type Collector struct {
	rows []models.ParsedRow
	errs []models.ParseError
}

// Add records a successfully parsed row.
func (c *Collector) Add(row models.ParsedRow) {
	c.rows = append(c.rows, row)
}

// Fail records an error for the 1-based data row idx.
func (c *Collector) Fail(idx int, message string) {
	c.errs = append(c.errs, models.ParseError{Row: idx, Message: message})
}

// Failf records a formatted error for the 1-based data row idx.
func (c *Collector) Failf(idx int, format string, args ...any) {
	c.Fail(idx, fmt.Sprintf(format, args...))
}

// Result returns rows or errors, never both. Row order matches input
// order in both lists.
func (c *Collector) Result() ([]models.ParsedRow, []models.ParseError) {
	if len(c.errs) > 0 {
		return nil, c.errs
	}
	return c.rows, nil
}
