// Package boursorama parses Boursorama CSV account exports: semicolon
// separated, a single signed amount column, always EUR.
package boursorama

import (
	"strings"
	"time"

	"github.com/Nicolas-Barriere/pactole-sub001/src/models"
	"github.com/Nicolas-Barriere/pactole-sub001/src/parsers/pipeline"
)

const (
	bankCode   = "boursorama"
	dateLayout = "2006-01-02"
	separator  = ';'
)

var requiredColumns = []string{"dateop", "label", "amount"}

type Parser struct{}

func New() *Parser {
	return &Parser{}
}

func (p *Parser) Bank() string { return bankCode }

// Detect matches on the semicolon header carrying Boursorama's column
// names, using the same header rules as Parse.
func (p *Parser) Detect(content []byte) bool {
	lines := pipeline.SplitLines(string(content))
	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		return false
	}
	header := pipeline.BuildHeader(pipeline.SplitFields(lines[0], separator), nil)
	return header.Require(requiredColumns...) == nil
}

func (p *Parser) Parse(content []byte) ([]models.ParsedRow, []models.ParseError) {
	lines := pipeline.SplitLines(string(content))
	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		return nil, []models.ParseError{{Row: 0, Message: "empty file"}}
	}
	header := pipeline.BuildHeader(pipeline.SplitFields(lines[0], separator), nil)
	if err := header.Require(requiredColumns...); err != nil {
		return nil, []models.ParseError{*err}
	}

	var c pipeline.Collector
	for i, line := range lines[1:] {
		idx := i + 1
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := pipeline.SplitFields(line, separator)

		rawDate := header.Field(fields, "dateop")
		rawAmount := header.Field(fields, "amount")
		rawLabel := header.Field(fields, "label")

		ok := true
		var date time.Time
		if rawDate == "" {
			c.Fail(idx, "missing date")
			ok = false
		} else if d, err := time.Parse(dateLayout, rawDate); err != nil {
			c.Failf(idx, "invalid date: %s", rawDate)
			ok = false
		} else {
			date = d
		}

		amount, amountErr := pipeline.ParseAmount(rawAmount)
		if rawAmount == "" {
			c.Fail(idx, "missing amount")
			ok = false
		} else if amountErr != nil {
			c.Failf(idx, "invalid amount: %s", rawAmount)
			ok = false
		}

		if rawLabel == "" {
			c.Fail(idx, "missing label")
			ok = false
		}

		if !ok {
			continue
		}
		c.Add(models.ParsedRow{
			Date:          date,
			Amount:        amount,
			Currency:      "EUR",
			Label:         CleanLabel(rawLabel),
			OriginalLabel: rawLabel,
		})
	}
	return c.Result()
}
