// Package caissedepargne parses Caisse d'Épargne CSV exports:
// semicolon separated, split Débit/Crédit columns, DD/MM/YYYY dates
// and an operation number preserved as the bank reference.
package caissedepargne

import (
	"strings"
	"time"

	"github.com/Nicolas-Barriere/pactole-sub001/src/models"
	"github.com/Nicolas-Barriere/pactole-sub001/src/parsers/pipeline"
	"github.com/shopspring/decimal"
)

const (
	bankCode   = "caisse_depargne"
	dateLayout = "02/01/2006"
	separator  = ';'

	colDate      = "date"
	colReference = "numéro d'opération"
	colLabel     = "libellé"
	colDebit     = "débit"
	colCredit    = "crédit"
)

var requiredColumns = []string{colDate, colReference, colLabel, colDebit, colCredit}

type Parser struct{}

func New() *Parser {
	return &Parser{}
}

func (p *Parser) Bank() string { return bankCode }

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

		rawDate := header.Field(fields, colDate)
		rawLabel := header.Field(fields, colLabel)
		rawDebit := header.Field(fields, colDebit)
		rawCredit := header.Field(fields, colCredit)

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

		amount, amountOK := p.resolveAmount(idx, rawDebit, rawCredit, &c)
		ok = ok && amountOK

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
			BankReference: header.Field(fields, colReference),
		})
	}
	return c.Result()
}

// resolveAmount derives the signed amount from whichever of the two
// columns is filled: debit values are forced negative and credit
// values forced positive, regardless of any sign already present in
// the raw text. When both columns are filled the debit wins.
func (p *Parser) resolveAmount(idx int, rawDebit, rawCredit string, c *pipeline.Collector) (decimal.Decimal, bool) {
	switch {
	case rawDebit != "":
		v, err := pipeline.ParseAmount(rawDebit)
		if err != nil {
			c.Failf(idx, "invalid amount: %s", rawDebit)
			return decimal.Zero, false
		}
		return v.Abs().Neg(), true
	case rawCredit != "":
		v, err := pipeline.ParseAmount(rawCredit)
		if err != nil {
			c.Failf(idx, "invalid amount: %s", rawCredit)
			return decimal.Zero, false
		}
		return v.Abs(), true
	default:
		c.Fail(idx, "missing amount")
		return decimal.Zero, false
	}
}
