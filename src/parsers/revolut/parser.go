// Package revolut parses Revolut exports, either comma CSV or the
// xlsx spreadsheet download, with English or French localization.
// Only completed transactions are emitted; a non-zero fee on a
// completed row yields a second synthetic expense row.
package revolut

import (
	"strings"
	"time"

	"github.com/Nicolas-Barriere/pactole-sub001/src/models"
	"github.com/Nicolas-Barriere/pactole-sub001/src/parsers/pipeline"
	"github.com/Nicolas-Barriere/pactole-sub001/src/xlsx"
)

const (
	bankCode  = "revolut"
	separator = ','

	colStartedDate = "started date"
	colDescription = "description"
	colAmount      = "amount"
	colFee         = "fee"
	colCurrency    = "currency"
	colState       = "state"
)

// headerRename maps the known French header variants to their English
// canonical names. It is applied after cell extraction, so CSV and
// spreadsheet files share one header-matching path.
var headerRename = map[string]string{
	"produit":       "product",
	"date de début": colStartedDate,
	"date de fin":   "completed date",
	"montant":       colAmount,
	"frais":         colFee,
	"devise":        colCurrency,
	"état":          colState,
	"etat":          colState,
	"solde":         "balance",
}

var requiredColumns = []string{colStartedDate, colDescription, colAmount, colFee, colCurrency, colState}

var dateLayouts = []string{"2006-01-02 15:04:05", "2006-01-02"}

type Parser struct{}

func New() *Parser {
	return &Parser{}
}

func (p *Parser) Bank() string { return bankCode }

func (p *Parser) Detect(content []byte) bool {
	grid, parseErr := extractGrid(content)
	if parseErr != nil || len(grid) == 0 {
		return false
	}
	header := pipeline.BuildHeader(grid[0], headerRename)
	return header.Require(requiredColumns...) == nil
}

func (p *Parser) Parse(content []byte) ([]models.ParsedRow, []models.ParseError) {
	grid, parseErr := extractGrid(content)
	if parseErr != nil {
		return nil, []models.ParseError{*parseErr}
	}
	if len(grid) == 0 || blankRow(grid[0]) {
		return nil, []models.ParseError{{Row: 0, Message: "empty file"}}
	}
	header := pipeline.BuildHeader(grid[0], headerRename)
	if err := header.Require(requiredColumns...); err != nil {
		return nil, []models.ParseError{*err}
	}

	var c pipeline.Collector
	for i, fields := range grid[1:] {
		idx := i + 1
		if blankRow(fields) {
			continue
		}
		// Business-state filter comes first: anything not completed is
		// silently skipped, never reported, whatever else the row holds.
		if !isCompleted(header.Field(fields, colState)) {
			continue
		}
		p.parseRow(idx, fields, header, &c)
	}
	return c.Result()
}

func (p *Parser) parseRow(idx int, fields []string, header pipeline.Header, c *pipeline.Collector) {
	rawDate := header.Field(fields, colStartedDate)
	rawDesc := header.Field(fields, colDescription)
	rawAmount := header.Field(fields, colAmount)
	rawFee := header.Field(fields, colFee)
	currency := header.Field(fields, colCurrency)

	ok := true
	var date time.Time
	if rawDate == "" {
		c.Fail(idx, "missing date")
		ok = false
	} else {
		d, err := parseDate(rawDate)
		if err != nil {
			c.Failf(idx, "invalid date: %s", rawDate)
			ok = false
		}
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

	if rawDesc == "" {
		c.Fail(idx, "missing description")
		ok = false
	}
	if currency == "" {
		c.Fail(idx, "missing currency")
		ok = false
	}

	fee := decimalZero
	if rawFee != "" {
		f, err := pipeline.ParseAmount(rawFee)
		if err != nil {
			c.Failf(idx, "invalid fee: %s", rawFee)
			ok = false
		} else {
			fee = f
		}
	}

	if !ok {
		return
	}

	label := strings.TrimSpace(rawDesc)
	c.Add(models.ParsedRow{
		Date:          date,
		Amount:        amount,
		Currency:      currency,
		Label:         label,
		OriginalLabel: label,
	})
	if !fee.IsZero() {
		feeLabel := "Fee: " + label
		c.Add(models.ParsedRow{
			Date:          date,
			Amount:        fee.Abs().Neg(),
			Currency:      currency,
			Label:         feeLabel,
			OriginalLabel: feeLabel,
		})
	}
}

// extractGrid turns either source format into rows of string cells.
func extractGrid(content []byte) ([][]string, *models.ParseError) {
	if xlsx.IsSpreadsheet(content) {
		rows, err := xlsx.ReadRows(content)
		if err != nil {
			return nil, &models.ParseError{Row: 0, Message: "unreadable spreadsheet: " + err.Error()}
		}
		return rows, nil
	}
	lines := pipeline.SplitLines(string(content))
	grid := make([][]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			grid = append(grid, nil)
			continue
		}
		grid = append(grid, pipeline.SplitFields(line, separator))
	}
	// Trailing blank lines are not data rows.
	for len(grid) > 0 && blankRow(grid[len(grid)-1]) {
		grid = grid[:len(grid)-1]
	}
	return grid, nil
}

func blankRow(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func parseDate(raw string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
