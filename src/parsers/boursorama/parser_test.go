package boursorama

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = "dateOp;dateVal;label;amount\n" +
	"2026-02-10;2026-02-10;CARTE 10/02 CARREFOUR;-45,32\n" +
	"2026-02-11;2026-02-11;VIR SEPA EMPLOYEUR;2500.00\n" +
	"2026-02-12;2026-02-12;CARTE 12/02/26 BOULANGERIE PAUL CB*4411;-3,80\n"

func TestParse_CardPurchase(t *testing.T) {
	p := New()
	rows, errs := p.Parse([]byte(sampleCSV))
	require.Empty(t, errs)
	require.Len(t, rows, 3)

	first := rows[0]
	assert.Equal(t, "2026-02-10", first.Date.Format("2006-01-02"))
	assert.Equal(t, "-45.32", first.Amount.String())
	assert.Equal(t, "EUR", first.Currency)
	assert.Equal(t, "CARREFOUR", first.Label)
	assert.Equal(t, "CARTE 10/02 CARREFOUR", first.OriginalLabel)

	assert.Equal(t, "EMPLOYEUR", rows[1].Label)
	assert.True(t, rows[1].Amount.Equal(rows[1].Amount.Abs()))

	assert.Equal(t, "BOULANGERIE PAUL", rows[2].Label)
	assert.Equal(t, "-3.8", rows[2].Amount.String())
}

func TestParse_BOMAndCRLFInvariance(t *testing.T) {
	p := New()
	plain, errs := p.Parse([]byte(sampleCSV))
	require.Empty(t, errs)

	crlf := []byte("dateOp;dateVal;label;amount\r\n" +
		"2026-02-10;2026-02-10;CARTE 10/02 CARREFOUR;-45,32\r\n" +
		"2026-02-11;2026-02-11;VIR SEPA EMPLOYEUR;2500.00\r\n" +
		"2026-02-12;2026-02-12;CARTE 12/02/26 BOULANGERIE PAUL CB*4411;-3,80\r\n")
	withCRLF, errs := p.Parse(crlf)
	require.Empty(t, errs)
	assert.Equal(t, plain, withCRLF)
}

func TestParse_AllOrNothing(t *testing.T) {
	content := "dateOp;dateVal;label;amount\n" +
		"2026-02-10;2026-02-10;CARREFOUR;-45,32\n" +
		";2026-02-11;EMPLOYEUR;2500.00\n" +
		"2026-02-12;2026-02-12;PAUL;not-a-number\n"

	rows, errs := New().Parse([]byte(content))
	assert.Nil(t, rows)
	require.Len(t, errs, 2)
	assert.Equal(t, 2, errs[0].Row)
	assert.Equal(t, "missing date", errs[0].Message)
	assert.Equal(t, 3, errs[1].Row)
	assert.Equal(t, "invalid amount: not-a-number", errs[1].Message)
}

func TestParse_MissingColumnsIsFileLevel(t *testing.T) {
	rows, errs := New().Parse([]byte("dateOp;dateVal\n2026-02-10;2026-02-10\n"))
	assert.Nil(t, rows)
	require.Len(t, errs, 1)
	assert.Equal(t, 0, errs[0].Row)
	assert.Contains(t, errs[0].Message, "amount")
	assert.Contains(t, errs[0].Message, "label")
}

func TestParse_EmptyFile(t *testing.T) {
	rows, errs := New().Parse(nil)
	assert.Nil(t, rows)
	require.Len(t, errs, 1)
	assert.Equal(t, 0, errs[0].Row)
}

func TestParse_BlankLinesSkippedButCounted(t *testing.T) {
	content := "dateOp;dateVal;label;amount\n" +
		"\n" +
		"2026-02-10;2026-02-10;CARREFOUR;oops\n"
	_, errs := New().Parse([]byte(content))
	require.Len(t, errs, 1)
	// The blank line occupies data-row 1; the bad row is 2.
	assert.Equal(t, 2, errs[0].Row)
}

func TestDetect(t *testing.T) {
	p := New()
	assert.True(t, p.Detect([]byte(sampleCSV)))
	assert.False(t, p.Detect([]byte("Type,Product,Started Date,Amount\n")))
	assert.False(t, p.Detect(nil))
}

func TestCleanLabel(t *testing.T) {
	cases := map[string]string{
		"CARTE 10/02 CARREFOUR":              "CARREFOUR",
		"CARTE 10/02/26 CARREFOUR":           "CARREFOUR",
		"CARTE 10/02 CARREFOUR CB*4411":      "CARREFOUR",
		"VIR SEPA EMPLOYEUR":                 "EMPLOYEUR",
		"VIREMENT SEPA EMPLOYEUR":            "EMPLOYEUR",
		"AMAZON EU SARL | CARTE 10/02 AMZN":  "AMAZON EU SARL",
		"CARREFOUR":                          "CARREFOUR",
		"  CARREFOUR  ":                      "CARREFOUR",
	}
	for raw, want := range cases {
		assert.Equal(t, want, CleanLabel(raw), "raw %q", raw)
	}
}

func TestCleanLabel_Idempotent(t *testing.T) {
	for _, raw := range []string{
		"CARTE 10/02 CARREFOUR CB*4411",
		"VIR SEPA EMPLOYEUR",
		"AMAZON EU SARL | details",
		"plain label",
	} {
		once := CleanLabel(raw)
		assert.Equal(t, once, CleanLabel(once), "raw %q", raw)
	}
}
