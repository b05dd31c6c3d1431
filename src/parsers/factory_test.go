package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixtures = map[string][]byte{
	"boursorama": []byte("dateOp;dateVal;label;amount\n" +
		"2026-02-10;2026-02-10;CARTE 10/02 CARREFOUR;-45,32\n"),
	"caisse_depargne": []byte("Date;Numéro d'opération;Libellé;Débit;Crédit;Solde\n" +
		"10/02/2026;123456;VIR SEPA EMPLOYEUR;;2500.00;\n"),
	"revolut": []byte("Type,Product,Started Date,Completed Date,Description,Amount,Fee,Currency,State,Balance\n" +
		"CARD_PAYMENT,Current,2026-02-10 11:04:32,2026-02-11 09:00:00,Tesco,-23.50,0.00,GBP,COMPLETED,476.50\n"),
}

func TestDetect_EachFixtureFindsItsBank(t *testing.T) {
	registry := DefaultRegistry()
	for bank, content := range fixtures {
		parser, err := registry.Detect(content)
		require.NoError(t, err, "bank %s", bank)
		assert.Equal(t, bank, parser.Bank())
	}
}

// Detection is mutually exclusive across the registered banks: a file
// one parser handles matches no other parser.
func TestDetect_MutualExclusivity(t *testing.T) {
	registry := DefaultRegistry()
	for bank, content := range fixtures {
		normalized := Normalize(content)
		for _, p := range registry.parsers {
			if p.Bank() == bank {
				continue
			}
			assert.False(t, p.Detect(normalized), "%s fixture matched %s", bank, p.Bank())
		}
	}
}

func TestDetect_ParseAgreesWithDetection(t *testing.T) {
	registry := DefaultRegistry()
	for bank, content := range fixtures {
		parser, err := registry.Detect(content)
		require.NoError(t, err)
		rows, errs := parser.Parse(Normalize(content))
		assert.Empty(t, errs, "bank %s", bank)
		assert.NotEmpty(t, rows, "bank %s", bank)
	}
}

func TestDetect_EmptyContent(t *testing.T) {
	registry := DefaultRegistry()
	_, err := registry.Detect(nil)
	assert.ErrorIs(t, err, ErrNoParserMatch)
	_, err = registry.Detect([]byte{})
	assert.ErrorIs(t, err, ErrNoParserMatch)
}

func TestDetect_UnknownContent(t *testing.T) {
	_, err := DefaultRegistry().Detect([]byte("id,amount\n1,2\n"))
	assert.ErrorIs(t, err, ErrNoParserMatch)
}

func TestDetect_BOMInvariance(t *testing.T) {
	registry := DefaultRegistry()
	withBOM := append([]byte{0xEF, 0xBB, 0xBF}, fixtures["boursorama"]...)
	parser, err := registry.Detect(withBOM)
	require.NoError(t, err)
	assert.Equal(t, "boursorama", parser.Bank())

	rows, errs := parser.Parse(Normalize(withBOM))
	require.Empty(t, errs)
	plain, _ := parser.Parse(Normalize(fixtures["boursorama"]))
	assert.Equal(t, plain, rows)
}

func TestGet_BankHint(t *testing.T) {
	registry := DefaultRegistry()
	parser, err := registry.Get("revolut")
	require.NoError(t, err)
	assert.Equal(t, "revolut", parser.Bank())

	_, err = registry.Get("monzo")
	assert.Error(t, err)
}

func TestRegister_DuplicatePanics(t *testing.T) {
	registry := DefaultRegistry()
	parser, err := registry.Get("boursorama")
	require.NoError(t, err)
	assert.Panics(t, func() { registry.Register(parser) })
}
