package encoding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_ValidUTF8Unchanged(t *testing.T) {
	assert.Equal(t, "CARTE 10/02 CAFÉ", Normalize([]byte("CARTE 10/02 CAFÉ")))
}

func TestNormalize_StripsBOM(t *testing.T) {
	in := append([]byte{0xEF, 0xBB, 0xBF}, []byte("dateOp;label")...)
	assert.Equal(t, "dateOp;label", Normalize(in))
}

func TestNormalize_Latin1Fallback(t *testing.T) {
	// "CAFÉ" in Latin-1: É is the single byte 0xC9, invalid as UTF-8.
	in := []byte{'C', 'A', 'F', 0xC9}
	assert.Equal(t, "CAFÉ", Normalize(in))
}

func TestNormalize_NeverFails(t *testing.T) {
	// Arbitrary high bytes still come back as a valid string.
	out := Normalize([]byte{0xFF, 0xFE, 0x80, 0x81})
	assert.NotEmpty(t, out)
}

func TestNormalize_Empty(t *testing.T) {
	assert.Equal(t, "", Normalize(nil))
	assert.Equal(t, "", Normalize([]byte{0xEF, 0xBB, 0xBF}))
}
