package mda

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCollapsesWhitespace(t *testing.T) {
	in := "Net sales\t\tincreased by 10%\n\nto  $100 million."

	assert.Equal(t, "Net sales increased by 10% to $100 million.", Normalize(in))
}

func TestNormalizeStripsNonPrintable(t *testing.T) {
	in := "Revenue\x00 grew\x07 strongly"

	assert.Equal(t, "Revenue grew strongly", Normalize(in))
}

func TestNormalizeKeepsDoubleSpaceAroundStrippedRune(t *testing.T) {
	// Whitespace collapse runs before the non-printable strip, so a control
	// character between two spaces leaves both spaces in place.
	assert.Equal(t, "a  b", Normalize("a \x00 b"))
}

func TestNormalizeEmpty(t *testing.T) {
	assert.Equal(t, "", Normalize(""))
}

func TestNormalizeIdempotent(t *testing.T) {
	in := "  Costs \n rose,\tand margins   declined. \r\n"

	once := Normalize(in)
	twice := Normalize(once)

	assert.Equal(t, once, twice)
}

func TestNormalizeTrims(t *testing.T) {
	assert.Equal(t, "trimmed", Normalize("   trimmed   "))
}
