package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	date := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	got, err := FormatNumber("", "INV", date, 7)
	assert.NoError(t, err)
	assert.Equal(t, "INV-0007", got)

	got, err = FormatNumber("{PREFIX}/{YYYY}{MM}/{SEQ6}", "GST", date, 42)
	assert.NoError(t, err)
	assert.Equal(t, "GST/202608/000042", got)

	got, err = FormatNumber("{PREFIX}-{SEQ}", "", date, 3)
	assert.NoError(t, err)
	assert.Equal(t, "INV-3", got)
}

func TestFormatNumber_InvalidSequence(t *testing.T) {
	_, err := FormatNumber("", "INV", time.Now(), 0)
	assert.Error(t, err)
}

func TestFormatNumber_UnresolvedToken(t *testing.T) {
	_, err := FormatNumber("{PREFIX}-{NOPE}", "INV", time.Now(), 1)
	assert.Error(t, err)
}
