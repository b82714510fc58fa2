package words

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumberToWords(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "Zero"},
		{1, "One"},
		{13, "Thirteen"},
		{20, "Twenty"},
		{34, "Thirty-Four"},
		{100, "One Hundred"},
		{101, "One Hundred and One"},
		{999, "Nine Hundred and Ninety-Nine"},
		{1000, "One Thousand"},
		{1234, "One Thousand Two Hundred and Thirty-Four"},
		{99_999, "Ninety-Nine Thousand Nine Hundred and Ninety-Nine"},
		{100_000, "One Lakh"},
		{123_456, "One Lakh Twenty-Three Thousand Four Hundred and Fifty-Six"},
		{10_000_000, "One Crore"},
		{12_345_678, "One Crore Twenty-Three Lakh Forty-Five Thousand Six Hundred and Seventy-Eight"},
		{-42, "Minus Forty-Two"},
		{-1000, "Minus One Thousand"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, NumberToWords(tc.in), "n=%d", tc.in)
	}
}

func TestNumberToWords_LargeCroreMultiplier(t *testing.T) {
	// The crore multiplier itself recurses through the full converter.
	assert.Equal(t,
		"One Hundred and Twenty-Three Crore",
		NumberToWords(1_230_000_000),
	)
}
