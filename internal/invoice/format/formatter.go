package format

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var seqPadRe = regexp.MustCompile(`\{SEQ(\d+)\}`)

const DefaultNumberTemplate = "{PREFIX}-{SEQ4}"

// FormatNumber formats a display invoice number from a template, the
// configured prefix, the invoice date, and a monotonic sequence.
//
// This function is PURE:
// - No side effects
// - No DB access
// - Fully deterministic
func FormatNumber(template, prefix string, date time.Time, seq int64) (string, error) {
	if template == "" {
		template = DefaultNumberTemplate
	}

	if seq <= 0 {
		return "", fmt.Errorf("invalid invoice sequence: %d", seq)
	}

	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "INV"
	}

	out := template

	out = strings.ReplaceAll(out, "{PREFIX}", prefix)

	// Date tokens
	out = strings.ReplaceAll(out, "{YYYY}", date.Format("2006"))
	out = strings.ReplaceAll(out, "{YY}", date.Format("06"))
	out = strings.ReplaceAll(out, "{MM}", date.Format("01"))
	out = strings.ReplaceAll(out, "{DD}", date.Format("02"))

	// Simple sequence
	out = strings.ReplaceAll(out, "{SEQ}", strconv.FormatInt(seq, 10))

	// Padded sequence
	out = seqPadRe.ReplaceAllStringFunc(out, func(m string) string {
		match := seqPadRe.FindStringSubmatch(m)
		if len(match) != 2 {
			return m // should never happen
		}

		width, err := strconv.Atoi(match[1])
		if err != nil || width <= 0 {
			return m
		}

		return fmt.Sprintf("%0*d", width, seq)
	})

	// Final safety check: unresolved tokens
	if strings.Contains(out, "{") || strings.Contains(out, "}") {
		return "", fmt.Errorf("unresolved token in invoice number format: %s", out)
	}

	return out, nil
}
