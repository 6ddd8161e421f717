package meter

import "strings"

// MatchMode selects how serial numbers are compared. Normalized matching
// treats "007", "07" and "7" as the same identity token; exact matching
// compares the scanned text verbatim apart from surrounding whitespace.
type MatchMode string

const (
	MatchNormalized MatchMode = "normalized"
	MatchExact      MatchMode = "exact"
)

// Canonical returns the comparison key for a serial under the given mode.
func Canonical(mode MatchMode, serial string) string {
	s := strings.TrimSpace(serial)
	if mode == MatchExact {
		return s
	}

	s = strings.ToUpper(s)

	// Strip leading zeros, but never reduce a serial to the empty string.
	trimmed := strings.TrimLeft(s, "0")
	if trimmed == "" && s != "" {
		return "0"
	}

	return trimmed
}
