package scan

import (
	"regexp"
	"strings"
)

// unicodePunct folds common Unicode quotation and dash variants to
// their ASCII equivalents so names copy-pasted from documents still
// match their definitions.
var unicodePunct = strings.NewReplacer(
	"‘", "'", "’", "'", "‛", "'",
	"“", `"`, "”", `"`, "„", `"`,
	"‐", "-", "‑", "-", "‒", "-",
	"–", "-", "—", "-", "−", "-",
)

var (
	trailingAnnotation = regexp.MustCompile(`\s*\[[^\[\]]*\]$`)
	trailingCopy       = regexp.MustCompile(`\s*-\s*copy$`)
)

// Normalize maps a raw display name to its canonical matching key:
// collapse whitespace, lowercase, fold Unicode quotes/dashes to ASCII,
// strip trailing bracketed annotations ("... [DEV]") and trailing
// "- copy" suffixes, then collapse whitespace again. Two names match
// iff their normalized forms are equal. Normalize is pure and
// idempotent.
func Normalize(name string) string {
	s := collapseSpace(name)
	s = strings.ToLower(s)
	s = unicodePunct.Replace(s)

	// Annotation and copy suffixes can stack ("x [dev] - copy");
	// strip until stable so the result is a fixed point.
	for {
		next := trailingAnnotation.ReplaceAllString(s, "")
		next = trailingCopy.ReplaceAllString(next, "")
		if next == s {
			break
		}
		s = next
	}

	return collapseSpace(s)
}

// collapseSpace reduces all whitespace runs to single spaces and
// trims both ends.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
