package normalize

import (
	"strings"

	"golang.org/x/text/cases"
)

var fold = cases.Fold()

// Email trims surrounding whitespace and case-folds the address, so lookups
// and the unique index treat John@Example.COM and john@example.com as the
// same account.
func Email(s string) string {
	return fold.String(strings.TrimSpace(s))
}

// Name collapses runs of whitespace into single spaces.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
