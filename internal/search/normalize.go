package search

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// quoteFolder maps left and right single quotation marks to the ASCII apostrophe.
var quoteFolder = strings.NewReplacer("’", "'", "‘", "'")

// Normalize canonicalizes text for comparison: Unicode compatibility
// decomposition (NFKD) followed by smart-quote folding, so that visually
// identical but differently encoded apostrophes compare equal. It must be
// applied identically to the query and to every message text.
func Normalize(text string) string {
	return quoteFolder.Replace(norm.NFKD.String(text))
}
