package usecase

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/shopscout/backend/internal/domain"
)

// maxQueryLength bounds the search query; long tails of marketing copy only
// dilute the results.
const maxQueryLength = 60

// querySpecialCharsRegex removes characters that break the search API query
// string.
var querySpecialCharsRegex = regexp.MustCompile(`[#%+@!^*()=\[\]{}<>|\\~\x60"'&,]`)

// BuildSearchQuery builds a focused search query from the product's brand
// and the leading words of its title, capped at maxQueryLength on a word
// boundary.
func BuildSearchQuery(product *domain.ProductRecord) string {
	title := querySpecialCharsRegex.ReplaceAllString(product.Title, " ")
	title = whitespaceRegex.ReplaceAllString(title, " ")
	title = strings.TrimSpace(title)

	query := title
	if product.Brand != "" {
		brandLower := strings.ToLower(product.Brand)
		if !strings.Contains(strings.ToLower(title), brandLower) {
			query = product.Brand + " " + title
		}
	}

	if len(query) > maxQueryLength {
		// Back up to a rune start so the byte cut cannot split a multibyte
		// character, then prefer the last word boundary.
		cut := maxQueryLength
		for cut > 0 && !utf8.RuneStart(query[cut]) {
			cut--
		}
		query = query[:cut]
		if lastSpace := strings.LastIndex(query, " "); lastSpace > 0 {
			query = query[:lastSpace]
		}
	}

	return strings.TrimSpace(query)
}
