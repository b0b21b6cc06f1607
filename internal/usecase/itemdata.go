package usecase

import (
	"strings"

	"github.com/shopscout/backend/internal/domain"
)

// priceFieldNames are the structured fields, in preference order, that may
// carry a price claim for a search result.
var priceFieldNames = []string{"price", "og:price:amount", "product:price:amount", "lowprice"}

// imageFieldNames are the structured fields that may carry a product image.
var imageFieldNames = []string{"src", "og:image", "image"}

// ExtractItemPrice digs a USD price out of a result's structured metadata.
// Every access is presence-checked: the pagemap is untrusted and any group
// or field may be missing or junk. Parsing is strict-USD so a foreign price
// never leaks into the result set. Nil means no trustworthy claim.
func ExtractItemPrice(item domain.SearchResultItem) *float64 {
	groups := [][]map[string]string{
		item.PageMap.Offers,
		item.PageMap.Products,
		item.PageMap.MetaTags,
	}

	for _, group := range groups {
		for _, fields := range group {
			if fields == nil {
				continue
			}
			for _, name := range priceFieldNames {
				raw, ok := fields[name]
				if !ok || raw == "" {
					continue
				}
				// Metadata amounts are usually bare numbers; currency
				// context comes from a sibling field when present.
				if cur, ok := fields["pricecurrency"]; ok && !strings.EqualFold(cur, "USD") {
					continue
				}
				if cur, ok := fields["og:price:currency"]; ok && !strings.EqualFold(cur, "USD") {
					continue
				}
				if price := ParsePrice(ensureDollarPrefix(raw), true); price != nil {
					return price
				}
			}
		}
	}

	return nil
}

// ensureDollarPrefix lets bare metadata amounts ("24.99") pass strict
// parsing while leaving explicitly marked text alone.
func ensureDollarPrefix(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return trimmed
	}
	if trimmed[0] >= '0' && trimmed[0] <= '9' {
		return "$" + trimmed
	}
	return trimmed
}

// ExtractItemImage picks a product image URL from the structured metadata,
// if any group carries one.
func ExtractItemImage(item domain.SearchResultItem) string {
	groups := [][]map[string]string{
		item.PageMap.Images,
		item.PageMap.MetaTags,
		item.PageMap.Products,
	}

	for _, group := range groups {
		for _, fields := range group {
			if fields == nil {
				continue
			}
			for _, name := range imageFieldNames {
				if src, ok := fields[name]; ok && strings.HasPrefix(src, "http") {
					return src
				}
			}
		}
	}

	return ""
}
