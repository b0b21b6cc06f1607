package domain

import "time"

// Match categories for a search result relative to the current product.
const (
	CategorySame    = "same"
	CategorySimilar = "similar"
)

// ProductRecord is the product extracted from the current page by the
// content script. Title and URL are required; everything else is best-effort.
type ProductRecord struct {
	Retailer string   `json:"retailer" binding:"required"`
	Title    string   `json:"title" binding:"required"`
	Price    *float64 `json:"price,omitempty"`
	Brand    string   `json:"brand,omitempty"`
	SKU      string   `json:"sku,omitempty"`
	ImageURL string   `json:"imageUrl,omitempty"`
	URL      string   `json:"url" binding:"required"`
}

// MatchedResult is one reconciled search result. Price is nil when the
// search metadata made no trustworthy USD price claim.
type MatchedResult struct {
	Retailer        string   `json:"retailer"`
	Title           string   `json:"title"`
	URL             string   `json:"url"`
	ImageURL        string   `json:"imageUrl,omitempty"`
	Price           *float64 `json:"price,omitempty"`
	Category        string   `json:"category"`
	SimilarityScore float64  `json:"similarityScore"`
	IsCurrentPage   bool     `json:"isCurrentPage"`
}

// CacheEntry is the stored outcome of one successful live comparison.
type CacheEntry struct {
	Results         []MatchedResult `json:"results"`
	ProductSnapshot ProductRecord   `json:"productSnapshot"`
	CreatedAt       time.Time       `json:"createdAt"`
	ExpiresAt       time.Time       `json:"expiresAt"`
}

// Expired reports whether the entry is past its expiry at the given instant.
func (e *CacheEntry) Expired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}

// ComparisonResult is what the engine hands to the presentation layer.
type ComparisonResult struct {
	Results   []MatchedResult `json:"results"`
	FromCache bool            `json:"fromCache"`
	Fallback  bool            `json:"fallback"`
}
