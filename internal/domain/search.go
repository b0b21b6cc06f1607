package domain

// SearchResultItem is one raw item from the custom search API. The upstream
// feed is untrusted and partially structured: any field may be absent, so
// consumers must presence-check before use.
type SearchResultItem struct {
	Title       string  `json:"title,omitempty"`
	Link        string  `json:"link,omitempty"`
	DisplayLink string  `json:"displayLink,omitempty"`
	Snippet     string  `json:"snippet,omitempty"`
	HTMLSnippet string  `json:"htmlSnippet,omitempty"`
	PageMap     PageMap `json:"pagemap,omitempty"`
}

// PageMap carries the structured metadata groups a search result may embed.
type PageMap struct {
	Products []map[string]string `json:"product,omitempty"`
	Offers   []map[string]string `json:"offer,omitempty"`
	MetaTags []map[string]string `json:"metatags,omitempty"`
	Images   []map[string]string `json:"cse_image,omitempty"`
}

// SearchResponse is the decoded search API response body. A missing items
// array means zero results, not an error.
type SearchResponse struct {
	Items []SearchResultItem `json:"items"`
}
