package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/shopscout/backend/internal/domain"
)

// Package-level compiled regex patterns for performance
var nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9]+`)

// liveCompareTimeout bounds the whole live path (rate limiter, retries and
// backoff included). Past it the request proceeds to the fallback set.
const liveCompareTimeout = 10 * time.Second

// fallbackRetailer is one synthetic entry shown when live data is
// unavailable. The URL template points at the retailer's own search page so
// the user still gets somewhere useful to click.
type fallbackRetailer struct {
	name      string
	searchURL string
}

var fallbackRetailers = []fallbackRetailer{
	{"Amazon", "https://www.amazon.com/s?k=%s"},
	{"Walmart", "https://www.walmart.com/search?q=%s"},
	{"Target", "https://www.target.com/s?searchTerm=%s"},
	{"Best Buy", "https://www.bestbuy.com/site/searchpage.jsp?st=%s"},
}

// ComparisonServiceConfig holds configuration for the comparison service
type ComparisonServiceConfig struct {
	CacheTTL           time.Duration
	SearchEnabled      bool
	Matching           MatcherConfig
	EnableDebugLogging bool
}

// ComparisonService owns one compare request end to end: cache lookup, API
// query, filtering, matching, cache write and ordering for presentation.
type ComparisonService struct {
	cache              domain.CacheRepository
	searchClient       domain.SearchClient
	matcher            *Matcher
	cacheTTL           time.Duration
	searchEnabled      bool
	enableDebugLogging bool
}

// NewComparisonService creates a comparison service with dependencies. A
// nil searchClient forces the fallback path, same as searchEnabled=false.
func NewComparisonService(
	cache domain.CacheRepository,
	searchClient domain.SearchClient,
	config ComparisonServiceConfig,
) *ComparisonService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 24 * time.Hour
	}

	return &ComparisonService{
		cache:              cache,
		searchClient:       searchClient,
		matcher:            NewMatcher(config.Matching),
		cacheTTL:           cacheTTL,
		searchEnabled:      config.SearchEnabled,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// Compare resolves one product against other retailers.
// Flow: check cache -> query search API -> filter -> match -> cache -> return,
// falling back to a synthetic result set whenever the live path cannot
// deliver. The returned list always leads with the current page's own entry.
func (s *ComparisonService) Compare(ctx context.Context, product *domain.ProductRecord) (*domain.ComparisonResult, error) {
	if product == nil || product.Title == "" || product.URL == "" {
		return nil, domain.ErrInvalidProduct
	}

	cacheKey := s.generateCacheKey(product)

	// Try cache first
	if entry := s.getFromCache(ctx, cacheKey); entry != nil {
		return &domain.ComparisonResult{
			Results:   entry.Results,
			FromCache: true,
		}, nil
	}

	// No live path without credentials: synthesize, never call the network
	if !s.searchEnabled || s.searchClient == nil {
		return s.fallbackResult(product)
	}

	results, err := s.liveCompare(ctx, product)
	if err != nil {
		if s.enableDebugLogging {
			log.Printf("[COMPARE] live path failed for %q: %v", product.Title, err)
		}
		return s.fallbackResult(product)
	}

	// Cache the live outcome before returning
	s.setInCache(ctx, cacheKey, product, results)

	return &domain.ComparisonResult{Results: results}, nil
}

// liveCompare runs the query/filter/match pipeline under liveCompareTimeout.
// An empty outcome is an error so the caller falls back rather than
// presenting a blank state.
func (s *ComparisonService) liveCompare(ctx context.Context, product *domain.ProductRecord) ([]domain.MatchedResult, error) {
	ctx, cancel := context.WithTimeout(ctx, liveCompareTimeout)
	defer cancel()

	query := BuildSearchQuery(product)

	items, err := s.searchClient.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSearchAPIFailure, err)
	}

	candidates := FilterCandidates(items, product.Retailer)
	if len(candidates) == 0 {
		return nil, domain.ErrNoResults
	}

	matched := make([]domain.MatchedResult, 0, len(candidates))
	for _, item := range candidates {
		score := s.matcher.Similarity(product.Title, item.Title, product.Brand)
		matched = append(matched, domain.MatchedResult{
			Retailer:        IdentifyRetailer(candidateURL(item)),
			Title:           item.Title,
			URL:             candidateURL(item),
			ImageURL:        ExtractItemImage(item),
			Price:           ExtractItemPrice(item),
			Category:        s.matcher.Classify(score),
			SimilarityScore: score,
		})
	}

	return s.orderResults(product, matched), nil
}

// orderResults sorts for presentation: current page first, then "same"
// entries by descending score, then "similar" entries by descending score.
func (s *ComparisonService) orderResults(product *domain.ProductRecord, matched []domain.MatchedResult) []domain.MatchedResult {
	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].Category != matched[j].Category {
			return matched[i].Category == domain.CategorySame
		}
		return matched[i].SimilarityScore > matched[j].SimilarityScore
	})

	ordered := make([]domain.MatchedResult, 0, len(matched)+1)
	ordered = append(ordered, currentPageResult(product))
	ordered = append(ordered, matched...)
	return ordered
}

// currentPageResult is the always-present entry for the page the user is on.
func currentPageResult(product *domain.ProductRecord) domain.MatchedResult {
	return domain.MatchedResult{
		Retailer:        product.Retailer,
		Title:           product.Title,
		URL:             product.URL,
		ImageURL:        product.ImageURL,
		Price:           product.Price,
		Category:        domain.CategorySame,
		SimilarityScore: 1,
		IsCurrentPage:   true,
	}
}

// fallbackResult synthesizes a small well-known-retailer set with no price
// claims. It has no I/O and exists so the user always sees something; if
// even this comes up empty the caller gets the explicit error state.
func (s *ComparisonService) fallbackResult(product *domain.ProductRecord) (*domain.ComparisonResult, error) {
	current := strings.ToLower(strings.TrimSpace(product.Retailer))
	term := url.QueryEscape(product.Title)

	results := []domain.MatchedResult{currentPageResult(product)}
	for _, fr := range fallbackRetailers {
		if strings.ToLower(fr.name) == current {
			continue
		}
		results = append(results, domain.MatchedResult{
			Retailer: fr.name,
			Title:    product.Title,
			URL:      fmt.Sprintf(fr.searchURL, term),
			Category: domain.CategorySimilar,
		})
	}

	if len(results) == 0 {
		return nil, domain.ErrComparisonFailed
	}

	return &domain.ComparisonResult{Results: results, Fallback: true}, nil
}

// generateCacheKey creates a normalized cache key from the product identity.
// Format: "compare:{retailer}:{url}"
func (s *ComparisonService) generateCacheKey(product *domain.ProductRecord) string {
	return fmt.Sprintf("compare:%s:%s",
		normalizeForCacheKey(product.Retailer),
		normalizeForCacheKey(product.URL))
}

// normalizeForCacheKey lowercases and strips everything but alphanumerics so
// cosmetic URL differences share a key.
func normalizeForCacheKey(s string) string {
	return nonAlphanumericRegex.ReplaceAllString(strings.ToLower(s), "")
}

// getFromCache returns a live cache entry or nil. Expiry is checked at read
// time on the entry itself; an expired or undecodable entry is absent.
func (s *ComparisonService) getFromCache(ctx context.Context, key string) *domain.CacheEntry {
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil
	}

	var entry domain.CacheEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil
	}

	if entry.Expired(time.Now()) {
		return nil
	}

	return &entry
}

// setInCache stores the outcome of a successful live comparison. Cache
// trouble is not worth failing a request that already has results.
func (s *ComparisonService) setInCache(ctx context.Context, key string, product *domain.ProductRecord, results []domain.MatchedResult) {
	now := time.Now()
	entry := domain.CacheEntry{
		Results:         results,
		ProductSnapshot: *product,
		CreatedAt:       now,
		ExpiresAt:       now.Add(s.cacheTTL),
	}

	raw, err := json.Marshal(entry)
	if err != nil {
		return
	}

	if err := s.cache.Set(ctx, key, raw, s.cacheTTL); err != nil && s.enableDebugLogging {
		log.Printf("[COMPARE] cache write failed for %q: %v", key, err)
	}
}
