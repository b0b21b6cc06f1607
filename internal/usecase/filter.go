package usecase

import (
	"regexp"
	"strings"

	"github.com/shopscout/backend/internal/domain"
)

// Rejection stages, in evaluation order. A candidate is rejected by exactly
// one stage so a discarded item can always be explained.
const (
	StageCommerce = "commerce-domain"
	StageLocale   = "locale"
	StageMedia    = "non-retailer"
	StagePageType = "page-type"
	StageRetailer = "retailer-identity"
)

// nonCommerceTLDs are institutional TLDs that never host product pages.
var nonCommerceTLDs = []string{".org", ".edu", ".gov"}

// nonUSLocales marks hosts serving non-US storefronts. Matching a non-USD
// locale early keeps foreign listings (and prices) out of the result set.
var nonUSLocales = []string{
	".co.uk", ".com.au", ".co.nz", ".co.jp", ".co.kr", ".co.in",
	".com.mx", ".com.br", ".com.sg", ".com.hk", ".com.tr", ".com.ph",
	".ca/", ".de/", ".fr/", ".es/", ".it/", ".nl/", ".se/", ".ch/",
	".pl/", ".ie/", ".at/", ".be/", ".in/", ".cn/", ".ru/",
}

// nonUSHostSuffixes are the same locales checked as host suffixes, for items
// whose link has no trailing path.
var nonUSHostSuffixes = []string{
	".co.uk", ".com.au", ".co.nz", ".co.jp", ".co.kr", ".co.in",
	".com.mx", ".com.br", ".com.sg", ".com.hk", ".com.tr", ".com.ph",
	".ca", ".de", ".fr", ".es", ".it", ".nl", ".se", ".ch",
	".pl", ".ie", ".at", ".be", ".in", ".cn", ".ru",
}

// mediaDomains are social/media/news/forum sites the search feed loves to
// return but which never sell the product.
var mediaDomains = []string{
	"facebook.com", "instagram.com", "twitter.com", "x.com",
	"pinterest.com", "reddit.com", "tiktok.com", "linkedin.com",
	"youtube.com", "vimeo.com", "twitch.tv",
	"wikipedia.org", "wikihow.com", "quora.com", "fandom.com",
	"nytimes.com", "cnn.com", "foxnews.com", "bbc.com", "forbes.com",
	"usatoday.com", "businessinsider.com", "theverge.com", "cnet.com",
	"medium.com", "blogspot.com", "wordpress.com", "tumblr.com",
	"yelp.com", "apps.apple.com", "play.google.com",
}

// nonProductPathSegments mark listing/editorial/service pages.
var nonProductPathSegments = []string{
	"/search", "/s?", "/category", "/categories", "/browse",
	"/review", "/reviews", "/blog", "/news", "/article",
	"/cart", "/checkout", "/wishlist", "/account", "/login",
	"/help", "/support", "/about", "/careers", "/forum",
	"/coupons", "/deals/", "/stores/", "/locations",
}

// productPathPatterns match the product-page URL shapes of the major US
// retailers (Amazon /dp/, Target /p/.../A-123, Walmart /ip/, eBay /itm/,
// Best Buy .p?skuId, plus generic /product/ and long numeric ids).
// Patterns run against the lower-cased URL.
var productPathPatterns = []*regexp.Regexp{
	regexp.MustCompile(`/dp/[a-z0-9]{10}`),
	regexp.MustCompile(`/gp/product/[a-z0-9]{10}`),
	regexp.MustCompile(`/ip/`),
	regexp.MustCompile(`/itm/`),
	regexp.MustCompile(`/p/`),
	regexp.MustCompile(`/pd/`),
	regexp.MustCompile(`/a-\d{8}`),
	regexp.MustCompile(`\.p\?skuid=\d+`),
	regexp.MustCompile(`/products?/`),
	regexp.MustCompile(`/\d{6,}`),
	regexp.MustCompile(`/[a-z0-9-]+-\d{5,}(?:\.html?)?$`),
}

// knownRetailerHosts is the curated trust list for the lenient page-type
// bypass: these retailers vary their URL schemes enough that a strict path
// match loses real product pages, so anything on these hosts is let through.
// The cost is the occasional non-product page from a trusted domain.
var knownRetailerHosts = []string{
	"amazon.com", "walmart.com", "target.com", "bestbuy.com",
	"ebay.com", "costco.com", "homedepot.com", "lowes.com",
	"kohls.com", "macys.com", "wayfair.com", "newegg.com",
	"bhphotovideo.com", "samsclub.com", "staples.com",
	"officedepot.com", "nordstrom.com", "chewy.com", "gamestop.com",
	"overstock.com", "rei.com", "sephora.com", "ulta.com",
	"petco.com", "petsmart.com", "dickssportinggoods.com",
}

// FilterCandidates cleans a raw search batch down to one candidate per
// distinct retailer, dropping the current retailer entirely. Input is never
// mutated.
func FilterCandidates(items []domain.SearchResultItem, currentRetailer string) []domain.SearchResultItem {
	seen := make(map[string]bool)
	current := strings.ToLower(strings.TrimSpace(currentRetailer))

	var kept []domain.SearchResultItem
	for _, item := range items {
		if _, rejected := rejectionStage(item, current, seen); rejected {
			continue
		}
		seen[strings.ToLower(IdentifyRetailer(candidateURL(item)))] = true
		kept = append(kept, item)
	}

	return kept
}

// rejectionStage runs the stages in order and names the first one that
// rejects the item. seen holds lower-cased retailer names already admitted
// from the same batch.
func rejectionStage(item domain.SearchResultItem, currentRetailer string, seen map[string]bool) (string, bool) {
	rawURL := candidateURL(item)
	if rawURL == "" {
		return StagePageType, true
	}

	urlLower := strings.ToLower(rawURL)
	host := strings.ToLower(hostnameOf(rawURL))

	if isNonCommerceHost(host, urlLower) {
		return StageCommerce, true
	}
	if isNonUSLocale(host, urlLower) {
		return StageLocale, true
	}
	if isMediaHost(host) {
		return StageMedia, true
	}
	if !isProductPage(host, urlLower) {
		return StagePageType, true
	}

	retailer := strings.ToLower(IdentifyRetailer(rawURL))
	if retailer == currentRetailer || seen[retailer] {
		return StageRetailer, true
	}

	return "", false
}

// candidateURL picks the usable URL off a raw item.
func candidateURL(item domain.SearchResultItem) string {
	if item.Link != "" {
		return item.Link
	}
	if item.DisplayLink != "" {
		return item.DisplayLink
	}
	return ""
}

// isNonCommerceHost rejects institutional TLDs. URLs containing "search"
// are excused: some legitimate shopping aggregators live under .org-style
// search subpaths. Known to be imprecise.
func isNonCommerceHost(host, urlLower string) bool {
	if strings.Contains(urlLower, "search") {
		return false
	}
	for _, tld := range nonCommerceTLDs {
		if strings.HasSuffix(host, tld) {
			return true
		}
	}
	return false
}

// isNonUSLocale rejects non-US country storefronts by host suffix or URL
// substring.
func isNonUSLocale(host, urlLower string) bool {
	for _, suffix := range nonUSHostSuffixes {
		if strings.HasSuffix(host, suffix) {
			return true
		}
	}
	for _, marker := range nonUSLocales {
		if strings.Contains(urlLower, marker) {
			return true
		}
	}
	return false
}

// isMediaHost rejects social/media/news/forum domains and app stores.
func isMediaHost(host string) bool {
	for _, d := range mediaDomains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

// isProductPage accepts URLs whose path looks like a product page, or any
// URL on a trusted retailer host (the lenient bypass).
func isProductPage(host, urlLower string) bool {
	for _, segment := range nonProductPathSegments {
		if strings.Contains(urlLower, segment) {
			return false
		}
	}

	for _, pattern := range productPathPatterns {
		if pattern.MatchString(urlLower) {
			return true
		}
	}

	for _, trusted := range knownRetailerHosts {
		if host == trusted || strings.HasSuffix(host, "."+trusted) {
			return true
		}
	}

	return false
}
