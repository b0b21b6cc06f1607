package usecase

import (
	"net/url"
	"strings"
	"unicode"
)

// OtherRetailer is the sentinel name for hosts we cannot identify.
const OtherRetailer = "Other Retailer"

// retailerFragment maps a hostname substring to a canonical display name.
// The table is ordered: first match wins. Module-level and never mutated.
type retailerFragment struct {
	fragment string
	name     string
}

var retailerFragments = []retailerFragment{
	{"amazon", "Amazon"},
	{"walmart", "Walmart"},
	{"bestbuy", "Best Buy"},
	{"best-buy", "Best Buy"},
	{"target", "Target"},
	{"ebay", "eBay"},
	{"costco", "Costco"},
	{"homedepot", "The Home Depot"},
	{"home-depot", "The Home Depot"},
	{"lowes", "Lowe's"},
	{"kohls", "Kohl's"},
	{"macys", "Macy's"},
	{"wayfair", "Wayfair"},
	{"newegg", "Newegg"},
	{"bhphotovideo", "B&H Photo"},
	{"bhphoto", "B&H Photo"},
	{"samsclub", "Sam's Club"},
	{"staples", "Staples"},
	{"officedepot", "Office Depot"},
	{"nordstrom", "Nordstrom"},
	{"chewy", "Chewy"},
	{"gamestop", "GameStop"},
	{"overstock", "Overstock"},
	{"etsy", "Etsy"},
	{"dickssportinggoods", "Dick's Sporting Goods"},
	{"rei.com", "REI"},
	{"sephora", "Sephora"},
	{"ulta", "Ulta Beauty"},
	{"petco", "Petco"},
	{"petsmart", "PetSmart"},
}

// specialDomainNames renames second-level labels that title-casing would get
// wrong (possessives, camel-case brands).
var specialDomainNames = map[string]string{
	"kohls":   "Kohl's",
	"lowes":   "Lowe's",
	"macys":   "Macy's",
	"sams":    "Sam's",
	"dicks":   "Dick's",
	"toysrus": "Toys\"R\"Us",
}

// IdentifyRetailer maps a URL or bare hostname to a canonical retailer
// display name. Unknown hosts get a name derived from the second-level
// domain label; malformed input gets the OtherRetailer sentinel. The same
// input always yields the same name.
func IdentifyRetailer(rawURL string) string {
	host := hostnameOf(rawURL)
	if host == "" {
		return OtherRetailer
	}

	hostLower := strings.ToLower(host)
	for _, rf := range retailerFragments {
		if strings.Contains(hostLower, rf.fragment) {
			return rf.name
		}
	}

	return nameFromDomain(host)
}

// hostnameOf extracts the hostname from a full URL or bare host, case
// preserved (the camel-case fallback needs it).
func hostnameOf(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	if strings.Contains(raw, "://") {
		u, err := url.Parse(raw)
		if err != nil || u.Hostname() == "" {
			return ""
		}
		return u.Hostname()
	}

	// Bare hostname, possibly with a path glued on
	if idx := strings.IndexAny(raw, "/?#"); idx >= 0 {
		raw = raw[:idx]
	}
	if raw == "" || strings.ContainsAny(raw, " \t") {
		return ""
	}
	return raw
}

// nameFromDomain derives a display name from the label before the TLD.
func nameFromDomain(host string) string {
	labels := strings.Split(host, ".")
	if len(labels) < 2 {
		return OtherRetailer
	}

	// Label before the TLD; skip a trailing ccSLD pair like co.uk
	label := labels[len(labels)-2]
	if lower := strings.ToLower(label); (lower == "co" || lower == "com") && len(labels) >= 3 {
		label = labels[len(labels)-3]
	}
	if strings.EqualFold(label, "www") || label == "" {
		return OtherRetailer
	}

	if special, ok := specialDomainNames[strings.ToLower(label)]; ok {
		return special
	}

	return titleCaseLabel(label)
}

// titleCaseLabel turns "harbor-freight" or "homeGoods" into a display name.
func titleCaseLabel(label string) string {
	var words []string
	for _, part := range strings.Split(label, "-") {
		words = append(words, splitCamel(part)...)
	}

	for i, w := range words {
		if w == "" {
			continue
		}
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}

	name := strings.TrimSpace(strings.Join(words, " "))
	if name == "" {
		return OtherRetailer
	}
	return name
}

// splitCamel splits camelCase runs into separate lowercase words.
func splitCamel(s string) []string {
	var words []string
	start := 0
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			words = append(words, strings.ToLower(s[start:i]))
			start = i
		}
	}
	words = append(words, strings.ToLower(s[start:]))
	return words
}
