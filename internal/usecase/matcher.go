package usecase

import (
	"log"
	"regexp"
	"strings"

	"github.com/shopscout/backend/internal/domain"
)

// Default similarity tuning. The threshold and weights were tuned
// empirically against hand-labeled result sets; keep them configurable.
const (
	defaultSameThreshold = 0.65
	defaultBrandWeight   = 0.3
	defaultTokenWeight   = 0.4
	defaultEditWeight    = 0.3

	exactScore       = 1.0
	containmentScore = 0.95
	modelCodeScore   = 0.95

	brandBothScore   = 0.8 // brand signal when both titles carry the brand
	brandAbsentScore = 0.3 // brand signal otherwise

	sharedBrandBoost     = 0.1 // both brand and strong token overlap
	brandMismatchPenalty = 0.1 // lookalike title, different brand
)

// Package-level compiled regex patterns for performance
var (
	punctuationRegex = regexp.MustCompile(`[^\w\s]`)
	whitespaceRegex  = regexp.MustCompile(`\s+`)

	// Model/SKU code shapes: hyphenated codes (WH-1000XM5), letter+digit
	// runs (520BT, FLIP6), word-then-number pairs (Flip 6), and 12-14 digit
	// UPC runs. A shared code is near-conclusive evidence of identity.
	modelCodeRegexes = []*regexp.Regexp{
		regexp.MustCompile(`\b[a-z]{1,6}-[a-z0-9]{2,10}\b`),
		regexp.MustCompile(`\b[a-z]+\d+[a-z0-9]*\b`),
		regexp.MustCompile(`\b\d+[a-z]+\d*\b`),
		regexp.MustCompile(`\b[a-z]{2,10} \d{1,6}\b`),
		regexp.MustCompile(`\b\d{12,14}\b`),
	}

	// Generic words that precede numbers without naming a model ("size 12",
	// "pack of 6"); pairs led by these are not codes.
	codeNoiseWords = map[string]bool{
		"size": true, "pack": true, "count": true, "set": true,
		"model": true, "item": true, "no": true, "of": true,
		"only": true, "over": true, "under": true, "save": true,
		"with": true, "and": true, "the": true, "for": true,
		"in": true, "by": true, "at": true, "top": true,
	}
)

// titleStopWords are articles, conjunctions and generic packaging words that
// carry no product identity.
var titleStopWords = map[string]bool{
	// Articles, conjunctions, prepositions
	"a": true, "an": true, "the": true, "and": true, "or": true,
	"of": true, "in": true, "on": true, "at": true, "to": true,
	"for": true, "with": true, "by": true, "from": true,
	// Packaging and merchandising noise
	"pack": true, "pk": true, "count": true, "ct": true, "bundle": true,
	"set": true, "kit": true, "box": true, "case": true, "edition": true,
	"new": true, "genuine": true, "official": true, "original": true,
	// Size descriptors
	"oz": true, "lb": true, "lbs": true, "ml": true, "inch": true,
	"small": true, "medium": true, "large": true, "xl": true,
}

// MatcherConfig holds the tuning knobs for title similarity.
type MatcherConfig struct {
	SameThreshold      float64
	BrandWeight        float64
	TokenWeight        float64
	EditWeight         float64
	EnableDebugLogging bool
}

// Matcher decides whether two product titles name the same product. It is a
// pure function of its inputs: no randomness, no I/O.
type Matcher struct {
	sameThreshold      float64
	brandWeight        float64
	tokenWeight        float64
	editWeight         float64
	enableDebugLogging bool
}

// NewMatcher creates a matcher, substituting the empirical defaults for any
// zero or negative knob.
func NewMatcher(config MatcherConfig) *Matcher {
	threshold := config.SameThreshold
	if threshold <= 0 {
		threshold = defaultSameThreshold
	}

	brandW := config.BrandWeight
	if brandW <= 0 {
		brandW = defaultBrandWeight
	}
	tokenW := config.TokenWeight
	if tokenW <= 0 {
		tokenW = defaultTokenWeight
	}
	editW := config.EditWeight
	if editW <= 0 {
		editW = defaultEditWeight
	}

	return &Matcher{
		sameThreshold:      threshold,
		brandWeight:        brandW,
		tokenWeight:        tokenW,
		editWeight:         editW,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// Similarity scores how likely titleA and titleB name the same product, in
// [0,1]. brandHint, when non-empty, overrides the leading-words brand
// heuristic. With an empty hint the function is symmetric in its title
// arguments.
func (m *Matcher) Similarity(titleA, titleB, brandHint string) float64 {
	normA := normalizeTitle(titleA)
	normB := normalizeTitle(titleB)

	if normA == "" || normB == "" {
		return 0
	}

	// Confident signals short-circuit, strongest first.
	if normA == normB {
		return exactScore
	}

	if strings.Contains(normA, normB) || strings.Contains(normB, normA) {
		// Truncated vs. full title for the same listing
		return containmentScore
	}

	if sharesModelCode(normA, normB) {
		return modelCodeScore
	}

	score := m.hybridScore(normA, normB, brandHint)
	if m.enableDebugLogging {
		log.Printf("[MATCH] %q vs %q -> %.3f", titleA, titleB, score)
	}
	return score
}

// Classify labels a similarity score.
func (m *Matcher) Classify(score float64) string {
	if score > m.sameThreshold {
		return domain.CategorySame
	}
	return domain.CategorySimilar
}

// hybridScore is the weighted blend of brand containment, token-set Jaccard
// and edit-distance ratio, with a boost for brand+overlap agreement and a
// penalty for lookalike titles under different brands.
func (m *Matcher) hybridScore(normA, normB, brandHint string) float64 {
	brandShared := sharesBrand(normA, normB, brandHint)

	brandScore := brandAbsentScore
	if brandShared {
		brandScore = brandBothScore
	}

	tokensA := titleTokens(normA)
	tokensB := titleTokens(normB)
	jaccard := jaccardIndex(tokensA, tokensB)

	editRatio := 1.0
	if maxLen := max(len(normA), len(normB)); maxLen > 0 {
		editRatio = 1.0 - float64(levenshteinDistance(normA, normB))/float64(maxLen)
	}

	score := m.brandWeight*brandScore + m.tokenWeight*jaccard + m.editWeight*editRatio

	if brandShared && jaccard > 0.5 {
		score += sharedBrandBoost
		if score > containmentScore {
			score = containmentScore
		}
	}

	if !brandShared && jaccard > 0.6 {
		// Textually similar but differently branded: likely a competing
		// product in the same category, not the same product.
		score -= brandMismatchPenalty
		if score < 0 {
			score = 0
		}
	}

	return score
}

// normalizeTitle lowercases, strips punctuation to whitespace and collapses
// runs of whitespace.
func normalizeTitle(title string) string {
	normalized := strings.ToLower(title)
	normalized = punctuationRegex.ReplaceAllString(normalized, " ")
	normalized = whitespaceRegex.ReplaceAllString(normalized, " ")
	return strings.TrimSpace(normalized)
}

// sharesBrand reports whether both normalized titles carry the same brand.
// With a hint, the hint decides. Without one, the leading two tokens of
// either title serve as the candidate brand, which keeps the check
// symmetric.
func sharesBrand(normA, normB, brandHint string) bool {
	if hint := normalizeTitle(brandHint); hint != "" {
		return strings.Contains(normA, hint) && strings.Contains(normB, hint)
	}

	for _, candidate := range []string{leadingWords(normA, 2), leadingWords(normB, 2)} {
		if candidate == "" {
			continue
		}
		if strings.Contains(normA, candidate) && strings.Contains(normB, candidate) {
			return true
		}
	}
	return false
}

// leadingWords returns the first n whitespace-separated words of s.
func leadingWords(s string, n int) string {
	fields := strings.Fields(s)
	if len(fields) > n {
		fields = fields[:n]
	}
	return strings.Join(fields, " ")
}

// sharesModelCode reports whether both titles yield model/SKU codes and any
// pair of codes matches after normalization.
func sharesModelCode(normA, normB string) bool {
	codesA := extractModelCodes(normA)
	codesB := extractModelCodes(normB)
	if len(codesA) == 0 || len(codesB) == 0 {
		return false
	}

	for _, a := range codesA {
		for _, b := range codesB {
			if a == b || strings.Contains(a, b) || strings.Contains(b, a) {
				return true
			}
		}
	}
	return false
}

// extractModelCodes scans a normalized title for alphanumeric code shapes
// and returns them with separators stripped. Codes that are bare words or
// bare short numbers are discarded as noise.
func extractModelCodes(norm string) []string {
	seen := make(map[string]bool)
	var codes []string

	for _, re := range modelCodeRegexes {
		for _, match := range re.FindAllString(norm, -1) {
			if lead, _, found := strings.Cut(match, " "); found && codeNoiseWords[lead] {
				continue
			}
			code := normalizeModelCode(match)
			if code == "" || seen[code] {
				continue
			}
			seen[code] = true
			codes = append(codes, code)
		}
	}

	return codes
}

// normalizeModelCode uppercases and strips separators, then rejects
// non-codes: pure-alpha strings and numbers too short to be identifiers.
func normalizeModelCode(raw string) string {
	code := strings.ToUpper(raw)
	code = strings.Map(func(r rune) rune {
		if r == '-' || r == ' ' {
			return -1
		}
		return r
	}, code)

	hasDigit := strings.ContainsAny(code, "0123456789")
	hasAlpha := strings.IndexFunc(code, func(r rune) bool { return r >= 'A' && r <= 'Z' }) >= 0

	if !hasDigit {
		return ""
	}
	if !hasAlpha && len(code) < 12 {
		// Bare numbers only count as UPC runs
		return ""
	}
	return code
}

// titleTokens splits a normalized title into its stop-word-filtered token
// set.
func titleTokens(norm string) map[string]bool {
	tokens := make(map[string]bool)
	for _, word := range strings.Fields(norm) {
		if titleStopWords[word] {
			continue
		}
		tokens[word] = true
	}
	return tokens
}

// jaccardIndex is |A∩B| / |A∪B| over token sets.
func jaccardIndex(a, b map[string]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}

	intersection := 0
	for token := range a {
		if b[token] {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}

	return float64(intersection) / float64(union)
}

// levenshteinDistance calculates the edit distance between two strings
func levenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	r1 := []rune(s1)
	r2 := []rune(s2)
	m := len(r1)
	n := len(r2)

	// Use two rows instead of the full matrix for space efficiency
	prev := make([]int, n+1)
	curr := make([]int, n+1)

	for j := 0; j <= n; j++ {
		prev[j] = j
	}

	for i := 1; i <= m; i++ {
		curr[0] = i
		for j := 1; j <= n; j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[n]
}
