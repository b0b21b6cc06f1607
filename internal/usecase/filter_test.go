package usecase

import (
	"strings"
	"testing"

	"github.com/shopscout/backend/internal/domain"
)

func item(link string) domain.SearchResultItem {
	return domain.SearchResultItem{Title: "Some Product", Link: link}
}

func TestRejectionStage(t *testing.T) {
	testCases := []struct {
		name      string
		link      string
		wantStage string
	}{
		{"org host rejected", "https://www.example.org/product/123456", StageCommerce},
		{"edu host rejected", "https://store.university.edu/item/9", StageCommerce},
		{"gov host rejected", "https://shop.agency.gov/product/1", StageCommerce},
		{"uk storefront rejected", "https://www.amazon.co.uk/dp/b00x4whp5e", StageLocale},
		{"australian storefront rejected", "https://www.ebay.com.au/itm/12345", StageLocale},
		{"german storefront rejected", "https://www.otto.de/p/12345", StageLocale},
		{"video platform rejected", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", StageMedia},
		{"encyclopedia rejected by org tld", "https://en.wikipedia.org/wiki/Headphones", StageCommerce},
		{"social network rejected", "https://www.facebook.com/marketplace/item/123456789", StageMedia},
		{"app store rejected", "https://apps.apple.com/us/app/shopping/id123456", StageMedia},
		{"category page rejected", "https://shop-a-lot.com/category/audio", StagePageType},
		{"review page rejected", "https://gadgetsite.com/review/sony-wh-1000xm5-123456", StagePageType},
		{"cart url rejected", "https://unknownshop.com/cart", StagePageType},
		{"missing url rejected", "", StagePageType},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			stage, rejected := rejectionStage(item(tc.link), "amazon", map[string]bool{})
			if !rejected {
				t.Fatalf("item %q was accepted, want rejection at %s", tc.link, tc.wantStage)
			}
			if stage != tc.wantStage {
				t.Errorf("rejection stage = %s, want %s", stage, tc.wantStage)
			}
		})
	}
}

func TestRejectionStageAccepts(t *testing.T) {
	accepted := []string{
		"https://www.walmart.com/ip/anker-powercore/293016255",
		"https://www.target.com/p/anker-powercore-10000/-/A-12345678",
		"https://www.bestbuy.com/site/anker-powercore.p?skuId=6505727",
		// Lenient bypass: trusted retailer host with an odd path shape
		"https://www.costco.com/anker-charger.html",
		// Unknown host but recognizable product path
		"https://www.randomshop.com/product/anker-powercore-10000",
	}

	for _, link := range accepted {
		t.Run(link, func(t *testing.T) {
			stage, rejected := rejectionStage(item(link), "amazon", map[string]bool{})
			if rejected {
				t.Errorf("item %q rejected at stage %s, want accepted", link, stage)
			}
		})
	}
}

func TestFilterCandidatesDedup(t *testing.T) {
	items := []domain.SearchResultItem{
		item("https://www.walmart.com/ip/anker-powercore/293016255"),
		item("https://www.walmart.com/ip/anker-powercore-duplicate/11111111"),
		item("https://www.target.com/p/anker-powercore/-/A-12345678"),
		item("https://www.amazon.com/dp/b00x4whp5e"),
		item("https://www.youtube.com/watch?v=abc"),
	}

	got := FilterCandidates(items, "Amazon")

	if len(got) != 2 {
		t.Fatalf("len = %d, want 2 (walmart once, target once), got %+v", len(got), got)
	}

	seen := map[string]bool{}
	for _, it := range got {
		name := strings.ToLower(IdentifyRetailer(it.Link))
		if name == "amazon" {
			t.Errorf("current retailer leaked through: %q", it.Link)
		}
		if seen[name] {
			t.Errorf("duplicate retailer %q in output", name)
		}
		seen[name] = true
	}

	// First-seen wins for the duplicated retailer
	if got[0].Link != items[0].Link {
		t.Errorf("first walmart item should win, got %q", got[0].Link)
	}
}

func TestFilterCandidatesCurrentRetailerCaseInsensitive(t *testing.T) {
	items := []domain.SearchResultItem{
		item("https://www.target.com/p/thing/-/A-12345678"),
	}

	if got := FilterCandidates(items, "TARGET"); len(got) != 0 {
		t.Errorf("current retailer with different case leaked through: %+v", got)
	}
}

func TestFilterCandidatesDoesNotMutateInput(t *testing.T) {
	items := []domain.SearchResultItem{
		item("https://www.youtube.com/watch?v=abc"),
		item("https://www.walmart.com/ip/thing/293016255"),
	}

	FilterCandidates(items, "Amazon")

	if items[0].Link != "https://www.youtube.com/watch?v=abc" || len(items) != 2 {
		t.Error("input slice was mutated")
	}
}

func TestOrgSearchException(t *testing.T) {
	// The .org rejection is excused when the URL mentions "search"; this is
	// a documented imprecision, not a guarantee of acceptance (the page-type
	// stage usually rejects such URLs anyway).
	stage, rejected := rejectionStage(item("https://shopping-aggregator.org/search?q=anker"), "amazon", map[string]bool{})
	if rejected && stage == StageCommerce {
		t.Errorf("search-bearing .org URL should not be rejected by the commerce stage, got %s", stage)
	}
}
