package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auctionscout/internal/normalize"
)

func testSite() *Site {
	return &Site{
		Name: "test",
		URL:  "https://auctions.example/listings",
		Selectors: FieldSelectors{
			Item:        "div.lot",
			Title:       "h3.title",
			Date:        "span.date",
			Location:    "span.location",
			Category:    "span.category",
			Description: "p.desc",
			Link:        "h3.title a",
		},
		Pagination: Pagination{
			NextSelector: "a.next",
		},
	}
}

func newTestScraper() *Scraper {
	return NewScraper(normalize.New(true, true))
}

func TestExtractPage(t *testing.T) {
	html := `
		<div class="lot">
			<h3 class="title"><a href="/lots/101">Georgian Silver   Sale</a></h3>
			<span class="date">12 March 2026</span>
			<span class="location">Dublin</span>
			<span class="category">Antiques</span>
			<p class="desc">Silverware and plate.</p>
		</div>
		<div class="lot">
			<h3 class="title"><a href="https://other.example/lots/5">Farm Machinery</a></h3>
			<span class="date">14 March 2026</span>
		</div>
		<a class="next" href="/listings?page=2">Next</a>
	`

	page, err := newTestScraper().ExtractPage(html, testSite())
	require.NoError(t, err)
	require.Len(t, page.Auctions, 2)

	first := page.Auctions[0]
	assert.Equal(t, "Georgian Silver Sale", first.Title)
	assert.Equal(t, "12 March 2026", first.Date)
	assert.Equal(t, "Dublin", first.Location)
	assert.Equal(t, "Antiques", first.Category)
	assert.Equal(t, "Silverware and plate.", first.Description)
	assert.Equal(t, "https://auctions.example/lots/101", first.Link)

	// Missing sub-selector matches yield empty strings, never errors.
	second := page.Auctions[1]
	assert.Equal(t, "Farm Machinery", second.Title)
	assert.Empty(t, second.Location)
	assert.Empty(t, second.Description)
	assert.Equal(t, "https://other.example/lots/5", second.Link)

	assert.Equal(t, "https://auctions.example/listings?page=2", page.NextURL)
}

func TestExtractPageLinkFallback(t *testing.T) {
	html := `
		<div class="lot">
			<h3 class="title">No Anchor Here</h3>
			<span class="date">1 April 2026</span>
		</div>
	`

	site := testSite()
	page, err := newTestScraper().ExtractPage(html, site)
	require.NoError(t, err)
	require.Len(t, page.Auctions, 1)

	// No link match falls back to exactly the site URL.
	assert.Equal(t, site.URL, page.Auctions[0].Link)
}

func TestExtractPageCategoryInferred(t *testing.T) {
	html := `
		<div class="lot">
			<h3 class="title"><a href="/lots/7">Vintage Tractor Sale</a></h3>
			<span class="location">Kildare</span>
		</div>
	`

	page, err := newTestScraper().ExtractPage(html, testSite())
	require.NoError(t, err)
	require.Len(t, page.Auctions, 1)

	// Category selector matched nothing, so it is inferred from text.
	assert.Equal(t, "Agriculture", page.Auctions[0].Category)
}

func TestExtractPageNoNextLink(t *testing.T) {
	html := `<div class="lot"><h3 class="title"><a href="/l/1">Lot</a></h3></div>`

	page, err := newTestScraper().ExtractPage(html, testSite())
	require.NoError(t, err)
	assert.Empty(t, page.NextURL)
}

func TestExtractPageNoPaginationConfigured(t *testing.T) {
	html := `<a class="next" href="/listings?page=2">Next</a>`

	site := testSite()
	site.Pagination.NextSelector = ""

	page, err := newTestScraper().ExtractPage(html, site)
	require.NoError(t, err)
	assert.Empty(t, page.NextURL)
}

func TestExtractPageEmpty(t *testing.T) {
	page, err := newTestScraper().ExtractPage("<html><body></body></html>", testSite())
	require.NoError(t, err)
	assert.Empty(t, page.Auctions)
	assert.Empty(t, page.NextURL)
}
