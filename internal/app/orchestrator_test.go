package app

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"auctionscout/internal/normalize"
	"auctionscout/internal/scraper"
)

type fakeFetcher struct {
	pages   map[string]string
	failing map[string]error
	fetched []string
}

func (f *fakeFetcher) Fetch(_ context.Context, pageURL string) (string, error) {
	f.fetched = append(f.fetched, pageURL)
	if err, ok := f.failing[pageURL]; ok {
		return "", err
	}
	html, ok := f.pages[pageURL]
	if !ok {
		return "", fmt.Errorf("no such page: %s", pageURL)
	}
	return html, nil
}

type fakeRepo struct {
	existing    map[string]struct{}
	appended    []scraper.Auction
	appendCalls int
	loadErr     error
	appendErr   error
}

func (r *fakeRepo) LoadExistingKeys(context.Context) (map[string]struct{}, error) {
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	if r.existing == nil {
		return map[string]struct{}{}, nil
	}
	return r.existing, nil
}

func (r *fakeRepo) Append(_ context.Context, rows []scraper.Auction) error {
	r.appendCalls++
	if r.appendErr != nil {
		return r.appendErr
	}
	r.appended = append(r.appended, rows...)
	return nil
}

func (r *fakeRepo) Close() error { return nil }

func testSite(name, startURL string, maxPages int) scraper.Site {
	return scraper.Site{
		Name: name,
		URL:  startURL,
		Selectors: scraper.FieldSelectors{
			Item:        "div.lot",
			Title:       "h3",
			Date:        ".date",
			Location:    ".loc",
			Category:    ".cat",
			Description: ".desc",
			Link:        "h3 a",
		},
		Pagination: scraper.Pagination{
			NextSelector: "a.next",
			MaxPages:     maxPages,
		},
	}
}

func lotHTML(title, href string) string {
	return fmt.Sprintf(`<div class="lot"><h3><a href=%q>%s</a></h3><span class="date">1 May 2026</span></div>`, href, title)
}

func nextHTML(href string) string {
	return fmt.Sprintf(`<a class="next" href=%q>Next</a>`, href)
}

func newOrchestrator(sites []scraper.Site, f *fakeFetcher, repo *fakeRepo) *Orchestrator {
	s := scraper.NewScraper(normalize.New(true, true))
	return NewOrchestrator(sites, f, s, repo, zap.NewNop().Sugar())
}

func TestRunDeduplicates(t *testing.T) {
	// Two sites carrying an overlapping lot, plus one lot already in
	// the store under the same title and link.
	f := &fakeFetcher{pages: map[string]string{
		"https://a.example/": lotHTML("Known Sale", "https://a.example/1") + lotHTML("Shared Sale", "https://shared.example/9"),
		"https://b.example/": lotHTML("Shared Sale", "https://shared.example/9") + lotHTML("Fresh Sale", "https://b.example/2"),
	}}
	repo := &fakeRepo{existing: map[string]struct{}{
		"Known Sale|https://a.example/1": {},
	}}

	sites := []scraper.Site{
		testSite("a", "https://a.example/", 0),
		testSite("b", "https://b.example/", 0),
	}

	stats, err := newOrchestrator(sites, f, repo).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, stats.TotalFound)
	assert.Equal(t, 2, stats.Added)
	require.Len(t, repo.appended, 2)
	assert.Equal(t, "Shared Sale", repo.appended[0].Title)
	assert.Equal(t, "Fresh Sale", repo.appended[1].Title)
	assert.Equal(t, 1, repo.appendCalls)
}

func TestRunPageLimit(t *testing.T) {
	// Three pages chained by next links, limit of two.
	f := &fakeFetcher{pages: map[string]string{
		"https://a.example/":   lotHTML("One", "/1") + nextHTML("/p2"),
		"https://a.example/p2": lotHTML("Two", "/2") + nextHTML("/p3"),
		"https://a.example/p3": lotHTML("Three", "/3"),
	}}
	repo := &fakeRepo{}

	sites := []scraper.Site{testSite("a", "https://a.example/", 2)}
	stats, err := newOrchestrator(sites, f, repo).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"https://a.example/", "https://a.example/p2"}, f.fetched)
	assert.Equal(t, 2, stats.Added)
}

func TestRunUnboundedFollowsAllPages(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{
		"https://a.example/":   lotHTML("One", "/1") + nextHTML("/p2"),
		"https://a.example/p2": lotHTML("Two", "/2") + nextHTML("/p3"),
		"https://a.example/p3": lotHTML("Three", "/3"),
	}}
	repo := &fakeRepo{}

	sites := []scraper.Site{testSite("a", "https://a.example/", 0)}
	stats, err := newOrchestrator(sites, f, repo).Run(context.Background())
	require.NoError(t, err)

	assert.Len(t, f.fetched, 3)
	assert.Equal(t, 3, stats.Added)
}

func TestRunPageFailureKeepsPartialResults(t *testing.T) {
	// Page 2 of site a fails; page 1 records survive and site b still
	// gets scraped.
	f := &fakeFetcher{
		pages: map[string]string{
			"https://a.example/": lotHTML("A One", "/1") + nextHTML("/p2"),
			"https://b.example/": lotHTML("B One", "/1"),
		},
		failing: map[string]error{
			"https://a.example/p2": errors.New("connection refused"),
		},
	}
	repo := &fakeRepo{}

	sites := []scraper.Site{
		testSite("a", "https://a.example/", 3),
		testSite("b", "https://b.example/", 0),
	}
	stats, err := newOrchestrator(sites, f, repo).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, stats.SitesScraped)
	require.Len(t, repo.appended, 2)
	assert.Equal(t, "A One", repo.appended[0].Title)
	assert.Equal(t, "B One", repo.appended[1].Title)
}

func TestRunNothingNewSkipsAppend(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{
		"https://a.example/": lotHTML("Known Sale", "https://a.example/1"),
	}}
	repo := &fakeRepo{existing: map[string]struct{}{
		"Known Sale|https://a.example/1": {},
	}}

	sites := []scraper.Site{testSite("a", "https://a.example/", 0)}
	stats, err := newOrchestrator(sites, f, repo).Run(context.Background())
	require.NoError(t, err)

	assert.Zero(t, stats.Added)
	assert.Zero(t, repo.appendCalls)
}

func TestRunLoadKeysFailure(t *testing.T) {
	repo := &fakeRepo{loadErr: errors.New("store unreachable")}
	f := &fakeFetcher{}

	sites := []scraper.Site{testSite("a", "https://a.example/", 0)}
	_, err := newOrchestrator(sites, f, repo).Run(context.Background())
	require.Error(t, err)

	// Nothing was fetched: the store is a startup precondition.
	assert.Empty(t, f.fetched)
}

func TestRunAppendFailurePropagates(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{
		"https://a.example/": lotHTML("One", "/1"),
	}}
	repo := &fakeRepo{appendErr: errors.New("quota exceeded")}

	sites := []scraper.Site{testSite("a", "https://a.example/", 0)}
	_, err := newOrchestrator(sites, f, repo).Run(context.Background())
	assert.Error(t, err)
}
