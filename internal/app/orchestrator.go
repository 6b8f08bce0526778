package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"auctionscout/internal/dedup"
	"auctionscout/internal/scraper"
	"auctionscout/internal/storage"
)

// Fetcher retrieves raw HTML for one page URL.
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) (string, error)
}

type Orchestrator struct {
	sites   []scraper.Site
	fetcher Fetcher
	scraper *scraper.Scraper
	repo    storage.Repository
	logger  *zap.SugaredLogger
}

func NewOrchestrator(
	sites []scraper.Site,
	f Fetcher,
	s *scraper.Scraper,
	repo storage.Repository,
	logger *zap.SugaredLogger,
) *Orchestrator {
	return &Orchestrator{
		sites:   sites,
		fetcher: f,
		scraper: s,
		repo:    repo,
		logger:  logger,
	}
}

type RunStats struct {
	SitesScraped int
	TotalFound   int
	Added        int
}

// Run performs one full scrape: load existing keys, walk every site,
// drop duplicates against history and against rows accepted earlier in
// this run, then append the remainder in a single batch.
func (o *Orchestrator) Run(ctx context.Context) (*RunStats, error) {
	existing, err := o.repo.LoadExistingKeys(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load existing keys: %w", err)
	}
	o.logger.Infow("loaded existing auctions", "count", len(existing))

	stats := &RunStats{}
	var queue []scraper.Auction

	for i := range o.sites {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		site := &o.sites[i]
		found := o.walkSite(ctx, site)
		stats.SitesScraped++
		stats.TotalFound += len(found)
		o.logger.Infow("site finished", "site", site.Name, "items", len(found))

		for _, a := range found {
			key := dedup.Key(a.Title, a.Link)
			if _, seen := existing[key]; seen {
				continue
			}
			existing[key] = struct{}{}
			queue = append(queue, a)
		}
	}

	if len(queue) == 0 {
		o.logger.Info("no new auctions")
		return stats, nil
	}

	if err := o.repo.Append(ctx, queue); err != nil {
		return stats, fmt.Errorf("failed to append rows: %w", err)
	}
	stats.Added = len(queue)
	o.logger.Infow("run finished", "added", stats.Added, "total_found", stats.TotalFound)
	return stats, nil
}

// walkSite follows pagination for one site. A fetch or extraction
// failure ends the walk early; whatever was collected so far is kept
// and the run moves on to the next site.
func (o *Orchestrator) walkSite(ctx context.Context, site *scraper.Site) []scraper.Auction {
	o.logger.Infow("scraping site", "site", site.Name, "url", site.URL)

	var collected []scraper.Auction
	currentURL := site.URL
	maxPages := site.Pagination.MaxPages

	for page := 1; ; page++ {
		o.logger.Infow("fetching page", "site", site.Name, "page", page, "url", currentURL)

		html, err := o.fetcher.Fetch(ctx, currentURL)
		if err != nil {
			o.logger.Errorw("fetch failed", "site", site.Name, "page", page, "url", currentURL, "error", err)
			return collected
		}

		result, err := o.scraper.ExtractPage(html, site)
		if err != nil {
			o.logger.Errorw("extract failed", "site", site.Name, "page", page, "error", err)
			return collected
		}
		collected = append(collected, result.Auctions...)

		if result.NextURL == "" {
			return collected
		}
		if maxPages > 0 && page >= maxPages {
			o.logger.Infow("page limit reached", "site", site.Name, "limit", maxPages)
			return collected
		}
		currentURL = result.NextURL
	}
}
