package fetcher

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	"auctionscout/internal/config"
)

// Fetcher retrieves raw HTML for listing pages. Requests go through a
// per-host rate limiter; there are no automatic retries.
type Fetcher struct {
	client  *resty.Client
	limiter *RateLimiter
	browser *Browser
}

func NewFetcher(cfg *config.Config) *Fetcher {
	client := resty.New().
		SetTimeout(cfg.GetTotalTimeout()).
		SetHeader("User-Agent", cfg.HTTP.UserAgent).
		SetHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	return &Fetcher{
		client:  client,
		limiter: NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst),
	}
}

// UseBrowser switches the fetcher to browser-rendered fetching for
// JS-heavy sites.
func (f *Fetcher) UseBrowser(b *Browser) {
	f.browser = b
}

func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	if err := f.limiter.WaitURL(ctx, pageURL); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	if f.browser != nil {
		return f.browser.Fetch(ctx, pageURL)
	}

	resp, err := f.client.R().SetContext(ctx).Get(pageURL)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("fetch %s: unexpected status %d", pageURL, resp.StatusCode())
	}
	return resp.String(), nil
}
