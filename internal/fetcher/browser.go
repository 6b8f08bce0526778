package fetcher

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"auctionscout/internal/config"
)

// Browser fetches pages through a headless Chrome instance for sites
// that render their listings with JavaScript.
type Browser struct {
	browser     *rod.Browser
	pageTimeout time.Duration
}

func NewBrowser(cfg *config.Config) (*Browser, error) {
	l := launcher.New().Headless(true)
	if cfg.Rod.ChromePath != "" {
		l = l.Bin(cfg.Rod.ChromePath)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	return &Browser{
		browser:     browser,
		pageTimeout: cfg.GetRodPageTimeout(),
	}, nil
}

func (b *Browser) Fetch(ctx context.Context, pageURL string) (string, error) {
	page, err := b.browser.Context(ctx).Page(proto.TargetCreateTarget{URL: pageURL})
	if err != nil {
		return "", fmt.Errorf("open page %s: %w", pageURL, err)
	}
	defer func() { _ = page.Close() }()

	if err := page.Timeout(b.pageTimeout).WaitLoad(); err != nil {
		return "", fmt.Errorf("wait load %s: %w", pageURL, err)
	}

	return page.HTML()
}

func (b *Browser) Close() error {
	return b.browser.Close()
}
