package scraper

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"auctionscout/internal/normalize"
)

type Scraper struct {
	norm *normalize.Normalizer
}

func NewScraper(norm *normalize.Normalizer) *Scraper {
	return &Scraper{
		norm: norm,
	}
}

// Page is the result of extracting one listing page. NextURL is empty
// when the page has no usable next-page link.
type Page struct {
	Auctions []Auction
	NextURL  string
}

// ExtractPage pulls auction rows out of a listing page. Fields whose
// selector matches nothing come back as empty strings; a record with no
// link falls back to the site URL itself.
func (s *Scraper) ExtractPage(html string, site *Site) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	base, err := url.Parse(site.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid site URL %q: %w", site.URL, err)
	}

	var auctions []Auction
	doc.Find(site.Selectors.Item).Each(func(_ int, sel *goquery.Selection) {
		a := Auction{
			Title:       s.fieldText(sel, site.Selectors.Title),
			Date:        s.fieldText(sel, site.Selectors.Date),
			Location:    s.fieldText(sel, site.Selectors.Location),
			Description: s.fieldText(sel, site.Selectors.Description),
		}

		a.Link = site.URL
		if href := firstHref(sel, site.Selectors.Link); href != "" {
			a.Link = resolveURL(base, href)
		}

		a.Category = s.fieldText(sel, site.Selectors.Category)
		if a.Category == "" {
			a.Category = InferCategory(a.Title, a.Location, site.URL)
		}

		auctions = append(auctions, a)
	})

	return &Page{
		Auctions: auctions,
		NextURL:  s.nextPageURL(doc, site, base),
	}, nil
}

func (s *Scraper) nextPageURL(doc *goquery.Document, site *Site, base *url.URL) string {
	if site.Pagination.NextSelector == "" {
		return ""
	}
	href := firstHref(doc.Selection, site.Pagination.NextSelector)
	if href == "" {
		return ""
	}
	return resolveURL(base, href)
}

func (s *Scraper) fieldText(sel *goquery.Selection, selector string) string {
	if selector == "" {
		return ""
	}
	return s.norm.CleanText(sel.Find(selector).First().Text())
}

func firstHref(sel *goquery.Selection, selector string) string {
	href, exists := sel.Find(selector).First().Attr("href")
	if !exists {
		return ""
	}
	return strings.TrimSpace(href)
}

// resolveURL makes href absolute against base. Unparseable hrefs are
// returned as-is rather than dropped.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
