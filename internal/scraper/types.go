package scraper

// Auction is one extracted listing row. Field order mirrors the
// spreadsheet columns A-F.
type Auction struct {
	Title       string
	Date        string
	Location    string
	Category    string
	Description string
	Link        string
}

// FieldSelectors maps record fields to CSS selectors. Item locates the
// listing elements on a page; the rest are scoped to each item.
type FieldSelectors struct {
	Item        string `yaml:"item"`
	Title       string `yaml:"title"`
	Date        string `yaml:"date"`
	Location    string `yaml:"location"`
	Category    string `yaml:"category"`
	Description string `yaml:"description"`
	Link        string `yaml:"link"`
}

type Pagination struct {
	NextSelector string `yaml:"next_selector"`
	MaxPages     int    `yaml:"max_pages"` // 0 = unbounded
}

// Site describes one scrapeable source. Immutable after load.
type Site struct {
	Name       string         `yaml:"name"`
	URL        string         `yaml:"url"`
	Selectors  FieldSelectors `yaml:"selectors"`
	Pagination Pagination     `yaml:"pagination"`
}
