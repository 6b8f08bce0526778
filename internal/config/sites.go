package config

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"auctionscout/internal/scraper"
)

// LoadSites loads the site descriptors from a YAML file. A descriptor
// missing any required selector is a startup error, never skipped.
func LoadSites(filePath string) ([]scraper.Site, error) {
	if filePath == "" {
		return nil, fmt.Errorf("sites file path is empty")
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sites file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			log.Printf("Warning: failed to close sites file: %v", closeErr)
		}
	}()

	var doc struct {
		Sites []scraper.Site `yaml:"sites"`
	}
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse sites YAML: %w", err)
	}

	if len(doc.Sites) == 0 {
		return nil, fmt.Errorf("sites file defines no sites")
	}

	for i := range doc.Sites {
		if err := validateSite(&doc.Sites[i]); err != nil {
			return nil, fmt.Errorf("site %d (%q): %w", i+1, doc.Sites[i].Name, err)
		}
	}

	return doc.Sites, nil
}

// validateSite checks the required descriptor fields.
func validateSite(s *scraper.Site) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.URL == "" {
		return fmt.Errorf("url is required")
	}

	required := []struct {
		name  string
		value string
	}{
		{"selectors.item", s.Selectors.Item},
		{"selectors.title", s.Selectors.Title},
		{"selectors.date", s.Selectors.Date},
		{"selectors.location", s.Selectors.Location},
		{"selectors.category", s.Selectors.Category},
		{"selectors.description", s.Selectors.Description},
		{"selectors.link", s.Selectors.Link},
	}
	for _, field := range required {
		if field.value == "" {
			return fmt.Errorf("%s is required", field.name)
		}
	}

	// max_pages of 0 means unbounded, same as leaving it out.
	if s.Pagination.MaxPages < 0 {
		return fmt.Errorf("pagination.max_pages must be >= 0")
	}
	return nil
}
