package scraper

import "strings"

type categoryRule struct {
	name     string
	keywords []string
}

// Group order is significant: the first group with a keyword hit wins,
// so "Antique Car Auction" lands in Antiques, not Motors.
var categoryRules = []categoryRule{
	{name: "Property", keywords: []string{"property", "estate"}},
	{name: "Antiques", keywords: []string{"antique", "collectible"}},
	{name: "Jewellery", keywords: []string{"jewel", "watch"}},
	{name: "Motors", keywords: []string{"car", "vehicle"}},
	{name: "Agriculture", keywords: []string{"farm", "tractor"}},
	{name: "Art", keywords: []string{"art", "painting"}},
}

const defaultCategory = "General"

// InferCategory guesses a category from the title, location and site URL
// when the page itself does not expose one. Matching is a case-insensitive
// substring check.
func InferCategory(title, location, siteURL string) string {
	haystack := strings.ToLower(title + " " + location + " " + siteURL)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(haystack, kw) {
				return rule.name
			}
		}
	}
	return defaultCategory
}
