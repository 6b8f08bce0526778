package normalize

import (
	"regexp"
	"strings"
)

var spaceRe = regexp.MustCompile(`\s+`)

// Normalizer cleans up text pulled out of HTML before it is recorded.
type Normalizer struct {
	trimNBSP       bool
	collapseSpaces bool
}

func New(trimNBSP, collapseSpaces bool) *Normalizer {
	return &Normalizer{
		trimNBSP:       trimNBSP,
		collapseSpaces: collapseSpaces,
	}
}

// CleanText trims surrounding whitespace and, per configuration,
// replaces non-breaking spaces and collapses whitespace runs.
func (n *Normalizer) CleanText(s string) string {
	if n.trimNBSP {
		s = strings.ReplaceAll(s, " ", " ")
	}
	if n.collapseSpaces {
		s = spaceRe.ReplaceAllString(s, " ")
	}
	return strings.TrimSpace(s)
}
