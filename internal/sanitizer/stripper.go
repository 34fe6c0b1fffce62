package sanitizer

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// HTMLStripperer removes markup from free-text input.
type HTMLStripperer interface {
	StripHTML(s string) string
}

type HTMLStripper struct {
	bm *bluemonday.Policy
}

var _ HTMLStripperer = (*HTMLStripper)(nil)

// NewHTMLStripper return a new instance of blue monday policy
func NewHTMLStripper() *HTMLStripper {
	return &HTMLStripper{
		bm: bluemonday.StrictPolicy(),
	}
}

// StripHTML drops every tag and trims surrounding whitespace.
func (hs *HTMLStripper) StripHTML(s string) string {
	return strings.TrimSpace(hs.bm.Sanitize(s))
}
