// Package sanitize cleans free text typed into forms: client names,
// supplier names, notes and descriptions.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.StrictPolicy()

// Text strips markup and control characters and trims the result.
// Entities produced by the policy are decoded again, since the text is
// rendered into JSON and PDFs, never into HTML.
func Text(s string) string {
	s = html.UnescapeString(policy.Sanitize(s))
	s = strings.Map(func(r rune) rune {
		if r < 32 && r != '\n' && r != '\t' {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}

// Ptr applies Text to an optional value. Blank results become nil.
func Ptr(s *string) *string {
	if s == nil {
		return nil
	}
	v := Text(*s)
	if v == "" {
		return nil
	}
	return &v
}
