// Package htmlsanitize scrubs user-supplied text before it is stored.
// Chat bodies, contribution notes, and contact inquiries are plain text;
// document descriptions may carry basic formatting.
package htmlsanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strict = bluemonday.StrictPolicy()
	basic  = newBasicPolicy()
)

func newBasicPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("p", "br", "strong", "em", "u", "ul", "ol", "li", "blockquote", "code", "pre")
	p.AllowStandardURLs()
	p.AllowAttrs("href").OnElements("a")
	p.RequireNoFollowOnLinks(true)
	return p
}

// Strict strips all markup, returning plain text.
func Strict(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}

// Basic keeps simple formatting and safe links, removing scripts, event
// handlers, and javascript: URLs.
func Basic(s string) string {
	return strings.TrimSpace(basic.Sanitize(s))
}
