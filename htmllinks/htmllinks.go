// Package htmllinks provides the default crawlsched.LinkExtractor, which
// walks a page's DOM for outbound links.
//
// Grounded on the teacher's parse.go tokenizer loop (parseHTML,
// parseAnchorAttrs, parseIframeAttrs), trimmed to the tag set spec.md
// calls out (anchors, areas, frames, iframes) since meta-refresh,
// object/embed, and robots-meta handling belong to the out-of-scope fetch
// loop.
package htmllinks

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/iParadigms/crawlsched"
)

// DefaultExtractor implements crawlsched.LinkExtractor over a parsed HTML
// document, resolving relative links against the response's own URL and
// deduping survivors within the page.
type DefaultExtractor struct {
	// Tags is the set of element names scanned for outbound links. The
	// extractor returned by New covers a, area, frame, and iframe; a
	// zero-value DefaultExtractor has no Tags and extracts nothing.
	Tags map[string]bool
}

// New returns a DefaultExtractor covering the standard link-bearing tags:
// a, area, frame, and iframe.
func New() *DefaultExtractor {
	return &DefaultExtractor{
		Tags: map[string]bool{
			"a":      true,
			"area":   true,
			"frame":  true,
			"iframe": true,
		},
	}
}

// linkAttr names, per tag, which attribute carries the outbound URL.
var linkAttr = map[string]string{
	"a":      "href",
	"area":   "href",
	"frame":  "src",
	"iframe": "src",
}

// ExtractLinks parses res's text body as HTML and returns every absolute
// URL found in an included tag's link attribute. Responses with no text
// body yield no links and no error.
func (e *DefaultExtractor) ExtractLinks(res crawlsched.Response) ([]string, error) {
	text, ok := res.Text()
	if !ok {
		return nil, nil
	}

	base, err := url.Parse(res.URL())
	if err != nil {
		return nil, err
	}

	tokenizer := html.NewTokenizer(strings.NewReader(text))
	seen := map[string]bool{}
	var out []string

	for {
		tt := tokenizer.Next()
		switch tt {
		case html.ErrorToken:
			return out, nil
		case html.StartTagToken, html.SelfClosingTagToken:
			tagName, hasAttrs := tokenizer.TagName()
			tag := string(tagName)
			attrName, wanted := linkAttr[tag]
			if !wanted || !hasAttrs || !e.Tags[tag] {
				continue
			}
			if link, ok := findAttr(tokenizer, attrName); ok {
				abs := resolve(base, link)
				if abs != "" && !seen[abs] {
					seen[abs] = true
					out = append(out, abs)
				}
			}
		}
	}
}

func findAttr(tokenizer *html.Tokenizer, name string) (string, bool) {
	for {
		key, val, more := tokenizer.TagAttr()
		if string(key) == name {
			return strings.TrimSpace(string(val)), true
		}
		if !more {
			return "", false
		}
	}
}

func resolve(base *url.URL, ref string) string {
	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	return base.ResolveReference(u).String()
}
