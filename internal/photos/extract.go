package photos

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// metaSelectors are tried in order; the first usable URL wins.
var metaSelectors = []struct {
	selector string
	attr     string
}{
	{`meta[property="og:image:secure_url"]`, "content"},
	{`meta[property="og:image"]`, "content"},
	{`meta[name="og:image"]`, "content"},
	{`meta[name="twitter:image"]`, "content"},
	{`meta[property="twitter:image"]`, "content"},
	{`meta[name="twitter:image:src"]`, "content"},
	{`link[rel="image_src"]`, "href"},
}

// ExtractImage finds the page's representative image: social meta tags
// first, then the first plausible <img>. Relative URLs resolve against base.
func ExtractImage(doc *goquery.Document, base *url.URL) (string, bool) {
	for _, m := range metaSelectors {
		var found string
		doc.Find(m.selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if v, ok := s.Attr(m.attr); ok {
				if abs := resolve(base, v); abs != "" {
					found = abs
					return false
				}
			}
			return true
		})
		if found != "" {
			return found, true
		}
	}

	var found string
	doc.Find("img").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		src, ok := s.Attr("src")
		if !ok {
			src, ok = s.Attr("data-src")
		}
		if !ok || skipImage(s, src) {
			return true
		}
		if abs := resolve(base, src); abs != "" {
			found = abs
			return false
		}
		return true
	})
	return found, found != ""
}

// skipImage rejects logos, icons, tracking pixels and inline data.
func skipImage(s *goquery.Selection, src string) bool {
	lower := strings.ToLower(src)
	if strings.HasPrefix(lower, "data:") || strings.HasSuffix(lower, ".svg") {
		return true
	}
	for _, marker := range []string{"logo", "icon", "sprite", "pixel", "spacer"} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	if w, ok := s.Attr("width"); ok && len(w) <= 2 {
		return true
	}
	return false
}

func resolve(base *url.URL, raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if base != nil {
		u = base.ResolveReference(u)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	return u.String()
}
