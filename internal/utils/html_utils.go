package utils

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// EnhanceImages marks every <img> in the fragment as lazy-loaded and
// sends no referrer when fetching it.
func EnhanceImages(htmlStr string) string {
	if htmlStr == "" || !strings.Contains(htmlStr, "<img") {
		return htmlStr
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return htmlStr
	}

	doc.Find("img").Each(func(i int, s *goquery.Selection) {
		s.SetAttr("referrerpolicy", "no-referrer")
		s.SetAttr("loading", "lazy")
		s.SetAttr("decoding", "async")
	})

	// goquery wraps fragments in html/body; only the body content is wanted
	out, err := doc.Find("body").Html()
	if err != nil || out == "" {
		return htmlStr
	}
	return out
}
