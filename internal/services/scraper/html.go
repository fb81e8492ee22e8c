package scraper

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var spaceRe = regexp.MustCompile(`\s+`)

func norm(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

// plainText strips markup and decodes entities from an HTML fragment.
func plainText(fragment string) string {
	if !strings.ContainsAny(fragment, "<&") {
		return norm(fragment)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return norm(fragment)
	}
	return norm(doc.Text())
}

// elementText returns the visible text of sel without embedded media or scripts.
func elementText(sel *goquery.Selection) string {
	c := sel.Clone()
	c.Find("img, script, style, svg, noscript").Remove()
	return norm(c.Text())
}

// firstText returns the first usable title among selectors, in order.
func firstText(doc *goquery.Document, selectors []string) string {
	for _, selector := range selectors {
		var found string
		doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			t := elementText(s)
			lt := strings.ToLower(t)
			if len(t) > 3 && !strings.HasPrefix(lt, "skip to") && !strings.HasPrefix(lt, "jump to") {
				found = t
				return false
			}
			return true
		})
		if found != "" {
			return found
		}
	}
	return ""
}

// listText returns the texts matched by the first selector that yields any,
// skipping headers. Each matched node contributes once, in document order.
func listText(doc *goquery.Document, selectors []string, skip map[string]bool) []string {
	for _, selector := range selectors {
		out := nonEmpty(doc.Find(selector).Map(func(_ int, s *goquery.Selection) string {
			t := elementText(s)
			if skip[strings.ToLower(t)] {
				return ""
			}
			return t
		}))
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

// nonEmpty normalizes whitespace and drops blank entries. Repeated lines are
// kept; recipes list the same ingredient or step more than once.
func nonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = norm(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
