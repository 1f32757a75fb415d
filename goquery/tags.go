package goquery

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/newsextract"
)

// maxTags caps the number of tags returned for a page.
const maxTags = 10

var tagSelectors = []string{
	".tags a",
	".post-tags a",
	".article-tags a",
	".tag-links a",
	".entry-tags a",
	".category-tags a",
	".tags span",
	".post-tags span",
	".article-tags span",
	".wp-tag-cloud a",
	".tag-list a",
	".hashtags a",
}

// genericCrumbs are breadcrumb labels that say nothing about the article.
var genericCrumbs = map[string]bool{
	"home":     true,
	"news":     true,
	"articles": true,
}

// extractTags merges tags from article:tag metas, the OpenGraph tag field,
// tag link selectors, meta keywords and breadcrumbs. Keywords are used only
// when no earlier source produced a tag, breadcrumbs only when keywords did
// not either. Tags are trimmed, single characters dropped, duplicates
// removed in encounter order (case-sensitive) and the result capped at 10.
func extractTags(doc *goquery.Document, meta *newsextract.Metadata) []string {
	var tags []string

	doc.Find(`meta[property="article:tag"]`).Each(func(_ int, sel *goquery.Selection) {
		if v := attrValue(sel, "content"); v != "" {
			tags = append(tags, v)
		}
	})

	if meta.OpenGraph.ArticleTag != "" {
		tags = append(tags, meta.OpenGraph.ArticleTag)
	}

	for _, s := range tagSelectors {
		doc.Find(s).Each(func(_ int, sel *goquery.Selection) {
			if v := normalizedText(sel); utf8.RuneCountInString(v) > 1 {
				tags = append(tags, v)
			}
		})
	}

	if len(tags) == 0 {
		tags = append(tags, meta.MetaKeywords...)
	}

	if len(tags) == 0 {
		crumbs := doc.Find(".breadcrumb a, .breadcrumbs a, .nav-breadcrumb a")
		crumbs.Slice(min(1, crumbs.Length()), crumbs.Length()).Each(func(_ int, sel *goquery.Selection) {
			v := normalizedText(sel)
			if v != "" && !genericCrumbs[strings.ToLower(v)] {
				tags = append(tags, v)
			}
		})
	}

	var unique orderedSet
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if utf8.RuneCountInString(tag) <= 1 {
			continue
		}
		unique.add(tag)
		if unique.len() == maxTags {
			break
		}
	}
	return unique.list()
}
