package goquery

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/newsextract"
)

// articleTypes are the schema.org types treated as article objects.
var articleTypes = map[string]bool{
	"Article":     true,
	"NewsArticle": true,
}

// jsonLDArticles decodes every JSON-LD script on the page and returns the
// Article and NewsArticle objects in document order. Top-level arrays and
// @graph containers are flattened. Scripts that are not valid JSON are
// skipped.
func jsonLDArticles(doc *goquery.Document) []map[string]any {
	var articles []map[string]any
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, script *goquery.Selection) {
		var data any
		if err := json.Unmarshal([]byte(strings.TrimSpace(script.Text())), &data); err != nil {
			return
		}
		for _, obj := range flattenJSONLD(data) {
			if isArticleType(obj["@type"]) {
				articles = append(articles, obj)
			}
		}
	})
	return articles
}

func flattenJSONLD(data any) []map[string]any {
	switch v := data.(type) {
	case []any:
		var out []map[string]any
		for _, item := range v {
			out = append(out, flattenJSONLD(item)...)
		}
		return out
	case map[string]any:
		out := []map[string]any{v}
		if graph, ok := v["@graph"]; ok {
			out = append(out, flattenJSONLD(graph)...)
		}
		return out
	}
	return nil
}

// isArticleType reports whether a @type value, a string or a list of
// strings, names an article type.
func isArticleType(t any) bool {
	switch v := t.(type) {
	case string:
		return articleTypes[v]
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && articleTypes[s] {
				return true
			}
		}
	}
	return false
}

// extractJSONLD collects headline, author, publication date and
// description from the page's article objects. Later objects overwrite
// fields set by earlier ones.
func extractJSONLD(doc *goquery.Document) newsextract.JSONLD {
	var ld newsextract.JSONLD
	for _, obj := range jsonLDArticles(doc) {
		if v := jsonString(obj["headline"]); v != "" {
			ld.Headline = v
		}
		if v := jsonLDAuthor(obj["author"]); v != "" {
			ld.Author = v
		}
		if v := jsonString(obj["datePublished"]); v != "" {
			ld.DatePublished = v
		}
		if v := jsonString(obj["description"]); v != "" {
			ld.Description = v
		}
	}
	return ld
}

// extractJSONLDImage returns the image of the first article object that
// has one. An image may be a URL string, an object with a url field, or a
// list whose first item is either.
func extractJSONLDImage(doc *goquery.Document) string {
	for _, obj := range jsonLDArticles(doc) {
		if src := jsonLDImage(obj["image"]); src != "" {
			return src
		}
	}
	return ""
}

func jsonLDImage(v any) string {
	switch img := v.(type) {
	case string:
		return strings.TrimSpace(img)
	case map[string]any:
		return jsonString(img["url"])
	case []any:
		if len(img) > 0 {
			switch first := img[0].(type) {
			case string:
				return strings.TrimSpace(first)
			case map[string]any:
				return jsonString(first["url"])
			}
		}
	}
	return ""
}

// jsonLDAuthor returns an author given as a string, a Person object or a
// list of either. Only the first list entry is used.
func jsonLDAuthor(v any) string {
	switch a := v.(type) {
	case string:
		return strings.TrimSpace(a)
	case map[string]any:
		return jsonString(a["name"])
	case []any:
		if len(a) > 0 {
			return jsonLDAuthor(a[0])
		}
	}
	return ""
}

func jsonString(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}
