package goquery

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
	"github.com/fwojciec/newsextract"
)

// Ensure MetadataExtractor implements newsextract.MetadataExtractor at compile time.
var _ newsextract.MetadataExtractor = (*MetadataExtractor)(nil)

// minSummaryLength is the number of characters a summary must exceed.
const minSummaryLength = 20

var authorSelectors = []string{
	`[rel="author"]`,
	`[property="article:author"]`,
	`[name="author"]`,
	".author",
	".byline",
	".writer-name",
	".article-author",
	".post-author",
}

var dateSelectors = []string{
	`[property="article:published_time"]`,
	`[property="og:published_time"]`,
	`[name="article:published_time"]`,
	"time[datetime]",
	".publish-date",
	".date",
	".published-date",
	".article-date",
}

var summarySelectors = []string{
	`[property="og:description"]`,
	`[name="description"]`,
	`[name="twitter:description"]`,
	".article-summary",
	".excerpt",
	".article-excerpt",
	".post-excerpt",
}

var paywallSelectors = []string{
	"#paywall",
	".paywall",
	".premium-content",
	"div[class*='paywall']",
}

// MetadataExtractor reads article metadata from a parsed page. Each field is
// resolved on its own; a field that cannot be found keeps its zero value.
type MetadataExtractor struct{}

// NewMetadataExtractor creates a new MetadataExtractor.
func NewMetadataExtractor() *MetadataExtractor {
	return &MetadataExtractor{}
}

// ExtractMetadata returns the metadata record of page. It never returns nil.
func (e *MetadataExtractor) ExtractMetadata(page *newsextract.Page) *newsextract.Metadata {
	meta := newsextract.NewMetadata()
	if page == nil || page.Root == nil {
		return meta
	}

	doc := goquery.NewDocumentFromNode(page.Root)
	base := page.ParsedURL()

	meta.Source = page.Host()
	meta.Author = firstValue(doc, authorSelectors, contentOrText, nonEmpty)
	meta.PublishedDate = firstValue(doc, dateSelectors, datetimeContentOrText, nonEmpty)
	if t, err := dateparse.ParseAny(meta.PublishedDate); meta.PublishedDate != "" && err == nil {
		meta.PublishedAt = &t
	}
	meta.Summary = firstValue(doc, summarySelectors, contentOrText, func(v string) bool {
		return utf8.RuneCountInString(v) > minSummaryLength
	})
	meta.TopImage = extractTopImage(doc, base)

	meta.OpenGraph = extractOpenGraph(doc)
	meta.Twitter = extractTwitterCard(doc)
	meta.JSONLD = extractJSONLD(doc)

	meta.Category = extractCategory(doc)
	meta.PublicationName = extractPublicationName(doc, meta.Source)
	meta.MetaDescription = metaContent(doc, `meta[name="description"]`)
	meta.MetaKeywords = extractMetaKeywords(doc)
	meta.Tags = extractTags(doc, meta)
	meta.CanonicalLink = attrValue(doc.Find(`link[rel="canonical"]`).First(), "href")
	meta.ImageURLs = extractImageURLs(doc, base)
	meta.VideoURLs = extractVideoURLs(doc)
	meta.Links = extractLinks(doc, base)
	meta.IsPaywalled = hasAny(doc, paywallSelectors)

	return meta
}

// datetimeContentOrText prefers a datetime attribute, then content, then text.
func datetimeContentOrText(sel *goquery.Selection) string {
	if v := attrValue(sel, "datetime"); v != "" {
		return v
	}
	return contentOrText(sel)
}

// metaContent returns the content attribute of the first element matching selector.
func metaContent(doc *goquery.Document, selector string) string {
	return attrValue(doc.Find(selector).First(), "content")
}

var openGraphProperties = []string{
	"og:title",
	"og:description",
	"og:image",
	"og:url",
	"og:type",
	"og:site_name",
	"article:author",
	"article:published_time",
	"article:modified_time",
	"article:section",
	"article:tag",
}

func extractOpenGraph(doc *goquery.Document) newsextract.OpenGraph {
	v := make(map[string]string, len(openGraphProperties))
	for _, prop := range openGraphProperties {
		v[prop] = metaContent(doc, `[property="`+prop+`"]`)
	}
	return newsextract.OpenGraph{
		Title:                v["og:title"],
		Description:          v["og:description"],
		Image:                v["og:image"],
		URL:                  v["og:url"],
		Type:                 v["og:type"],
		SiteName:             v["og:site_name"],
		ArticleAuthor:        v["article:author"],
		ArticlePublishedTime: v["article:published_time"],
		ArticleModifiedTime:  v["article:modified_time"],
		ArticleSection:       v["article:section"],
		ArticleTag:           v["article:tag"],
	}
}

func extractTwitterCard(doc *goquery.Document) newsextract.TwitterCard {
	get := func(name string) string {
		return metaContent(doc, `[name="twitter:`+name+`"]`)
	}
	return newsextract.TwitterCard{
		Card:        get("card"),
		Title:       get("title"),
		Description: get("description"),
		Image:       get("image"),
		Site:        get("site"),
		Creator:     get("creator"),
	}
}

func extractCategory(doc *goquery.Document) string {
	if section := metaContent(doc, `meta[property="article:section"]`); section != "" {
		return section
	}
	crumb := doc.Find(".breadcrumb a, .breadcrumbs a, .b-breadcrumbs__item a").First()
	return normalizedText(crumb)
}

// extractPublicationName prefers og:site_name, then twitter:site without
// its leading "@", then the capitalized first label of the host.
func extractPublicationName(doc *goquery.Document, source string) string {
	if name := metaContent(doc, `meta[property="og:site_name"]`); name != "" {
		return name
	}
	if site := metaContent(doc, `meta[name="twitter:site"]`); site != "" {
		return strings.TrimLeft(site, "@")
	}
	host := strings.TrimPrefix(strings.ToLower(source), "www.")
	label, _, _ := strings.Cut(host, ".")
	if label == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(label)
	return string(unicode.ToUpper(r)) + label[size:]
}

func extractMetaKeywords(doc *goquery.Document) []string {
	keywords := []string{}
	raw := metaContent(doc, `meta[name="keywords"]`)
	if raw == "" {
		return keywords
	}
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keywords = append(keywords, k)
		}
	}
	return keywords
}

func extractVideoURLs(doc *goquery.Document) []string {
	var videos orderedSet
	doc.Find("iframe[src]").Each(func(_ int, sel *goquery.Selection) {
		src := attrValue(sel, "src")
		if strings.Contains(src, "youtube.com") || strings.Contains(src, "vimeo.com") {
			videos.add(src)
		}
	})
	return videos.list()
}

func hasAny(doc *goquery.Document, selectors []string) bool {
	for _, s := range selectors {
		if doc.Find(s).Length() > 0 {
			return true
		}
	}
	return false
}

// orderedSet collects unique strings in first-seen order.
type orderedSet struct {
	seen  map[string]struct{}
	items []string
}

func (s *orderedSet) add(v string) bool {
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	if _, ok := s.seen[v]; ok {
		return false
	}
	s.seen[v] = struct{}{}
	s.items = append(s.items, v)
	return true
}

func (s *orderedSet) len() int { return len(s.items) }

// list returns the collected items, never nil.
func (s *orderedSet) list() []string {
	if s.items == nil {
		return []string{}
	}
	return s.items
}
