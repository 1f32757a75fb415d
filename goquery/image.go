package goquery

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var featuredImageSelectors = []string{
	".featured-image img",
	".post-thumbnail img",
	".article-image img",
	".hero-image img",
	".wp-post-image",
	".entry-featured-image img",
	".article-featured-image img",
}

const contentImageSelector = "article img, .content img, .post-content img, .entry-content img"

// nonContentImageMarkers appear in the src or alt of logos, icons and trackers.
var nonContentImageMarkers = []string{
	"logo",
	"icon",
	"avatar",
	"profile",
	"social",
	"share",
	"advertisement",
	"ad-",
	"banner",
	"placeholder",
	"spacer",
	"tracking",
	"pixel",
	"1x1",
	"transparent",
}

const (
	minImageSide        = 100
	maxImageAspectRatio = 5
)

// extractTopImage resolves the lead image of the page, trying in order:
// og:image, twitter:image, JSON-LD article image, featured image selectors,
// the first valid image inside content containers, the first valid image
// anywhere. Relative URLs are resolved against base.
func extractTopImage(doc *goquery.Document, base *url.URL) string {
	if src := metaContent(doc, `[property="og:image"]`); src != "" {
		return resolveImageURL(base, src)
	}
	if src := metaContent(doc, `[name="twitter:image"]`); src != "" {
		return resolveImageURL(base, src)
	}
	if src := extractJSONLDImage(doc); src != "" {
		return resolveImageURL(base, src)
	}
	for _, s := range featuredImageSelectors {
		if src := attrValue(doc.Find(s).First(), "src"); src != "" {
			return resolveImageURL(base, src)
		}
	}
	if src := firstValidImage(doc.Find(contentImageSelector)); src != "" {
		return resolveImageURL(base, src)
	}
	if src := firstValidImage(doc.Find("img[src]")); src != "" {
		return resolveImageURL(base, src)
	}
	return ""
}

func firstValidImage(images *goquery.Selection) string {
	var found string
	images.EachWithBreak(func(_ int, img *goquery.Selection) bool {
		if isValidImage(img) {
			found = attrValue(img, "src")
			return false
		}
		return true
	})
	return found
}

// isValidImage reports whether img looks like article imagery: it has a
// src, neither src nor alt mention a non-content marker, and when both
// dimensions are given as integers the image is at least 100x100 with an
// aspect ratio no more extreme than 5:1.
func isValidImage(img *goquery.Selection) bool {
	src := attrValue(img, "src")
	if src == "" {
		return false
	}
	alt := attrValue(img, "alt")
	if containsAny(strings.ToLower(src), nonContentImageMarkers) ||
		containsAny(strings.ToLower(alt), nonContentImageMarkers) {
		return false
	}

	w, werr := strconv.Atoi(attrValue(img, "width"))
	h, herr := strconv.Atoi(attrValue(img, "height"))
	if werr != nil || herr != nil {
		return true
	}
	if w < minImageSide || h < minImageSide {
		return false
	}
	return max(w, h) <= maxImageAspectRatio*min(w, h)
}

// resolveImageURL returns src unchanged when it is already absolute,
// otherwise resolves it against base.
func resolveImageURL(base *url.URL, src string) string {
	ref, err := url.Parse(src)
	if err != nil {
		return src
	}
	if ref.IsAbs() || base == nil {
		return src
	}
	// Protocol-relative references ("//cdn...") take the page's scheme.
	return base.ResolveReference(ref).String()
}

// extractImageURLs returns the unique image sources inside the article body.
func extractImageURLs(doc *goquery.Document, base *url.URL) []string {
	var images orderedSet
	articleBody(doc).Find("img[src]").Each(func(_ int, img *goquery.Selection) {
		if src := attrValue(img, "src"); src != "" {
			images.add(resolveImageURL(base, src))
		}
	})
	return images.list()
}

// articleBody returns the first article element, else the first post or
// entry content container. The selection is empty when none exist.
func articleBody(doc *goquery.Document) *goquery.Selection {
	for _, s := range []string{"article", "div.post-content", "div.entry-content"} {
		if sel := doc.Find(s).First(); sel.Length() > 0 {
			return sel
		}
	}
	return doc.Find("article")
}
