package goquery

import (
	"strings"
	"unicode/utf8"

	"github.com/andybalholm/cascadia"
)

// SelectorGroup is one entry of the content selector catalog: a
// comma-separated CSS selector group compiled once at startup.
// Groups are tried in order; the first group matching any element wins.
type SelectorGroup struct {
	// Pattern is the selector source, kept for logging.
	Pattern string

	selector cascadia.Selector

	// anchor matches the container a block group is scoped to. Boilerplate
	// checks on a matched element stop at its nearest anchor. A nil anchor
	// scopes the check to the element itself unless pageWide is set, in
	// which case it reaches <body>.
	anchor   cascadia.Selector
	pageWide bool
}

// Matcher returns the compiled selector for use with Selection.FindMatcher.
func (g SelectorGroup) Matcher() cascadia.Selector {
	return g.selector
}

// blockGroup matches the h1-h3 and p descendants of container, e.g.
// ".post-content h1, .post-content h2, ...". It panics on an invalid
// container, so it must only be used for the static tables below.
func blockGroup(container string) SelectorGroup {
	pattern := blockSelector(container)
	return SelectorGroup{
		Pattern:  pattern,
		selector: cascadia.MustCompile(pattern),
		anchor:   cascadia.MustCompile(container),
	}
}

// elementGroup matches content elements directly, e.g. a site's
// paragraph class.
func elementGroup(pattern string) SelectorGroup {
	return SelectorGroup{Pattern: pattern, selector: cascadia.MustCompile(pattern)}
}

// pageGroup matches block elements anywhere on the page.
func pageGroup(pattern string) SelectorGroup {
	return SelectorGroup{Pattern: pattern, selector: cascadia.MustCompile(pattern), pageWide: true}
}

func blockSelector(container string) string {
	parts := make([]string, 0, 4)
	for _, tag := range []string{"h1", "h2", "h3", "p"} {
		parts = append(parts, container+" "+tag)
	}
	return strings.Join(parts, ", ")
}

// genericGroups are tried for every page, tightest first.
var genericGroups = []SelectorGroup{
	blockGroup("article"),
	blockGroup("article div.content"),
	blockGroup("article div.body"),
	blockGroup(".article-content"),
	blockGroup(".article-body"),
	blockGroup(".post-content"),
	blockGroup(".entry-content"),
	blockGroup(".story-content"),
	blockGroup(".news-content"),
	blockGroup(`[class*="article"]`),
	blockGroup(`[class*="content"]`),
	blockGroup(`[class*="story"]`),
	blockGroup(`[class*="post"]`),
	blockGroup("main"),
	blockGroup(".main"),
	blockGroup("#main"),
	blockGroup(".container"),
	blockGroup(".wrapper"),
	pageGroup("h1, h2, h3, p"),
}

// siteGroups are tried before genericGroups for pages on an exact host.
var siteGroups = map[string][]SelectorGroup{
	"timesofindia.indiatimes.com": {
		elementGroup(".Normal"),
		elementGroup("._3YYSt"),
		blockGroup(".article-content"),
	},
	"hindustantimes.com": {
		blockGroup(".story-details"),
		blockGroup(".detail"),
	},
	"indianexpress.com": {
		elementGroup(".story-element-text"),
		blockGroup(".ie-customstory"),
	},
	"ndtv.com": {
		elementGroup(".sp-cn"),
		blockGroup(".ins__story-body"),
	},
	"news18.com": {
		blockGroup(".story-article-content"),
		blockGroup(".article-content"),
	},
	"reuters.com": {
		blockGroup(".StandardArticleBody_body"),
		blockGroup(".ArticleBodyWrapper"),
	},
	"bbc.com": {
		blockGroup(".story-body__inner"),
		blockGroup(".gel-body-copy"),
	},
	"cnn.com": {
		elementGroup(".zn-body__paragraph"),
		elementGroup(".el__leafmedia--sourced-paragraph"),
		blockGroup(".article__content"),
	},
	"theguardian.com": {
		blockGroup(".dcr-1kas69x"),
		blockGroup(".content__article-body"),
	},
	"nytimes.com": {
		blockGroup(".css-1r7ky0e"),
		blockGroup(".StoryBodyCompanionColumn"),
	},
}

// Selectors returns the ordered selector groups for a page on domain: the
// domain's own groups, if any, followed by the generic catalog. The domain
// must match a catalog host exactly. The returned slice is a fresh copy.
func Selectors(domain string) []SelectorGroup {
	site := siteGroups[domain]
	groups := make([]SelectorGroup, 0, len(site)+len(genericGroups))
	groups = append(groups, site...)
	return append(groups, genericGroups...)
}

// excludeTerms mark text that belongs to page furniture rather than the article.
var excludeTerms = []string{
	"trending",
	"headlines",
	"videos",
	"gallery",
	"opinion",
	"cookies",
	"privacy",
	"terms",
	"conditions",
	"subscribe",
	"newsletter",
	"advertisement",
	"recommended",
	"related",
	"popular",
	"more news",
	"copyright",
	"all rights reserved",
	"social media",
	"follow us",
	"share this",
	"tweet",
	"facebook",
	"instagram",
	"linkedin",
}

// minMeaningfulLength is the shortest text considered meaningful content.
const minMeaningfulLength = 10

// ShouldExcludeContent reports whether text is too short to be meaningful
// or mentions one of the boilerplate terms (case-insensitive).
func ShouldExcludeContent(text string) bool {
	if utf8.RuneCountInString(strings.TrimSpace(text)) < minMeaningfulLength {
		return true
	}
	return containsExcludeTerm(text)
}

func containsExcludeTerm(text string) bool {
	return containsAny(strings.ToLower(text), excludeTerms)
}

// IsLikelyHeader reports whether tagName is a heading tag (h1 to h6).
func IsLikelyHeader(tagName string) bool {
	switch strings.ToLower(tagName) {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return true
	}
	return false
}

// containsAny reports whether s contains any of substrs.
func containsAny(s string, substrs []string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
