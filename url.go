package newsextract

import (
	"net/url"
	"regexp"
	"strings"
)

// blockedDomains are hosts whose pages are not news articles.
var blockedDomains = []string{
	"facebook.com",
	"twitter.com",
	"instagram.com",
	"linkedin.com",
	"youtube.com",
	"tiktok.com",
}

// ValidateURL returns EINVALID unless rawURL is an absolute http(s) URL
// outside the blocked social media domains.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return Errorf(EINVALID, "URL required")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return Errorf(EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Errorf(EINVALID, "unsupported URL scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return Errorf(EINVALID, "URL %q has no host", rawURL)
	}
	host := strings.ToLower(u.Host)
	for _, blocked := range blockedDomains {
		if strings.Contains(host, blocked) {
			return Errorf(EINVALID, "domain %q is not supported", u.Host)
		}
	}
	return nil
}

// URLFilter selects feed entries by URL pattern.
type URLFilter struct {
	// Include patterns. If set, only URLs matching at least one pattern pass.
	Include []*regexp.Regexp

	// Exclude patterns. URLs matching any pattern are rejected, even when
	// they match an include pattern.
	Exclude []*regexp.Regexp
}

// NewURLFilter compiles include and exclude patterns into a filter.
// Returns nil when both lists are empty and EINVALID for a bad pattern.
func NewURLFilter(include, exclude []string) (*URLFilter, error) {
	if len(include) == 0 && len(exclude) == 0 {
		return nil, nil
	}
	f := &URLFilter{}
	for _, p := range include {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, Errorf(EINVALID, "invalid include pattern %q: %v", p, err)
		}
		f.Include = append(f.Include, re)
	}
	for _, p := range exclude {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, Errorf(EINVALID, "invalid exclude pattern %q: %v", p, err)
		}
		f.Exclude = append(f.Exclude, re)
	}
	return f, nil
}

// Match reports whether url passes the filter. A nil filter passes
// every URL.
func (f *URLFilter) Match(url string) bool {
	if f == nil {
		return true
	}

	if len(f.Include) > 0 {
		matched := false
		for _, re := range f.Include {
			if re.MatchString(url) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	for _, re := range f.Exclude {
		if re.MatchString(url) {
			return false
		}
	}

	return true
}
