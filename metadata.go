package newsextract

import "time"

// Metadata is the metadata record of an article page. Every field is
// optional: absent values are empty strings, empty slices or false.
type Metadata struct {
	// Source is the host the page was served from.
	Source string `json:"source"`

	Author        string `json:"author"`
	PublishedDate string `json:"published_date"`
	// PublishedAt is PublishedDate parsed leniently, nil when unparseable.
	PublishedAt *time.Time `json:"published_at,omitempty"`
	Summary     string     `json:"summary"`
	TopImage    string     `json:"top_image"`

	Category        string   `json:"category"`
	PublicationName string   `json:"publication_name"`
	MetaDescription string   `json:"meta_description"`
	MetaKeywords    []string `json:"meta_keywords"`
	Tags            []string `json:"tags"`
	CanonicalLink   string   `json:"canonical_link"`
	ImageURLs       []string `json:"image_urls"`
	VideoURLs       []string `json:"video_urls"`
	Links           []string `json:"links"`
	IsPaywalled     bool     `json:"is_paywalled"`

	OpenGraph OpenGraph   `json:"open_graph"`
	Twitter   TwitterCard `json:"twitter"`
	JSONLD    JSONLD      `json:"json_ld"`
}

// OpenGraph holds the first value of each known OpenGraph property.
type OpenGraph struct {
	Title                string `json:"og_title"`
	Description          string `json:"og_description"`
	Image                string `json:"og_image"`
	URL                  string `json:"og_url"`
	Type                 string `json:"og_type"`
	SiteName             string `json:"og_site_name"`
	ArticleAuthor        string `json:"article_author"`
	ArticlePublishedTime string `json:"article_published_time"`
	ArticleModifiedTime  string `json:"article_modified_time"`
	ArticleSection       string `json:"article_section"`
	ArticleTag           string `json:"article_tag"`
}

// TwitterCard holds the first value of each known Twitter card property.
type TwitterCard struct {
	Card        string `json:"twitter_card"`
	Title       string `json:"twitter_title"`
	Description string `json:"twitter_description"`
	Image       string `json:"twitter_image"`
	Site        string `json:"twitter_site"`
	Creator     string `json:"twitter_creator"`
}

// JSONLD holds fields of the last Article or NewsArticle object found in
// the page's JSON-LD scripts.
type JSONLD struct {
	Headline      string `json:"jsonld_headline"`
	Author        string `json:"jsonld_author"`
	DatePublished string `json:"jsonld_date_published"`
	Description   string `json:"jsonld_description"`
}

// NewMetadata returns a Metadata with every list field set to an empty,
// non-nil slice.
func NewMetadata() *Metadata {
	return &Metadata{
		MetaKeywords: []string{},
		Tags:         []string{},
		ImageURLs:    []string{},
		VideoURLs:    []string{},
		Links:        []string{},
	}
}
