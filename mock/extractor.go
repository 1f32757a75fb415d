package mock

import "github.com/fwojciec/newsextract"

var _ newsextract.ContentStrategy = (*ContentStrategy)(nil)

// ContentStrategy is a mock implementation of newsextract.ContentStrategy.
type ContentStrategy struct {
	NameFn    func() string
	ExtractFn func(page *newsextract.Page) (string, error)
}

func (s *ContentStrategy) Name() string {
	return s.NameFn()
}

func (s *ContentStrategy) Extract(page *newsextract.Page) (string, error) {
	return s.ExtractFn(page)
}

var _ newsextract.ContentExtractor = (*ContentExtractor)(nil)

// ContentExtractor is a mock implementation of newsextract.ContentExtractor.
type ContentExtractor struct {
	ExtractContentFn func(page *newsextract.Page) string
}

func (e *ContentExtractor) ExtractContent(page *newsextract.Page) string {
	return e.ExtractContentFn(page)
}

var _ newsextract.MetadataExtractor = (*MetadataExtractor)(nil)

// MetadataExtractor is a mock implementation of newsextract.MetadataExtractor.
type MetadataExtractor struct {
	ExtractMetadataFn func(page *newsextract.Page) *newsextract.Metadata
}

func (e *MetadataExtractor) ExtractMetadata(page *newsextract.Page) *newsextract.Metadata {
	return e.ExtractMetadataFn(page)
}

var _ newsextract.ArticleParser = (*ArticleParser)(nil)

// ArticleParser is a mock implementation of newsextract.ArticleParser.
type ArticleParser struct {
	ParseArticleDataFn func(html, url string) *newsextract.ArticleData
}

func (p *ArticleParser) ParseArticleData(html, url string) *newsextract.ArticleData {
	return p.ParseArticleDataFn(html, url)
}
