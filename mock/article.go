package mock

import (
	"context"

	"github.com/fwojciec/newsextract"
)

var _ newsextract.ArticleService = (*ArticleService)(nil)

// ArticleService is a mock implementation of newsextract.ArticleService.
type ArticleService struct {
	CreateArticleFn   func(ctx context.Context, article *newsextract.Article) error
	FindArticleByIDFn func(ctx context.Context, id string) (*newsextract.Article, error)
	FindArticlesFn    func(ctx context.Context, filter newsextract.ArticleFilter) ([]*newsextract.Article, error)
	DeleteArticleFn   func(ctx context.Context, id string) error
}

func (s *ArticleService) CreateArticle(ctx context.Context, article *newsextract.Article) error {
	return s.CreateArticleFn(ctx, article)
}

func (s *ArticleService) FindArticleByID(ctx context.Context, id string) (*newsextract.Article, error) {
	return s.FindArticleByIDFn(ctx, id)
}

func (s *ArticleService) FindArticles(ctx context.Context, filter newsextract.ArticleFilter) ([]*newsextract.Article, error) {
	return s.FindArticlesFn(ctx, filter)
}

func (s *ArticleService) DeleteArticle(ctx context.Context, id string) error {
	return s.DeleteArticleFn(ctx, id)
}

var _ newsextract.ArticleWriter = (*ArticleWriter)(nil)

// ArticleWriter is a mock implementation of newsextract.ArticleWriter.
type ArticleWriter struct {
	CreateArticleFn func(ctx context.Context, article *newsextract.Article) error
}

func (w *ArticleWriter) CreateArticle(ctx context.Context, article *newsextract.Article) error {
	return w.CreateArticleFn(ctx, article)
}
