// Package fs writes articles as Markdown files with YAML frontmatter.
package fs

import (
	"bytes"
	"context"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/newsextract"
	"gopkg.in/yaml.v3"
)

// URLToPath converts an article URL to a relative file path under a
// directory named after the host.
// Example: https://www.example.com/news/world/story → example.com/news/world/story.md
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	if host == "" {
		return "", newsextract.Errorf(newsextract.EINVALID, "URL %q has no host", rawURL)
	}

	// Cleaning against the root keeps ".." segments inside the host directory.
	p := path.Clean("/" + u.Path)
	if p == "/" {
		return host + "/index.md", nil
	}
	p = strings.TrimPrefix(p, "/")

	// Trailing slash becomes index.md in that directory
	if strings.HasSuffix(u.Path, "/") {
		return host + "/" + p + "/index.md", nil
	}

	switch strings.ToLower(path.Ext(p)) {
	case ".html", ".htm", ".shtml", ".php", ".asp", ".aspx":
		p = strings.TrimSuffix(p, path.Ext(p))
	}
	return host + "/" + p + ".md", nil
}

// frontmatter is the YAML header of an article file.
type frontmatter struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	URL         string   `yaml:"url"`
	Author      string   `yaml:"author,omitempty"`
	Published   string   `yaml:"published,omitempty"`
	Source      string   `yaml:"source,omitempty"`
	Publication string   `yaml:"publication,omitempty"`
	Language    string   `yaml:"language,omitempty"`
	Translated  bool     `yaml:"translated,omitempty"`
	Category    string   `yaml:"category,omitempty"`
	Tags        []string `yaml:"tags,omitempty"`
	TopImage    string   `yaml:"image,omitempty"`
	Summary     string   `yaml:"summary,omitempty"`
	Sentiment   string   `yaml:"sentiment,omitempty"`
	Paywalled   bool     `yaml:"paywalled,omitempty"`
	Extracted   string   `yaml:"extracted"`
}

// FormatArticle formats an article with YAML frontmatter.
func FormatArticle(article *newsextract.Article) (string, error) {
	fm := frontmatter{
		ID:          article.ID,
		Title:       article.Title,
		URL:         article.URL,
		Author:      article.Author,
		Published:   article.PublishedDate,
		Source:      article.Source,
		Publication: article.PublicationName,
		Language:    article.Language,
		Translated:  article.Translated,
		Category:    article.Category,
		Tags:        article.Tags,
		TopImage:    article.TopImage,
		Summary:     article.Summary,
		Paywalled:   article.IsPaywalled,
		Extracted:   article.ExtractedAt.UTC().Format(time.DateOnly),
	}
	if article.PublishedAt != nil {
		fm.Published = article.PublishedAt.UTC().Format(time.RFC3339)
	}
	if article.Sentiment != nil {
		fm.Sentiment = article.Sentiment.Label
	}

	var b bytes.Buffer
	b.WriteString("---\n")
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)
	if err := enc.Encode(fm); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	b.WriteString("---\n\n")
	b.WriteString("# ")
	b.WriteString(article.Title)
	b.WriteString("\n\n")
	b.WriteString(article.Content)
	b.WriteString("\n")
	return b.String(), nil
}

// Ensure Writer implements newsextract.ArticleWriter at compile time.
var _ newsextract.ArticleWriter = (*Writer)(nil)

// Writer writes articles as markdown files to a directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// CreateArticle writes an article to disk as a markdown file. The file is
// written to a temporary file first and renamed into place, so readers
// never observe a partial article.
func (w *Writer) CreateArticle(ctx context.Context, article *newsextract.Article) error {
	if err := article.Validate(); err != nil {
		return err
	}

	relPath, err := URLToPath(article.URL)
	if err != nil {
		return err
	}

	content, err := FormatArticle(article)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(w.baseDir, filepath.FromSlash(relPath))

	// Create parent directories
	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	return writeFileAtomic(fullPath, []byte(content))
}

func writeFileAtomic(name string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(name), "."+filepath.Base(name)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), name)
}
