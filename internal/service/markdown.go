package service

import (
	"bytes"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

// PostPreview is the rendered form of a post used by the detail view.
type PostPreview struct {
	ID    string
	Title string
	HTML  string
}

// RenderMarkdown converts post content to sanitized HTML.
func RenderMarkdown(content string) (string, error) {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(content), &buf); err != nil {
		return "", err
	}
	return sanitizer.Sanitize(buf.String()), nil
}

// Preview renders the stored content of a post.
func (s *PostService) Preview(id string) (*PostPreview, error) {
	post, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	rendered, err := RenderMarkdown(post.Content)
	if err != nil {
		return nil, err
	}

	return &PostPreview{ID: post.ID, Title: post.Title, HTML: rendered}, nil
}
