// Package client is a typed HTTP client for the blog API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Category mirrors the category payload.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CategoryRef is the resolved category attached to posts.
type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Post mirrors the post payload.
type Post struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Content   string       `json:"content"`
	Author    string       `json:"author"`
	Category  *CategoryRef `json:"category"`
	Image     *string      `json:"image"`
	Status    string       `json:"status"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// PostPage is one page of the post listing.
type PostPage struct {
	Posts       []Post `json:"posts"`
	TotalPages  int    `json:"totalPages"`
	CurrentPage int    `json:"currentPage"`
	TotalPosts  int64  `json:"totalPosts"`
}

// ListParams are the optional listing parameters; zero values are omitted.
type ListParams struct {
	Page     int
	Limit    int
	Search   string
	Category string
}

// PostInput is the body of a create request.
type PostInput struct {
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	Author   string  `json:"author"`
	Category *string `json:"category,omitempty"`
	Image    *string `json:"image,omitempty"`
	Status   string  `json:"status,omitempty"`
}

// PostUpdate is a partial update; only the keys present are sent.
type PostUpdate map[string]any

// CategoryInput is the body of a category create request.
type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CategoryUpdate is a partial category update.
type CategoryUpdate map[string]any

// APIError is returned for every non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("blog api: status %d", e.Status)
	}
	return fmt.Sprintf("blog api: status %d: %s", e.Status, e.Message)
}

// Client talks to the blog API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// New returns a Client for the API rooted at baseURL (e.g. http://localhost:5000).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListPosts fetches one page of posts.
func (c *Client) ListPosts(ctx context.Context, params ListParams) (*PostPage, error) {
	query := url.Values{}
	if params.Page > 0 {
		query.Set("page", strconv.Itoa(params.Page))
	}
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Search != "" {
		query.Set("search", params.Search)
	}
	if params.Category != "" {
		query.Set("category", params.Category)
	}

	path := "/api/posts"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var page PostPage
	if err := c.do(ctx, http.MethodGet, path, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetPost fetches a single post.
func (c *Client) GetPost(ctx context.Context, id string) (*Post, error) {
	var post Post
	if err := c.do(ctx, http.MethodGet, "/api/posts/"+url.PathEscape(id), nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// CreatePost creates a post.
func (c *Client) CreatePost(ctx context.Context, input PostInput) (*Post, error) {
	var post Post
	if err := c.do(ctx, http.MethodPost, "/api/posts", input, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdatePost applies a partial update.
func (c *Client) UpdatePost(ctx context.Context, id string, update PostUpdate) (*Post, error) {
	var post Post
	if err := c.do(ctx, http.MethodPut, "/api/posts/"+url.PathEscape(id), update, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// DeletePost deletes a post and returns the removed record.
func (c *Client) DeletePost(ctx context.Context, id string) (*Post, error) {
	var resp struct {
		Message string `json:"message"`
		Post    Post   `json:"post"`
	}
	if err := c.do(ctx, http.MethodDelete, "/api/posts/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Post, nil
}

// ListCategories fetches every category, sorted by name.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	categories := make([]Category, 0)
	if err := c.do(ctx, http.MethodGet, "/api/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// GetCategory fetches a single category.
func (c *Client) GetCategory(ctx context.Context, id string) (*Category, error) {
	var category Category
	if err := c.do(ctx, http.MethodGet, "/api/categories/"+url.PathEscape(id), nil, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// CreateCategory creates a category.
func (c *Client) CreateCategory(ctx context.Context, input CategoryInput) (*Category, error) {
	var category Category
	if err := c.do(ctx, http.MethodPost, "/api/categories", input, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// UpdateCategory applies a partial category update.
func (c *Client) UpdateCategory(ctx context.Context, id string, update CategoryUpdate) (*Category, error) {
	var category Category
	if err := c.do(ctx, http.MethodPut, "/api/categories/"+url.PathEscape(id), update, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// DeleteCategory deletes a category and returns the removed record.
func (c *Client) DeleteCategory(ctx context.Context, id string) (*Category, error) {
	var resp struct {
		Message  string   `json:"message"`
		Category Category `json:"category"`
	}
	if err := c.do(ctx, http.MethodDelete, "/api/categories/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Category, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		var payload struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(data, &payload) == nil {
			apiErr.Message = payload.Message
		}
		return apiErr
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
