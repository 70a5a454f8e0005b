package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/blogapi/internal/db"
	"github.com/blogapi/internal/service"
	"github.com/gin-gonic/gin"
)

const missingPostFieldsMessage = "Title, content, and author are required"

type createPostRequest struct {
	Title    string         `json:"title"`
	Content  string         `json:"content"`
	Author   string         `json:"author"`
	Category optionalString `json:"category"`
	Image    optionalString `json:"image"`
	Status   string         `json:"status"`
}

type updatePostRequest struct {
	Title    *string        `json:"title"`
	Content  *string        `json:"content"`
	Author   *string        `json:"author"`
	Category optionalString `json:"category"`
	Image    optionalString `json:"image"`
	Status   *string        `json:"status"`
}

type categorySummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type postResponse struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Content   string           `json:"content"`
	Author    string           `json:"author"`
	Category  *categorySummary `json:"category"`
	Image     *string          `json:"image"`
	Status    string           `json:"status"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

func newPostResponse(post *db.Post) postResponse {
	resp := postResponse{
		ID:        post.ID,
		Title:     post.Title,
		Content:   post.Content,
		Author:    post.Author,
		Image:     post.Image,
		Status:    post.Status,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
	if post.Category != nil {
		resp.Category = &categorySummary{ID: post.Category.ID, Name: post.Category.Name}
	}
	return resp
}

// ListPosts 获取分页文章列表，支持搜索与分类筛选
func (a *API) ListPosts(c *gin.Context) {
	filter := service.PostFilter{
		Search:     c.Query("search"),
		CategoryID: strings.TrimSpace(c.Query("category")),
		Page:       parsePositiveInt(c.Query("page"), service.DefaultPage),
		Limit:      parsePositiveInt(c.Query("limit"), service.DefaultLimit),
	}

	result, err := a.posts.List(filter)
	if err != nil {
		a.respondInternal(c, "Error fetching posts", err)
		return
	}

	posts := make([]postResponse, 0, len(result.Posts))
	for i := range result.Posts {
		posts = append(posts, newPostResponse(&result.Posts[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"posts":       posts,
		"totalPages":  result.TotalPages,
		"currentPage": result.Page,
		"totalPosts":  result.Total,
	})
}

// GetPost 获取单篇文章
func (a *API) GetPost(c *gin.Context) {
	post, err := a.posts.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			respondError(c, http.StatusNotFound, "Post not found")
			return
		}
		a.respondInternal(c, "Error fetching post", err)
		return
	}

	c.JSON(http.StatusOK, newPostResponse(post))
}

// CreatePost 创建新文章
func (a *API) CreatePost(c *gin.Context) {
	var req createPostRequest
	if !bindJSON(c, &req, "Invalid post payload") {
		return
	}

	post, err := a.posts.Create(service.PostInput{
		Title:      req.Title,
		Content:    req.Content,
		Author:     req.Author,
		CategoryID: req.Category.Value,
		Image:      req.Image.Value,
		Status:     req.Status,
	})
	if err != nil {
		if verr, ok := asValidationError(err); ok {
			message := ""
			if isBlank(req.Title) || isBlank(req.Content) || isBlank(req.Author) {
				message = missingPostFieldsMessage
			}
			respondValidation(c, verr, message)
			return
		}
		a.respondInternal(c, "Error creating post", err)
		return
	}

	c.JSON(http.StatusCreated, newPostResponse(post))
}

// UpdatePost 部分更新文章，未提供的字段保持不变
func (a *API) UpdatePost(c *gin.Context) {
	var req updatePostRequest
	if !bindJSON(c, &req, "Invalid post payload") {
		return
	}

	post, err := a.posts.Update(c.Param("id"), service.PostPatch{
		Title:      req.Title,
		Content:    req.Content,
		Author:     req.Author,
		CategoryID: req.Category.clearable(),
		Image:      req.Image.clearable(),
		Status:     req.Status,
	})
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			respondError(c, http.StatusNotFound, "Post not found")
			return
		}
		if verr, ok := asValidationError(err); ok {
			respondValidation(c, verr, "")
			return
		}
		a.respondInternal(c, "Error updating post", err)
		return
	}

	c.JSON(http.StatusOK, newPostResponse(post))
}

// DeletePost 删除文章
func (a *API) DeletePost(c *gin.Context) {
	post, err := a.posts.Delete(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			respondError(c, http.StatusNotFound, "Post not found")
			return
		}
		a.respondInternal(c, "Error deleting post", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Post deleted successfully",
		"post":    newPostResponse(post),
	})
}

// PreviewPost renders the post content as sanitized HTML.
func (a *API) PreviewPost(c *gin.Context) {
	preview, err := a.posts.Preview(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			respondError(c, http.StatusNotFound, "Post not found")
			return
		}
		a.respondInternal(c, "Error rendering post", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":    preview.ID,
		"title": preview.Title,
		"html":  preview.HTML,
	})
}

func isBlank(value string) bool {
	return strings.TrimSpace(value) == ""
}
