package client

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/blogapi/internal/db"
	"github.com/blogapi/internal/router"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestServer(t *testing.T) *Client {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:client-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))

	r := router.SetupRouter(gdb, router.Options{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	srv := httptest.NewServer(r)
	t.Cleanup(func() {
		srv.Close()
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return New(srv.URL+"/", WithHTTPClient(srv.Client()))
}

func TestClientPostLifecycle(t *testing.T) {
	c := newTestServer(t)
	ctx := context.Background()

	category, err := c.CreateCategory(ctx, CategoryInput{Name: "Guides", Description: "how-tos"})
	require.NoError(t, err)
	assert.Equal(t, "guides", category.Slug)

	categoryID := category.ID
	post, err := c.CreatePost(ctx, PostInput{
		Title:    "Getting started",
		Content:  "install and run the thing",
		Author:   "maria",
		Category: &categoryID,
	})
	require.NoError(t, err)
	require.NotNil(t, post.Category)
	assert.Equal(t, "Guides", post.Category.Name)
	assert.Equal(t, "published", post.Status)
	assert.Nil(t, post.Image)

	fetched, err := c.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, post.Title, fetched.Title)

	updated, err := c.UpdatePost(ctx, post.ID, PostUpdate{"category": nil, "status": "draft"})
	require.NoError(t, err)
	assert.Nil(t, updated.Category)
	assert.Equal(t, "draft", updated.Status)
	assert.Equal(t, "Getting started", updated.Title)

	page, err := c.ListPosts(ctx, ListParams{Search: "install", Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.TotalPosts)
	assert.Equal(t, 1, page.CurrentPage)
	require.Len(t, page.Posts, 1)

	deleted, err := c.DeletePost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, post.ID, deleted.ID)

	_, err = c.GetPost(ctx, post.ID)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "Post not found", apiErr.Message)
}

func TestClientCategoryErrors(t *testing.T) {
	c := newTestServer(t)
	ctx := context.Background()

	created, err := c.CreateCategory(ctx, CategoryInput{Name: "Dup"})
	require.NoError(t, err)

	_, err = c.CreateCategory(ctx, CategoryInput{Name: "Dup"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Category already exists", apiErr.Message)

	renamed, err := c.UpdateCategory(ctx, created.ID, CategoryUpdate{"name": "Unique"})
	require.NoError(t, err)
	assert.Equal(t, "Unique", renamed.Name)

	list, err := c.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	got, err := c.GetCategory(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Unique", got.Name)

	removed, err := c.DeleteCategory(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, removed.ID)

	_, err = c.DeleteCategory(ctx, created.ID)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestAPIErrorString(t *testing.T) {
	assert.Equal(t, "blog api: status 500", (&APIError{Status: 500}).Error())
	assert.Equal(t, "blog api: status 404: Post not found", (&APIError{Status: 404, Message: "Post not found"}).Error())
}
