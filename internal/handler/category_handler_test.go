package handler

import (
	"net/http"
	"testing"
)

func TestCreateCategoryDuplicateName(t *testing.T) {
	api := setupTestAPI(t, Options{})

	w := perform(t, api.CreateCategory, http.MethodPost, "/api/categories", map[string]any{"name": "Go"}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	created := decodeBody(t, w)
	if created["description"] != "" || created["slug"] != "go" {
		t.Fatalf("unexpected category payload: %v", created)
	}

	w = perform(t, api.CreateCategory, http.MethodPost, "/api/categories", map[string]any{"name": "  Go "}, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if body := decodeBody(t, w); body["message"] != "Category already exists" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
}

func TestCreateCategoryValidation(t *testing.T) {
	api := setupTestAPI(t, Options{})

	w := perform(t, api.CreateCategory, http.MethodPost, "/api/categories", map[string]any{"name": " "}, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if body := decodeBody(t, w); body["message"] != "Category name is required" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
}

func TestUpdateCategoryDuplicateName(t *testing.T) {
	api := setupTestAPI(t, Options{})

	perform(t, api.CreateCategory, http.MethodPost, "/", map[string]any{"name": "Go"}, nil)
	w := perform(t, api.CreateCategory, http.MethodPost, "/", map[string]any{"name": "Gin", "description": "web"}, nil)
	id := decodeBody(t, w)["id"].(string)

	w = perform(t, api.UpdateCategory, http.MethodPut, "/", map[string]any{"name": "Go"}, idParam(id))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	w = perform(t, api.UpdateCategory, http.MethodPut, "/", map[string]any{"description": "framework"}, idParam(id))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	updated := decodeBody(t, w)
	if updated["name"] != "Gin" || updated["description"] != "framework" {
		t.Fatalf("unexpected updated category: %v", updated)
	}

	w = perform(t, api.UpdateCategory, http.MethodPut, "/", map[string]any{"name": "Other"}, idParam("missing"))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestDeleteCategoryKeepsPosts(t *testing.T) {
	api := setupTestAPI(t, Options{})

	w := perform(t, api.CreateCategory, http.MethodPost, "/", map[string]any{"name": "Temp"}, nil)
	categoryID := decodeBody(t, w)["id"].(string)

	post := createTestPost(t, api, map[string]any{
		"title":    "Tagged",
		"content":  "post in a category",
		"author":   "dan",
		"category": categoryID,
	})
	postID := post["id"].(string)

	w = perform(t, api.DeleteCategory, http.MethodDelete, "/", nil, idParam(categoryID))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["message"] != "Category deleted successfully" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
	if body["category"].(map[string]any)["name"] != "Temp" {
		t.Fatalf("expected deleted category in body")
	}

	w = perform(t, api.GetPost, http.MethodGet, "/", nil, idParam(postID))
	if w.Code != http.StatusOK {
		t.Fatalf("expected post to survive category delete, got %d", w.Code)
	}
	if got := decodeBody(t, w); got["category"] != nil {
		t.Fatalf("expected dangling category to render as null, got %v", got["category"])
	}

	w = perform(t, api.GetCategory, http.MethodGet, "/", nil, idParam(categoryID))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", w.Code)
	}
	w = perform(t, api.DeleteCategory, http.MethodDelete, "/", nil, idParam(categoryID))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", w.Code)
	}
}

func TestListCategoriesReturnsArray(t *testing.T) {
	api := setupTestAPI(t, Options{})

	w := perform(t, api.ListCategories, http.MethodGet, "/api/categories", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Body.String() != "[]" {
		t.Fatalf("expected empty array, got %s", w.Body.String())
	}
}
