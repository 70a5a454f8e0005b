package handler

import (
	"errors"
	"net/http"

	"github.com/blogapi/internal/service"
	"github.com/gin-gonic/gin"
)

type createCategoryRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type updateCategoryRequest struct {
	Name        *string        `json:"name"`
	Description optionalString `json:"description"`
}

// ListCategories 获取分类列表，按名称排序
func (a *API) ListCategories(c *gin.Context) {
	categories, err := a.categories.List()
	if err != nil {
		a.respondInternal(c, "Error fetching categories", err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

// GetCategory 获取单个分类
func (a *API) GetCategory(c *gin.Context) {
	category, err := a.categories.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			respondError(c, http.StatusNotFound, "Category not found")
			return
		}
		a.respondInternal(c, "Error fetching category", err)
		return
	}

	c.JSON(http.StatusOK, category)
}

// CreateCategory 创建新分类
func (a *API) CreateCategory(c *gin.Context) {
	var req createCategoryRequest
	if !bindJSON(c, &req, "Invalid category payload") {
		return
	}

	input := service.CategoryInput{Name: req.Name}
	if req.Description != nil {
		input.Description = *req.Description
	}

	category, err := a.categories.Create(input)
	if err != nil {
		a.respondCategoryWriteError(c, err, "Error creating category")
		return
	}

	c.JSON(http.StatusCreated, category)
}

// UpdateCategory 更新分类
func (a *API) UpdateCategory(c *gin.Context) {
	var req updateCategoryRequest
	if !bindJSON(c, &req, "Invalid category payload") {
		return
	}

	category, err := a.categories.Update(c.Param("id"), service.CategoryPatch{
		Name:        req.Name,
		Description: req.Description.clearable(),
	})
	if err != nil {
		a.respondCategoryWriteError(c, err, "Error updating category")
		return
	}

	c.JSON(http.StatusOK, category)
}

// DeleteCategory 删除分类；引用该分类的文章保持原样
func (a *API) DeleteCategory(c *gin.Context) {
	category, err := a.categories.Delete(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			respondError(c, http.StatusNotFound, "Category not found")
			return
		}
		a.respondInternal(c, "Error deleting category", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Category deleted successfully",
		"category": category,
	})
}

func (a *API) respondCategoryWriteError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrCategoryExists):
		respondError(c, http.StatusBadRequest, "Category already exists")
	case errors.Is(err, service.ErrCategoryNotFound):
		respondError(c, http.StatusNotFound, "Category not found")
	default:
		if verr, ok := asValidationError(err); ok {
			respondValidation(c, verr, "")
			return
		}
		a.respondInternal(c, fallback, err)
	}
}
