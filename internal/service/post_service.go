package service

import (
	"errors"
	"strings"

	"github.com/blogapi/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrPostNotFound = errors.New("post not found")

// Paging defaults applied when the caller omits or mangles page/limit.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// PostService wraps post related database operations.
type PostService struct {
	db         *gorm.DB
	categories *CategoryService
	validator  *Validator
}

// PostFilter describes filters for listing posts.
type PostFilter struct {
	Search     string
	CategoryID string
	Page       int
	Limit      int
}

// PostListResult aggregates one page of posts and its counters.
type PostListResult struct {
	Posts      []db.Post
	Total      int64
	TotalPages int
	Page       int
	Limit      int
}

// PostInput represents fields accepted when creating a post.
type PostInput struct {
	Title      string
	Content    string
	Author     string
	CategoryID *string
	Image      *string
	Status     string
}

// PostPatch represents a partial post update. Nil fields keep their stored
// value; an empty CategoryID or Image clears the field.
type PostPatch struct {
	Title      *string
	Content    *string
	Author     *string
	CategoryID *string
	Image      *string
	Status     *string
}

// NewPostService creates a PostService instance.
func NewPostService(gdb *gorm.DB, categories *CategoryService, v *Validator) *PostService {
	if v == nil {
		v = NewValidator()
	}
	if categories == nil {
		categories = NewCategoryService(gdb, v)
	}
	return &PostService{db: gdb, categories: categories, validator: v}
}

// List provides a page of posts, newest first, with categories resolved.
func (s *PostService) List(filter PostFilter) (*PostListResult, error) {
	result := &PostListResult{Page: filter.Page, Limit: filter.Limit}
	if result.Page <= 0 {
		result.Page = DefaultPage
	}
	if result.Limit <= 0 {
		result.Limit = DefaultLimit
	}
	if result.Limit > MaxLimit {
		result.Limit = MaxLimit
	}

	countQuery := s.applyFilters(s.db.Model(&db.Post{}), filter)
	if err := countQuery.Count(&result.Total).Error; err != nil {
		return nil, err
	}

	offset := (result.Page - 1) * result.Limit

	posts := make([]db.Post, 0)
	dataQuery := s.applyFilters(s.db.Model(&db.Post{}).Preload("Category"), filter)
	if err := dataQuery.
		Order("posts.created_at desc").
		Order("posts.id desc").
		Limit(result.Limit).
		Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, err
	}

	result.TotalPages = int((result.Total + int64(result.Limit) - 1) / int64(result.Limit))
	result.Posts = posts
	return result, nil
}

// Get fetches a post by id with its category resolved.
func (s *PostService) Get(id string) (*db.Post, error) {
	var post db.Post
	if err := s.db.Preload("Category").Where("id = ?", id).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// Create validates and persists a new post.
func (s *PostService) Create(input PostInput) (*db.Post, error) {
	post := db.Post{
		Title:      strings.TrimSpace(input.Title),
		Content:    strings.TrimSpace(input.Content),
		Author:     strings.TrimSpace(input.Author),
		CategoryID: normalizeOptional(input.CategoryID),
		Image:      normalizeOptional(input.Image),
		Status:     strings.TrimSpace(input.Status),
	}
	if post.Status == "" {
		post.Status = db.StatusPublished
	}

	if err := s.validate(&post); err != nil {
		return nil, err
	}

	if err := s.db.Omit(clause.Associations).Create(&post).Error; err != nil {
		return nil, err
	}

	return s.Get(post.ID)
}

// Update applies a partial update to an existing post.
func (s *PostService) Update(id string, patch PostPatch) (*db.Post, error) {
	var post db.Post
	if err := s.db.Where("id = ?", id).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	if patch.Title != nil {
		post.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Content != nil {
		post.Content = strings.TrimSpace(*patch.Content)
	}
	if patch.Author != nil {
		post.Author = strings.TrimSpace(*patch.Author)
	}
	if patch.Status != nil {
		post.Status = strings.TrimSpace(*patch.Status)
	}
	if patch.CategoryID != nil {
		post.CategoryID = normalizeOptional(patch.CategoryID)
	}
	if patch.Image != nil {
		post.Image = normalizeOptional(patch.Image)
	}

	// Only a newly supplied reference is checked; an untouched stale one is kept.
	checkCategory := patch.CategoryID != nil
	if err := s.validateFields(&post, checkCategory); err != nil {
		return nil, err
	}

	if err := s.db.Omit(clause.Associations).Save(&post).Error; err != nil {
		return nil, err
	}

	return s.Get(post.ID)
}

// Delete removes a post by id and returns the removed record.
func (s *PostService) Delete(id string) (*db.Post, error) {
	post, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if err := s.db.Where("id = ?", post.ID).Delete(&db.Post{}).Error; err != nil {
		return nil, err
	}

	return post, nil
}

func (s *PostService) validate(post *db.Post) error {
	return s.validateFields(post, true)
}

func (s *PostService) validateFields(post *db.Post, checkCategory bool) error {
	if err := s.validator.Post(post.Title, post.Content, post.Author, post.Status); err != nil {
		return err
	}

	if !checkCategory || post.CategoryID == nil {
		return nil
	}

	exists, err := s.categories.Exists(*post.CategoryID)
	if err != nil {
		return err
	}
	if !exists {
		return newValidationError("category", "Category does not exist")
	}
	return nil
}

func (s *PostService) applyFilters(query *gorm.DB, filter PostFilter) *gorm.DB {
	if filter.Search != "" {
		// LOWER on both sides keeps every stored substring matchable even where
		// the store folds only ASCII; the Go-folded term adds Unicode case folding.
		pattern := "%" + escapeLike(filter.Search) + "%"
		folded := "%" + escapeLike(strings.ToLower(filter.Search)) + "%"

		conditions := make([]string, 0, len(searchColumns))
		args := make([]interface{}, 0, 2*len(searchColumns))
		for _, column := range searchColumns {
			conditions = append(conditions,
				"LOWER("+column+`) LIKE LOWER(?) ESCAPE '\' OR LOWER(`+column+`) LIKE ? ESCAPE '\'`)
			args = append(args, pattern, folded)
		}
		query = query.Where("("+strings.Join(conditions, " OR ")+")", args...)
	}

	if filter.CategoryID != "" {
		query = query.Where("posts.category_id = ?", filter.CategoryID)
	}

	return query
}

var searchColumns = []string{"posts.title", "posts.content", "posts.author"}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}

// normalizeOptional trims an optional value and maps blank to nil.
func normalizeOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
