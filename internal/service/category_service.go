package service

import (
	"errors"
	"strings"

	"github.com/blogapi/internal/db"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

var (
	ErrCategoryExists   = errors.New("category already exists")
	ErrCategoryNotFound = errors.New("category not found")
)

// CategoryService wraps category related operations.
type CategoryService struct {
	db        *gorm.DB
	validator *Validator
}

// CategoryInput holds the fields accepted when creating a category.
type CategoryInput struct {
	Name        string
	Description string
}

// CategoryPatch holds a partial category update. Nil fields are left as they are.
type CategoryPatch struct {
	Name        *string
	Description *string
}

// NewCategoryService creates a CategoryService instance.
func NewCategoryService(gdb *gorm.DB, v *Validator) *CategoryService {
	if v == nil {
		v = NewValidator()
	}
	return &CategoryService{db: gdb, validator: v}
}

// List returns every category ordered by name.
func (s *CategoryService) List() ([]db.Category, error) {
	categories := make([]db.Category, 0)
	if err := s.db.Order("name asc").Order("id asc").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Get fetches a category by id.
func (s *CategoryService) Get(id string) (*db.Category, error) {
	var category db.Category
	if err := s.db.Where("id = ?", id).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

// Create inserts a new category with a unique trimmed name.
func (s *CategoryService) Create(input CategoryInput) (*db.Category, error) {
	name := strings.TrimSpace(input.Name)
	if err := s.validator.Category(name); err != nil {
		return nil, err
	}

	if err := s.ensureNameAvailable(name, ""); err != nil {
		return nil, err
	}

	category := db.Category{
		Name:        name,
		Slug:        slug.Make(name),
		Description: input.Description,
	}
	if err := s.db.Create(&category).Error; err != nil {
		// The unique index catches writers that raced past the pre-check.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCategoryExists
		}
		return nil, err
	}

	return &category, nil
}

// Update applies a partial update while keeping names unique.
func (s *CategoryService) Update(id string, patch CategoryPatch) (*db.Category, error) {
	category, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if err := s.validator.Category(name); err != nil {
			return nil, err
		}
		if err := s.ensureNameAvailable(name, category.ID); err != nil {
			return nil, err
		}
		category.Name = name
		category.Slug = slug.Make(name)
	}

	if patch.Description != nil {
		category.Description = *patch.Description
	}

	if err := s.db.Save(category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCategoryExists
		}
		return nil, err
	}

	return category, nil
}

// Delete removes a category and returns the removed record.
// Posts referencing it keep the stale id.
func (s *CategoryService) Delete(id string) (*db.Category, error) {
	category, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if err := s.db.Where("id = ?", category.ID).Delete(&db.Category{}).Error; err != nil {
		return nil, err
	}

	return category, nil
}

// Exists reports whether a category with the given id is stored.
func (s *CategoryService) Exists(id string) (bool, error) {
	var count int64
	if err := s.db.Model(&db.Category{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *CategoryService) ensureNameAvailable(name, excludeID string) error {
	query := s.db.Model(&db.Category{}).Where("name = ?", name)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryExists
	}
	return nil
}
