package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/blogapi/internal/config"
	"github.com/blogapi/internal/db"
	"github.com/blogapi/internal/logger"
	"github.com/blogapi/internal/service"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type seedPost struct {
	Title    string
	Content  string
	Author   string
	Category string
	Status   string
}

var seedCategories = []service.CategoryInput{
	{Name: "Technology", Description: "Software, tools and the web"},
	{Name: "Lifestyle", Description: "Notes from everyday life"},
	{Name: "Tutorials", Description: "Step-by-step guides"},
}

var seedPosts = []seedPost{
	{
		Title:    "Getting started with Go",
		Content:  "# Getting started with Go\n\nInstall the toolchain, create a module and write your first handler.",
		Author:   "Ada",
		Category: "Tutorials",
		Status:   "published",
	},
	{
		Title:    "Why we moved to a single binary",
		Content:  "Shipping one static binary removed a whole class of deployment problems for us.",
		Author:   "Linus",
		Category: "Technology",
		Status:   "published",
	},
	{
		Title:    "Morning routines",
		Content:  "A short write-up on the small habits that make mornings calmer.",
		Author:   "Grace",
		Category: "Lifestyle",
		Status:   "draft",
	},
}

// 示例数据生成器
func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, "failed to read .env file:", err)
	}
	cfg := config.Load()
	log := logger.New(cfg.Env)

	created, err := run(cfg.DatabaseURL)
	if err != nil {
		log.Error("failed to seed data", "error", err)
		os.Exit(1)
	}
	log.Info("seed complete", "categories", created.categories, "posts", created.posts)
}

// run 打开数据库、写入示例数据，并在返回前关闭连接
func run(dsn string) (counts seedCounts, err error) {
	gdb, err := db.Open(dsn, gormlogger.Default.LogMode(gormlogger.Error))
	if err != nil {
		return counts, fmt.Errorf("initialize database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(gdb); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close database: %w", closeErr))
		}
	}()

	return seed(gdb)
}

type seedCounts struct {
	categories int
	posts      int
}

func seed(gdb *gorm.DB) (seedCounts, error) {
	var counts seedCounts

	validator := service.NewValidator()
	categories := service.NewCategoryService(gdb, validator)
	posts := service.NewPostService(gdb, categories, validator)

	ids := make(map[string]string, len(seedCategories))
	existing, err := categories.List()
	if err != nil {
		return counts, err
	}
	for _, category := range existing {
		ids[category.Name] = category.ID
	}

	for _, input := range seedCategories {
		if _, ok := ids[input.Name]; ok {
			continue
		}
		category, err := categories.Create(input)
		if err != nil && !errors.Is(err, service.ErrCategoryExists) {
			return counts, err
		}
		if category != nil {
			ids[category.Name] = category.ID
			counts.categories++
		}
	}

	var postCount int64
	if err := gdb.Model(&db.Post{}).Count(&postCount).Error; err != nil {
		return counts, err
	}
	if postCount > 0 {
		return counts, nil
	}

	for _, sp := range seedPosts {
		input := service.PostInput{
			Title:   sp.Title,
			Content: sp.Content,
			Author:  sp.Author,
			Status:  sp.Status,
		}
		if id, ok := ids[sp.Category]; ok {
			categoryID := id
			input.CategoryID = &categoryID
		}
		if _, err := posts.Create(input); err != nil {
			return counts, err
		}
		counts.posts++
	}

	return counts, nil
}
