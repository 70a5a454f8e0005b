package service

import (
	"errors"
	"strings"
	"testing"
)

func TestValidatorPostBoundaries(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name      string
		title     string
		content   string
		author    string
		status    string
		badFields []string
	}{
		{name: "valid at exact minimums", title: "abc", content: strings.Repeat("x", 10), author: "a", status: "draft"},
		{name: "title too short", title: "ab", content: strings.Repeat("x", 10), author: "a", status: "published", badFields: []string{"title"}},
		{name: "content too short", title: "abc", content: strings.Repeat("x", 9), author: "a", status: "published", badFields: []string{"content"}},
		{name: "everything missing", status: "published", badFields: []string{"title", "content", "author"}},
		{name: "unknown status", title: "abc", content: strings.Repeat("x", 10), author: "a", status: "archived", badFields: []string{"status"}},
		{name: "multibyte title counts runes", title: "日本語", content: strings.Repeat("字", 10), author: "作者", status: "published"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Post(tt.title, tt.content, tt.author, tt.status)
			if len(tt.badFields) == 0 {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if len(verr.Fields) != len(tt.badFields) {
				t.Fatalf("expected %d field errors, got %+v", len(tt.badFields), verr.Fields)
			}
			for _, field := range tt.badFields {
				if !verr.Has(field) {
					t.Fatalf("expected %s to be rejected, got %+v", field, verr.Fields)
				}
			}
		})
	}
}

func TestValidatorMessages(t *testing.T) {
	v := NewValidator()

	var verr *ValidationError
	if err := v.Post("ab", "", "a", "bogus"); !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}

	messages := map[string]string{}
	for _, f := range verr.Fields {
		messages[f.Field] = f.Message
	}

	want := map[string]string{
		"title":   "Title must be at least 3 characters",
		"content": "Content is required",
		"status":  "Status must be one of: draft, published",
	}
	for field, message := range want {
		if messages[field] != message {
			t.Fatalf("field %s: expected %q, got %q", field, message, messages[field])
		}
	}
}

func TestValidatorCategoryName(t *testing.T) {
	v := NewValidator()

	if err := v.Category("go"); err != nil {
		t.Fatalf("expected two-character name to pass, got %v", err)
	}

	err := v.Category("g")
	if err == nil || err.Error() != "Category name must be at least 2 characters" {
		t.Fatalf("unexpected error for short name: %v", err)
	}

	err = v.Category("")
	if err == nil || err.Error() != "Category name is required" {
		t.Fatalf("unexpected error for empty name: %v", err)
	}
}
