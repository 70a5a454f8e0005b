package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned when post or category input breaks a rule.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	messages := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		messages = append(messages, f.Message)
	}
	return strings.Join(messages, "; ")
}

// Has reports whether field is among the rejected fields.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

// postRules 描述文章写入前需要满足的规则
type postRules struct {
	Title   string `json:"title" validate:"required,min=3"`
	Content string `json:"content" validate:"required,min=10"`
	Author  string `json:"author" validate:"required"`
	Status  string `json:"status" validate:"required,oneof=draft published"`
}

type categoryRules struct {
	Name string `json:"name" validate:"required,min=2"`
}

var fieldLabels = map[string]string{
	"title":   "Title",
	"content": "Content",
	"author":  "Author",
	"status":  "Status",
	"name":    "Category name",
}

// Validator applies the field rules shared by the post and category services.
type Validator struct {
	validate *validator.Validate
}

// NewValidator builds a Validator reporting fields by their JSON names.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// Post checks normalized post fields. Values are expected to be trimmed.
func (v *Validator) Post(title, content, author, status string) error {
	return v.check(postRules{Title: title, Content: content, Author: author, Status: status})
}

// Category checks a normalized category name.
func (v *Validator) Category(name string) error {
	return v.check(categoryRules{Name: name})
}

func (v *Validator) check(rules interface{}) error {
	err := v.validate.Struct(rules)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	result := &ValidationError{Fields: make([]FieldError, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		result.Fields = append(result.Fields, FieldError{
			Field:   fe.Field(),
			Message: describeFieldError(fe),
		})
	}
	return result
}

func describeFieldError(fe validator.FieldError) string {
	label, ok := fieldLabels[fe.Field()]
	if !ok {
		label = fe.Field()
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}
