package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/blogapi/internal/service"
	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

func respondValidation(c *gin.Context, verr *service.ValidationError, message string) {
	if message == "" && len(verr.Fields) > 0 {
		message = verr.Fields[0].Message
	}
	if message == "" {
		message = "Validation failed"
	}
	c.JSON(http.StatusBadRequest, gin.H{"message": message, "errors": verr.Fields})
}

// respondInternal logs err and answers 500; the error text is only
// included when the API was built to expose it.
func (a *API) respondInternal(c *gin.Context, message string, err error) {
	a.log.Error(message,
		"error", err,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	)

	body := gin.H{"message": message}
	if a.exposeErrors && err != nil {
		body["error"] = err.Error()
	}
	c.JSON(http.StatusInternalServerError, body)
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

func asValidationError(err error) (*service.ValidationError, bool) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

// parsePositiveInt returns fallback for blank, non-numeric, zero or negative input.
func parsePositiveInt(raw string, fallback int) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

// optionalString tells an omitted JSON field apart from an explicit null.
type optionalString struct {
	Set   bool
	Value *string
}

func (o *optionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}

	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	o.Value = &value
	return nil
}

// clearable maps the field onto service patch semantics: nil when omitted,
// an empty string when explicitly null.
func (o optionalString) clearable() *string {
	if !o.Set {
		return nil
	}
	if o.Value == nil {
		empty := ""
		return &empty
	}
	return o.Value
}
