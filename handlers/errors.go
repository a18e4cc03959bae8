package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"catalog/pkg/errx"
	"catalog/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

func respondError(c *gin.Context, err error) {
	appErr := errx.FromRepository(err)
	if appErr.Status >= http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
	}
	c.JSON(appErr.Status, gin.H{"error": appErr.Message})
}

// respondBindError reports a failed ShouldBind* call with per-field messages
// when the validator produced them.
func respondBindError(c *gin.Context, err error) {
	fields := fieldErrors(err)
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "fields": fields})
}

func fieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[toSnake(fe.Field())] = fieldMessage(fe)
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		return fmt.Sprintf("Ensure this value is at least %s.", fe.Param())
	case "max":
		return fmt.Sprintf("Ensure this value is at most %s.", fe.Param())
	case "oneof":
		return fmt.Sprintf("Select one of: %s.", fe.Param())
	}
	return "Enter a valid value."
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && !(s[i-1] >= 'A' && s[i-1] <= 'Z') {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + param})
		return 0, false
	}
	return uint(id), true
}
