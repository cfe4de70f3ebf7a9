package utils

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"courtside/internal/shared/errors"
	"courtside/internal/shared/id"
)

// ParseUintParam parses a numeric URL path parameter.
// entityName is used in error messages (e.g., "course", "player card").
func ParseUintParam(c *gin.Context, paramName, entityName string) (uint, error) {
	raw := c.Param(paramName)
	if raw == "" {
		return 0, errors.NewValidationError(entityName + " ID is required")
	}

	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		return 0, errors.NewValidationError(fmt.Sprintf("invalid %s ID", entityName))
	}

	return uint(v), nil
}

// ParseUintQuery parses an optional numeric query parameter.
// Returns (0, nil) when the parameter is absent.
func ParseUintQuery(c *gin.Context, queryName, entityName string) (uint, error) {
	raw := c.Query(queryName)
	if raw == "" {
		return 0, nil
	}

	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		return 0, errors.NewValidationError(fmt.Sprintf("invalid %s ID", entityName))
	}

	return uint(v), nil
}

// ParseSIDParam parses and validates a Stripe-style prefixed ID from a URL path parameter.
// paramName is the Gin route parameter name (e.g., "id", "grant_id").
// prefix is the expected SID prefix (e.g., id.PrefixGrant).
// entityName is used in error messages (e.g., "grant", "redemption code").
func ParseSIDParam(c *gin.Context, paramName, prefix, entityName string) (string, error) {
	sid := c.Param(paramName)
	if sid == "" {
		return "", errors.NewValidationError(entityName + " ID is required")
	}

	if err := id.ValidatePrefix(sid, prefix); err != nil {
		return "", errors.NewValidationError(
			fmt.Sprintf("invalid %s ID format, expected %s_xxxxx", entityName, prefix),
		)
	}

	return sid, nil
}
