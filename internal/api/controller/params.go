package controller

import (
	"fmt"
	"strconv"

	"github.com/containerd/errdefs"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// positiveParam reads a 1-based path parameter.
func positiveParam(c *gin.Context, name string) (int, error) {
	return positive(name, c.Param(name))
}

// positiveQuery reads a 1-based query parameter.
func positiveQuery(c *gin.Context, name string) (int, error) {
	return positive(name, c.Query(name))
}

func positive(name, raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q: %w", name, raw, errdefs.ErrInvalidArgument)
	}
	return n, nil
}

// bindJSON decodes and validates a request body. An empty body leaves dst
// untouched but is still validated.
func bindJSON(c *gin.Context, dst any) error {
	if c.Request.ContentLength == 0 {
		return validateStruct(dst)
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		return fmt.Errorf("invalid payload: %w", errdefs.ErrInvalidArgument)
	}
	return validateStruct(dst)
}

func validateStruct(dst any) error {
	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("%v: %w", err, errdefs.ErrInvalidArgument)
	}
	return nil
}
