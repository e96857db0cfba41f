// Package errors provides custom error types for the development catalog.
package errors

import "errors"

var ErrProductNotFound = errors.New("product not found")
