// Package web defines common components for a web application.
package web

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Response holds the common response type for all APIs.
type Response struct {
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

// Error wraps a given err into a json friendly response.
func Error(err error) Response {
	return Response{Error: err.Error()}
}

// GetErrorMsg returns a human readable message for a failed binding validation.
func GetErrorMsg(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return " field is required"
	case "min":
		return fmt.Sprintf(" field must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf(" field must be at most %s characters", fe.Param())
	case "gt":
		return fmt.Sprintf(" field must be greater than %s", fe.Param())
	case "amount":
		return " field must be a positive amount with at most 2 decimal places"
	}

	return " field is invalid"
}
