// Package jsonutil provides helper functions for JSON API responses.
//
// Every handler writes through these helpers so success bodies carry the
// JSON Content-Type and error bodies share the {"error", "details"} shape.
package jsonutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dalemusser/stratatrips/internal/app/store/storeutil"
	"go.uber.org/zap"
)

// MaxBodyBytes bounds JSON request bodies read by Decode.
const MaxBodyBytes = 1 << 20

// ErrBodyTooLarge is returned by Decode when the body exceeds MaxBodyBytes.
var ErrBodyTooLarge = errors.New("request body too large")

// JSON writes a JSON response with the given status code.
//
// Usage:
//
//	jsonutil.JSON(w, http.StatusOK, map[string]any{
//	    "packages": list,
//	})
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// OK writes a 200 OK JSON response.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

// Created writes a 201 Created JSON response.
func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, data)
}

// Success writes {"success": true}, the body for deletes and other
// mutations that return nothing else.
func Success(w http.ResponseWriter) {
	JSON(w, http.StatusOK, map[string]bool{"success": true})
}

// ErrorBody is the shape of every error response.
type ErrorBody struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// Error writes an error response with the given status code.
// The response body is {"error": message}.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, ErrorBody{Error: message})
}

// BadRequest writes a 400 Bad Request error response.
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, message)
}

// Unauthorized writes a 401 Unauthorized error response.
func Unauthorized(w http.ResponseWriter, message string) {
	Error(w, http.StatusUnauthorized, message)
}

// Forbidden writes a 403 Forbidden error response.
func Forbidden(w http.ResponseWriter, message string) {
	Error(w, http.StatusForbidden, message)
}

// NotFound writes a 404 Not Found error response.
func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, message)
}

// Conflict writes a 409 Conflict error response.
func Conflict(w http.ResponseWriter, message string) {
	Error(w, http.StatusConflict, message)
}

// PayloadTooLarge writes a 413 error response.
func PayloadTooLarge(w http.ResponseWriter, message string) {
	Error(w, http.StatusRequestEntityTooLarge, message)
}

// TooManyRequests writes a 429 error response.
func TooManyRequests(w http.ResponseWriter, message string) {
	Error(w, http.StatusTooManyRequests, message)
}

// ServiceUnavailable writes a 503 error response.
func ServiceUnavailable(w http.ResponseWriter, message string) {
	Error(w, http.StatusServiceUnavailable, message)
}

// InternalError writes a 500 Internal Server Error response.
// Do not expose internal details to clients; log the actual error separately.
func InternalError(w http.ResponseWriter, message string) {
	Error(w, http.StatusInternalServerError, message)
}

// ValidationError writes a 400 Bad Request response with field-level errors.
//
// Usage:
//
//	jsonutil.ValidationError(w, map[string]string{
//	    "email": "must be a valid email address",
//	})
func ValidationError(w http.ResponseWriter, details any) {
	JSON(w, http.StatusBadRequest, ErrorBody{
		Error:   "Validation failed",
		Details: details,
	})
}

// StoreError maps the store sentinel errors onto status codes. entity names
// the resource in the 404 message, e.g. "Package" gives "Package not found".
// Anything unrecognised is logged and answered with a generic 500.
func StoreError(w http.ResponseWriter, r *http.Request, log *zap.Logger, entity string, err error) {
	switch {
	case errors.Is(err, storeutil.ErrInvalidID):
		BadRequest(w, "Invalid id")
	case errors.Is(err, storeutil.ErrNotFound):
		NotFound(w, entity+" not found")
	case errors.Is(err, storeutil.ErrSlugExists):
		Conflict(w, "Slug already exists")
	case errors.Is(err, storeutil.ErrDuplicate):
		Conflict(w, entity+" already exists")
	default:
		log.Error("store operation failed",
			zap.String("entity", entity),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
		InternalError(w, "Internal server error")
	}
}

// Decode reads a single JSON object from the request body into v.
// Unknown fields, trailing data and bodies over MaxBodyBytes are rejected.
// The error text is safe to return to the client.
func Decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return describe(err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}

func describe(err error) error {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var maxErr *http.MaxBytesError

	switch {
	case errors.Is(err, io.EOF):
		return errors.New("request body is empty")
	case errors.Is(err, io.ErrUnexpectedEOF):
		return errors.New("request body contains malformed JSON")
	case errors.As(err, &syntaxErr):
		return fmt.Errorf("request body contains malformed JSON (at position %d)", syntaxErr.Offset)
	case errors.As(err, &typeErr):
		if typeErr.Field != "" {
			return fmt.Errorf("field %q has the wrong type", typeErr.Field)
		}
		return errors.New("request body has the wrong type")
	case errors.As(err, &maxErr):
		return ErrBodyTooLarge
	}
	if field, ok := strings.CutPrefix(err.Error(), "json: unknown field "); ok {
		return fmt.Errorf("unknown field %s", field)
	}
	return errors.New("invalid request body")
}
