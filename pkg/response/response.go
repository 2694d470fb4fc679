package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the unified API response format.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ListData wraps a collection so list endpoints share one shape.
type ListData[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// AppError is an error that knows its HTTP status and application code.
// Code defaults to the HTTP status; conflicts use finer 409xx codes.
type AppError struct {
	HTTPStatus int
	Code       int
	Message    string
}

func (e *AppError) Error() string {
	return e.Message
}

func newAppError(status int, msg string) *AppError {
	return &AppError{HTTPStatus: status, Code: status, Message: msg}
}

func NewBadRequest(msg string) *AppError   { return newAppError(http.StatusBadRequest, msg) }
func NewUnauthorized(msg string) *AppError { return newAppError(http.StatusUnauthorized, msg) }
func NewForbidden(msg string) *AppError    { return newAppError(http.StatusForbidden, msg) }
func NewNotFound(msg string) *AppError     { return newAppError(http.StatusNotFound, msg) }
func NewConflict(msg string) *AppError     { return newAppError(http.StatusConflict, msg) }
func NewServerError(msg string) *AppError  { return newAppError(http.StatusInternalServerError, msg) }
func NewUnavailable(msg string) *AppError  { return newAppError(http.StatusServiceUnavailable, msg) }

func NewTooManyRequests(msg string) *AppError {
	return newAppError(http.StatusTooManyRequests, msg)
}

// NewConflictCode builds a 409 with a specific application code, so clients
// can tell "already applied" from "project full" without matching messages.
func NewConflictCode(code int, msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusConflict, Code: code, Message: msg}
}

// --- Gin response helpers ---

// Success sends a 200 OK response with data.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Code: 0, Message: "ok", Data: data})
}

// Created sends a 201 Created response with data.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Code: 0, Message: "created", Data: data})
}

// List sends a 200 OK response with items and their count. A nil slice is
// rendered as an empty list.
func List[T any](c *gin.Context, items []T) {
	if items == nil {
		items = []T{}
	}
	Success(c, ListData[T]{Items: items, Total: len(items)})
}

// Error sends an error response. An *AppError anywhere in the chain decides
// status and code; any other error becomes a 500 without its text.
func Error(c *gin.Context, err error) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		appErr = NewServerError("internal server error")
	}
	c.JSON(appErr.HTTPStatus, Response{Code: appErr.Code, Message: appErr.Message})
}

func BadRequest(c *gin.Context, msg string)      { Error(c, NewBadRequest(msg)) }
func Unauthorized(c *gin.Context, msg string)    { Error(c, NewUnauthorized(msg)) }
func Forbidden(c *gin.Context, msg string)       { Error(c, NewForbidden(msg)) }
func NotFound(c *gin.Context, msg string)        { Error(c, NewNotFound(msg)) }
func TooManyRequests(c *gin.Context, msg string) { Error(c, NewTooManyRequests(msg)) }
func ServerError(c *gin.Context, msg string)     { Error(c, NewServerError(msg)) }
