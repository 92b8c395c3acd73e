// Package response defines the JSON envelope every handler replies with.
// Successful replies carry data, failed ones a stable error code plus a
// human-readable message; clients switch on the success flag and the code.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the envelope written on every API reply.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

// ErrorInfo names what went wrong.
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Success writes a 200 reply wrapping data.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

// Created writes a 201 reply wrapping data.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Success: true, Data: data})
}

func fail(c *gin.Context, status int, code, message string) {
	c.JSON(status, Response{
		Success: false,
		Error:   &ErrorInfo{Code: code, Message: message},
	})
}

// BadRequest writes a 400 reply for validation failures.
func BadRequest(c *gin.Context, message string) {
	fail(c, http.StatusBadRequest, "BAD_REQUEST", message)
}

// Unauthorized writes a 401 reply for missing or invalid credentials.
func Unauthorized(c *gin.Context, message string) {
	fail(c, http.StatusUnauthorized, "UNAUTHORIZED", message)
}

// Forbidden writes a 403 reply for ownership violations.
func Forbidden(c *gin.Context, message string) {
	fail(c, http.StatusForbidden, "FORBIDDEN", message)
}

// NotFound writes a 404 reply.
func NotFound(c *gin.Context, message string) {
	fail(c, http.StatusNotFound, "NOT_FOUND", message)
}

// Conflict writes a 409 reply for uniqueness collisions.
func Conflict(c *gin.Context, message string) {
	fail(c, http.StatusConflict, "CONFLICT", message)
}

// InternalError writes a 500 reply for unexpected failures.
func InternalError(c *gin.Context, message string) {
	fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", message)
}
