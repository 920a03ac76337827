// Package http contains utility functions for request and response handling.
package http

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strconv"
)

type ErrorCode int

const (
	ErrorCodeInvalidRequestBody ErrorCode = 1
	ErrorCodeUnauthorized       ErrorCode = 2
	ErrorCodeNotFound           ErrorCode = 3
	ErrorCodeNotAllowed         ErrorCode = 4
	ErrorCodeStoryNotFound      ErrorCode = 5
	ErrorCodeFailedToStoreStory ErrorCode = 6
	ErrorCodeRateLimited        ErrorCode = 7
)

// JsonError writes an Error to the ResponseWriter with the provided information.
func JsonError(w http.ResponseWriter, responseCode int, code ErrorCode, msg string) {
	type ErrorResponse struct {
		Code    ErrorCode `json:"code"`
		Message string    `json:"message"`
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(responseCode)

	err := json.NewEncoder(w).Encode(ErrorResponse{Code: code, Message: msg})
	if err != nil {
		log.Printf("failed to encode response: %s", err.Error())
	}
}

// JsonSuccess writes a success response to the writer.
func JsonSuccess(w http.ResponseWriter) {
	type SuccessResponse struct {
		Success bool `json:"success"`
	}

	err := JsonEncode(w, SuccessResponse{Success: true})
	if err != nil {
		log.Printf("failed to encode response: %s", err.Error())
	}
}

// JsonEncode marshals an interface and writes it to the response.
func JsonEncode(w http.ResponseWriter, v interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(v)
}

// NotFoundHandler handles requests for unknown routes.
func NotFoundHandler(w http.ResponseWriter, _ *http.Request) {
	JsonError(w, http.StatusNotFound, ErrorCodeNotFound, "not found")
}

// NotAllowedHandler handles requests with unsupported methods.
func NotAllowedHandler(w http.ResponseWriter, _ *http.Request) {
	JsonError(w, http.StatusMethodNotAllowed, ErrorCodeNotAllowed, "not allowed")
}

// GetInt returns an integer parameter from the values, or the default when absent or malformed.
func GetInt(values url.Values, key string, defaultValue int) int {
	val := values.Get(key)
	if val == "" {
		return defaultValue
	}

	res, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}

	return res
}
