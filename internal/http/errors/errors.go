// Package errors centralizes request-scoped error logging and the JSON error
// responses of the API.
package errors

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

// InternalError logs the real error with the request ID and answers with a
// generic message so internals never leak to the client.
func InternalError(w http.ResponseWriter, r *http.Request, err error, message string) {
	logf(r, "ERROR", "%s: %v", message, err)
	writeJSON(w, http.StatusInternalServerError, "internal server error")
}

// BadRequestError logs the error and answers 400 with the client message.
func BadRequestError(w http.ResponseWriter, r *http.Request, err error, clientMessage string) {
	logf(r, "WARN", "bad request: %v", err)
	writeJSON(w, http.StatusBadRequest, clientMessage)
}

// UnprocessableError answers 422; used for rejected document imports. The
// message is actionable and shown to the user verbatim.
func UnprocessableError(w http.ResponseWriter, r *http.Request, err error) {
	logf(r, "WARN", "rejected document: %v", err)
	writeJSON(w, http.StatusUnprocessableEntity, err.Error())
}

// ConflictError answers 409; used for integration preconditions (disabled,
// missing URL) that fail before any network attempt.
func ConflictError(w http.ResponseWriter, r *http.Request, err error) {
	logf(r, "WARN", "precondition failed: %v", err)
	writeJSON(w, http.StatusConflict, err.Error())
}

// BadGatewayError answers 502 with the collaborator's message passed through
// verbatim.
func BadGatewayError(w http.ResponseWriter, r *http.Request, err error) {
	logf(r, "WARN", "collaborator error: %v", err)
	writeJSON(w, http.StatusBadGateway, err.Error())
}

// TooLargeError answers 413; used when an upload exceeds the configured limit.
func TooLargeError(w http.ResponseWriter, r *http.Request, clientMessage string) {
	logf(r, "WARN", "payload too large: %s", clientMessage)
	writeJSON(w, http.StatusRequestEntityTooLarge, clientMessage)
}

// NotFoundError answers 404 with the client message.
func NotFoundError(w http.ResponseWriter, r *http.Request, clientMessage string) {
	writeJSON(w, http.StatusNotFound, clientMessage)
}

// LogInfo logs an informational message with the request ID.
func LogInfo(r *http.Request, message string) {
	logf(r, "INFO", "%s", message)
}

func logf(r *http.Request, level, format string, args ...any) {
	requestID := middleware.GetReqID(r.Context())
	if requestID != "" {
		log.Printf("[%s] RequestID=%s: "+format, append([]any{level, requestID}, args...)...)
		return
	}
	log.Printf("[%s] "+format, append([]any{level}, args...)...)
}

func writeJSON(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
