package respond

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/hongminglow/society-be/internal/http/validation"
)

// ErrorBody is the shape of every non-validation error response.
type ErrorBody struct {
	Error string `json:"error"`
}

// ValidationBody is the shape of a 400 response listing rejected fields.
type ValidationBody struct {
	Errors []validation.FieldError `json:"errors"`
}

// JSON writes payload as the response body.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("respond: encode payload failed: %v", err)
	}
}

// Error writes {"error": message}.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, ErrorBody{Error: message})
}

// ValidationErrors writes a 400 listing every rejected field.
func ValidationErrors(w http.ResponseWriter, errs []validation.FieldError) {
	JSON(w, http.StatusBadRequest, ValidationBody{Errors: errs})
}

// Internal logs err with context and writes the generic 500 response.
func Internal(w http.ResponseWriter, context string, err error) {
	log.Printf("%s: %v", context, err)
	Error(w, http.StatusInternalServerError, "Server Error")
}
