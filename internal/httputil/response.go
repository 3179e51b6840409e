package httputil

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
)

// Envelope is the body shape shared by every response
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
	Stack   string `json:"stack,omitempty"`
}

// RespondJSON sends a JSON response with the given status code.
// Logs encoding errors to avoid silent failures.
func RespondJSON(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("ERROR: failed to encode JSON response: %v", err)
	}
}

// RespondSuccess wraps data and message in a success envelope.
func RespondSuccess(w http.ResponseWriter, message string, data any, statusCode int) {
	RespondJSON(w, Envelope{Success: true, Message: message, Data: data}, statusCode)
}

// RespondError sends a failure envelope with the given message and status code.
func RespondError(w http.ResponseWriter, message string, statusCode int) {
	RespondJSON(w, Envelope{Message: message}, statusCode)
}

// RespondErrorWithCode sends a failure envelope with a machine-readable error code.
func RespondErrorWithCode(w http.ResponseWriter, message string, code string, statusCode int) {
	RespondJSON(w, Envelope{Message: message, Code: code}, statusCode)
}

// RespondInternalError sends a 500 envelope. detail goes into the error field
// and is only populated when exposeDetail is set.
func RespondInternalError(w http.ResponseWriter, message string, detail error, exposeDetail bool) {
	env := Envelope{Message: message, Code: CodeInternalError}
	if exposeDetail && detail != nil {
		env.Error = detail.Error()
	}
	RespondJSON(w, env, http.StatusInternalServerError)
}

// DecodeJSON decodes the request body into dst. An empty body leaves dst
// untouched so required-field checks report the missing fields.
func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
