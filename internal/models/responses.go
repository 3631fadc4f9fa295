package models

import (
	"encoding/json"
	"net/http"
	"time"
)

type APIResponse struct {
	Status    string      `json:"status"`
	Message   string      `json:"message"`
	ID        int64       `json:"id,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"-"`
}

func (r *APIResponse) MarshalJSON() ([]byte, error) {
	type Alias APIResponse
	return json.Marshal(&struct {
		*Alias
		Timestamp string `json:"timestamp"`
	}{
		Alias:     (*Alias)(r),
		Timestamp: r.Timestamp.Format(time.RFC3339),
	})
}

func NewSuccessResponse(message string, data interface{}) *APIResponse {
	return &APIResponse{
		Status:    "success",
		Message:   message,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}
}

func NewCreatedResponse(message string, contact *Contact) *APIResponse {
	resp := NewSuccessResponse(message, contact)
	resp.ID = contact.ID
	return resp
}

func NewErrorResponse(message string) *APIResponse {
	return &APIResponse{
		Status:    "error",
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

// NewValidationResponse carries the missing field names under data.missing.
func NewValidationResponse(err *ValidationError) *APIResponse {
	resp := NewErrorResponse(err.Error())
	resp.Data = map[string][]string{"missing": err.Missing}
	return resp
}

func RespondWithJSON(w http.ResponseWriter, statusCode int, response *APIResponse) {
	RespondWithData(w, statusCode, response)
}

// RespondWithData writes v without the envelope, used for the contact list.
func RespondWithData(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}
