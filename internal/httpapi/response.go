package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// apiError carries the status and public message of a failed request.
// Err holds the internal cause and is logged, never written to the client.
type apiError struct {
	Status  int
	Code    string
	Public  string
	Message string
	Err     error
}

func (e *apiError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Public != "" {
		return e.Public
	}
	return fmt.Sprintf("api error (%d)", e.Status)
}

func (e *apiError) Unwrap() error { return e.Err }

func newAPIError(status int, code, public string, err error) *apiError {
	return &apiError{Status: status, Code: code, Public: public, Err: err}
}

type successEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
	Count   *int `json:"count,omitempty"`
}

type errorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondOK(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, successEnvelope{Success: true, Data: data})
}

func respondList(w http.ResponseWriter, data any, count int) {
	writeJSON(w, http.StatusOK, successEnvelope{Success: true, Data: data, Count: &count})
}

func respondError(w http.ResponseWriter, e *apiError) {
	writeJSON(w, e.Status, errorEnvelope{
		Success: false,
		Error:   e.Public,
		Code:    e.Code,
		Message: e.Message,
	})
}
