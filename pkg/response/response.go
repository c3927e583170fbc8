package response

import (
	"encoding/json"
	"net/http"
)

// Response is the JSON envelope of every API answer.
type Response struct {
	Success  bool      `json:"success"`
	Message  string    `json:"message,omitempty"`
	Data     any       `json:"data,omitempty"`
	Error    any       `json:"error,omitempty"`
	Meta     *Meta     `json:"meta,omitempty"`
	Redirect *Redirect `json:"redirect,omitempty"`
}

// Redirect tells the client where to navigate after a denied request.
type Redirect struct {
	Target   string `json:"target"`
	Location string `json:"location"`
}

type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// NewMeta builds pagination metadata. limit must be positive.
func NewMeta(page, limit int, total int64) *Meta {
	return &Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
	}
}

func JSON(w http.ResponseWriter, statusCode int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}

func Success(w http.ResponseWriter, statusCode int, message string, data any) {
	JSON(w, statusCode, Response{Success: true, Message: message, Data: data})
}

func SuccessWithMeta(w http.ResponseWriter, statusCode int, message string, data any, meta *Meta) {
	JSON(w, statusCode, Response{Success: true, Message: message, Data: data, Meta: meta})
}

func Error(w http.ResponseWriter, statusCode int, message string, err any) {
	JSON(w, statusCode, Response{Message: message, Error: err})
}

// RedirectTo answers a denied request. The body carries only the redirect,
// never an error message.
func RedirectTo(w http.ResponseWriter, statusCode int, target, location string) {
	JSON(w, statusCode, Response{Redirect: &Redirect{Target: target, Location: location}})
}

func ValidationError(w http.ResponseWriter, fields map[string]string) {
	Error(w, http.StatusBadRequest, "Validation failed", fields)
}

func Unauthorized(w http.ResponseWriter, message string) {
	Error(w, http.StatusUnauthorized, orDefault(message, http.StatusUnauthorized), nil)
}

func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, orDefault(message, http.StatusBadRequest), nil)
}

func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, orDefault(message, http.StatusNotFound), nil)
}

func InternalServerError(w http.ResponseWriter, message string) {
	Error(w, http.StatusInternalServerError, orDefault(message, http.StatusInternalServerError), nil)
}

func ServiceUnavailable(w http.ResponseWriter, message string) {
	Error(w, http.StatusServiceUnavailable, orDefault(message, http.StatusServiceUnavailable), nil)
}

func orDefault(message string, statusCode int) string {
	if message == "" {
		return http.StatusText(statusCode)
	}
	return message
}
