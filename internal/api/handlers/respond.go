package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
)

// ErrDecode возвращается при некорректном JSON в теле запроса
var ErrDecode = errors.New("handlers: failed to decode request body")

const msgInternalError = "internal server error"

// FieldError ошибка валидации одного поля запроса
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse единый конверт ошибки API
type ErrorResponse struct {
	Success bool         `json:"success"`
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}

// DecodeJSON декодирует тело запроса, отклоняя неизвестные поля не нужно —
// клиенты шлют legacy алиасы, поэтому декодируем мягко
func DecodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return ErrDecode
	}
	return nil
}

// RespondJSON пишет JSON ответ с указанным статусом
// nil payload даёт пустое тело
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	// Ошибку сериализации уже некому отдать — заголовки отправлены
	_ = json.NewEncoder(w).Encode(payload)
}

// RespondError пишет ошибку в едином конверте {"success": false, "error": ...}
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Success: false, Error: message})
}

// RespondValidationError пишет 400 с пополевым списком ошибок
func RespondValidationError(w http.ResponseWriter, message string, details []FieldError) {
	RespondJSON(w, http.StatusBadRequest, ErrorResponse{
		Success: false,
		Error:   message,
		Details: details,
	})
}

// RespondBadRequest пишет 400
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

// RespondUnauthorized пишет 401
func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

// RespondForbidden пишет 403
func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

// RespondNotFound пишет 404
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

// RespondConflict пишет 409 — занятый слот, единственный источник этого кода
func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

// RespondInternalError пишет 500 без деталей внутренней ошибки
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}
