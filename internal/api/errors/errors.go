// Пакет errors — конструкторы стандартных ошибок HaqNow Admin API.
// Единый формат: {"error": {"code": "...", "message": "..."}}.
// Все HTTP-ответы с ошибками должны использовать WriteError.
package errors

import (
	"encoding/json"
	"net/http"
)

// Коды ошибок, определённые в OpenAPI контракте.
const (
	CodeValidationError           = "VALIDATION_ERROR"
	CodeNotFound                  = "NOT_FOUND"
	CodeUnauthorized              = "UNAUTHORIZED"
	CodeForbidden                 = "FORBIDDEN"
	CodeConflict                  = "CONFLICT"
	CodeSelfAction                = "SELF_ACTION_FORBIDDEN"
	CodeOperationInFlight         = "OPERATION_IN_FLIGHT"
	CodeTransitionFailedAfterSave = "TRANSITION_FAILED_AFTER_SAVE"
	CodeBackendUnavailable        = "BACKEND_UNAVAILABLE"
	CodeInternalError             = "INTERNAL_ERROR"
)

// errorBody — структура тела ответа ошибки.
type errorBody struct {
	Error errorDetail `json:"error"`
}

// errorDetail — детали ошибки.
type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteError записывает ответ ошибки в стандартном формате.
// statusCode — HTTP статус-код, code — машиночитаемый код, message — описание.
func WriteError(w http.ResponseWriter, statusCode int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(errorBody{
		Error: errorDetail{
			Code:    code,
			Message: message,
		},
	})
}

// --- Конструкторы для типичных ошибок ---

// ValidationError — 400 некорректные входные данные.
func ValidationError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, CodeValidationError, message)
}

// NotFound — 404 ресурс не найден.
func NotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, CodeNotFound, message)
}

// Unauthorized — 401 требуется аутентификация.
func Unauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, CodeUnauthorized, message)
}

// Forbidden — 403 недостаточно прав.
func Forbidden(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusForbidden, CodeForbidden, message)
}

// Conflict — 409 конфликт (дублирующийся ресурс).
func Conflict(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusConflict, CodeConflict, message)
}

// SelfAction — 403 действие над собственной учётной записью запрещено.
func SelfAction(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusForbidden, CodeSelfAction, message)
}

// OperationInFlight — 409 над ресурсом уже выполняется операция.
func OperationInFlight(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusConflict, CodeOperationInFlight, message)
}

// TransitionFailedAfterSave — 502 метаданные сохранены, но смена
// статуса не прошла. Клиент должен перечитать документ.
func TransitionFailedAfterSave(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadGateway, CodeTransitionFailedAfterSave, message)
}

// BackendUnavailable — 502 backend API недоступен.
func BackendUnavailable(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadGateway, CodeBackendUnavailable, message)
}

// InternalError — 500 внутренняя ошибка.
func InternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, CodeInternalError, message)
}
