// errors стандартизирует ответы об ошибках HTTP-слоя.
// На вход принимает ошибку сервиса (sentinel из internal/service,
// возможно с *models.ValidationError в цепочке), на выход даёт:
//   - корректный HTTP-статус;
//   - стабильный машиночитаемый code и безопасное message;
//   - ошибки полей для 400.
package errors

import (
	"context"
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/pribylovaa/go-shorts-platform/internal/models"
	"github.com/pribylovaa/go-shorts-platform/internal/service"
)

// StatusClientClosedRequest — нестандартный код «клиент закрыл соединение».
const StatusClientClosedRequest = 499

// APIError — единый формат для фронта.
type APIError struct {
	Code      string              `json:"code"`
	Message   string              `json:"message"`
	RequestID string              `json:"request_id,omitempty"`
	Fields    []models.FieldError `json:"fields,omitempty"`
}

// ErrorResponse — корневой объект в ответе.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// ToHTTP конвертирует ошибку сервиса в HTTP-статус и тело ответа.
//
// Таблица:
//   - ErrInvalidArgument -> 400 invalid_argument (+ fields);
//   - ErrCrossVideo -> 400 cross_video;
//   - ErrDepthLimit -> 400 depth_limit;
//   - ErrParentNotFound -> 404 parent_not_found;
//   - ErrNotFound -> 404 not_found;
//   - ErrUnauthenticated -> 401 unauthenticated;
//   - ErrInvalidCredentials -> 401 invalid_credentials;
//   - ErrPermissionDenied -> 403 permission_denied;
//   - ErrAlreadyExists -> 409 already_exists;
//   - context.Canceled -> 499 canceled;
//   - context.DeadlineExceeded -> 504 deadline_exceeded;
//   - прочее (и nil) -> 500 internal без деталей.
func ToHTTP(err error) (int, ErrorResponse) {
	status, code, msg := classify(err)

	resp := ErrorResponse{Error: APIError{Code: code, Message: msg}}
	if status == http.StatusBadRequest {
		if ve, ok := models.AsValidationError(err); ok {
			resp.Error.Fields = ve.Fields
		}
	}

	return status, resp
}

func classify(err error) (int, string, string) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, "internal", "internal error"
	case errors.Is(err, service.ErrInvalidArgument):
		return http.StatusBadRequest, "invalid_argument", "invalid argument"
	case errors.Is(err, service.ErrCrossVideo):
		return http.StatusBadRequest, "cross_video", "parent comment belongs to another video"
	case errors.Is(err, service.ErrDepthLimit):
		return http.StatusBadRequest, "depth_limit", "max thread depth reached"
	case errors.Is(err, service.ErrParentNotFound):
		return http.StatusNotFound, "parent_not_found", "parent comment not found"
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, "not_found", "not found"
	case errors.Is(err, service.ErrUnauthenticated):
		return http.StatusUnauthorized, "unauthenticated", "unauthenticated"
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid_credentials", "invalid email or password"
	case errors.Is(err, service.ErrPermissionDenied):
		return http.StatusForbidden, "permission_denied", "permission denied"
	case errors.Is(err, service.ErrAlreadyExists):
		return http.StatusConflict, "already_exists", "already exists"
	case errors.Is(err, context.Canceled):
		return StatusClientClosedRequest, "canceled", "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "deadline_exceeded", "deadline exceeded"
	default:
		return http.StatusInternalServerError, "internal", "internal error"
	}
}

// WriteError — хелпер для HTTP-хендлеров.
// Пишет статус и тело, добавляет request_id из заголовка, если он есть.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)
	write(w, r, status, resp)
}

// WriteStatus пишет ошибку с явным статусом и кодом (429, 405 и т.п.).
func WriteStatus(w http.ResponseWriter, r *http.Request, status int, code, msg string) {
	write(w, r, status, ErrorResponse{Error: APIError{Code: code, Message: msg}})
}

func write(w http.ResponseWriter, r *http.Request, status int, resp ErrorResponse) {
	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// BadRequest — локальная ошибка разбора запроса с указанием поля.
func BadRequest(field, rule, msg string) error {
	return errors.Join(service.ErrInvalidArgument, &models.ValidationError{
		Fields: []models.FieldError{{Field: field, Rule: rule, Message: msg}},
	})
}
