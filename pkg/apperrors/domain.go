package apperrors

import (
	"net/http"
)

/*
Предопределенные доменные ошибки площадки. Сервисы возвращают их как есть,
хендлеры отдают клиенту через HandleError.
*/

// --- Пользователи и роли ---

var ErrUserNotFound = New(CodeNotFound, "users", "User not found", http.StatusNotFound)

var ErrUserBlocked = New(CodeForbidden, "users", "User is blocked", http.StatusForbidden)

var ErrInvalidUserRole = New(CodeValidationFailed, "users", "Invalid user role", http.StatusBadRequest)

// ErrSameRole - попытка сменить роль на уже текущую
var ErrSameRole = New(CodeInvalidOperation, "users", "Role is already assigned", http.StatusBadRequest)

// ErrRoleMismatch - операция не предусмотрена для текущей роли
var ErrRoleMismatch = New(CodeInvalidOperation, "users", "Operation is not available for this role", http.StatusBadRequest)

// --- Заявки и посты ---

var ErrListingNotFound = New(CodeNotFound, "listings", "Listing not found", http.StatusNotFound)

var ErrListingClosed = New(CodeInvalidStatus, "listings", "Listing is closed", http.StatusConflict)

var ErrNotListingOwner = New(CodeForbidden, "listings", "Only the author can manage this listing", http.StatusForbidden)

var ErrInvalidListingField = New(CodeValidationFailed, "listings", "Unknown listing field", http.StatusBadRequest)

// ErrPostRateLimited - у модели уже есть открытый пост за последние 48 часов
var ErrPostRateLimited = New(CodeLimitExceeded, "listings", "An open post was already published within the last 48 hours", http.StatusConflict)

// --- Отклики ---

var ErrResponseNotFound = New(CodeNotFound, "responses", "Response not found", http.StatusNotFound)

var ErrDuplicateResponse = New(CodeAlreadyExists, "responses", "Response to this listing already exists", http.StatusConflict)

var ErrQuotaExceeded = New(CodeLimitExceeded, "responses", "Response quota for this listing is exhausted", http.StatusConflict)

// ErrResponseDecided - отклик уже принят или отклонен, решение финально
var ErrResponseDecided = New(CodeInvalidStatus, "responses", "Response has already been decided", http.StatusConflict)

var ErrNotResponseOwner = New(CodeForbidden, "responses", "Only the listing author can decide this response", http.StatusForbidden)

// --- Рейтинги ---

var ErrDuplicateRating = New(CodeAlreadyExists, "ratings", "Rating for this response already submitted", http.StatusConflict)

var ErrInvalidScore = New(CodeValidationFailed, "ratings", "Score must be between 1 and 10", http.StatusBadRequest)

// ErrRatingNotAllowed - оценивать можно только принятый отклик и только его участникам
var ErrRatingNotAllowed = New(CodeInvalidOperation, "ratings", "Rating is allowed only for participants of an accepted response", http.StatusBadRequest)

// --- Пошаговые анкеты ---

var ErrNoFormSession = New(CodeNotFound, "forms", "No active form session", http.StatusNotFound)

// ErrFormIncomplete - анкету нельзя завершить, пока есть вопросы без ответа
var ErrFormIncomplete = New(CodeInvalidStatus, "forms", "Form has unanswered fields", http.StatusConflict)

// --- Подписки и платежи ---

var ErrSubscriptionRequired = New(CodeForbidden, "subscriptions", "Active subscription required", http.StatusForbidden)

var ErrPrivilegeRequired = New(CodeForbidden, "subscriptions", "Privileged status required", http.StatusForbidden)

var ErrTrialAlreadyUsed = New(CodeAlreadyExists, "subscriptions", "Trial has already been used for this role", http.StatusConflict)

var ErrPaymentNotFound = New(CodeNotFound, "payments", "Payment not found", http.StatusNotFound)

var ErrPaymentNotSucceeded = New(CodeInvalidStatus, "payments", "Payment has not succeeded yet", http.StatusConflict)

// --- Фабрики ---

// ErrNotFound оборачивает ошибку репозитория в 404
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists оборачивает конфликт уникальности в 409
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrExternalService - сбой внешнего сервиса (мессенджер, платежи)
func ErrExternalService(err error, domain string) *AppError {
	return Wrap(err, CodeExternalServiceError, domain, "External service call failed", http.StatusBadGateway)
}
