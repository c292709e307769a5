package models

import "net/http"

// ErrorResponse описывает ошибку с кодом и сообщением.
type ErrorResponse struct {
	StatusCode int    `json:"-"`
	Message    string `json:"reason"`
}

// NewErrorResponse создает новую ошибку с кодом и сообщением.
func NewErrorResponse(statusCode int, message string) *ErrorResponse {
	return &ErrorResponse{
		StatusCode: statusCode,
		Message:    message}
}

// Реализация метода Error() для удовлетворения интерфейса error.
func (e *ErrorResponse) Error() string {
	return e.Message
}

// ErrDuplicateBid - повторная ставка того же исполнителя на то же объявление.
// Обработчик отдаёт её как plain text, а не JSON.
var ErrDuplicateBid = NewErrorResponse(http.StatusBadRequest, "You have already placed a bid on this job!")
