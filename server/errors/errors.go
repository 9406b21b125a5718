// Package errors define a taxonomia de erros da camada HTTP: um
// AppError carrega o status HTTP, a mensagem para o usuário e o erro
// interno para o log.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError erro de aplicação com status HTTP e contexto
type AppError struct {
	Code    int    `json:"status_code"`
	Message string `json:"message"`
	Err     error  `json:"-"` // erro interno, só para logs
}

// Error implementa a interface error
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap devolve o erro interno para errors.Is e errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode devolve o status HTTP do erro
func (e *AppError) StatusCode() int {
	return e.Code
}

// UserMessage devolve a mensagem para o usuário
func (e *AppError) UserMessage() string {
	return e.Message
}

// NewValidationError cria um erro 400 Bad Request
func NewValidationError(message string, err error) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
		Err:     err,
	}
}

// NewInternalError cria um erro 500. A mensagem detalhada vai só para o
// log; o usuário recebe um texto genérico.
func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: "erro interno do servidor",
		Err:     errors.Join(errors.New(message), err),
	}
}

// WrapError promove um erro qualquer a AppError. Se já for AppError,
// devolve como está; senão vira erro interno com a mensagem dada.
func WrapError(err error, message string) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewInternalError(message, err)
}
