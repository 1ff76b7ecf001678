// Package apierror provides the standardized error taxonomy for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error into one of the surfaces the API distinguishes.
type Kind int

const (
	KindInterno Kind = iota
	KindValidacion
	KindNoEncontrado
	KindConflicto
	KindStockInsuficiente
	KindNoAutenticado
	KindNoAutorizado
)

// Error is the canonical application error. Detail is always safe to show to
// the end user; internal causes are logged, never serialized.
type Error struct {
	Kind   Kind              `json:"-"`
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields,omitempty"`
}

func (e *Error) Error() string { return e.Detail }

// Status maps the error kind to its HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidacion:
		return http.StatusBadRequest
	case KindNoEncontrado:
		return http.StatusNotFound
	case KindConflicto, KindStockInsuficiente:
		return http.StatusConflict
	case KindNoAutenticado:
		return http.StatusUnauthorized
	case KindNoAutorizado:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func Validacion(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidacion, Detail: fmt.Sprintf(format, args...)}
}

// ValidacionCampos wraps per-field validator errors.
func ValidacionCampos(fields map[string]string) *Error {
	return &Error{Kind: KindValidacion, Detail: "Error de validación", Fields: fields}
}

func NoEncontrado(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNoEncontrado, Detail: fmt.Sprintf(format, args...)}
}

func Conflicto(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflicto, Detail: fmt.Sprintf(format, args...)}
}

// StockInsuficiente names the product and the available vs. requested
// quantities so the storefront can render an actionable message.
func StockInsuficiente(producto string, disponible, solicitado int) *Error {
	return &Error{
		Kind: KindStockInsuficiente,
		Detail: fmt.Sprintf("Stock insuficiente para %s. Stock disponible: %d, solicitado: %d",
			producto, disponible, solicitado),
	}
}

func NoAutenticado() *Error {
	return &Error{Kind: KindNoAutenticado, Detail: "Debes iniciar sesión para acceder a este recurso."}
}

func NoAutorizado() *Error {
	return &Error{Kind: KindNoAutorizado, Detail: "Acceso denegado. Se requieren permisos de administrador."}
}

func Interno() *Error {
	return &Error{Kind: KindInterno, Detail: "Error interno del servidor"}
}

// From extracts the *Error from err, or wraps it as an internal error so the
// caller never leaks an unexpected message to the client.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Interno()
}

// Is reports whether err is an application error of the given kind.
func Is(err error, kind Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == kind
}
