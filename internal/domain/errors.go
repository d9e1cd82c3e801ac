package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
	ErrMalformedBarcode    = errors.New("código de barras mal formado")
	ErrInvalidProcedureArg = errors.New("parámetro de procedimiento inválido")
	ErrProcedureNoRows     = errors.New("el procedimiento no devolvió filas")
)
