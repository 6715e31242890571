package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
// Las fallas de infraestructura se propagan envueltas con fmt.Errorf("...: %w"),
// nunca como uno de estos sentinelas, para que el caller distinga
// "petición inválida" de "sistema no disponible".
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrNegativeStock      = errors.New("el ajuste dejaría el stock en negativo")
	ErrAlreadyVoided      = errors.New("el registro ya fue anulado")
	ErrOrderNotReceivable = errors.New("la orden no admite recepción")
	ErrAccountNotFound    = errors.New("cuenta no encontrada")
)

// InsufficientStockError detalla qué producto quedó corto y por cuánto.
// errors.Is(err, ErrInsufficientStock) == true para este tipo.
type InsufficientStockError struct {
	ProductID string
	Requested int64
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para producto %s: solicitado %d, disponible %d",
		e.ProductID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// Shortfall devuelve las unidades faltantes.
func (e *InsufficientStockError) Shortfall() int64 {
	return e.Requested - e.Available
}
