package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrForbidden           = errors.New("acceso denegado")
	ErrDuplicateItem       = errors.New("el ítem ya existe en el documento")
	ErrInvalidQuantity     = errors.New("cantidad inválida")
	ErrIllegalTransition   = errors.New("transición de estado no permitida")
	ErrAlreadyConverted    = errors.New("el documento ya fue convertido")
	ErrDiscountNotEligible = errors.New("descuento no elegible para el documento")
	ErrPaymentDeclined     = errors.New("pago rechazado por la pasarela")
)
