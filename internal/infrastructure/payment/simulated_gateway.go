// Package payment contiene los adaptadores de la pasarela de cobro.
package payment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/servicampo-billing/internal/application/billing"
	"github.com/jhoicas/servicampo-billing/pkg/logger"
)

var _ billing.PaymentGateway = (*SimulatedGateway)(nil)

// SimulatedGateway pasarela de desarrollo: aprueba todos los cobros y emite
// una referencia sintética. Útil para entornos locales y demos sin un
// procesador real configurado.
type SimulatedGateway struct {
	log *logger.Logger
}

// NewSimulatedGateway construye la pasarela simulada.
func NewSimulatedGateway(log *logger.Logger) *SimulatedGateway {
	return &SimulatedGateway{log: log}
}

// Charge aprueba el cobro y devuelve una referencia "SIM-<uuid>".
func (g *SimulatedGateway) Charge(_ context.Context, amount decimal.Decimal, method string) (billing.PaymentResult, error) {
	ref := fmt.Sprintf("SIM-%s", uuid.New().String())
	g.log.Info().
		Str("monto", amount.StringFixed(2)).
		Str("metodo", method).
		Str("referencia", ref).
		Msg("cobro simulado aprobado")
	return billing.PaymentResult{Success: true, Reference: ref}, nil
}
