// seed puebla la base con datos de demostración: clientes, empleados,
// catálogo de servicios, descuentos nombrados y un par de documentos de
// ejemplo. Idempotente: los inserts de catálogo usan ON CONFLICT DO NOTHING
// y los documentos solo se crean si no existen.
//
// Uso: go run ./cmd/seed
package main

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/servicampo-billing/internal/domain/entity"
	"github.com/jhoicas/servicampo-billing/internal/infrastructure/postgres"
	"github.com/jhoicas/servicampo-billing/pkg/config"
	"github.com/jhoicas/servicampo-billing/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("sembrando datos de demostración")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	type row struct {
		query string
		args  []any
	}

	rows := []row{
		// Empleados
		{`INSERT INTO employees (id, name, role) VALUES ($1, $2, $3) ON CONFLICT (id) DO NOTHING`,
			[]any{"emp-admin", "Gloria Ramírez", "admin"}},
		{`INSERT INTO employees (id, name, role) VALUES ($1, $2, $3) ON CONFLICT (id) DO NOTHING`,
			[]any{"emp-office", "Andrés Patiño", "office"}},
		{`INSERT INTO employees (id, name, role) VALUES ($1, $2, $3) ON CONFLICT (id) DO NOTHING`,
			[]any{"emp-tech", "Julián Mora", "tech"}},

		// Clientes
		{`INSERT INTO customers (id, name, email, phone, address) VALUES ($1, $2, $3, $4, $5) ON CONFLICT (id) DO NOTHING`,
			[]any{"cli-001", "Finca La Esperanza", "contacto@laesperanza.co", "3104567890", "Vereda El Carmen, km 12"}},
		{`INSERT INTO customers (id, name, email, phone, address) VALUES ($1, $2, $3, $4, $5) ON CONFLICT (id) DO NOTHING`,
			[]any{"cli-002", "Condominio Altos del Río", "admin@altosdelrio.co", "3159876543", "Cra 45 #12-30"}},

		// Catálogo de servicios
		{`INSERT INTO catalog_items (id, name, unit_price) VALUES ($1, $2, $3) ON CONFLICT (id) DO NOTHING`,
			[]any{"svc-fumigacion", "Fumigación perimetral", "180000"}},
		{`INSERT INTO catalog_items (id, name, unit_price) VALUES ($1, $2, $3) ON CONFLICT (id) DO NOTHING`,
			[]any{"svc-poda", "Poda de árboles (por unidad)", "45000"}},
		{`INSERT INTO catalog_items (id, name, unit_price) VALUES ($1, $2, $3) ON CONFLICT (id) DO NOTHING`,
			[]any{"svc-riego", "Mantenimiento sistema de riego", "120000"}},

		// Descuentos nombrados
		{`INSERT INTO catalog_discounts (id, name, kind, value) VALUES ($1, $2, $3, $4) ON CONFLICT (id) DO NOTHING`,
			[]any{"dsc-temporada", "Descuento de temporada 10%", "PERCENT", "10"}},
		{`INSERT INTO catalog_discounts (id, name, kind, value) VALUES ($1, $2, $3, $4) ON CONFLICT (id) DO NOTHING`,
			[]any{"dsc-referido", "Bono por referido", "FIXED", "25000"}},
	}

	for _, r := range rows {
		if _, err := pool.Exec(ctx, r.query, r.args...); err != nil {
			log.Fatal().Err(err).Str("query", r.query).Msg("insert de semilla")
		}
	}

	// Documentos de ejemplo, creados por el repositorio real.
	docRepo := postgres.NewDocumentRepository(pool)
	now := time.Now()
	seedDocs := []*entity.Document{
		{
			ID:         "EST-seed-esperanza",
			Kind:       entity.KindEstimate,
			CustomerID: "cli-001",
			EmployeeID: "emp-office",
			Items: []entity.LineItem{
				{ID: "svc-fumigacion", Name: "Fumigación perimetral", UnitPrice: decimal.NewFromInt(180000), Quantity: 1},
				{ID: "svc-poda", Name: "Poda de árboles (por unidad)", UnitPrice: decimal.NewFromInt(45000), Quantity: 4},
			},
			TaxRatePercent: decimal.NewFromInt(8),
			Status:         entity.StatusUnpaid,
			Origin:         entity.OriginStandard,
			Terms:          "Válida por 30 días",
			CreatedAt:      now,
			UpdatedAt:      now,
		},
		{
			ID:         "AGR-seed-altosdelrio",
			Kind:       entity.KindAgreement,
			CustomerID: "cli-002",
			EmployeeID: "emp-office",
			Items: []entity.LineItem{
				{ID: "svc-riego", Name: "Mantenimiento sistema de riego", UnitPrice: decimal.NewFromInt(120000), Quantity: 12},
			},
			TaxRatePercent:     decimal.NewFromInt(8),
			Status:             entity.StatusOpen,
			Origin:             entity.OriginStandard,
			CancellationPolicy: "Cancelación con 15 días de aviso",
			CreatedAt:          now,
			UpdatedAt:          now,
		},
	}
	created := 0
	for _, doc := range seedDocs {
		existing, err := docRepo.GetByID(doc.ID)
		if err != nil {
			log.Fatal().Err(err).Str("doc_id", doc.ID).Msg("consultar documento semilla")
		}
		if existing != nil {
			continue
		}
		if err := docRepo.Create(doc); err != nil {
			log.Fatal().Err(err).Str("doc_id", doc.ID).Msg("crear documento semilla")
		}
		created++
	}

	log.Info().
		Int("filas", len(rows)).
		Int("documentos", created).
		Msg("semilla aplicada")
}
