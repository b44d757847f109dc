package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/servicampo-billing/internal/domain/entity"
	"github.com/jhoicas/servicampo-billing/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo implementación de DocumentRepository (usable con pool o tx).
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

const documentColumns = `
	id, kind, customer_id, employee_id, tax_rate_percent,
	discount_kind, discount_value, discount_ref_id,
	status, origin, notes, terms, cancellation_policy,
	source_document_id, converted_to_document_id, created_at, updated_at`

// Create persiste cabecera y líneas del documento.
func (r *DocumentRepo) Create(doc *entity.Document) error {
	query := `
		INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	discKind, discValue, discRef := discountFields(doc.Discount)
	_, err := r.q.Exec(context.Background(), query,
		doc.ID, doc.Kind, doc.CustomerID, doc.EmployeeID, doc.TaxRatePercent,
		discKind, discValue, discRef,
		doc.Status, doc.Origin,
		nullIfEmpty(doc.Notes), nullIfEmpty(doc.Terms), nullIfEmpty(doc.CancellationPolicy),
		nullIfEmpty(doc.SourceDocumentID), nullIfEmpty(doc.ConvertedToDocumentID),
		doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("document id already exists: %w", err)
		}
		return fmt.Errorf("insert document: %w", err)
	}
	return r.replaceItems(doc)
}

// Update actualiza cabecera y líneas. converted_to_document_id solo se
// escribe una vez: el WHERE exige que siga en NULL o que no cambie.
func (r *DocumentRepo) Update(doc *entity.Document) error {
	query := `
		UPDATE documents
		SET tax_rate_percent         = $2,
		    discount_kind            = $3,
		    discount_value           = $4,
		    discount_ref_id          = $5,
		    status                   = $6,
		    notes                    = $7,
		    terms                    = $8,
		    cancellation_policy      = $9,
		    converted_to_document_id = COALESCE(converted_to_document_id, $10),
		    updated_at               = $11
		WHERE id = $1
		  AND (converted_to_document_id IS NULL OR converted_to_document_id = $10)`
	discKind, discValue, discRef := discountFields(doc.Discount)
	tag, err := r.q.Exec(context.Background(), query,
		doc.ID, doc.TaxRatePercent, discKind, discValue, discRef,
		doc.Status,
		nullIfEmpty(doc.Notes), nullIfEmpty(doc.Terms), nullIfEmpty(doc.CancellationPolicy),
		nullIfEmpty(doc.ConvertedToDocumentID), doc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update document %s: no row updated (inexistente o ya convertido)", doc.ID)
	}
	return r.replaceItems(doc)
}

// GetByID obtiene el documento completo. Devuelve (nil, nil) si no existe.
func (r *DocumentRepo) GetByID(id string) (*entity.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	doc, err := r.scanDocument(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	doc.Items, err = r.itemsByDocumentID(doc.ID)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// ListByKind documentos de un kind, más recientes primero.
func (r *DocumentRepo) ListByKind(kind entity.DocumentKind) ([]*entity.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE kind = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, kind)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []*entity.Document
	for rows.Next() {
		doc, err := r.scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, doc := range docs {
		if doc.Items, err = r.itemsByDocumentID(doc.ID); err != nil {
			return nil, err
		}
	}
	return docs, nil
}

func (r *DocumentRepo) scanDocument(row pgx.Row) (*entity.Document, error) {
	var doc entity.Document
	var discKind, discRef *string
	var discValue decimal.NullDecimal
	var notes, terms, policy, sourceID, convertedID *string
	err := row.Scan(
		&doc.ID, &doc.Kind, &doc.CustomerID, &doc.EmployeeID, &doc.TaxRatePercent,
		&discKind, &discValue, &discRef,
		&doc.Status, &doc.Origin, &notes, &terms, &policy,
		&sourceID, &convertedID, &doc.CreatedAt, &doc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if discKind != nil && discValue.Valid {
		doc.Discount = &entity.DiscountSpec{
			Kind:  entity.DiscountKind(*discKind),
			Value: discValue.Decimal,
			RefID: derefStr(discRef),
		}
	}
	doc.Notes = derefStr(notes)
	doc.Terms = derefStr(terms)
	doc.CancellationPolicy = derefStr(policy)
	doc.SourceDocumentID = derefStr(sourceID)
	doc.ConvertedToDocumentID = derefStr(convertedID)
	return &doc, nil
}

// replaceItems reescribe las líneas (el orden se conserva vía position).
func (r *DocumentRepo) replaceItems(doc *entity.Document) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM document_items WHERE document_id = $1`, doc.ID); err != nil {
		return fmt.Errorf("delete document items: %w", err)
	}
	for pos, it := range doc.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO document_items (document_id, id, name, unit_price, quantity, is_custom, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			doc.ID, it.ID, it.Name, it.UnitPrice, it.Quantity, it.IsCustom, pos,
		)
		if err != nil {
			return fmt.Errorf("insert document item: %w", err)
		}
	}
	return nil
}

func (r *DocumentRepo) itemsByDocumentID(docID string) ([]entity.LineItem, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, name, unit_price, quantity, is_custom
		FROM document_items WHERE document_id = $1 ORDER BY position`, docID)
	if err != nil {
		return nil, fmt.Errorf("list document items: %w", err)
	}
	defer rows.Close()

	var items []entity.LineItem
	for rows.Next() {
		var it entity.LineItem
		if err := rows.Scan(&it.ID, &it.Name, &it.UnitPrice, &it.Quantity, &it.IsCustom); err != nil {
			return nil, fmt.Errorf("scan document item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func discountFields(d *entity.DiscountSpec) (kind *string, value decimal.NullDecimal, ref *string) {
	if d == nil {
		return nil, decimal.NullDecimal{}, nil
	}
	k := string(d.Kind)
	return &k, decimal.NullDecimal{Decimal: d.Value, Valid: true}, nullIfEmpty(d.RefID)
}
