package repository

import "github.com/jhoicas/servicampo-billing/internal/domain/entity"

// DocumentRepository puerto de persistencia para documentos y sus líneas.
// GetByID devuelve (nil, nil) cuando el documento no existe.
type DocumentRepository interface {
	Create(doc *entity.Document) error
	// Update actualiza cabecera y líneas; el estado y converted_to_document_id
	// solo avanzan según la máquina de estados (el repo no valida eso).
	Update(doc *entity.Document) error
	GetByID(id string) (*entity.Document, error)
	ListByKind(kind entity.DocumentKind) ([]*entity.Document, error)
}
