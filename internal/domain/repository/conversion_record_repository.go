package repository

import "github.com/jhoicas/servicampo-billing/internal/domain/entity"

// ConversionRecordRepository puerto del mapeo origen → destino de conversiones.
// El registro se crea en la misma transacción que el documento destino; nunca
// se actualiza ni se borra. GetBySourceID devuelve (nil, nil) si no existe.
type ConversionRecordRepository interface {
	Create(rec *entity.ConversionRecord) error
	GetBySourceID(sourceID string) (*entity.ConversionRecord, error)
	// LoadAll mapa completo sourceID → targetID (carga del read model).
	LoadAll() (map[string]string, error)
}
