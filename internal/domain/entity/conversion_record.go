package entity

import "time"

// ConversionRecord mapeo persistido origen → destino, con clave por documento
// origen. Se crea en la misma transacción que el documento destino y nunca se
// muta después. Responde "¿ya fue convertido X?" y "¿en qué se convirtió X?"
// sin re-derivarlo del contenido.
type ConversionRecord struct {
	SourceID  string
	TargetID  string
	CreatedAt time.Time
}
