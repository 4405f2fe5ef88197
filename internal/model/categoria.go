package model

import (
	"time"

	"github.com/google/uuid"
)

// Categoria clasifica equipos y materiales del inventario.
// Eliminar una categoría nunca elimina sus productos: la referencia
// se anula (ON DELETE SET NULL).
type Categoria struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"uniqueIndex;not null"`
	Descripcion *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName overrides GORM's default singular → plural logic for Spanish names.
func (Categoria) TableName() string { return "categorias" }
