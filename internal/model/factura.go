package model

import (
	"time"

	"github.com/google/uuid"
)

// Factura registra la salida de stock de un producto.
// NumeroFactura se asigna una sola vez al crearla ("FAC-" + 5 dígitos si el
// cliente no lo provee) y nunca se regenera; la unicidad la garantiza el
// índice, no el generador aleatorio.
type Factura struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	Cantidad      int        `gorm:"not null;default:1;check:cantidad >= 1"`
	FechaSalida   *time.Time `gorm:"type:date;index"`
	NumeroFactura string     `gorm:"type:varchar(20);uniqueIndex;not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID;constraint:OnDelete:CASCADE"`
}

func (Factura) TableName() string { return "facturas" }
