package model

import (
	"time"

	"github.com/google/uuid"
)

// Tipos de actividad registrables.
const (
	ActividadVenta         = "venta"
	ActividadActualizacion = "actualizacion"
	ActividadFactura       = "factura"
	ActividadOtro          = "otro"
)

// Actividad es una entrada inmutable del registro de eventos del sistema.
// Las filas nunca se actualizan ni eliminan en el flujo normal; si la factura
// referenciada desaparece, la referencia se anula (ON DELETE SET NULL).
type Actividad struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Tipo        string     `gorm:"type:varchar(50);not null"`
	FacturaID   *uuid.UUID `gorm:"type:uuid;index"`
	Descripcion string     `gorm:"not null"`
	Fecha       time.Time  `gorm:"not null;autoCreateTime"`

	Factura *Factura `gorm:"foreignKey:FacturaID;constraint:OnDelete:SET NULL"`
}

func (Actividad) TableName() string { return "actividades" }
