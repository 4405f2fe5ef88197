package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estados posibles de un equipo o material.
const (
	EstadoDisponible    = "disponible"
	EstadoPrestado      = "prestado"
	EstadoMantenimiento = "en_mantenimiento"
	EstadoRetirado      = "retirado"
)

// Producto representa un equipo o material del inventario.
// Cantidad es mutada EXCLUSIVAMENTE por el motor de facturas (descuento al
// crear, rebalanceo al actualizar, reposición al eliminar); el CHECK de la
// columna impide que quede negativa aunque un caller se salte el guard.
type Producto struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre        *string   `gorm:"type:varchar(150);index"`
	Referencia    *string   `gorm:"type:varchar(150)"`
	Marca         *string   `gorm:"type:varchar(100)"`
	Serial        *string   `gorm:"type:varchar(100);uniqueIndex"`
	Cantidad      int       `gorm:"not null;default:0;check:cantidad >= 0"`
	StockMinimo   int       `gorm:"not null;default:5"`
	Descripcion   *string
	CategoriaID   *uuid.UUID       `gorm:"type:uuid;index"`
	FechaEntrada  *time.Time       `gorm:"type:date"`
	Valor         *decimal.Decimal `gorm:"type:decimal(10,2)"`
	Observaciones *string
	Estado        string `gorm:"type:varchar(20);not null;default:'disponible'"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Categoria *Categoria `gorm:"foreignKey:CategoriaID;constraint:OnDelete:SET NULL"`
}

func (Producto) TableName() string { return "productos" }
