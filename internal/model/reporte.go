package model

import (
	"time"

	"github.com/google/uuid"
)

// Tipos de reporte.
const (
	ReporteGeneral       = "general"
	ReportePersonalizado = "personalizado"
	ReporteEstadistico   = "estadistico"
	ReporteOperativo     = "operativo"
	ReporteFinanciero    = "financiero"
)

// Filtros de reporte. Un filtro desconocido produce un conjunto vacío.
const (
	FiltroFacturas   = "facturas"
	FiltroProductos  = "productos"
	FiltroCategorias = "categorias"
	FiltroUsuarios   = "usuarios"
)

// Reporte persiste únicamente la configuración de la consulta (tipo, filtro,
// rango de fechas). Los datos se recomputan en vivo en cada lectura y
// escritura — nunca se sirven desde almacenamiento.
type Reporte struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Tipo        string     `gorm:"type:varchar(50);not null"`
	Filtro      string     `gorm:"type:varchar(50);not null"`
	FechaInicio *time.Time `gorm:"type:date"`
	FechaFin    *time.Time `gorm:"type:date"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Reporte) TableName() string { return "reportes" }
