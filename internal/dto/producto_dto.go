package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// Las fechas viajan como texto AAAA-MM-DD; el servicio las valida y convierte.

type CrearProductoRequest struct {
	Nombre        *string          `json:"nombre"        validate:"omitempty,min=1,max=150"`
	Referencia    *string          `json:"referencia"    validate:"omitempty,max=150"`
	Marca         *string          `json:"marca"         validate:"omitempty,max=100"`
	Serial        *string          `json:"serial"        validate:"omitempty,max=100"`
	Cantidad      int              `json:"cantidad"      validate:"min=0"`
	StockMinimo   *int             `json:"stock_minimo"  validate:"omitempty,min=0"`
	Descripcion   *string          `json:"descripcion"`
	CategoriaID   *string          `json:"categoria"     validate:"omitempty,uuid"`
	FechaEntrada  *string          `json:"fecha_entrada"`
	Valor         *decimal.Decimal `json:"valor"`
	Observaciones *string          `json:"observaciones"`
	Estado        string           `json:"estado"        validate:"omitempty,oneof=disponible prestado en_mantenimiento retirado"`
}

// ActualizarProductoRequest deliberadamente no expone cantidad: el stock lo
// mueve únicamente el motor de facturas.
type ActualizarProductoRequest struct {
	Nombre        *string          `json:"nombre"        validate:"omitempty,min=1,max=150"`
	Referencia    *string          `json:"referencia"    validate:"omitempty,max=150"`
	Marca         *string          `json:"marca"         validate:"omitempty,max=100"`
	Serial        *string          `json:"serial"        validate:"omitempty,max=100"`
	StockMinimo   *int             `json:"stock_minimo"  validate:"omitempty,min=0"`
	Descripcion   *string          `json:"descripcion"`
	CategoriaID   *string          `json:"categoria"     validate:"omitempty,uuid"`
	FechaEntrada  *string          `json:"fecha_entrada"`
	Valor         *decimal.Decimal `json:"valor"`
	Observaciones *string          `json:"observaciones"`
	Estado        *string          `json:"estado"        validate:"omitempty,oneof=disponible prestado en_mantenimiento retirado"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ProductoFilter struct {
	Nombre    string `form:"nombre"`
	Categoria string `form:"categoria"`
	Estado    string `form:"estado"`
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductoResponse struct {
	ID              string           `json:"id"`
	Nombre          *string          `json:"nombre"`
	Referencia      *string          `json:"referencia"`
	Marca           *string          `json:"marca"`
	Serial          *string          `json:"serial"`
	Cantidad        int              `json:"cantidad"`
	StockMinimo     int              `json:"stock_minimo"`
	Descripcion     *string          `json:"descripcion"`
	Categoria       *string          `json:"categoria"`
	CategoriaNombre *string          `json:"categoria_nombre"`
	FechaEntrada    *string          `json:"fecha_entrada"`
	Valor           *decimal.Decimal `json:"valor"`
	Observaciones   *string          `json:"observaciones"`
	Estado          string           `json:"estado"`
}

type ProductoListResponse struct {
	Data  []ProductoResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
