package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearFacturaRequest struct {
	ProductoID    string  `json:"producto"       validate:"required,uuid"`
	Cantidad      int     `json:"cantidad"       validate:"required,min=1"`
	FechaSalida   *string `json:"fecha_salida"`
	NumeroFactura *string `json:"numero_factura" validate:"omitempty,max=20"`
}

type ActualizarFacturaRequest struct {
	Cantidad    *int    `json:"cantidad"     validate:"omitempty,min=1"`
	FechaSalida *string `json:"fecha_salida"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// FacturaResponse proyecta la factura junto con los campos del producto que
// el cliente histórico espera de forma plana (equipo, marca, serial, etc.).
type FacturaResponse struct {
	ID            string           `json:"id"`
	NumeroFactura string           `json:"numero_factura"`
	ProductoID    string           `json:"producto"`
	Equipo        *string          `json:"equipo"`
	Referencia    *string          `json:"referencia"`
	Marca         *string          `json:"marca"`
	Serial        *string          `json:"serial"`
	Cantidad      int              `json:"cantidad"`
	Descripcion   *string          `json:"descripcion"`
	FechaEntrada  *string          `json:"fecha_entrada"`
	FechaSalida   *string          `json:"fecha_salida"`
	Estado        string           `json:"estado"`
	Observaciones *string          `json:"observaciones"`
	Valor         *decimal.Decimal `json:"valor"`
	Total         decimal.Decimal  `json:"total"`
}
