package dto

import "github.com/shopspring/decimal"

// ResumenResponse agrega conteos y totales monetarios de todo el sistema.
// Las cifras "hoy" quedan acotadas a la fecha consultada; el resto cubre el
// dataset completo. Sumas sobre conjuntos vacíos devuelven cero, nunca null.
type ResumenResponse struct {
	Fecha            string          `json:"fecha"`
	TotalCategorias  int64           `json:"total_categorias"`
	TotalProductos   int64           `json:"total_productos"`
	TotalFacturas    int64           `json:"total_facturas"`
	TotalActividades int64           `json:"total_actividades"`
	StockTotal       int64           `json:"stock_total"`
	TotalVentas      decimal.Decimal `json:"total_ventas"`
	FacturasHoy      int64           `json:"facturas_hoy"`
	TotalHoy         decimal.Decimal `json:"total_hoy"`
}
