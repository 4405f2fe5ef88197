package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type RegistrarActividadRequest struct {
	Tipo        string  `json:"tipo"        validate:"required,oneof=venta actualizacion factura otro"`
	FacturaID   *string `json:"factura"     validate:"omitempty,uuid"`
	Descripcion *string `json:"descripcion"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ActividadResponse struct {
	ID          string  `json:"id"`
	Tipo        string  `json:"tipo"`
	FacturaID   *string `json:"factura"`
	Descripcion string  `json:"descripcion"`
	Fecha       string  `json:"fecha"`
}
