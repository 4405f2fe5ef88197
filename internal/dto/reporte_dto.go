package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// Filtro no lleva oneof: un filtro desconocido produce un conjunto vacío de
// datos, no un error de validación.

type CrearReporteRequest struct {
	Tipo        string  `json:"tipo"         validate:"required,oneof=general personalizado estadistico operativo financiero"`
	Filtro      string  `json:"filtro"       validate:"required"`
	FechaInicio *string `json:"fecha_inicio"`
	FechaFin    *string `json:"fecha_fin"`
}

type ActualizarReporteRequest struct {
	Tipo        *string `json:"tipo"         validate:"omitempty,oneof=general personalizado estadistico operativo financiero"`
	Filtro      *string `json:"filtro"`
	FechaInicio *string `json:"fecha_inicio"`
	FechaFin    *string `json:"fecha_fin"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// Datos siempre se recalcula en vivo a partir de (filtro, rango); nunca se
// sirve desde almacenamiento.
type ReporteResponse struct {
	ID          string  `json:"id"`
	Tipo        string  `json:"tipo"`
	Filtro      string  `json:"filtro"`
	FechaInicio *string `json:"fecha_inicio"`
	FechaFin    *string `json:"fecha_fin"`
	Datos       any     `json:"datos"`
	CreatedAt   string  `json:"fecha_creacion"`
}

type EliminarReporteResponse struct {
	Detalle string `json:"detalle"`
}

// ─── Proyecciones por filtro ─────────────────────────────────────────────────

type FilaFacturaReporte struct {
	ID            string  `json:"id"`
	Producto      *string `json:"producto"`
	Cantidad      int     `json:"cantidad"`
	FechaSalida   *string `json:"fecha_salida"`
	NumeroFactura string  `json:"numero_factura"`
}

type FilaProductoReporte struct {
	ID        string  `json:"id"`
	Nombre    *string `json:"nombre"`
	Marca     *string `json:"marca"`
	Serial    *string `json:"serial"`
	Cantidad  int     `json:"cantidad"`
	Estado    string  `json:"estado"`
	Categoria *string `json:"categoria"`
}

type FilaCategoriaReporte struct {
	ID          string  `json:"id"`
	Nombre      string  `json:"nombre"`
	Descripcion *string `json:"descripcion"`
}

type FilaUsuarioReporte struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	Telefono      string `json:"telefono"`
	Rol           string `json:"rol"`
	Activo        bool   `json:"activo"`
	FechaCreacion string `json:"fecha_creacion"`
}
