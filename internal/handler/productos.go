package handler

import (
	"encoding/csv"
	"net/http"
	"strconv"

	"gestinv/internal/apierror"
	"gestinv/internal/dto"
	"gestinv/internal/service"

	"github.com/gin-gonic/gin"
)

type ProductosHandler struct{ svc service.ProductoService }

func NewProductosHandler(svc service.ProductoService) *ProductosHandler {
	return &ProductosHandler{svc: svc}
}

func (h *ProductosHandler) Crear(c *gin.Context) {
	var req dto.CrearProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ProductosHandler) Listar(c *gin.Context) {
	var filter dto.ProductoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar productos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductosHandler) ObtenerPorID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductosHandler) Actualizar(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.ActualizarProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductosHandler) Eliminar(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// BajoStock lists products whose stock is at or below their minimum.
func (h *ProductosHandler) BajoStock(c *gin.Context) {
	resp, err := h.svc.BajoStock(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al consultar stock bajo"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ReporteBajoStock streams the low-stock report as a CSV attachment.
func (h *ProductosHandler) ReporteBajoStock(c *gin.Context) {
	productos, err := h.svc.BajoStock(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al generar el reporte"))
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="reporte_bajo_stock.csv"`)

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"Nombre", "Descripción", "Stock", "Stock Mínimo"})
	for _, p := range productos {
		nombre, descripcion := "", ""
		if p.Nombre != nil {
			nombre = *p.Nombre
		}
		if p.Descripcion != nil {
			descripcion = *p.Descripcion
		}
		_ = w.Write([]string{
			nombre,
			descripcion,
			strconv.Itoa(p.Cantidad),
			strconv.Itoa(p.StockMinimo),
		})
	}
	w.Flush()
}
