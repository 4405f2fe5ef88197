package handler

import (
	"errors"
	"net/http"

	"gestinv/internal/apierror"
	"gestinv/internal/dto"
	"gestinv/internal/infra"
	"gestinv/internal/repository"
	"gestinv/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type FacturasHandler struct {
	svc         service.FacturaService
	facturaRepo repository.FacturaRepository
	pdfPath     string
}

func NewFacturasHandler(svc service.FacturaService, facturaRepo repository.FacturaRepository, pdfPath string) *FacturasHandler {
	return &FacturasHandler{svc: svc, facturaRepo: facturaRepo, pdfPath: pdfPath}
}

func (h *FacturasHandler) Crear(c *gin.Context) {
	var req dto.CrearFacturaRequest
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

func (h *FacturasHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar facturas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FacturasHandler) ObtenerPorID(c *gin.Context) {
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

func (h *FacturasHandler) Actualizar(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.ActualizarFacturaRequest
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

func (h *FacturasHandler) Eliminar(c *gin.Context) {
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

// DescargarPDF renders the invoice as a PDF receipt and serves the file.
func (h *FacturasHandler) DescargarPDF(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	factura, err := h.facturaRepo.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("Factura no encontrada"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Error al consultar la factura"))
		return
	}

	path, err := infra.GenerateFacturaPDF(factura, h.pdfPath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al generar el PDF"))
		return
	}
	c.FileAttachment(path, "factura_"+factura.NumeroFactura+".pdf")
}
