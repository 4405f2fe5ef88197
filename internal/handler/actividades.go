package handler

import (
	"net/http"

	"gestinv/internal/apierror"
	"gestinv/internal/dto"
	"gestinv/internal/service"

	"github.com/gin-gonic/gin"
)

type ActividadesHandler struct{ svc service.ActividadService }

func NewActividadesHandler(svc service.ActividadService) *ActividadesHandler {
	return &ActividadesHandler{svc: svc}
}

func (h *ActividadesHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarActividadRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Registrar(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ActividadesHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar actividades"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ActividadesHandler) ObtenerPorID(c *gin.Context) {
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
