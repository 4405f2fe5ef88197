package handler

import (
	"net/http"

	"gestinv/internal/service"

	"github.com/gin-gonic/gin"
)

type ResumenHandler struct{ svc service.ResumenService }

func NewResumenHandler(svc service.ResumenService) *ResumenHandler {
	return &ResumenHandler{svc: svc}
}

// Obtener returns the executive summary. ?fecha=AAAA-MM-DD scopes the daily
// figures; without it the current day is used.
func (h *ResumenHandler) Obtener(c *gin.Context) {
	resp, err := h.svc.Resumir(c.Request.Context(), c.Query("fecha"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
