package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"mireparto/internal/apierror"
	"mireparto/internal/dto"
	"mireparto/internal/middleware"
	"mireparto/internal/service"

	"github.com/gin-gonic/gin"
)

// SemanaHandler serves the weekly ledger of the authenticated user.
type SemanaHandler struct{ svc service.SemanaService }

func NewSemanaHandler(svc service.SemanaService) *SemanaHandler { return &SemanaHandler{svc: svc} }

func (h *SemanaHandler) Obtener(c *gin.Context) {
	resp, err := h.svc.Obtener(c.Request.Context(), middleware.UsuarioID(c))
	if err != nil {
		responderError(c, err, "Semana")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SemanaHandler) Reemplazar(c *gin.Context) {
	var req dto.SemanaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Reemplazar(c.Request.Context(), middleware.UsuarioID(c), req)
	if err != nil {
		responderError(c, err, "Semana")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Agregar appends one entry to a list of the ledger (mercaderia, gastos...).
// The body shape depends on the list, so it is decoded by the service.
func (h *SemanaHandler) Agregar(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("No se pudo leer el cuerpo"))
		return
	}
	resp, err := h.svc.Agregar(c.Request.Context(), middleware.UsuarioID(c), c.Param("lista"), json.RawMessage(body))
	if err != nil {
		responderError(c, err, "Lista")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SemanaHandler) Eliminar(c *gin.Context) {
	if err := h.svc.Eliminar(c.Request.Context(), middleware.UsuarioID(c)); err != nil {
		responderError(c, err, "Semana")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *SemanaHandler) Resumen(c *gin.Context) {
	resp, err := h.svc.Resumen(c.Request.Context(), middleware.UsuarioID(c))
	if err != nil {
		responderError(c, err, "Semana")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SemanaHandler) XLSX(c *gin.Context) {
	data, nombre, err := h.svc.XLSX(c.Request.Context(), middleware.UsuarioID(c))
	if err != nil {
		responderError(c, err, "Semana")
		return
	}
	descargar(c, contentTypeXLSX, nombre, data)
}
