package handler

import (
	"context"
	"net/http"

	"mireparto/internal/dto"
	"mireparto/internal/realtime"
	"mireparto/internal/service"

	"github.com/gin-gonic/gin"
)

type RepartosHandler struct {
	svc      service.RepartoService
	notifier realtime.Notifier
}

func NewRepartosHandler(svc service.RepartoService, notifier realtime.Notifier) *RepartosHandler {
	return &RepartosHandler{svc: svc, notifier: notifier}
}

// Crear godoc
// @Summary Guardar el reparto del día
// @Tags repartos
// @Accept json
// @Produce json
// @Param body body dto.GuardarRepartoRequest true "Reparto"
// @Success 201 {object} dto.RepartoResponse
// @Failure 422 {object} apierror.APIError
// @Router /v1/repartos [post]
func (h *RepartosHandler) Crear(c *gin.Context) {
	var req dto.GuardarRepartoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		responderError(c, err, "Reparto")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *RepartosHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		responderError(c, err, "Reparto")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RepartosHandler) ObtenerPorID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		responderError(c, err, "Reparto")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RepartosHandler) Actualizar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.GuardarRepartoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		responderError(c, err, "Reparto")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RepartosHandler) Eliminar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		responderError(c, err, "Reparto")
		return
	}
	c.Status(http.StatusNoContent)
}

// AlternarPago godoc
// @Summary Marcar pagado / pendiente (click simple)
// @Tags repartos
// @Produce json
// @Param id path string true "Reparto ID"
// @Param idx path int true "Posición del cliente"
// @Success 200 {object} dto.RepartoResponse
// @Router /v1/repartos/{id}/clientes/{idx}/toggle [post]
func (h *RepartosHandler) AlternarPago(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	idx, ok := parseIdx(c)
	if !ok {
		return
	}
	resp, err := h.svc.AlternarPago(c.Request.Context(), id, idx)
	if err != nil {
		responderError(c, err, "Cliente")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RepartosHandler) RegistrarPago(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	idx, ok := parseIdx(c)
	if !ok {
		return
	}
	var req dto.RegistrarPagoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarPago(c.Request.Context(), id, idx, req)
	if err != nil {
		responderError(c, err, "Cliente")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RepartosHandler) ActualizarImporte(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	idx, ok := parseIdx(c)
	if !ok {
		return
	}
	var req dto.ActualizarImporteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarImporte(c.Request.Context(), id, idx, req)
	if err != nil {
		responderError(c, err, "Cliente")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RepartosHandler) PDF(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	data, nombre, err := h.svc.PDF(c.Request.Context(), id)
	if err != nil {
		responderError(c, err, "Reparto")
		return
	}
	descargar(c, contentTypePDF, nombre, data)
}

func (h *RepartosHandler) Stream(c *gin.Context) {
	streamSnapshots(c, h.notifier, realtime.Repartos, func(ctx context.Context) (any, error) {
		return h.svc.Listar(ctx)
	})
}
