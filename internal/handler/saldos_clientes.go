package handler

import (
	"context"
	"net/http"

	"mireparto/internal/dto"
	"mireparto/internal/realtime"
	"mireparto/internal/service"

	"github.com/gin-gonic/gin"
)

type SaldosClientesHandler struct {
	svc      service.SaldoClienteService
	notifier realtime.Notifier
}

func NewSaldosClientesHandler(svc service.SaldoClienteService, notifier realtime.Notifier) *SaldosClientesHandler {
	return &SaldosClientesHandler{svc: svc, notifier: notifier}
}

// Calcular godoc
// @Summary Calcular saldo sin guardar
// @Tags saldos-clientes
// @Accept json
// @Produce json
// @Param body body dto.SaldoClienteRequest true "Movimientos del cliente"
// @Success 200 {object} dto.CalculoSaldoResponse
// @Failure 422 {object} apierror.APIError
// @Router /v1/saldos-clientes/calcular [post]
func (h *SaldosClientesHandler) Calcular(c *gin.Context) {
	var req dto.SaldoClienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Calcular(c.Request.Context(), req)
	if err != nil {
		responderError(c, err, "Saldo")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SaldosClientesHandler) Crear(c *gin.Context) {
	var req dto.SaldoClienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		responderError(c, err, "Saldo")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *SaldosClientesHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		responderError(c, err, "Saldo")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SaldosClientesHandler) ObtenerPorID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		responderError(c, err, "Saldo")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SaldosClientesHandler) Reemplazar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.SaldoClienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Reemplazar(c.Request.Context(), id, req)
	if err != nil {
		responderError(c, err, "Saldo")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SaldosClientesHandler) Eliminar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		responderError(c, err, "Saldo")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *SaldosClientesHandler) PDF(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	data, nombre, err := h.svc.PDF(c.Request.Context(), id)
	if err != nil {
		responderError(c, err, "Saldo")
		return
	}
	descargar(c, contentTypePDF, nombre, data)
}

// Enviar godoc
// @Summary Enviar el saldo por email (PDF adjunto)
// @Tags saldos-clientes
// @Accept json
// @Produce json
// @Param id path string true "Saldo ID"
// @Param body body dto.EnviarSaldoRequest true "Destinatario"
// @Success 202 {object} dto.EnvioResponse
// @Router /v1/saldos-clientes/{id}/enviar [post]
func (h *SaldosClientesHandler) Enviar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.EnviarSaldoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Enviar(c.Request.Context(), id, req)
	if err != nil {
		responderError(c, err, "Saldo")
		return
	}
	c.JSON(http.StatusAccepted, resp)
}

func (h *SaldosClientesHandler) Stream(c *gin.Context) {
	streamSnapshots(c, h.notifier, realtime.SaldosClientes, func(ctx context.Context) (any, error) {
		return h.svc.Listar(ctx)
	})
}
