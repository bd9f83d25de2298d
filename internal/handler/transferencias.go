package handler

import (
	"context"
	"net/http"

	"mireparto/internal/dto"
	"mireparto/internal/realtime"
	"mireparto/internal/service"

	"github.com/gin-gonic/gin"
)

type TransferenciasHandler struct {
	svc      service.TransferenciaService
	notifier realtime.Notifier
}

func NewTransferenciasHandler(svc service.TransferenciaService, notifier realtime.Notifier) *TransferenciasHandler {
	return &TransferenciasHandler{svc: svc, notifier: notifier}
}

func (h *TransferenciasHandler) Calcular(c *gin.Context) {
	var req dto.TransferenciaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Calcular(c.Request.Context(), req)
	if err != nil {
		responderError(c, err, "Transferencia")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TransferenciasHandler) Crear(c *gin.Context) {
	var req dto.TransferenciaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		responderError(c, err, "Transferencia")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *TransferenciasHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		responderError(c, err, "Transferencia")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TransferenciasHandler) ObtenerPorID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		responderError(c, err, "Transferencia")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TransferenciasHandler) Reemplazar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.TransferenciaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Reemplazar(c.Request.Context(), id, req)
	if err != nil {
		responderError(c, err, "Transferencia")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TransferenciasHandler) Eliminar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		responderError(c, err, "Transferencia")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TransferenciasHandler) PDF(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	data, nombre, err := h.svc.PDF(c.Request.Context(), id)
	if err != nil {
		responderError(c, err, "Transferencia")
		return
	}
	descargar(c, contentTypePDF, nombre, data)
}

func (h *TransferenciasHandler) Stream(c *gin.Context) {
	streamSnapshots(c, h.notifier, realtime.Transferencias, func(ctx context.Context) (any, error) {
		return h.svc.Listar(ctx)
	})
}
