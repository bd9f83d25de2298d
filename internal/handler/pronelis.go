package handler

import (
	"context"
	"net/http"

	"mireparto/internal/dto"
	"mireparto/internal/realtime"
	"mireparto/internal/service"

	"github.com/gin-gonic/gin"
)

// PronelisHandler serves the product templates used to compare price lists.
type PronelisHandler struct {
	svc      service.PronelisService
	notifier realtime.Notifier
}

func NewPronelisHandler(svc service.PronelisService, notifier realtime.Notifier) *PronelisHandler {
	return &PronelisHandler{svc: svc, notifier: notifier}
}

func (h *PronelisHandler) Crear(c *gin.Context) {
	var req dto.PronelisRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		responderError(c, err, "Pronelis")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PronelisHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		responderError(c, err, "Pronelis")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PronelisHandler) ObtenerPorID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		responderError(c, err, "Pronelis")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PronelisHandler) Actualizar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.PronelisRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		responderError(c, err, "Pronelis")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PronelisHandler) Eliminar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		responderError(c, err, "Pronelis")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PronelisHandler) Stream(c *gin.Context) {
	streamSnapshots(c, h.notifier, realtime.Pronelis, func(ctx context.Context) (any, error) {
		return h.svc.Listar(ctx)
	})
}
