package handler

import (
	"context"
	"net/http"

	"mireparto/internal/dto"
	"mireparto/internal/realtime"
	"mireparto/internal/service"

	"github.com/gin-gonic/gin"
)

type ProveedoresHandler struct {
	svc      service.ProveedorService
	notifier realtime.Notifier
}

func NewProveedoresHandler(svc service.ProveedorService, notifier realtime.Notifier) *ProveedoresHandler {
	return &ProveedoresHandler{svc: svc, notifier: notifier}
}

func (h *ProveedoresHandler) Crear(c *gin.Context) {
	var req dto.CrearProveedorRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		responderError(c, err, "Proveedor")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ProveedoresHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		responderError(c, err, "Proveedor")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProveedoresHandler) ObtenerPorID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		responderError(c, err, "Proveedor")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProveedoresHandler) Actualizar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.ActualizarProveedorRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		responderError(c, err, "Proveedor")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProveedoresHandler) Eliminar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		responderError(c, err, "Proveedor")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProveedoresHandler) Stream(c *gin.Context) {
	streamSnapshots(c, h.notifier, realtime.Proveedores, func(ctx context.Context) (any, error) {
		return h.svc.Listar(ctx)
	})
}
