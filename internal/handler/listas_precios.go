package handler

import (
	"context"
	"net/http"

	"mireparto/internal/apierror"
	"mireparto/internal/dto"
	"mireparto/internal/realtime"
	"mireparto/internal/service"

	"github.com/gin-gonic/gin"
)

// maxPlanilla caps uploaded spreadsheets.
const maxPlanilla = 5 << 20

type ListasPreciosHandler struct {
	svc      service.ListaPreciosService
	notifier realtime.Notifier
}

func NewListasPreciosHandler(svc service.ListaPreciosService, notifier realtime.Notifier) *ListasPreciosHandler {
	return &ListasPreciosHandler{svc: svc, notifier: notifier}
}

func (h *ListasPreciosHandler) Crear(c *gin.Context) {
	var req dto.ListaPreciosRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		responderError(c, err, "Lista de precios")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// CrearMasivo godoc
// @Summary Guardar la misma lista para varios proveedores
// @Tags listas-precios
// @Accept json
// @Produce json
// @Param body body dto.ListaPreciosMasivaRequest true "Lista y proveedores"
// @Success 207 {object} dto.ListaPreciosMasivaResponse
// @Router /v1/listas-precios/masivo [post]
func (h *ListasPreciosHandler) CrearMasivo(c *gin.Context) {
	var req dto.ListaPreciosMasivaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearMasivo(c.Request.Context(), req)
	if err != nil {
		responderError(c, err, "Lista de precios")
		return
	}
	status := http.StatusCreated
	if resp.Fallidos > 0 {
		status = http.StatusMultiStatus
	}
	c.JSON(status, resp)
}

func (h *ListasPreciosHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		responderError(c, err, "Lista de precios")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ListasPreciosHandler) ObtenerPorID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		responderError(c, err, "Lista de precios")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ListasPreciosHandler) Actualizar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.ListaPreciosRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		responderError(c, err, "Lista de precios")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ListasPreciosHandler) Eliminar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		responderError(c, err, "Lista de precios")
		return
	}
	c.Status(http.StatusNoContent)
}

// Importar godoc
// @Summary Leer precios desde una planilla .xlsx (no guarda)
// @Tags listas-precios
// @Accept multipart/form-data
// @Produce json
// @Param archivo formData file true "Planilla"
// @Success 200 {object} dto.ImportacionPreciosResponse
// @Failure 422 {object} apierror.APIError
// @Router /v1/listas-precios/importar [post]
func (h *ListasPreciosHandler) Importar(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxPlanilla)
	fh, err := c.FormFile("archivo")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Falta el archivo"))
		return
	}
	f, err := fh.Open()
	if err != nil {
		responderError(c, err, "Planilla")
		return
	}
	defer f.Close()

	resp, err := h.svc.Importar(c.Request.Context(), f)
	if err != nil {
		responderError(c, err, "Planilla")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ListasPreciosHandler) Comparar(c *gin.Context) {
	var q dto.CompararPreciosQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Parámetros inválidos"))
		return
	}
	if !validar(c, &q) {
		return
	}
	resp, err := h.svc.Comparar(c.Request.Context(), q.Paquete)
	if err != nil {
		responderError(c, err, "Paquete")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ListasPreciosHandler) Stream(c *gin.Context) {
	streamSnapshots(c, h.notifier, realtime.ListasPrecios, func(ctx context.Context) (any, error) {
		return h.svc.Listar(ctx)
	})
}
