package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/GabMond07/Salty-Sweety-POS-sub000/internal/apierror"
	"github.com/GabMond07/Salty-Sweety-POS-sub000/internal/repository"
	"github.com/GabMond07/Salty-Sweety-POS-sub000/internal/service"
)

type InventarioHandler struct{ svc service.ReporteService }

func NewInventarioHandler(svc service.ReporteService) *InventarioHandler {
	return &InventarioHandler{svc: svc}
}

// ListarMovimientos godoc
// @Summary Historial de movimientos de inventario
// @Description Registro append-only de cada cambio de stock: ventas, ajustes y devoluciones.
// @Tags inventario
// @Produce json
// @Security BearerAuth
// @Param producto_id query string false "UUID del producto"
// @Param tipo query string false "venta | ajuste | devolucion"
// @Param page query int false "Página (default 1)"
// @Param limit query int false "Registros por página (default 100)"
// @Success 200 {object} dto.MovimientoListResponse
// @Router /v1/inventario/movimientos [get]
func (h *InventarioHandler) ListarMovimientos(c *gin.Context) {
	filter := repository.MovimientoFilter{
		Tipo: c.Query("tipo"),
	}
	if raw := c.Query("producto_id"); raw != "" {
		pid, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("producto_id invalido"))
			return
		}
		filter.ProductoID = &pid
	}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "100"))

	resp, err := h.svc.ListMovimientos(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar movimientos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
