package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GabMond07/Salty-Sweety-POS-sub000/internal/apierror"
	"github.com/GabMond07/Salty-Sweety-POS-sub000/internal/dto"
	"github.com/GabMond07/Salty-Sweety-POS-sub000/internal/service"
)

type ReportesHandler struct{ svc service.ReporteService }

func NewReportesHandler(svc service.ReporteService) *ReportesHandler {
	return &ReportesHandler{svc: svc}
}

// Dashboard godoc
// @Summary Resumen para el panel principal
// @Description Ventas de hoy y del mes, productos con stock bajo y avance de la meta mensual.
// @Tags reportes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.DashboardResponse
// @Router /v1/reportes/dashboard [get]
func (h *ReportesHandler) Dashboard(c *gin.Context) {
	resp, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al calcular el dashboard"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExportarVentas godoc
// @Summary Exportar historial de ventas
// @Description Descarga las ventas del rango [desde, hasta] como CSV o PDF.
// @Tags reportes
// @Produce octet-stream
// @Security BearerAuth
// @Param formato query string false "csv | pdf (default csv)"
// @Param desde query string false "YYYY-MM-DD (default: primer día del mes)"
// @Param hasta query string false "YYYY-MM-DD inclusive (default: hoy)"
// @Success 200 {file} file
// @Failure 400 {object} apierror.APIError
// @Router /v1/reportes/ventas/export [get]
func (h *ReportesHandler) ExportarVentas(c *gin.Context) {
	desde, hasta, err := rangoFechas(c.Query("desde"), c.Query("hasta"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}

	switch c.DefaultQuery("formato", "csv") {
	case "csv":
		data, err := h.svc.ExportVentasCSV(c.Request.Context(), desde, hasta)
		if err != nil {
			c.JSON(http.StatusInternalServerError, apierror.New("Error al exportar ventas"))
			return
		}
		nombre := fmt.Sprintf("ventas_%s_%s.csv", desde.Format("20060102"), hasta.AddDate(0, 0, -1).Format("20060102"))
		c.Header("Content-Disposition", `attachment; filename="`+nombre+`"`)
		c.Data(http.StatusOK, "text/csv", data)
	case "pdf":
		data, err := h.svc.ExportVentasPDF(c.Request.Context(), desde, hasta)
		if err != nil {
			c.JSON(http.StatusInternalServerError, apierror.New("Error al exportar ventas"))
			return
		}
		nombre := fmt.Sprintf("ventas_%s_%s.pdf", desde.Format("20060102"), hasta.AddDate(0, 0, -1).Format("20060102"))
		c.Header("Content-Disposition", `attachment; filename="`+nombre+`"`)
		c.Data(http.StatusOK, "application/pdf", data)
	default:
		c.JSON(http.StatusBadRequest, apierror.New("formato debe ser csv o pdf"))
	}
}

// GuardarMeta godoc
// @Summary Fijar la meta mensual de ventas
// @Tags reportes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.GuardarMetaRequest true "Meta del período"
// @Success 200 {object} dto.MetaResponse
// @Router /v1/reportes/metas [put]
func (h *ReportesHandler) GuardarMeta(c *gin.Context) {
	var req dto.GuardarMetaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.GuardarMeta(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportesHandler) ListarMetas(c *gin.Context) {
	anio, err := strconv.Atoi(c.DefaultQuery("anio", strconv.Itoa(time.Now().Year())))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("anio invalido"))
		return
	}
	resp, err := h.svc.ListarMetas(c.Request.Context(), anio)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar metas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// rangoFechas resolves the [desde, hasta) export window. "hasta" is inclusive
// on the wire, exclusive internally.
func rangoFechas(desdeStr, hastaStr string) (time.Time, time.Time, error) {
	ahora := time.Now()
	desde := time.Date(ahora.Year(), ahora.Month(), 1, 0, 0, 0, 0, ahora.Location())
	hasta := time.Date(ahora.Year(), ahora.Month(), ahora.Day(), 0, 0, 0, 0, ahora.Location()).AddDate(0, 0, 1)

	if desdeStr != "" {
		d, err := time.ParseInLocation("2006-01-02", desdeStr, ahora.Location())
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("desde invalido: use YYYY-MM-DD")
		}
		desde = d
	}
	if hastaStr != "" {
		h, err := time.ParseInLocation("2006-01-02", hastaStr, ahora.Location())
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("hasta invalido: use YYYY-MM-DD")
		}
		hasta = h.AddDate(0, 0, 1)
	}
	if !hasta.After(desde) {
		return time.Time{}, time.Time{}, fmt.Errorf("el rango de fechas es invalido")
	}
	return desde, hasta, nil
}
