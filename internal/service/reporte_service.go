package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/GabMond07/Salty-Sweety-POS-sub000/internal/dto"
	"github.com/GabMond07/Salty-Sweety-POS-sub000/internal/infra"
	"github.com/GabMond07/Salty-Sweety-POS-sub000/internal/model"
	"github.com/GabMond07/Salty-Sweety-POS-sub000/internal/repository"
)

const (
	cacheKeyDashboard = "dashboard:resumen"
	cacheTTLDashboard = 60 * time.Second
)

// ReporteService aggregates sales history into the dashboard, monthly goals
// and the CSV/PDF exports.
type ReporteService interface {
	Dashboard(ctx context.Context) (*dto.DashboardResponse, error)
	GuardarMeta(ctx context.Context, req dto.GuardarMetaRequest) (*dto.MetaResponse, error)
	ListarMetas(ctx context.Context, anio int) ([]dto.MetaResponse, error)
	ExportVentasCSV(ctx context.Context, desde, hasta time.Time) ([]byte, error)
	ExportVentasPDF(ctx context.Context, desde, hasta time.Time) ([]byte, error)
	ListMovimientos(ctx context.Context, filter repository.MovimientoFilter) (*dto.MovimientoListResponse, error)
}

type reporteService struct {
	ventaRepo    repository.VentaRepository
	productoRepo repository.ProductoRepository
	metaRepo     repository.MetaRepository
	movRepo      repository.MovimientoRepository
	pdf          *infra.PDFGenerator
	rdb          *redis.Client
}

func NewReporteService(
	ventaRepo repository.VentaRepository,
	productoRepo repository.ProductoRepository,
	metaRepo repository.MetaRepository,
	movRepo repository.MovimientoRepository,
	pdf *infra.PDFGenerator,
	rdb *redis.Client,
) ReporteService {
	return &reporteService{
		ventaRepo:    ventaRepo,
		productoRepo: productoRepo,
		metaRepo:     metaRepo,
		movRepo:      movRepo,
		pdf:          pdf,
		rdb:          rdb,
	}
}

// Dashboard computes today's and this month's totals, low-stock products and
// goal progress. The payload is cached in Redis for a short window; any
// mutation path (ventas, stock, metas) drops the key.
func (s *reporteService) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, cacheKeyDashboard).Bytes(); err == nil {
			var cached dto.DashboardResponse
			if json.Unmarshal(raw, &cached) == nil {
				return &cached, nil
			}
		}
	}

	ahora := time.Now()
	inicioDia := time.Date(ahora.Year(), ahora.Month(), ahora.Day(), 0, 0, 0, 0, ahora.Location())
	inicioMes := time.Date(ahora.Year(), ahora.Month(), 1, 0, 0, 0, 0, ahora.Location())
	manana := inicioDia.AddDate(0, 0, 1)

	ventasHoy, totalHoy, err := s.ventaRepo.ResumenEntre(ctx, inicioDia, manana)
	if err != nil {
		return nil, err
	}
	ventasMes, totalMes, err := s.ventaRepo.ResumenEntre(ctx, inicioMes, manana)
	if err != nil {
		return nil, err
	}

	stockBajo, err := s.productoRepo.ListStockBajo(ctx)
	if err != nil {
		return nil, err
	}
	bajos := make([]dto.ProductoResponse, 0, len(stockBajo))
	for _, p := range stockBajo {
		bajos = append(bajos, *productoToResponse(&p))
	}

	resp := &dto.DashboardResponse{
		VentasHoy: ventasHoy,
		TotalHoy:  totalHoy,
		VentasMes: ventasMes,
		TotalMes:  totalMes,
		StockBajo: bajos,
	}

	if meta, err := s.metaRepo.FindPorPeriodo(ctx, ahora.Year(), int(ahora.Month())); err == nil {
		resp.Meta = metaToResponse(meta)
		if meta.MontoObjetivo.IsPositive() {
			pct := totalMes.Div(meta.MontoObjetivo).Mul(decimal.NewFromInt(100)).Round(1)
			resp.AvanceMetaPct = &pct
		}
	}

	if s.rdb != nil {
		if raw, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, cacheKeyDashboard, raw, cacheTTLDashboard).Err(); err != nil {
				log.Warn().Err(err).Msg("no se pudo cachear el dashboard")
			}
		}
	}
	return resp, nil
}

func (s *reporteService) GuardarMeta(ctx context.Context, req dto.GuardarMetaRequest) (*dto.MetaResponse, error) {
	m := &model.Meta{
		Anio:          req.Anio,
		Mes:           req.Mes,
		MontoObjetivo: req.MontoObjetivo,
	}
	if err := s.metaRepo.Upsert(ctx, m); err != nil {
		return nil, err
	}
	if s.rdb != nil {
		_ = s.rdb.Del(ctx, cacheKeyDashboard).Err()
	}
	return metaToResponse(m), nil
}

func (s *reporteService) ListarMetas(ctx context.Context, anio int) ([]dto.MetaResponse, error) {
	metas, err := s.metaRepo.List(ctx, anio)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MetaResponse, 0, len(metas))
	for _, m := range metas {
		out = append(out, *metaToResponse(&m))
	}
	return out, nil
}

// ExportVentasCSV renders the sales of [desde, hasta) as CSV with one row per
// venta: id, fecha, cliente, total, metodo_pago. Sales without a registered
// client export as "Cliente general".
func (s *reporteService) ExportVentasCSV(ctx context.Context, desde, hasta time.Time) ([]byte, error) {
	ventas, err := s.ventaRepo.ListEntre(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"id", "fecha", "cliente", "total", "metodo_pago"}); err != nil {
		return nil, err
	}
	for _, v := range ventas {
		cliente := "Cliente general"
		if v.Cliente != nil {
			cliente = v.Cliente.Nombre
		}
		row := []string{
			v.ID.String(),
			v.CreatedAt.Format("2006-01-02 15:04"),
			cliente,
			v.Total.StringFixed(2),
			v.MetodoPago,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *reporteService) ExportVentasPDF(ctx context.Context, desde, hasta time.Time) ([]byte, error) {
	ventas, err := s.ventaRepo.ListEntre(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}
	return s.pdf.GenerarReporteVentas(ventas, desde, hasta)
}

func (s *reporteService) ListMovimientos(ctx context.Context, filter repository.MovimientoFilter) (*dto.MovimientoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 100
	}
	movimientos, total, err := s.movRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.MovimientoResponse, 0, len(movimientos))
	for _, m := range movimientos {
		data = append(data, *movimientoToResponse(&m))
	}
	return &dto.MovimientoListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func metaToResponse(m *model.Meta) *dto.MetaResponse {
	return &dto.MetaResponse{
		ID:            m.ID.String(),
		Anio:          m.Anio,
		Mes:           m.Mes,
		MontoObjetivo: m.MontoObjetivo,
	}
}

func movimientoToResponse(m *model.MovimientoInventario) *dto.MovimientoResponse {
	resp := &dto.MovimientoResponse{
		ID:            m.ID.String(),
		ProductoID:    m.ProductoID.String(),
		Tipo:          m.Tipo,
		Cantidad:      m.Cantidad,
		StockAnterior: m.StockAnterior,
		StockNuevo:    m.StockNuevo,
		Motivo:        m.Motivo,
		CreatedAt:     m.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if m.Producto != nil {
		resp.Producto = m.Producto.Nombre
	}
	if m.ReferenciaID != nil {
		ref := m.ReferenciaID.String()
		resp.ReferenciaID = &ref
	}
	return resp
}
