package dto

import "github.com/shopspring/decimal"

// ─── Dashboard ───────────────────────────────────────────────────────────────

// DashboardResponse feeds the landing page: today's and this month's sales,
// products at or below their minimum stock, and progress toward the monthly
// goal.
type DashboardResponse struct {
	VentasHoy      int             `json:"ventas_hoy"`
	TotalHoy       decimal.Decimal `json:"total_hoy"`
	VentasMes      int             `json:"ventas_mes"`
	TotalMes       decimal.Decimal `json:"total_mes"`
	StockBajo      []ProductoResponse `json:"stock_bajo"`
	Meta           *MetaResponse      `json:"meta"`
	AvanceMetaPct  *decimal.Decimal   `json:"avance_meta_pct"`
}

// ─── Metas ───────────────────────────────────────────────────────────────────

type GuardarMetaRequest struct {
	Anio          int             `json:"anio"           validate:"required,min=2020,max=2100"`
	Mes           int             `json:"mes"            validate:"required,min=1,max=12"`
	MontoObjetivo decimal.Decimal `json:"monto_objetivo" validate:"required"`
}

type MetaResponse struct {
	ID            string          `json:"id"`
	Anio          int             `json:"anio"`
	Mes           int             `json:"mes"`
	MontoObjetivo decimal.Decimal `json:"monto_objetivo"`
}

// ─── Movimientos ─────────────────────────────────────────────────────────────

type MovimientoResponse struct {
	ID            string  `json:"id"`
	ProductoID    string  `json:"producto_id"`
	Producto      string  `json:"producto"`
	Tipo          string  `json:"tipo"`
	Cantidad      int     `json:"cantidad"`
	StockAnterior int     `json:"stock_anterior"`
	StockNuevo    int     `json:"stock_nuevo"`
	Motivo        string  `json:"motivo"`
	ReferenciaID  *string `json:"referencia_id"`
	CreatedAt     string  `json:"created_at"`
}

type MovimientoListResponse struct {
	Data  []MovimientoResponse `json:"data"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}
