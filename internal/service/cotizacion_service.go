package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/GabMond07/Salty-Sweety-POS-sub000/internal/cart"
	"github.com/GabMond07/Salty-Sweety-POS-sub000/internal/dto"
	"github.com/GabMond07/Salty-Sweety-POS-sub000/internal/model"
	"github.com/GabMond07/Salty-Sweety-POS-sub000/internal/repository"
	"github.com/GabMond07/Salty-Sweety-POS-sub000/internal/worker"
)

var (
	ErrCotizacionNoEncontrada      = errors.New("cotización no encontrada")
	ErrEstadoNoPendiente           = errors.New("la cotización ya no está pendiente")
	ErrTransicionSoloPersonalizada = errors.New("solo las cotizaciones personalizadas se aceptan o rechazan")
)

type CotizacionService interface {
	Crear(ctx context.Context, req dto.CrearCotizacionRequest) (*dto.CotizacionResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.CotizacionResponse, error)
	Listar(ctx context.Context, filter dto.CotizacionFilter) (*dto.CotizacionListResponse, error)
	CambiarEstado(ctx context.Context, id uuid.UUID, estado string) (*dto.CotizacionResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type cotizacionService struct {
	repo            repository.CotizacionRepository
	productoRepo    repository.ProductoRepository
	ingredienteRepo repository.IngredienteRepository
	clienteRepo     repository.ClienteRepository
	dispatcher      *worker.Dispatcher
}

func NewCotizacionService(
	repo repository.CotizacionRepository,
	productoRepo repository.ProductoRepository,
	ingredienteRepo repository.IngredienteRepository,
	clienteRepo repository.ClienteRepository,
	dispatcher *worker.Dispatcher,
) CotizacionService {
	return &cotizacionService{
		repo:            repo,
		productoRepo:    productoRepo,
		ingredienteRepo: ingredienteRepo,
		clienteRepo:     clienteRepo,
		dispatcher:      dispatcher,
	}
}

// ── Crear ─────────────────────────────────────────────────────────────────────
// A cotizacion is a proposal: no stock or movimiento side effects, ever.
// The request is a tagged union — the tipo discriminant selects which shape
// must be present, and all validation happens before any write.

func (s *cotizacionService) Crear(ctx context.Context, req dto.CrearCotizacionRequest) (*dto.CotizacionResponse, error) {
	switch req.Tipo {
	case "personalizada":
		if req.Personalizada == nil {
			return nil, errors.New("faltan los datos de la cotización personalizada")
		}
		return s.crearPersonalizada(ctx, req.Personalizada, req.EmailCliente)
	case "estandar":
		if req.Estandar == nil {
			return nil, errors.New("faltan los datos de la cotización estándar")
		}
		return s.crearEstandar(ctx, req.Estandar, req.EmailCliente)
	default:
		return nil, fmt.Errorf("tipo de cotización desconocido: %q", req.Tipo)
	}
}

func (s *cotizacionService) crearPersonalizada(ctx context.Context, data *dto.PersonalizadaData, emailCliente *string) (*dto.CotizacionResponse, error) {
	if len(data.Items) == 0 && len(data.Ingredientes) == 0 {
		return nil, errors.New("la cotización no tiene líneas")
	}

	clienteID, err := uuid.Parse(data.ClienteID)
	if err != nil {
		return nil, fmt.Errorf("cliente_id inválido: %w", err)
	}
	cliente, err := s.clienteRepo.FindByID(ctx, clienteID)
	if err != nil {
		return nil, errors.New("cliente no encontrado")
	}
	validaHasta, err := time.Parse("2006-01-02", data.ValidaHasta)
	if err != nil {
		return nil, fmt.Errorf("valida_hasta inválida: %w", err)
	}

	carrito, err := s.armarCarrito(ctx, data.Items, data.Ingredientes)
	if err != nil {
		return nil, err
	}

	cot := &model.Cotizacion{
		Tipo:        "personalizada",
		Estado:      "pendiente",
		ClienteID:   &clienteID,
		ValidaHasta: &validaHasta,
		Total:       carrito.Total(),
	}
	fillLineas(cot, carrito)

	if err := s.repo.Create(ctx, s.repo.DB(), cot); err != nil {
		return nil, err
	}
	cot.Cliente = cliente

	s.despacharPDF(ctx, cot.ID, emailCliente)
	return cotizacionToResponse(cot), nil
}

func (s *cotizacionService) crearEstandar(ctx context.Context, data *dto.EstandarData, emailCliente *string) (*dto.CotizacionResponse, error) {
	// estandar: ingredient lines only, no cliente, no validity date
	if data.NombreProducto == "" {
		return nil, errors.New("la cotización estándar requiere un nombre de producto")
	}
	if len(data.Ingredientes) == 0 {
		return nil, errors.New("la cotización estándar requiere al menos un ingrediente")
	}

	carrito, err := s.armarCarrito(ctx, nil, data.Ingredientes)
	if err != nil {
		return nil, err
	}

	nombre := data.NombreProducto
	cot := &model.Cotizacion{
		Tipo:           "estandar",
		Estado:         "pendiente",
		NombreProducto: &nombre,
		Total:          carrito.Total(),
	}
	fillLineas(cot, carrito)

	if err := s.repo.Create(ctx, s.repo.DB(), cot); err != nil {
		return nil, err
	}

	s.despacharPDF(ctx, cot.ID, emailCliente)
	return cotizacionToResponse(cot), nil
}

// armarCarrito resolves product and ingredient references and accumulates
// them into a quotation cart with unit-price snapshots.
func (s *cotizacionService) armarCarrito(ctx context.Context, items []dto.ItemCotizacionRequest, ingredientes []dto.IngredienteCotizacionRequest) (*cart.CarritoCotizacion, error) {
	var carrito cart.CarritoCotizacion

	for _, item := range items {
		pid, err := uuid.Parse(item.ProductoID)
		if err != nil {
			return nil, fmt.Errorf("producto_id inválido: %w", err)
		}
		p, err := s.productoRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, fmt.Errorf("producto %s no encontrado", item.ProductoID)
		}
		carrito.AgregarProducto(p)
		carrito.ActualizarCantidadProducto(pid, item.Cantidad)
	}

	for _, linea := range ingredientes {
		iid, err := uuid.Parse(linea.IngredienteID)
		if err != nil {
			return nil, fmt.Errorf("ingrediente_id inválido: %w", err)
		}
		ing, err := s.ingredienteRepo.FindByID(ctx, iid)
		if err != nil {
			return nil, fmt.Errorf("ingrediente %s no encontrado", linea.IngredienteID)
		}
		if !ing.Activo {
			return nil, fmt.Errorf("ingrediente %s está inactivo", ing.Nombre)
		}
		carrito.AgregarIngrediente(ing, linea.Cantidad, linea.Notas)
	}

	if carrito.Vacio() {
		return nil, errors.New("la cotización no tiene líneas")
	}
	return &carrito, nil
}

func fillLineas(cot *model.Cotizacion, carrito *cart.CarritoCotizacion) {
	for _, l := range carrito.LineasProducto() {
		cot.Items = append(cot.Items, model.CotizacionItem{
			ProductoID:     l.ProductoID,
			Cantidad:       l.Cantidad,
			PrecioUnitario: l.PrecioUnitario,
			Subtotal:       l.Subtotal(),
		})
	}
	for _, l := range carrito.LineasIngrediente() {
		var notas *string
		if l.Notas != "" {
			n := l.Notas
			notas = &n
		}
		cot.Ingredientes = append(cot.Ingredientes, model.CotizacionIngrediente{
			IngredienteID:  l.IngredienteID,
			Cantidad:       l.Cantidad,
			PrecioUnitario: l.PrecioUnitario,
			Subtotal:       l.Subtotal(),
			Notas:          notas,
		})
	}
}

// despacharPDF enqueues the async PDF render (and optional email) job.
// Best effort — a full queue never fails the commit.
func (s *cotizacionService) despacharPDF(ctx context.Context, cotizacionID uuid.UUID, emailCliente *string) {
	if s.dispatcher == nil {
		return
	}
	payload := map[string]interface{}{"cotizacion_id": cotizacionID.String()}
	if emailCliente != nil && *emailCliente != "" {
		payload["email_cliente"] = *emailCliente
	}
	_ = s.dispatcher.EnqueueCotizacionPDF(ctx, payload)
}

// ── CambiarEstado ─────────────────────────────────────────────────────────────
// pendiente → {aceptada, rechazada}; both terminal; personalizada only.

func (s *cotizacionService) CambiarEstado(ctx context.Context, id uuid.UUID, estado string) (*dto.CotizacionResponse, error) {
	cot, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrCotizacionNoEncontrada
	}
	if cot.Tipo != "personalizada" {
		return nil, ErrTransicionSoloPersonalizada
	}
	if cot.Estado != "pendiente" {
		return nil, ErrEstadoNoPendiente
	}
	if err := s.repo.UpdateEstado(ctx, id, estado); err != nil {
		return nil, err
	}
	cot.Estado = estado
	return cotizacionToResponse(cot), nil
}

func (s *cotizacionService) Obtener(ctx context.Context, id uuid.UUID) (*dto.CotizacionResponse, error) {
	cot, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrCotizacionNoEncontrada
	}
	return cotizacionToResponse(cot), nil
}

func (s *cotizacionService) Listar(ctx context.Context, filter dto.CotizacionFilter) (*dto.CotizacionListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	cotizaciones, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.CotizacionResponse, 0, len(cotizaciones))
	for _, c := range cotizaciones {
		data = append(data, *cotizacionToResponse(&c))
	}
	return &dto.CotizacionListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *cotizacionService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrCotizacionNoEncontrada
	}
	return s.repo.DeleteConLineas(ctx, id)
}

func cotizacionToResponse(c *model.Cotizacion) *dto.CotizacionResponse {
	items := make([]dto.ItemCotizacionResponse, 0, len(c.Items))
	for _, item := range c.Items {
		nombre := ""
		if item.Producto != nil {
			nombre = item.Producto.Nombre
		}
		items = append(items, dto.ItemCotizacionResponse{
			ProductoID:     item.ProductoID.String(),
			Producto:       nombre,
			Cantidad:       item.Cantidad,
			PrecioUnitario: item.PrecioUnitario,
			Subtotal:       item.Subtotal,
		})
	}

	ingredientes := make([]dto.IngredienteCotizacionResponse, 0, len(c.Ingredientes))
	for _, linea := range c.Ingredientes {
		nombre, unidad := "", ""
		if linea.Ingrediente != nil {
			nombre = linea.Ingrediente.Nombre
			unidad = linea.Ingrediente.UnidadMedida
		}
		ingredientes = append(ingredientes, dto.IngredienteCotizacionResponse{
			IngredienteID:  linea.IngredienteID.String(),
			Ingrediente:    nombre,
			UnidadMedida:   unidad,
			Cantidad:       linea.Cantidad,
			PrecioUnitario: linea.PrecioUnitario,
			Subtotal:       linea.Subtotal,
			Notas:          linea.Notas,
		})
	}

	resp := &dto.CotizacionResponse{
		ID:             c.ID.String(),
		Tipo:           c.Tipo,
		Estado:         c.Estado,
		NombreProducto: c.NombreProducto,
		Total:          c.Total,
		Items:          items,
		Ingredientes:   ingredientes,
		CreatedAt:      c.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if c.ClienteID != nil {
		cid := c.ClienteID.String()
		resp.ClienteID = &cid
		if c.Cliente != nil {
			resp.Cliente = &c.Cliente.Nombre
		}
	}
	if c.ValidaHasta != nil {
		v := c.ValidaHasta.Format("2006-01-02")
		resp.ValidaHasta = &v
	}
	return resp
}
