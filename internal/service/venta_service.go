package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/GabMond07/Salty-Sweety-POS-sub000/internal/cart"
	"github.com/GabMond07/Salty-Sweety-POS-sub000/internal/dto"
	"github.com/GabMond07/Salty-Sweety-POS-sub000/internal/model"
	"github.com/GabMond07/Salty-Sweety-POS-sub000/internal/repository"
)

var (
	ErrCarritoVacio      = errors.New("el carrito está vacío")
	ErrVentaNoEncontrada = errors.New("venta no encontrada")
)

type VentaService interface {
	RegistrarVenta(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error)
	AnularVenta(ctx context.Context, id uuid.UUID, motivo string) error
	ObtenerVenta(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error)
	ListVentas(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error)
}

type ventaService struct {
	repo         repository.VentaRepository
	productoRepo repository.ProductoRepository
	clienteRepo  repository.ClienteRepository
	movRepo      repository.MovimientoRepository
	rdb          *redis.Client
}

func NewVentaService(
	repo repository.VentaRepository,
	productoRepo repository.ProductoRepository,
	clienteRepo repository.ClienteRepository,
	movRepo repository.MovimientoRepository,
	rdb *redis.Client,
) VentaService {
	return &ventaService{
		repo:         repo,
		productoRepo: productoRepo,
		clienteRepo:  clienteRepo,
		movRepo:      movRepo,
		rdb:          rdb,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── RegistrarVenta ────────────────────────────────────────────────────────────
// Commits a sale as one transaction:
//   1. Validate: cart non-empty, cliente exists when given — no writes on failure
//   2. Build the cart from the request (quantities clamped to stock)
//   3. BEGIN TX: create venta + items with price snapshots, descontar stock,
//      insert one movimiento "venta" per line
//   4. COMMIT

func (s *ventaService) RegistrarVenta(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error) {
	if len(req.Items) == 0 {
		return nil, ErrCarritoVacio
	}

	var clienteID *uuid.UUID
	var clienteNombre string
	if req.ClienteID != nil && *req.ClienteID != "" {
		cid, err := uuid.Parse(*req.ClienteID)
		if err != nil {
			return nil, fmt.Errorf("cliente_id inválido: %w", err)
		}
		cliente, err := s.clienteRepo.FindByID(ctx, cid)
		if err != nil {
			return nil, errors.New("cliente no encontrado")
		}
		clienteID = &cid
		clienteNombre = cliente.Nombre
	}

	// Resolve products into a cart (pre-flight, outside TX). The cart clamps
	// each quantity to the product's current stock, so a committed sale can
	// never drive stock negative on its own.
	var carrito cart.Carrito
	for _, item := range req.Items {
		pid, err := uuid.Parse(item.ProductoID)
		if err != nil {
			return nil, fmt.Errorf("producto_id inválido: %w", err)
		}
		p, err := s.productoRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, fmt.Errorf("producto %s no encontrado", item.ProductoID)
		}
		if !p.Activo {
			return nil, fmt.Errorf("producto %s está inactivo y no puede venderse", p.Nombre)
		}
		if p.StockActual < 1 {
			return nil, fmt.Errorf("producto %s sin stock disponible", p.Nombre)
		}
		carrito.Agregar(p)
		carrito.ActualizarCantidad(pid, item.Cantidad)
	}
	if carrito.Vacio() {
		return nil, ErrCarritoVacio
	}

	total := carrito.Total()

	var venta model.Venta
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		venta = model.Venta{
			ClienteID:  clienteID,
			UsuarioID:  usuarioID,
			Total:      total,
			MetodoPago: req.MetodoPago,
		}
		for _, l := range carrito.Lineas() {
			venta.Items = append(venta.Items, model.VentaItem{
				ProductoID:     l.ProductoID,
				Cantidad:       l.Cantidad,
				PrecioUnitario: l.PrecioUnitario,
				Subtotal:       l.Subtotal(),
			})
		}

		if err := s.repo.Create(ctx, tx, &venta); err != nil {
			return err
		}

		// Descontar stock and record one movimiento per line
		for _, l := range carrito.Lineas() {
			stockAntes := l.Stock
			if tx != nil {
				if prod, err := s.productoRepo.FindByIDTx(tx, l.ProductoID); err == nil {
					stockAntes = prod.StockActual
				}
			}

			if err := s.productoRepo.UpdateStockTx(tx, l.ProductoID, -l.Cantidad); err != nil {
				return fmt.Errorf("error descontando stock de %s: %w", l.Nombre, err)
			}

			ventaRef := venta.ID
			mov := &model.MovimientoInventario{
				ProductoID:    l.ProductoID,
				Tipo:          "venta",
				Cantidad:      -l.Cantidad,
				StockAnterior: stockAntes,
				StockNuevo:    stockAntes - l.Cantidad,
				Motivo:        fmt.Sprintf("Venta %s", venta.ID),
				ReferenciaID:  &ventaRef,
			}
			if err := s.movRepo.CreateTx(tx, mov); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	s.invalidarCache(ctx)

	resp := ventaToResponse(&venta)
	if clienteNombre != "" {
		resp.Cliente = clienteNombre
	}
	// Enrich items with product names from the cart lines
	for i, l := range carrito.Lineas() {
		resp.Items[i].Producto = l.Nombre
	}
	return resp, nil
}

// ── AnularVenta ───────────────────────────────────────────────────────────────
// The compensating action for RegistrarVenta. One-way and destructive: the
// venta and its items are deleted outright, stock is restored, and one
// "devolucion" movimiento is inserted per item. Existing movimientos are
// never altered.

func (s *ventaService) AnularVenta(ctx context.Context, id uuid.UUID, motivo string) error {
	venta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ErrVentaNoEncontrada
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		for _, item := range venta.Items {
			stockAntes := 0
			if tx != nil {
				if prod, err := s.productoRepo.FindByIDTx(tx, item.ProductoID); err == nil {
					stockAntes = prod.StockActual
				}
			} else if prod, err := s.productoRepo.FindByID(ctx, item.ProductoID); err == nil {
				stockAntes = prod.StockActual
			}

			if err := s.productoRepo.UpdateStockTx(tx, item.ProductoID, item.Cantidad); err != nil {
				return err
			}

			ventaRef := venta.ID
			mov := &model.MovimientoInventario{
				ProductoID:    item.ProductoID,
				Tipo:          "devolucion",
				Cantidad:      item.Cantidad,
				StockAnterior: stockAntes,
				StockNuevo:    stockAntes + item.Cantidad,
				Motivo:        fmt.Sprintf("Anulación venta %s — %s", venta.ID, motivo),
				ReferenciaID:  &ventaRef,
			}
			if err := s.movRepo.CreateTx(tx, mov); err != nil {
				return err
			}
		}

		return s.repo.DeleteConItemsTx(tx, id)
	})
	if txErr != nil {
		return txErr
	}
	s.invalidarCache(ctx)
	return nil
}

// invalidarCache drops the cached dashboard payload after a committed sale or
// annulment so the next dashboard read re-fetches.
func (s *ventaService) invalidarCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	_ = s.rdb.Del(ctx, cacheKeyDashboard).Err()
}

func (s *ventaService) ObtenerVenta(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error) {
	venta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrVentaNoEncontrada
	}
	return ventaToResponse(venta), nil
}

// ListVentas returns a paginated list of sales. Default filter: today.
func (s *ventaService) ListVentas(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	ventas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VentaResponse, 0, len(ventas))
	for _, v := range ventas {
		items = append(items, *ventaToResponse(&v))
	}
	return &dto.VentaListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func ventaToResponse(v *model.Venta) *dto.VentaResponse {
	items := make([]dto.ItemVentaResponse, 0, len(v.Items))
	for _, item := range v.Items {
		nombre := ""
		if item.Producto != nil {
			nombre = item.Producto.Nombre
		}
		items = append(items, dto.ItemVentaResponse{
			ProductoID:     item.ProductoID.String(),
			Producto:       nombre,
			Cantidad:       item.Cantidad,
			PrecioUnitario: item.PrecioUnitario,
			Subtotal:       item.Subtotal,
		})
	}

	cliente := "Cliente general"
	var clienteID *string
	if v.ClienteID != nil {
		cid := v.ClienteID.String()
		clienteID = &cid
		if v.Cliente != nil {
			cliente = v.Cliente.Nombre
		}
	}

	return &dto.VentaResponse{
		ID:         v.ID.String(),
		Items:      items,
		Total:      v.Total,
		MetodoPago: v.MetodoPago,
		ClienteID:  clienteID,
		Cliente:    cliente,
		CreatedAt:  v.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
