package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/GabMond07/Salty-Sweety-POS-sub000/internal/dto"
	"github.com/GabMond07/Salty-Sweety-POS-sub000/internal/infra"
	"github.com/GabMond07/Salty-Sweety-POS-sub000/internal/model"
	"github.com/GabMond07/Salty-Sweety-POS-sub000/internal/repository"
)

var ErrProductoNoEncontrado = errors.New("producto no encontrado")

// ProductoService defines the business logic contract for products.
type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	AjustarStock(ctx context.Context, id uuid.UUID, req dto.AjustarStockRequest) (*dto.ProductoResponse, error)
	SubirImagen(ctx context.Context, id uuid.UUID, filename string, r io.Reader) (*dto.ProductoResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error
}

type productoService struct {
	repo    repository.ProductoRepository
	movRepo repository.MovimientoRepository
	storage *infra.Storage
	rdb     *redis.Client
}

func NewProductoService(
	repo repository.ProductoRepository,
	movRepo repository.MovimientoRepository,
	storage *infra.Storage,
	rdb *redis.Client,
) ProductoService {
	return &productoService{repo: repo, movRepo: movRepo, storage: storage, rdb: rdb}
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	if _, err := s.repo.FindBySKU(ctx, req.SKU); err == nil {
		return nil, fmt.Errorf("ya existe un producto con SKU %s", req.SKU)
	}

	p := &model.Producto{
		SKU:         req.SKU,
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		PrecioVenta: req.PrecioVenta,
		PrecioCosto: req.PrecioCosto,
		StockActual: req.StockActual,
		StockMinimo: req.StockMinimo,
		Activo:      true,
	}
	if req.CategoriaID != nil {
		cid, err := uuid.Parse(*req.CategoriaID)
		if err != nil {
			return nil, fmt.Errorf("categoria_id inválido: %w", err)
		}
		p.CategoriaID = &cid
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.invalidarCache(ctx)
	return productoToResponse(p), nil
}

func (s *productoService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrProductoNoEncontrado
	}
	return productoToResponse(p), nil
}

func (s *productoService) Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	productos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ProductoResponse, 0, len(productos))
	for _, p := range productos {
		data = append(data, *productoToResponse(&p))
	}
	return &dto.ProductoListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *productoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrProductoNoEncontrado
	}

	if req.Nombre != nil {
		p.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		p.Descripcion = req.Descripcion
	}
	if req.CategoriaID != nil {
		cid, err := uuid.Parse(*req.CategoriaID)
		if err != nil {
			return nil, fmt.Errorf("categoria_id inválido: %w", err)
		}
		p.CategoriaID = &cid
	}
	if req.PrecioVenta != nil {
		p.PrecioVenta = *req.PrecioVenta
	}
	if req.PrecioCosto != nil {
		p.PrecioCosto = *req.PrecioCosto
	}
	if req.StockMinimo != nil {
		p.StockMinimo = *req.StockMinimo
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.invalidarCache(ctx)
	return productoToResponse(p), nil
}

// AjustarStock applies a manual signed delta and records the movimiento with
// its justification. The delta may not drive stock below zero.
func (s *productoService) AjustarStock(ctx context.Context, id uuid.UUID, req dto.AjustarStockRequest) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrProductoNoEncontrado
	}
	nuevo := p.StockActual + req.Delta
	if nuevo < 0 {
		return nil, fmt.Errorf("el ajuste dejaría el stock de %s en %d", p.Nombre, nuevo)
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.UpdateStockTx(tx, id, req.Delta); err != nil {
			return err
		}
		return s.movRepo.CreateTx(tx, &model.MovimientoInventario{
			ProductoID:    id,
			Tipo:          "ajuste",
			Cantidad:      req.Delta,
			StockAnterior: p.StockActual,
			StockNuevo:    nuevo,
			Motivo:        req.Motivo,
		})
	})
	if txErr != nil {
		return nil, txErr
	}

	p.StockActual = nuevo
	s.invalidarCache(ctx)
	return productoToResponse(p), nil
}

// SubirImagen stores the product image and saves its public URL.
func (s *productoService) SubirImagen(ctx context.Context, id uuid.UUID, filename string, r io.Reader) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrProductoNoEncontrado
	}
	path := fmt.Sprintf("productos/%s/%s", id, filename)
	if err := s.storage.Upload(path, r); err != nil {
		return nil, fmt.Errorf("error subiendo imagen: %w", err)
	}
	url := s.storage.PublicURL(path)
	if err := s.repo.SetImagenURL(ctx, id, url); err != nil {
		return nil, err
	}
	p.ImagenURL = &url
	return productoToResponse(p), nil
}

func (s *productoService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrProductoNoEncontrado
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.invalidarCache(ctx)
	return nil
}

func (s *productoService) Reactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrProductoNoEncontrado
	}
	if err := s.repo.Reactivar(ctx, id); err != nil {
		return err
	}
	s.invalidarCache(ctx)
	return nil
}

// invalidarCache drops the cached dashboard payload after any catalog or
// stock mutation so the next dashboard read re-fetches.
func (s *productoService) invalidarCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	_ = s.rdb.Del(ctx, cacheKeyDashboard).Err()
}

func productoToResponse(p *model.Producto) *dto.ProductoResponse {
	resp := &dto.ProductoResponse{
		ID:          p.ID.String(),
		SKU:         p.SKU,
		Nombre:      p.Nombre,
		Descripcion: p.Descripcion,
		PrecioVenta: p.PrecioVenta,
		PrecioCosto: p.PrecioCosto,
		StockActual: p.StockActual,
		StockMinimo: p.StockMinimo,
		ImagenURL:   p.ImagenURL,
		Activo:      p.Activo,
	}
	if p.CategoriaID != nil {
		cid := p.CategoriaID.String()
		resp.CategoriaID = &cid
		if p.Categoria != nil {
			resp.Categoria = &p.Categoria.Nombre
		}
	}
	return resp
}
