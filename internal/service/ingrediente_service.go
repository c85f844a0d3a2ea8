package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/GabMond07/Salty-Sweety-POS-sub000/internal/dto"
	"github.com/GabMond07/Salty-Sweety-POS-sub000/internal/model"
	"github.com/GabMond07/Salty-Sweety-POS-sub000/internal/repository"
)

var ErrIngredienteNoEncontrado = errors.New("ingrediente no encontrado")

type IngredienteService interface {
	Crear(ctx context.Context, req dto.CrearIngredienteRequest) (*dto.IngredienteResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.IngredienteResponse, error)
	Listar(ctx context.Context, incluirInactivos bool) ([]dto.IngredienteResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarIngredienteRequest) (*dto.IngredienteResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
}

type ingredienteService struct {
	repo repository.IngredienteRepository
}

func NewIngredienteService(repo repository.IngredienteRepository) IngredienteService {
	return &ingredienteService{repo: repo}
}

func (s *ingredienteService) Crear(ctx context.Context, req dto.CrearIngredienteRequest) (*dto.IngredienteResponse, error) {
	i := &model.Ingrediente{
		Nombre:         req.Nombre,
		UnidadMedida:   req.UnidadMedida,
		PrecioUnitario: req.PrecioUnitario,
		StockActual:    req.StockActual,
		Activo:         true,
	}
	if err := s.repo.Create(ctx, i); err != nil {
		return nil, err
	}
	return ingredienteToResponse(i), nil
}

func (s *ingredienteService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.IngredienteResponse, error) {
	i, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrIngredienteNoEncontrado
	}
	return ingredienteToResponse(i), nil
}

func (s *ingredienteService) Listar(ctx context.Context, incluirInactivos bool) ([]dto.IngredienteResponse, error) {
	var (
		list []model.Ingrediente
		err  error
	)
	if incluirInactivos {
		list, err = s.repo.ListAll(ctx)
	} else {
		list, err = s.repo.ListActivos(ctx)
	}
	if err != nil {
		return nil, err
	}
	out := make([]dto.IngredienteResponse, 0, len(list))
	for _, i := range list {
		out = append(out, *ingredienteToResponse(&i))
	}
	return out, nil
}

func (s *ingredienteService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarIngredienteRequest) (*dto.IngredienteResponse, error) {
	i, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrIngredienteNoEncontrado
	}
	if req.Nombre != nil {
		i.Nombre = *req.Nombre
	}
	if req.UnidadMedida != nil {
		i.UnidadMedida = *req.UnidadMedida
	}
	if req.PrecioUnitario != nil {
		i.PrecioUnitario = *req.PrecioUnitario
	}
	if req.StockActual != nil {
		i.StockActual = *req.StockActual
	}
	if err := s.repo.Update(ctx, i); err != nil {
		return nil, err
	}
	return ingredienteToResponse(i), nil
}

func (s *ingredienteService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrIngredienteNoEncontrado
	}
	return s.repo.SoftDelete(ctx, id)
}

func ingredienteToResponse(i *model.Ingrediente) *dto.IngredienteResponse {
	return &dto.IngredienteResponse{
		ID:             i.ID.String(),
		Nombre:         i.Nombre,
		UnidadMedida:   i.UnidadMedida,
		PrecioUnitario: i.PrecioUnitario,
		StockActual:    i.StockActual,
		Activo:         i.Activo,
	}
}
