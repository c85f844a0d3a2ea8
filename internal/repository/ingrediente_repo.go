package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/GabMond07/Salty-Sweety-POS-sub000/internal/model"
)

type IngredienteRepository interface {
	Create(ctx context.Context, i *model.Ingrediente) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Ingrediente, error)
	ListActivos(ctx context.Context) ([]model.Ingrediente, error)
	ListAll(ctx context.Context) ([]model.Ingrediente, error)
	Update(ctx context.Context, i *model.Ingrediente) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type ingredienteRepo struct{ db *gorm.DB }

func NewIngredienteRepository(db *gorm.DB) IngredienteRepository {
	return &ingredienteRepo{db: db}
}

func (r *ingredienteRepo) Create(ctx context.Context, i *model.Ingrediente) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *ingredienteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Ingrediente, error) {
	var i model.Ingrediente
	err := r.db.WithContext(ctx).First(&i, id).Error
	return &i, err
}

func (r *ingredienteRepo) ListActivos(ctx context.Context) ([]model.Ingrediente, error) {
	var list []model.Ingrediente
	err := r.db.WithContext(ctx).Where("activo = true").Order("nombre ASC").Find(&list).Error
	return list, err
}

func (r *ingredienteRepo) ListAll(ctx context.Context) ([]model.Ingrediente, error) {
	var list []model.Ingrediente
	err := r.db.WithContext(ctx).Order("nombre ASC").Find(&list).Error
	return list, err
}

func (r *ingredienteRepo) Update(ctx context.Context, i *model.Ingrediente) error {
	return r.db.WithContext(ctx).Save(i).Error
}

func (r *ingredienteRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Ingrediente{}).Where("id = ?", id).Update("activo", false).Error
}
