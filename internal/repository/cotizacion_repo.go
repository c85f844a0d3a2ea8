package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/GabMond07/Salty-Sweety-POS-sub000/internal/dto"
	"github.com/GabMond07/Salty-Sweety-POS-sub000/internal/model"
)

type CotizacionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, c *model.Cotizacion) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cotizacion, error)
	List(ctx context.Context, filter dto.CotizacionFilter) ([]model.Cotizacion, int64, error)
	UpdateEstado(ctx context.Context, id uuid.UUID, estado string) error
	DeleteConLineas(ctx context.Context, id uuid.UUID) error
	DB() *gorm.DB
}

type cotizacionRepo struct{ db *gorm.DB }

func NewCotizacionRepository(db *gorm.DB) CotizacionRepository { return &cotizacionRepo{db: db} }

func (r *cotizacionRepo) DB() *gorm.DB { return r.db }

func (r *cotizacionRepo) Create(ctx context.Context, tx *gorm.DB, c *model.Cotizacion) error {
	return tx.WithContext(ctx).Create(c).Error
}

func (r *cotizacionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cotizacion, error) {
	var c model.Cotizacion
	err := r.db.WithContext(ctx).
		Preload("Items.Producto").
		Preload("Ingredientes.Ingrediente").
		Preload("Cliente").
		First(&c, id).Error
	return &c, err
}

func (r *cotizacionRepo) List(ctx context.Context, filter dto.CotizacionFilter) ([]model.Cotizacion, int64, error) {
	var cotizaciones []model.Cotizacion
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Cotizacion{})
	if filter.Tipo != "" {
		q = q.Where("tipo = ?", filter.Tipo)
	}
	if filter.Estado != "" {
		q = q.Where("estado = ?", filter.Estado)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Items.Producto").
		Preload("Ingredientes.Ingrediente").
		Preload("Cliente").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&cotizaciones).Error
	return cotizaciones, total, err
}

func (r *cotizacionRepo) UpdateEstado(ctx context.Context, id uuid.UUID, estado string) error {
	return r.db.WithContext(ctx).Model(&model.Cotizacion{}).
		Where("id = ?", id).Update("estado", estado).Error
}

func (r *cotizacionRepo) DeleteConLineas(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cotizacion_id = ?", id).Delete(&model.CotizacionItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("cotizacion_id = ?", id).Delete(&model.CotizacionIngrediente{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Cotizacion{}, id).Error
	})
}
