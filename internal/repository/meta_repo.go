package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/GabMond07/Salty-Sweety-POS-sub000/internal/model"
)

type MetaRepository interface {
	// Upsert creates or replaces the goal for (anio, mes).
	Upsert(ctx context.Context, m *model.Meta) error
	FindPorPeriodo(ctx context.Context, anio, mes int) (*model.Meta, error)
	List(ctx context.Context, anio int) ([]model.Meta, error)
}

type metaRepo struct{ db *gorm.DB }

func NewMetaRepository(db *gorm.DB) MetaRepository { return &metaRepo{db: db} }

func (r *metaRepo) Upsert(ctx context.Context, m *model.Meta) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "anio"}, {Name: "mes"}},
		DoUpdates: clause.AssignmentColumns([]string{"monto_objetivo", "updated_at"}),
	}).Create(m).Error
}

func (r *metaRepo) FindPorPeriodo(ctx context.Context, anio, mes int) (*model.Meta, error) {
	var m model.Meta
	err := r.db.WithContext(ctx).Where("anio = ? AND mes = ?", anio, mes).First(&m).Error
	return &m, err
}

func (r *metaRepo) List(ctx context.Context, anio int) ([]model.Meta, error) {
	var metas []model.Meta
	err := r.db.WithContext(ctx).Where("anio = ?", anio).Order("mes ASC").Find(&metas).Error
	return metas, err
}
