package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gestinv/internal/model"
)

// ActividadRepository encapsula el acceso a la bitácora de actividades. Las
// actividades son de solo inserción; no hay actualización ni borrado.
type ActividadRepository interface {
	Crear(ctx context.Context, a *model.Actividad) error
	CrearTx(tx *gorm.DB, a *model.Actividad) error
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Actividad, error)
	Listar(ctx context.Context) ([]model.Actividad, error)
}

type actividadRepo struct {
	db *gorm.DB
}

func NewActividadRepository(db *gorm.DB) ActividadRepository {
	return &actividadRepo{db: db}
}

func (r *actividadRepo) Crear(ctx context.Context, a *model.Actividad) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *actividadRepo) CrearTx(tx *gorm.DB, a *model.Actividad) error {
	return tx.Create(a).Error
}

func (r *actividadRepo) ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Actividad, error) {
	var a model.Actividad
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *actividadRepo) Listar(ctx context.Context) ([]model.Actividad, error) {
	var actividades []model.Actividad
	err := r.db.WithContext(ctx).
		Order("fecha DESC").
		Find(&actividades).Error
	if err != nil {
		return nil, err
	}
	return actividades, nil
}
