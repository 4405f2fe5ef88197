package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gestinv/internal/model"
)

// ReporteRepository persiste definiciones de reporte (tipo, filtro, rango).
// Los datos derivados no se guardan nunca.
type ReporteRepository interface {
	Crear(ctx context.Context, rep *model.Reporte) error
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Reporte, error)
	Listar(ctx context.Context) ([]model.Reporte, error)
	Actualizar(ctx context.Context, rep *model.Reporte) error
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type reporteRepo struct {
	db *gorm.DB
}

func NewReporteRepository(db *gorm.DB) ReporteRepository {
	return &reporteRepo{db: db}
}

func (r *reporteRepo) Crear(ctx context.Context, rep *model.Reporte) error {
	return r.db.WithContext(ctx).Create(rep).Error
}

func (r *reporteRepo) ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Reporte, error) {
	var rep model.Reporte
	if err := r.db.WithContext(ctx).First(&rep, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rep, nil
}

func (r *reporteRepo) Listar(ctx context.Context) ([]model.Reporte, error) {
	var reportes []model.Reporte
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&reportes).Error
	if err != nil {
		return nil, err
	}
	return reportes, nil
}

func (r *reporteRepo) Actualizar(ctx context.Context, rep *model.Reporte) error {
	return r.db.WithContext(ctx).Save(rep).Error
}

func (r *reporteRepo) Eliminar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Reporte{}, "id = ?", id).Error
}
