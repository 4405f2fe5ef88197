package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gestinv/internal/model"
)

// FacturaRepository encapsula el acceso a la tabla facturas. Las variantes Tx
// participan en la transacción que mueve stock y registra actividad.
type FacturaRepository interface {
	CrearTx(tx *gorm.DB, f *model.Factura) error
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Factura, error)
	ExisteNumeroTx(tx *gorm.DB, numero string) (bool, error)
	Listar(ctx context.Context) ([]model.Factura, error)
	ListarPorRangoSalida(ctx context.Context, desde, hasta *time.Time) ([]model.Factura, error)
	ActualizarTx(tx *gorm.DB, f *model.Factura) error
	EliminarTx(tx *gorm.DB, id uuid.UUID) error
	DB() *gorm.DB
}

type facturaRepo struct {
	db *gorm.DB
}

func NewFacturaRepository(db *gorm.DB) FacturaRepository {
	return &facturaRepo{db: db}
}

func (r *facturaRepo) CrearTx(tx *gorm.DB, f *model.Factura) error {
	return tx.Create(f).Error
}

func (r *facturaRepo) ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Factura, error) {
	var f model.Factura
	err := r.db.WithContext(ctx).
		Preload("Producto").
		Preload("Producto.Categoria").
		First(&f, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *facturaRepo) ExisteNumeroTx(tx *gorm.DB, numero string) (bool, error) {
	var count int64
	err := tx.Model(&model.Factura{}).
		Where("numero_factura = ?", numero).
		Count(&count).Error
	return count > 0, err
}

func (r *facturaRepo) Listar(ctx context.Context) ([]model.Factura, error) {
	var facturas []model.Factura
	err := r.db.WithContext(ctx).
		Preload("Producto").
		Order("created_at DESC").
		Find(&facturas).Error
	if err != nil {
		return nil, err
	}
	return facturas, nil
}

func (r *facturaRepo) ListarPorRangoSalida(ctx context.Context, desde, hasta *time.Time) ([]model.Factura, error) {
	q := r.db.WithContext(ctx).Preload("Producto")
	if desde != nil {
		q = q.Where("fecha_salida >= ?", desde.Format("2006-01-02"))
	}
	if hasta != nil {
		q = q.Where("fecha_salida <= ?", hasta.Format("2006-01-02"))
	}
	var facturas []model.Factura
	if err := q.Order("fecha_salida ASC").Find(&facturas).Error; err != nil {
		return nil, err
	}
	return facturas, nil
}

func (r *facturaRepo) ActualizarTx(tx *gorm.DB, f *model.Factura) error {
	// the preloaded Producto carries a stale cantidad, never write it back
	return tx.Omit(clause.Associations).Save(f).Error
}

func (r *facturaRepo) EliminarTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.Factura{}, "id = ?", id).Error
}

func (r *facturaRepo) DB() *gorm.DB {
	return r.db
}
