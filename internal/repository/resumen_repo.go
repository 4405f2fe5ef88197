package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"gestinv/internal/model"
)

// ResumenRepository expone los agregados que alimentan el resumen ejecutivo.
// Todas las sumas usan COALESCE para que un conjunto vacío devuelva cero.
type ResumenRepository interface {
	ContarCategorias(ctx context.Context) (int64, error)
	ContarProductos(ctx context.Context) (int64, error)
	ContarFacturas(ctx context.Context) (int64, error)
	ContarActividades(ctx context.Context) (int64, error)
	SumarStock(ctx context.Context) (int64, error)
	SumarVentas(ctx context.Context) (decimal.Decimal, error)
	ContarFacturasPorFecha(ctx context.Context, fecha time.Time) (int64, error)
	SumarVentasPorFecha(ctx context.Context, fecha time.Time) (decimal.Decimal, error)
}

type resumenRepo struct {
	db *gorm.DB
}

func NewResumenRepository(db *gorm.DB) ResumenRepository {
	return &resumenRepo{db: db}
}

func (r *resumenRepo) ContarCategorias(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Categoria{}).Count(&n).Error
	return n, err
}

func (r *resumenRepo) ContarProductos(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Producto{}).Count(&n).Error
	return n, err
}

func (r *resumenRepo) ContarFacturas(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Factura{}).Count(&n).Error
	return n, err
}

func (r *resumenRepo) ContarActividades(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Actividad{}).Count(&n).Error
	return n, err
}

func (r *resumenRepo) SumarStock(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Raw(`SELECT COALESCE(SUM(cantidad), 0) FROM productos`).
		Row().Scan(&total)
	return total, err
}

func (r *resumenRepo) SumarVentas(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).
		Raw(`SELECT COALESCE(SUM(f.cantidad * p.valor), 0)
		     FROM facturas f
		     JOIN productos p ON p.id = f.producto_id`).
		Row().Scan(&total)
	return total, err
}

func (r *resumenRepo) ContarFacturasPorFecha(ctx context.Context, fecha time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Factura{}).
		Where("fecha_salida = ?", fecha.Format("2006-01-02")).
		Count(&n).Error
	return n, err
}

func (r *resumenRepo) SumarVentasPorFecha(ctx context.Context, fecha time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).
		Raw(`SELECT COALESCE(SUM(f.cantidad * p.valor), 0)
		     FROM facturas f
		     JOIN productos p ON p.id = f.producto_id
		     WHERE f.fecha_salida = ?`, fecha.Format("2006-01-02")).
		Row().Scan(&total)
	return total, err
}
