package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gestinv/internal/dto"
	"gestinv/internal/model"
)

// ProductoRepository encapsula el acceso a la tabla productos.
//
// AjustarStockTx es la única vía para mover stock: aplica el delta de forma
// atómica y condicionada, devolviendo cuántas filas aceptaron el ajuste. Cero
// filas significa que el producto no existe o que el stock quedaría negativo.
type ProductoRepository interface {
	Crear(ctx context.Context, p *model.Producto) error
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Producto, error)
	Listar(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, int64, error)
	ListarBajoStock(ctx context.Context) ([]model.Producto, error)
	ListarPorRangoEntrada(ctx context.Context, desde, hasta *time.Time) ([]model.Producto, error)
	Actualizar(ctx context.Context, p *model.Producto) error
	Eliminar(ctx context.Context, id uuid.UUID) error
	AjustarStockTx(tx *gorm.DB, id uuid.UUID, delta int) (int64, error)
	DesvincularCategoriaTx(tx *gorm.DB, categoriaID uuid.UUID) error
	DB() *gorm.DB
}

type productoRepo struct {
	db *gorm.DB
}

func NewProductoRepository(db *gorm.DB) ProductoRepository {
	return &productoRepo{db: db}
}

func (r *productoRepo) Crear(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productoRepo) ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).
		Preload("Categoria").
		First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productoRepo) Listar(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Producto{})

	if filter.Nombre != "" {
		q = q.Where("nombre ILIKE ?", "%"+filter.Nombre+"%")
	}
	if filter.Categoria != "" {
		q = q.Where("categoria_id = ?", filter.Categoria)
	}
	if filter.Estado != "" {
		q = q.Where("estado = ?", filter.Estado)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var productos []model.Producto
	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Categoria").
		Order("created_at DESC").
		Offset(offset).
		Limit(filter.Limit).
		Find(&productos).Error
	if err != nil {
		return nil, 0, err
	}
	return productos, total, nil
}

func (r *productoRepo) ListarBajoStock(ctx context.Context) ([]model.Producto, error) {
	var productos []model.Producto
	err := r.db.WithContext(ctx).
		Where("cantidad <= stock_minimo").
		Order("cantidad ASC").
		Find(&productos).Error
	if err != nil {
		return nil, err
	}
	return productos, nil
}

func (r *productoRepo) ListarPorRangoEntrada(ctx context.Context, desde, hasta *time.Time) ([]model.Producto, error) {
	q := r.db.WithContext(ctx).Preload("Categoria")
	if desde != nil {
		q = q.Where("fecha_entrada >= ?", desde.Format("2006-01-02"))
	}
	if hasta != nil {
		q = q.Where("fecha_entrada <= ?", hasta.Format("2006-01-02"))
	}
	var productos []model.Producto
	if err := q.Order("fecha_entrada ASC").Find(&productos).Error; err != nil {
		return nil, err
	}
	return productos, nil
}

func (r *productoRepo) Actualizar(ctx context.Context, p *model.Producto) error {
	// cantidad belongs to AjustarStockTx; a stale loaded copy must not win
	return r.db.WithContext(ctx).Omit("cantidad", clause.Associations).Save(p).Error
}

func (r *productoRepo) Eliminar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Producto{}, "id = ?", id).Error
}

func (r *productoRepo) AjustarStockTx(tx *gorm.DB, id uuid.UUID, delta int) (int64, error) {
	res := tx.Model(&model.Producto{}).
		Where("id = ? AND cantidad + ? >= 0", id, delta).
		Update("cantidad", gorm.Expr("cantidad + ?", delta))
	return res.RowsAffected, res.Error
}

func (r *productoRepo) DesvincularCategoriaTx(tx *gorm.DB, categoriaID uuid.UUID) error {
	return tx.Model(&model.Producto{}).
		Where("categoria_id = ?", categoriaID).
		Update("categoria_id", nil).Error
}

func (r *productoRepo) DB() *gorm.DB {
	return r.db
}
