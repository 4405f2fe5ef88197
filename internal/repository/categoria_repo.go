package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gestinv/internal/model"
)

// CategoriaRepository encapsula el acceso a la tabla categorias.
type CategoriaRepository interface {
	Crear(ctx context.Context, c *model.Categoria) error
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Categoria, error)
	ObtenerPorNombre(ctx context.Context, nombre string) (*model.Categoria, error)
	Listar(ctx context.Context) ([]model.Categoria, error)
	Actualizar(ctx context.Context, c *model.Categoria) error
	EliminarTx(tx *gorm.DB, id uuid.UUID) error
	DB() *gorm.DB
}

type categoriaRepo struct {
	db *gorm.DB
}

func NewCategoriaRepository(db *gorm.DB) CategoriaRepository {
	return &categoriaRepo{db: db}
}

func (r *categoriaRepo) Crear(ctx context.Context, c *model.Categoria) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *categoriaRepo) ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Categoria, error) {
	var c model.Categoria
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoriaRepo) ObtenerPorNombre(ctx context.Context, nombre string) (*model.Categoria, error) {
	var c model.Categoria
	if err := r.db.WithContext(ctx).First(&c, "nombre = ?", nombre).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoriaRepo) Listar(ctx context.Context) ([]model.Categoria, error) {
	var categorias []model.Categoria
	if err := r.db.WithContext(ctx).Order("nombre ASC").Find(&categorias).Error; err != nil {
		return nil, err
	}
	return categorias, nil
}

func (r *categoriaRepo) Actualizar(ctx context.Context, c *model.Categoria) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *categoriaRepo) EliminarTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.Categoria{}, "id = ?", id).Error
}

func (r *categoriaRepo) DB() *gorm.DB {
	return r.db
}
