package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gestinv/internal/model"
)

// UsuarioRepository encapsula el acceso a la tabla usuarios.
type UsuarioRepository interface {
	Crear(ctx context.Context, u *model.Usuario) error
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Usuario, error)
	ObtenerPorUsername(ctx context.Context, username string) (*model.Usuario, error)
	ObtenerPorEmail(ctx context.Context, email string) (*model.Usuario, error)
	Listar(ctx context.Context) ([]model.Usuario, error)
	ListarPorRangoCreacion(ctx context.Context, desde, hasta *time.Time) ([]model.Usuario, error)
	Actualizar(ctx context.Context, u *model.Usuario) error
}

type usuarioRepo struct {
	db *gorm.DB
}

func NewUsuarioRepository(db *gorm.DB) UsuarioRepository {
	return &usuarioRepo{db: db}
}

func (r *usuarioRepo) Crear(ctx context.Context, u *model.Usuario) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *usuarioRepo) ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Usuario, error) {
	var u model.Usuario
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *usuarioRepo) ObtenerPorUsername(ctx context.Context, username string) (*model.Usuario, error) {
	var u model.Usuario
	if err := r.db.WithContext(ctx).First(&u, "username = ?", username).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *usuarioRepo) ObtenerPorEmail(ctx context.Context, email string) (*model.Usuario, error) {
	var u model.Usuario
	if err := r.db.WithContext(ctx).First(&u, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *usuarioRepo) Listar(ctx context.Context) ([]model.Usuario, error) {
	var usuarios []model.Usuario
	err := r.db.WithContext(ctx).
		Order("fecha_creacion DESC").
		Find(&usuarios).Error
	if err != nil {
		return nil, err
	}
	return usuarios, nil
}

func (r *usuarioRepo) ListarPorRangoCreacion(ctx context.Context, desde, hasta *time.Time) ([]model.Usuario, error) {
	q := r.db.WithContext(ctx)
	if desde != nil {
		q = q.Where("fecha_creacion >= ?", *desde)
	}
	if hasta != nil {
		// incluye el día completo de la fecha fin
		q = q.Where("fecha_creacion < ?", hasta.AddDate(0, 0, 1))
	}
	var usuarios []model.Usuario
	if err := q.Order("fecha_creacion ASC").Find(&usuarios).Error; err != nil {
		return nil, err
	}
	return usuarios, nil
}

func (r *usuarioRepo) Actualizar(ctx context.Context, u *model.Usuario) error {
	return r.db.WithContext(ctx).Save(u).Error
}
