package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gestinv/internal/dto"
	"gestinv/internal/model"
	"gestinv/internal/repository"
)

type CategoriaService interface {
	Crear(ctx context.Context, req dto.CrearCategoriaRequest) (*dto.CategoriaResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.CategoriaResponse, error)
	Listar(ctx context.Context) ([]dto.CategoriaResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarCategoriaRequest) (*dto.CategoriaResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type categoriaService struct {
	repo         repository.CategoriaRepository
	productoRepo repository.ProductoRepository
}

func NewCategoriaService(repo repository.CategoriaRepository, productoRepo repository.ProductoRepository) CategoriaService {
	return &categoriaService{repo: repo, productoRepo: productoRepo}
}

func (s *categoriaService) Crear(ctx context.Context, req dto.CrearCategoriaRequest) (*dto.CategoriaResponse, error) {
	if _, err := s.repo.ObtenerPorNombre(ctx, req.Nombre); err == nil {
		return nil, fmt.Errorf("ya existe una categoria con el nombre '%s': %w", req.Nombre, ErrConflicto)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	categoria := &model.Categoria{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
	}
	if err := s.repo.Crear(ctx, categoria); err != nil {
		return nil, fmt.Errorf("creando categoria: %w", err)
	}
	return categoriaToResponse(categoria), nil
}

func (s *categoriaService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.CategoriaResponse, error) {
	categoria, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}
	return categoriaToResponse(categoria), nil
}

func (s *categoriaService) Listar(ctx context.Context) ([]dto.CategoriaResponse, error) {
	categorias, err := s.repo.Listar(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoriaResponse, 0, len(categorias))
	for i := range categorias {
		out = append(out, *categoriaToResponse(&categorias[i]))
	}
	return out, nil
}

func (s *categoriaService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarCategoriaRequest) (*dto.CategoriaResponse, error) {
	categoria, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}

	if req.Nombre != nil {
		categoria.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		categoria.Descripcion = req.Descripcion
	}
	if err := s.repo.Actualizar(ctx, categoria); err != nil {
		return nil, fmt.Errorf("actualizando categoria: %w", err)
	}
	return categoriaToResponse(categoria), nil
}

// Eliminar borra la categoría y desvincula sus productos en la misma
// transacción; los productos sobreviven con categoria en null.
func (s *categoriaService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.ObtenerPorID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoEncontrado
		}
		return err
	}

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.productoRepo.DesvincularCategoriaTx(tx, id); err != nil {
			return fmt.Errorf("desvinculando productos: %w", err)
		}
		if err := s.repo.EliminarTx(tx, id); err != nil {
			return fmt.Errorf("eliminando categoria: %w", err)
		}
		return nil
	})
}

func categoriaToResponse(c *model.Categoria) *dto.CategoriaResponse {
	return &dto.CategoriaResponse{
		ID:          c.ID,
		Nombre:      c.Nombre,
		Descripcion: c.Descripcion,
	}
}
