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

type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error)
	BajoStock(ctx context.Context) ([]dto.ProductoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type productoService struct {
	repo          repository.ProductoRepository
	categoriaRepo repository.CategoriaRepository
	actividadRepo repository.ActividadRepository
}

func NewProductoService(
	repo repository.ProductoRepository,
	categoriaRepo repository.CategoriaRepository,
	actividadRepo repository.ActividadRepository,
) ProductoService {
	return &productoService{
		repo:          repo,
		categoriaRepo: categoriaRepo,
		actividadRepo: actividadRepo,
	}
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	categoriaID, err := s.resolverCategoria(ctx, req.CategoriaID)
	if err != nil {
		return nil, err
	}

	fechaEntrada, err := parseFechaOpt(req.FechaEntrada)
	if err != nil {
		return nil, err
	}

	estado := req.Estado
	if estado == "" {
		estado = model.EstadoDisponible
	}
	stockMinimo := 5
	if req.StockMinimo != nil {
		stockMinimo = *req.StockMinimo
	}

	producto := &model.Producto{
		Nombre:        req.Nombre,
		Referencia:    req.Referencia,
		Marca:         req.Marca,
		Serial:        req.Serial,
		Cantidad:      req.Cantidad,
		StockMinimo:   stockMinimo,
		Descripcion:   req.Descripcion,
		CategoriaID:   categoriaID,
		FechaEntrada:  fechaEntrada,
		Valor:         req.Valor,
		Observaciones: req.Observaciones,
		Estado:        estado,
	}

	if err := s.repo.Crear(ctx, producto); err != nil {
		return nil, fmt.Errorf("creando producto: %w", err)
	}
	return productoToResponse(producto), nil
}

func (s *productoService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	producto, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}
	return productoToResponse(producto), nil
}

func (s *productoService) Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	productos, total, err := s.repo.Listar(ctx, filter)
	if err != nil {
		return nil, err
	}

	data := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		data = append(data, *productoToResponse(&productos[i]))
	}
	return &dto.ProductoListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *productoService) BajoStock(ctx context.Context) ([]dto.ProductoResponse, error) {
	productos, err := s.repo.ListarBajoStock(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		out = append(out, *productoToResponse(&productos[i]))
	}
	return out, nil
}

// Actualizar aplica cambios parciales y deja una actividad de tipo
// actualizacion. La cantidad no se toca por esta vía.
func (s *productoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	producto, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}

	if req.CategoriaID != nil {
		categoriaID, err := s.resolverCategoria(ctx, req.CategoriaID)
		if err != nil {
			return nil, err
		}
		producto.CategoriaID = categoriaID
		producto.Categoria = nil
	}
	if req.FechaEntrada != nil {
		fechaEntrada, err := parseFechaOpt(req.FechaEntrada)
		if err != nil {
			return nil, err
		}
		producto.FechaEntrada = fechaEntrada
	}

	if req.Nombre != nil {
		producto.Nombre = req.Nombre
	}
	if req.Referencia != nil {
		producto.Referencia = req.Referencia
	}
	if req.Marca != nil {
		producto.Marca = req.Marca
	}
	if req.Serial != nil {
		producto.Serial = req.Serial
	}
	if req.StockMinimo != nil {
		producto.StockMinimo = *req.StockMinimo
	}
	if req.Descripcion != nil {
		producto.Descripcion = req.Descripcion
	}
	if req.Valor != nil {
		producto.Valor = req.Valor
	}
	if req.Observaciones != nil {
		producto.Observaciones = req.Observaciones
	}
	if req.Estado != nil {
		producto.Estado = *req.Estado
	}

	if err := s.repo.Actualizar(ctx, producto); err != nil {
		return nil, fmt.Errorf("actualizando producto: %w", err)
	}

	nombre := "sin nombre"
	if producto.Nombre != nil {
		nombre = *producto.Nombre
	}
	actividad := &model.Actividad{
		Tipo:        model.ActividadActualizacion,
		Descripcion: fmt.Sprintf("Producto '%s' actualizado.", nombre),
	}
	if err := s.actividadRepo.Crear(ctx, actividad); err != nil {
		return nil, fmt.Errorf("registrando actividad: %w", err)
	}

	return productoToResponse(producto), nil
}

func (s *productoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.ObtenerPorID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoEncontrado
		}
		return err
	}
	return s.repo.Eliminar(ctx, id)
}

func (s *productoService) resolverCategoria(ctx context.Context, raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, ErrNoEncontrado
	}
	if _, err := s.categoriaRepo.ObtenerPorID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}
	return &id, nil
}

func productoToResponse(p *model.Producto) *dto.ProductoResponse {
	resp := &dto.ProductoResponse{
		ID:            p.ID.String(),
		Nombre:        p.Nombre,
		Referencia:    p.Referencia,
		Marca:         p.Marca,
		Serial:        p.Serial,
		Cantidad:      p.Cantidad,
		StockMinimo:   p.StockMinimo,
		Descripcion:   p.Descripcion,
		FechaEntrada:  formatFechaOpt(p.FechaEntrada),
		Valor:         p.Valor,
		Observaciones: p.Observaciones,
		Estado:        p.Estado,
	}
	if p.CategoriaID != nil {
		id := p.CategoriaID.String()
		resp.Categoria = &id
	}
	if p.Categoria != nil {
		resp.CategoriaNombre = &p.Categoria.Nombre
	}
	return resp
}
