package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gestinv/internal/dto"
	"gestinv/internal/model"
	"gestinv/internal/repository"
)

// ReporteService persiste definiciones de reporte y materializa sus datos en
// cada lectura. Los datos derivados jamás se almacenan.
type ReporteService interface {
	Crear(ctx context.Context, req dto.CrearReporteRequest) (*dto.ReporteResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ReporteResponse, error)
	Listar(ctx context.Context) ([]dto.ReporteResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarReporteRequest) (*dto.ReporteResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) (*dto.EliminarReporteResponse, error)
}

type reporteService struct {
	repo          repository.ReporteRepository
	facturaRepo   repository.FacturaRepository
	productoRepo  repository.ProductoRepository
	categoriaRepo repository.CategoriaRepository
	usuarioRepo   repository.UsuarioRepository
}

func NewReporteService(
	repo repository.ReporteRepository,
	facturaRepo repository.FacturaRepository,
	productoRepo repository.ProductoRepository,
	categoriaRepo repository.CategoriaRepository,
	usuarioRepo repository.UsuarioRepository,
) ReporteService {
	return &reporteService{
		repo:          repo,
		facturaRepo:   facturaRepo,
		productoRepo:  productoRepo,
		categoriaRepo: categoriaRepo,
		usuarioRepo:   usuarioRepo,
	}
}

func (s *reporteService) Crear(ctx context.Context, req dto.CrearReporteRequest) (*dto.ReporteResponse, error) {
	fechaInicio, err := parseFechaOpt(req.FechaInicio)
	if err != nil {
		return nil, err
	}
	fechaFin, err := parseFechaOpt(req.FechaFin)
	if err != nil {
		return nil, err
	}

	reporte := &model.Reporte{
		Tipo:        req.Tipo,
		Filtro:      req.Filtro,
		FechaInicio: fechaInicio,
		FechaFin:    fechaFin,
	}
	if err := s.repo.Crear(ctx, reporte); err != nil {
		return nil, fmt.Errorf("creando reporte: %w", err)
	}
	return s.conDatos(ctx, reporte)
}

func (s *reporteService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ReporteResponse, error) {
	reporte, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}
	return s.conDatos(ctx, reporte)
}

func (s *reporteService) Listar(ctx context.Context) ([]dto.ReporteResponse, error) {
	reportes, err := s.repo.Listar(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReporteResponse, 0, len(reportes))
	for i := range reportes {
		resp, err := s.conDatos(ctx, &reportes[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}

func (s *reporteService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarReporteRequest) (*dto.ReporteResponse, error) {
	reporte, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}

	if req.Tipo != nil {
		reporte.Tipo = *req.Tipo
	}
	if req.Filtro != nil {
		reporte.Filtro = *req.Filtro
	}
	if req.FechaInicio != nil {
		fechaInicio, err := parseFechaOpt(req.FechaInicio)
		if err != nil {
			return nil, err
		}
		reporte.FechaInicio = fechaInicio
	}
	if req.FechaFin != nil {
		fechaFin, err := parseFechaOpt(req.FechaFin)
		if err != nil {
			return nil, err
		}
		reporte.FechaFin = fechaFin
	}

	if err := s.repo.Actualizar(ctx, reporte); err != nil {
		return nil, fmt.Errorf("actualizando reporte: %w", err)
	}
	return s.conDatos(ctx, reporte)
}

func (s *reporteService) Eliminar(ctx context.Context, id uuid.UUID) (*dto.EliminarReporteResponse, error) {
	if _, err := s.repo.ObtenerPorID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}
	if err := s.repo.Eliminar(ctx, id); err != nil {
		return nil, fmt.Errorf("eliminando reporte: %w", err)
	}
	return &dto.EliminarReporteResponse{
		Detalle: fmt.Sprintf("Reporte %s eliminado correctamente", id),
	}, nil
}

func (s *reporteService) conDatos(ctx context.Context, reporte *model.Reporte) (*dto.ReporteResponse, error) {
	datos, err := s.generarDatos(ctx, reporte.Filtro, reporte.FechaInicio, reporte.FechaFin)
	if err != nil {
		return nil, fmt.Errorf("generando datos del reporte: %w", err)
	}
	return &dto.ReporteResponse{
		ID:          reporte.ID.String(),
		Tipo:        reporte.Tipo,
		Filtro:      reporte.Filtro,
		FechaInicio: formatFechaOpt(reporte.FechaInicio),
		FechaFin:    formatFechaOpt(reporte.FechaFin),
		Datos:       datos,
		CreatedAt:   reporte.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}, nil
}

// generarDatos materializa el conjunto de datos según el filtro. El rango de
// fechas acota facturas, productos y usuarios; las categorías lo ignoran. Un
// filtro desconocido produce un conjunto vacío.
func (s *reporteService) generarDatos(ctx context.Context, filtro string, desde, hasta *time.Time) (any, error) {
	switch filtro {
	case model.FiltroFacturas:
		facturas, err := s.facturaRepo.ListarPorRangoSalida(ctx, desde, hasta)
		if err != nil {
			return nil, err
		}
		filas := make([]dto.FilaFacturaReporte, 0, len(facturas))
		for i := range facturas {
			f := &facturas[i]
			fila := dto.FilaFacturaReporte{
				ID:            f.ID.String(),
				Cantidad:      f.Cantidad,
				FechaSalida:   formatFechaOpt(f.FechaSalida),
				NumeroFactura: f.NumeroFactura,
			}
			if f.Producto != nil {
				fila.Producto = f.Producto.Nombre
			}
			filas = append(filas, fila)
		}
		return filas, nil

	case model.FiltroProductos:
		productos, err := s.productoRepo.ListarPorRangoEntrada(ctx, desde, hasta)
		if err != nil {
			return nil, err
		}
		filas := make([]dto.FilaProductoReporte, 0, len(productos))
		for i := range productos {
			p := &productos[i]
			fila := dto.FilaProductoReporte{
				ID:       p.ID.String(),
				Nombre:   p.Nombre,
				Marca:    p.Marca,
				Serial:   p.Serial,
				Cantidad: p.Cantidad,
				Estado:   p.Estado,
			}
			if p.Categoria != nil {
				fila.Categoria = &p.Categoria.Nombre
			}
			filas = append(filas, fila)
		}
		return filas, nil

	case model.FiltroCategorias:
		categorias, err := s.categoriaRepo.Listar(ctx)
		if err != nil {
			return nil, err
		}
		filas := make([]dto.FilaCategoriaReporte, 0, len(categorias))
		for i := range categorias {
			c := &categorias[i]
			filas = append(filas, dto.FilaCategoriaReporte{
				ID:          c.ID.String(),
				Nombre:      c.Nombre,
				Descripcion: c.Descripcion,
			})
		}
		return filas, nil

	case model.FiltroUsuarios:
		usuarios, err := s.usuarioRepo.ListarPorRangoCreacion(ctx, desde, hasta)
		if err != nil {
			return nil, err
		}
		filas := make([]dto.FilaUsuarioReporte, 0, len(usuarios))
		for i := range usuarios {
			u := &usuarios[i]
			filas = append(filas, dto.FilaUsuarioReporte{
				ID:            u.ID.String(),
				Username:      u.Username,
				Email:         u.Email,
				Telefono:      u.Telefono,
				Rol:           u.Rol,
				Activo:        u.Activo,
				FechaCreacion: u.FechaCreacion.Format("2006-01-02T15:04:05Z07:00"),
			})
		}
		return filas, nil

	default:
		return []any{}, nil
	}
}
