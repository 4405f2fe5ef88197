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

// ActividadService administra la bitácora inmutable del sistema.
type ActividadService interface {
	Registrar(ctx context.Context, req dto.RegistrarActividadRequest) (*dto.ActividadResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ActividadResponse, error)
	Listar(ctx context.Context) ([]dto.ActividadResponse, error)
}

type actividadService struct {
	repo        repository.ActividadRepository
	facturaRepo repository.FacturaRepository
}

func NewActividadService(repo repository.ActividadRepository, facturaRepo repository.FacturaRepository) ActividadService {
	return &actividadService{repo: repo, facturaRepo: facturaRepo}
}

// Registrar crea una actividad manual. Sin descripción explícita se sintetiza
// una a partir del tipo y, si viene, de la factura referenciada.
func (s *actividadService) Registrar(ctx context.Context, req dto.RegistrarActividadRequest) (*dto.ActividadResponse, error) {
	var factura *model.Factura
	var facturaID *uuid.UUID

	if req.FacturaID != nil && *req.FacturaID != "" {
		id, err := uuid.Parse(*req.FacturaID)
		if err != nil {
			return nil, ErrNoEncontrado
		}
		factura, err = s.facturaRepo.ObtenerPorID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNoEncontrado
			}
			return nil, err
		}
		facturaID = &factura.ID
	}

	descripcion := ""
	if req.Descripcion != nil {
		descripcion = *req.Descripcion
	}
	if descripcion == "" {
		descripcion = DescripcionActividad(req.Tipo, factura)
	}

	actividad := &model.Actividad{
		Tipo:        req.Tipo,
		FacturaID:   facturaID,
		Descripcion: descripcion,
	}
	if err := s.repo.Crear(ctx, actividad); err != nil {
		return nil, fmt.Errorf("registrando actividad: %w", err)
	}
	return actividadToResponse(actividad), nil
}

func (s *actividadService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ActividadResponse, error) {
	actividad, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}
	return actividadToResponse(actividad), nil
}

func (s *actividadService) Listar(ctx context.Context) ([]dto.ActividadResponse, error) {
	actividades, err := s.repo.Listar(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ActividadResponse, 0, len(actividades))
	for i := range actividades {
		out = append(out, *actividadToResponse(&actividades[i]))
	}
	return out, nil
}

// DescripcionActividad sintetiza la descripción de una actividad cuando el
// caller no aporta una. Con factura incluye producto, cantidad y total; sin
// factura solo menciona el tipo.
func DescripcionActividad(tipo string, factura *model.Factura) string {
	if factura == nil {
		return fmt.Sprintf("Actividad de tipo '%s' registrada sin una factura especifica.", tipo)
	}
	nombre := "sin nombre"
	if factura.Producto != nil && factura.Producto.Nombre != nil {
		nombre = *factura.Producto.Nombre
	}
	total := TotalFactura(factura)
	return fmt.Sprintf("Factura %s: %s x%d por un total de $%s",
		factura.NumeroFactura, nombre, factura.Cantidad, total.StringFixed(2))
}

func actividadToResponse(a *model.Actividad) *dto.ActividadResponse {
	resp := &dto.ActividadResponse{
		ID:          a.ID.String(),
		Tipo:        a.Tipo,
		Descripcion: a.Descripcion,
		Fecha:       a.Fecha.Format("2006-01-02T15:04:05Z07:00"),
	}
	if a.FacturaID != nil {
		id := a.FacturaID.String()
		resp.FacturaID = &id
	}
	return resp
}
