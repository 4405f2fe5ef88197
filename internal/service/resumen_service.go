package service

import (
	"context"
	"fmt"
	"time"

	"gestinv/internal/dto"
	"gestinv/internal/repository"
)

// ResumenService arma el resumen ejecutivo del sistema para una fecha dada.
type ResumenService interface {
	Resumir(ctx context.Context, fecha string) (*dto.ResumenResponse, error)
}

type resumenService struct {
	repo repository.ResumenRepository
}

func NewResumenService(repo repository.ResumenRepository) ResumenService {
	return &resumenService{repo: repo}
}

func (s *resumenService) Resumir(ctx context.Context, fecha string) (*dto.ResumenResponse, error) {
	dia := time.Now()
	if fecha != "" {
		var err error
		dia, err = parseFecha(fecha)
		if err != nil {
			return nil, err
		}
	}

	resumen := &dto.ResumenResponse{Fecha: dia.Format(formatoFecha)}

	var err error
	if resumen.TotalCategorias, err = s.repo.ContarCategorias(ctx); err != nil {
		return nil, fmt.Errorf("contando categorias: %w", err)
	}
	if resumen.TotalProductos, err = s.repo.ContarProductos(ctx); err != nil {
		return nil, fmt.Errorf("contando productos: %w", err)
	}
	if resumen.TotalFacturas, err = s.repo.ContarFacturas(ctx); err != nil {
		return nil, fmt.Errorf("contando facturas: %w", err)
	}
	if resumen.TotalActividades, err = s.repo.ContarActividades(ctx); err != nil {
		return nil, fmt.Errorf("contando actividades: %w", err)
	}
	if resumen.StockTotal, err = s.repo.SumarStock(ctx); err != nil {
		return nil, fmt.Errorf("sumando stock: %w", err)
	}
	if resumen.TotalVentas, err = s.repo.SumarVentas(ctx); err != nil {
		return nil, fmt.Errorf("sumando ventas: %w", err)
	}
	if resumen.FacturasHoy, err = s.repo.ContarFacturasPorFecha(ctx, dia); err != nil {
		return nil, fmt.Errorf("contando facturas del dia: %w", err)
	}
	if resumen.TotalHoy, err = s.repo.SumarVentasPorFecha(ctx, dia); err != nil {
		return nil, fmt.Errorf("sumando ventas del dia: %w", err)
	}
	return resumen, nil
}
