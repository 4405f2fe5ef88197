package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"gestinv/internal/dto"
	"gestinv/internal/model"
	"gestinv/internal/repository"
)

// maxIntentosNumero acota la regeneración de números de factura dentro de la
// transacción; el índice único sobre numero_factura es el respaldo final.
const maxIntentosNumero = 5

// FacturaService es el motor de consistencia factura/stock: toda alta,
// edición o baja de factura mueve el stock del producto y deja su rastro en
// la bitácora dentro de una misma transacción.
type FacturaService interface {
	Crear(ctx context.Context, req dto.CrearFacturaRequest) (*dto.FacturaResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.FacturaResponse, error)
	Listar(ctx context.Context) ([]dto.FacturaResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarFacturaRequest) (*dto.FacturaResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type facturaService struct {
	repo          repository.FacturaRepository
	productoRepo  repository.ProductoRepository
	actividadRepo repository.ActividadRepository
}

func NewFacturaService(
	repo repository.FacturaRepository,
	productoRepo repository.ProductoRepository,
	actividadRepo repository.ActividadRepository,
) FacturaService {
	return &facturaService{
		repo:          repo,
		productoRepo:  productoRepo,
		actividadRepo: actividadRepo,
	}
}

func (s *facturaService) Crear(ctx context.Context, req dto.CrearFacturaRequest) (*dto.FacturaResponse, error) {
	productoID, err := uuid.Parse(req.ProductoID)
	if err != nil {
		return nil, ErrNoEncontrado
	}

	producto, err := s.productoRepo.ObtenerPorID(ctx, productoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoEncontrado
		}
		return nil, fmt.Errorf("consultando producto: %w", err)
	}

	fechaSalida, err := parseFechaOpt(req.FechaSalida)
	if err != nil {
		return nil, err
	}

	var factura model.Factura
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		filas, err := s.productoRepo.AjustarStockTx(tx, producto.ID, -req.Cantidad)
		if err != nil {
			return fmt.Errorf("descontando stock: %w", err)
		}
		if filas == 0 {
			return ErrStockInsuficiente
		}

		numero := ""
		if req.NumeroFactura != nil {
			numero = *req.NumeroFactura
		}
		if numero != "" {
			existe, err := s.repo.ExisteNumeroTx(tx, numero)
			if err != nil {
				return fmt.Errorf("verificando numero de factura: %w", err)
			}
			if existe {
				return fmt.Errorf("ya existe una factura con el numero '%s': %w", numero, ErrConflicto)
			}
		} else {
			numero, err = s.numeroDisponibleTx(tx)
			if err != nil {
				return err
			}
		}

		factura = model.Factura{
			ProductoID:    producto.ID,
			Cantidad:      req.Cantidad,
			FechaSalida:   fechaSalida,
			NumeroFactura: numero,
		}
		if err := s.repo.CrearTx(tx, &factura); err != nil {
			return fmt.Errorf("creando factura: %w", err)
		}
		factura.Producto = producto

		actividad := &model.Actividad{
			Tipo:        model.ActividadVenta,
			FacturaID:   &factura.ID,
			Descripcion: descripcionVenta(&factura),
		}
		if err := s.actividadRepo.CrearTx(tx, actividad); err != nil {
			return fmt.Errorf("registrando actividad: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	producto.Cantidad -= req.Cantidad
	return facturaToResponse(&factura), nil
}

func (s *facturaService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.FacturaResponse, error) {
	factura, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}
	return facturaToResponse(factura), nil
}

func (s *facturaService) Listar(ctx context.Context) ([]dto.FacturaResponse, error) {
	facturas, err := s.repo.Listar(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FacturaResponse, 0, len(facturas))
	for i := range facturas {
		out = append(out, *facturaToResponse(&facturas[i]))
	}
	return out, nil
}

// Actualizar ajusta el stock por la diferencia entre la cantidad anterior y
// la nueva. Un aumento que exceda el stock disponible revierte todo.
func (s *facturaService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarFacturaRequest) (*dto.FacturaResponse, error) {
	factura, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}

	nuevaCantidad := factura.Cantidad
	if req.Cantidad != nil {
		nuevaCantidad = *req.Cantidad
	}
	delta := nuevaCantidad - factura.Cantidad

	if req.FechaSalida != nil {
		fechaSalida, err := parseFechaOpt(req.FechaSalida)
		if err != nil {
			return nil, err
		}
		factura.FechaSalida = fechaSalida
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if delta != 0 {
			filas, err := s.productoRepo.AjustarStockTx(tx, factura.ProductoID, -delta)
			if err != nil {
				return fmt.Errorf("ajustando stock: %w", err)
			}
			if filas == 0 {
				return ErrStockInsuficiente
			}
		}

		factura.Cantidad = nuevaCantidad
		if err := s.repo.ActualizarTx(tx, factura); err != nil {
			return fmt.Errorf("actualizando factura: %w", err)
		}

		actividad := &model.Actividad{
			Tipo:        model.ActividadFactura,
			FacturaID:   &factura.ID,
			Descripcion: descripcionCambioFactura(factura),
		}
		if err := s.actividadRepo.CrearTx(tx, actividad); err != nil {
			return fmt.Errorf("registrando actividad: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	if factura.Producto != nil {
		factura.Producto.Cantidad -= delta
	}
	return facturaToResponse(factura), nil
}

// Eliminar borra la factura y devuelve su cantidad al stock del producto.
// Las actividades asociadas quedan huérfanas (factura en null), no se borran.
func (s *facturaService) Eliminar(ctx context.Context, id uuid.UUID) error {
	factura, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoEncontrado
		}
		return err
	}

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if _, err := s.productoRepo.AjustarStockTx(tx, factura.ProductoID, factura.Cantidad); err != nil {
			return fmt.Errorf("restaurando stock: %w", err)
		}
		if err := s.repo.EliminarTx(tx, id); err != nil {
			return fmt.Errorf("eliminando factura: %w", err)
		}
		return nil
	})
}

// numeroDisponibleTx genera números FAC-NNNNN hasta encontrar uno libre
// dentro de la transacción.
func (s *facturaService) numeroDisponibleTx(tx *gorm.DB) (string, error) {
	for range maxIntentosNumero {
		numero := generarNumeroFactura()
		existe, err := s.repo.ExisteNumeroTx(tx, numero)
		if err != nil {
			return "", fmt.Errorf("verificando numero de factura: %w", err)
		}
		if !existe {
			return numero, nil
		}
	}
	return "", errors.New("no fue posible generar un numero de factura unico")
}

func generarNumeroFactura() string {
	return fmt.Sprintf("FAC-%05d", 10000+rand.IntN(90000))
}

// TotalFactura calcula cantidad por valor unitario. Sin producto o sin valor
// el total es cero.
func TotalFactura(f *model.Factura) decimal.Decimal {
	if f == nil || f.Producto == nil || f.Producto.Valor == nil {
		return decimal.Zero
	}
	return f.Producto.Valor.Mul(decimal.NewFromInt(int64(f.Cantidad)))
}

func descripcionVenta(f *model.Factura) string {
	nombre := "sin nombre"
	if f.Producto != nil && f.Producto.Nombre != nil {
		nombre = *f.Producto.Nombre
	}
	total := TotalFactura(f)
	return fmt.Sprintf("Venta registrada: %s x%d por un total de $%s (factura %s)",
		nombre, f.Cantidad, total.StringFixed(2), f.NumeroFactura)
}

func descripcionCambioFactura(f *model.Factura) string {
	nombre := "sin nombre"
	if f.Producto != nil && f.Producto.Nombre != nil {
		nombre = *f.Producto.Nombre
	}
	total := TotalFactura(f)
	return fmt.Sprintf("Factura %s actualizada: %s x%d por un total de $%s",
		f.NumeroFactura, nombre, f.Cantidad, total.StringFixed(2))
}

func facturaToResponse(f *model.Factura) *dto.FacturaResponse {
	resp := &dto.FacturaResponse{
		ID:            f.ID.String(),
		NumeroFactura: f.NumeroFactura,
		ProductoID:    f.ProductoID.String(),
		Cantidad:      f.Cantidad,
		FechaSalida:   formatFechaOpt(f.FechaSalida),
		Total:         TotalFactura(f),
	}
	if p := f.Producto; p != nil {
		resp.Equipo = p.Nombre
		resp.Referencia = p.Referencia
		resp.Marca = p.Marca
		resp.Serial = p.Serial
		resp.Descripcion = p.Descripcion
		resp.FechaEntrada = formatFechaOpt(p.FechaEntrada)
		resp.Estado = p.Estado
		resp.Observaciones = p.Observaciones
		resp.Valor = p.Valor
	}
	return resp
}
