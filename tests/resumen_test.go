package tests

import (
	"context"
	"testing"
	"time"

	"gestinv/internal/dto"
	"gestinv/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entornoResumen struct {
	svc          service.ResumenService
	facturaSvc   service.FacturaService
	categoriaSvc service.CategoriaService
	productoRepo *stubProductoRepo
}

func nuevoEntornoResumen(t *testing.T) *entornoResumen {
	t.Helper()
	categoriaRepo := newStubCategoriaRepo()
	productoRepo := newStubProductoRepo()
	facturaRepo := newStubFacturaRepo(productoRepo)
	actividadRepo := newStubActividadRepo()
	resumenRepo := &stubResumenRepo{
		categorias:  categoriaRepo,
		productos:   productoRepo,
		facturas:    facturaRepo,
		actividades: actividadRepo,
	}
	return &entornoResumen{
		svc:          service.NewResumenService(resumenRepo),
		facturaSvc:   service.NewFacturaService(facturaRepo, productoRepo, actividadRepo),
		categoriaSvc: service.NewCategoriaService(categoriaRepo, productoRepo),
		productoRepo: productoRepo,
	}
}

func TestResumenSistemaVacioDevuelveCeros(t *testing.T) {
	env := nuevoEntornoResumen(t)

	resp, err := env.svc.Resumir(context.Background(), "")
	require.NoError(t, err)

	assert.Zero(t, resp.TotalCategorias)
	assert.Zero(t, resp.TotalProductos)
	assert.Zero(t, resp.TotalFacturas)
	assert.Zero(t, resp.TotalActividades)
	assert.Zero(t, resp.StockTotal)
	assert.True(t, resp.TotalVentas.IsZero())
	assert.Zero(t, resp.FacturasHoy)
	assert.True(t, resp.TotalHoy.IsZero())
	assert.Equal(t, time.Now().Format("2006-01-02"), resp.Fecha)
}

func TestResumenFechaInvalida(t *testing.T) {
	env := nuevoEntornoResumen(t)

	_, err := env.svc.Resumir(context.Background(), "agosto-30")
	assert.ErrorIs(t, err, service.ErrFechaInvalida)
}

func TestResumenAgregaTotalesDelDia(t *testing.T) {
	env := nuevoEntornoResumen(t)

	_, err := env.categoriaSvc.Crear(context.Background(), dto.CrearCategoriaRequest{Nombre: "Herramientas"})
	require.NoError(t, err)

	taladro := sembrarProducto(t, env.productoRepo, "Taladro", 10, "50.00")
	sierra := sembrarProducto(t, env.productoRepo, "Sierra", 20, "100.00")

	dia := "2026-08-30"
	otroDia := "2026-08-29"
	_, err = env.facturaSvc.Crear(context.Background(), dto.CrearFacturaRequest{
		ProductoID: taladro.String(), Cantidad: 2, FechaSalida: &dia,
	})
	require.NoError(t, err)
	_, err = env.facturaSvc.Crear(context.Background(), dto.CrearFacturaRequest{
		ProductoID: sierra.String(), Cantidad: 1, FechaSalida: &otroDia,
	})
	require.NoError(t, err)

	resp, err := env.svc.Resumir(context.Background(), dia)
	require.NoError(t, err)

	assert.Equal(t, dia, resp.Fecha)
	assert.Equal(t, int64(1), resp.TotalCategorias)
	assert.Equal(t, int64(2), resp.TotalProductos)
	assert.Equal(t, int64(2), resp.TotalFacturas)
	// cada venta deja su actividad
	assert.Equal(t, int64(2), resp.TotalActividades)
	// stock tras las ventas: (10-2) + (20-1)
	assert.Equal(t, int64(27), resp.StockTotal)
	// ventas globales: 2×50 + 1×100
	assert.True(t, resp.TotalVentas.Equal(decimal.RequireFromString("200.00")), "total_ventas: %s", resp.TotalVentas)
	// acotado al día consultado: solo la factura del taladro
	assert.Equal(t, int64(1), resp.FacturasHoy)
	assert.True(t, resp.TotalHoy.Equal(decimal.RequireFromString("100.00")), "total_hoy: %s", resp.TotalHoy)
}
