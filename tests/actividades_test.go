package tests

import (
	"context"
	"testing"

	"gestinv/internal/dto"
	"gestinv/internal/model"
	"gestinv/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescripcionActividadSinFactura(t *testing.T) {
	desc := service.DescripcionActividad(model.ActividadOtro, nil)
	assert.Equal(t, "Actividad de tipo 'otro' registrada sin una factura especifica.", desc)
}

func TestDescripcionActividadConFactura(t *testing.T) {
	nombre := "Taladro"
	valor := decimal.RequireFromString("50.00")
	f := &model.Factura{
		NumeroFactura: "FAC-12345",
		Cantidad:      3,
		Producto:      &model.Producto{Nombre: &nombre, Valor: &valor},
	}
	desc := service.DescripcionActividad(model.ActividadVenta, f)
	assert.Contains(t, desc, "FAC-12345")
	assert.Contains(t, desc, "Taladro")
	assert.Contains(t, desc, "x3")
	assert.Contains(t, desc, "150.00")
}

func TestDescripcionActividadProductoSinNombre(t *testing.T) {
	f := &model.Factura{NumeroFactura: "FAC-10000", Cantidad: 1, Producto: &model.Producto{}}
	desc := service.DescripcionActividad(model.ActividadFactura, f)
	assert.Contains(t, desc, "sin nombre")
	assert.Contains(t, desc, "0.00")
}

func TestRegistrarActividadSintetizaDescripcion(t *testing.T) {
	productoRepo := newStubProductoRepo()
	facturaRepo := newStubFacturaRepo(productoRepo)
	actividadRepo := newStubActividadRepo()
	facturaSvc := service.NewFacturaService(facturaRepo, productoRepo, actividadRepo)
	actividadSvc := service.NewActividadService(actividadRepo, facturaRepo)

	productoID := sembrarProducto(t, productoRepo, "Pulidora", 10, "75.50")
	factura, err := facturaSvc.Crear(context.Background(), dto.CrearFacturaRequest{
		ProductoID: productoID.String(),
		Cantidad:   2,
	})
	require.NoError(t, err)

	resp, err := actividadSvc.Registrar(context.Background(), dto.RegistrarActividadRequest{
		Tipo:      model.ActividadOtro,
		FacturaID: &factura.ID,
	})
	require.NoError(t, err)
	assert.Contains(t, resp.Descripcion, factura.NumeroFactura)
	assert.Contains(t, resp.Descripcion, "Pulidora")
	assert.Contains(t, resp.Descripcion, "151.00")
	require.NotNil(t, resp.FacturaID)
	assert.Equal(t, factura.ID, *resp.FacturaID)
}

func TestRegistrarActividadDescripcionExplicita(t *testing.T) {
	actividadRepo := newStubActividadRepo()
	facturaRepo := newStubFacturaRepo(newStubProductoRepo())
	svc := service.NewActividadService(actividadRepo, facturaRepo)

	desc := "Inventario fisico mensual"
	resp, err := svc.Registrar(context.Background(), dto.RegistrarActividadRequest{
		Tipo:        model.ActividadOtro,
		Descripcion: &desc,
	})
	require.NoError(t, err)
	assert.Equal(t, desc, resp.Descripcion)
}

func TestListarActividadesOrdenReciente(t *testing.T) {
	actividadRepo := newStubActividadRepo()
	facturaRepo := newStubFacturaRepo(newStubProductoRepo())
	svc := service.NewActividadService(actividadRepo, facturaRepo)

	for _, d := range []string{"primera", "segunda", "tercera"} {
		desc := d
		_, err := svc.Registrar(context.Background(), dto.RegistrarActividadRequest{
			Tipo:        model.ActividadOtro,
			Descripcion: &desc,
		})
		require.NoError(t, err)
	}

	lista, err := svc.Listar(context.Background())
	require.NoError(t, err)
	require.Len(t, lista, 3)
	assert.Equal(t, "tercera", lista[0].Descripcion)
	assert.Equal(t, "primera", lista[2].Descripcion)
}
