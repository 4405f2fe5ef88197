package tests

import (
	"context"
	"testing"

	"gestinv/internal/dto"
	"gestinv/internal/model"
	"gestinv/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nuevoEntornoProductos(t *testing.T) (service.ProductoService, service.CategoriaService, *stubProductoRepo, *stubCategoriaRepo, *stubActividadRepo) {
	t.Helper()
	productoRepo := newStubProductoRepo()
	categoriaRepo := newStubCategoriaRepo()
	actividadRepo := newStubActividadRepo()
	productoSvc := service.NewProductoService(productoRepo, categoriaRepo, actividadRepo)
	categoriaSvc := service.NewCategoriaService(categoriaRepo, productoRepo)
	return productoSvc, categoriaSvc, productoRepo, categoriaRepo, actividadRepo
}

func TestCrearProductoConCategoria(t *testing.T) {
	productoSvc, categoriaSvc, _, _, _ := nuevoEntornoProductos(t)

	cat, err := categoriaSvc.Crear(context.Background(), dto.CrearCategoriaRequest{Nombre: "Herramientas"})
	require.NoError(t, err)

	nombre := "Taladro"
	catID := cat.ID.String()
	valor := decimal.RequireFromString("199.99")
	resp, err := productoSvc.Crear(context.Background(), dto.CrearProductoRequest{
		Nombre:      &nombre,
		Cantidad:    10,
		CategoriaID: &catID,
		Valor:       &valor,
	})
	require.NoError(t, err)
	assert.Equal(t, 10, resp.Cantidad)
	assert.Equal(t, 5, resp.StockMinimo) // default
	assert.Equal(t, model.EstadoDisponible, resp.Estado)
	require.NotNil(t, resp.Categoria)
	assert.Equal(t, catID, *resp.Categoria)
}

func TestCrearProductoCategoriaInexistente(t *testing.T) {
	productoSvc, _, _, _, _ := nuevoEntornoProductos(t)

	nombre := "Taladro"
	catID := uuid.NewString()
	_, err := productoSvc.Crear(context.Background(), dto.CrearProductoRequest{
		Nombre:      &nombre,
		CategoriaID: &catID,
	})
	assert.ErrorIs(t, err, service.ErrNoEncontrado)
}

func TestActualizarProductoRegistraActividad(t *testing.T) {
	productoSvc, _, productoRepo, _, actividadRepo := nuevoEntornoProductos(t)
	productoID := sembrarProducto(t, productoRepo, "Sierra", 7, "80.00")

	marca := "Bosch"
	_, err := productoSvc.Actualizar(context.Background(), productoID, dto.ActualizarProductoRequest{Marca: &marca})
	require.NoError(t, err)

	require.Len(t, actividadRepo.actividades, 1)
	act := actividadRepo.actividades[0]
	assert.Equal(t, model.ActividadActualizacion, act.Tipo)
	assert.Contains(t, act.Descripcion, "Sierra")
	assert.Nil(t, act.FacturaID)

	// la edición no toca el stock
	p, _ := productoRepo.ObtenerPorID(context.Background(), productoID)
	assert.Equal(t, 7, p.Cantidad)
	assert.Equal(t, "Bosch", *p.Marca)
}

func TestBajoStockIncluyeLimiteExacto(t *testing.T) {
	productoSvc, _, productoRepo, _, _ := nuevoEntornoProductos(t)

	// cantidad == stock_minimo cuenta como bajo stock
	sembrarProducto(t, productoRepo, "En el limite", 5, "10.00")
	sembrarProducto(t, productoRepo, "Sobrado", 50, "10.00")
	sembrarProducto(t, productoRepo, "Agotado", 0, "10.00")

	bajos, err := productoSvc.BajoStock(context.Background())
	require.NoError(t, err)
	require.Len(t, bajos, 2)

	nombres := []string{*bajos[0].Nombre, *bajos[1].Nombre}
	assert.Contains(t, nombres, "En el limite")
	assert.Contains(t, nombres, "Agotado")
}

func TestEliminarCategoriaDesvinculaProductos(t *testing.T) {
	productoSvc, categoriaSvc, productoRepo, _, _ := nuevoEntornoProductos(t)

	cat, err := categoriaSvc.Crear(context.Background(), dto.CrearCategoriaRequest{Nombre: "Electricos"})
	require.NoError(t, err)

	nombre := "Rotomartillo"
	catID := cat.ID.String()
	creado, err := productoSvc.Crear(context.Background(), dto.CrearProductoRequest{
		Nombre:      &nombre,
		Cantidad:    3,
		CategoriaID: &catID,
	})
	require.NoError(t, err)

	require.NoError(t, categoriaSvc.Eliminar(context.Background(), cat.ID))

	productoID, _ := uuid.Parse(creado.ID)
	p, err := productoRepo.ObtenerPorID(context.Background(), productoID)
	require.NoError(t, err)
	assert.Nil(t, p.CategoriaID)

	_, err = categoriaSvc.ObtenerPorID(context.Background(), cat.ID)
	assert.ErrorIs(t, err, service.ErrNoEncontrado)
}

func TestCrearCategoriaNombreDuplicado(t *testing.T) {
	_, categoriaSvc, _, _, _ := nuevoEntornoProductos(t)

	_, err := categoriaSvc.Crear(context.Background(), dto.CrearCategoriaRequest{Nombre: "Manuales"})
	require.NoError(t, err)

	_, err = categoriaSvc.Crear(context.Background(), dto.CrearCategoriaRequest{Nombre: "Manuales"})
	assert.ErrorIs(t, err, service.ErrConflicto)
}
