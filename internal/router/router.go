package router

import (
	"time"

	"gestinv/internal/config"
	"gestinv/internal/handler"
	"gestinv/internal/middleware"
	"gestinv/internal/model"
	"gestinv/internal/repository"
	"gestinv/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	categoriaRepo := repository.NewCategoriaRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	facturaRepo := repository.NewFacturaRepository(db)
	actividadRepo := repository.NewActividadRepository(db)
	reporteRepo := repository.NewReporteRepository(db)
	resumenRepo := repository.NewResumenRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg.JWTSecret, cfg.JWTExpirationHours, cfg.JWTRefreshHours)
	categoriaSvc := service.NewCategoriaService(categoriaRepo, productoRepo)
	productoSvc := service.NewProductoService(productoRepo, categoriaRepo, actividadRepo)
	facturaSvc := service.NewFacturaService(facturaRepo, productoRepo, actividadRepo)
	actividadSvc := service.NewActividadService(actividadRepo, facturaRepo)
	reporteSvc := service.NewReporteService(reporteRepo, facturaRepo, productoRepo, categoriaRepo, usuarioRepo)
	resumenSvc := service.NewResumenService(resumenRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	usuariosH := handler.NewUsuariosHandler(authSvc)
	categoriasH := handler.NewCategoriasHandler(categoriaSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	facturasH := handler.NewFacturasHandler(facturaSvc, facturaRepo, cfg.PDFStoragePath)
	actividadesH := handler.NewActividadesHandler(actividadSvc)
	reportesH := handler.NewReportesHandler(reporteSvc)
	resumenH := handler.NewResumenHandler(resumenSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	usuarios := r.Group("/usuarios")
	{
		usuarios.POST("/registro", usuariosH.Registro)
		usuarios.POST("/login", middleware.LoginRateLimiter(rdb), usuariosH.Login)
		usuarios.POST("/refresh", usuariosH.Refresh)
	}

	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	adminMW := middleware.RequireRole(model.RolAdmin)

	// Account management (authenticated)
	cuenta := r.Group("/usuarios", jwtMW)
	{
		cuenta.POST("/cambiar-contrasena", usuariosH.CambiarContrasena)
		cuenta.GET("/perfil", usuariosH.Perfil)
		// Administration — admin only
		cuenta.GET("", adminMW, usuariosH.Listar)
		cuenta.PUT("/:id", adminMW, usuariosH.Actualizar)
		cuenta.DELETE("/:id", adminMW, usuariosH.Desactivar)
	}

	// Inventory domain (authenticated)
	inv := r.Group("/inventario", jwtMW)
	{
		// Categorías — any role can read, admin writes
		inv.GET("/categorias", categoriasH.Listar)
		inv.GET("/categorias/:id", categoriasH.ObtenerPorID)
		categorias := inv.Group("/categorias", adminMW)
		{
			categorias.POST("", categoriasH.Crear)
			categorias.PUT("/:id", categoriasH.Actualizar)
			categorias.DELETE("/:id", categoriasH.Eliminar)
		}

		// Productos — any role can read, admin writes
		inv.GET("/productos", productosH.Listar)
		inv.GET("/productos/bajo_stock", productosH.BajoStock)
		inv.GET("/productos/reporte_bajo_stock", adminMW, productosH.ReporteBajoStock)
		inv.GET("/productos/:id", productosH.ObtenerPorID)
		productos := inv.Group("/productos", adminMW)
		{
			productos.POST("", productosH.Crear)
			productos.PUT("/:id", productosH.Actualizar)
			productos.DELETE("/:id", productosH.Eliminar)
		}

		// Facturas — every mutation moves stock atomically
		facturas := inv.Group("/facturas")
		{
			facturas.POST("", facturasH.Crear)
			facturas.GET("", facturasH.Listar)
			facturas.GET("/:id", facturasH.ObtenerPorID)
			facturas.GET("/:id/pdf", facturasH.DescargarPDF)
			facturas.PUT("/:id", facturasH.Actualizar)
			facturas.PATCH("/:id", facturasH.Actualizar)
			facturas.DELETE("/:id", facturasH.Eliminar)
		}

		// Actividades — append-only log
		inv.GET("/actividades", actividadesH.Listar)
		inv.GET("/actividades/:id", actividadesH.ObtenerPorID)
		inv.POST("/actividades", actividadesH.Registrar)

		// Reportes
		reportes := inv.Group("/reportes")
		{
			reportes.POST("", reportesH.Crear)
			reportes.GET("", reportesH.Listar)
			reportes.GET("/:id", reportesH.ObtenerPorID)
			reportes.PUT("/:id", reportesH.Actualizar)
			reportes.PATCH("/:id", reportesH.Actualizar)
			reportes.DELETE("/:id", reportesH.Eliminar)
		}

		// Resumen ejecutivo
		inv.GET("/resumen", resumenH.Obtener)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
