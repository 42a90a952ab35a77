package router

import (
	"time"

	"heladopos/internal/config"
	"heladopos/internal/handler"
	"heladopos/internal/middleware"
	"heladopos/internal/repository"
	"heladopos/internal/service"
	"heladopos/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
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
	sucursalRepo := repository.NewSucursalRepository(db)
	saborRepo := repository.NewSaborRepository(db)
	insumoRepo := repository.NewInsumoRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	cierreRepo := repository.NewCierreRepository(db)
	movimientoRepo := repository.NewMovimientoStockRepository(db)
	historialRepo := repository.NewHistorialPrecioRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	catalogoSvc := service.NewCatalogoService(saborRepo, insumoRepo, productoRepo, sucursalRepo, historialRepo)
	stockSvc := service.NewStockService(saborRepo, insumoRepo, sucursalRepo, movimientoRepo)
	comboSvc := service.NewComboService(productoRepo)
	ventaSvc := service.NewVentaService(ventaRepo, productoRepo, saborRepo, insumoRepo, comboSvc, stockSvc)
	cierreSvc := service.NewCierreService(cierreRepo, ventaRepo, stockSvc)
	reporteSvc := service.NewReporteService(ventaRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	catalogoH := handler.NewCatalogoHandler(catalogoSvc)
	stockH := handler.NewStockHandler(stockSvc)
	ventasH := handler.NewVentasHandler(ventaSvc)
	cajaH := handler.NewCajaHandler(cierreSvc)
	reportesH := handler.NewReportesHandler(reporteSvc, dispatcher)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		anyRole := middleware.RequireRole("vendedor", "admin")
		adminOnly := middleware.RequireRole("admin")

		v1.POST("/ventas", anyRole, ventasH.RegistrarVenta)
		v1.GET("/ventas", anyRole, ventasH.ListarVentas)

		// Catálogo — lectura para todos, escritura solo admin
		v1.GET("/sabores", anyRole, catalogoH.ListarSabores)
		v1.GET("/insumos", anyRole, catalogoH.ListarInsumos)
		v1.GET("/productos", anyRole, catalogoH.ListarProductos)
		v1.GET("/productos/:id/historial-precios", anyRole, catalogoH.ListarHistorialPrecios)
		v1.GET("/productos/:id/items", anyRole, catalogoH.ListarItemsCombo)
		v1.GET("/sucursales", anyRole, catalogoH.ListarSucursales)

		admin := v1.Group("", adminOnly)
		{
			admin.POST("/sabores", catalogoH.CrearSabor)
			admin.DELETE("/sabores/:nombre", catalogoH.DesactivarSabor)
			admin.PATCH("/sabores/:nombre/reactivar", catalogoH.ReactivarSabor)

			admin.POST("/insumos", catalogoH.CrearInsumo)
			admin.DELETE("/insumos/:id", catalogoH.EliminarInsumo)

			admin.POST("/productos", catalogoH.CrearProducto)
			admin.PUT("/productos/:id/precio", catalogoH.ActualizarPrecio)
			admin.DELETE("/productos/:id", catalogoH.DesactivarProducto)
			admin.PATCH("/productos/:id/reactivar", catalogoH.ReactivarProducto)
			admin.POST("/productos/:id/items", catalogoH.AgregarItemCombo)
			admin.DELETE("/productos/:id/items/:itemId", catalogoH.EliminarItemCombo)

			admin.POST("/sucursales", catalogoH.CrearSucursal)
		}

		stock := v1.Group("/stock", anyRole)
		{
			stock.POST("/sabores/reponer", stockH.ReponerSabor)
			stock.POST("/sabores/corregir", adminOnly, stockH.CorregirSabor)
			stock.POST("/insumos/reponer", stockH.ReponerInsumo)
			stock.GET("/movimientos", stockH.ListarMovimientos)
		}

		caja := v1.Group("/caja", anyRole)
		{
			caja.GET("", cajaH.VentanaActual)
			caja.POST("/cierre", cajaH.Cerrar)
			caja.GET("/cierres", cajaH.ListarCierres)
		}

		reportes := v1.Group("/reportes", adminOnly)
		{
			reportes.GET("/resumen", reportesH.Resumen)
			reportes.GET("/ventas", reportesH.Ventas)
			reportes.GET("/excel", reportesH.Excel)
			reportes.POST("/async", reportesH.GenerarAsync)
		}

		usuarios := v1.Group("/usuarios", adminOnly)
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.DELETE("/:id", usuariosH.Desactivar)
			usuarios.PATCH("/:id/reactivar", usuariosH.Reactivar)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
