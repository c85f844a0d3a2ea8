package router

import (
	"time"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/GabMond07/Salty-Sweety-POS-sub000/internal/config"
	"github.com/GabMond07/Salty-Sweety-POS-sub000/internal/handler"
	"github.com/GabMond07/Salty-Sweety-POS-sub000/internal/infra"
	"github.com/GabMond07/Salty-Sweety-POS-sub000/internal/middleware"
	"github.com/GabMond07/Salty-Sweety-POS-sub000/internal/repository"
	"github.com/GabMond07/Salty-Sweety-POS-sub000/internal/service"
	"github.com/GabMond07/Salty-Sweety-POS-sub000/internal/worker"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(
	cfg *config.Config,
	db *gorm.DB,
	rdb *redis.Client,
	dispatcher *worker.Dispatcher,
	pdfGen *infra.PDFGenerator,
	storage *infra.Storage,
) *gin.Engine {
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
	productoRepo := repository.NewProductoRepository(db)
	ingredienteRepo := repository.NewIngredienteRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	cotizacionRepo := repository.NewCotizacionRepository(db)
	movimientoRepo := repository.NewMovimientoRepository(db)
	categoriaRepo := repository.NewCategoriaRepository(db)
	metaRepo := repository.NewMetaRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	productoSvc := service.NewProductoService(productoRepo, movimientoRepo, storage, rdb)
	ingredienteSvc := service.NewIngredienteService(ingredienteRepo)
	clienteSvc := service.NewClienteService(clienteRepo)
	ventaSvc := service.NewVentaService(ventaRepo, productoRepo, clienteRepo, movimientoRepo, rdb)
	cotizacionSvc := service.NewCotizacionService(cotizacionRepo, productoRepo, ingredienteRepo, clienteRepo, dispatcher)
	categoriaSvc := service.NewCategoriaService(categoriaRepo)
	reporteSvc := service.NewReporteService(ventaRepo, productoRepo, metaRepo, movimientoRepo, pdfGen, rdb)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	ingredientesH := handler.NewIngredientesHandler(ingredienteSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	ventasH := handler.NewVentasHandler(ventaSvc)
	cotizacionesH := handler.NewCotizacionesHandler(cotizacionSvc)
	categoriasH := handler.NewCategoriasHandler(categoriaSvc)
	inventarioH := handler.NewInventarioHandler(reporteSvc)
	reportesH := handler.NewReportesHandler(reporteSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))
	r.Static("/uploads", storage.Root())

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	lectura := middleware.RequireRole("vendedor", "administrador")
	admin := middleware.RequireRole("administrador")

	v1 := r.Group("/v1", jwtMW)
	{
		// Ventas — any seller can capture; annulment is administrador only
		v1.POST("/ventas", lectura, ventasH.RegistrarVenta)
		v1.GET("/ventas", lectura, ventasH.ListarVentas)
		v1.GET("/ventas/:id", lectura, ventasH.ObtenerVenta)
		v1.DELETE("/ventas/:id", admin, ventasH.AnularVenta)

		// Productos — reads for all, writes for administrador
		v1.GET("/productos", lectura, productosH.Listar)
		v1.GET("/productos/:id", lectura, productosH.ObtenerPorID)
		prods := v1.Group("/productos", admin)
		{
			prods.POST("", productosH.Crear)
			prods.PUT("/:id", productosH.Actualizar)
			prods.PATCH("/:id/stock", productosH.AjustarStock)
			prods.POST("/:id/imagen", productosH.SubirImagen)
			prods.DELETE("/:id", productosH.Desactivar)
			prods.PATCH("/:id/reactivar", productosH.Reactivar)
		}

		// Ingredientes
		v1.GET("/ingredientes", lectura, ingredientesH.Listar)
		v1.GET("/ingredientes/:id", lectura, ingredientesH.ObtenerPorID)
		ingr := v1.Group("/ingredientes", admin)
		{
			ingr.POST("", ingredientesH.Crear)
			ingr.PUT("/:id", ingredientesH.Actualizar)
			ingr.DELETE("/:id", ingredientesH.Desactivar)
		}

		// Clientes — sellers register clients at the counter; delete is admin
		v1.GET("/clientes", lectura, clientesH.Listar)
		v1.GET("/clientes/:id", lectura, clientesH.ObtenerPorID)
		v1.POST("/clientes", lectura, clientesH.Crear)
		v1.PUT("/clientes/:id", lectura, clientesH.Actualizar)
		v1.DELETE("/clientes/:id", admin, clientesH.Eliminar)

		// Cotizaciones
		v1.POST("/cotizaciones", lectura, cotizacionesH.Crear)
		v1.GET("/cotizaciones", lectura, cotizacionesH.Listar)
		v1.GET("/cotizaciones/:id", lectura, cotizacionesH.Obtener)
		v1.PATCH("/cotizaciones/:id/estado", lectura, cotizacionesH.CambiarEstado)
		v1.DELETE("/cotizaciones/:id", admin, cotizacionesH.Eliminar)

		// Categorías — administrador can write, all authenticated can read
		v1.GET("/categorias", lectura, categoriasH.Listar)
		categorias := v1.Group("/categorias", admin)
		{
			categorias.POST("", categoriasH.Crear)
			categorias.PUT("/:id", categoriasH.Actualizar)
			categorias.DELETE("/:id", categoriasH.Desactivar)
		}

		// Inventario
		v1.GET("/inventario/movimientos", lectura, inventarioH.ListarMovimientos)

		// Reportes
		v1.GET("/reportes/dashboard", lectura, reportesH.Dashboard)
		rep := v1.Group("/reportes", admin)
		{
			rep.GET("/ventas/export", reportesH.ExportarVentas)
			rep.PUT("/metas", reportesH.GuardarMeta)
			rep.GET("/metas", reportesH.ListarMetas)
		}

		usuarios := v1.Group("/usuarios", admin)
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
