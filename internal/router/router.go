package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"alquilapp/internal/config"
	"alquilapp/internal/handler"
	"alquilapp/internal/middleware"
	"alquilapp/internal/repository"
	"alquilapp/internal/service"
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
	r.Use(middleware.CORS(cfg.CORSAllowedOrigin))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute))

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	movimientoStockRepo := repository.NewMovimientoStockRepository(db)
	pedidoRepo := repository.NewPedidoRepository(db)
	alquilerRepo := repository.NewAlquilerRepository(db)
	incidenteRepo := repository.NewIncidenteRepository(db)
	pagoRepo := repository.NewPagoRepository(db)
	cajaRepo := repository.NewCajaRepository(db)
	entregaRepo := repository.NewEntregaRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	clienteSvc := service.NewClienteService(clienteRepo)
	inventarioSvc := service.NewInventarioService(productoRepo, movimientoStockRepo)
	productoSvc := service.NewProductoService(productoRepo, incidenteRepo, inventarioSvc)
	pedidoSvc := service.NewPedidoService(pedidoRepo, alquilerRepo, clienteRepo, productoRepo, pagoRepo, cajaRepo, inventarioSvc, cfg.GarantiaPorcentaje)
	alquilerSvc := service.NewAlquilerService(alquilerRepo, pedidoRepo, incidenteRepo, pagoRepo, cajaRepo, inventarioSvc)
	incidenteSvc := service.NewIncidenteService(incidenteRepo, alquilerRepo, pedidoRepo, inventarioSvc)
	pagoSvc := service.NewPagoService(pagoRepo, pedidoRepo, alquilerRepo, cajaRepo)
	cajaSvc := service.NewCajaService(cajaRepo, pagoRepo)
	entregaSvc := service.NewEntregaService(entregaRepo, alquilerRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	pedidosH := handler.NewPedidosHandler(pedidoSvc)
	alquileresH := handler.NewAlquileresHandler(alquilerSvc, cfg.PDFStoragePath)
	incidentesH := handler.NewIncidentesHandler(incidenteSvc)
	pagosH := handler.NewPagosHandler(pagoSvc)
	cajaH := handler.NewCajaHandler(cajaSvc)
	entregasH := handler.NewEntregasHandler(entregaSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(rdb), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	todos := middleware.RequireRole("empleado", "cajero", "administrador")
	conCaja := middleware.RequireRole("cajero", "administrador")
	admin := middleware.RequireRole("administrador")

	v1 := r.Group("/v1", jwtMW)
	{
		// Usuarios: administrador only
		usuarios := v1.Group("/usuarios", admin)
		{
			usuarios.POST("", authH.CrearUsuario)
			usuarios.PUT("/:id", authH.ActualizarUsuario)
			usuarios.DELETE("/:id", authH.DesactivarUsuario)
		}

		// Clientes
		v1.GET("/clientes", todos, clientesH.Listar)
		v1.GET("/clientes/:id", todos, clientesH.ObtenerPorID)
		v1.POST("/clientes", todos, clientesH.Crear)
		v1.PUT("/clientes/:id", todos, clientesH.Actualizar)
		v1.DELETE("/clientes/:id", admin, clientesH.Desactivar)

		// Productos: catálogo readable by everyone, writes admin only
		v1.GET("/productos", todos, productosH.Listar)
		v1.GET("/productos/:id", todos, productosH.ObtenerPorID)
		v1.GET("/productos/:id/disponibilidad", todos, productosH.Disponibilidad)
		v1.GET("/productos/:id/movimientos", conCaja, productosH.Movimientos)
		prods := v1.Group("/productos", admin)
		{
			prods.POST("", productosH.Crear)
			prods.PUT("/:id", productosH.Actualizar)
			prods.PATCH("/:id/stock", productosH.AjustarStock)
			prods.PATCH("/:id/reactivar", productosH.Reactivar)
			prods.DELETE("/:id", productosH.Desactivar)
		}

		// Pedidos
		v1.GET("/pedidos", todos, pedidosH.Listar)
		v1.GET("/pedidos/:id", todos, pedidosH.ObtenerPorID)
		v1.POST("/pedidos", conCaja, pedidosH.Crear)
		v1.POST("/pedidos/:id/confirmar", conCaja, pedidosH.Confirmar)
		v1.POST("/pedidos/:id/cancelar", conCaja, pedidosH.Cancelar)

		// Alquileres
		v1.GET("/alquileres", todos, alquileresH.Listar)
		v1.GET("/alquileres/:id", todos, alquileresH.ObtenerPorID)
		v1.GET("/alquileres/:id/resumen", todos, alquileresH.Resumen)
		v1.GET("/alquileres/:id/recibo", todos, alquileresH.Recibo)
		v1.POST("/alquileres/:id/entregar", conCaja, alquileresH.Entregar)
		v1.POST("/alquileres/:id/finalizar", conCaja, alquileresH.Finalizar)
		v1.DELETE("/alquileres/:id", admin, alquileresH.Eliminar)

		// Incidentes
		v1.GET("/incidentes", todos, incidentesH.Listar)
		v1.GET("/incidentes/:id", todos, incidentesH.ObtenerPorID)
		v1.POST("/incidentes", todos, incidentesH.Crear)
		v1.PATCH("/incidentes/:id/resolver", conCaja, incidentesH.Resolver)
		v1.PATCH("/incidentes/:id/anular", conCaja, incidentesH.Anular)
		v1.DELETE("/incidentes/:id", admin, incidentesH.Eliminar)

		// Pagos
		v1.GET("/pagos", conCaja, pagosH.Listar)
		v1.GET("/pagos/:id", conCaja, pagosH.ObtenerPorID)
		v1.POST("/pagos", conCaja, pagosH.Crear)

		// Caja
		v1.POST("/caja/abrir", conCaja, cajaH.Abrir)
		v1.POST("/caja/cerrar", conCaja, cajaH.Cerrar)
		v1.GET("/caja/abierta", conCaja, cajaH.Abierta)
		v1.GET("/caja/:id/resumen", conCaja, cajaH.Resumen)
		v1.GET("/caja", conCaja, cajaH.Historial)

		// Entregas
		v1.GET("/entregas", todos, entregasH.Listar)
		v1.GET("/entregas/:id", todos, entregasH.ObtenerPorID)
		v1.POST("/entregas", todos, entregasH.Crear)
		v1.PATCH("/entregas/:id/estado", todos, entregasH.CambiarEstado)
	}

	// Swagger UI is not exposed in production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
