package router

import (
	"time"

	"github.com/arturorangel1442/Inversiones-Ledezma-ECommerce/internal/config"
	"github.com/arturorangel1442/Inversiones-Ledezma-ECommerce/internal/handler"
	"github.com/arturorangel1442/Inversiones-Ledezma-ECommerce/internal/infra"
	"github.com/arturorangel1442/Inversiones-Ledezma-ECommerce/internal/middleware"
	"github.com/arturorangel1442/Inversiones-Ledezma-ECommerce/internal/repository"
	"github.com/arturorangel1442/Inversiones-Ledezma-ECommerce/internal/service"
	"github.com/arturorangel1442/Inversiones-Ledezma-ECommerce/internal/session"

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
	r.Use(middleware.CORS(cfg.Origins()))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	sesiones := session.NewStore(rdb, time.Duration(cfg.SessionTTLHours)*time.Hour)
	var notificador service.Notificador
	if cfg.SMTPHost != "" {
		notificador = infra.NewMailer(cfg)
	}

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	categoriaRepo := repository.NewCategoriaRepository(db)
	pedidoRepo := repository.NewPedidoRepository(db)
	movimientoStockRepo := repository.NewMovimientoStockRepository(db)
	configuracionRepo := repository.NewConfiguracionRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	productoSvc := service.NewProductoService(productoRepo, categoriaRepo, movimientoStockRepo)
	categoriaSvc := service.NewCategoriaService(categoriaRepo, productoRepo)
	pedidoSvc := service.NewPedidoService(pedidoRepo, productoRepo, movimientoStockRepo, notificador)
	configuracionSvc := service.NewConfiguracionService(configuracionRepo, rdb)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc, sesiones, cfg)
	productosH := handler.NewProductosHandler(productoSvc)
	categoriasH := handler.NewCategoriasHandler(categoriaSvc)
	pedidosH := handler.NewPedidosHandler(pedidoSvc)
	configuracionH := handler.NewConfiguracionHandler(configuracionSvc)
	inventarioH := handler.NewInventarioHandler(productoSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb))

	// Public storefront surface
	r.GET("/productos", productosH.Listar)

	api := r.Group("/api")
	{
		api.POST("/register", authH.Registrar)
		api.POST("/login", middleware.LoginRateLimiter(), authH.Login)

		api.GET("/categorias", categoriasH.Listar)
		api.GET("/configuracion/tasa", configuracionH.ObtenerTasa)

		// Payment confirmation and status lookup stay public so the buyer
		// can act from the confirmation page without a session.
		api.POST("/confirmar_pago", pedidosH.ConfirmarPago)
		api.GET("/pedido/:id", pedidosH.ObtenerPorID)
	}

	// Authenticated surface
	authMW := middleware.SessionAuth(sesiones, usuarioRepo)
	priv := r.Group("/api", authMW)
	{
		priv.POST("/logout", authH.Logout)
		priv.GET("/usuario/actual", authH.UsuarioActual)
		priv.POST("/pedido", pedidosH.Crear)
		priv.GET("/pedidos/mis-pedidos", pedidosH.MisPedidos)
		priv.GET("/pedido/:id/recibo", pedidosH.Recibo)
	}

	// Admin panel
	admin := r.Group("/api", authMW, middleware.RequireAdmin())
	{
		admin.GET("/pedidos", pedidosH.ListarTodos)
		admin.POST("/pedido/actualizar_estado", pedidosH.ActualizarEstado)

		admin.POST("/productos", productosH.Crear)
		admin.PUT("/productos/:id", productosH.Actualizar)
		admin.DELETE("/productos/:id", productosH.Eliminar)

		admin.POST("/categorias", categoriasH.Crear)
		admin.PUT("/categorias/:id", categoriasH.Actualizar)
		admin.DELETE("/categorias/:id", categoriasH.Eliminar)

		admin.PUT("/configuracion/tasa", configuracionH.ActualizarTasa)
		admin.GET("/inventario/movimientos", inventarioH.Movimientos)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
