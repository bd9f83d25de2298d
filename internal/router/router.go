package router

import (
	"mireparto/internal/config"
	"mireparto/internal/handler"
	"mireparto/internal/infra"
	"mireparto/internal/middleware"
	"mireparto/internal/realtime"
	"mireparto/internal/repository"
	"mireparto/internal/service"
	"mireparto/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, notifier realtime.Notifier) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	loc := cfg.Location()

	r := gin.New()

	// Global middleware chain (order matters)
	limiterStore := middleware.NewLimiterStore(rdb)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.AllowedOrigins()))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(limiterStore, cfg.RateLimit))

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	repartoRepo := repository.NewRepartoRepository(db)
	saldoRepo := repository.NewSaldoClienteRepository(db)
	transferenciaRepo := repository.NewTransferenciaRepository(db)
	proveedorRepo := repository.NewProveedorRepository(db)
	pronelisRepo := repository.NewPronelisRepository(db)
	listaRepo := repository.NewListaPreciosRepository(db)
	semanaRepo := repository.NewSemanaRepository(db)

	// Services enqueue async jobs through the dispatcher
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	repartoSvc := service.NewRepartoService(repartoRepo, notifier, loc)
	saldoSvc := service.NewSaldoClienteService(saldoRepo, notifier, dispatcher, cfg.PDFStoragePath, loc)
	transferenciaSvc := service.NewTransferenciaService(transferenciaRepo, notifier)
	proveedorSvc := service.NewProveedorService(proveedorRepo, notifier)
	pronelisSvc := service.NewPronelisService(pronelisRepo, notifier)
	listaSvc := service.NewListaPreciosService(listaRepo, proveedorRepo, pronelisRepo, notifier, loc)
	semanaSvc := service.NewSemanaService(semanaRepo, loc)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	repartosH := handler.NewRepartosHandler(repartoSvc, notifier)
	saldosH := handler.NewSaldosClientesHandler(saldoSvc, notifier)
	transferenciasH := handler.NewTransferenciasHandler(transferenciaSvc, notifier)
	proveedoresH := handler.NewProveedoresHandler(proveedorSvc, notifier)
	pronelisH := handler.NewPronelisHandler(pronelisSvc, notifier)
	listasH := handler.NewListasPreciosHandler(listaSvc, notifier)
	semanaH := handler.NewSemanaHandler(semanaSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(limiterStore), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	v1 := r.Group("/v1", middleware.JWTAuth(cfg.JWTSecret))
	{
		rep := v1.Group("/repartos")
		{
			rep.POST("", repartosH.Crear)
			rep.GET("", repartosH.Listar)
			rep.GET("/stream", repartosH.Stream)
			rep.GET("/:id", repartosH.ObtenerPorID)
			rep.PUT("/:id", repartosH.Actualizar)
			rep.DELETE("/:id", repartosH.Eliminar)
			rep.GET("/:id/pdf", repartosH.PDF)
			rep.POST("/:id/clientes/:idx/toggle", repartosH.AlternarPago)
			rep.PUT("/:id/clientes/:idx/pago", repartosH.RegistrarPago)
			rep.PUT("/:id/clientes/:idx/importe", repartosH.ActualizarImporte)
		}

		saldos := v1.Group("/saldos-clientes")
		{
			saldos.POST("/calcular", saldosH.Calcular)
			saldos.POST("", saldosH.Crear)
			saldos.GET("", saldosH.Listar)
			saldos.GET("/stream", saldosH.Stream)
			saldos.GET("/:id", saldosH.ObtenerPorID)
			saldos.PUT("/:id", saldosH.Reemplazar)
			saldos.DELETE("/:id", saldosH.Eliminar)
			saldos.GET("/:id/pdf", saldosH.PDF)
			saldos.POST("/:id/enviar", saldosH.Enviar)
		}

		transf := v1.Group("/transferencias")
		{
			transf.POST("/calcular", transferenciasH.Calcular)
			transf.POST("", transferenciasH.Crear)
			transf.GET("", transferenciasH.Listar)
			transf.GET("/stream", transferenciasH.Stream)
			transf.GET("/:id", transferenciasH.ObtenerPorID)
			transf.PUT("/:id", transferenciasH.Reemplazar)
			transf.DELETE("/:id", transferenciasH.Eliminar)
			transf.GET("/:id/pdf", transferenciasH.PDF)
		}

		prov := v1.Group("/proveedores")
		{
			prov.POST("", proveedoresH.Crear)
			prov.GET("", proveedoresH.Listar)
			prov.GET("/stream", proveedoresH.Stream)
			prov.GET("/:id", proveedoresH.ObtenerPorID)
			prov.PUT("/:id", proveedoresH.Actualizar)
			prov.DELETE("/:id", proveedoresH.Eliminar)
		}

		pron := v1.Group("/pronelis")
		{
			pron.POST("", pronelisH.Crear)
			pron.GET("", pronelisH.Listar)
			pron.GET("/stream", pronelisH.Stream)
			pron.GET("/:id", pronelisH.ObtenerPorID)
			pron.PUT("/:id", pronelisH.Actualizar)
			pron.DELETE("/:id", pronelisH.Eliminar)
		}

		listas := v1.Group("/listas-precios")
		{
			listas.POST("", listasH.Crear)
			listas.POST("/masivo", listasH.CrearMasivo)
			listas.POST("/importar", listasH.Importar)
			listas.GET("/comparar", listasH.Comparar)
			listas.GET("", listasH.Listar)
			listas.GET("/stream", listasH.Stream)
			listas.GET("/:id", listasH.ObtenerPorID)
			listas.PUT("/:id", listasH.Actualizar)
			listas.DELETE("/:id", listasH.Eliminar)
		}

		sem := v1.Group("/semana")
		{
			sem.GET("", semanaH.Obtener)
			sem.PUT("", semanaH.Reemplazar)
			sem.DELETE("", semanaH.Eliminar)
			sem.GET("/resumen", semanaH.Resumen)
			sem.GET("/xlsx", semanaH.XLSX)
			sem.POST("/:lista", semanaH.Agregar)
		}
	}

	// Swagger UI outside production only
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}

// Workers returns the job processors the pool runs, keyed by job type.
func Workers(mailer *infra.Mailer) map[string]worker.Processor {
	return map[string]worker.Processor{
		worker.JobEmail: worker.NewEmailWorker(mailer),
	}
}
