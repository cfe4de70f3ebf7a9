package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	accessUC "courtside/internal/application/access/usecases"
	banUC "courtside/internal/application/ban/usecases"
	deviceUC "courtside/internal/application/device/usecases"
	entitlementUC "courtside/internal/application/entitlement/usecases"
	redemptionUC "courtside/internal/application/redemption/usecases"
	"courtside/internal/domain/access"
	"courtside/internal/domain/ban"
	"courtside/internal/domain/device"
	"courtside/internal/domain/grant"
	"courtside/internal/infrastructure/auth"
	"courtside/internal/infrastructure/config"
	"courtside/internal/infrastructure/ratelimit"
	"courtside/internal/infrastructure/repository"
	"courtside/internal/interfaces/http/handlers"
	adminHandlers "courtside/internal/interfaces/http/handlers/admin"
	"courtside/internal/interfaces/http/middleware"
	"courtside/internal/interfaces/http/routes"
	"courtside/internal/shared/db"
	"courtside/internal/shared/logger"
	"courtside/internal/shared/services/markdown"
)

// Router wires repositories, domain services, use cases and handlers into
// a configured Gin engine.
type Router struct {
	engine *gin.Engine
	config *config.Config
	logger logger.Interface

	contentHandler    *handlers.ContentHandler
	redemptionHandler *handlers.RedemptionHandler
	codeHandler       *adminHandlers.CodeHandler
	grantHandler      *adminHandlers.GrantHandler
	banHandler        *adminHandlers.BanHandler
	deviceHandler     *adminHandlers.DeviceHandler

	authMiddleware  *middleware.AuthMiddleware
	redeemRateLimit *middleware.RedeemRateLimit
}

// NewRouter creates an HTTP router with all dependencies.
func NewRouter(database *gorm.DB, cfg *config.Config, log logger.Interface) *Router {
	engine := gin.New()

	grantRepo := repository.NewGrantRepository(database, log)
	banRepo := repository.NewBanRepository(database, log)
	deviceRepo := repository.NewDeviceAssociationRepository(database, log)
	codeRepo := repository.NewRedemptionCodeRepository(database, log)
	catalogRepo := repository.NewCatalogRepository(database, log)

	txManager := db.NewTransactionManager(database)

	banRegistry := ban.NewRegistry(banRepo, log)
	deviceTracker := device.NewTracker(deviceRepo, banRegistry, cfg.Access.DeviceLimit, log)
	grantIssuer := grant.NewIssuer(grantRepo)
	resolver := access.NewResolver(banRegistry, grantRepo, catalogRepo, log)
	treeBuilder := access.NewTreeBuilder(catalogRepo, markdown.NewMarkdownService(), log)

	getContentUC := accessUC.NewGetContentUseCase(banRegistry, deviceTracker, resolver, treeBuilder, log)
	redeemCodeUC := redemptionUC.NewRedeemCodeUseCase(codeRepo, grantIssuer, txManager, log)
	generateCodesUC := redemptionUC.NewGenerateCodesUseCase(codeRepo, log)
	listCodesUC := redemptionUC.NewListCodesUseCase(codeRepo, log)
	grantAccessUC := entitlementUC.NewGrantAccessUseCase(grantIssuer, log)
	revokeGrantUC := entitlementUC.NewRevokeGrantUseCase(grantRepo, log)
	listGrantsUC := entitlementUC.NewListGrantsUseCase(grantRepo, log)
	banDeviceUC := banUC.NewBanDeviceUseCase(banRepo, log)
	banAccountUC := banUC.NewBanAccountUseCase(banRepo, log)
	liftBanUC := banUC.NewLiftBanUseCase(banRepo, log)
	listBansUC := banUC.NewListBansUseCase(banRepo, log)
	listDevicesUC := deviceUC.NewListDevicesUseCase(deviceRepo, cfg.Access.DeviceLimit, log)
	pruneDeviceUC := deviceUC.NewPruneDeviceUseCase(deviceRepo, log)

	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret)
	authMiddleware := middleware.NewAuthMiddleware(jwtService, log)

	redisClient := initRedis(cfg, log)
	limiter := ratelimit.NewRedisRateLimiter(redisClient)
	redeemRateLimit := middleware.NewRedeemRateLimit(limiter, ratelimit.Limits{
		PerMinute: cfg.Access.RedeemPerMinute,
		PerHour:   cfg.Access.RedeemPerHour,
	}, log)

	return &Router{
		engine:            engine,
		config:            cfg,
		logger:            log,
		contentHandler:    handlers.NewContentHandler(getContentUC, log),
		redemptionHandler: handlers.NewRedemptionHandler(redeemCodeUC, log),
		codeHandler:       adminHandlers.NewCodeHandler(generateCodesUC, listCodesUC, cfg.Access.CodeLength, log),
		grantHandler:      adminHandlers.NewGrantHandler(grantAccessUC, revokeGrantUC, listGrantsUC, log),
		banHandler:        adminHandlers.NewBanHandler(banDeviceUC, banAccountUC, liftBanUC, listBansUC, log),
		deviceHandler:     adminHandlers.NewDeviceHandler(listDevicesUC, pruneDeviceUC, log),
		authMiddleware:    authMiddleware,
		redeemRateLimit:   redeemRateLimit,
	}
}

func initRedis(cfg *config.Config, log logger.Interface) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatalw("failed to connect to redis", "error", err, "addr", cfg.Redis.GetAddr())
	}
	return client
}

// SetupRoutes configures all HTTP routes.
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.ErrorHandler())
	r.engine.Use(middleware.CORS(r.config.Server.AllowedOrigins))
	r.engine.Use(middleware.DeviceID())

	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.SetupContentRoutes(r.engine, &routes.ContentRouteConfig{
		ContentHandler: r.contentHandler,
		AuthMiddleware: r.authMiddleware,
	})

	routes.SetupRedemptionRoutes(r.engine, &routes.RedemptionRouteConfig{
		RedemptionHandler: r.redemptionHandler,
		AuthMiddleware:    r.authMiddleware,
		RedeemRateLimit:   r.redeemRateLimit,
	})

	routes.SetupAdminRoutes(r.engine, &routes.AdminRouteConfig{
		CodeHandler:    r.codeHandler,
		GrantHandler:   r.grantHandler,
		BanHandler:     r.banHandler,
		DeviceHandler:  r.deviceHandler,
		AuthMiddleware: r.authMiddleware,
	})
}

// GetEngine returns the Gin engine.
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// Run starts the HTTP server.
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}
