package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go-clinic-access/config"
	"go-clinic-access/internal/authz"
	deliveryHttp "go-clinic-access/internal/delivery/http"
	"go-clinic-access/internal/delivery/http/handler"
	"go-clinic-access/internal/delivery/http/middleware"
	domainRepo "go-clinic-access/internal/domain/repository"
	"go-clinic-access/internal/infrastructure/cache"
	"go-clinic-access/internal/infrastructure/database"
	"go-clinic-access/internal/infrastructure/metrics"
	"go-clinic-access/internal/repository"
	"go-clinic-access/internal/service"
	"go-clinic-access/internal/usecase"
	"go-clinic-access/pkg/jwt"
	"go-clinic-access/pkg/validator"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
	closeLog    func() error
}

// New creates a new App instance with all dependencies initialized
func New(configPath string) (*App, error) {
	app := &App{}
	ctx := context.Background()

	// Load configuration
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	// Setup logger
	closeLog, err := setupLogger(logrus.StandardLogger(), cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}
	app.closeLog = closeLog
	logrus.Info("Configuration loaded successfully")

	// Load the policy table once; it is immutable afterwards
	policy, err := loadPolicy(cfg.Policy)
	if err != nil {
		return nil, fmt.Errorf("failed to load policy: %w", err)
	}
	logrus.WithFields(logrus.Fields{
		"routes": len(policy.Routes()),
		"menu":   len(policy.Menu()),
	}).Info("Policy table loaded")

	// Run migrations before opening the gorm pool
	if cfg.DB.Migrate {
		if err := database.RunMigrations(cfg.DB, logrus.StandardLogger()); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	// Initialize database
	db, err := database.NewPostgresConnection(ctx, cfg.DB, cfg.App.Env, logrus.StandardLogger())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	// Every role the policy knows must exist in the roles table
	if err := verifyRoleCatalog(ctx, db, repository.NewRoleRepository(), logrus.StandardLogger()); err != nil {
		return nil, fmt.Errorf("failed to verify roles: %w", err)
	}

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis, logrus.StandardLogger())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	// Initialize all layers
	server, err := initializeServer(cfg, db, redisClient, policy)
	if err != nil {
		return nil, err
	}
	app.Server = server

	return app, nil
}

// loadPolicy returns the built-in policy unless a policy file is configured.
// Routes the API guards with must exist in either case.
func loadPolicy(cfg config.PolicyFileConfig) (*authz.PolicyTable, error) {
	policy := authz.DefaultPolicy()
	if cfg.File != "" {
		policyCfg, err := config.LoadPolicy(cfg.File)
		if err != nil {
			return nil, err
		}
		if policy, err = authz.NewPolicyTable(*policyCfg); err != nil {
			return nil, err
		}
	}

	for _, name := range deliveryHttp.GuardedRoutes() {
		if _, err := policy.Route(name); err != nil {
			return nil, fmt.Errorf("api guard route missing: %w", err)
		}
	}
	return policy, nil
}

// verifyRoleCatalog fails when a role of the closed enumeration is missing from
// the roles table. Stored roles outside the enumeration only warn: accounts
// holding them resolve as malformed identities.
func verifyRoleCatalog(ctx context.Context, db *gorm.DB, roleRepo domainRepo.RoleRepository, log *logrus.Logger) error {
	roles, err := roleRepo.FindAll(ctx, db)
	if err != nil {
		return err
	}

	stored := make(map[authz.Role]bool, len(roles))
	for _, r := range roles {
		role, ok := authz.ParseRole(r.RoleName)
		if !ok {
			log.WithField("role", r.RoleName).Warn("Stored role is not part of the access policy")
			continue
		}
		stored[role] = true
	}

	var missing []string
	for _, role := range authz.AllRoles() {
		if !stored[role] {
			missing = append(missing, role.String())
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("roles table is missing %s", strings.Join(missing, ", "))
	}
	return nil
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, policy *authz.PolicyTable) (*http.Server, error) {
	log := logrus.StandardLogger()

	// Initialize authorization engine and metrics
	engine := authz.NewEngine(policy)
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.New(registry)

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()
	if err := handler.RegisterCapabilityRule(customValidator); err != nil {
		return nil, fmt.Errorf("failed to register validation rules: %w", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize services
	identityCache := service.NewIdentityCacheService(redisClient, cfg.Identity.CacheTTL)
	sessionStore := service.NewSessionStore(redisClient)
	auditService := service.NewAuditService(log, auditLogRepo)

	// Initialize usecases
	sessionUsecase := usecase.NewSessionUsecase(db, log, engine, userRepo, identityCache, sessionStore, auditService, appMetrics)
	navigationUsecase := usecase.NewNavigationUsecase(log, engine, appMetrics)
	staffPermissionUsecase := usecase.NewStaffPermissionUsecase(db, log, userRepo, auditService, sessionUsecase)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Initialize handlers
	sessionHandler := handler.NewSessionHandler(sessionUsecase)
	navigationHandler := handler.NewNavigationHandler(navigationUsecase)
	staffPermissionHandler := handler.NewStaffPermissionHandler(staffPermissionUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase, customValidator)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(log, engine, jwtService, sessionStore, sessionUsecase)
	routeGuard := middleware.NewRouteGuard(log, engine, appMetrics)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.AllowedOrigins)

	// Initialize router
	router := deliveryHttp.NewRouter(
		sessionHandler,
		navigationHandler,
		staffPermissionHandler,
		auditLogHandler,
		appMetrics.Handler(),
		authMiddleware,
		routeGuard,
		corsMiddleware,
	)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           httpRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}, nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, log file)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}

	if app.closeLog != nil {
		app.closeLog()
	}
}
