package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	_ "github.com/redmonkez12/advisory-cms/docs" // Swagger docs (generated)
	"github.com/redmonkez12/advisory-cms/internal/auth"
	"github.com/redmonkez12/advisory-cms/internal/blog"
	"github.com/redmonkez12/advisory-cms/internal/config"
	"github.com/redmonkez12/advisory-cms/internal/contact"
	"github.com/redmonkez12/advisory-cms/internal/database"
	"github.com/redmonkez12/advisory-cms/internal/database/migrations"
	"github.com/redmonkez12/advisory-cms/internal/email"
	httpServer "github.com/redmonkez12/advisory-cms/internal/http"
	"github.com/redmonkez12/advisory-cms/internal/logging"
	"github.com/redmonkez12/advisory-cms/internal/maintenance"
	"github.com/redmonkez12/advisory-cms/internal/metrics"
	"github.com/redmonkez12/advisory-cms/internal/offering"
	"github.com/redmonkez12/advisory-cms/internal/pagecontent"
	"github.com/redmonkez12/advisory-cms/internal/ratelimit"
	"github.com/redmonkez12/advisory-cms/internal/settings"
	"github.com/redmonkez12/advisory-cms/internal/turnstile"
	"github.com/redmonkez12/advisory-cms/internal/upload"
	"github.com/redmonkez12/advisory-cms/internal/user"
)

// @title           89T Corporate Advisors CMS API
// @version         1.0
// @description     Content and admin API for the 89T Corporate Advisors website.

// @contact.name   API Support
// @contact.email  support@89tcapl.com

// @host      localhost:5000
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.

func main() {
	if err := run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func run() error {
	// .env is optional, real environment variables win
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := logging.NewLogger(cfg.Server.IsDevelopment())
	logger.Info("starting application",
		"env", cfg.Server.Env,
		"port", cfg.Server.Port,
	)
	startedAt := time.Now()

	db, err := database.Open(cfg.Database.ConnectionString())
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		applied, err := migrations.Run(context.Background(), db)
		if err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		logger.Info("migrations applied", "migrations", applied)
	}

	tokens, err := initTokenService(cfg.Auth)
	if err != nil {
		return err
	}

	rateLimit := ratelimit.Passthrough
	if cfg.RateLimit.Enabled {
		redisClient, err := initRedis(cfg.Redis)
		if err != nil {
			return fmt.Errorf("failed to initialize Redis: %w", err)
		}
		defer redisClient.Close()
		rateLimit = ratelimit.NewLimiter(redisClient, cfg.RateLimit.MaxRequests, cfg.RateLimit.Window).Middleware
	} else {
		logger.Warn("rate limiting disabled")
	}

	// Repositories
	userRepo := user.NewRepository(db)

	// Services
	hasher := auth.NewArgon2Hasher()
	emailService := email.NewService(cfg.Email)
	if !cfg.Email.Configured() {
		logger.Warn("SMTP not configured, emails will not be sent")
	}
	bot := turnstile.NewVerifier(cfg.Turnstile.SecretKey, cfg.Turnstile.VerifyURL, cfg.Turnstile.Timeout, logger)

	authService := auth.NewService(
		userRepo,
		tokens,
		hasher,
		emailService,
		bot,
		logger,
		cfg.Auth.TokenDuration,
		cfg.Server.FrontendURL,
	)

	var objectStore upload.ObjectStore
	if cfg.Storage.Configured() {
		s3Store, err := upload.NewS3Store(context.Background(), cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to initialize object storage: %w", err)
		}
		objectStore = s3Store
	} else {
		logger.Warn("S3 bucket not configured, uploads will fail")
		objectStore = unconfiguredStore{}
	}

	exposeErrors := cfg.Server.IsDevelopment()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db.DB, "advisory"),
	)

	router := httpServer.NewRouter(cfg, httpServer.Handlers{
		Auth:        auth.NewHandler(authService, exposeErrors),
		Users:       user.NewHandler(user.NewService(userRepo, hasher, emailService, logger), exposeErrors),
		Services:    offering.NewHandler(offering.NewService(offering.NewRepository(db)), exposeErrors),
		Blog:        blog.NewHandler(blog.NewService(blog.NewRepository(db)), exposeErrors),
		Content:     pagecontent.NewHandler(pagecontent.NewService(pagecontent.NewRepository(db)), exposeErrors),
		Settings:    settings.NewHandler(settings.NewService(settings.NewRepository(db)), exposeErrors),
		Contact:     contact.NewHandler(contact.NewService(contact.NewRepository(db), emailService, logger), exposeErrors),
		Upload:      upload.NewHandler(upload.NewService(objectStore, cfg.Storage.DefaultFolder), cfg.Storage.MaxUploadBytes, exposeErrors),
		RateLimit:   rateLimit,
		AuthMW:      auth.NewMiddleware(authService),
		Metrics:     metrics.New(registry),
		DB:          db,
		ServerStart: startedAt,
	}, logger)

	scheduler := maintenance.NewScheduler(userRepo, logger)
	if err := scheduler.Start(); err != nil {
		return err
	}

	server := httpServer.NewServer(
		":"+cfg.Server.Port,
		router,
		cfg.Server.ReadTimeout,
		cfg.Server.WriteTimeout,
		logger,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		logger.Info("received signal", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		scheduler.Stop(ctx)
		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

func initTokenService(cfg config.AuthConfig) (auth.TokenService, error) {
	switch cfg.TokenType {
	case config.TokenTypePaseto:
		svc, err := auth.NewPasetoService(cfg.PasetoKey)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize PASETO service: %w", err)
		}
		return svc, nil
	default:
		svc, err := auth.NewJWTService(cfg.JWTSecret, "advisory-cms")
		if err != nil {
			return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
		}
		return svc, nil
	}
}

// initRedis initializes the Redis connection and returns a Redis client
func initRedis(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return client, nil
}
