package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/foodsphere/server/internal/audit"
	"github.com/foodsphere/server/internal/auth"
	"github.com/foodsphere/server/internal/config"
	http_controllers "github.com/foodsphere/server/internal/http"
	"github.com/foodsphere/server/internal/scheduler"
	"github.com/foodsphere/server/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		// service connections
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server.
	// kill (no param) default sends syscall.SIGTERM
	// kill -2 is syscall.SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server Shutdown: %v", err)
	}

	// Stop background work after in-flight requests have drained
	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting FoodSphere server v%s", version)

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	backend, err := OpenBackend(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to open %s backend: %v", cfg.Database.Driver, err)
	}
	log.Printf("Using %s backend", cfg.Database.Driver)

	auditService := audit.NewService(backend.Audit)

	hasher := auth.NewHasher(cfg.Auth.BcryptCost)
	issuer := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)
	authService := auth.NewService(backend.Users, hasher, issuer)
	log.Printf("Auth: bcrypt cost %d, token lifetime %v", hasher.Cost(), issuer.TTL())

	// Background task queue for audit retention cleanup
	var taskClient *tasks.Client
	var cleanupScheduler *scheduler.AuditCleanupScheduler
	bgCtx, bgCancel := context.WithCancel(context.Background())
	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(cfg.Tasks.DBPath, tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		})
		if err != nil {
			log.Fatalf("Failed to create task queue at %s: %v", cfg.Tasks.DBPath, err)
		}

		taskClient.Register(tasks.NewAuditRetentionQueue(auditService))
		go taskClient.Start(bgCtx)

		cleanupScheduler = scheduler.NewAuditCleanupScheduler(taskClient, cfg.Audit.CleanupSchedule, cfg.Audit.Retention)
		if err := cleanupScheduler.Start(bgCtx); err != nil {
			log.Printf("Audit cleanup scheduler not started: %v", err)
		}
	} else {
		log.Printf("Task queue disabled; audit events are kept indefinitely")
	}

	routerCfg := http_controllers.RouterConfig{
		Stores:         backend.Stores,
		AuthService:    authService,
		Auditor:        auditService,
		AuditReader:    auditService,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Version:        version,
	}
	if cleanupScheduler != nil {
		routerCfg.AuditCleanup = cleanupScheduler
	}
	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if cleanupScheduler != nil {
			cleanupScheduler.Stop()
		}
		if taskClient != nil {
			taskClient.Stop(ctx)
		}
		bgCancel()
		if taskClient != nil {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task queue: %v", err)
			}
		}

		auditService.Wait()
		if err := backend.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}

	Serve(router, cfg, onShutdown)
}
