package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/numjklpp1/parts-management-pro/internal/config"
	"github.com/numjklpp1/parts-management-pro/internal/database"
	"github.com/numjklpp1/parts-management-pro/internal/handlers"
	"github.com/numjklpp1/parts-management-pro/internal/health"
	h "github.com/numjklpp1/parts-management-pro/internal/http"
	"github.com/numjklpp1/parts-management-pro/internal/ledger"
	"github.com/numjklpp1/parts-management-pro/internal/middleware"
	"github.com/numjklpp1/parts-management-pro/internal/services"
	"github.com/numjklpp1/parts-management-pro/migrations"
)

// selectStore picks the ledger backend for this deployment: the
// spreadsheet proxy when configured, else Postgres, else Redis, else
// process memory. Exactly one store is chosen at startup; the core
// never branches on storage after this.
func selectStore(cfg *config.Config) ledger.Store {
	if cfg.Ledger.SpreadsheetID != "" && cfg.Ledger.ProxyURL != "" {
		log.Printf("[Ledger] Using spreadsheet proxy at %s", cfg.Ledger.ProxyURL)
		return ledger.NewProxyStore(cfg.Ledger.ProxyURL, cfg.Ledger.SpreadsheetID)
	}

	if cfg.Database.Host != "" {
		pool := connectPostgres(cfg)
		if pool != nil {
			log.Println("[Ledger] Using Postgres store")
			return ledger.NewPostgresStore(pool)
		}
	}

	if cfg.Redis.Addr != "" {
		store, err := ledger.NewRedisStore(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Printf("[Ledger] Redis unavailable: %v", err)
		} else {
			log.Println("[Ledger] Using Redis store")
			return store
		}
	}

	log.Println("[Ledger] No store configured, using in-memory ledger (data is lost on restart)")
	return ledger.NewMemoryStore()
}

func connectPostgres(cfg *config.Config) *pgxpool.Pool {
	connStr := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.Database.User, cfg.Database.Password,
		cfg.Database.Host, cfg.Database.Port, cfg.Database.Name)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		log.Printf("[Postgres] Failed to create pool: %v", err)
		return nil
	}
	if err := pool.Ping(ctx); err != nil {
		log.Printf("[Postgres] Failed to ping: %v", err)
		pool.Close()
		return nil
	}

	migrator := database.NewMigratorWithFS(pool, migrations.FS, ".")
	mctx, mcancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer mcancel()
	if err := migrator.RunMigrations(mctx); err != nil {
		log.Printf("[Postgres] Migrations failed: %v", err)
		pool.Close()
		return nil
	}
	return pool
}

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	store := selectStore(cfg)

	// Initialize services
	inventoryService := services.NewInventoryService(store)
	taskService := services.NewTaskService(store, inventoryService, cfg.Tasks.CompletionStageGate)

	// Prime in-memory state from the store. A failed initial load is
	// not fatal: the store may come back, and /api/records/refresh
	// reloads on demand.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := inventoryService.Load(ctx); err != nil {
		log.Printf("[Ledger] Initial record load failed: %v", err)
	}
	if err := taskService.Load(ctx); err != nil {
		log.Printf("[Tasks] Initial task load failed: %v", err)
	}
	cancel()

	// Advisory provider: real Gemini when a key is configured,
	// deterministic mock otherwise.
	var advisor services.Advisor
	if cfg.Advisory.GeminiAPIKey != "" {
		log.Println("[Advisory] Using Gemini provider")
		advisor = services.NewGeminiAdvisor(cfg.Advisory.GeminiAPIKey)
	} else {
		log.Println("WARNING: GEMINI_API_KEY not set, advisory panels use offline placeholders")
		advisor = services.NewMockAdvisor()
	}
	advisoryService := services.NewAdvisoryService(advisor)

	// Initialize handlers
	inventoryHandler := handlers.NewInventoryHandler(inventoryService)
	taskHandler := handlers.NewTaskHandler(taskService)
	advisoryHandler := handlers.NewAdvisoryHandler(advisoryService, inventoryService)
	healthHandler := handlers.NewHealthHandler(health.NewHealthChecker(store))

	router := h.NewRouter(inventoryHandler, taskHandler, advisoryHandler, healthHandler)

	corsMiddleware := middleware.NewCORS(cfg)
	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
