package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fotopista/admin-api/internal/adapters/httpapi"
	memadminstore "github.com/fotopista/admin-api/internal/adapters/memory/adminstore"
	memidentity "github.com/fotopista/admin-api/internal/adapters/memory/identity"
	memphotographerrepo "github.com/fotopista/admin-api/internal/adapters/memory/photographerrepo"
	memrolegrants "github.com/fotopista/admin-api/internal/adapters/memory/rolegrants"
	postgres "github.com/fotopista/admin-api/internal/adapters/postgres"
	pgadminstore "github.com/fotopista/admin-api/internal/adapters/postgres/adminstore"
	pgphotographerrepo "github.com/fotopista/admin-api/internal/adapters/postgres/photographerrepo"
	pgrolegrants "github.com/fotopista/admin-api/internal/adapters/postgres/rolegrants"
	"github.com/fotopista/admin-api/internal/adapters/supabase"
	"github.com/fotopista/admin-api/internal/app/directory"
	"github.com/fotopista/admin-api/internal/app/provisioning"
	platformclock "github.com/fotopista/admin-api/internal/platform/clock"
	"github.com/fotopista/admin-api/internal/platform/config"
	adminstoreport "github.com/fotopista/admin-api/internal/ports/out/adminstore"
	identityport "github.com/fotopista/admin-api/internal/ports/out/identity"
	photographerrepoport "github.com/fotopista/admin-api/internal/ports/out/photographerrepo"
	rolegrantsport "github.com/fotopista/admin-api/internal/ports/out/rolegrants"
)

func main() {
	logger := log.New(os.Stderr, "", log.LstdFlags)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("invalid config: %v", err)
	}

	var provider identityport.Provider
	switch cfg.ProviderMode {
	case config.ProviderDev:
		// Local workflows only; accounts exist in process memory.
		provider = memidentity.NewProvider()
	default:
		provider = supabase.New(supabase.Config{
			BaseURL:        cfg.SupabaseURL,
			ServiceRoleKey: cfg.ServiceRoleKey,
			HTTPTimeout:    cfg.ProviderHTTPTimeout,
		})
	}

	var (
		admins  adminstoreport.Store
		grants  rolegrantsport.Store
		repo    photographerrepoport.Repository
		cleanup func()
	)

	switch cfg.StorageBackend {
	case config.StoragePostgres:
		pool, err := postgres.NewPool(context.Background(), cfg.DatabaseURL, postgres.PoolOptions{})
		if err != nil {
			logger.Fatalf("invalid postgres config: %v", err)
		}
		cleanup = pool.Close

		admins = pgadminstore.NewStore(pool)
		grants = pgrolegrants.NewStore(pool)
		repo = pgphotographerrepo.NewRepo(pool)
	default:
		memAdmins := memadminstore.NewStore()
		for _, e := range cfg.AdminEmails {
			memAdmins.AddEmail(e)
		}
		admins = memAdmins
		grants = memrolegrants.NewStore()
		repo = memphotographerrepo.NewRepo()
	}

	if cleanup != nil {
		defer cleanup()
	}

	clk := platformclock.NewSystemClock()
	provSvc := provisioning.NewService(provider, admins, grants, logger)
	dirSvc := directory.NewService(repo, provider, clk)

	api := httpapi.NewServer(provSvc, dirSvc, provider)
	handler := httpapi.NewRouter(api, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Printf("admin-api listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Printf("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
