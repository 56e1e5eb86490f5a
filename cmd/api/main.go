package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"marketplace-sync/config"
	httpHandler "marketplace-sync/internal/adapter/http/handler"
	"marketplace-sync/internal/adapter/http/middleware"
	"marketplace-sync/internal/adapter/ledger/ethereum"
	"marketplace-sync/internal/adapter/ledger/memory"
	"marketplace-sync/internal/adapter/storage/pinata"
	pgStorage "marketplace-sync/internal/adapter/storage/postgres"
	redisStorage "marketplace-sync/internal/adapter/storage/redis"
	"marketplace-sync/internal/adapter/wallet/keystore"
	"marketplace-sync/internal/adapter/wallet/static"
	"marketplace-sync/internal/core/ports"
	"marketplace-sync/internal/service"
	"marketplace-sync/pkg/logger"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load(os.Getenv("MKT_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config:\n%v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	gin.SetMode(cfg.Server.Mode)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Str("ledger", cfg.Ledger.Driver).
		Str("wallet", cfg.Wallet.Driver).
		Msg("Starting marketplace-sync")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("marketplace-sync stopped")
	}
	log.Info().Msg("Server exited")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := service.NewMetrics(reg)

	var checkers []ports.HealthChecker

	// Operation journal (optional)
	var journal ports.OperationRepository
	if cfg.Database.Enabled {
		pool, err := pgStorage.OpenJournal(ctx, cfg.Database, logger.Component(log, "journal"))
		if err != nil {
			return fmt.Errorf("opening operation journal: %w", err)
		}
		defer pool.Close()
		repo := pgStorage.NewOperationRepo(pool)
		journal = repo
		checkers = append(checkers, repo)
	}

	// Rate limiting (optional)
	var limiter middleware.Limiter
	if cfg.Redis.Enabled {
		rdb, err := redisStorage.NewClient(ctx, cfg.Redis, logger.Component(log, "ratelimit"))
		if err != nil {
			return fmt.Errorf("connecting to Redis: %w", err)
		}
		defer rdb.Close()
		store := redisStorage.NewRateLimitStore(rdb)
		limiter = store
		checkers = append(checkers, store)
	}

	wallet, signers, err := buildWallet(cfg, logger.Component(log, "wallet"))
	if err != nil {
		return err
	}
	connector, ledgerHealth, closeLedger, err := buildLedger(ctx, cfg, signers, logger.Component(log, "ledger"))
	if err != nil {
		return err
	}
	defer closeLedger()

	uploader := pinata.NewUploader(pinata.Config{
		APIURL:     cfg.Storage.APIURL,
		JWT:        cfg.Storage.JWT,
		GatewayURL: cfg.Storage.GatewayURL,
		CacheBust:  cfg.Storage.CacheBust,
	}, nil, cfg.Storage.Timeout, logger.Component(log, "storage"))
	checkers = append(checkers, ledgerHealth, uploader)

	orch := service.NewOrchestrator(wallet, connector, uploader, journal, metrics, logger.Component(log, "orchestrator"))
	if err := orch.Bootstrap(ctx); err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		Marketplace:    orch,
		Journal:        journal,
		RateLimitStore: limiter,
		RateLimit:      middleware.RateLimitRule{Limit: cfg.Server.RateLimit, Window: cfg.Server.RateWindow},
		MaxImageSize:   cfg.Storage.MaxSize,
		Gatherer:       reg,
		HealthCheckers: checkers,
		Logger:         logger.Component(log, "http"),
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return service.NewSessionWatcher(wallet, orch, logger.Component(log, "session")).Run(gctx)
	})
	g.Go(func() error {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// buildWallet returns the account provider and, for the keystore driver,
// the signer source the ethereum ledger needs.
func buildWallet(cfg *config.Config, log zerolog.Logger) (ports.WalletProvider, ethereum.SignerSource, error) {
	switch cfg.Wallet.Driver {
	case config.WalletDriverKeystore:
		ks := keystore.New(cfg.Wallet.KeystoreDir, cfg.Wallet.Passphrase, cfg.Ledger.ChainID, log)
		return ks, ks, nil
	case config.WalletDriverStatic:
		w, err := static.New(cfg.Wallet.Accounts, log)
		if err != nil {
			return nil, nil, fmt.Errorf("static wallet: %w", err)
		}
		return w, nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown wallet driver %q", cfg.Wallet.Driver)
	}
}

func buildLedger(ctx context.Context, cfg *config.Config, signers ethereum.SignerSource, log zerolog.Logger) (ports.LedgerConnector, ports.HealthChecker, func(), error) {
	switch cfg.Ledger.Driver {
	case config.LedgerDriverMemory:
		l := memory.New(log)
		return l, l, func() {}, nil
	case config.LedgerDriverEthereum:
		if signers == nil {
			return nil, nil, nil, errors.New("ethereum ledger needs a signing wallet")
		}
		client, err := ethereum.Dial(ctx, cfg.Ledger.RPCURL)
		if err != nil {
			return nil, nil, nil, err
		}
		conn := ethereum.NewConnector(client, common.HexToAddress(cfg.Ledger.ContractAddress), signers, cfg.Ledger.ConfirmTimeout, log)
		return conn, conn, client.Close, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown ledger driver %q", cfg.Ledger.Driver)
	}
}
