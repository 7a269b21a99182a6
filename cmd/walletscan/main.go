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

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/mempool-api/internal/metrics"
	"github.com/goodnatureofminers/mempool-api/internal/scan"
	"github.com/goodnatureofminers/mempool-api/pkg/httpclient"
	"github.com/goodnatureofminers/mempool-api/pkg/mempool"
)

type config struct {
	BaseURL     string        `long:"base-url" env:"WALLETSCAN_BASE_URL" description:"mempool API base URL" default:"https://mempool.space/api"`
	Xpub        string        `long:"xpub" env:"WALLETSCAN_XPUB" description:"account extended public key" required:"true"`
	Network     string        `long:"network" env:"WALLETSCAN_NETWORK" description:"network name (mainnet, testnet, signet)" default:"mainnet"`
	GapLimit    uint32        `long:"gap-limit" env:"WALLETSCAN_GAP_LIMIT" description:"consecutive unused addresses that end the scan" default:"20"`
	BatchSize   int           `long:"batch-size" env:"WALLETSCAN_BATCH_SIZE" description:"addresses probed in parallel" default:"5"`
	HTTPTimeout time.Duration `long:"http-timeout" env:"WALLETSCAN_HTTP_TIMEOUT" description:"HTTP timeout for API requests" default:"30s"`
	MaxRetries  uint32        `long:"max-retries" env:"WALLETSCAN_MAX_RETRIES" description:"max retries of retryable statuses" default:"6"`
	MetricsAddr string        `long:"metrics-addr" env:"WALLETSCAN_METRICS_ADDR" description:"address for metrics server" default:":2112"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("wallet scan failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	startMetricsServer(ctx, cfg.MetricsAddr, logger)

	params, err := networkParams(cfg.Network)
	if err != nil {
		return err
	}
	derive, err := newDeriver(cfg.Xpub, params)
	if err != nil {
		return fmt.Errorf("init deriver: %w", err)
	}

	sender := httpclient.NewWithConfig(httpclient.Config{
		MaxRetries: cfg.MaxRetries,
		HTTPClient: &http.Client{Timeout: cfg.HTTPTimeout},
	})
	client := mempool.NewObservedClient(
		mempool.New(cfg.BaseURL, sender),
		metrics.NewAPIClient(cfg.Network),
	)

	scanner := scan.NewScanner(client, logger,
		scan.WithGapLimit(cfg.GapLimit),
		scan.WithBatchSize(cfg.BatchSize),
	)

	report, err := scanner.Scan(ctx, derive)
	if err != nil {
		return err
	}

	logger.Info("scan finished",
		zap.Int64("last_active_index", report.LastActive),
		zap.Int("active_addresses", len(report.Active)),
	)
	for _, r := range report.Active {
		logger.Info("active address",
			zap.Uint32("index", r.Index),
			zap.String("address", r.Address.EncodeAddress()),
			zap.Int("txs", len(r.Txs)),
		)
	}
	return nil
}

func networkParams(network string) (*chaincfg.Params, error) {
	switch network {
	case "mainnet":
		return &chaincfg.MainNetParams, nil
	case "testnet":
		return &chaincfg.TestNet3Params, nil
	case "signet":
		return &chaincfg.SigNetParams, nil
	default:
		return nil, fmt.Errorf("unknown network %q", network)
	}
}

// newDeriver derives external-chain (m/0/i) P2WPKH addresses from an account
// extended public key.
func newDeriver(xpub string, params *chaincfg.Params) (scan.DeriveFunc, error) {
	account, err := hdkeychain.NewKeyFromString(xpub)
	if err != nil {
		return nil, fmt.Errorf("parse xpub: %w", err)
	}
	external, err := account.Derive(0)
	if err != nil {
		return nil, fmt.Errorf("derive external chain: %w", err)
	}

	return func(index uint32) (btcutil.Address, error) {
		child, err := external.Derive(index)
		if err != nil {
			return nil, fmt.Errorf("derive index %d: %w", index, err)
		}
		pub, err := child.ECPubKey()
		if err != nil {
			return nil, fmt.Errorf("pubkey at index %d: %w", index, err)
		}
		return btcutil.NewAddressWitnessPubKeyHash(btcutil.Hash160(pub.SerializeCompressed()), params)
	}, nil
}

func startMetricsServer(ctx context.Context, addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("starting metrics server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown metrics server", zap.Error(err))
		}
	}()
}
