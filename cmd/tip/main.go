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

	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/mempool-api/pkg/httpclient"
	"github.com/goodnatureofminers/mempool-api/pkg/mempool"
)

type config struct {
	BaseURL     string        `long:"base-url" env:"MEMPOOL_BASE_URL" description:"mempool API base URL" default:"https://mempool.space/api"`
	HTTPTimeout time.Duration `long:"http-timeout" env:"MEMPOOL_HTTP_TIMEOUT" description:"HTTP timeout for API requests" default:"30s"`
	MaxRetries  uint32        `long:"max-retries" env:"MEMPOOL_MAX_RETRIES" description:"max retries of retryable statuses" default:"6"`
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
		logger.Fatal("tip query failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	sender := httpclient.NewWithConfig(httpclient.Config{
		MaxRetries: cfg.MaxRetries,
		HTTPClient: &http.Client{Timeout: cfg.HTTPTimeout},
	})
	client := mempool.New(cfg.BaseURL, sender)

	height, err := client.GetTipHeight(ctx)
	if err != nil {
		return fmt.Errorf("get tip height: %w", err)
	}
	hash, err := client.GetTipHash(ctx)
	if err != nil {
		return fmt.Errorf("get tip hash: %w", err)
	}
	fees, err := client.GetRecommendedFees(ctx)
	if err != nil {
		return fmt.Errorf("get recommended fees: %w", err)
	}

	logger.Info("chain tip",
		zap.Uint32("height", height),
		zap.Stringer("hash", hash),
	)
	logger.Info("recommended fees (sats/vB)",
		zap.Uint64("fastest", fees.FastestFee),
		zap.Uint64("half_hour", fees.HalfHourFee),
		zap.Uint64("hour", fees.HourFee),
		zap.Uint64("economy", fees.EconomyFee),
		zap.Uint64("minimum", fees.MinimumFee),
	)
	return nil
}
