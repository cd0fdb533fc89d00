package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"coinfolio-api/internal/config"
	"coinfolio-api/internal/svc"
	"coinfolio-api/pkg/news"
	"coinfolio-api/pkg/portfolio"
)

const (
	digestInterval  = 10 * time.Minute // Market digest refresh interval
	apiTimeout      = 15 * time.Second // Timeout for one monitoring pass
	shutdownTimeout = 10 * time.Second // Grace period for shutdown
)

var (
	configFile = flag.String("f", "etc/coinfolio.yaml", "the config file")
	userID     = flag.String("user", "", "user whose portfolio to monitor")
	watchAsset = flag.String("asset", "bitcoin", "asset id for the market digest")
)

func main() {
	flag.Parse()
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)
	log.Println("[main] Starting portfolio monitor...")

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("[main] Failed to load config: %v", err)
	}
	log.Printf("[main] Configuration loaded: env=%s, market=%s", cfg.Env, cfg.MarketConfigPath())

	sctx := svc.NewServiceContext(cfg)

	// Create context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		runValuationMonitor(ctx, sctx, *userID)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		runDigestMonitor(ctx, sctx, *watchAsset)
	}()

	log.Println("[main] Portfolio monitor started. Press Ctrl+C to stop.")
	<-ctx.Done()
	log.Println("[main] Shutdown signal received, stopping tasks...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Println("[main] All tasks stopped cleanly")
	case <-shutdownCtx.Done():
		log.Println("[main] Shutdown timeout exceeded, forcing exit")
	}

	log.Println("[main] Portfolio monitor stopped")
}

// runValuationMonitor revalues the user's portfolio on a schedule.
func runValuationMonitor(ctx context.Context, sctx *svc.ServiceContext, userID string) {
	interval := time.Duration(sctx.Config.MonitorIntervalSeconds) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Run once immediately on startup
	monitorValuation(ctx, sctx, userID)

	for {
		select {
		case <-ctx.Done():
			log.Println("[valuation] Stopping valuation monitor")
			return
		case <-ticker.C:
			monitorValuation(ctx, sctx, userID)
		}
	}
}

// monitorValuation lists positions, batch-resolves quotes and logs the
// aggregated portfolio numbers. Quote failures degrade the affected asset to
// zero value and are logged as warnings, never as a fatal error.
func monitorValuation(parentCtx context.Context, sctx *svc.ServiceContext, userID string) {
	if parentCtx.Err() != nil {
		return
	}
	if sctx.Positions == nil {
		log.Println("[valuation] [WARN] no database configured, skipping")
		return
	}

	ctx, cancel := context.WithTimeout(parentCtx, apiTimeout)
	defer cancel()

	positions, err := sctx.Positions.ListByUser(ctx, userID)
	if err != nil {
		log.Printf("[valuation] [ERROR] list positions: %v", err)
		return
	}
	if len(positions) == 0 {
		log.Printf("[valuation] [OK] user=%s holds no positions", userID)
		return
	}

	start := time.Now()
	prices, warnings := sctx.Quotes.ResolvePrices(ctx, portfolio.AssetIDs(positions))
	for _, w := range warnings {
		log.Printf("[valuation] [WARN] quote unavailable, valuing at zero: %s", w)
	}

	summary, _ := portfolio.Valuation(positions, prices)
	log.Printf("[valuation] [OK] user=%s positions=%d value=%s invested=%s profit=%s (%s%%), took %dms",
		userID,
		len(positions),
		summary.TotalValue.StringFixed(2),
		summary.TotalInvestment.StringFixed(2),
		summary.TotalProfit.StringFixed(2),
		summary.ProfitPercent.StringFixed(2),
		time.Since(start).Milliseconds())
}

// runDigestMonitor refreshes the watched asset's digest on a schedule.
func runDigestMonitor(ctx context.Context, sctx *svc.ServiceContext, assetID string) {
	ticker := time.NewTicker(digestInterval)
	defer ticker.Stop()

	monitorDigest(ctx, sctx, assetID)

	for {
		select {
		case <-ctx.Done():
			log.Println("[digest] Stopping digest monitor")
			return
		case <-ticker.C:
			monitorDigest(ctx, sctx, assetID)
		}
	}
}

// monitorDigest fetches one market detail snapshot and logs the derived risk
// assessment and digest headlines. Risk and news read the same snapshot, a
// single fetch feeds both.
func monitorDigest(parentCtx context.Context, sctx *svc.ServiceContext, assetID string) {
	if parentCtx.Err() != nil {
		return
	}

	ctx, cancel := context.WithTimeout(parentCtx, apiTimeout)
	defer cancel()

	start := time.Now()
	snapshot, err := sctx.DefaultMarket.MarketDetail(ctx, assetID)
	if err != nil {
		log.Printf("[digest.%s] [ERROR] %v, took %dms", assetID, err, time.Since(start).Milliseconds())
		return
	}

	assessment := portfolio.ScoreRisk(snapshot)
	log.Printf("[digest.%s] [OK] price=%.2f risk=%d, took %dms",
		assetID, snapshot.CurrentPrice, assessment.Score, time.Since(start).Milliseconds())
	for _, factor := range assessment.Factors {
		log.Printf("  - %s (%+d, %s): %s", factor.Name, factor.Delta, factor.Tone, factor.Description)
	}
	for _, item := range news.Digest(snapshot) {
		log.Printf("  - headline: %s", item.Headline)
	}
}
