package svc

import (
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx driver
	"github.com/zeromicro/go-zero/core/stores/sqlx"

	"coinfolio-api/internal/config"
	"coinfolio-api/internal/repo"
	marketpkg "coinfolio-api/pkg/market"
	_ "coinfolio-api/pkg/market/coingecko"
)

// ServiceContext wires configuration into the shared dependencies.
type ServiceContext struct {
	Config *config.Config

	DBConn    sqlx.SqlConn
	Positions repo.PositionsRepo

	MarketConfig    *marketpkg.Config
	MarketProviders map[string]marketpkg.Provider
	DefaultMarket   marketpkg.Provider
	Quotes          *marketpkg.QuoteService
}

// NewServiceContext builds the service context or exits on a configuration
// problem.
func NewServiceContext(c *config.Config) *ServiceContext {
	svc := &ServiceContext{Config: c}

	marketCfg, err := marketpkg.LoadConfig(c.MarketConfigPath())
	if err != nil {
		log.Fatalf("failed to load market config: %v", err)
	}
	svc.MarketConfig = marketCfg

	providers, err := marketCfg.BuildProviders()
	if err != nil {
		log.Fatalf("failed to build market providers: %v", err)
	}
	svc.MarketProviders = providers

	defaultProvider, ok := providers[marketCfg.Default]
	if !ok {
		log.Fatalf("default market provider %q not defined", marketCfg.Default)
	}
	svc.DefaultMarket = defaultProvider

	quotes, err := marketpkg.NewQuoteService(defaultProvider, time.Duration(c.QuoteTTLSeconds)*time.Second)
	if err != nil {
		log.Fatalf("failed to build quote service: %v", err)
	}
	svc.Quotes = quotes

	if c.Postgres.DSN != "" {
		svc.DBConn = sqlx.NewSqlConn("pgx", c.Postgres.DSN)
		svc.Positions = repo.NewPositionsRepo(svc.DBConn)
	}
	return svc
}
