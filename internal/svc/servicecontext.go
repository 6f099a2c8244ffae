package svc

import (
	"log"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx driver
	"github.com/zeromicro/go-zero/core/stores/redis"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
	"github.com/zeromicro/go-zero/rest"

	cachekeys "signalist-api/internal/cache"
	"signalist-api/internal/config"
	"signalist-api/internal/middleware"
	"signalist-api/internal/model"
	"signalist-api/internal/repo"
	"signalist-api/internal/watchlist"
	marketpkg "signalist-api/pkg/market"
	_ "signalist-api/pkg/market/finnhub"
	_ "signalist-api/pkg/market/sim"
)

type ServiceContext struct {
	Config config.Config

	DBConn sqlx.SqlConn
	Redis  *redis.Redis
	TTL    cachekeys.TTLSet

	UsersModel            model.UsersModel
	WatchlistEntriesModel model.WatchlistEntriesModel

	MarketConfig    *marketpkg.Config
	MarketProviders map[string]marketpkg.Provider
	DefaultMarket   marketpkg.Provider

	Watchlist *watchlist.Service
	QuoteRepo *repo.QuoteRepo

	UserID rest.Middleware
}

func NewServiceContext(c config.Config) *ServiceContext {
	svc := &ServiceContext{
		Config: c,
		TTL:    cachekeys.NewTTLSet(c.TTL),
		UserID: middleware.NewUserIDMiddleware().Handle,
	}

	if c.Postgres.DSN == "" {
		log.Fatal("postgres dsn is required")
	}
	conn := sqlx.NewSqlConn("pgx", c.Postgres.DSN)
	svc.DBConn = conn
	svc.UsersModel = model.NewUsersModel(conn)
	svc.WatchlistEntriesModel = model.NewWatchlistEntriesModel(conn)

	if c.Redis.Host != "" {
		rds, err := redis.NewRedis(c.Redis)
		if err != nil {
			log.Fatalf("failed to connect redis: %v", err)
		}
		svc.Redis = rds
	}

	marketCfg := c.Market.Value
	if marketCfg == nil {
		marketCfg = marketpkg.MustLoad()
	}
	providers, err := marketCfg.BuildProviders()
	if err != nil {
		log.Fatalf("failed to build market providers: %v", err)
	}
	svc.MarketConfig = marketCfg
	svc.MarketProviders = providers
	if marketCfg.Default != "" {
		svc.DefaultMarket = providers[marketCfg.Default]
	}
	if svc.DefaultMarket == nil {
		log.Fatal("market config must define a default provider")
	}

	svc.Watchlist = watchlist.NewService(
		svc.WatchlistEntriesModel,
		svc.UsersModel,
		svc.DefaultMarket,
		watchlist.WithMaxConcurrentFetches(c.Watchlist.MaxConcurrentFetches),
	)
	svc.QuoteRepo = repo.NewQuoteRepo(svc.DefaultMarket, svc.Redis, svc.TTL)

	return svc
}
