package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx driver
	"github.com/zeromicro/go-zero/core/stores/redis"
	"github.com/zeromicro/go-zero/core/stores/sqlx"

	cachekeys "signalist-api/internal/cache"
	"signalist-api/internal/cli"
	"signalist-api/internal/config"
	"signalist-api/internal/digest"
	"signalist-api/internal/model"
	"signalist-api/internal/repo"
	"signalist-api/internal/watchlist"
	marketpkg "signalist-api/pkg/market"
	_ "signalist-api/pkg/market/finnhub"
	_ "signalist-api/pkg/market/sim"
)

const perUserTimeout = 30 * time.Second

var configFile = flag.String("f", "etc/signalist.yaml", "the config file")

// The digest job walks every user with an email, resolves their watchlist
// symbols fail-soft, and renders a market summary. Delivery is handled by the
// mail collaborator downstream; this binary writes the rendered bodies to the
// log for pickup.
func main() {
	flag.Parse()
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)
	log.Println("[main] Starting digest job...")

	appCfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("[main] Failed to load config: %v", err)
	}
	for _, line := range cli.ConfigSummaryLines(appCfg) {
		log.Printf("  - %s", line)
	}

	if appCfg.Postgres.DSN == "" {
		log.Fatal("[main] Postgres DSN is required")
	}
	conn := sqlx.NewSqlConn("pgx", appCfg.Postgres.DSN)
	usersModel := model.NewUsersModel(conn)
	entriesModel := model.NewWatchlistEntriesModel(conn)

	marketCfg := appCfg.Market.Value
	if marketCfg == nil {
		marketCfg = marketpkg.MustLoad()
	}
	providers, err := marketCfg.BuildProviders()
	if err != nil {
		log.Fatalf("[main] Failed to build market providers: %v", err)
	}
	provider, ok := providers[marketCfg.Default]
	if !ok {
		log.Fatalf("[main] Default market provider %q not found", marketCfg.Default)
	}

	var rds *redis.Redis
	if appCfg.Redis.Host != "" {
		rds, err = redis.NewRedis(appCfg.Redis)
		if err != nil {
			log.Printf("[main] Warning: redis unavailable, digests run uncached: %v", err)
			rds = nil
		}
	}

	ttl := cachekeys.NewTTLSet(appCfg.TTL)
	quoteRepo := repo.NewQuoteRepo(provider, rds, ttl)
	svc := watchlist.NewService(entriesModel, usersModel, provider,
		watchlist.WithMaxConcurrentFetches(appCfg.Watchlist.MaxConcurrentFetches))

	summarizer := digest.NewSummarizer(os.Getenv("OPENAI_API_KEY"))
	if summarizer == nil {
		log.Println("[main] OPENAI_API_KEY not set, digests go out without AI summary")
	}
	builder := digest.NewBuilder(svc, quoteRepo, summarizer)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	users, err := usersModel.ListWithEmail(ctx)
	if err != nil {
		log.Fatalf("[main] Failed to list digest recipients: %v", err)
	}
	log.Printf("[main] %d recipients", len(users))

	var sent, skipped int
	for _, user := range users {
		if ctx.Err() != nil {
			log.Println("[main] Shutdown signal received, stopping")
			break
		}
		func() {
			userCtx, cancel := context.WithTimeout(ctx, perUserTimeout)
			defer cancel()

			start := time.Now()
			d, err := builder.Build(userCtx, user.Email)
			elapsed := time.Since(start)
			if err != nil {
				log.Printf("[digest.%s] [ERROR] %v, took %dms", user.Email, err, elapsed.Milliseconds())
				skipped++
				return
			}
			if d == nil {
				log.Printf("[digest.%s] [SKIP] empty watchlist, took %dms", user.Email, elapsed.Milliseconds())
				skipped++
				return
			}
			log.Printf("[digest.%s] [OK] %d symbols, took %dms\n%s",
				user.Email, len(d.Lines), elapsed.Milliseconds(), d.Render())
			sent++
		}()
	}

	log.Printf("[main] Digest job finished: %d rendered, %d skipped", sent, skipped)
}
