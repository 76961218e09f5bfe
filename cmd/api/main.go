package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mahdisharifi109/Rewear-sub000/internal/config"
	"github.com/mahdisharifi109/Rewear-sub000/internal/httpx"
	kafkax "github.com/mahdisharifi109/Rewear-sub000/internal/kafka"
	"github.com/mahdisharifi109/Rewear-sub000/internal/market"
	"github.com/mahdisharifi109/Rewear-sub000/internal/postgres"
	"github.com/mahdisharifi109/Rewear-sub000/internal/ratelimit"
	"github.com/mahdisharifi109/Rewear-sub000/internal/redisx"
	"github.com/mahdisharifi109/Rewear-sub000/internal/session"
	"github.com/mahdisharifi109/Rewear-sub000/internal/settlement"
)

func main() {
	_ = godotenv.Load()
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := postgres.Migrate(cfg.PostgresDSN); err != nil {
		slog.Error("migrate", "error", err)
		os.Exit(1)
	}

	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		slog.Error("db connect", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	prod := kafkax.NewProducer(cfg.KafkaBrokers, market.TopicSettlementCompleted, 1024)
	prod.Start(ctx)

	var limitStore ratelimit.Store = ratelimit.NewMemoryStore()
	if cfg.RateLimitStore == "redis" {
		limitStore = &ratelimit.RedisStore{Client: rdb, Prefix: redisx.KeyRateCheckout}
	}

	repo := &market.Repo{DB: db}
	svc := &settlement.Service{
		Sessions: &session.Validator{Users: repo},
		Products: repo,
		Exec:     &settlement.Executor{DB: db},
		Producer: prod,
		Service:  cfg.ServiceName,
	}

	router := httpx.NewRouter()
	ch := &httpx.CheckoutHandler{
		Settler: svc,
		Store:   repo,
		Limiter: &ratelimit.Limiter{Store: limitStore, Max: cfg.RateLimitMax, Window: cfg.RateLimitWindow},
	}
	ch.Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		slog.Info("http listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("listen", "error", err)
			os.Exit(1)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	slog.Info("shutting down")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	prod.Close() // close inbox -> flush & close writer
	cancel()
	prod.WaitClosed()
}
