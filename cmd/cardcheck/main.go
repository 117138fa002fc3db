package main

import (
	"context"
	"database/sql"
	"errors"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/ivanpodgorny/cardcheck/internal/binrange"
	"github.com/ivanpodgorny/cardcheck/internal/brand"
	"github.com/ivanpodgorny/cardcheck/internal/client"
	"github.com/ivanpodgorny/cardcheck/internal/config"
	"github.com/ivanpodgorny/cardcheck/internal/entity"
	"github.com/ivanpodgorny/cardcheck/internal/field"
	"github.com/ivanpodgorny/cardcheck/internal/handler"
	"github.com/ivanpodgorny/cardcheck/internal/middleware"
	"github.com/ivanpodgorny/cardcheck/internal/migrations"
	"github.com/ivanpodgorny/cardcheck/internal/repository"
	"github.com/ivanpodgorny/cardcheck/internal/security"
	"github.com/ivanpodgorny/cardcheck/internal/service"
	"github.com/ivanpodgorny/cardcheck/internal/validator"
	"github.com/ivanpodgorny/cardcheck/internal/worker"
	_ "github.com/jackc/pgx/v5/stdlib"
	logger "github.com/sirupsen/logrus"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

const (
	workersCount    = 4
	shutdownTimeout = 5 * time.Second
)

func main() {
	if err := Execute(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal(err)
	}
}

func Execute() error {
	cfg, err := config.NewBuilder().LoadDotEnv().LoadFlags().LoadEnv().Build()
	if err != nil {
		return err
	}

	if err := setupLogger(cfg.LogLevel()); err != nil {
		return err
	}

	table := brand.DefaultTable()
	if cfg.BrandTablePath() != "" {
		if table, err = brand.LoadTable(cfg.BrandTablePath()); err != nil {
			return err
		}
	}

	db, err := sql.Open("pgx", cfg.DatabaseURI())
	if err != nil {
		return err
	}

	defer func(db *sql.DB) {
		err = db.Close()
	}(db)

	if err := migrations.Up(db); err != nil {
		return err
	}

	validationEngine, err := validator.NewEngine()
	if err != nil {
		return err
	}

	var (
		ctx, stop = signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		r         = chi.NewRouter()
		v         = validator.New(validationEngine)
		a         = security.NewAuthenticator(security.NewHMACSigner(cfg.HMACKey()))
		wg        = &sync.WaitGroup{}
		rsj       = make(chan entity.RangeSaveJob, 8)
		wj        = make(chan string, 8)
		br        = repository.NewBINRange(db)
		stores    = []worker.RangeStore{br}
	)

	defer func() {
		stop()
		wg.Wait()
	}()

	var cache service.RangeCache
	if cfg.RedisAddress() != "" {
		rc := repository.NewRedisClient(cfg.RedisAddress(), cfg.RedisPassword(), cfg.RedisDB())
		defer func() {
			_ = rc.Close()
		}()

		rangeCache := repository.NewRangeCache(rc, cfg.CacheTTL())
		cache = rangeCache
		stores = append(stores, rangeCache)
	}

	var (
		mc   = client.NewMetadata(cfg.MetadataServiceAddress(), cfg.MetadataKey(), cfg.LookupTimeout())
		ms   = service.NewMetadata(cache, br, mc, rsj)
		bins = binrange.NewService(ms, cfg.LookupTimeout())
		form = field.NewForm(field.NewPAN(brand.NewDetector(table), bins), field.NewExpiry(nil))
		rsw  = worker.NewRangeSaver(stores, rsj, wg, workersCount)
		ww   = worker.NewWarmer(ctx, br, bins, wj, wg, workersCount)
		ch   = handler.NewCard(form, v)
		bh   = handler.NewBIN(bins, a, v)
	)

	rsw.Do(ctx)
	ww.Do(ctx)

	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Log)

	r.Route("/api", func(r chi.Router) {
		if cfg.HMACKey() != "" {
			r.Use(middleware.Authenticate(a))
		}

		r.Post("/card/validate", ch.Validate)
		r.Get("/bin/{prefix}", bh.Get)
		r.Post("/bin/{prefix}/retry", bh.Retry)
	})

	server := &http.Server{
		Addr:              cfg.ServerAddress(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Error("ошибка остановки HTTP-сервера")
		}
	}()

	logger.WithField("address", cfg.ServerAddress()).Info("сервер запущен")
	err = server.ListenAndServe()

	return err
}

func setupLogger(level string) error {
	l, err := logger.ParseLevel(level)
	if err != nil {
		return err
	}

	logger.SetFormatter(&logger.TextFormatter{FullTimestamp: true})
	logger.SetLevel(l)

	return nil
}
