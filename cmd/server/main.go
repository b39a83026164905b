package main // Entry point package

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	glog "github.com/labstack/gommon/log"

	"github.com/manpreet1462/bookit/internal/client"
	"github.com/manpreet1462/bookit/internal/config"
	"github.com/manpreet1462/bookit/internal/handler"
	"github.com/manpreet1462/bookit/internal/middleware"
	"github.com/manpreet1462/bookit/internal/pricing"
	"github.com/manpreet1462/bookit/internal/queue"
	"github.com/manpreet1462/bookit/internal/router"
	"github.com/manpreet1462/bookit/internal/service"
)

func logLevel(s string) glog.Lvl {
	switch s {
	case "debug":
		return glog.DEBUG
	case "warn":
		return glog.WARN
	case "error":
		return glog.ERROR
	case "off":
		return glog.OFF
	}
	return glog.INFO
}

func main() {
	config.LoadDotEnv()
	cfg := config.Load()
	qcfg := config.LoadQueueConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	led, err := openLedger(ctx, cfg)
	if err != nil {
		log.Fatalf("ledger (%s): %v", cfg.LedgerDriver, err)
	}
	defer led.close()

	checks := map[string]handler.Pinger{}
	if led.ping != nil {
		checks["ledger"] = led.ping
	}

	rdb := config.NewRedisClient()
	if rdb != nil {
		defer rdb.Close()
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	var events service.EventPublisher
	if qcfg.URL != "" {
		events = queue.NewPublisher(qcfg.URL, qcfg.BookingQueue)
		if qcfg.ConsumerEnabled {
			consumer := queue.NewConsumer(qcfg.URL, qcfg.BookingQueue, qcfg.LogDir)
			go func() {
				if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					log.Printf("booking consumer stopped: %v", err)
				}
			}()
		}
	} else {
		log.Printf("RABBITMQ_URL not set, booking events disabled")
	}

	api := client.New(cfg.BookingAPIURL, cfg.BookingAPITimeout)
	svc := service.NewCheckoutService(api, led.store, events, pricing.NewCalculator(cfg.FlatTax))

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(logLevel(cfg.LogLevel))
	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(echomw.Logger())

	router.RegisterRoutes(e, checks)
	router.RegisterCatalog(e, handler.NewCatalogHandler(svc), middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	router.RegisterCheckout(e,
		handler.NewCheckoutHandler(svc, cfg.CheckoutSecret, cfg.CheckoutTokenTTLMin),
		cfg.CheckoutSecret,
		middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
	)

	addr := ":" + cfg.Port
	go func() {
		log.Printf("listening on %s (env=%s, ledger=%s, booking api=%s)", addr, cfg.Env, cfg.LedgerDriver, cfg.BookingAPIURL)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
