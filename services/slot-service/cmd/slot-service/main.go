package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/md-rashed-zaman/meetslots/libs/config"
	"github.com/md-rashed-zaman/meetslots/libs/httpx"
	otelx "github.com/md-rashed-zaman/meetslots/libs/otel"
	"github.com/md-rashed-zaman/meetslots/libs/runtime"
	"github.com/md-rashed-zaman/meetslots/services/slot-service/internal/availability"
	"github.com/md-rashed-zaman/meetslots/services/slot-service/internal/handlers"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// calendarFromEnv overlays SLOT_* variables on the default work calendar.
func calendarFromEnv() (availability.Calendar, error) {
	cal := availability.DefaultCalendar()
	clocks := []struct {
		key string
		dst *availability.Clock
	}{
		{"SLOT_WORK_START", &cal.WorkStart},
		{"SLOT_WORK_END", &cal.WorkEnd},
		{"SLOT_LUNCH_START", &cal.LunchStart},
		{"SLOT_LUNCH_END", &cal.LunchEnd},
		{"SLOT_FRIDAY_CUTOFF", &cal.FridayCutoff},
	}
	for _, c := range clocks {
		raw := config.String(c.key, "")
		if raw == "" {
			continue
		}
		v, err := availability.ParseClock(raw)
		if err != nil {
			return availability.Calendar{}, fmt.Errorf("%s: %w", c.key, err)
		}
		*c.dst = v
	}
	step, err := config.Int("SLOT_STEP_MINUTES", availability.DefaultStepMinutes)
	if err != nil {
		return availability.Calendar{}, err
	}
	cal.StepMinutes = step
	if err := cal.Validate(); err != nil {
		return availability.Calendar{}, fmt.Errorf("invalid work calendar: %w", err)
	}
	return cal, nil
}

// newLimiter prefers Redis when REDIS_ADDR is set so replicas share one budget.
func newLimiter(logger *slog.Logger, rdb *redis.Client) (httpx.Limiter, error) {
	perMinute, err := config.Int("RATE_LIMIT_PER_MINUTE", 120)
	if err != nil {
		return nil, err
	}
	if rdb != nil {
		logger.Info("redis rate limiter enabled", "limit_per_minute", perMinute)
		return httpx.NewRedisRateLimiter(rdb, perMinute, time.Minute, config.String("RATE_LIMIT_PREFIX", "slots:rl")), nil
	}
	return httpx.NewRateLimiter(perMinute, time.Minute), nil
}

func main() {
	service := config.String("SERVICE_NAME", "slot-service")
	port, err := config.Port("PORT", "8090")
	if err != nil {
		panic(err)
	}
	logger := runtime.NewLogger(service, config.String("LOG_LEVEL", "info"))

	ctx, stop := runtime.SignalContext()
	defer stop()

	otelShutdown, err := otelx.Setup(ctx, otelx.ConfigFromEnv(service))
	if err != nil {
		logger.Error("otel setup failed", "err", err)
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = otelShutdown(shutdownCtx)
		}()
	}

	calendar, err := calendarFromEnv()
	if err != nil {
		logger.Error("calendar config failed", "err", err)
		panic(err)
	}
	logger.Info("work calendar",
		"work_start", calendar.WorkStart.String(),
		"work_end", calendar.WorkEnd.String(),
		"lunch_start", calendar.LunchStart.String(),
		"lunch_end", calendar.LunchEnd.String(),
		"friday_cutoff", calendar.FridayCutoff.String(),
		"step_minutes", calendar.StepMinutes,
	)

	var rdb *redis.Client
	if addr := config.String("REDIS_ADDR", ""); addr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: addr})
		defer func() { _ = rdb.Close() }()
	}
	limiter, err := newLimiter(logger, rdb)
	if err != nil {
		panic(err)
	}
	failOpen, err := config.Bool("RATE_LIMIT_FAIL_OPEN", true)
	if err != nil {
		panic(err)
	}
	trustedProxies, err := httpx.ParseTrustedProxies(config.List("TRUSTED_PROXIES"))
	if err != nil {
		panic(err)
	}

	var checks []runtime.ReadyCheck
	if rdb != nil {
		checks = append(checks, runtime.ReadyCheck{Name: "redis", Check: httpx.RedisReadyCheck(rdb)})
	}
	mux := runtime.NewBaseMuxWithReady(checks...)

	slotsHandler := handlers.NewSlotsHandler(calendar, availability.ISODayResolver{}, logger)
	mux.Handle("/api/v1/slots", httpx.Chain(http.HandlerFunc(slotsHandler.Slots),
		httpx.RateLimit(limiter, httpx.RateLimitOptions{
			Logger:         logger,
			FailOpen:       failOpen,
			TrustedProxies: trustedProxies,
		}),
		httpx.WithBodyLimit(1<<20),
	))

	httpHandler := httpx.Chain(mux,
		httpx.WithRequestID,
		httpx.WithAccessLog(logger),
		httpx.WithRecover(logger),
		httpx.WithCORS(httpx.DefaultCORSPolicy(config.List("CORS_ALLOWED_ORIGINS"))),
		httpx.WithTimeout(10*time.Second),
	)
	httpHandler = otelhttp.NewHandler(httpHandler, "slots")
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           httpHandler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "err", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "err", err)
	}
	logger.Info("http server stopped")
}
