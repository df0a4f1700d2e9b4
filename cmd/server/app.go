package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/twmb/franz-go/pkg/kgo"

	jwttoken "maidlink/internal/jwt_token"
	"maidlink/internal/platform/config"
	"maidlink/internal/platform/kafka"
	"maidlink/internal/platform/metrics"
	"maidlink/internal/platform/postgres"
	"maidlink/internal/platform/redis"
	"maidlink/internal/profiles/handler"
	profilemetrics "maidlink/internal/profiles/metrics"
	"maidlink/internal/profiles/models"
	"maidlink/internal/profiles/outbox"
	"maidlink/internal/profiles/service"
	"maidlink/internal/profiles/store"
	"maidlink/internal/profiles/store/migrations"
	"maidlink/pkg/platform/circuit"
	"maidlink/pkg/platform/httputil"
	"maidlink/pkg/platform/middleware/metadata"
	"maidlink/pkg/platform/middleware/requesttime"
)

type app struct {
	router http.Handler
	relay  *outbox.Worker

	db    *sql.DB
	kafka *kgo.Client
	redis *redis.Client
}

type stores struct {
	maids    service.Store[*models.MaidProfile]
	sponsors service.Store[*models.SponsorProfile]
	agencies service.Store[*models.AgencyProfile]
	outbox   outbox.Store
}

func buildApp(ctx context.Context, cfg *config.Config, log *slog.Logger) (*app, error) {
	a := &app{}
	ok := false
	defer func() {
		if !ok {
			a.close()
		}
	}()

	db, err := postgres.Open(ctx, cfg.Postgres)
	if err != nil {
		return nil, err
	}
	a.db = db
	st, err := buildStores(db, cfg.Postgres, log)
	if err != nil {
		return nil, err
	}

	publisher, err := a.buildPublisher(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	reg := prometheus.DefaultRegisterer
	profileMetrics := profilemetrics.New(reg)
	httpMetrics := metrics.New(reg)

	svcOpts := []service.Option{service.WithLogger(log), service.WithMetrics(profileMetrics)}
	maids := service.NewMaidService(st.maids, svcOpts...)
	sponsors := service.NewSponsorService(st.sponsors, svcOpts...)
	agencies := service.NewAgencyService(st.agencies, svcOpts...)

	breaker := circuit.New("outbox-publisher")
	a.relay = outbox.NewWorker(st.outbox, publisher,
		outbox.WithInterval(cfg.Outbox.PollInterval),
		outbox.WithBatchSize(cfg.Outbox.BatchSize),
		outbox.WithLogger(log),
		outbox.WithMetrics(profileMetrics),
		outbox.WithBreaker(breaker),
	)

	jwtService := jwttoken.NewJWTService(cfg.Server.JWTSigningKey, cfg.Server.JWTIssuer, cfg.Server.JWTAudience)
	h := handler.New(maids, sponsors, agencies, jwttoken.NewJWTServiceAdapter(jwtService), log)

	r := chi.NewRouter()
	r.Use(metadata.ClientMetadata)
	r.Use(requesttime.Middleware)
	r.Use(chimw.Recoverer)
	r.Use(httpMetrics.Middleware)
	r.Get("/healthz", a.handleHealth)
	r.Handle("/metrics", promhttp.Handler())
	r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(cfg.Server.RequestTimeout))
		h.Register(r)
	})
	a.router = r

	ok = true
	return a, nil
}

func buildStores(db *sql.DB, cfg config.Postgres, log *slog.Logger) (stores, error) {
	if db == nil {
		log.Warn("POSTGRES_DSN not set, profiles are kept in memory")
		ob := store.NewMemoryOutbox()
		return stores{
			maids:    store.NewInMemory(store.MaidCodec(), ob),
			sponsors: store.NewInMemory(store.SponsorCodec(), ob),
			agencies: store.NewInMemory(store.AgencyCodec(), ob),
			outbox:   ob,
		}, nil
	}
	if cfg.MigrateOnStart {
		if err := migrations.Up(cfg.DSN); err != nil {
			return stores{}, fmt.Errorf("migrate: %w", err)
		}
	}
	return stores{
		maids:    store.NewPostgres(db, store.MaidCodec()),
		sponsors: store.NewPostgres(db, store.SponsorCodec()),
		agencies: store.NewPostgres(db, store.AgencyCodec()),
		outbox:   store.NewPostgresOutbox(db),
	}, nil
}

// buildPublisher fans out to every configured transport and falls back to
// logging when none is.
func (a *app) buildPublisher(ctx context.Context, cfg *config.Config, log *slog.Logger) (outbox.Publisher, error) {
	var fan outbox.FanOut

	client, err := kafka.NewClient(cfg.Kafka)
	if err != nil {
		return nil, fmt.Errorf("kafka client: %w", err)
	}
	if client != nil {
		a.kafka = client
		if err := kafka.EnsureTopic(ctx, client, cfg.Kafka); err != nil {
			return nil, fmt.Errorf("kafka topic: %w", err)
		}
		fan = append(fan, kafka.NewPublisher(client, cfg.Kafka.Topic))
		log.Info("relaying profile events to kafka", "topic", cfg.Kafka.Topic)
	}

	rdb, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}
	if rdb != nil {
		a.redis = rdb
		fan = append(fan, redis.NewStreamPublisher(rdb, cfg.Redis.Stream, cfg.Redis.StreamMaxLen))
		log.Info("relaying profile events to redis stream", "stream", cfg.Redis.Stream)
	}

	switch len(fan) {
	case 0:
		log.Warn("no event transport configured, profile events are only logged")
		return outbox.NewLogPublisher(log), nil
	case 1:
		return fan[0], nil
	default:
		return fan, nil
	}
}

func (a *app) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	status := map[string]string{"status": "ok"}
	code := http.StatusOK
	if a.db != nil {
		if err := a.db.PingContext(ctx); err != nil {
			status["postgres"] = err.Error()
			code = http.StatusServiceUnavailable
		}
	}
	if a.redis != nil {
		if err := a.redis.Health(ctx); err != nil {
			status["redis"] = err.Error()
			code = http.StatusServiceUnavailable
		}
	}
	if code != http.StatusOK {
		status["status"] = "degraded"
	}
	httputil.WriteJSON(w, code, status)
}

func (a *app) close() {
	if a.kafka != nil {
		a.kafka.Close()
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}
