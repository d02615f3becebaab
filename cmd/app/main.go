package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"ecolakbay-service/configs"
	"ecolakbay-service/internal/carbon"
	"ecolakbay-service/internal/comment"
	"ecolakbay-service/internal/destination"
	"ecolakbay-service/internal/like"
	"ecolakbay-service/internal/media"
	"ecolakbay-service/internal/migrate"
	"ecolakbay-service/internal/points"
	"ecolakbay-service/internal/post"
	"ecolakbay-service/internal/ratelimit"
	"ecolakbay-service/internal/shared/db"
	"ecolakbay-service/internal/shared/httpx"
	"ecolakbay-service/internal/storage/s3"
	"ecolakbay-service/internal/user"
	"ecolakbay-service/pkg/kafka"
)

func initOTEL(ctx context.Context) func(context.Context) error {
	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		endpoint = "otel-collector:4318"
	}
	exp, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpoint(endpoint), otlptracehttp.WithInsecure())
	if err != nil {
		log.Fatalf("otel exporter: %v", err)
	}
	res, _ := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName("ecolakbay-service"),
		attribute.String("deployment.environment", os.Getenv("ENV")),
	))
	ratio := 1.0
	if s := os.Getenv("OTEL_TRACES_SAMPLER_ARG"); s != "" {
		if f, e := strconv.ParseFloat(s, 64); e == nil && f >= 0 && f <= 1 {
			ratio = f
		}
	}
	tp := trace.NewTracerProvider(
		trace.WithSampler(trace.ParentBased(trace.TraceIDRatioBased(ratio))),
		trace.WithBatcher(exp),
		trace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{},
	))
	return tp.Shutdown
}

func main() {
	ctx := context.Background()
	shutdown := initOTEL(ctx)
	defer func() {
		c, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		_ = shutdown(c)
	}()

	cfg := configs.LoadConfig()

	store := db.Open(cfg)

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.RedisPass,
		DB:       0,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("redis ping: %v", err)
	}

	if cfg.AutoMigrate {
		if err := migrate.AutoMigrateAll(store); err != nil {
			log.Fatalf("migrate: %v", err)
		}
	}

	objects, err := s3.New(s3.Config{
		Endpoint:  cfg.S3Endpoint,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		UseSSL:    cfg.S3UseSSL,
		Bucket:    cfg.S3Bucket,
	})
	if err != nil {
		log.Fatalf("object storage: %v", err)
	}
	if err := objects.EnsureBucket(ctx); err != nil {
		log.Printf("ensure bucket: %v", err)
	}

	postEvents := kafka.NewWriter(cfg.KafkaBrokers, cfg.PostsTopic)
	defer postEvents.Close()
	pointsEvents := kafka.NewWriter(cfg.KafkaBrokers, cfg.PointsTopic)
	defer pointsEvents.Close()

	userRepo := user.NewRepository(store)
	userSvc := user.NewService(userRepo)

	postRepo := post.NewRepository(store)
	postSvc := post.NewService(postRepo, postEvents)

	likeRepo := like.NewRepository(store, rdb)
	likeSvc := like.NewService(likeRepo)

	commentRepo := comment.NewRepository(store, rdb)
	commentSvc := comment.NewService(commentRepo, pointsEvents)

	pointsSvc := points.NewService(userRepo)
	if cfg.ConsumeEnabled {
		go func() {
			if err := kafka.Consume(ctx, cfg.KafkaBrokers, cfg.PointsTopic, cfg.PointsGroupID, points.HandleMessage(pointsSvc)); err != nil {
				log.Printf("points consumer stopped: %v", err)
			}
		}()
	}

	destRepo := destination.NewRepository(store)
	destSvc := destination.NewService(destRepo)

	mediaRepo := media.NewRepository(store)
	mediaSvc := media.NewService(mediaRepo, objects)

	carbonRepo := carbon.NewRepository(store)
	carbonSvc := carbon.NewService(carbonRepo)

	limiter := ratelimit.New(rdb)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	uh := user.NewHandler(userSvc)
	mux.Handle("POST /auth/register", httpx.Wrap(uh.Register))
	mux.Handle("POST /auth/login", httpx.Wrap(uh.Login))
	mux.Handle("GET /profiles", httpx.Wrap(uh.ListProfiles))
	mux.Handle("GET /profiles/{user_id}", httpx.Wrap(uh.GetProfile))

	ph := post.NewHandler(postSvc)
	ph.WithCounts(likeSvc, commentSvc)
	ph.WithUsers(userSvc)
	mux.Handle("GET /posts", httpx.Wrap(ph.List))
	mux.Handle("GET /posts/{post_id}", httpx.Wrap(ph.Get))

	lh := like.NewHandler(likeSvc)
	mux.Handle("GET /posts/{post_id}/likes", httpx.Wrap(lh.GetLikes))
	mux.Handle("GET /users/{user_id}/likes", httpx.Wrap(lh.ListByUser))

	ch := comment.NewHandler(commentSvc)
	ch.WithProfiles(userSvc)
	mux.Handle("GET /posts/{post_id}/comments", httpx.Wrap(ch.ListByPost))
	mux.Handle("GET /posts/{post_id}/counts", httpx.Wrap(ch.GetCounts))

	psh := points.NewHandler(pointsSvc)
	mux.Handle("GET /points/{user_id}", httpx.Wrap(psh.GetTotal))

	dh := destination.NewHandler(destSvc, userSvc)
	mux.Handle("GET /destinations", httpx.Wrap(dh.List))
	mux.Handle("GET /destinations/{destination_id}", httpx.Wrap(dh.Get))

	mh := media.NewHandler(mediaSvc)
	mux.Handle("GET /media/{media_id}/url", httpx.Wrap(mh.GetURL))

	cah := carbon.NewHandler(carbonSvc)
	mux.Handle("POST /carbon/estimate", httpx.Wrap(cah.Estimate))

	userKey := func(r *http.Request) (string, error) { return httpx.UserFromCtx(r) }
	protect := func(pattern string, fn httpx.HandlerFunc) {
		mux.Handle(pattern, httpx.AuthMiddleware(httpx.Wrap(fn)))
	}
	throttle := func(pattern string, fn httpx.HandlerFunc) {
		mux.Handle(pattern, httpx.AuthMiddleware(
			limiter.LimitHTTP(30, time.Minute, userKey, httpx.Wrap(fn))))
	}

	protect("PUT /profiles", uh.UpdateProfile)
	throttle("POST /posts", ph.Create)
	protect("PUT /posts/{post_id}", ph.Update)
	protect("DELETE /posts/{post_id}", ph.Delete)
	throttle("POST /posts/{post_id}/like", lh.Like)
	throttle("DELETE /posts/{post_id}/like", lh.Unlike)
	throttle("POST /posts/{post_id}/comments", ch.Create)
	protect("POST /destinations", dh.Submit)
	protect("POST /destinations/{destination_id}/status", dh.Moderate)
	protect("POST /media", mh.Upload)
	protect("POST /media/presign", mh.PresignUpload)
	protect("POST /carbon/records", cah.Save)
	protect("GET /carbon/records", cah.ListMine)

	srv := &http.Server{
		Addr:              cfg.AppPort,
		Handler:           otelhttp.NewHandler(mux, "http.server"),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}
	log.Printf("ecolakbay-service listening on %s", cfg.AppPort)
	log.Fatal(srv.ListenAndServe())
}
