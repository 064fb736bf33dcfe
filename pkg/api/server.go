package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/wyattowalsh/skillsight/pkg/cache"
	"github.com/wyattowalsh/skillsight/pkg/config"
	"github.com/wyattowalsh/skillsight/pkg/fallback"
	"github.com/wyattowalsh/skillsight/pkg/logging"
	"github.com/wyattowalsh/skillsight/pkg/ratelimit"
	"github.com/wyattowalsh/skillsight/pkg/search"
	"github.com/wyattowalsh/skillsight/pkg/server"
	"github.com/wyattowalsh/skillsight/pkg/skills"
	"github.com/wyattowalsh/skillsight/pkg/snapshot"
	"github.com/wyattowalsh/skillsight/pkg/storage"
)

const (
	name           = "skillsightd"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/wyattowalsh/skillsight/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// App is the fully wired read API: every service constructed once and
// owned explicitly, so tests can build an App over fakes and reset it
// per test instead of sharing hidden process state.
type App struct {
	Resolver *snapshot.Resolver
	Engine   *search.Engine
	Reader   *skills.Reader
	Server   *server.Server
}

// NewApp wires the services over the given store and edge cache.
func NewApp(cfg *config.Config, store storage.ObjectStore, edge cache.EdgeCache, log *slog.Logger) *App {
	layout := snapshot.NewLayout(cfg.WebPrefix, cfg.LegacyPrefix)
	tier := cache.NewTier(store, edge, cfg.CacheTTL(), log)
	resolver := snapshot.NewResolver(tier, layout, cfg.CacheTTL(), log)
	synth := fallback.NewSynthesizer(tier, layout, log)
	engine := search.NewEngine(tier, resolver, layout, cfg.CacheTTL(), log)
	reader := skills.NewReader(tier, resolver, synth, layout, log)

	routes := map[string]http.HandlerFunc{
		"/v1/search":                         engine.HandleSearch,
		"/v1/skills":                         engine.HandleList,
		"/v1/skills/{owner}/{repo}/{skill}":  reader.HandleDetail,
		"/v1/metrics/{owner}/{repo}/{skill}": reader.HandleMetrics,
		"/" + cfg.WebPrefix + "/":            reader.HandleDataPack,
	}

	srv := server.New(
		server.WithName(name),
		server.WithVersion(version),
		server.WithHandlers(routes),
		server.WithPort(cfg.AppPort),
		server.WithClientLimiter(ratelimit.New(cfg.RateLimit, cfg.RateWindow())),
		server.WithClientIPHeader(cfg.ClientIPHeader),
		server.WithGlobalRate(rate.Limit(cfg.GlobalRateLimit), cfg.GlobalRateBurst),
		server.WithSnapshotDate(resolver.CachedDate),
	)

	return &App{
		Resolver: resolver,
		Engine:   engine,
		Reader:   reader,
		Server:   srv,
	}
}

// Serve loads configuration, wires the application, and blocks serving
// requests until ctx is canceled.
func Serve(ctx context.Context) error {
	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	slog.Info("config loaded", "config", cfg)

	store, err := storage.NewMinio(storage.Options{
		Endpoint:  cfg.S3Endpoint,
		Region:    cfg.S3Region,
		Bucket:    cfg.S3Bucket,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		UseSSL:    cfg.S3UseSSL,
		PathStyle: cfg.S3PathStyle,
	})
	if err != nil {
		return fmt.Errorf("connecting object storage: %w", err)
	}

	log := slog.Default()

	// The edge cache is optional; without an address every read goes
	// straight to the object store.
	var edge cache.EdgeCache = cache.Noop{}
	if cfg.RedisAddr != "" {
		redis := cache.NewRedis(cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			DB:       cfg.RedisDB,
			Password: cfg.RedisPassword,
		}, log)
		defer func() { _ = redis.Close() }()

		if err := redis.Ping(ctx); err != nil {
			// Degraded but serviceable: the tier treats cache errors
			// as misses.
			log.Warn("edge cache unreachable at startup", "addr", cfg.RedisAddr, "error", err)
		}
		edge = redis
	}

	app := NewApp(cfg, store, edge, log)

	if err := app.Server.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}
	return nil
}
