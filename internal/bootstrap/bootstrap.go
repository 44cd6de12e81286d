// Package bootstrap builds the storage backend and services from config.
// Both the API server and the CLI start here.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/bryanwahyu/esg-responder/internal/application"
	appai "github.com/bryanwahyu/esg-responder/internal/application/ai"
	appanswers "github.com/bryanwahyu/esg-responder/internal/application/answers"
	appauth "github.com/bryanwahyu/esg-responder/internal/application/auth"
	appbackup "github.com/bryanwahyu/esg-responder/internal/application/backup"
	appentities "github.com/bryanwahyu/esg-responder/internal/application/entities"
	appfiles "github.com/bryanwahyu/esg-responder/internal/application/files"
	applicense "github.com/bryanwahyu/esg-responder/internal/application/license"
	apppolicies "github.com/bryanwahyu/esg-responder/internal/application/policies"
	appreadiness "github.com/bryanwahyu/esg-responder/internal/application/readiness"
	appsettings "github.com/bryanwahyu/esg-responder/internal/application/settings"
	"github.com/bryanwahyu/esg-responder/internal/catalog"
	"github.com/bryanwahyu/esg-responder/internal/config"
	"github.com/bryanwahyu/esg-responder/internal/domain/entities"
	domfiles "github.com/bryanwahyu/esg-responder/internal/domain/files"
	"github.com/bryanwahyu/esg-responder/internal/infra/ai/openai"
	redisrepo "github.com/bryanwahyu/esg-responder/internal/infra/cache/redis"
	mysqlp "github.com/bryanwahyu/esg-responder/internal/infra/db/mysql"
	"github.com/bryanwahyu/esg-responder/internal/infra/db/postgres"
	"github.com/bryanwahyu/esg-responder/internal/infra/db/sqlite"
	"github.com/bryanwahyu/esg-responder/internal/infra/license/lemonsqueezy"
	minioStore "github.com/bryanwahyu/esg-responder/internal/infra/storage"
	"github.com/bryanwahyu/esg-responder/internal/infra/store"
	"github.com/bryanwahyu/esg-responder/internal/pkg/logger"
)

// OpenBackend connects the configured key/value backend and applies migrations.
func OpenBackend(ctx context.Context, cfg *config.Config, log *logger.Logger) (entities.Backend, error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		return store.NewMemoryBackend(), nil
	case config.DriverSQLite:
		return sqlite.Open(ctx, cfg.Storage.DSN, log)
	case config.DriverMySQL:
		db, err := mysqlp.Connect(ctx, cfg.MySQLDSN(), log)
		if err != nil {
			return nil, fmt.Errorf("mysql connect: %w", err)
		}
		return mysqlp.NewKVRepository(db), nil
	case config.DriverPostgres:
		db, err := postgres.Connect(ctx, cfg.PostgresDSN(), log)
		if err != nil {
			return nil, fmt.Errorf("postgres connect: %w", err)
		}
		return postgres.NewKVRepository(db), nil
	case config.DriverRedis:
		return redisrepo.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// Services is everything the HTTP layer and the CLI call into.
type Services struct {
	Store     *store.Store
	Catalog   *catalog.Catalog
	Entities  *appentities.Service
	Auth      *appauth.Service
	Settings  *appsettings.Service
	Files     *appfiles.Service
	Policies  *apppolicies.Service
	Readiness *appreadiness.Service
	Answers   *appanswers.Service
	Backup    *appbackup.Service
	AI        *appai.Service
	License   *applicense.Service
	// Objects is nil unless MinIO is configured.
	Objects *minioStore.Store
}

// Build wires services over backend. MinIO and OpenAI are optional.
func Build(ctx context.Context, cfg *config.Config, backend entities.Backend, log *logger.Logger) (*Services, error) {
	cat, err := catalog.Load()
	if err != nil {
		return nil, err
	}
	clock := application.SystemClock{}
	st := store.New(backend, store.WithClock(clock), store.WithLogger(log.With("component", "store")))

	s := &Services{Store: st, Catalog: cat}

	var content domfiles.ContentStore
	if cfg.MinioEnabled() {
		objects, err := minioStore.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			return nil, fmt.Errorf("minio init: %w", err)
		}
		s.Objects = objects
		content = objects
	}

	s.Entities = appentities.NewService(st, log.With("component", "entities"))
	s.Auth = appauth.NewService(st)
	s.Settings = appsettings.NewService(st)
	s.Files = appfiles.NewService(st, content, appfiles.Config{
		MaxBytes:    cfg.Files.MaxUploadBytes,
		AllowedMIME: cfg.Files.AllowedMIME,
	}, log.With("component", "files"))
	s.Policies = apppolicies.NewService(st, cat.Policies, log.With("component", "policies"))
	s.Readiness = appreadiness.NewService(st, cat.Topics, clock, log.With("component", "readiness"))
	s.Answers = appanswers.NewService(st, log.With("component", "answers"))
	s.Backup = appbackup.NewService(backend, st, clock, log.With("component", "backup"))
	s.License = applicense.NewService(
		lemonsqueezy.NewClient(cfg.License.BaseURL, cfg.License.APIKey, cfg.License.Timeout),
		log.With("component", "license"),
	)

	if cfg.OpenAI.APIKey != "" {
		s.AI = appai.NewService(openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.BaseURL), log.With("component", "ai"))
	} else {
		log.Warn("OPENAI_API_KEY not set, answer enhancement disabled")
		s.AI = appai.NewService(nil, log)
	}

	s.Entities.GuardDelete(entities.Policy, s.Policies.CheckDeletable)
	s.Entities.GuardWrite(entities.Policy, appentities.WriteGuard{
		Create: s.Policies.PrepareCreate,
		Update: s.Policies.PrepareUpdate,
	})
	return s, nil
}
