package app

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx"

	"github.com/vrushti/clinic_backend/config"
	"github.com/vrushti/clinic_backend/internal/store"
	"github.com/vrushti/clinic_backend/pkg/email"
	"github.com/vrushti/clinic_backend/pkg/mongodb"
	"github.com/vrushti/clinic_backend/pkg/observability"
	redispkg "github.com/vrushti/clinic_backend/pkg/redis"
	s3pkg "github.com/vrushti/clinic_backend/pkg/s3"
	"github.com/vrushti/clinic_backend/pkg/util/phone"
)

// InfraModule provides all infrastructure dependencies.
var InfraModule = fx.Module("infra",
	fx.Provide(ProvideMongoClient),
	fx.Provide(ProvideDatabase),
	fx.Provide(ProvideStore),
	fx.Provide(ProvideRedis),
	fx.Provide(ProvideEmailClient),
	fx.Provide(ProvideS3Client),
	fx.Provide(ProvidePhoneNormalizer),
	fx.Provide(ProvideOTel),
)

func ProvideMongoClient(lc fx.Lifecycle, cfg *config.Config) (*mongo.Client, error) {
	client, err := mongodb.Connect(cfg.Mongo)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("closing MongoDB connection")
			return client.Disconnect(ctx)
		},
	})
	return client, nil
}

func ProvideDatabase(client *mongo.Client, cfg *config.Config) *mongo.Database {
	return mongodb.Database(client, cfg.Mongo)
}

func ProvideStore(lc fx.Lifecycle, db *mongo.Database) *store.Store {
	st := store.New(db)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return st.EnsureIndexes(ctx)
		},
	})
	return st
}

func ProvideRedis(lc fx.Lifecycle, cfg *config.Config) (*redis.Client, error) {
	rdb, err := redispkg.NewRedisFromCentral(cfg.Redis)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("closing Redis connection")
			return rdb.Close()
		},
	})
	return rdb, nil
}

func ProvideEmailClient(cfg *config.Config) (*email.Client, error) {
	return email.NewFromCentral(cfg.Email)
}

func ProvideS3Client(cfg *config.Config) (*s3pkg.Client, error) {
	return s3pkg.New(cfg.S3)
}

func ProvidePhoneNormalizer(cfg *config.Config) *phone.Normalizer {
	return phone.New(cfg.Phone)
}

func ProvideOTel(lc fx.Lifecycle, cfg *config.Config) (*observability.Provider, error) {
	if !cfg.Observability.Enabled {
		return nil, nil
	}
	provider, err := observability.InitTelemetry(context.Background(), observability.FromCentralConfig(cfg))
	if err != nil {
		return nil, err
	}
	slog.Info("observability initialized",
		"tracing", cfg.Observability.Tracing.Enabled,
		"metrics", cfg.Observability.Metrics.Enabled,
	)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("shutting down observability providers")
			return provider.Shutdown(ctx)
		},
	})
	return provider, nil
}
