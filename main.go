package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"best-memories/auth"
	"best-memories/configs"
	"best-memories/events"
	"best-memories/objectstore"
	"best-memories/routes"
	"best-memories/stores"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

type dependencies struct {
	mongoClient *mongo.Client
	albums      stores.AlbumStore
	users       stores.UserStore
	publisher   events.Publisher
	gateway     objectstore.Gateway
	closers     []func(context.Context) error
}

func main() {
	cfg := configs.LoadConfig()

	// Initialize logger first
	configs.InitLogger(cfg.LogLevel, cfg.LogFormat)
	logger := configs.LogWithContext("best-memories", "startup")

	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("Invalid configuration")
	}

	logger.Info("Starting Best Memories API")

	deps, err := initializeDependencies(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize dependencies")
	}

	tokens, err := tokenIssuer(cfg)
	if err != nil {
		logger.WithError(err).Fatal("Invalid JWT configuration")
	}

	logger.Info("Registering API routes...")
	router := routes.NewRouter(routes.Dependencies{
		Albums:  deps.albums,
		Users:   deps.users,
		Events:  deps.publisher,
		Objects: deps.gateway,
		Tokens:  tokens,
	})

	// Health check endpoints
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "OK")
	}).Methods("GET")

	router.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		if deps.mongoClient != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := deps.mongoClient.Ping(ctx, nil); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				fmt.Fprintln(w, "MongoDB unavailable")
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "Ready")
	}).Methods("GET")

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      routes.Handler(router, cfg.ClientOrigin),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.WithField("port", cfg.Port).Info("Best Memories API started")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}
	for _, closer := range deps.closers {
		if err := closer(ctx); err != nil {
			logger.WithError(err).Warn("Failed to release resource")
		}
	}
	logger.Info("Server shutdown complete")
}

func initializeDependencies(cfg configs.Config, logger *logrus.Entry) (*dependencies, error) {
	ctx := context.Background()
	deps := &dependencies{publisher: events.NopPublisher{}}

	switch cfg.AlbumStore {
	case configs.AlbumStoreMemory:
		logger.Warn("Using in-memory album store, albums are lost on restart")
		deps.albums = stores.NewMemoryAlbumStore()
	default:
		start := time.Now()
		client, err := configs.ConnectDB(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("mongodb connection failed: %w", err)
		}
		logger.WithField("duration", time.Since(start)).Info("MongoDB connected successfully")

		albums := stores.NewMongoAlbumStore(configs.GetCollection(client, cfg.DatabaseURL, configs.AlbumsCollection))
		if err := albums.EnsureIndexes(ctx); err != nil {
			return nil, err
		}
		deps.mongoClient = client
		deps.albums = albums
		deps.closers = append(deps.closers, client.Disconnect)
	}

	if cfg.RequireAuth {
		start := time.Now()
		db, err := configs.ConnectUsersDB(cfg)
		if err != nil {
			return nil, fmt.Errorf("users database connection failed: %w", err)
		}
		users := stores.NewGormUserStore(db)
		if err := users.Migrate(); err != nil {
			return nil, err
		}
		logger.WithField("duration", time.Since(start)).Info("Users database ready")
		deps.users = users
		deps.closers = append(deps.closers, func(context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		})
	}

	redisClient, err := configs.ConnectRedis(ctx, cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}
	if redisClient != nil {
		logger.WithField("channel", cfg.EventsChannel).Info("Publishing album events to Redis")
		deps.publisher = events.NewRedisPublisher(redisClient, cfg.EventsChannel)
		deps.closers = append(deps.closers, func(context.Context) error {
			return redisClient.Close()
		})
	}

	s3Client, err := configs.NewS3Client(ctx, cfg)
	if err != nil {
		return nil, err
	}
	deps.gateway = objectstore.NewS3Gateway(objectstore.S3GatewayConfig{
		Client:    s3Client,
		Bucket:    cfg.S3Bucket,
		PublicURL: cfg.S3URL,
	})

	return deps, nil
}

// tokenIssuer returns nil when authentication is disabled.
func tokenIssuer(cfg configs.Config) (*auth.TokenIssuer, error) {
	if !cfg.RequireAuth {
		return nil, nil
	}
	expiry, err := auth.ParseExpiry(cfg.JWTExpiry)
	if err != nil {
		return nil, err
	}
	return auth.NewTokenIssuer(cfg.JWTSecret, expiry), nil
}
