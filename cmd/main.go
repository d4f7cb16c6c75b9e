package main

import (
	"context"
	"database/sql"
	"errors"
	"exercise-tracker-service/internal/api"
	"exercise-tracker-service/internal/config"
	"exercise-tracker-service/internal/publisher"
	"exercise-tracker-service/internal/repository"
	"exercise-tracker-service/internal/service"
	"exercise-tracker-service/internal/sharding"
	"fmt"
	"github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func connectDB(dsn string, shard int) (*sql.DB, error) {
	var db *sql.DB
	var err error
	for i := 0; i < 10; i++ {
		db, err = sql.Open("mysql", dsn)
		if err == nil {
			err = db.Ping()
			if err == nil {
				log.Info().Msgf("Connected to DB shard %d", shard)
				return db, nil
			}
			db.Close()
		}
		log.Warn().Err(err).Msgf("Retry %d: Failed to connect to DB shard %d", i+1, shard)
		time.Sleep(3 * time.Second)
	}
	return nil, fmt.Errorf("failed to connect to DB shard %d after retries: %w", shard, err)
}

func openRepository(ctx context.Context, cfg *config.Config) (repository.Repository, error) {
	switch cfg.DBDriver {
	case config.DriverMongo:
		client, err := repository.ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		repo := repository.NewMongoRepository(client, cfg.MongoDB)
		if err := repo.EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Msg("Failed to create log index")
		}
		log.Info().Msgf("Connected to MongoDB database %s", cfg.MongoDB)
		return repo, nil

	case config.DriverMySQL:
		dbs := make([]*sql.DB, 0, len(cfg.MySQLDSNs))
		for i, dsn := range cfg.MySQLDSNs {
			db, err := connectDB(dsn, i)
			if err != nil {
				return nil, err
			}
			dbs = append(dbs, db)
		}
		if err := repository.AutoMigrate(ctx, 3, dbs...); err != nil {
			return nil, err
		}
		return repository.NewMySQLRepository(dbs, sharding.NewShardRouter(len(dbs))), nil
	}

	return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
}

func openPublisher(cfg *config.Config) publisher.Publisher {
	if len(cfg.KafkaBrokers) > 0 {
		log.Info().Msgf("Publishing events to kafka topic %s", cfg.KafkaTopic)
		return publisher.NewKafkaPublisher(config.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaTopic))
	}
	if cfg.NatsURL != "" {
		pub, err := publisher.ConnectNats(cfg.NatsURL)
		if err == nil {
			return pub
		}
		log.Error().Err(err).Msg("Failed to connect to NATS, events disabled")
	}
	return publisher.NoopPublisher{}
}

func main() {
	cfg := config.Load()
	ctx := context.Background()

	repo, err := openRepository(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open store")
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
		})
	}

	pub := openPublisher(cfg)

	exerciseService := service.NewExerciseService(repo, repo, rdb, cfg.UserCacheTTL, pub)
	exerciseHandler := api.NewExerciseHandler(exerciseService)

	e := api.NewServer(exerciseHandler, api.ServerConfig{
		RateLimit: cfg.RateLimit,
		RateBurst: cfg.RateBurst,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error shutting down server")
	}
	if err := pub.Close(); err != nil {
		log.Error().Err(err).Msg("Error closing publisher")
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing redis")
		}
	}
	if err := repo.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error closing store")
	}
}
