package main

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BloggingApp/forum-service/internal/config"
	"github.com/BloggingApp/forum-service/internal/handler"
	"github.com/BloggingApp/forum-service/internal/mailer"
	"github.com/BloggingApp/forum-service/internal/rabbitmq"
	"github.com/BloggingApp/forum-service/internal/repository"
	"github.com/BloggingApp/forum-service/internal/repository/postgres"
	"github.com/BloggingApp/forum-service/internal/server"
	"github.com/BloggingApp/forum-service/internal/service"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx := context.Background()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	if err := loadEnv(); err != nil {
		logger.Sugar().Panicf("failed to load environment variables: %s", err.Error())
	}

	if err := initConfig(); err != nil {
		logger.Sugar().Panicf("failed to initialize yaml config: %s", err.Error())
	}

	db, err := postgres.DB(ctx, config.DBFromEnv())
	if err != nil {
		logger.Sugar().Panicf("failed to connect to postgres: %s", err.Error())
	}
	defer db.Close()
	if err := db.Ping(ctx); err != nil {
		logger.Sugar().Panicf("failed to ping postgres: %s", err.Error())
	}
	logger.Info("Successfully connected to PostgreSQL")

	rdb := redis.NewClient(&redis.Options{
		Addr:     os.Getenv("REDIS_ADDR"),
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	defer rdb.Close()
	pong, err := rdb.Ping(ctx).Result()
	if err != nil {
		logger.Sugar().Panicf("failed to ping redis: %s", err.Error())
	}
	logger.Sugar().Infof("Successfully connected to Redis: %s", pong)

	var publisher rabbitmq.Publisher = rabbitmq.NopPublisher{}
	if connString := os.Getenv("RABBITMQ_CONN_STRING"); connString != "" {
		mq, err := rabbitmq.New(connString, viper.GetString("rabbitmq.exchange"))
		if err != nil {
			logger.Sugar().Panicf("failed to connect to rabbitmq: %s", err.Error())
		}
		defer mq.Close()
		publisher = mq
		logger.Info("Successfully connected to RabbitMQ")
	} else {
		logger.Warn("RABBITMQ_CONN_STRING is not set, post events are not published")
	}

	smtpConfig := config.SMTPFromEnv()
	if !smtpConfig.Enabled() {
		logger.Warn("SMTP_HOST is not set, welcome mails are not sent")
	}

	authConfig := config.AuthFromEnv()
	if err := authConfig.Validate(); err != nil {
		logger.Sugar().Panicf("invalid auth config: %s", err.Error())
	}

	repos := repository.New(db, rdb)
	services := service.New(logger, repos, publisher, mailer.New(smtpConfig), service.Options{
		Auth:       authConfig,
		Pagination: config.PaginationFromViper(),
	})
	handlers := handler.New(services, logger)

	srv := server.New(config.ServerConfig{
		Port:           viper.GetString("app.port"),
		Handler:        handlers.InitRoutes(),
		MaxHeaderBytes: 1 << 20,
		ReadTimeout:    durationOr(viper.GetDuration("server.read_timeout"), 10*time.Second),
		WriteTimeout:   durationOr(viper.GetDuration("server.write_timeout"), 10*time.Second),
	})
	go func() {
		if err := srv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Sugar().Panicf("failed to run http server: %s", err.Error())
		}
	}()

	logger.Info("Server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logger.Info("Server shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("failed to shutdown http server: %s", err.Error())
	}
}

// loadEnv reads .env when present. Deployments may pass the variables directly.
func loadEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	return nil
}

func initConfig() error {
	viper.AddConfigPath(".")
	viper.SetConfigType("yaml")
	viper.SetConfigName("app")
	viper.SetDefault("rabbitmq.exchange", "forum")
	return viper.ReadInConfig()
}

func durationOr(d time.Duration, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}

	return d
}
