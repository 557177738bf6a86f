package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"golang-filing-sentiment/internal/analyzer/config"
	"golang-filing-sentiment/internal/analyzer/delivery/consumer"
	"golang-filing-sentiment/internal/analyzer/repository"
	"golang-filing-sentiment/internal/analyzer/service"
	"golang-filing-sentiment/internal/analyzer/strategy"
	"golang-filing-sentiment/pkg/common"
	"golang-filing-sentiment/pkg/logger"
	"golang-filing-sentiment/pkg/postgres"
	"golang-filing-sentiment/pkg/redis"
	"golang-filing-sentiment/pkg/telegram"

	"google.golang.org/genai"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the analyzer service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Analyzer Service", zap.String("name", cfg.App.Name))

	// Initialize database
	postgresCfg := postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}
	db, err := postgres.NewDB(postgresCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize database", zap.Error(err))
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		defer sqlDB.Close()
	}

	// Initialize Redis
	redisCfg := redis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	}
	redisClient, err := redis.NewClient(redisCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize Redis", zap.Error(err))
	}
	defer redisClient.Close()

	// Create the consumer group if it doesn't exist.
	// MKSTREAM creates the stream if it doesn't exist.
	if err := redisClient.XGroupCreateMkStream(context.Background(), common.RedisStreamFilingAnalysis, common.RedisStreamGroup, "0").Err(); err != nil {
		if err.Error() != "BUSYGROUP Consumer Group name already exists" {
			appLogger.Fatal("Failed to create consumer group", logger.ErrorField(err))
		}
	}

	// Initialize repositories
	jobRepo := repository.NewJobRepository(db.DB)
	historyRepo := repository.NewTaskExecutionHistoryRepository(db.DB)
	filingRepo := repository.NewFilingRepository(db.DB)
	resultRepo := repository.NewSentimentResultRepository(db.DB)

	edgarRepo, err := repository.NewEdgarRepository(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize EDGAR repository", zap.Error(err))
	}

	genAiClient, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: cfg.Gemini.APIKey,
	})
	if err != nil {
		appLogger.Fatal("Failed to initialize Gemini client", zap.Error(err))
	}
	classifierRepo, err := repository.NewGeminiClassifierRepository(cfg, appLogger, genAiClient)
	if err != nil {
		appLogger.Fatal("Failed to initialize Gemini classifier repository", zap.Error(err))
	}

	var telegramNotifier telegram.Notifier
	if cfg.Telegram.BotToken != "" {
		telegramNotifier, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			appLogger.Fatal("Failed to initialize Telegram notifier", zap.Error(err))
		}
	}

	// Initialize strategies
	strategies := []strategy.JobExecutionStrategy{
		strategy.NewFilingAnalyzerStrategy(
			cfg,
			appLogger,
			edgarRepo,
			classifierRepo,
			filingRepo,
			resultRepo,
		),
		strategy.NewTrendReportStrategy(
			cfg,
			appLogger,
			filingRepo,
			resultRepo,
			telegramNotifier,
		),
	}

	// Initialize executor service
	executorSvc := service.NewExecutorService(redisClient.Client, jobRepo, historyRepo, appLogger, strategies)

	// Initialize and start the Redis consumer
	redisConsumer := consumer.NewRedisConsumer(cfg, redisClient.Client, executorSvc, appLogger)
	redisConsumer.Start(ctx)

	appLogger.Info("Analyzer service started. Waiting for tasks...")

	// Wait for interrupt signal to gracefully shut down the service
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down analyzer service...")
	cancel()
	redisConsumer.Stop()
	appLogger.Info("Analyzer service stopped.")
}

func main() {
	rootCmd := &cobra.Command{Use: "analyzer-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-analyzer.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing analyzer-service CLI: %s\n", err)
		os.Exit(1)
	}
}
