package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/digichlist/digichlist-bot/internal/biz/usecase"
	"github.com/digichlist/digichlist-bot/internal/conf"
	"github.com/digichlist/digichlist-bot/internal/data"
	"github.com/digichlist/digichlist-bot/internal/server"
	"github.com/digichlist/digichlist-bot/internal/service"
	"github.com/digichlist/digichlist-bot/telegram"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config, err := conf.LoadFromEnv()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if err := config.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, err := newLogger(config.Debug)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	client := telegram.NewClient(config.Bot.Token, config.Bot.PollTimeoutSeconds, config.Bot.ButtonsPerRow)

	repos, err := data.NewRepositories(client, config.Store.DBPath)
	if err != nil {
		logger.Fatal("failed to open store", zap.Error(err))
	}
	defer repos.Close()

	authUC := usecase.NewAuthUsecase(repos.User)
	userUC := usecase.NewUserUsecase(repos.User)
	defectUC := usecase.NewDefectUsecase(repos.Defect)
	taskUC := usecase.NewTaskUsecase(repos.Task, config.Task.TTL())

	registry := service.NewRegistry()
	registry.Register(conf.CommandStart, func() service.Command {
		return service.NewStartCommand(repos.Message, config.Messages)
	})
	registry.Register(conf.CommandRegisterMe, func() service.Command {
		return service.NewRegisterMeCommand(userUC, repos.Message, config.Messages)
	})
	registry.Register(conf.CommandNewDefect, func() service.Command {
		return service.NewNewDefectCommand(authUC, defectUC, repos.Message, config.Messages)
	})
	registry.Register(conf.CommandSetDefectStatus, func() service.Command {
		return service.NewSetDefectStatusCommand(authUC, taskUC, defectUC, repos.Message, config.Messages, logger)
	})
	registry.Register(conf.CommandCancel, func() service.Command {
		return service.NewCancelCommand(taskUC, repos.Message, config.Messages)
	})

	dispatcher := service.NewDispatcher(registry, repos.Message, config.Messages, logger)
	srv := server.NewBotServer(client, dispatcher, logger)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// Stopping the server makes Start return, so main falls through and the
	// deferred store close and log flush still run.
	go func() {
		<-sigCh
		fmt.Println("\nShutting down...")
		srv.Stop()
	}()

	logger.Info("starting digichlist bot",
		zap.String("db_path", config.Store.DBPath),
		zap.Int("task_ttl_seconds", config.Task.TTLSeconds))
	if err := srv.Start(); err != nil {
		logger.Error("bot stopped", zap.Error(err))
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg = zap.NewDevelopmentConfig()
	}
	return cfg.Build()
}
