package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.dfds.cloud/copilot-seats-api/internal/config"
	"go.dfds.cloud/copilot-seats-api/internal/github"
	"go.dfds.cloud/copilot-seats-api/internal/handler"
	"go.dfds.cloud/copilot-seats-api/internal/logging"
	"go.dfds.cloud/copilot-seats-api/internal/seats"
	"go.uber.org/zap"
)

func main() {
	conf, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := logging.New(conf.LogDebug, conf.LogLevel)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("starting copilot-seats-api",
		zap.Bool("isDataMocked", conf.IsDataMocked),
		zap.String("scope", conf.Github.Scope),
	)

	client := github.NewClient(nil, conf.Github.APIBase, conf.Github.GraphQLUpstream, logger)
	service := seats.NewService(client, seats.Options{
		IsDataMocked: conf.IsDataMocked,
		MockData:     os.DirFS(conf.MockDataDir),
		GithubOrg:    conf.Github.Org,
		GraphQLURL:   conf.GraphQLURL,
	}, logger)

	app := handler.NewApp(handler.New(service, client, logger), handler.Defaults{
		Scope: conf.Github.Scope,
		Org:   conf.Github.Org,
		Ent:   conf.Github.Ent,
		Token: conf.Github.Token,
	})

	go func() {
		if err := app.Listen(conf.ListenAddress); err != nil {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
}
