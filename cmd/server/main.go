package main

import (
	"context"
	"flag"

	"github.com/lintang-b-s/wayfinder/pkg/engine"
	"github.com/lintang-b-s/wayfinder/pkg/http"
	"github.com/lintang-b-s/wayfinder/pkg/http/usecases"
	"github.com/lintang-b-s/wayfinder/pkg/logger"
	"github.com/lintang-b-s/wayfinder/pkg/project"
	"github.com/lintang-b-s/wayfinder/pkg/session"
	"github.com/lintang-b-s/wayfinder/pkg/util"
	"go.uber.org/zap"
)

var (
	snapshotFile    = flag.String("snapshot", "", "project snapshot file to preload (optional)")
	snapshotProject = flag.String("snapshot_project", "default", "project id for the preloaded snapshot")
	useRateLimit    = flag.Bool("rate_limit", false, "enable per-ip rate limiting")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}

	if err := util.ReadConfig(); err != nil {
		// defaults from pkg/http cover a missing config file
		logger.Warn("config file not loaded", zap.Error(err))
	}

	routingEngine := engine.NewEngine(logger)
	store := project.NewStore()
	tracker := session.NewTracker(logger, routingEngine)

	navigationService := usecases.NewNavigationService(logger, routingEngine, store, tracker)

	if *snapshotFile != "" {
		numNodes, numEdges, err := navigationService.ImportProject(*snapshotProject, *snapshotFile)
		if err != nil {
			panic(err)
		}
		logger.Info("snapshot preloaded", zap.String("project", *snapshotProject),
			zap.Int("nodes", numNodes), zap.Int("edges", numEdges))
	}

	api := http.NewServer(logger)

	ctx, cleanup := newContext()
	server, err := api.Use(ctx, logger, *useRateLimit, navigationService)
	if err != nil {
		panic(err)
	}

	select {
	case signal := <-http.GracefulShutdown():
		logger.Info("Wayfinder Navigation Engine Server Stopped", zap.String("signal", signal.String()))
	case err := <-server.Err():
		logger.Error("Wayfinder Navigation Engine Server Terminated", zap.Error(err))
	}
	cleanup()
	tracker.Close()
}

func newContext() (context.Context, func()) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := func() {
		cancel()
	}

	return ctx, cb
}
