// Copyright (c) 2024-present CBT Digital, Inc. All Rights Reserved.
// See License.txt for license information.

package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/mattermost/mattermost-server/v5/shared/mlog"

	"github.com/cbtdigital/ideasync/metrics"
	"github.com/cbtdigital/ideasync/server"
)

var configFile string

func init() {
	flag.StringVar(&configFile, "config", "config-ideasync.json", "")
}

func main() {
	flag.Parse()

	// Optional .env for AWS credentials and local overrides.
	_ = godotenv.Load()

	config, err := server.GetConfig(configFile)
	if err != nil {
		mlog.Error("unable to load server config", mlog.Err(err), mlog.String("file", configFile))
		return
	}
	server.SetupLogging(config)

	// Metrics system
	metricsProvider := metrics.NewPrometheusProvider()
	metricsServer := metrics.NewServer(config.MetricsServerPort, metricsProvider.Handler(), true)
	metricsServer.Start()
	defer metricsServer.Stop()

	mlog.Info("Loaded config", mlog.String("filename", configFile))
	s, err := server.New(config, metricsProvider)
	if err != nil {
		mlog.Error("unable to start server", mlog.Err(err))
		return
	}

	mlog.Info("Starting IdeaSync Server")
	s.Start()

	defer func() {
		mlog.Info("Stopping IdeaSync Server")
		if err2 := s.Stop(); err2 != nil {
			mlog.Error("error while shutting down server", mlog.Err(err2))
			os.Exit(1)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-sig
	mlog.Info("Stopped IdeaSync Server")
}
