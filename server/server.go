// Copyright (c) 2024-present CBT Digital, Inc. All Rights Reserved.
// See License.txt for license information.

package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/gorilla/mux"
	"github.com/mattermost/mattermost-server/v5/shared/mlog"
	"github.com/pkg/errors"

	"github.com/cbtdigital/ideasync/metrics"
	"github.com/cbtdigital/ideasync/version"
)

const (
	defaultRequestTimeout = 60

	defaultHTTPServerReadTimeoutSeconds  = 30
	defaultHTTPServerWriteTimeoutSeconds = 30
)

type Server struct {
	Config  *Config
	Router  *mux.Router
	Metrics metrics.Provider

	ObjectStore ObjectStore
	Secrets     SecretSource
	Notifier    Notifier

	// The tracker client is rebuilt per invocation with the freshly fetched
	// token. Tests swap the factory.
	newGithubClient func(token string) *GithubClient

	srv *http.Server
}

func New(config *Config, metricsProvider metrics.Provider) (*Server, error) {
	if err := config.IsValid(); err != nil {
		return nil, err
	}

	sess, err := session.NewSession(config.GetAwsConfig())
	if err != nil {
		return nil, errors.Wrap(err, "unable to create aws session")
	}

	s := &Server{
		Config:      config,
		Router:      mux.NewRouter(),
		Metrics:     metricsProvider,
		ObjectStore: newS3ObjectStore(sess),
		Secrets:     newSecretsManagerSource(sess),
		Notifier:    newSNSNotifier(sess),
	}
	s.newGithubClient = func(token string) *GithubClient {
		return NewGithubClient(token, metricsProvider)
	}

	s.Router.HandleFunc("/event", s.withRequestMetrics("event", s.eventHandler)).Methods(http.MethodPost)
	s.Router.HandleFunc("/healthz", s.withRequestMetrics("healthz", s.healthzHandler)).Methods(http.MethodGet)
	s.Router.HandleFunc("/version", s.withRequestMetrics("version", s.versionHandler)).Methods(http.MethodGet)

	return s, nil
}

func (s *Server) Start() {
	s.srv = &http.Server{
		Addr:         s.Config.ListenAddress,
		Handler:      s.Router,
		ReadTimeout:  time.Duration(defaultHTTPServerReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(defaultHTTPServerWriteTimeoutSeconds) * time.Second,
	}

	go func() {
		mlog.Info("listening", mlog.String("address", s.Config.ListenAddress))
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			mlog.Critical("server_error", mlog.Err(err))
		}
	}()
}

func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return s.srv.Shutdown(ctx)
}

func (s *Server) healthzHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) versionHandler(w http.ResponseWriter, r *http.Request) {
	b, err := json.Marshal(version.Full())
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(b)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) withRequestMetrics(name string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(recorder, r)
		if s.Metrics != nil {
			elapsed := float64(time.Since(start)) / float64(time.Second)
			s.Metrics.ObserveHTTPRequestDuration(name, r.Method, strconv.Itoa(recorder.status), elapsed)
		}
	}
}
