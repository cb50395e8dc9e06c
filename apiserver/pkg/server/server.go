/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package apiserver

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"k8s.io/klog/v2"
	"k8s.io/klog/v2/klogr"
	ctrlruntime "sigs.k8s.io/controller-runtime"

	"github.com/AMD-AIG-AIMA/fleet-apiserver/apiserver/pkg/handlers"
	commonconfig "github.com/AMD-AIG-AIMA/fleet-apiserver/common/pkg/config"
	commonclient "github.com/AMD-AIG-AIMA/fleet-apiserver/common/pkg/k8sclient"
	commonklog "github.com/AMD-AIG-AIMA/fleet-apiserver/common/pkg/klog"
	"github.com/AMD-AIG-AIMA/fleet-apiserver/common/pkg/options"
	"github.com/AMD-AIG-AIMA/fleet-apiserver/utils/pkg/netutil"
)

type Server struct {
	opts         *options.Options
	cfg          *commonconfig.Config
	httpServer   *http.Server
	healthServer *http.Server
	ctx          context.Context
	isInited     bool
}

// NewServer creates and returns a new Server instance.
func NewServer() (*Server, error) {
	s := &Server{
		opts: &options.Options{},
		ctx:  ctrlruntime.SetupSignalHandler(),
	}
	if err := s.init(); err != nil {
		return nil, err
	}
	return s, nil
}

// init performs the initial setup of the server including flag parsing,
// logging initialization and configuration loading.
func (s *Server) init() error {
	gin.SetMode(gin.ReleaseMode)
	var err error
	if err = s.opts.InitFlags(); err != nil {
		klog.ErrorS(err, "failed to parse flags")
		return err
	}
	if err = s.initLogs(); err != nil {
		klog.ErrorS(err, "failed to init logs")
		return err
	}
	if err = s.initConfig(); err != nil {
		klog.ErrorS(err, "failed to init config")
		return err
	}
	s.isInited = true
	return nil
}

// Start begins the server operation by starting the HTTP server and the
// health/metrics server (if enabled) in separate goroutines. It waits for a
// signal to stop and then calls Stop to shut down services.
func (s *Server) Start() {
	if !s.isInited {
		klog.Errorf("please init api-server first")
		return
	}
	gin.EnableJsonDecoderDisallowUnknownFields()

	klog.Infof("starting api-server")
	go func() {
		if err := s.startHttpServer(); err != nil && err != http.ErrServerClosed {
			klog.ErrorS(err, "failed to start http-server")
			os.Exit(-1)
		}
	}()

	go func() {
		if err := s.startHealthServer(); err != nil && err != http.ErrServerClosed {
			klog.ErrorS(err, "failed to start health-server")
			os.Exit(-1)
		}
	}()

	<-s.ctx.Done()
	s.Stop()
}

// Stop gracefully shuts down the HTTP server and the health server, then
// flushes logs.
func (s *Server) Stop() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	klog.Info("shutting down http server...")
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			klog.ErrorS(err, "failed to shutdown httpserver")
		}
	}
	if s.healthServer != nil {
		if err := s.healthServer.Shutdown(ctx); err != nil {
			klog.ErrorS(err, "failed to shutdown health server")
		}
	}
	klog.Info("apiserver is stopped")
	klog.Flush()
}

// initLogs initializes the logging system with the specified log file path
// and size. It also sets up the controller-runtime logger to use klog.
func (s *Server) initLogs() error {
	if err := commonklog.Init(s.opts.LogfilePath, s.opts.LogFileSize); err != nil {
		return err
	}
	ctrlruntime.SetLogger(klogr.NewWithOptions())
	return nil
}

// initConfig loads the config file and materializes the immutable Config all
// components receive at construction.
func (s *Server) initConfig() error {
	fullPath, err := filepath.Abs(s.opts.Config)
	if err != nil {
		return err
	}
	if err = commonconfig.LoadConfig(fullPath); err != nil {
		return fmt.Errorf("config path: %s, err: %v", fullPath, err)
	}
	s.cfg = commonconfig.New()
	return nil
}

// startHttpServer builds the cluster clients and the HTTP handlers, then
// starts listening on the configured port.
func (s *Server) startHttpServer() error {
	if s.cfg.ServerPort <= 0 {
		return fmt.Errorf("the apiserver port is not defined")
	}
	clientSet, restConfig, err := commonclient.NewClientSet(s.opts.KubeConfig)
	if err != nil {
		return err
	}
	ctrlClient, err := commonclient.NewCtrlClient(restConfig)
	if err != nil {
		return err
	}
	handler, err := handlers.InitHttpHandlers(s.ctx, clientSet, ctrlClient, s.cfg)
	if err != nil {
		return err
	}
	addr := fmt.Sprintf(":%d", s.cfg.ServerPort)
	s.httpServer = &http.Server{Addr: addr, Handler: handler}
	klog.Infof("http-server listen port: %d", s.cfg.ServerPort)
	return s.httpServer.ListenAndServe()
}

// startHealthServer exposes /healthz and /metrics on the health port when
// health checking is enabled.
func (s *Server) startHealthServer() error {
	if !s.cfg.HealthCheckEnable {
		return nil
	}
	if s.cfg.HealthCheckPort <= 0 {
		return fmt.Errorf("the healthcheck port is not defined")
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.Handler())
	localIp, err := netutil.GetLocalIp()
	if err != nil {
		return err
	}
	addr := fmt.Sprintf("%s:%d", localIp, s.cfg.HealthCheckPort)
	s.healthServer = &http.Server{Addr: addr, Handler: mux}
	klog.Infof("health-server listen port: %d", s.cfg.HealthCheckPort)
	return s.healthServer.ListenAndServe()
}
