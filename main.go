package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"videoflix/internal/database"
	"videoflix/internal/handlers"
	"videoflix/internal/logging"
	"videoflix/internal/memory"
	"videoflix/internal/metrics"
	"videoflix/internal/middleware"
	"videoflix/internal/pipeline"
	"videoflix/internal/queue"
	"videoflix/internal/startup"
	"videoflix/internal/thumbnail"
	"videoflix/internal/transcoder"
	"videoflix/internal/workers"
)

func main() {
	startTime := time.Now()

	// Configure GOMEMLIMIT before significant allocations
	memory.ConfigureFromEnv()

	// Load configuration
	config, err := startup.LoadConfig()
	if err != nil {
		startup.LogFatal("Configuration error: %v", err)
	}

	if config.MetricsEnabled {
		metrics.InitializeMetrics(transcoder.Labels(transcoder.DefaultProfiles()))
		metrics.SetAppInfo(startup.Version, startup.Commit, startup.GoVersion)
	}

	// Initialize database
	dbStart := time.Now()
	db, err := database.New(context.Background(), config.DatabasePath)
	if err != nil {
		startup.LogFatal("Failed to initialize database: %v", err)
	}
	defer db.Close()
	startup.LogDatabaseInit(time.Since(dbStart))

	// Refresh connection-pool gauges periodically
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		for range ticker.C {
			db.UpdateDBMetrics()
		}
	}()

	// Initialize transcoder and thumbnail generator
	profiles := transcoder.DefaultProfiles()
	startup.LogTranscoderInit(profiles)
	trans := transcoder.New("", config.TranscodeTimeout)
	thumbs := thumbnail.New("", config.MediaDir)

	// Initialize transcode pipeline
	workerCount := workers.ForCPU(len(profiles) * 2)
	startup.LogPipelineInit(workerCount, config.QueueCapacity)

	jobQueue := queue.New(config.QueueCapacity)
	pool := pipeline.NewPool(db, trans, thumbs, jobQueue, pipeline.PoolConfig{
		Workers:   workerCount,
		MediaRoot: config.MediaDir,
		Profiles:  profiles,
	})

	poolCtx, poolCancel := context.WithCancel(context.Background())
	defer poolCancel()
	pool.Start(poolCtx)

	dispatcher := pipeline.NewDispatcher(jobQueue)

	// Initialize handlers and router
	h := handlers.New(db, dispatcher, jobQueue, config)
	router := h.Router()

	startup.LogHTTPRoutes(router, config.LogStaticFiles, config.LogHealthChecks)

	// Middleware chain: compression wraps logging wraps metrics
	loggingConfig := middleware.DefaultLoggingConfig()
	loggingConfig.LogStaticFiles = config.LogStaticFiles
	loggingConfig.LogHealthChecks = config.LogHealthChecks

	var handler http.Handler = router
	if config.MetricsEnabled {
		handler = middleware.Metrics(middleware.DefaultMetricsConfig())(handler)
	}
	handler = middleware.Logger(loggingConfig)(handler)
	handler = middleware.Compression(middleware.DefaultCompressionConfig())(handler)

	srv := &http.Server{
		Addr:         ":" + config.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	// Metrics server on its own port
	var metricsSrv *http.Server
	if config.MetricsEnabled {
		metricsMux := http.NewServeMux()
		metricsMux.Handle("/metrics", h.MetricsHandler())
		metricsSrv = &http.Server{
			Addr:        ":" + config.MetricsPort,
			Handler:     metricsMux,
			ReadTimeout: 15 * time.Second,
		}
		go func() {
			if err := metricsSrv.ListenAndServe(); err != http.ErrServerClosed {
				logging.Error("Metrics server error: %v", err)
			}
		}()
	}

	go handleShutdown(srv, metricsSrv, jobQueue)

	startup.LogServerStarted(startup.ServerConfig{
		Port:            config.Port,
		MetricsPort:     config.MetricsPort,
		MetricsEnabled:  config.MetricsEnabled,
		StartupDuration: time.Since(startTime),
	})
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		startup.LogFatal("Server error: %v", err)
	}

	// ListenAndServe returned after Shutdown; wait for in-flight jobs.
	pool.Wait()
	startup.LogShutdownComplete()
}

func handleShutdown(srv, metricsSrv *http.Server, jobQueue *queue.Queue) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	startup.LogShutdownInitiated(sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	startup.LogShutdownStep("Shutting down HTTP server")
	if err := srv.Shutdown(ctx); err != nil {
		logging.Warn("Server shutdown error: %v", err)
	} else {
		startup.LogShutdownStepComplete("HTTP server stopped")
	}

	if metricsSrv != nil {
		startup.LogShutdownStep("Shutting down metrics server")
		if err := metricsSrv.Shutdown(ctx); err != nil {
			logging.Warn("Metrics server shutdown error: %v", err)
		} else {
			startup.LogShutdownStepComplete("Metrics server stopped")
		}
	}

	// Closing the queue lets workers drain pending jobs and exit;
	// main waits on the pool after the server stops.
	startup.LogShutdownStep("Closing transcode queue")
	jobQueue.Close()
	startup.LogShutdownStepComplete("Transcode queue closed")
}
