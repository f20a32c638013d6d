package cmd

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/subcommands"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.org/x/sync/errgroup"

	_ "github.com/epeers/fundboard/docs"
	"github.com/epeers/fundboard/internal/handlers"
)

type serveCmd struct {
	port string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "run the dashboard API server" }
func (*serveCmd) Usage() string {
	return `fundboard serve [-port <port>]

  Serves the dashboard Document, archive and PDF uploads, stored files,
  /metrics and /swagger until interrupted.
`
}

func (s *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&s.port, "port", "", "Port to listen on (defaults to PORT or 8080).")
}

func (s *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, cfg, closeStore, err := openService(ctx)
	if err != nil {
		log.Errorf("Failed to initialize: %v", err)
		return subcommands.ExitFailure
	}
	defer closeStore()

	port := cfg.Port
	if s.port != "" {
		port = s.port
	}
	if cfg.LogLevel < log.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	router := handlers.NewRouter(svc, handlers.RouterOptions{
		MaxUploadBytes:   cfg.MaxUploadBytes,
		UploadRatePerMin: cfg.UploadRatePerMin,
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.WithFields(log.Fields{"port": port, "store": cfg.StoreBackend}).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server...")

		// Give outstanding requests 5 seconds to complete
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Errorf("Server stopped: %v", err)
		return subcommands.ExitFailure
	}
	log.Info("Server exited")
	return subcommands.ExitSuccess
}
