package serve

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"aihub/internal/api/server"
	"aihub/internal/app"
)

var (
	host string
	port string
)

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Starts the HTTP API on the configured address. Local engines are
loaded at startup when their inference server is configured; a failed
load is logged and the capability stays cloud-only until fixed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, cleanup, err := app.InitializeApp()
		if err != nil {
			return err
		}
		defer cleanup()
		defer application.Engines.UnloadAll()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		loadEngines(ctx, application)

		config := server.DefaultConfig()
		config.Host = host
		config.Port = port
		if !application.Config.Development {
			config.Environment = "production"
		}

		logLevel := slog.LevelInfo
		if application.Config.Development {
			logLevel = slog.LevelDebug
		}
		logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))

		srv := server.NewServer(config, application.Resolver, application.Detector,
			application.Store, application.Metrics, application.PromRegistry, logger)

		errCh := make(chan error, 1)
		go func() { errCh <- srv.Start() }()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

// loadEngines warms up every configured local engine. Failures are not
// fatal; the provider reports not-configured until a reload succeeds.
func loadEngines(ctx context.Context, application *app.App) {
	logger := application.Logger

	if e := application.Engines.Transcription; e != nil {
		if err := e.Load(ctx); err != nil {
			logger.Warn("transcription engine failed to load", zap.Error(err))
		}
	}
	if e := application.Engines.Embedding; e != nil {
		if err := e.Load(ctx); err != nil {
			logger.Warn("embedding engine failed to load", zap.Error(err))
		}
	}
	if e := application.Engines.Generation; e != nil {
		if err := e.Load(ctx); err != nil {
			logger.Warn("generation engine failed to load", zap.Error(err))
		}
	}
}

func init() {
	Cmd.Flags().StringVar(&host, "host", "127.0.0.1", "address to bind")
	Cmd.Flags().StringVarP(&port, "port", "p", "8480", "port to listen on")
}
