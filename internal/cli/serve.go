package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/bimalism/portal/internal/api"
	"github.com/bimalism/portal/internal/app/accounting"
	"github.com/bimalism/portal/internal/daemon"
	"github.com/bimalism/portal/internal/infra/sqlite"
	"github.com/bimalism/portal/internal/infra/store"
	"github.com/bimalism/portal/internal/logger"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the portal HTTP server",
	Long: `Start the portal: serves the education pages, the accounting API
used by the study timer, and (when enabled) Prometheus metrics. Shuts down
gracefully on SIGINT or SIGTERM.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := daemon.LoadConfig(configPath)
	if err != nil {
		return err
	}
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(cfg.Storage.DataFile)
	if err != nil {
		return err
	}

	var ledger *sqlite.DB
	if cfg.Ledger.Enabled {
		ledger, err = sqlite.Open(cfg.LedgerDir())
		if err != nil {
			return err
		}
		defer ledger.Close()
	}

	svc := accounting.NewService(st, ledger, log)

	pages, err := api.NewPageSet(cfg.Storage.PagesDir, cfg.Goal.TargetCoins, svc)
	if err != nil {
		return err
	}

	server := api.NewServer(svc, pages, log)
	if cfg.Metrics.Enabled {
		server.EnableMetrics()
	}

	srv := &http.Server{
		Addr:              cfg.API.Addr(),
		Handler:           server.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("portal starting",
			"addr", cfg.API.Addr(),
			"data_file", cfg.Storage.DataFile,
			"pages_dir", cfg.Storage.PagesDir)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
