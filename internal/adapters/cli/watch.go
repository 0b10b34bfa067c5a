package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/andrescamacho/starlane-supply/internal/adapters/metrics"
	"github.com/andrescamacho/starlane-supply/internal/infrastructure/pidfile"
)

func newSupplyWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch FILE",
		Short: "Re-import a galaxy file and recompute supply whenever it changes",
		Long: `Watch a YAML galaxy file. Every change is imported as the next turn and supply
is recomputed for it. Only one watcher may run per PID file.

When metrics are enabled they are served while the watcher runs.

Example:
  starlane-supply supply watch galaxy.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			pid := pidfile.New(a.cfg.Watch.PIDFile)
			if err := pid.Acquire(); err != nil {
				return err
			}
			defer pid.Release()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if a.cfg.Metrics.Enabled {
				srv := startMetricsServer(a)
				defer func() {
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					_ = srv.Shutdown(shutdownCtx)
				}()
			}

			out := cmd.OutOrStdout()
			formatter := NewReportFormatter()
			path := args[0]

			w := &galaxyWatcher{
				path:     path,
				debounce: a.cfg.Watch.Debounce,
				limiter:  rate.NewLimiter(rate.Every(a.cfg.Watch.MinInterval), 1),
				logger:   a.logger,
				reload: func(ctx context.Context) error {
					imported, err := importGalaxyFile(ctx, a, path, 0)
					if err != nil {
						return err
					}
					updated, err := updateSupply(ctx, a, imported.Turn)
					if err != nil {
						return err
					}
					fmt.Fprint(out, formatter.FormatUpdate(updated))
					return nil
				},
			}

			a.logger.Info("watching galaxy file", "path", path, "pid_file", pid.Path())
			return w.Run(ctx)
		},
	}

	return cmd
}

func startMetricsServer(a *app) *http.Server {
	mux := http.NewServeMux()
	mux.Handle(a.cfg.Metrics.Path, metrics.Handler())

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", a.cfg.Metrics.Host, a.cfg.Metrics.Port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("metrics server failed", "error", err)
		}
	}()
	a.logger.Info("serving metrics", "addr", srv.Addr, "path", a.cfg.Metrics.Path)
	return srv
}

// galaxyWatcher calls reload once at start and again after every settled change to path
type galaxyWatcher struct {
	path     string
	debounce time.Duration
	limiter  *rate.Limiter
	logger   *slog.Logger
	reload   func(ctx context.Context) error
}

// Run blocks until ctx is cancelled. Reload failures are logged and do not stop the watcher.
func (w *galaxyWatcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	target, err := filepath.Abs(w.path)
	if err != nil {
		return err
	}
	// Editors replace files on save, so watch the directory instead of the file.
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(target), err)
	}

	trigger := make(chan struct{}, 1)
	fire := func() {
		select {
		case trigger <- struct{}{}:
		default:
		}
	}
	fire()

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !w.isRelevantChange(event, target) {
				continue
			}
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(w.debounce, fire)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)

		case <-trigger:
			if err := w.limiter.Wait(ctx); err != nil {
				return nil
			}
			if _, err := os.Stat(target); err != nil {
				w.logger.Debug("galaxy file not present", "path", target)
				continue
			}
			if err := w.reload(ctx); err != nil {
				w.logger.Error("reload failed", "path", target, "error", err)
			}
		}
	}
}

func (w *galaxyWatcher) isRelevantChange(event fsnotify.Event, target string) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	name, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return name == target
}
