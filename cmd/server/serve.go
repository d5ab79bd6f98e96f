package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/gdg-garage/registration-api/internal/config"
	"github.com/gdg-garage/registration-api/internal/database"
	"github.com/gdg-garage/registration-api/internal/handlers"
	"github.com/gdg-garage/registration-api/internal/metrics"
	"github.com/gdg-garage/registration-api/internal/notifier"
	"github.com/gdg-garage/registration-api/internal/store"
	"github.com/gdg-garage/registration-api/internal/tracing"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("port", "", "API listen port")
	serveCmd.Flags().String("metrics-addr", "", "metrics listen address, empty disables")
	_ = viper.BindPFlag("PORT", serveCmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("METRICS_ADDR", serveCmd.Flags().Lookup("metrics-addr"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tp, err := tracing.NewProvider(ctx, tracing.Config{
		Exporter:     cfg.TracingExporter,
		OTLPEndpoint: cfg.OTLPEndpoint,
	})
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	m := metrics.New()

	dispatcher, err := newDispatcher(ctx, cfg, m)
	if err != nil {
		return err
	}

	var registrations store.Store = store.NewGormStore(db, store.WithTimeout(cfg.DBTimeout))
	if cfg.CardCacheTTL > 0 {
		registrations = store.NewCached(registrations, cfg.CardCacheTTL)
	}

	handler := handlers.NewRegistrationHandler(registrations, dispatcher, m)
	router := handlers.NewRouter(handler, handlers.RouterOptions{ExposeDocs: cfg.ExposeDocs})

	servers := []*http.Server{{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}}
	if cfg.MetricsAddr != "" {
		servers = append(servers, &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           m.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		})
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, srv := range servers {
		g.Go(func() error {
			slog.Info("listening", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("listen on %s: %w", srv.Addr, err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		var errs []error
		for _, srv := range servers {
			errs = append(errs, srv.Shutdown(shutdownCtx))
		}
		dispatcher.Wait()
		errs = append(errs, tp.Shutdown(shutdownCtx))
		return errors.Join(errs...)
	})

	return g.Wait()
}

// newDispatcher registers a sink for every notification target configured.
func newDispatcher(ctx context.Context, cfg *config.Config, m *metrics.Metrics) (*notifier.Dispatcher, error) {
	d := notifier.NewDispatcher(cfg.NotifyTimeout, m)

	switch {
	case cfg.DiscordWebhookURL != "":
		n, err := notifier.NewDiscordWebhookNotifier(cfg.DiscordWebhookURL)
		if err != nil {
			return nil, fmt.Errorf("discord webhook: %w", err)
		}
		d.Register("discord", n)
	case cfg.DiscordBotToken != "" && cfg.DiscordNotificationsChannelID != "":
		session, err := discordgo.New("Bot " + cfg.DiscordBotToken)
		if err != nil {
			return nil, fmt.Errorf("discord session: %w", err)
		}
		d.Register("discord", notifier.NewDiscordNotifier(session, cfg.DiscordNotificationsChannelID))
	}

	client, err := database.ConnectRedis(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if client != nil {
		d.Register("redis", notifier.NewRedisNotifier(client, cfg.RedisChannel))
	}

	if len(d.Sinks()) == 0 {
		slog.Warn("no notification sinks configured")
	} else {
		slog.Info("notification sinks configured", "sinks", d.Sinks())
	}

	return d, nil
}
