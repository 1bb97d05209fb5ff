package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/pagerkit/pagerkit/internal/config"
	"github.com/pagerkit/pagerkit/internal/feed"
	"github.com/pagerkit/pagerkit/internal/log"
	"github.com/pagerkit/pagerkit/internal/tui/watch"
	"github.com/pagerkit/pagerkit/webhooks"
)

func runServe(args []string) int {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "pagerkit.yaml", "path to config file")
	fs.Parse(args)

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	log.Setup(cfg.LogLevel)

	f := feed.New(200)
	resource, err := buildResource(cfg, f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := serveHTTP(ctx, cfg, resource); err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func runWatch(args []string) int {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	configPath := fs.String("config", "pagerkit.yaml", "path to config file")
	fs.Parse(args)

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	// The TUI owns the terminal, so keep structured logs quiet.
	log.Setup("ERROR")

	f := feed.New(200)
	resource, err := buildResource(cfg, f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- serveHTTP(ctx, cfg, resource)
	}()

	if err := watch.Run(f); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	cancel()

	if err := <-serverErr; err != nil && err != context.Canceled {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// buildResource wires a webhook receiver that logs every payload type and
// publishes each delivery to the feed.
func buildResource(cfg *config.Config, f *feed.Feed) (*webhooks.Resource, error) {
	if len(cfg.Secrets) == 0 {
		return nil, fmt.Errorf("at least one webhook secret must be configured")
	}

	resource, err := webhooks.NewResource(cfg.Secrets...)
	if err != nil {
		return nil, err
	}
	resource.SetLogger(log.WithComponent("webhooks"))
	logger := log.WithComponent("deliveries")

	publish := func(meta *webhooks.Metadata, summary string) {
		f.Publish(feed.Delivery{
			Resource:   meta.ResourceType,
			EventType:  meta.EventType,
			Summary:    summary,
			OccurredAt: meta.OccurredAt,
		})
	}

	resource.OnPing(func(p *webhooks.Ping) {
		logger.Info("ping received", "message", p.Message)
		publish(p.Metadata, p.Message)
	})
	resource.OnIncident(func(incident *webhooks.Incident) {
		eventType, err := incident.EventType()
		if err != nil {
			logger.Warn("incident with unrecognized sub-event", "event_type", incident.Metadata.EventType)
		}
		logger.Info("incident "+eventType.String(),
			"number", incident.Number,
			"title", incident.Title,
			"status", incident.Status.String(),
			"service", incident.Service.Summary,
			"high_urgency", incident.HighUrgency(),
		)
		publish(incident.Metadata, fmt.Sprintf("#%d %s", incident.Number, incident.Title))
	})
	resource.OnIncidentNote(func(note *webhooks.IncidentNote) {
		logger.Info("incident note", "incident", note.Incident.Summary, "content", note.Content)
		publish(note.Metadata, note.Content)
	})
	resource.OnIncidentConferenceBridge(func(bridge *webhooks.IncidentConferenceBridge) {
		logger.Info("conference bridge updated", "incident", bridge.Incident.Summary, "url", bridge.ConferenceURL)
		publish(bridge.Metadata, bridge.ConferenceURL)
	})
	resource.OnIncidentFieldValues(func(fields *webhooks.IncidentFieldValues) {
		logger.Info("custom field values updated", "incident", fields.Incident.Summary, "changed", len(fields.ChangedCustomFields))
		publish(fields.Metadata, fmt.Sprintf("%d field(s) changed", len(fields.ChangedCustomFields)))
	})
	resource.OnIncidentStatusUpdate(func(update *webhooks.IncidentStatusUpdate) {
		logger.Info("status update published", "incident", update.Incident.Summary, "message", update.Message)
		publish(update.Metadata, update.Message)
	})
	resource.OnIncidentResponder(func(responder *webhooks.IncidentResponder) {
		logger.Info("responder "+responder.State, "incident", responder.Incident.Summary, "user", responder.User.Summary)
		publish(responder.Metadata, responder.User.Summary)
	})
	resource.OnIncidentWorkflowInstance(func(instance *webhooks.IncidentWorkflowInstance) {
		logger.Info("workflow instance", "summary", instance.Summary, "incident", instance.Incident.Summary)
		publish(instance.Metadata, instance.Summary)
	})
	resource.OnService(func(service *webhooks.Service) {
		logger.Info("service changed", "summary", service.Summary)
		publish(service.Metadata, service.Summary)
	})

	return resource, nil
}

// serveHTTP runs the webhook HTTP server until ctx is cancelled (blocking).
func serveHTTP(ctx context.Context, cfg *config.Config, resource *webhooks.Resource) error {
	logger := log.WithComponent("server")

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(requestLogger(logger))
	router.Use(middleware.Recoverer)
	// Handle, not Post: the resource answers non-POST methods itself with 405.
	router.Handle(cfg.Path, resource)

	server := &http.Server{
		Addr:         cfg.Listen,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("webhook server starting", "listen", cfg.Listen, "path", cfg.Path)

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("webhook server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("webhook server shutdown failed: %w", err)
		}
		return ctx.Err()
	case err := <-errCh:
		return fmt.Errorf("webhook server error: %w", err)
	}
}

// requestLogger logs HTTP requests (excludes request bodies).
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			logger.Info("webhook request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
				"remote_addr", r.RemoteAddr,
			)
		})
	}
}
