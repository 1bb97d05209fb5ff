package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/pagerkit/pagerkit/events"
	"github.com/pagerkit/pagerkit/internal/config"
	"github.com/pagerkit/pagerkit/internal/log"
)

func runSend(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Error: send requires an event kind: trigger, acknowledge, resolve, or change")
		return 1
	}
	kind := args[0]

	fs := flag.NewFlagSet("send "+kind, flag.ExitOnError)
	configPath := fs.String("config", "pagerkit.yaml", "path to config file")
	summary := fs.String("summary", "", "event summary text")
	severityName := fs.String("severity", "error", "alert severity: critical, error, warning, or info")
	source := fs.String("source", "", "affected system (defaults to this hostname)")
	dedupKey := fs.String("dedup-key", "", "deduplication key (generated for trigger if omitted)")
	component := fs.String("component", "", "affected component")
	group := fs.String("group", "", "logical grouping of components")
	class := fs.String("class", "", "event class or type")
	fs.Parse(args[1:])

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	log.Setup(cfg.LogLevel)

	if cfg.RoutingKey == "" {
		fmt.Fprintln(os.Stderr, "Error: routing_key must be configured to send events")
		return 1
	}

	client := events.NewClient(cfg.RoutingKey)
	defer client.Close()
	if cfg.BaseURL != "" {
		if err := client.SetBaseURL(cfg.BaseURL); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch kind {
	case "trigger":
		if *summary == "" {
			fmt.Fprintln(os.Stderr, "Error: --summary is required for trigger")
			return 1
		}
		severity, err := events.ParseSeverity(*severityName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		alert := events.NewTriggerAlert(severity, *summary)
		if *source != "" {
			alert.Source = *source
		}
		alert.DedupKey = *dedupKey
		if alert.DedupKey == "" {
			alert.DedupKey = uuid.NewString()
		}
		alert.Component = *component
		alert.Group = *group
		alert.Class = *class
		return sendAlert(ctx, client, alert)

	case "acknowledge":
		if *dedupKey == "" {
			fmt.Fprintln(os.Stderr, "Error: --dedup-key is required for acknowledge")
			return 1
		}
		return sendAlert(ctx, client, events.NewAcknowledgeAlert(*dedupKey))

	case "resolve":
		if *dedupKey == "" {
			fmt.Fprintln(os.Stderr, "Error: --dedup-key is required for resolve")
			return 1
		}
		return sendAlert(ctx, client, events.NewResolveAlert(*dedupKey))

	case "change":
		if *summary == "" {
			fmt.Fprintln(os.Stderr, "Error: --summary is required for change")
			return 1
		}
		change := events.NewChange(*summary)
		if *source != "" {
			change.Source = *source
		}
		resp, err := client.SendChange(ctx, change)
		if err != nil {
			return reportSendError(err)
		}
		fmt.Printf("Change accepted: %s\n", resp.Message)
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Error: unknown event kind %q (expected trigger, acknowledge, resolve, or change)\n", kind)
		return 1
	}
}

func sendAlert(ctx context.Context, client *events.Client, alert events.Alert) int {
	resp, err := client.SendAlert(ctx, alert)
	if err != nil {
		return reportSendError(err)
	}
	fmt.Printf("Alert accepted: %s (dedup key %s)\n", resp.Message, resp.DedupKey)
	return 0
}

func reportSendError(err error) int {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	var retryable events.Retryable
	if errors.As(err, &retryable) && retryable.RetryAllowedAfterDelay() {
		fmt.Fprintln(os.Stderr, "This failure is transient; retrying after a delay may succeed.")
	}
	return 1
}
