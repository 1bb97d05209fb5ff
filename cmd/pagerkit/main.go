// Command pagerkit is a PagerDuty toolbox: a Webhooks v3 receiver daemon, a
// live terminal viewer for received deliveries, and a one-shot Events API v2
// submitter.
package main

import (
	"fmt"
	"os"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "serve":
		os.Exit(runServe(args))
	case "watch":
		os.Exit(runWatch(args))
	case "send":
		os.Exit(runSend(args))
	case "version":
		fmt.Printf("pagerkit version %s\n", version)
		os.Exit(0)
	case "help", "--help", "-h":
		printUsage()
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`pagerkit - PagerDuty events client and webhook receiver

Usage:
  pagerkit serve --config <file>     Run the webhook receiver daemon
  pagerkit watch --config <file>     Run the receiver with a live terminal UI
  pagerkit send <kind> [flags]       Send an event to the Events API v2
  pagerkit version                   Print the version
  pagerkit help                      Show this help

Send kinds:
  trigger      --summary <text> [--severity critical|error|warning|info]
               [--source <name>] [--dedup-key <key>] [--component <name>]
               [--group <name>] [--class <name>]
  acknowledge  --dedup-key <key>
  resolve      --dedup-key <key>
  change       --summary <text> [--source <name>]

All subcommands read --config (default pagerkit.yaml). Secrets and the
routing key may reference environment variables with ${VAR} syntax.
`)
}
