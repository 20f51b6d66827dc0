// Package main runs the fitcalc MCP server over stdio for local agent use.
// The same tools are mounted on the backend at /mcp over streamable HTTP.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/fitcalc/internal/calculators"
	fitcalcmcp "github.com/2beens/fitcalc/internal/mcp"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is set via ldflags at build time.
var Version = "dev"

func main() {
	logLevel := flag.String("log-level", "warn", "log level, logs go to stderr")
	flag.Parse()

	// stdout belongs to the protocol
	log.SetOutput(os.Stderr)
	if lvl, err := log.ParseLevel(*logLevel); err == nil {
		log.SetLevel(lvl)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := fitcalcmcp.NewServer(calculators.NewDefaultRegistry(), Version)
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatal(err)
	}
}
