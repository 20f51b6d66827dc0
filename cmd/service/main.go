package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/2beens/fitcalc/internal"
	"github.com/2beens/fitcalc/internal/config"
	"github.com/2beens/fitcalc/internal/logging"
	"github.com/2beens/fitcalc/pkg"

	log "github.com/sirupsen/logrus"
)

func main() {
	fmt.Println("starting ...")

	env := flag.String("env", "development", "environment [prod | production | dev | development | ddev | dockerdev ]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	flag.Parse()

	log.Warnf("---->> running in [%s] environment", *env)

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		panic(err)
	}

	if cfg.LogsPath != "" {
		logsDir := filepath.Dir(cfg.LogsPath)
		logsDirExists, err := pkg.PathExists(logsDir, true)
		if err != nil {
			panic(fmt.Errorf("check logs dir: %w", err))
		}
		if !logsDirExists {
			fmt.Printf("logs dir [%s] not found, logging to stdout only\n", logsDir)
			cfg.LogsPath = ""
			cfg.LogToStdout = true
		}
	}

	sentryDSN := os.Getenv("SENTRY_DSN")
	logging.Setup(logging.LoggerSetupParams{
		LogFileName:      cfg.LogsPath,
		LogToStdout:      cfg.LogToStdout,
		LogLevel:         cfg.LogLevel,
		LogFormatJSON:    cfg.LogFormatJSON,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryEnabled,
		SentryDSN:        sentryDSN,
		SentryServerName: "fitcalc-service",
	})

	log.Debugf("using port: %d", cfg.Port)
	log.Debugf("using server logs path: [%s]", cfg.LogsPath)
	log.Debugf("public base url: [%s]", cfg.BaseURL)

	ipInfoToken := os.Getenv("FITCALC_IPINFO_TOKEN")
	if ipInfoToken == "" {
		log.Warnln("ipinfo token not set, unit system detection will use the anonymous quota. use FITCALC_IPINFO_TOKEN")
	}

	versionInfo, err := tryGetLastCommitHash()
	if err != nil {
		log.Tracef("failed to get last commit hash / version info: %s", err)
	} else {
		log.Tracef("running version: %s", versionInfo)
	}

	redisPassword := os.Getenv("FITCALC_REDIS_PASS")
	if redisPassword == "" {
		log.Errorf("redis password not set. use FITCALC_REDIS_PASS")
	}

	postgresPassword := os.Getenv("FITCALC_POSTGRES_PASS")
	if postgresPassword == "" {
		log.Warnln("postgres password not set. use FITCALC_POSTGRES_PASS")
	}

	metricsUsername := os.Getenv("FITCALC_METRICS_USERNAME")
	metricsPasswordHash := os.Getenv("FITCALC_METRICS_PASSWORD_HASH")
	if metricsUsername == "" || metricsPasswordHash == "" {
		log.Warnln("metrics basic auth disabled. use FITCALC_METRICS_USERNAME and FITCALC_METRICS_PASSWORD_HASH")
		metricsUsername = ""
	}

	if otelServiceName := os.Getenv("OTEL_SERVICE_NAME"); otelServiceName == "" {
		log.Warnln("OTEL_SERVICE_NAME env var not set")
	}

	honeycombEnabled := os.Getenv("HONEYCOMB_ENABLED") == "true"
	if honeycombEnabled {
		if honeycombApiKey := os.Getenv("HONEYCOMB_API_KEY"); honeycombApiKey == "" {
			log.Warnln("HONEYCOMB_API_KEY env var not set")
		}
	} else {
		log.Debugln("honeycomb tracing disabled")
	}

	chOsInterrupt := make(chan os.Signal, 1)
	signal.Notify(chOsInterrupt, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	server, err := internal.NewServer(
		ctx,
		internal.NewServerParams{
			Config:                  cfg,
			VersionInfo:             versionInfo,
			IpInfoToken:             ipInfoToken,
			RedisPassword:           redisPassword,
			PostgresPassword:        postgresPassword,
			MetricsUsername:         metricsUsername,
			MetricsPasswordHash:     metricsPasswordHash,
			HoneycombTracingEnabled: honeycombEnabled,
		},
	)
	if err != nil {
		log.Fatalf("new server: %s", err)
	}

	server.Serve(cfg.Host, cfg.Port)

	receivedSig := <-chOsInterrupt
	log.Warnf("signal [%s] received, killing everything ...", receivedSig)
	cancel()

	// go to sleep 🥱
	server.GracefulShutdown()
}

// tryGetLastCommitHash will try to get the last commit hash
// assumes that the built main executable is in project root
func tryGetLastCommitHash() (string, error) {
	cmd := exec.Command("/usr/bin/git", "rev-parse", "HEAD")
	stdout, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(pkg.BytesToString(stdout)), nil
}
