// Copyright 2024 Factorial GmbH. All rights reserved.

// remapd fronts a cache tier and routes each request to a deterministic,
// content-derived hostname, so that requests for the same resource keep
// hitting the same cache identity.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"
)

func main() {
	slog.Info("remapd starting...")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	configure()

	if UseTracing || UseMetrics {
		shutdown, err := setupOTelSDK(ctx)
		if err != nil {
			slog.Error("Failed to setup telemetry.", "error", err)
			os.Exit(1)
		}
		defer shutdown(context.Background())
	}

	redisconn, err := maybeRedis(ctx)
	if err != nil {
		slog.Error("Failed to establish redis connection.", "error", err)
		os.Exit(1)
	}

	store := CreateRuleStore(redisconn)

	// Seed the store from static configuration before accepting traffic.
	if RulesPath != "" {
		rules, err := ReadRulesFromFile(RulesPath)
		if err != nil {
			slog.Error("Failed to load rules file.", "file", RulesPath, "error", err)
			os.Exit(1)
		}
		for _, rule := range rules {
			if err := store.SaveRule(ctx, rule); err != nil {
				slog.Error("Failed to activate rule.", "rule", rule.ID, "error", err)
				os.Exit(1)
			}
		}
		slog.Info("Loaded remap rules.", "file", RulesPath, "count", len(rules))
	}
	if v := GetEnvString("REMAPD_RULES", ""); v != "" {
		rules, err := ReadRulesFromEnv(v)
		if err != nil {
			slog.Error("Failed to parse REMAPD_RULES.", "error", err)
			os.Exit(1)
		}
		for _, rule := range rules {
			if err := store.SaveRule(ctx, rule); err != nil {
				slog.Error("Failed to activate rule.", "rule", rule.ID, "error", err)
				os.Exit(1)
			}
		}
		slog.Info("Loaded remap rules from environment.", "count", len(rules))
	}

	proxysrv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", ListenHost, ListenPort),
		Handler: setupProxy(store, CreateUpstreamTransport()),
	}
	opssrv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", ListenHost, OpsListenPort),
		Handler: setupRoutes(store),
	}

	go func() {
		slog.Info("Starting proxy listener...", "addr", proxysrv.Addr)
		if err := proxysrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Proxy listener failed.", "error", err)
			stop()
		}
	}()
	go func() {
		slog.Info("Starting ops listener...", "addr", opssrv.Addr)
		if err := opssrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Ops listener failed.", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Exiting...")
	stop()

	tctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	proxysrv.Shutdown(tctx)
	opssrv.Shutdown(tctx)

	if redisconn != nil {
		redisconn.Close()
	}
}
