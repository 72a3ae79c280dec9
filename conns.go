// Copyright 2024 Factorial GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/kos-v/dsnparser"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
)

// maybeRedis connects to Redis when REMAPD_REDIS_DSN is set. Without it
// the service runs with the in-memory rule store only.
func maybeRedis(ctx context.Context) (*redis.Client, error) {
	rawdsn, ok := os.LookupEnv("REMAPD_REDIS_DSN")
	if !ok || rawdsn == "" {
		return nil, nil
	}
	slog.Debug("Connecting to Redis...", "dsn", rawdsn)

	dsn := dsnparser.Parse(rawdsn)
	database, _ := strconv.Atoi(dsn.GetPath())

	client, err := backoff.RetryNotifyWithData(
		func() (*redis.Client, error) {
			client := redis.NewClient(&redis.Options{
				Addr:     fmt.Sprintf("%s:%s", dsn.GetHost(), dsn.GetPort()),
				Password: dsn.GetPassword(),
				DB:       database,
			})
			_, err := client.Ping(ctx).Result()
			return client, err
		},
		backoff.WithContext(backoff.NewExponentialBackOff(), ctx),
		func(err error, t time.Duration) {
			slog.Info("Retrying redis connection.", "error", err)
		},
	)

	if err != nil {
		return nil, fmt.Errorf("ultimately failed retrying redis connection: %w", err)
	}
	slog.Debug("Connection to Redis established :)")

	if UseTracing {
		if err := redisotel.InstrumentTracing(client); err != nil {
			return client, err
		}
	}
	if UseMetrics {
		if err := redisotel.InstrumentMetrics(client); err != nil {
			return client, err
		}
	}
	return client, nil
}

// CreateUpstreamTransport returns the RoundTripper forwarded requests go
// out through. Transient upstream failures are retried with exponential
// backoff before the client sees an error.
func CreateUpstreamTransport() http.RoundTripper {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 2
	rc.HTTPClient.Timeout = UpstreamTimeout
	rc.Logger = nil // We do our own slog-based logging.

	return &retryablehttp.RoundTripper{Client: rc}
}
