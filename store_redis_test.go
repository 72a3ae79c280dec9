// Copyright 2024 Factorial GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"remapd/internal/remap"
)

func TestRedisStoreMatchRule(t *testing.T) {
	ctx := context.Background()

	server := miniredis.RunT(t)
	t.Cleanup(server.Close)

	conn := redis.NewClient(&redis.Options{
		Addr: server.Addr(),
	})
	defer conn.Close()

	s := &RedisRuleStore{conn}

	rule, err := remap.NewRule([]string{"http://www.example/", "http://fallback.example/", "tlmc.isp.example"})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SaveRule(ctx, rule); err != nil {
		t.Fatal(err)
	}

	got, ok := s.MatchRule(ctx, "www.example")
	if !ok {
		t.Fatal("rule not found")
	}
	if got.ID != rule.ID {
		t.Errorf("expected rule to keep its identity, got %s", got.ID)
	}
	if got.Suffix() != "tlmc.isp.example" {
		t.Errorf("unexpected suffix: %s", got.Suffix())
	}

	// A rule loaded from the shared store must route identically.
	if a, b := got.HostFor("www.example", "/"), rule.HostFor("www.example", "/"); a != b {
		t.Errorf("shared rule routes differently: %q != %q", a, b)
	}
}

func TestRedisStoreAllAndDelete(t *testing.T) {
	ctx := context.Background()

	server := miniredis.RunT(t)
	t.Cleanup(server.Close)

	conn := redis.NewClient(&redis.Options{
		Addr: server.Addr(),
	})
	defer conn.Close()

	s := &RedisRuleStore{conn}

	rule, err := remap.NewRule([]string{"http://www.example/", "http://fallback.example/", "tlmc.isp.example"})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SaveRule(ctx, rule); err != nil {
		t.Fatal(err)
	}

	all, err := s.AllRules(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(all))
	}

	if err := s.DeleteRule(ctx, "www.example"); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.MatchRule(ctx, "www.example"); ok {
		t.Error("expected rule to be gone after delete")
	}
}
