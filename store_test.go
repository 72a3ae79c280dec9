// Copyright 2024 Factorial GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"testing"

	"remapd/internal/remap"
)

func TestMemoryStoreMatchRule(t *testing.T) {
	ctx := context.Background()
	s := CreateRuleStore(nil)

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
		t.Errorf("unexpected rule ID: %s", got.ID)
	}

	if _, ok := s.MatchRule(ctx, "other.example"); ok {
		t.Error("expected no rule for unconfigured host")
	}
}

func TestMemoryStoreDeleteRule(t *testing.T) {
	ctx := context.Background()
	s := CreateRuleStore(nil)

	rule, err := remap.NewRule([]string{"http://www.example/", "http://fallback.example/", "tlmc.isp.example"})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SaveRule(ctx, rule); err != nil {
		t.Fatal(err)
	}

	if err := s.DeleteRule(ctx, "www.example"); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.MatchRule(ctx, "www.example"); ok {
		t.Error("expected rule to be gone after delete")
	}

	// Deleting an absent rule is a no-op.
	if err := s.DeleteRule(ctx, "www.example"); err != nil {
		t.Errorf("unexpected error deleting absent rule: %v", err)
	}
}

func TestMemoryStoreAllRules(t *testing.T) {
	ctx := context.Background()
	s := CreateRuleStore(nil)

	for _, from := range []string{"http://a.example/", "http://b.example/"} {
		rule, err := remap.NewRule([]string{from, "http://fallback.example/", "s"})
		if err != nil {
			t.Fatal(err)
		}
		if err := s.SaveRule(ctx, rule); err != nil {
			t.Fatal(err)
		}
	}

	all, err := s.AllRules(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 rules, got %d", len(all))
	}
}
