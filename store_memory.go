// Copyright 2024 Factorial GmbH. All rights reserved.

package main

import (
	"context"
	"sync"

	"remapd/internal/remap"
)

type MemoryRuleStore struct {
	sync.RWMutex

	// rules maps a request hostname to its rule. Rules are immutable,
	// handing them out under RLock is safe.
	rules map[string]*remap.Rule
}

func (s *MemoryRuleStore) SaveRule(ctx context.Context, rule *remap.Rule) error {
	s.Lock()
	defer s.Unlock()

	s.rules[ruleKey(rule)] = rule
	return nil
}

func (s *MemoryRuleStore) MatchRule(ctx context.Context, host string) (*remap.Rule, bool) {
	s.RLock()
	defer s.RUnlock()

	rule, ok := s.rules[host]
	return rule, ok
}

func (s *MemoryRuleStore) AllRules(ctx context.Context) ([]*remap.Rule, error) {
	s.RLock()
	defer s.RUnlock()

	all := make([]*remap.Rule, 0, len(s.rules))
	for _, rule := range s.rules {
		all = append(all, rule)
	}
	return all, nil
}

func (s *MemoryRuleStore) DeleteRule(ctx context.Context, host string) error {
	s.Lock()
	defer s.Unlock()

	delete(s.rules, host)
	return nil
}
