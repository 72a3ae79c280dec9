// Copyright 2024 Factorial GmbH. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"remapd/internal/remap"
)

// rulesHashKey is the Redis hash all rules live in, keyed by request
// hostname.
const rulesHashKey = "remapd:rules"

type RedisRuleStore struct {
	conn *redis.Client
}

func (s *RedisRuleStore) SaveRule(ctx context.Context, rule *remap.Rule) error {
	b, err := json.Marshal(serializeRule(rule))
	if err != nil {
		return err
	}
	return s.conn.HSet(ctx, rulesHashKey, ruleKey(rule), string(b)).Err()
}

func (s *RedisRuleStore) MatchRule(ctx context.Context, host string) (*remap.Rule, bool) {
	reply := s.conn.HGet(ctx, rulesHashKey, host)
	if err := reply.Err(); err != nil {
		return nil, false
	}

	var sr SerializableRule
	if err := json.Unmarshal([]byte(reply.Val()), &sr); err != nil {
		return nil, false
	}

	rule, err := ruleFromSerializable(sr)
	if err != nil {
		return nil, false
	}
	return rule, true
}

func (s *RedisRuleStore) AllRules(ctx context.Context) ([]*remap.Rule, error) {
	reply := s.conn.HGetAll(ctx, rulesHashKey)
	if err := reply.Err(); err != nil {
		return nil, err
	}

	all := make([]*remap.Rule, 0, len(reply.Val()))
	for host, raw := range reply.Val() {
		var sr SerializableRule
		if err := json.Unmarshal([]byte(raw), &sr); err != nil {
			return nil, fmt.Errorf("corrupt rule for host %q: %w", host, err)
		}

		rule, err := ruleFromSerializable(sr)
		if err != nil {
			return nil, fmt.Errorf("corrupt rule for host %q: %w", host, err)
		}
		all = append(all, rule)
	}
	return all, nil
}

func (s *RedisRuleStore) DeleteRule(ctx context.Context, host string) error {
	return s.conn.HDel(ctx, rulesHashKey, host).Err()
}
