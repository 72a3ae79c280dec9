// Copyright 2024 Factorial GmbH. All rights reserved.

package main

import (
	"context"
	"net/url"

	"github.com/redis/go-redis/v9"

	"remapd/internal/remap"
)

// RuleStore holds the active remap rules, indexed by the hostname of
// their "from" target. The memory implementation serves single instance
// deployments, the Redis implementation shares dynamically added rules
// between instances.
type RuleStore interface {
	SaveRule(context.Context, *remap.Rule) error

	// MatchRule returns the rule configured for the given request
	// hostname, if any.
	MatchRule(context.Context, string) (*remap.Rule, bool)

	AllRules(context.Context) ([]*remap.Rule, error)

	// DeleteRule tears down the rule indexed under the given hostname.
	// Deleting an absent rule is a no-op.
	DeleteRule(context.Context, string) error
}

func CreateRuleStore(redis *redis.Client) RuleStore {
	if redis != nil {
		return &RedisRuleStore{conn: redis}
	}
	return &MemoryRuleStore{
		rules: make(map[string]*remap.Rule),
	}
}

// SerializableRule is the wire form of a rule, used by the shared store
// and the rules API.
type SerializableRule struct {
	ID     string `json:"id,omitempty"`
	From   string `json:"from"`
	To     string `json:"to"`
	Suffix string `json:"suffix"`
}

func serializeRule(r *remap.Rule) SerializableRule {
	return SerializableRule{
		ID:     r.ID,
		From:   r.From,
		To:     r.To,
		Suffix: r.Suffix(),
	}
}

func ruleFromSerializable(s SerializableRule) (*remap.Rule, error) {
	rule, err := remap.NewRule([]string{s.From, s.To, s.Suffix})
	if err != nil {
		return nil, err
	}
	if s.ID != "" {
		// Keep the identity the rule was created under, diagnostics on
		// any instance should name the same rule.
		rule.ID = s.ID
	}
	return rule, nil
}

// ruleKey returns the hostname a rule is indexed under, derived from its
// "from" token. Bare hostnames are accepted alongside full URLs.
func ruleKey(r *remap.Rule) string {
	if u, err := url.Parse(r.From); err == nil && u.Host != "" {
		return u.Hostname()
	}
	return r.From
}
