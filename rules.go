// Copyright 2024 Factorial GmbH. All rights reserved.

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"remapd/internal/remap"
)

// ReadRules parses remap rules in the remap.config line syntax of the
// cache proxy tier this service fronts:
//
//	map http://www.example/ http://fallback.isp.example/ tlmc.isp.example
//
// Blank lines and lines starting with "#" are skipped. Tokens after the
// suffix are accepted and passed through to the rule untouched.
func ReadRules(r io.Reader) ([]*remap.Rule, error) {
	var rules []*remap.Rule

	scanner := bufio.NewScanner(r)
	no := 0

	for scanner.Scan() {
		no++

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if fields[0] != "map" {
			return nil, fmt.Errorf("rules line %d: unsupported directive %q", no, fields[0])
		}

		rule, err := remap.NewRule(fields[1:])
		if err != nil {
			return nil, fmt.Errorf("rules line %d: %w", no, err)
		}
		rules = append(rules, rule)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return rules, nil
}

// ReadRulesFromFile reads rules from a file at path.
func ReadRulesFromFile(path string) ([]*remap.Rule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadRules(f)
}

// ReadRulesFromEnv parses the inline variant carried by the REMAPD_RULES
// environment variable, where ";" may be used in place of newlines.
func ReadRulesFromEnv(v string) ([]*remap.Rule, error) {
	return ReadRules(strings.NewReader(strings.ReplaceAll(v, ";", "\n")))
}
