// Copyright 2024 Factorial GmbH. All rights reserved.

// Package remap derives deterministic, content-addressed hostnames for
// requests. A rule hashes a request's host and path into a 64-bit digest
// and substitutes the request host with "<hex-digest>.<suffix>", so that
// requests for the same resource keep routing to the same downstream
// identity, i.e. for cache affinity behind a CDN-like proxy tier.
package remap

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/google/uuid"

	"remapd/internal/fnv64"
)

// Request is the narrow view of a request the transformer needs. The
// owning proxy decides what a host, a path and a host substitution mean
// for its request model.
type Request interface {
	// Host returns the request host. May be empty.
	Host() string
	// Path returns the request path. May be empty.
	Path() string
	// SetHost replaces the request host.
	SetHost(host string) error
}

var (
	// ErrNilRequest is reported when Apply is invoked without a rule or
	// without a request.
	ErrNilRequest = errors.New("remap: nil rule or request")

	// ErrBufferOverflow is reported when a formatted host exceeds the
	// capacity sized at rule construction. Unreachable for a 64-bit
	// digest, kept as a guard against sizing regressions.
	ErrBufferOverflow = errors.New("remap: formatted host exceeds sized capacity")
)

// hexWidth is the worst case width of a 64-bit digest in hex digits.
const hexWidth = 16

// Rule is the remap configuration of a single routing directive. Rules
// are immutable after construction and safe for concurrent use; the
// output buffer is scoped to each Apply invocation.
type Rule struct {
	// ID identifies the rule in diagnostics.
	ID string

	// From and To are the directive's routing tokens. The transformer
	// treats them as opaque, they belong to the surrounding rule syntax.
	From string
	To   string

	suffix string
	cap    int // worst case formatted length: hex digest + "." + suffix

	logger *slog.Logger
}

// NewRule builds a rule from the positional arguments of a remap
// directive: [from, to, suffix, ...]. Trailing arguments are accepted
// and ignored. A missing or empty suffix is a configuration error and
// activates no rule.
func NewRule(args []string) (*Rule, error) {
	if len(args) < 3 {
		return nil, fmt.Errorf("remap: want at least 3 arguments [from to suffix], got %d", len(args))
	}
	if args[2] == "" {
		return nil, errors.New("remap: suffix (third argument) must not be empty")
	}

	return &Rule{
		ID:     uuid.NewString(),
		From:   args[0],
		To:     args[1],
		suffix: args[2],
		cap:    hexWidth + 1 + len(args[2]),
		logger: slog.Default(),
	}, nil
}

// WithLogger routes the rule's diagnostics through l.
func (r *Rule) WithLogger(l *slog.Logger) *Rule {
	r.logger = l
	return r
}

// Suffix returns the fixed identity appended after the digest.
func (r *Rule) Suffix() string {
	return r.suffix
}

// Apply substitutes the request's host with the content-addressed host
// derived from its current host and path. It reports whether the host
// was changed. Failures are contained to the single request: the host is
// left untouched, a diagnostic is logged and the caller is expected to
// fall back to its default routing.
func (r *Rule) Apply(req Request) bool {
	if r == nil || req == nil {
		l := slog.Default()
		if r != nil && r.logger != nil {
			l = r.logger
		}
		l.Error("Remap skipped.", "error", ErrNilRequest)
		return false
	}

	host, path := req.Host(), req.Path()

	out, err := r.format(host, path)
	if err != nil {
		r.logger.Error("Remap failed formatting host.", "rule", r.ID, "error", err, "len", len(out), "cap", r.cap)
		return false
	}

	if err := req.SetHost(string(out)); err != nil {
		r.logger.Error("Remap failed substituting host.", "rule", r.ID, "error", err)
		return false
	}

	r.logger.Debug("Host changed.", "rule", r.ID, "from", host, "to", string(out))
	return true
}

// HostFor returns the substituted host for a host and path pair without
// touching a request. Useful for verifying routing out of band.
func (r *Rule) HostFor(host, path string) string {
	out, _ := r.format(host, path)
	return string(out)
}

// format renders "<hex-digest>.<suffix>". Host and path are hashed as
// one concatenation with no separator in between: host "www.example"
// with path "hello/world" hashes like the single string
// "www.examplehello/world". The digest prints in natural width
// lowercase hex, without padding.
func (r *Rule) format(host, path string) ([]byte, error) {
	digest := fnv64.ContinueString(fnv64.SumString(host), path)

	// The buffer lives for this invocation only. Rules are shared
	// between concurrently handled requests and must not carry mutable
	// scratch state.
	buf := make([]byte, 0, r.cap)
	buf = strconv.AppendUint(buf, digest, 16)
	buf = append(buf, '.')
	buf = append(buf, r.suffix...)

	if len(buf) > r.cap {
		return buf, ErrBufferOverflow
	}
	return buf, nil
}
