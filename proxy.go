// Copyright 2024 Factorial GmbH. All rights reserved.

package main

import (
	"errors"
	"net"
	"net/http"
	"net/http/httputil"
	"net/url"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// urlRequest adapts an outgoing request URL to the remap.Request
// collaborator interface of the transformer. The host is read and
// written without the port, the port survives a substitution.
type urlRequest struct {
	u *url.URL
}

func (r urlRequest) Host() string { return r.u.Hostname() }
func (r urlRequest) Path() string { return r.u.Path }

func (r urlRequest) SetHost(host string) error {
	if host == "" {
		return errors.New("refusing to set an empty host")
	}
	if port := r.u.Port(); port != "" {
		r.u.Host = net.JoinHostPort(host, port)
	} else {
		r.u.Host = host
	}
	return nil
}

// setupProxy builds the traffic-facing handler. Requests with a rule for
// their hostname get their host substituted by the rule's transform and
// are forwarded upstream; when the transform reports no change the
// request falls back to the rule's "to" target, like the remap directive
// it was configured with. Hosts without a rule pass through unmodified.
func setupProxy(store RuleStore, upstream http.RoundTripper) http.Handler {
	proxy := &httputil.ReverseProxy{
		Transport: upstream,
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetXForwarded()

			// The inbound URL carries no scheme and host, fill them in
			// before handing the URL to the transform.
			pr.Out.URL.Scheme = "http"
			pr.Out.URL.Host = pr.In.Host

			rule, ok := store.MatchRule(pr.In.Context(), requestHostname(pr.In))
			if !ok {
				pr.Out.Host = pr.Out.URL.Host
				PromPassthroughTxns.Inc()
				return
			}

			// The rule's target decides the upstream scheme, for both
			// the remapped and the fallback route.
			to, terr := url.Parse(rule.To)
			if terr == nil && to.Scheme != "" {
				pr.Out.URL.Scheme = to.Scheme
			}

			if changed := rule.Apply(urlRequest{pr.Out.URL}); !changed {
				if terr == nil && to.Host != "" {
					pr.Out.URL.Host = to.Host
				}
				PromRemapFallbacks.Inc()
			} else {
				PromRemapTxns.Inc()
			}
			pr.Out.Host = pr.Out.URL.Host
		},
	}

	return otelhttp.NewHandler(proxy, "proxy_request")
}

// requestHostname returns the host of an incoming request without a
// possible port.
func requestHostname(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.Host); err == nil {
		return host
	}
	return r.Host
}
