// Package http holds shared outbound HTTP plumbing.
package http

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient returns a client for outbound API calls with explicit dial,
// TLS and idle limits. timeout bounds the whole request; http.DefaultClient
// has none.
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
