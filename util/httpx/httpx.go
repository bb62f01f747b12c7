// Package httpx holds the shared HTTP client used for OpenLibrary lookups
// and by the API client package.
package httpx

import (
	"net"
	"net/http"
	"time"
)

// OpenLibrary search is slow on cold queries, so the overall timeout is
// generous while the dial stays short. Per-host connections are capped low:
// traffic goes to a small fixed set of hosts.
var defaultClient = &http.Client{
	Timeout: 15 * time.Second,
	Transport: &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout: 5 * time.Second,
		MaxIdleConns:        50,
		MaxConnsPerHost:     20,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	},
}

func Client() *http.Client { return defaultClient }
