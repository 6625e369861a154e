// Package util holds small shared HTTP helpers.
package util

import (
	"net/http"
	"net/url"
)

// NewProxyFunc builds the transport proxy function from configuration.
// Explicit proxy URLs win; otherwise the standard proxy environment
// variables apply.
func NewProxyFunc(httpProxy, httpsProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}

	return func(req *http.Request) (*url.URL, error) {
		if req.URL.Scheme == "https" && httpsProxy != "" {
			return url.Parse(httpsProxy)
		}
		if httpProxy != "" {
			return url.Parse(httpProxy)
		}
		return http.ProxyFromEnvironment(req)
	}
}
