package util

import (
	"net/http"
	"net/url"
	"strings"
)

// NewProxyFunc creates a proxy function for capability HTTP clients.
// Falls back to environment variables when no explicit proxy is set.
// Hosts listed in noProxy (comma-separated) bypass the proxy.
func NewProxyFunc(httpProxy, httpsProxy, noProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}

	bypass := splitHosts(noProxy)

	return func(req *http.Request) (*url.URL, error) {
		for _, host := range bypass {
			if host != "" && strings.HasSuffix(req.URL.Hostname(), host) {
				return nil, nil
			}
		}
		if req.URL.Scheme == "https" && httpsProxy != "" {
			return url.Parse(httpsProxy)
		}
		if httpProxy != "" {
			return url.Parse(httpProxy)
		}
		return http.ProxyFromEnvironment(req)
	}
}

func splitHosts(list string) []string {
	parts := strings.Split(list, ",")
	hosts := make([]string, 0, len(parts))
	for _, p := range parts {
		hosts = append(hosts, strings.TrimSpace(p))
	}
	return hosts
}
