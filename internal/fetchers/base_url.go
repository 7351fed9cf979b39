package fetchers

import (
	"net"
	"strings"
)

// ResolveBaseURL picks the backend origin once at startup. An explicit
// override wins, a loopback dashboard host talks to the local backend and
// anything else goes to the remote one.
func ResolveBaseURL(dashboardHost, override, localBase, remoteBase string) string {
	if override != "" {
		return strings.TrimRight(override, "/")
	}
	if IsLoopbackHost(dashboardHost) {
		return strings.TrimRight(localBase, "/")
	}
	return strings.TrimRight(remoteBase, "/")
}

// IsLoopbackHost reports whether host (optionally with a port) is
// localhost or a loopback IP
func IsLoopbackHost(host string) bool {
	host = strings.TrimSpace(host)
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.Trim(host, "[]")
	if strings.EqualFold(host, "localhost") {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
