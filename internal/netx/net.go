// Package netx holds small HTTP helpers shared by the service client.
package netx

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
)

// ParseBaseURL validates an http(s) base URL and strips a trailing slash.
func ParseBaseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("base url %q: missing host", raw)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

// JoinURL appends an endpoint path to base.
func JoinURL(base *url.URL, endpoint string) string {
	u := *base
	u.Path = u.Path + "/" + strings.TrimLeft(endpoint, "/")
	return u.String()
}

// IsUnreachable reports transport failures where no HTTP response arrived:
// refused connections, DNS errors and timeouts. Context cancellation by the
// caller is not counted.
func IsUnreachable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	var ne net.Error
	if errors.As(err, &ne) {
		return true
	}
	var oe *net.OpError
	if errors.As(err, &oe) {
		return true
	}
	var de *net.DNSError
	return errors.As(err, &de)
}
