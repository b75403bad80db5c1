package netutil

import (
	"context"
	"net"
	"strings"
	"sync"
	"time"
)

// lookupTimeout caps a single reverse lookup. Filter passes run on every
// keystroke, so a slow DNS server must not stall the UI for longer than this
// once per address.
const lookupTimeout = time.Second

// CachingResolver resolves IP addresses to short hostnames, memoising both
// hits and misses for the life of the process. Safe for concurrent use.
type CachingResolver struct {
	mu    sync.Mutex
	cache map[string]string

	// lookupAddr is swappable in tests.
	lookupAddr func(ctx context.Context, addr string) ([]string, error)
}

// NewCachingResolver creates a resolver backed by the default net.Resolver.
func NewCachingResolver() *CachingResolver {
	return &CachingResolver{
		cache:      make(map[string]string),
		lookupAddr: net.DefaultResolver.LookupAddr,
	}
}

// ShortHostname returns the first DNS label of addr's reverse record, or ""
// when addr is not an IP, is a loopback address, or does not resolve. The
// addr may carry a port suffix as printed in processlist hosts.
func (r *CachingResolver) ShortHostname(addr string) string {
	ip := stripPort(addr)
	if net.ParseIP(ip) == nil {
		return ""
	}
	if net.ParseIP(ip).IsLoopback() {
		return ""
	}

	r.mu.Lock()
	if name, ok := r.cache[ip]; ok {
		r.mu.Unlock()
		return name
	}
	r.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()

	name := ""
	if names, err := r.lookupAddr(ctx, ip); err == nil && len(names) > 0 {
		name = shortLabel(names[0])
	}

	r.mu.Lock()
	r.cache[ip] = name
	r.mu.Unlock()
	return name
}

// stripPort removes a trailing :port from host:port strings while leaving
// bare IPv6 addresses intact.
func stripPort(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}

// shortLabel trims the trailing dot of a PTR record and keeps the first label.
func shortLabel(fqdn string) string {
	fqdn = strings.TrimSuffix(fqdn, ".")
	if i := strings.IndexByte(fqdn, '.'); i > 0 {
		return fqdn[:i]
	}
	return fqdn
}
