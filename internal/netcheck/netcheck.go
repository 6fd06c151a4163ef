package netcheck

import (
	"context"
	"net"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/http/httpproxy"

	"github.com/empiricaly/create-empirica-app/internal/runtime"
)

// DefaultTimeout bounds a probe when the caller sets none.
const DefaultTimeout = 5 * time.Second

// Resolver looks up host names. *net.Resolver satisfies it.
type Resolver interface {
	LookupHost(ctx context.Context, host string) ([]string, error)
}

// Prober checks registry reachability by name resolution.
type Prober struct {
	Resolver Resolver
	// Proxy returns the configured HTTPS proxy URL, or "" for none.
	Proxy   func(ctx context.Context) string
	Timeout time.Duration
}

// NewProber returns a Prober using the system resolver and the proxy found
// in the environment or, failing that, in npm's configuration.
func NewProber(runner runtime.Runner, timeout time.Duration) *Prober {
	return &Prober{
		Resolver: net.DefaultResolver,
		Proxy: func(ctx context.Context) string {
			if p := ProxyFromEnvironment(); p != "" {
				return p
			}
			return NPMProxy(ctx, runner)
		},
		Timeout: timeout,
	}
}

// IsReachable reports whether host, or the proxy when host does not resolve,
// can be resolved. Each lookup and the proxy query get their own timeout
// so a hung registry lookup cannot starve the proxy fallback. It never
// returns an error.
func (p *Prober) IsReachable(ctx context.Context, host string) bool {
	if p.resolves(ctx, host) {
		return true
	}
	if p.Proxy == nil {
		return false
	}

	proxyHost := ProxyHost(p.proxy(ctx))
	if proxyHost == "" {
		return false
	}
	return p.resolves(ctx, proxyHost)
}

func (p *Prober) timeout() time.Duration {
	if p.Timeout <= 0 {
		return DefaultTimeout
	}
	return p.Timeout
}

func (p *Prober) proxy(ctx context.Context) string {
	ctx, cancel := context.WithTimeout(ctx, p.timeout())
	defer cancel()
	return p.Proxy(ctx)
}

func (p *Prober) resolves(ctx context.Context, host string) bool {
	if host == "" {
		return false
	}
	r := p.Resolver
	if r == nil {
		r = net.DefaultResolver
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout())
	defer cancel()
	addrs, err := r.LookupHost(ctx, host)
	return err == nil && len(addrs) > 0
}

// ProxyFromEnvironment returns HTTPS_PROXY (or https_proxy), or "".
func ProxyFromEnvironment() string {
	return normalizeProxy(httpproxy.FromEnvironment().HTTPSProxy)
}

// NPMProxy returns npm's https-proxy setting, or "" when unset or npm is
// unavailable.
func NPMProxy(ctx context.Context, runner runtime.Runner) string {
	if runner == nil {
		return ""
	}
	res, err := runner.Run(ctx, "npm", []string{"config", "get", "https-proxy"}, runtime.RunOpts{})
	if err != nil || res.ExitCode != 0 {
		return ""
	}
	return normalizeProxy(res.Stdout)
}

func normalizeProxy(v string) string {
	v = strings.TrimSpace(v)
	switch v {
	case "", "null", "undefined":
		return ""
	}
	return v
}

// ProxyHost extracts the host name from a proxy URL. Scheme-less values such
// as "proxy.local:3128" are accepted.
func ProxyHost(proxy string) string {
	proxy = normalizeProxy(proxy)
	if proxy == "" {
		return ""
	}
	if !strings.Contains(proxy, "://") {
		proxy = "http://" + proxy
	}
	u, err := url.Parse(proxy)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
