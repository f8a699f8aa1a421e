package middleware

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"strings"

	envconfig "prompt-library/pkg/config"
)

// IPExtractor resolves the client address a request is attributed to.
type IPExtractor interface {
	ExtractIP(r *http.Request) (string, error)
}

// RemoteAddrExtractor uses the TCP peer address. Headers are ignored.
type RemoteAddrExtractor struct{}

// ExtractIP strips the port from r.RemoteAddr.
func (RemoteAddrExtractor) ExtractIP(r *http.Request) (string, error) {
	return hostOf(r.RemoteAddr)
}

// TrustedProxyConfig lists the reverse proxies whose forwarding headers are believed.
type TrustedProxyConfig struct {
	Enabled bool
	Proxies []netip.Prefix
}

// IsTrusted reports whether remoteAddr falls inside one of the trusted prefixes.
func (c TrustedProxyConfig) IsTrusted(remoteAddr string) bool {
	host, err := hostOf(remoteAddr)
	if err != nil {
		return false
	}
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return false
	}
	for _, p := range c.Proxies {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// LoadTrustedProxyConfig reads TRUST_PROXY and TRUSTED_PROXIES.
// Single addresses are widened to a host prefix. Enabling trust without
// any proxy is a configuration error.
func LoadTrustedProxyConfig() (TrustedProxyConfig, error) {
	cfg := TrustedProxyConfig{Enabled: envconfig.GetEnvBool("TRUST_PROXY", false)}
	if !cfg.Enabled {
		return cfg, nil
	}

	for _, raw := range envconfig.GetEnvStringList("TRUSTED_PROXIES", nil) {
		p, err := parsePrefix(raw)
		if err != nil {
			return TrustedProxyConfig{}, err
		}
		cfg.Proxies = append(cfg.Proxies, p)
	}
	if len(cfg.Proxies) == 0 {
		return TrustedProxyConfig{}, fmt.Errorf("TRUST_PROXY is enabled but TRUSTED_PROXIES is empty")
	}
	return cfg, nil
}

func parsePrefix(s string) (netip.Prefix, error) {
	if p, err := netip.ParsePrefix(s); err == nil {
		return p.Masked(), nil
	}
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Prefix{}, fmt.Errorf("invalid proxy %q: want an IP address or CIDR", s)
	}
	return netip.PrefixFrom(addr, addr.BitLen()), nil
}

// TrustedProxyExtractor reads X-Forwarded-For, then X-Real-IP, but only
// when the peer is a trusted proxy. Otherwise it behaves like RemoteAddrExtractor.
type TrustedProxyExtractor struct {
	cfg TrustedProxyConfig
}

func NewTrustedProxyExtractor(cfg TrustedProxyConfig) *TrustedProxyExtractor {
	return &TrustedProxyExtractor{cfg: cfg}
}

func (e *TrustedProxyExtractor) ExtractIP(r *http.Request) (string, error) {
	if !e.cfg.Enabled {
		return hostOf(r.RemoteAddr)
	}

	xff := r.Header.Get("X-Forwarded-For")
	xri := r.Header.Get("X-Real-IP")
	if !e.cfg.IsTrusted(r.RemoteAddr) {
		if xff != "" || xri != "" {
			slog.Warn("forwarding headers from untrusted peer ignored",
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("x_forwarded_for", xff),
				slog.String("x_real_ip", xri))
		}
		return hostOf(r.RemoteAddr)
	}

	if first, _, _ := strings.Cut(xff, ","); first != "" {
		if addr, err := netip.ParseAddr(strings.TrimSpace(first)); err == nil {
			return addr.String(), nil
		}
	}
	if addr, err := netip.ParseAddr(strings.TrimSpace(xri)); err == nil {
		return addr.String(), nil
	}
	return hostOf(r.RemoteAddr)
}

// NewIPExtractor picks the extractor matching cfg.
func NewIPExtractor(cfg TrustedProxyConfig) IPExtractor {
	if cfg.Enabled {
		return NewTrustedProxyExtractor(cfg)
	}
	return RemoteAddrExtractor{}
}

// hostOf accepts "host:port", "[v6]:port" or a bare address.
func hostOf(addr string) (string, error) {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host, nil
	}
	a, err := netip.ParseAddr(strings.Trim(addr, "[]"))
	if err != nil {
		return "", fmt.Errorf("invalid address format: %s", addr)
	}
	return a.String(), nil
}
