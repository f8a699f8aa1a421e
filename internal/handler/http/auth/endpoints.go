package auth

import "strings"

// PublicEndpoints are served without looking at the Authorization header.
//
// - /health, /ready, /live: orchestration probes
// - /metrics: Prometheus scraping
// - /auth/token, /auth/register: a caller has no token yet
var PublicEndpoints = []string{
	"/health",
	"/ready",
	"/live",
	"/metrics",
	"/auth/token",
	"/auth/register",
}

// AnonymousReadPaths may be read (GET or HEAD) without a token. A token, when
// sent, is still verified so that handlers can personalise the response.
var AnonymousReadPaths = []string{
	"/prompts",
	"/prompts/*",
	"/blog/posts",
	"/blog/posts/*",
	"/news/*",
	"/categories/*",
	"/home",
	"/site",
}

// IsPublicEndpoint checks if a given path is a public endpoint.
//
//	IsPublicEndpoint("/health")          // true
//	IsPublicEndpoint("/health/")         // true
//	IsPublicEndpoint("/health?x=1")      // true
//	IsPublicEndpoint("/health/detail")   // false
//	IsPublicEndpoint("/healthcheck")     // false
//	IsPublicEndpoint("/prompts")         // false
func IsPublicEndpoint(path string) bool {
	for _, endpoint := range PublicEndpoints {
		if path == endpoint || path == endpoint+"/" {
			return true
		}
		if strings.HasPrefix(path, endpoint+"?") {
			return true
		}
	}
	return false
}

// IsAnonymousRead reports whether method and path may be served without a token.
func IsAnonymousRead(method, path string) bool {
	if method != "GET" && method != "HEAD" {
		return false
	}
	return matchesPathPattern(path, AnonymousReadPaths)
}
