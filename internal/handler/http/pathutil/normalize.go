// Package pathutil maps request paths to route templates for metric labels
// and parses numeric path wildcards.
package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern pairs a compiled route regexp with its label template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

const seg = `[^/]+`

// pathPatterns covers every route with a slug, username or ID wildcard.
var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/prompts/` + seg + `$`), Template: "/prompts/:slug"},
	{Pattern: regexp.MustCompile(`^/prompts/` + seg + `/bookmark$`), Template: "/prompts/:slug/bookmark"},

	{Pattern: regexp.MustCompile(`^/blog/posts/` + seg + `$`), Template: "/blog/posts/:slug"},
	{Pattern: regexp.MustCompile(`^/blog/posts/` + seg + `/comments$`), Template: "/blog/posts/:slug/comments"},
	{Pattern: regexp.MustCompile(`^/admin/comments/\d+$`), Template: "/admin/comments/:id"},

	{Pattern: regexp.MustCompile(`^/news/articles/` + seg + `$`), Template: "/news/articles/:slug"},
	{Pattern: regexp.MustCompile(`^/news/categories/` + seg + `/articles$`), Template: "/news/categories/:slug/articles"},
	{Pattern: regexp.MustCompile(`^/admin/news/articles/` + seg + `$`), Template: "/admin/news/articles/:slug"},

	{Pattern: regexp.MustCompile(`^/categories/` + seg + `$`), Template: "/categories/:kind"},
	{Pattern: regexp.MustCompile(`^/categories/` + seg + `/` + seg + `$`), Template: "/categories/:kind/:slug"},
	{Pattern: regexp.MustCompile(`^/admin/categories/` + seg + `$`), Template: "/admin/categories/:kind"},
	{Pattern: regexp.MustCompile(`^/admin/categories/` + seg + `/` + seg + `$`), Template: "/admin/categories/:kind/:slug"},

	{Pattern: regexp.MustCompile(`^/users/` + seg + `$`), Template: "/users/:username"},
}

// NormalizePath returns the route template for path so metric labels stay bounded.
// Query strings and a trailing slash are ignored; unknown paths come back unchanged.
//
//	NormalizePath("/prompts/essay-outline")     // "/prompts/:slug"
//	NormalizePath("/prompts/essay-outline/")    // "/prompts/:slug"
//	NormalizePath("/news/articles/x?page=2")    // "/news/articles/:slug"
//	NormalizePath("/health")                    // "/health"
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}
	return path
}

// GetExpectedCardinality estimates the number of distinct path labels.
func GetExpectedCardinality() int {
	const staticCount = 16 // /prompts, /home, /site, /health, /auth/token, /me/*, ...
	return len(pathPatterns) + staticCount
}
