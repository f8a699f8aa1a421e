package auth

import (
	"slices"
	"strings"

	"prompt-library/internal/domain/entity"
)

// Roles carried in the token's role claim.
const (
	// RoleAdmin is a staff account. It may use every endpoint, /admin included.
	RoleAdmin = entity.RoleAdmin
	// RoleMember is a registered user.
	RoleMember = entity.RoleMember
)

// Permission defines the allowed operations for a role.
type Permission struct {
	// AllowedMethods specifies which HTTP methods this role can use
	AllowedMethods []string

	// AllowedPaths specifies which URL paths this role can access.
	// "/*" matches all paths, "/prompts/*" matches /prompts and everything below it.
	AllowedPaths []string
}

// RolePermissions maps each role to its allowed permissions.
//
// Members reach their own content, bookmarks, comments and profile. Whether a
// member may edit a particular record is decided by the use case, which
// compares the record's author with the caller. /admin is staff only.
var RolePermissions = map[string]Permission{
	RoleAdmin: {
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowedPaths:   []string{"/*"},
	},
	RoleMember: {
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedPaths: []string{
			"/prompts/*",
			"/blog/*",
			"/news/*",
			"/categories/*",
			"/users/*",
			"/me/*",
			"/home",
			"/site",
		},
	},
}

// checkRolePermission checks if a role has permission for a method and path.
// Returns false if the role doesn't exist or lacks permission.
//
//	checkRolePermission("admin", "POST", "/admin/categories/blog")  // true
//	checkRolePermission("member", "POST", "/prompts")               // true
//	checkRolePermission("member", "GET", "/admin/news/articles")    // false
//	checkRolePermission("member", "PATCH", "/prompts/x")            // false (method not allowed)
//	checkRolePermission("", "GET", "/prompts")                      // false
func checkRolePermission(role, method, path string) bool {
	if role == "" {
		return false
	}

	perm, exists := RolePermissions[role]
	if !exists {
		return false
	}

	if !slices.Contains(perm.AllowedMethods, method) {
		return false
	}

	return matchesPathPattern(path, perm.AllowedPaths)
}

// matchesPathPattern checks if a path matches any of the allowed patterns.
//
//	patterns := []string{"/prompts/*", "/site"}
//	matchesPathPattern("/prompts", patterns)                 // true
//	matchesPathPattern("/prompts/my-post/bookmark", patterns) // true
//	matchesPathPattern("/site", patterns)                    // true
//	matchesPathPattern("/site/x", patterns)                  // false
//	matchesPathPattern("/promptsx", patterns)                // false
func matchesPathPattern(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if pattern == "/*" {
			return true
		}

		// "/prompts/*" matches "/prompts" and anything under "/prompts/"
		if strings.HasSuffix(pattern, "/*") {
			prefix := strings.TrimSuffix(pattern, "/*")
			if path == prefix || strings.HasPrefix(path, prefix+"/") {
				return true
			}
			continue
		}

		if path == pattern {
			return true
		}
	}
	return false
}
