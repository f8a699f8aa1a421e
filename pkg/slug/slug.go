// Package slug converts display names into URL-safe identifiers and assigns
// identifiers that are unique within one collection.
//
// Normalization folds Latin diacritics to ASCII, lower-cases the text and
// replaces every run of characters outside [a-z0-9] with a single hyphen:
//
//	slug.Normalize("Café & Restaurant") // "cafe-restaurant"
//	slug.Normalize("Hello World!")      // "hello-world"
//
// Assign probes a collection through an injected existence check and appends
// an incrementing numeric suffix until it finds a free candidate:
//
//	s, err := slug.Assign(ctx, "My Post", repo.ExistsBySlug)
//	// "my-post", or "my-post-1" if "my-post" is taken, and so on.
//
// The probe and the eventual write are not atomic. Callers rely on a unique
// index in the store to reject the losing writer of a race.
package slug

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ExistsFunc reports whether candidate is already taken in the target collection.
type ExistsFunc func(ctx context.Context, candidate string) (bool, error)

// letters that NFKD does not decompose into base + combining mark
var foldReplacer = strings.NewReplacer(
	"ß", "ss", "ẞ", "ss",
	"æ", "ae", "Æ", "ae",
	"œ", "oe", "Œ", "oe",
	"ø", "o", "Ø", "o",
	"ł", "l", "Ł", "l",
	"đ", "d", "Đ", "d",
	"ð", "d", "Ð", "d",
	"þ", "th", "Þ", "th",
	"ı", "i",
)

// explicitPattern matches identifiers a caller may supply verbatim.
var explicitPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// Normalize returns the base token for s. The result only contains [a-z0-9-]
// and never starts or ends with a hyphen. It may be empty.
func Normalize(s string) string {
	s = foldReplacer.Replace(s)
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(t, s); err == nil {
		s = folded
	}
	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))
	gap := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if gap && b.Len() > 0 {
				b.WriteByte('-')
			}
			gap = false
			b.WriteRune(r)
			continue
		}
		gap = true
	}
	return b.String()
}

// Option configures Assign and Probe.
type Option func(*options)

type options struct {
	maxLength int
}

// MaxLength caps every candidate at n bytes, counter suffix included. The
// base is cut back to make room for the suffix and never ends in a hyphen.
// Zero means no limit.
func MaxLength(n int) Option {
	return func(o *options) {
		o.maxLength = max(0, n)
	}
}

// Assign normalizes displayName and returns the first candidate in
// base, base-1, base-2, ... for which exists returns false.
//
// An empty base is not an error: the candidates are "", "-1", "-2", ...
func Assign(ctx context.Context, displayName string, exists ExistsFunc, opts ...Option) (string, error) {
	return Probe(ctx, Normalize(displayName), exists, opts...)
}

// Probe runs the collision loop for an already normalized base.
func Probe(ctx context.Context, base string, exists ExistsFunc, opts ...Option) (string, error) {
	if exists == nil {
		return "", fmt.Errorf("slug: nil exists func")
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	candidate := fit(base, "", o.maxLength)
	for counter := 1; ; counter++ {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("probe slug %q: %w", base, err)
		}
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("probe slug %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fit(base, "-"+strconv.Itoa(counter), o.maxLength)
	}
}

// fit joins base and suffix, shortening base so the result stays within limit.
func fit(base, suffix string, limit int) string {
	if limit > 0 {
		if n := max(0, limit-len(suffix)); len(base) > n {
			base = strings.TrimRight(base[:n], "-")
		}
	}
	return base + suffix
}

// Valid reports whether s is acceptable as an explicitly supplied slug.
func Valid(s string) bool {
	return explicitPattern.MatchString(s)
}
