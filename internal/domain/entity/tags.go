package entity

import "strings"

// Tags is a comma separated tag list as stored in the database.
type Tags string

// Split returns the trimmed, non-empty tags in their stored order.
func (t Tags) Split() []string {
	if strings.TrimSpace(string(t)) == "" {
		return []string{}
	}
	parts := strings.Split(string(t), ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// JoinTags builds the stored form from individual tags.
func JoinTags(tags []string) Tags {
	clean := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			clean = append(clean, tag)
		}
	}
	return Tags(strings.Join(clean, ", "))
}

// Normalize re-joins t so stray whitespace and empty entries disappear.
func (t Tags) Normalize() Tags {
	return JoinTags(t.Split())
}
