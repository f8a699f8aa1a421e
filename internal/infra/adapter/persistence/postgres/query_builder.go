package postgres

import (
	"fmt"
	"strings"
)

// whereBuilder accumulates AND-ed conditions with numbered placeholders so
// the same clause serves the COUNT and the SELECT of a listing.
type whereBuilder struct {
	conditions []string
	args       []any
}

// raw adds a condition without arguments.
func (w *whereBuilder) raw(cond string) *whereBuilder {
	w.conditions = append(w.conditions, cond)
	return w
}

// eq adds "col = $n".
func (w *whereBuilder) eq(col string, v any) *whereBuilder {
	w.args = append(w.args, v)
	w.conditions = append(w.conditions, fmt.Sprintf("%s = $%d", col, len(w.args)))
	return w
}

// contains adds a case-insensitive substring match over cols. A blank term
// adds nothing.
func (w *whereBuilder) contains(term string, cols ...string) *whereBuilder {
	term = strings.TrimSpace(term)
	if term == "" || len(cols) == 0 {
		return w
	}
	w.args = append(w.args, "%"+escapeLike(term)+"%")
	n := len(w.args)
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = fmt.Sprintf("%s ILIKE $%d", c, n)
	}
	w.conditions = append(w.conditions, "("+strings.Join(parts, " OR ")+")")
	return w
}

// clause returns "WHERE ..." or "" when no condition was added.
func (w *whereBuilder) clause() string {
	if len(w.conditions) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(w.conditions, " AND ")
}

// page appends LIMIT/OFFSET placeholders and returns them with all arguments.
func (w *whereBuilder) page(limit, offset int) (string, []any) {
	args := append(append([]any(nil), w.args...), limit, offset)
	return fmt.Sprintf("LIMIT $%d OFFSET $%d", len(args)-1, len(args)), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike escapes the ILIKE wildcards so user input matches literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
