package pathutil

import (
	"net/http"
	"strconv"

	"prompt-library/internal/domain/entity"
)

// PathID parses the named path wildcard of r as a positive integer ID.
// The error is a validation error on the wildcard name.
func PathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, &entity.ValidationError{Field: name, Message: "must be a positive integer"}
	}
	return id, nil
}
