package entity

import (
	"errors"
	"fmt"
	"net/url"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// maxURLLength defines the maximum allowed length for URLs to prevent DoS attacks.
const maxURLLength = 2048

// ValidateURL checks that rawURL is a well formed absolute http(s) URL.
// Stored URLs (images, avatars, websites) are only rendered as links, never
// fetched by the server.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return &ValidationError{Field: "url", Message: "URL is required"}
	}

	if len(rawURL) > maxURLLength {
		return &ValidationError{
			Field:   "url",
			Message: fmt.Sprintf("url must not exceed %d characters", maxURLLength),
		}
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return &ValidationError{Field: "url", Message: "invalid URL"}
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return &ValidationError{Field: "url", Message: "URL must use http or https scheme"}
	}

	if parsedURL.Host == "" {
		return &ValidationError{Field: "url", Message: "URL must have a valid host"}
	}

	return nil
}

// FromValidation converts an ozzo-validation result into a ValidationError
// for the first failing field, in field order when fields is given.
func FromValidation(err error, fields ...string) error {
	if err == nil {
		return nil
	}
	var errs validation.Errors
	if !errors.As(err, &errs) {
		var ie validation.InternalError
		if errors.As(err, &ie) {
			return fmt.Errorf("validate: %w", ie.InternalError())
		}
		return &ValidationError{Field: "input", Message: err.Error()}
	}
	for _, f := range fields {
		if fe, ok := errs[f]; ok && fe != nil {
			return &ValidationError{Field: f, Message: fe.Error()}
		}
	}
	for f, fe := range errs {
		if fe != nil {
			return &ValidationError{Field: f, Message: fe.Error()}
		}
	}
	return nil
}
