package respond

import (
	"regexp"
)

var (
	// user:password@ in connection strings
	dbPasswordPattern = regexp.MustCompile(`://([^:/]+):([^@]+)@`)
	// compact JWS tokens
	jwtPattern = regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+\.[A-Za-z0-9_-]*`)
	// key=value secrets in driver messages
	secretParamPattern = regexp.MustCompile(`(?i)(password|secret)=([^\s&]+)`)
)

// SanitizeError returns err's message with credentials masked.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	msg = dbPasswordPattern.ReplaceAllString(msg, "://$1:****@")
	msg = jwtPattern.ReplaceAllString(msg, "****")
	msg = secretParamPattern.ReplaceAllString(msg, "$1=****")
	return msg
}
