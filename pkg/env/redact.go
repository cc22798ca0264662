package env

import (
	"net/url"
	"strings"
)

var secretMarkers = []string{"password", "passwd", "secret", "token", "apikey", "api_key", "api-key", "credential"}

// Mask hides a value, showing only the first 4 and last 4 characters.
func Mask(value string) string {
	if len(value) <= 8 {
		return strings.Repeat("*", len(value))
	}
	return value[:4] + strings.Repeat("*", len(value)-8) + value[len(value)-4:]
}

// RedactURL masks the password of a URL with user info. Values that
// do not parse are returned unchanged.
func RedactURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	if u.User != nil {
		if password, ok := u.User.Password(); ok {
			u.User = url.UserPassword(u.User.Username(), Mask(password))
		}
	}
	return u.String()
}

// IsSecret reports whether key names a credential.
func IsSecret(key string) bool {
	k := strings.ToLower(key)
	for _, m := range secretMarkers {
		if strings.Contains(k, m) {
			return true
		}
	}
	return false
}

// Redact returns value in a form safe to print: secrets are masked
// and URL credentials are hidden.
func Redact(key, value string) string {
	if IsSecret(key) {
		return Mask(value)
	}
	if strings.Contains(value, "://") {
		return RedactURL(value)
	}
	return value
}
