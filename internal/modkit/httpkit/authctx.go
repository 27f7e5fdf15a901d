package httpkit

import (
	"net/http"
	"strings"

	perrs "voicejury/internal/platform/errors"
	pnet "voicejury/internal/platform/net"
)

// Caller returns the authenticated caller id from the request context
func Caller(r *http.Request) (string, error) {
	id := pnet.UserID(r.Context())
	if id == "" {
		return "", perrs.Unauthorizedf("missing api key")
	}
	return id, nil
}

// MustCaller returns the authenticated caller id or panics
func MustCaller(r *http.Request) string {
	id, err := Caller(r)
	if err != nil {
		panic(err)
	}
	return id
}

// APIKey returns the raw x-api-key header value
func APIKey(r *http.Request) (string, error) {
	key := strings.TrimSpace(r.Header.Get(HeaderAPIKey))
	if key == "" {
		return "", perrs.Unauthorizedf("missing api key")
	}
	return key, nil
}

// MustAPIKey returns the raw api key or panics
// only use on routes protected by the auth middleware
func MustAPIKey(r *http.Request) string {
	key, err := APIKey(r)
	if err != nil {
		panic(err)
	}
	return key
}
