// Package httpkit provides tiny HTTP helpers and adapters
package httpkit

import (
	"net/http"
	"strings"

	perrs "voicejury/internal/platform/errors"
)

// HeaderAPIKey carries the caller's credential on every protected request
const HeaderAPIKey = "x-api-key"

// KeyFunc validates an API key and returns the caller id it belongs to
type KeyFunc func(key string) (callerID string, err error)

// Port implements middleware.AuthPort by reading x-api-key and delegating to a KeyFunc
type Port struct {
	lookup KeyFunc
}

// NewPortFunc builds a Port from a simple key lookup function
func NewPortFunc(fn KeyFunc) *Port {
	return &Port{lookup: fn}
}

// Parse extracts the caller id from the x-api-key header
// returns unauthorized when the header is missing, blank, or the lookup rejects the key
// the second return stays empty, the detection API has no tenant scope
func (p *Port) Parse(r *http.Request) (string, string, error) {
	key := strings.TrimSpace(r.Header.Get(HeaderAPIKey))
	if key == "" {
		return "", "", perrs.Unauthorizedf("missing api key")
	}

	if p.lookup == nil {
		return "", "", perrs.Unauthorizedf("invalid api key")
	}

	caller, err := p.lookup(key)
	if err != nil {
		return "", "", perrs.Unauthorizedf("invalid api key")
	}
	return caller, "", nil
}
