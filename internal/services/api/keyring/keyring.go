// Package keyring holds the API keys the detection endpoints accept.
// Keys come from config as a CSV; each entry is either "caller:key" or
// a bare key attributed to the default caller
package keyring

import (
	"crypto/subtle"
	"errors"
	"strings"

	"voicejury/internal/platform/config"
)

// ErrUnknownKey is returned when no configured key matches
var ErrUnknownKey = errors.New("keyring: unknown api key")

// DefaultCaller labels bare keys with no caller prefix
const DefaultCaller = "default"

// Ring maps API keys to caller ids
type Ring struct {
	keys map[string]string // key -> caller id
}

// FromConfig reads KEYS from the given config scope, so the api
// service resolves CORE_API_KEYS
func FromConfig(cfg config.Conf) *Ring {
	return New(cfg.MayCSV("KEYS", nil))
}

// New builds a Ring from raw CSV entries
func New(entries []string) *Ring {
	r := &Ring{keys: make(map[string]string, len(entries))}
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		caller, key := DefaultCaller, e
		if i := strings.IndexByte(e, ':'); i > 0 {
			caller, key = e[:i], e[i+1:]
		}
		if key == "" {
			continue
		}
		r.keys[key] = caller
	}
	return r
}

// Empty reports whether no keys are configured
func (r *Ring) Empty() bool { return len(r.keys) == 0 }

// Lookup returns the caller id for a presented key. Comparison is
// constant time per configured key
func (r *Ring) Lookup(key string) (string, error) {
	for k, caller := range r.keys {
		if len(k) == len(key) && subtle.ConstantTimeCompare([]byte(k), []byte(key)) == 1 {
			return caller, nil
		}
	}
	return "", ErrUnknownKey
}
