package domain

import "strconv"

// CallbackParams is the untrusted key-value view of an inbound gateway
// notification. Webhook bodies and return-redirect query strings are
// both flattened into this shape so the reconciliation core stays
// transport-agnostic.
type CallbackParams map[string]string

// Get returns the value for key, or "" when absent.
func (p CallbackParams) Get(key string) string {
	return p[key]
}

// Has reports whether key is present.
func (p CallbackParams) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// Int64 parses the value for key as a base-10 integer.
func (p CallbackParams) Int64(key string) (int64, bool) {
	v, ok := p[key]
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
