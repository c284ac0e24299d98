package api

import (
	"net/url"
	"sort"
)

// Params are query parameters. Empty values are never sent.
type Params map[string]string

// Values converts p to url.Values, dropping empty values
func (p Params) Values() url.Values {
	v := url.Values{}
	for key, value := range p {
		if value != "" {
			v.Set(key, value)
		}
	}
	return v
}

// Encode returns the query string with keys in sorted order
func (p Params) Encode() string {
	return p.Values().Encode()
}

// Keys returns the keys with non-empty values, sorted
func (p Params) Keys() []string {
	keys := make([]string, 0, len(p))
	for key, value := range p {
		if value != "" {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}
