// Package headers parses the extraHeaders input: one "Name: value" pair per
// line, added to every request sent to Vault.
package headers

import (
	"net/http"
	"strings"
)

// Map holds header values keyed by lower-cased header name.
type Map map[string]string

// Parse never fails. Lines without a ":" are skipped and a name given more
// than once keeps its last value.
func Parse(raw string) Map {
	m := Map{}
	if raw == "" {
		return m
	}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		m[strings.ToLower(strings.TrimSpace(name))] = strings.TrimSpace(value)
	}

	return m
}

// Apply sets every header in m on h.
func (m Map) Apply(h http.Header) {
	for name, value := range m {
		h.Set(name, value)
	}
}
