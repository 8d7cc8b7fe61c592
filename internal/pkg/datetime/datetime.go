// Package datetime parses the loose date strings the gallery accepts from clients.
package datetime

import (
	"fmt"
	"strings"
	"time"
)

var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
	"2006-01",
	"2006",
}

// Parse accepts RFC 3339 and its shorter prefixes down to a bare year; the result is UTC
func Parse(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", v)
}

// ParsePtr parses an optional date; nil and blank give nil
func ParsePtr(v *string) (*time.Time, error) {
	if v == nil || strings.TrimSpace(*v) == "" {
		return nil, nil
	}
	t, err := Parse(*v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
