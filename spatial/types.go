// Copyright 2025 The ChapaUY Authors
//
// SPDX-License-Identifier: Apache-2.0
package spatial

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidLatLng is returned when a coordinate pair can't be parsed.
var ErrInvalidLatLng = errors.New("spatial: invalid lat,lng pair")

// LatLng represents a geographical point with exact decimal latitude and longitude.
type LatLng struct {
	Lat decimal.Decimal `json:"lat"`
	Lng decimal.Decimal `json:"lng"`
}

// NewLatLng builds a LatLng from decimal text, e.g. NewLatLng("43.6463685", "-79.3770610").
func NewLatLng(lat, lng string) (LatLng, error) {
	la, err := decimal.NewFromString(strings.TrimSpace(lat))
	if err != nil {
		return LatLng{}, fmt.Errorf("%w: latitude %q: %w", ErrInvalidLatLng, lat, err)
	}

	ln, err := decimal.NewFromString(strings.TrimSpace(lng))
	if err != nil {
		return LatLng{}, fmt.Errorf("%w: longitude %q: %w", ErrInvalidLatLng, lng, err)
	}

	return LatLng{Lat: la, Lng: ln}, nil
}

// MustLatLng is like NewLatLng but panics on error. Intended for tests and constants.
func MustLatLng(lat, lng string) LatLng {
	p, err := NewLatLng(lat, lng)
	if err != nil {
		panic(err)
	}

	return p
}

// ParseLatLng parses the "<lat>,<lng>" form.
func ParseLatLng(s string) (LatLng, error) {
	lat, lng, ok := strings.Cut(s, ",")
	if !ok {
		return LatLng{}, fmt.Errorf("%w: %q", ErrInvalidLatLng, s)
	}

	return NewLatLng(lat, lng)
}

// String returns the "<lat>,<lng>" form, keeping the precision the values were built with.
func (p LatLng) String() string {
	return FormatDecimal(p.Lat) + "," + FormatDecimal(p.Lng)
}

// Equal reports whether both coordinates are numerically equal.
func (p LatLng) Equal(other LatLng) bool {
	return p.Lat.Equal(other.Lat) && p.Lng.Equal(other.Lng)
}

// Bounds is a viewport given by its corners, southwest first.
type Bounds []LatLng

// ParseBounds parses corners separated by '|', e.g. "34.17,-118.60|34.23,-118.50".
func ParseBounds(s string) (Bounds, error) {
	parts := strings.Split(s, "|")
	b := make(Bounds, 0, len(parts))

	for _, part := range parts {
		p, err := ParseLatLng(part)
		if err != nil {
			return nil, err
		}

		b = append(b, p)
	}

	return b, nil
}

// String joins the corners with '|'.
func (b Bounds) String() string {
	parts := make([]string, len(b))
	for i, p := range b {
		parts[i] = p.String()
	}

	return strings.Join(parts, "|")
}

// FormatDecimal renders d without exponent notation. Trailing zeros carried
// by the value's exponent are kept, so "-79.3770610" stays "-79.3770610".
func FormatDecimal(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}

	return d.String()
}
