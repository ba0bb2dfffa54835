// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"github.com/jcodagnone/geocoder/spatial"
)

// OutputFormat selects the response serialization and the last path segment
// of the request URL.
type OutputFormat string

// Supported output formats.
const (
	FormatJSON OutputFormat = "json"
	FormatXML  OutputFormat = "xml"
)

// Valid reports whether f is one of the supported formats.
func (f OutputFormat) Valid() bool {
	return f == FormatJSON || f == FormatXML
}

// Query holds the parameters of a single geocoding request.
// Exactly one of Address or LatLng must be set.
type Query struct {
	// Address is free-form address text (forward geocoding).
	Address string

	// LatLng is the point to resolve (reverse geocoding).
	LatLng *spatial.LatLng

	// Bounds restricts results to a viewport: southwest, northeast.
	Bounds spatial.Bounds

	// Region is a ccTLD code used to bias results, e.g. "ca".
	Region string

	// Language of the returned results, e.g. "fr".
	Language string

	// Format of the response body.
	Format OutputFormat
}

// Validate checks the query preconditions.
func (q *Query) Validate() error {
	if (q.Address == "") == (q.LatLng == nil) {
		return invalid("", "exactly one of address or latlng required")
	}

	if !q.Format.Valid() {
		return invalid("output", "format must be json or xml, got "+quoteOrEmpty(string(q.Format)))
	}

	return nil
}

// Credentials identify a premium client. Requests are signed only when both
// fields are set.
type Credentials struct {
	ClientID string

	// SigningKey is the URL-safe base64 encoded secret.
	SigningKey string
}

func (c *Credentials) clientID() string {
	if c == nil {
		return ""
	}

	return c.ClientID
}

func (c *Credentials) canSign() bool {
	return c != nil && c.ClientID != "" && c.SigningKey != ""
}

func quoteOrEmpty(s string) string {
	if s == "" {
		return "<empty>"
	}

	return `"` + s + `"`
}
