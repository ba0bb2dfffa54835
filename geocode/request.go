// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"net/url"
	"strconv"
	"strings"
)

// DefaultServiceRoot is the geocoding endpoint without the output format segment.
const DefaultServiceRoot = "http://maps.googleapis.com/maps/api/geocode"

// RequestBuilder turns queries into transport-ready URLs. It holds no mutable
// state and is safe for concurrent use.
type RequestBuilder struct {
	serviceRoot string
}

// NewRequestBuilder creates a builder for serviceRoot. An empty root selects
// DefaultServiceRoot.
func NewRequestBuilder(serviceRoot string) *RequestBuilder {
	if serviceRoot == "" {
		serviceRoot = DefaultServiceRoot
	}

	return &RequestBuilder{serviceRoot: strings.TrimRight(serviceRoot, "/")}
}

// ServiceRoot returns the endpoint the builder targets.
func (b *RequestBuilder) ServiceRoot() string {
	return b.serviceRoot
}

// Build validates q and returns the request URL, signed when creds carries
// both a client id and a signing key.
//
// Parameters are always emitted in the same order: address, sensor, latlng,
// bounds, region, language, client. Free text is UTF-8 percent-encoded
// (spaces as '+'); coordinates are written verbatim as "<lat>,<lng>" with
// viewport corners joined by '|'.
func (b *RequestBuilder) Build(q Query, creds *Credentials, sensor bool) (string, error) {
	if err := q.Validate(); err != nil {
		return "", err
	}

	params := make([]string, 0, 7)

	if q.Address != "" {
		params = append(params, "address="+url.QueryEscape(q.Address))
	}

	params = append(params, "sensor="+strconv.FormatBool(sensor))

	if q.LatLng != nil {
		params = append(params, "latlng="+q.LatLng.String())
	}

	if len(q.Bounds) > 0 {
		params = append(params, "bounds="+q.Bounds.String())
	}

	if q.Region != "" {
		params = append(params, "region="+url.QueryEscape(q.Region))
	}

	if q.Language != "" {
		params = append(params, "language="+url.QueryEscape(q.Language))
	}

	if id := creds.clientID(); id != "" {
		params = append(params, "client="+url.QueryEscape(id))
	}

	req := b.serviceRoot + "/" + string(q.Format) + "?" + strings.Join(params, "&")

	return Sign(req, creds)
}
