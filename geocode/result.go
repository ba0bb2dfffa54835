// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"encoding/json"
	"fmt"
	"iter"

	"github.com/jcodagnone/geocoder/spatial"
	"github.com/shopspring/decimal"
)

// Service status codes.
const (
	StatusOK             = "OK"
	StatusZeroResults    = "ZERO_RESULTS"
	StatusOverQueryLimit = "OVER_QUERY_LIMIT"
	StatusRequestDenied  = "REQUEST_DENIED"
	StatusInvalidRequest = "INVALID_REQUEST"
	StatusUnknownError   = "UNKNOWN_ERROR"
)

// Location types, from most to least precise.
const (
	LocationRooftop           = "ROOFTOP"
	LocationRangeInterpolated = "RANGE_INTERPOLATED"
	LocationGeometricCenter   = "GEOMETRIC_CENTER"
	LocationApproximate       = "APPROXIMATE"
)

// ResultView is a read-only view over a decoded geocoding response.
// Result entries are read lazily: only the presence of "status" and
// "results" is checked up front.
type ResultView struct {
	status  string
	results []any
}

// NewResultView wraps a decoded document (see DecodeJSON and DecodeXML).
func NewResultView(doc any) (*ResultView, error) {
	m, ok := doc.(map[string]any)
	if !ok {
		return nil, malformed("", "expecting an object with 'status' and 'results' keys, got %T", doc)
	}

	rawStatus, hasStatus := m["status"]
	rawResults, hasResults := m["results"]

	if !hasStatus || !hasResults {
		return nil, malformed("", "expecting an object with 'status' and 'results' keys")
	}

	status, ok := rawStatus.(string)
	if !ok {
		return nil, malformed("status", "expecting string, got %T", rawStatus)
	}

	results, ok := rawResults.([]any)
	if !ok {
		return nil, malformed("results", "expecting array, got %T", rawResults)
	}

	return &ResultView{status: status, results: results}, nil
}

// Status returns the service status code, e.g. "OK" or "ZERO_RESULTS".
func (r *ResultView) Status() string {
	return r.status
}

// IsSuccess reports whether the service status is "OK".
func (r *ResultView) IsSuccess() bool {
	return r.status == StatusOK
}

// Len returns the number of results.
func (r *ResultView) Len() int {
	return len(r.results)
}

// At returns the result at index i. Negative indices count from the end,
// so At(-1) is the last result.
func (r *ResultView) At(i int) (Result, error) {
	n := len(r.results)

	j := i
	if j < 0 {
		j += n
	}

	if j < 0 || j >= n {
		return Result{}, &IndexError{Index: i, Len: n}
	}

	return Result{index: j, data: r.results[j]}, nil
}

// All yields the results in document order.
func (r *ResultView) All() iter.Seq2[int, Result] {
	return func(yield func(int, Result) bool) {
		for i, data := range r.results {
			if !yield(i, Result{index: i, data: data}) {
				return
			}
		}
	}
}

// FormattedAddress returns the formatted address of result i.
func (r *ResultView) FormattedAddress(i int) (string, error) {
	res, err := r.At(i)
	if err != nil {
		return "", err
	}

	return res.FormattedAddress()
}

// Location returns the coordinates of result i as exact decimals.
func (r *ResultView) Location(i int) (spatial.LatLng, error) {
	res, err := r.At(i)
	if err != nil {
		return spatial.LatLng{}, err
	}

	return res.Location()
}

// LocationType returns the location precision class of result i.
func (r *ResultView) LocationType(i int) (string, error) {
	res, err := r.At(i)
	if err != nil {
		return "", err
	}

	return res.LocationType()
}

// AddressComponent returns the first component of result i tagged with
// componentType. The boolean is false when no component matches.
func (r *ResultView) AddressComponent(componentType string, i int, preferLongName bool) (string, bool, error) {
	res, err := r.At(i)
	if err != nil {
		return "", false, err
	}

	return res.AddressComponent(componentType, preferLongName)
}

// AddressComponents returns every component of result i tagged with
// componentType, in document order. The slice is empty, never nil, when
// nothing matches.
func (r *ResultView) AddressComponents(componentType string, i int, preferLongName bool) ([]string, error) {
	res, err := r.At(i)
	if err != nil {
		return nil, err
	}

	return res.AddressComponents(componentType, preferLongName)
}

// Result is a view of one entry of a ResultView.
type Result struct {
	index int
	data  any
}

func (r Result) path(keys ...string) string {
	p := fmt.Sprintf("results[%d]", r.index)
	for _, k := range keys {
		p += "." + k
	}

	return p
}

// lookup walks nested objects following keys.
func (r Result) lookup(keys ...string) (any, error) {
	v := r.data

	for i, k := range keys {
		m, ok := v.(map[string]any)
		if !ok {
			return nil, malformed(r.path(keys[:i]...), "expecting object, got %T", v)
		}

		if v, ok = m[k]; !ok {
			return nil, malformed(r.path(keys[:i+1]...), "missing key")
		}
	}

	return v, nil
}

func (r Result) lookupString(keys ...string) (string, error) {
	v, err := r.lookup(keys...)
	if err != nil {
		return "", err
	}

	s, ok := v.(string)
	if !ok {
		return "", malformed(r.path(keys...), "expecting string, got %T", v)
	}

	return s, nil
}

func (r Result) lookupDecimal(keys ...string) (decimal.Decimal, error) {
	v, err := r.lookup(keys...)
	if err != nil {
		return decimal.Decimal{}, err
	}

	var text string

	switch n := v.(type) {
	case json.Number:
		text = n.String()
	case string:
		text = n
	default:
		return decimal.Decimal{}, malformed(r.path(keys...), "expecting number, got %T", v)
	}

	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Decimal{}, &MalformedResponseError{Path: r.path(keys...), Message: "not a decimal number", Err: err}
	}

	return d, nil
}

// FormattedAddress returns the human-readable address.
func (r Result) FormattedAddress() (string, error) {
	return r.lookupString("formatted_address")
}

// PlaceID returns the service's place identifier.
func (r Result) PlaceID() (string, error) {
	return r.lookupString("place_id")
}

// Types returns the feature types of the result, e.g. "street_address".
func (r Result) Types() ([]string, error) {
	v, err := r.lookup("types")
	if err != nil {
		return nil, err
	}

	return stringList(v, r.path("types"))
}

// Location returns the result coordinates as exact decimals.
func (r Result) Location() (spatial.LatLng, error) {
	lat, err := r.lookupDecimal("geometry", "location", "lat")
	if err != nil {
		return spatial.LatLng{}, err
	}

	lng, err := r.lookupDecimal("geometry", "location", "lng")
	if err != nil {
		return spatial.LatLng{}, err
	}

	return spatial.LatLng{Lat: lat, Lng: lng}, nil
}

// LocationType returns the precision class of Location, e.g. "ROOFTOP".
func (r Result) LocationType() (string, error) {
	return r.lookupString("geometry", "location_type")
}

// AddressComponent returns the short (or long) name of the first address
// component tagged with componentType. The boolean is false when none is.
func (r Result) AddressComponent(componentType string, preferLongName bool) (string, bool, error) {
	var (
		name  string
		found bool
	)

	err := r.eachComponent(componentType, preferLongName, func(n string) bool {
		name, found = n, true

		return false
	})

	return name, found, err
}

// AddressComponents returns the short (or long) names of all address
// components tagged with componentType, in document order.
func (r Result) AddressComponents(componentType string, preferLongName bool) ([]string, error) {
	names := []string{}

	err := r.eachComponent(componentType, preferLongName, func(n string) bool {
		names = append(names, n)

		return true
	})
	if err != nil {
		return nil, err
	}

	return names, nil
}

// eachComponent calls fn with the selected name of every matching component
// until fn returns false.
func (r Result) eachComponent(componentType string, preferLongName bool, fn func(string) bool) error {
	key := "short_name"
	if preferLongName {
		key = "long_name"
	}

	v, err := r.lookup("address_components")
	if err != nil {
		return err
	}

	components, ok := v.([]any)
	if !ok {
		return malformed(r.path("address_components"), "expecting array, got %T", v)
	}

	for i, c := range components {
		comp := Result{index: r.index, data: c}
		prefix := fmt.Sprintf("address_components[%d]", i)

		rawTypes, err := comp.lookup("types")
		if err != nil {
			return rebase(err, r.path(prefix, "types"))
		}

		types, err := stringList(rawTypes, r.path(prefix, "types"))
		if err != nil {
			return err
		}

		for _, t := range types {
			if t != componentType {
				continue
			}

			name, err := comp.lookupString(key)
			if err != nil {
				return rebase(err, r.path(prefix, key))
			}

			if !fn(name) {
				return nil
			}
		}
	}

	return nil
}

func stringList(v any, path string) ([]string, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, malformed(path, "expecting array, got %T", v)
	}

	out := make([]string, len(items))

	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, malformed(fmt.Sprintf("%s[%d]", path, i), "expecting string, got %T", item)
		}

		out[i] = s
	}

	return out, nil
}

// rebase rewrites the path of a malformed error raised on a nested view.
func rebase(err error, path string) error {
	if m, ok := err.(*MalformedResponseError); ok {
		return &MalformedResponseError{Path: path, Message: m.Message, Err: m.Err}
	}

	return err
}
