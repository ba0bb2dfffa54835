// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/jcodagnone/geocoder/spatial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testClientID   = "clientID"
	testSigningKey = "vNIXE0xscrmjlyV-12Nj_BvUPaw="
)

func testCredentials() *Credentials {
	return &Credentials{ClientID: testClientID, SigningKey: testSigningKey}
}

func pointer[T any](v T) *T {
	return &v
}

func TestBuild(t *testing.T) {
	bounds, err := spatial.ParseBounds("34.172684,-118.604794|34.236144,-118.500938")
	require.NoError(t, err)

	tests := []struct {
		name     string
		query    Query
		creds    *Credentials
		sensor   bool
		expected string
	}{
		{
			name:     "address only",
			query:    Query{Address: "New York", Format: FormatJSON},
			expected: "http://maps.googleapis.com/maps/api/geocode/json?address=New+York&sensor=false",
		},
		{
			name:     "signed address",
			query:    Query{Address: "New York", Format: FormatJSON},
			creds:    testCredentials(),
			expected: "http://maps.googleapis.com/maps/api/geocode/json?address=New+York&sensor=false&client=clientID&signature=KrU1TzVQM7Ur0i8i7K3huiw3MsA=",
		},
		{
			name: "signed latlng with every optional parameter",
			query: Query{
				LatLng:   pointer(spatial.MustLatLng("40.714224", "-73.961452")),
				Bounds:   bounds,
				Language: "fr",
				Format:   FormatXML,
			},
			creds:    testCredentials(),
			sensor:   true,
			expected: "http://maps.googleapis.com/maps/api/geocode/xml?sensor=true&latlng=40.714224,-73.961452&bounds=34.172684,-118.604794|34.236144,-118.500938&language=fr&client=clientID&signature=bbcdGMjKI-ZSV31i-3WxrEgtd-A=",
		},
		{
			name:     "fixed parameter order",
			query:    Query{Address: "1 Front Street West, Toronto, ON", Region: "ca", Language: "en", Format: FormatJSON},
			expected: "http://maps.googleapis.com/maps/api/geocode/json?address=1+Front+Street+West%2C+Toronto%2C+ON&sensor=false&region=ca&language=en",
		},
		{
			name:     "non-ASCII address is UTF-8 percent-encoded",
			query:    Query{Address: "Zürich Straße", Format: FormatJSON},
			expected: "http://maps.googleapis.com/maps/api/geocode/json?address=Z%C3%BCrich+Stra%C3%9Fe&sensor=false",
		},
		{
			name:     "latlng keeps input precision",
			query:    Query{LatLng: pointer(spatial.MustLatLng("45.3200", "12.67000000")), Format: FormatJSON},
			expected: "http://maps.googleapis.com/maps/api/geocode/json?sensor=false&latlng=45.3200,12.67000000",
		},
		{
			name:     "client id without key is sent unsigned",
			query:    Query{Address: "New York", Format: FormatJSON},
			creds:    &Credentials{ClientID: testClientID},
			expected: "http://maps.googleapis.com/maps/api/geocode/json?address=New+York&sensor=false&client=clientID",
		},
		{
			name:     "key without client id is ignored",
			query:    Query{Address: "New York", Format: FormatJSON},
			creds:    &Credentials{SigningKey: testSigningKey},
			expected: "http://maps.googleapis.com/maps/api/geocode/json?address=New+York&sensor=false",
		},
	}

	b := NewRequestBuilder("")

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := b.Build(tc.query, tc.creds, tc.sensor)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestBuildValidation(t *testing.T) {
	p := pointer(spatial.MustLatLng("1", "2"))

	tests := []struct {
		name    string
		query   Query
		message string
	}{
		{"neither address nor latlng", Query{Format: FormatJSON}, "exactly one of address or latlng required"},
		{"both address and latlng", Query{Address: "x", LatLng: p, Format: FormatJSON}, "exactly one of address or latlng required"},
		{"unknown format", Query{Address: "x", Format: "yaml"}, `format must be json or xml, got "yaml"`},
		{"missing format", Query{Address: "x"}, "format must be json or xml"},
	}

	b := NewRequestBuilder(DefaultServiceRoot)

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := b.Build(tc.query, testCredentials(), false)
			require.Error(t, err)
			assert.Empty(t, got)
			assert.True(t, IsValidationError(err))
			assert.Contains(t, err.Error(), tc.message)
		})
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	b := NewRequestBuilder(DefaultServiceRoot)
	q := Query{
		Address:  "Av. 18 de Julio 1234, Montevideo",
		Bounds:   spatial.Bounds{spatial.MustLatLng("-34.95", "-56.25"), spatial.MustLatLng("-34.85", "-56.10")},
		Region:   "uy",
		Language: "es",
		Format:   FormatJSON,
	}

	first, err := b.Build(q, testCredentials(), false)
	require.NoError(t, err)

	var wg sync.WaitGroup

	results := make([]string, 16)
	for i := range results {
		wg.Add(1)

		go func() {
			defer wg.Done()

			results[i], _ = b.Build(q, testCredentials(), false)
		}()
	}

	wg.Wait()

	for _, got := range results {
		assert.Equal(t, first, got)
	}
}

func TestBuildWithoutCredentials(t *testing.T) {
	got, err := NewRequestBuilder("").Build(Query{Address: "New York", Format: FormatJSON}, nil, false)
	require.NoError(t, err)

	u, err := url.Parse(got)
	require.NoError(t, err)

	for _, param := range strings.Split(u.RawQuery, "&") {
		assert.False(t, strings.HasPrefix(param, "client="), param)
		assert.False(t, strings.HasPrefix(param, "signature="), param)
	}
}

func TestBuildCustomServiceRoot(t *testing.T) {
	b := NewRequestBuilder("https://geo.example.com/api/")
	assert.Equal(t, "https://geo.example.com/api", b.ServiceRoot())

	got, err := b.Build(Query{Address: "x", Format: FormatXML}, nil, false)
	require.NoError(t, err)
	assert.Equal(t, "https://geo.example.com/api/xml?address=x&sensor=false", got)
}

func TestSignKnownAnswer(t *testing.T) {
	const unsigned = "http://maps.googleapis.com/maps/api/geocode/json?address=New+York&sensor=false&client=clientID"

	signed, err := Sign(unsigned, testCredentials())
	require.NoError(t, err)

	u, err := url.Parse(signed)
	require.NoError(t, err)

	sigs := []string{}
	for _, param := range strings.Split(u.RawQuery, "&") {
		if strings.HasPrefix(param, "signature=") {
			sigs = append(sigs, strings.TrimPrefix(param, "signature="))
		}
	}

	require.Len(t, sigs, 1)
	assert.Equal(t, "KrU1TzVQM7Ur0i8i7K3huiw3MsA=", sigs[0])
	assert.True(t, strings.HasPrefix(signed, unsigned+"&"))
}

func TestSignIgnoresSchemeAndHost(t *testing.T) {
	a, err := Sign("http://maps.googleapis.com/maps/api/geocode/json?address=New+York&sensor=false&client=clientID", testCredentials())
	require.NoError(t, err)

	b, err := Sign("https://127.0.0.1:8080/maps/api/geocode/json?address=New+York&sensor=false&client=clientID", testCredentials())
	require.NoError(t, err)

	assert.Equal(t, a[strings.LastIndex(a, "&"):], b[strings.LastIndex(b, "&"):])
}

func TestSigningKeyEncodings(t *testing.T) {
	const unsigned = "http://maps.googleapis.com/maps/api/geocode/json?address=New+York&sensor=false&client=clientID"

	for _, key := range []string{
		"vNIXE0xscrmjlyV-12Nj_BvUPaw=",
		"vNIXE0xscrmjlyV-12Nj_BvUPaw",
		"vNIXE0xscrmjlyV+12Nj/BvUPaw=",
	} {
		t.Run(key, func(t *testing.T) {
			signed, err := Sign(unsigned, &Credentials{ClientID: testClientID, SigningKey: key})
			require.NoError(t, err)
			assert.True(t, strings.HasSuffix(signed, "&signature=KrU1TzVQM7Ur0i8i7K3huiw3MsA="))
		})
	}
}

func TestSignInvalidKey(t *testing.T) {
	_, err := Sign("http://h/json?sensor=false", &Credentials{ClientID: "c", SigningKey: "not base64!"})
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Contains(t, err.Error(), "signingKey")
}

func TestVerifySignature(t *testing.T) {
	const signed = "http://maps.googleapis.com/maps/api/geocode/json?address=New+York&sensor=false&client=clientID&signature=KrU1TzVQM7Ur0i8i7K3huiw3MsA="

	tests := []struct {
		name     string
		url      string
		key      string
		expected bool
	}{
		{"valid", signed, testSigningKey, true},
		{"valid escaped", strings.Replace(signed, "MsA=", "MsA%3D", 1), testSigningKey, true},
		{"other host", strings.Replace(signed, "http://maps.googleapis.com", "https://localhost:1234", 1), testSigningKey, true},
		{"tampered query", strings.Replace(signed, "New+York", "New+Jersey", 1), testSigningKey, false},
		{"other key", signed, "bXlfdGVzdF9rZXk=", false},
		{"unsigned", "http://maps.googleapis.com/maps/api/geocode/json?address=New+York&sensor=false", testSigningKey, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := VerifySignature(tc.url, tc.key)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, ok)
		})
	}
}
