// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package httputils

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"
)

// dummyRoundTripper is useful to simulate a response.
type dummyRoundTripper struct {
	response    *http.Response
	err         error
	lastRequest *http.Request
}

func (d *dummyRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	d.lastRequest = req
	if d.err != nil {
		return nil, d.err
	}

	if d.response != nil {
		return d.response, nil
	}

	return &http.Response{
		Status:     "200 OK",
		StatusCode: http.StatusOK,
		Header:     make(http.Header),
		Body:       io.NopCloser(strings.NewReader("")),
	}, nil
}

func TestRedactURL(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{
			"http://h/maps/api/geocode/json?address=New+York&sensor=false&client=clientID&signature=KrU1TzVQM7Ur0i8i7K3huiw3MsA=",
			"http://h/maps/api/geocode/json?address=New+York&sensor=false&client=REDACTED&signature=REDACTED",
		},
		{
			"http://h/json?address=a&sensor=true",
			"http://h/json?address=a&sensor=true",
		},
		{
			"GET /json?client=abc HTTP/1.1",
			"GET /json?client=REDACTED HTTP/1.1",
		},
	}

	for _, tc := range tests {
		if got := RedactURL(tc.input); got != tc.expected {
			t.Errorf("RedactURL(%q)\nGot:\n%s\nExpected:\n%s", tc.input, got, tc.expected)
		}
	}
}

//////////////////////////////////
// Test LoggingRoundTripper

// TestLoggingRoundTripper verifies that the LoggingRoundTripper logs both the request and
// the response (including timing information) without leaking credentials.
func TestLoggingRoundTripper(t *testing.T) {
	var logBuffer bytes.Buffer

	drt := &dummyRoundTripper{
		response: &http.Response{
			Status:     "200 OK",
			StatusCode: http.StatusOK,
			Header:     make(http.Header),
			Body:       io.NopCloser(strings.NewReader(`{"status":"OK","results":[]}`)),
		},
	}

	lt := &LoggingRoundTripper{
		Transport: drt,
		Writer:    &logBuffer,
		DumpBody:  true,
	}

	req, err := http.NewRequest(http.MethodGet, "http://example.com/maps/api/geocode/json?address=x&client=me&signature=abc=", nil)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	resp, err := lt.RoundTrip(req)
	if err != nil {
		t.Fatalf("RoundTrip returned error: %v", err)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}

	if string(body) != `{"status":"OK","results":[]}` {
		t.Errorf("response body was not preserved. Got: %s", body)
	}

	logContent := logBuffer.String()
	if !strings.Contains(logContent, "> GET /maps/api/geocode/json?address=x&client=REDACTED&signature=REDACTED") {
		t.Errorf("log does not contain redacted request line. Got: %s", logContent)
	}

	if strings.Contains(logContent, "client=me") || strings.Contains(logContent, "signature=abc") {
		t.Errorf("log leaks credentials. Got: %s", logContent)
	}

	if !strings.Contains(logContent, "< RESPONSE: [") {
		t.Errorf("log does not contain response header with timing info. Got: %s", logContent)
	}

	if !strings.Contains(logContent, `"status":"OK"`) {
		t.Errorf("log does not contain response body. Got: %s", logContent)
	}
}

func TestLoggingRoundTripperWithoutWriter(t *testing.T) {
	drt := &dummyRoundTripper{}
	lt := &LoggingRoundTripper{Transport: drt}

	req, err := http.NewRequest(http.MethodGet, "http://example.com/abc", nil)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	if _, err := lt.RoundTrip(req); err != nil {
		t.Fatalf("RoundTrip returned error: %v", err)
	}

	if drt.lastRequest == nil {
		t.Fatalf("request was not forwarded")
	}
}

func TestLoggingRoundTripperError(t *testing.T) {
	var logBuffer bytes.Buffer

	boom := errors.New("dial tcp: connection refused")
	lt := &LoggingRoundTripper{
		Transport: &dummyRoundTripper{err: boom},
		Writer:    &logBuffer,
	}

	req, err := http.NewRequest(http.MethodGet, "http://example.com/abc", nil)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	if _, err := lt.RoundTrip(req); !errors.Is(err, boom) {
		t.Fatalf("expected %v, got %v", boom, err)
	}

	if !strings.Contains(logBuffer.String(), "< ERROR:") {
		t.Errorf("log does not contain the error. Got: %s", logBuffer.String())
	}
}

//////////////////////////////////
// Test AppendRequestHeadersRoundTripper

func TestAppendRequestHeadersRoundTripper(t *testing.T) {
	dummy := &dummyRoundTripper{}

	atr := &AppendRequestHeadersRoundTripper{
		Transport: dummy,
		Headers: map[string]string{
			"User-Agent": "geocoder/test",
		},
	}

	req, err := http.NewRequest(http.MethodGet, "http://example.org", nil)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	if _, err = atr.RoundTrip(req); err != nil {
		t.Fatalf("RoundTrip returned error: %v", err)
	}

	if dummy.lastRequest == nil {
		t.Fatalf("dummy transport did not receive any request")
	}

	if got := dummy.lastRequest.Header.Get("User-Agent"); got != "geocoder/test" {
		t.Errorf("expected header User-Agent to have value 'geocoder/test', but got '%s'", got)
	}

	// The caller's request must not be modified.
	if req.Header.Get("User-Agent") != "" {
		t.Errorf("original request was mutated")
	}
}

func TestNewClient(t *testing.T) {
	c := NewClient(3*time.Second, "geocoder/test", nil, false)

	if c.Timeout != 3*time.Second {
		t.Errorf("unexpected timeout %v", c.Timeout)
	}

	atr, ok := c.Transport.(*AppendRequestHeadersRoundTripper)
	if !ok {
		t.Fatalf("unexpected transport %T", c.Transport)
	}

	if atr.Headers["User-Agent"] != "geocoder/test" {
		t.Errorf("unexpected headers %v", atr.Headers)
	}

	lrt, ok := atr.Transport.(*LoggingRoundTripper)
	if !ok {
		t.Fatalf("unexpected transport %T", atr.Transport)
	}

	if lrt.Writer != nil {
		t.Errorf("tracing should be disabled")
	}
}
