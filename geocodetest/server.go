// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

// Package geocodetest provides an in-process fake of the geocoding service.
package geocodetest

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jcodagnone/geocoder/geocode"
)

// ServicePath is the path prefix the fake service answers under.
const ServicePath = "/maps/api/geocode"

// Server is a fake geocoding service. Bodies are served per output format;
// when SigningKey is set, unsigned or badly signed requests get a 403.
type Server struct {
	srv *httptest.Server

	mu         sync.Mutex
	bodies     map[string]string
	statusCode int
	signingKey string
	requests   []string
}

// Option configures a Server.
type Option func(*Server)

// WithBody sets the body returned for format.
func WithBody(format geocode.OutputFormat, body string) Option {
	return func(s *Server) {
		s.bodies[string(format)] = body
	}
}

// WithStatusCode makes the server answer every request with code.
func WithStatusCode(code int) Option {
	return func(s *Server) {
		s.statusCode = code
	}
}

// WithSigningKey makes the server require URL signatures made with key.
func WithSigningKey(key string) Option {
	return func(s *Server) {
		s.signingKey = key
	}
}

// NewServer starts a fake service that is closed when the test ends.
func NewServer(t testing.TB, opts ...Option) *Server {
	t.Helper()

	s := &Server{
		bodies:     map[string]string{},
		statusCode: http.StatusOK,
	}

	for _, opt := range opts {
		opt(s)
	}

	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.GET(ServicePath+"/:format", s.geocode)

	s.srv = httptest.NewServer(router)
	t.Cleanup(s.srv.Close)

	return s
}

// ServiceRoot is the value to pass to geocode.WithServiceRoot.
func (s *Server) ServiceRoot() string {
	return s.srv.URL + ServicePath
}

// Client returns an HTTP client configured for the server.
func (s *Server) Client() *http.Client {
	return s.srv.Client()
}

// Requests returns the request URIs received so far, in order.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]string(nil), s.requests...)
}

func (s *Server) geocode(ctx *gin.Context) {
	s.mu.Lock()
	s.requests = append(s.requests, ctx.Request.RequestURI)
	body, hasBody := s.bodies[ctx.Param("format")]
	statusCode, signingKey := s.statusCode, s.signingKey
	s.mu.Unlock()

	if signingKey != "" {
		ok, err := geocode.VerifySignature("http://"+ctx.Request.Host+ctx.Request.RequestURI, signingKey)
		if err != nil || !ok {
			ctx.String(http.StatusForbidden, "Unable to authenticate the request. Provided 'signature' is not valid for the provided client ID.")

			return
		}
	}

	if !hasBody {
		ctx.String(http.StatusNotFound, "unsupported output format %q", ctx.Param("format"))

		return
	}

	contentType := "application/json; charset=UTF-8"
	if ctx.Param("format") == string(geocode.FormatXML) {
		contentType = "application/xml; charset=UTF-8"
	}

	ctx.Data(statusCode, contentType, []byte(body))
}
