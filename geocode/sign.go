// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"crypto/hmac"
	"crypto/sha1" //nolint:gosec // the URL signing scheme is defined over HMAC-SHA1
	"encoding/base64"
	"net/url"
	"strings"
)

const signatureParam = "signature"

// Sign appends the URL signature for premium clients. When either credential
// is missing the URL is returned unchanged.
//
// The HMAC-SHA1 digest covers "<path>?<query>" exactly as written in rawURL
// (scheme and host excluded), keyed by the URL-safe base64 decoded signing key.
// The digest is URL-safe base64 encoded and appended as the last parameter.
func Sign(rawURL string, creds *Credentials) (string, error) {
	if !creds.canSign() {
		return rawURL, nil
	}

	signature, err := signature(rawURL, creds.SigningKey)
	if err != nil {
		return "", err
	}

	return rawURL + "&" + signatureParam + "=" + signature, nil
}

// VerifySignature checks that rawURL ends with a signature parameter matching
// the one computed with signingKey over the rest of the URL.
func VerifySignature(rawURL, signingKey string) (bool, error) {
	idx := strings.LastIndex(rawURL, "&"+signatureParam+"=")
	if idx < 0 {
		return false, nil
	}

	got, err := url.QueryUnescape(rawURL[idx+len(signatureParam)+2:])
	if err != nil {
		return false, &ValidationError{Field: signatureParam, Message: "cannot unescape signature", Err: err}
	}

	want, err := signature(rawURL[:idx], signingKey)
	if err != nil {
		return false, err
	}

	return hmac.Equal([]byte(got), []byte(want)), nil
}

func signature(rawURL, signingKey string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", &ValidationError{Field: "url", Message: "cannot parse URL to sign", Err: err}
	}

	key, err := decodeSigningKey(signingKey)
	if err != nil {
		return "", err
	}

	mac := hmac.New(sha1.New, key)
	mac.Write([]byte(u.EscapedPath() + "?" + u.RawQuery))

	return base64.URLEncoding.EncodeToString(mac.Sum(nil)), nil
}

// decodeSigningKey accepts the URL-safe alphabet (and the standard one), with
// or without padding.
func decodeSigningKey(signingKey string) ([]byte, error) {
	k := strings.NewReplacer("-", "+", "_", "/").Replace(signingKey)
	k = strings.TrimRight(k, "=")

	key, err := base64.RawStdEncoding.DecodeString(k)
	if err != nil {
		return nil, &ValidationError{Field: "signingKey", Message: "not valid URL-safe base64", Err: err}
	}

	return key, nil
}
