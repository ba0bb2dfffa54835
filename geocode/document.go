// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// Parse decodes body in the given format and wraps it in a ResultView.
// Decoder errors are returned as produced by the decoder.
func Parse(body []byte, format OutputFormat) (*ResultView, error) {
	var (
		doc any
		err error
	)

	switch format {
	case FormatJSON:
		doc, err = DecodeJSON(body)
	case FormatXML:
		doc, err = DecodeXML(body)
	default:
		return nil, invalid("output", "format must be json or xml, got "+quoteOrEmpty(string(format)))
	}

	if err != nil {
		return nil, err
	}

	return NewResultView(doc)
}

// DecodeJSON decodes body into a generic tree of map[string]any, []any,
// string, bool, nil and json.Number. Numbers keep their textual form so
// coordinates can be read as exact decimals.
func DecodeJSON(body []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, err
		}

		return nil, fmt.Errorf("invalid JSON: unexpected data after top-level value at offset %d", dec.InputOffset())
	}

	return doc, nil
}

type xmlNode struct {
	XMLName  xml.Name
	Content  string    `xml:",chardata"`
	Children []xmlNode `xml:",any"`
}

// xmlLists maps, per parent element, the repeated child elements to the
// array key they take in the JSON representation.
var xmlLists = map[string]map[string]string{
	"GeocodeResponse": {
		"result": "results",
	},
	"result": {
		"type":              "types",
		"address_component": "address_components",
		"postcode_locality": "postcode_localities",
	},
	"address_component": {
		"type": "types",
	},
}

// xmlRequiredLists are the array keys always present in JSON responses; they
// are emitted empty when the XML has no matching element.
var xmlRequiredLists = map[string]bool{
	"results":            true,
	"types":              true,
	"address_components": true,
}

// DecodeXML decodes an XML response into the same tree shape DecodeJSON
// produces for the equivalent JSON response. Leaf values are strings.
// The document's declared encoding is honoured.
func DecodeXML(body []byte) (any, error) {
	dec := xml.NewDecoder(bytes.NewReader(body))
	dec.CharsetReader = charset.NewReaderLabel

	var root xmlNode
	if err := dec.Decode(&root); err != nil {
		return nil, err
	}

	return root.tree(), nil
}

func (n *xmlNode) tree() any {
	lists := xmlLists[n.XMLName.Local]

	if len(n.Children) == 0 && len(lists) == 0 {
		return strings.TrimSpace(n.Content)
	}

	m := make(map[string]any, len(n.Children)+len(lists))
	for _, plural := range lists {
		if xmlRequiredLists[plural] {
			m[plural] = []any{}
		}
	}

	for i := range n.Children {
		child := &n.Children[i]
		name := child.XMLName.Local

		if plural, ok := lists[name]; ok {
			items, _ := m[plural].([]any)
			m[plural] = append(items, child.tree())

			continue
		}

		m[name] = child.tree()
	}

	return m
}
