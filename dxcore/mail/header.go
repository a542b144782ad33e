/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package mail holds the item-level properties of mail messages: internet
// message headers, follow-up flags, MIME content and client application
// metadata.
package mail

import (
	"dirpx.dev/dxews/dxcore/errors"
	"dirpx.dev/dxews/dxcore/property"
	"dirpx.dev/dxews/dxcore/wire"
	"golang.org/x/text/cases"
)

const headerElement = "InternetMessageHeader"

// InternetMessageHeader is one header of a message, such as
// "X-Spam-Score". The header name is carried in the HeaderName attribute and
// the value as element text.
type InternetMessageHeader struct {
	property.Base
	name  property.Optional[string]
	value property.Optional[string]
}

// NewInternetMessageHeader returns a header with value set. An empty name
// leaves the name unset.
func NewInternetMessageHeader(name, value string) *InternetMessageHeader {
	h := &InternetMessageHeader{Base: property.NewBase(wire.NamespaceTypes)}
	if name != "" {
		h.name.Load(name)
	}
	h.value.Load(value)
	return h
}

// Name returns the header name.
func (h *InternetMessageHeader) Name() string { return h.name.Value() }

// SetName sets the header name.
func (h *InternetMessageHeader) SetName(name string) { property.Assign(h, &h.name, name) }

// Value returns the header value.
func (h *InternetMessageHeader) Value() string { return h.value.Value() }

// SetValue sets the header value.
func (h *InternetMessageHeader) SetValue(value string) { property.Assign(h, &h.value, value) }

func (h *InternetMessageHeader) TypeName() string { return headerElement }

// Validate fails when the header has no name.
func (h *InternetMessageHeader) Validate() error {
	if h.name.Value() == "" {
		return &errors.ValidationError{Type: headerElement, Field: "HeaderName", Reason: errors.ReasonRequired}
	}
	return nil
}

func (h *InternetMessageHeader) ReadAttributes(r *wire.Reader) error {
	name, ok := r.Attr("HeaderName")
	if !ok {
		return r.Errorf(headerElement, "missing HeaderName attribute")
	}
	h.name.Load(name)
	return nil
}

func (h *InternetMessageHeader) ReadText(_ *wire.Reader, text string) error {
	h.value.Load(text)
	return nil
}

func (h *InternetMessageHeader) WriteAttributes(w *wire.Writer) error {
	name, ok := h.name.Get()
	if !ok {
		return nil
	}
	return w.WriteAttributeValue("HeaderName", name)
}

func (h *InternetMessageHeader) WriteText(w *wire.Writer) error {
	if v, ok := h.value.Get(); ok && v != "" {
		return w.WriteValue(v)
	}
	return nil
}

// InternetMessageHeaderCollection is the ordered list of a message's
// headers. Header names may repeat, as Received does.
type InternetMessageHeaderCollection struct {
	*property.Collection[*InternetMessageHeader]
}

// NewInternetMessageHeaderCollection returns an empty collection.
func NewInternetMessageHeaderCollection() *InternetMessageHeaderCollection {
	return &InternetMessageHeaderCollection{
		Collection: property.NewCollection(wire.NamespaceTypes,
			func(name string) (*InternetMessageHeader, bool) {
				if name != headerElement {
					return nil, false
				}
				return &InternetMessageHeader{Base: property.NewBase(wire.NamespaceTypes)}, true
			},
			func(*InternetMessageHeader) string { return headerElement },
		),
	}
}

// Find returns the first header whose name matches name under Unicode case
// folding.
func (c *InternetMessageHeaderCollection) Find(name string) (*InternetMessageHeader, bool) {
	fold := cases.Fold()
	want := fold.String(name)
	return c.Collection.Find(func(h *InternetMessageHeader) bool {
		return fold.String(h.Name()) == want
	})
}

// Values returns the values of every header named name, in order.
func (c *InternetMessageHeaderCollection) Values(name string) []string {
	fold := cases.Fold()
	want := fold.String(name)
	var out []string
	for h := range c.All() {
		if fold.String(h.Name()) == want {
			out = append(out, h.Value())
		}
	}
	return out
}
