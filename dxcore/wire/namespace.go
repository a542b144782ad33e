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

package wire

import (
	"dirpx.dev/dxews/dxcore/errors"
	"gopkg.in/yaml.v3"
)

// Namespace identifies the XML namespace an element belongs to. Every
// property node carries one; it decides the prefix used for the elements
// the node writes.
type Namespace int

const (
	// NamespaceNotSpecified is the zero value: elements are written without
	// a prefix and matched on local name only when read.
	NamespaceNotSpecified Namespace = iota

	// NamespaceMessages holds request and response message elements.
	NamespaceMessages

	// NamespaceTypes holds the schema types: rules, identities, addresses.
	NamespaceTypes

	// NamespaceErrors holds server error details.
	NamespaceErrors

	// NamespaceSoap is the SOAP 1.1 envelope namespace.
	NamespaceSoap
)

const (
	MessagesURI = "http://schemas.microsoft.com/exchange/services/2006/messages"
	TypesURI    = "http://schemas.microsoft.com/exchange/services/2006/types"
	ErrorsURI   = "http://schemas.microsoft.com/exchange/services/2006/errors"
	SoapURI     = "http://schemas.xmlsoap.org/soap/envelope/"
)

var namespaces = [...]struct{ name, prefix, uri string }{
	NamespaceNotSpecified: {"NotSpecified", "", ""},
	NamespaceMessages:     {"Messages", "m", MessagesURI},
	NamespaceTypes:        {"Types", "t", TypesURI},
	NamespaceErrors:       {"Errors", "e", ErrorsURI},
	NamespaceSoap:         {"Soap", "soap", SoapURI},
}

// Valid reports whether ns is one of the defined constants.
func (ns Namespace) Valid() bool {
	return ns >= NamespaceNotSpecified && ns <= NamespaceSoap
}

// String returns the symbolic name of the namespace, for example "Types".
func (ns Namespace) String() string {
	if !ns.Valid() {
		return "unknown"
	}
	return namespaces[ns].name
}

// Prefix returns the conventional prefix written for the namespace.
func (ns Namespace) Prefix() string {
	if !ns.Valid() {
		return ""
	}
	return namespaces[ns].prefix
}

// URI returns the namespace URI, or "" for NamespaceNotSpecified.
func (ns Namespace) URI() string {
	if !ns.Valid() {
		return ""
	}
	return namespaces[ns].uri
}

// NamespaceFromURI maps a namespace URI back to its constant. Unknown URIs,
// including the empty one, map to NamespaceNotSpecified.
func NamespaceFromURI(uri string) Namespace {
	for i := range namespaces {
		if i != int(NamespaceNotSpecified) && namespaces[i].uri == uri {
			return Namespace(i)
		}
	}
	return NamespaceNotSpecified
}

// ParseNamespace converts a symbolic name ("Types") or prefix ("t") into a
// Namespace.
func ParseNamespace(s string) (Namespace, error) {
	for i := range namespaces {
		if namespaces[i].name == s || (namespaces[i].prefix != "" && namespaces[i].prefix == s) {
			return Namespace(i), nil
		}
	}
	return NamespaceNotSpecified, &errors.ParseError{Type: "Namespace", Value: s}
}

// MarshalYAML implements yaml.Marshaler using the symbolic name.
func (ns Namespace) MarshalYAML() (any, error) {
	if !ns.Valid() {
		return nil, &errors.MarshalError{Type: "Namespace", Value: int(ns)}
	}
	return ns.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler via ParseNamespace.
func (ns *Namespace) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return &errors.UnmarshalError{Type: "Namespace", Data: []byte(node.Value), Reason: err.Error(), Err: err}
	}
	parsed, err := ParseNamespace(s)
	if err != nil {
		return err
	}
	*ns = parsed
	return nil
}
