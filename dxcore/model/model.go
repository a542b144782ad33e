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

// Package model defines the contracts shared by dxews value types and the
// generic helpers built on top of them.
//
// Two families of types live in dxews. Value types (identities such as
// ItemId, enum-like dictionary keys, server versions) are small, immutable
// and comparable; they implement Model in full and can be carried in JSON
// and YAML documents as well as on the XML wire. Property nodes (rules,
// dictionaries, collections) are mutable trees that only travel as XML;
// they implement the narrower Checkable contract so that batches of them can
// be validated together before a request body is written.
//
// Unless explicitly documented otherwise, implementations are not safe for
// concurrent mutation. Value types are immutable and therefore safe for
// concurrent reads.
package model

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Model is the root interface for dxews value types. Any type implementing
// Model can be validated, serialized to JSON and YAML, logged safely,
// identified by name and checked for its zero value.
//
// Example implementation:
//
//	type Key int
//
//	func (k Key) Validate() error     { ... }
//	func (k Key) TypeName() string    { return "Key" }
//	func (k Key) IsZero() bool        { return k == 0 }
//	func (k Key) Redacted() string    { return k.String() }
//	func (k Key) String() string      { ... }
//	// ... MarshalJSON, UnmarshalJSON, MarshalYAML, UnmarshalYAML
//
//	var _ Model = (*Key)(nil)
type Model interface {
	Validatable
	Serializable
	Loggable
	Identifiable
	ZeroCheckable
}

// Checkable is the subset of Model that mutable property nodes implement.
// Operations and other request payload roots MUST implement Checkable so
// that they can be validated before anything is written to the wire.
type Checkable interface {
	Validatable
	Identifiable
}

// Validatable defines the contract for types that validate their own state.
//
// Validate MUST check all required fields for presence, recursively validate
// nested values, and return nil if and only if the instance is ready to be
// serialized for sending. Failures SHOULD be reported as
// *errors.ValidationError naming the offending type and field.
//
// Validate MUST be fast and deterministic. It MUST NOT mutate the receiver,
// perform I/O, or depend on external mutable state. Callers invoke it before
// a request body is produced so that invalid operations never reach the
// network.
type Validatable interface {
	// Validate checks that the instance satisfies all invariants and is
	// ready for use. It returns nil if the instance is valid, or a
	// descriptive error explaining what is wrong if validation fails.
	Validate() error
}

// Serializable defines the contract for value types that can be carried in
// JSON and YAML documents, such as CLI plan files and diagnostic dumps.
//
// Marshal methods SHOULD validate first and refuse to serialize an invalid
// value. Unmarshal methods MUST reject input that does not describe a valid
// value and report it as *errors.UnmarshalError or *errors.ParseError.
type Serializable interface {
	json.Marshaler
	json.Unmarshaler
	yaml.Marshaler
	yaml.Unmarshaler
}

// Loggable defines the contract for types that provide safe string
// representations for logging.
//
// Redacted returns a representation suitable for production logs. Server
// identifiers are opaque but long, so identity types abbreviate them; types
// that carry user content (header values, addresses) MUST mask it. String
// returns the full representation and MUST NOT be used for production
// logging.
type Loggable interface {
	// Redacted returns a safe string representation suitable for logging in
	// production.
	Redacted() string

	// String returns a human-readable representation of the instance. It
	// MAY include sensitive data.
	String() string
}

// Identifiable defines the contract for types that can identify themselves
// by a canonical type name.
//
// The name MUST be constant for the type, CamelCase and without a package
// prefix. It is used as the Type of errors produced by the type, so it
// SHOULD match the XML element name where one exists (for example
// "DeleteRuleOperation").
type Identifiable interface {
	// TypeName returns the canonical name of this type.
	TypeName() string
}

// ZeroCheckable defines the contract for types that can report whether they
// are in a zero or empty state.
//
// For identity types the zero value means "no server entity referenced";
// property writers use IsZero to omit such values entirely.
type ZeroCheckable interface {
	// IsZero reports whether this instance is in a zero or empty state.
	IsZero() bool
}

// Comparable defines the contract for types that can be compared for
// equality.
//
// Equal MUST be reflexive, symmetric and transitive. It compares the
// semantically significant fields only; for identity types that is the
// unique id, never the change key.
type Comparable[T any] interface {
	// Equal reports whether this instance is equal to other.
	Equal(other T) bool
}
