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

// Package errors provides the error types shared by every dxews package.
//
// The property model fails in a small number of well-defined ways, and each
// of them has a dedicated value carrier with a stable message format:
//
//   - UnmarshalError
//     Returned when XML (or JSON / YAML) input cannot be turned into a
//     property value: malformed scalar content such as a non-base64 blob or
//     an unparsable date-time, or an element structure the reader did not
//     expect. A failed read never leaves the field being read partially
//     mutated.
//
//   - ValidationError
//     Returned by Validate methods when a required field is absent or
//     empty at the time an operation is about to be serialized. Validation
//     runs before anything is written, so no request body is produced for
//     an invalid operation.
//
//   - ArgumentError
//     Returned by conversion helpers that receive an empty identifier or
//     another argument they cannot work with. No partial object is built.
//
//   - ParseError / MarshalError
//     Returned when an enum-like value (namespace, dictionary key, flag
//     status, server version name) cannot be parsed from text or is outside
//     the set of known constants when serialized.
//
//   - ServiceVersionError
//     Returned by the writer when a property is emitted against a requested
//     server version older than the one that introduced it.
//
// All failures are local and synchronous. Retrying is never meaningful at
// this layer; transports that wrap dxews own retry policy.
//
// # Usage
//
// Callers recognise the taxonomy with errors.As:
//
//	var verr *errors.ValidationError
//	if stderrors.As(err, &verr) {
//	    log.Warn("operation is incomplete", "type", verr.Type, "field", verr.Field)
//	}
package errors

import "strconv"

// ParseError is returned when parsing a string into a strongly typed enum-like
// value fails.
//
// Type identifies the logical type being parsed (for example,
// "PhysicalAddressKey" or "Namespace"), and Value contains the exact string
// that could not be interpreted.
type ParseError struct {
	// Type is the logical name of the type being parsed.
	Type string

	// Value is the invalid textual representation that was provided.
	Value string
}

// Error implements the error interface for ParseError.
//
// The error message format is:
//
//	"dxews: invalid {Type} value: {Value}"
func (e *ParseError) Error() string {
	return "dxews: invalid " + e.Type + " value: " + e.Value
}

// MarshalError is returned when marshaling a typed value fails because it is
// outside the set of valid constants.
//
// In most cases a MarshalError indicates a programming error, such as an
// enum value produced by a numeric cast that was never validated.
type MarshalError struct {
	// Type is the logical name of the type being marshaled.
	Type string

	// Value is the underlying numeric representation that could not be
	// marshaled because it does not correspond to a known constant.
	Value int
}

// Error implements the error interface for MarshalError.
//
// The error message format is:
//
//	"dxews: cannot marshal invalid {Type} value: {Value}"
func (e *MarshalError) Error() string {
	return "dxews: cannot marshal invalid " + e.Type + " value: " + strconv.Itoa(e.Value)
}

// UnmarshalError is returned when input cannot be deserialized into a typed
// value.
//
// Type identifies the logical type being populated (for example, "Flag" or
// "ServiceId"), Data contains the raw offending input when it is available
// (a scalar element's text, a JSON fragment), and Reason provides a
// human-readable description of what went wrong.
//
// When the failure happened while reading an XML stream, Line and Column
// locate the element that could not be read. Err carries the underlying
// cause, such as a base64 or time parsing error, and is exposed through
// Unwrap.
type UnmarshalError struct {
	// Type is the logical name of the type being unmarshaled into.
	Type string

	// Data is the raw input that failed to unmarshal.
	//
	// Callers MAY choose to log or redact this field depending on privacy
	// and size considerations.
	Data []byte

	// Reason is a short, human-readable explanation of the failure.
	Reason string

	// Line and Column locate the failure in the XML input. Both are zero
	// when the position is unknown.
	Line   int
	Column int

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface for UnmarshalError.
//
// The error message format is:
//
//	"dxews: cannot unmarshal {Type}: {Reason}"
//	"dxews: cannot unmarshal {Type} at {Line}:{Column}: {Reason}"
//
// The Data field is intentionally not included in the formatted message to
// avoid excessively verbose or sensitive logs.
func (e *UnmarshalError) Error() string {
	msg := "dxews: cannot unmarshal " + e.Type
	if e.Line > 0 {
		msg += " at " + strconv.Itoa(e.Line) + ":" + strconv.Itoa(e.Column)
	}
	return msg + ": " + e.Reason
}

// Unwrap returns the underlying cause.
func (e *UnmarshalError) Unwrap() error {
	return e.Err
}

// ValidationError is returned when validation of a model type fails.
//
// Type identifies the logical name of the type being validated (for example,
// "DeleteRuleOperation"), Field optionally identifies which field failed
// validation, Reason provides a human-readable explanation, and Value
// optionally contains the problematic value.
//
// # Example
//
//	func (o *DeleteRuleOperation) Validate() error {
//	    if o.RuleID() == "" {
//	        return &errors.ValidationError{
//	            Type:   "DeleteRuleOperation",
//	            Field:  "RuleId",
//	            Reason: "is required",
//	        }
//	    }
//	    return nil
//	}
type ValidationError struct {
	// Type is the logical name of the type being validated.
	Type string

	// Field is the name of the field that failed validation.
	// May be empty if the error applies to the entire type.
	Field string

	// Reason is a short, human-readable explanation of why validation failed.
	Reason string

	// Value optionally contains the invalid value.
	// May be nil if not applicable or if the value should not be logged.
	Value any
}

// Error implements the error interface for ValidationError.
//
// The error message format is:
//
//	"dxews: invalid {Type}.{Field}: {Reason}" (when Field is specified)
//	"dxews: invalid {Type}: {Reason}" (when Field is empty)
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return "dxews: invalid " + e.Type + "." + e.Field + ": " + e.Reason
	}
	return "dxews: invalid " + e.Type + ": " + e.Reason
}

// Required reports whether the error describes a missing required field.
func (e *ValidationError) Required() bool {
	return e.Reason == ReasonRequired
}

// ReasonRequired is the Reason used by ValidationError for required fields
// that are unset or empty.
const ReasonRequired = "is required"

// ArgumentError is returned when a function receives an argument it cannot
// work with, typically an empty identifier passed to a conversion helper.
type ArgumentError struct {
	// Param is the name of the offending parameter.
	Param string

	// Reason explains what is wrong with the argument.
	Reason string
}

// Error implements the error interface for ArgumentError.
//
// The error message format is:
//
//	"dxews: invalid argument {Param}: {Reason}"
func (e *ArgumentError) Error() string {
	return "dxews: invalid argument " + e.Param + ": " + e.Reason
}

// ServiceVersionError is returned when an element is written for a server
// version that does not support it.
type ServiceVersionError struct {
	// Element is the local name of the element that was rejected.
	Element string

	// Required is the minimum server version that supports Element.
	Required string

	// Requested is the server version the writer targets.
	Requested string
}

// Error implements the error interface for ServiceVersionError.
//
// The error message format is:
//
//	"dxews: {Element} requires server version {Required} or later, requested {Requested}"
func (e *ServiceVersionError) Error() string {
	return "dxews: " + e.Element + " requires server version " + e.Required +
		" or later, requested " + e.Requested
}
