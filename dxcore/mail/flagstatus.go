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

package mail

import (
	"encoding/json"
	"strings"

	"dirpx.dev/dxews/dxcore/errors"
	"dirpx.dev/dxews/dxcore/model"
	"gopkg.in/yaml.v3"
)

// FlagStatus is the follow-up state of an item.
type FlagStatus int

const (
	// NotFlagged means no follow-up is requested. It is the zero value.
	NotFlagged FlagStatus = iota

	// Flagged means follow-up is requested, optionally between a start and
	// a due date.
	Flagged

	// Complete means the follow-up was done, optionally at a completion
	// date.
	Complete
)

// Compile-time check that FlagStatus implements model.Model interface.
var _ model.Model = (*FlagStatus)(nil)

// Wire names of FlagStatus values. Changing any of them breaks
// compatibility with the server schema.
const (
	NotFlaggedStr = "NotFlagged"
	FlaggedStr    = "Flagged"
	CompleteStr   = "Complete"
)

// String returns the wire name of the status, or "unknown" for values
// outside the defined constants.
func (s FlagStatus) String() string {
	switch s {
	case NotFlagged:
		return NotFlaggedStr
	case Flagged:
		return FlaggedStr
	case Complete:
		return CompleteStr
	default:
		return "unknown"
	}
}

// ParseFlagStatus converts a textual representation into a FlagStatus.
//
// The wire names are matched case-insensitively, and the kebab-case forms
// used in configuration files are accepted as well:
//
//	"NotFlagged", "notflagged", "not-flagged" -> NotFlagged
//	"Flagged", "flagged"                      -> Flagged
//	"Complete", "complete"                    -> Complete
//
// Any other input returns a *errors.ParseError.
func ParseFlagStatus(str string) (FlagStatus, error) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "notflagged", "not-flagged":
		return NotFlagged, nil
	case "flagged":
		return Flagged, nil
	case "complete":
		return Complete, nil
	default:
		return NotFlagged, &errors.ParseError{Type: "FlagStatus", Value: str}
	}
}

// Valid reports whether the status is one of the defined constants.
func (s FlagStatus) Valid() bool {
	return s >= NotFlagged && s <= Complete
}

// MarshalJSON encodes a valid status as its wire name. Invalid values
// return a *errors.MarshalError.
func (s FlagStatus) MarshalJSON() ([]byte, error) {
	if !s.Valid() {
		return nil, &errors.MarshalError{Type: "FlagStatus", Value: int(s)}
	}
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON accepts either a name understood by ParseFlagStatus or the
// numeric value of a constant.
func (s *FlagStatus) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return &errors.UnmarshalError{Type: "FlagStatus", Data: data, Reason: "empty data"}
	}

	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return &errors.UnmarshalError{Type: "FlagStatus", Data: data, Reason: err.Error(), Err: err}
		}
		parsed, err := ParseFlagStatus(str)
		if err != nil {
			return err
		}
		*s = parsed
		return nil
	}

	var i int
	if err := json.Unmarshal(data, &i); err != nil {
		return &errors.UnmarshalError{Type: "FlagStatus", Data: data, Reason: err.Error(), Err: err}
	}
	if !FlagStatus(i).Valid() {
		return &errors.UnmarshalError{Type: "FlagStatus", Data: data, Reason: "invalid numeric value"}
	}
	*s = FlagStatus(i)
	return nil
}

// MarshalText encodes a valid status as its wire name. The XML writer uses
// it for the FlagStatus element.
func (s FlagStatus) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, &errors.MarshalError{Type: "FlagStatus", Value: int(s)}
	}
	return []byte(s.String()), nil
}

// UnmarshalText parses text with ParseFlagStatus.
func (s *FlagStatus) UnmarshalText(text []byte) error {
	parsed, err := ParseFlagStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// TypeName returns "FlagStatus".
func (s FlagStatus) TypeName() string {
	return "FlagStatus"
}

// Redacted returns String; a status carries nothing sensitive.
func (s FlagStatus) Redacted() string {
	return s.String()
}

// IsZero reports whether the status is NotFlagged.
func (s FlagStatus) IsZero() bool {
	return s == NotFlagged
}

// Equal reports whether both statuses are the same constant.
func (s FlagStatus) Equal(other FlagStatus) bool {
	return s == other
}

// Validate returns a *errors.MarshalError for values outside the defined
// constants.
func (s FlagStatus) Validate() error {
	if !s.Valid() {
		return &errors.MarshalError{Type: "FlagStatus", Value: int(s)}
	}
	return nil
}

// MarshalYAML encodes a valid status as its wire name.
func (s FlagStatus) MarshalYAML() (any, error) {
	if !s.Valid() {
		return nil, &errors.MarshalError{Type: "FlagStatus", Value: int(s)}
	}
	return s.String(), nil
}

// UnmarshalYAML parses a YAML string with ParseFlagStatus.
func (s *FlagStatus) UnmarshalYAML(node *yaml.Node) error {
	var str string
	if err := node.Decode(&str); err != nil {
		return &errors.UnmarshalError{Type: "FlagStatus", Data: []byte(node.Value), Reason: err.Error(), Err: err}
	}
	parsed, err := ParseFlagStatus(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
