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

package contacts

import (
	"encoding/json"
	"strings"

	"dirpx.dev/dxews/dxcore/errors"
	"dirpx.dev/dxews/dxcore/model"
	"gopkg.in/yaml.v3"
)

// PhysicalAddressKey selects one of a contact's postal addresses.
type PhysicalAddressKey int

const (
	Business PhysicalAddressKey = iota
	Home
	Other
)

// EmailAddressKey selects one of a contact's e-mail address slots.
type EmailAddressKey int

const (
	EmailAddress1 EmailAddressKey = iota
	EmailAddress2
	EmailAddress3
)

var (
	_ model.Model = (*PhysicalAddressKey)(nil)
	_ model.Model = (*EmailAddressKey)(nil)
)

var (
	physicalAddressKeys = []string{"Business", "Home", "Other"}
	emailAddressKeys    = []string{"EmailAddress1", "EmailAddress2", "EmailAddress3"}
)

func keyName(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return "unknown"
	}
	return names[i]
}

func parseKey(typ string, names []string, s string) (int, error) {
	trimmed := strings.TrimSpace(s)
	for i, name := range names {
		if strings.EqualFold(name, trimmed) {
			return i, nil
		}
	}
	return 0, &errors.ParseError{Type: typ, Value: s}
}

func unmarshalKeyJSON(typ string, names []string, data []byte) (int, error) {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return 0, &errors.UnmarshalError{Type: typ, Data: data, Reason: "expected a string", Err: err}
	}
	return parseKey(typ, names, s)
}

func unmarshalKeyYAML(typ string, names []string, node *yaml.Node) (int, error) {
	var s string
	if err := node.Decode(&s); err != nil {
		return 0, &errors.UnmarshalError{Type: typ, Data: []byte(node.Value), Reason: "expected a string", Err: err}
	}
	return parseKey(typ, names, s)
}

// ParsePhysicalAddressKey converts a wire name, matched case-insensitively,
// into a PhysicalAddressKey.
func ParsePhysicalAddressKey(s string) (PhysicalAddressKey, error) {
	i, err := parseKey("PhysicalAddressKey", physicalAddressKeys, s)
	return PhysicalAddressKey(i), err
}

func (k PhysicalAddressKey) String() string { return keyName(physicalAddressKeys, int(k)) }
func (k PhysicalAddressKey) Valid() bool { return k >= Business && k <= Other }
func (k PhysicalAddressKey) TypeName() string { return "PhysicalAddressKey" }
func (k PhysicalAddressKey) Redacted() string { return k.String() }
func (k PhysicalAddressKey) IsZero() bool { return k == Business }

func (k PhysicalAddressKey) Equal(other PhysicalAddressKey) bool { return k == other }

func (k PhysicalAddressKey) Validate() error {
	if !k.Valid() {
		return &errors.MarshalError{Type: k.TypeName(), Value: int(k)}
	}
	return nil
}

func (k PhysicalAddressKey) MarshalJSON() ([]byte, error) {
	if err := k.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(k.String())
}

func (k *PhysicalAddressKey) UnmarshalJSON(data []byte) error {
	i, err := unmarshalKeyJSON("PhysicalAddressKey", physicalAddressKeys, data)
	if err != nil {
		return err
	}
	*k = PhysicalAddressKey(i)
	return nil
}

func (k PhysicalAddressKey) MarshalYAML() (any, error) {
	if err := k.Validate(); err != nil {
		return nil, err
	}
	return k.String(), nil
}

func (k *PhysicalAddressKey) UnmarshalYAML(node *yaml.Node) error {
	i, err := unmarshalKeyYAML("PhysicalAddressKey", physicalAddressKeys, node)
	if err != nil {
		return err
	}
	*k = PhysicalAddressKey(i)
	return nil
}

// ParseEmailAddressKey converts a wire name, matched case-insensitively,
// into an EmailAddressKey.
func ParseEmailAddressKey(s string) (EmailAddressKey, error) {
	i, err := parseKey("EmailAddressKey", emailAddressKeys, s)
	return EmailAddressKey(i), err
}

func (k EmailAddressKey) String() string { return keyName(emailAddressKeys, int(k)) }
func (k EmailAddressKey) Valid() bool { return k >= EmailAddress1 && k <= EmailAddress3 }
func (k EmailAddressKey) TypeName() string { return "EmailAddressKey" }
func (k EmailAddressKey) Redacted() string { return k.String() }
func (k EmailAddressKey) IsZero() bool { return k == EmailAddress1 }

func (k EmailAddressKey) Equal(other EmailAddressKey) bool { return k == other }

func (k EmailAddressKey) Validate() error {
	if !k.Valid() {
		return &errors.MarshalError{Type: k.TypeName(), Value: int(k)}
	}
	return nil
}

func (k EmailAddressKey) MarshalJSON() ([]byte, error) {
	if err := k.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(k.String())
}

func (k *EmailAddressKey) UnmarshalJSON(data []byte) error {
	i, err := unmarshalKeyJSON("EmailAddressKey", emailAddressKeys, data)
	if err != nil {
		return err
	}
	*k = EmailAddressKey(i)
	return nil
}

func (k EmailAddressKey) MarshalYAML() (any, error) {
	if err := k.Validate(); err != nil {
		return nil, err
	}
	return k.String(), nil
}

func (k *EmailAddressKey) UnmarshalYAML(node *yaml.Node) error {
	i, err := unmarshalKeyYAML("EmailAddressKey", emailAddressKeys, node)
	if err != nil {
		return err
	}
	*k = EmailAddressKey(i)
	return nil
}
