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

package property

import (
	"encoding/json"
	"strings"

	"dirpx.dev/dxews/dxcore/errors"
	"dirpx.dev/dxews/dxcore/model"
	"dirpx.dev/dxews/dxcore/wire"
	"gopkg.in/yaml.v3"
)

// ServiceId references an entity on the server by its opaque unique id and
// an optional change key naming the entity's revision.
//
// The canonical string form is the unique id alone. Conversions to and from
// plain strings, JSON and YAML carry identity only and never the change
// key. Two ids are equal when their unique ids are equal.
//
// ServiceId is an immutable value; the zero value references nothing. It
// is not comparable with ==, which would also compare change keys: use
// Equal, or String as a map key.
type ServiceId struct {
	_         [0]func()
	uniqueID  string
	changeKey string
}

var _ model.Model = (*ServiceId)(nil)

var _ model.Comparable[ServiceId] = ServiceId{}

// NewServiceId returns an id for uniqueID without a change key.
func NewServiceId(uniqueID string) ServiceId {
	return ServiceId{uniqueID: uniqueID}
}

// NewServiceIdWithChangeKey returns an id for uniqueID at revision
// changeKey.
func NewServiceIdWithChangeKey(uniqueID, changeKey string) ServiceId {
	return ServiceId{uniqueID: uniqueID, changeKey: changeKey}
}

// UniqueID returns the unique id.
func (id ServiceId) UniqueID() string {
	return id.uniqueID
}

// ChangeKey returns the change key, or "" when there is none.
func (id ServiceId) ChangeKey() string {
	return id.changeKey
}

// String returns the canonical form: the unique id, or "" when unset.
func (id ServiceId) String() string {
	return id.uniqueID
}

// Equal reports whether both ids reference the same entity. Change keys
// are ignored.
func (id ServiceId) Equal(other ServiceId) bool {
	return id.uniqueID == other.uniqueID
}

// Identical reports whether both ids reference the same revision of the
// same entity.
func (id ServiceId) Identical(other ServiceId) bool {
	return id.uniqueID == other.uniqueID && id.changeKey == other.changeKey
}

// IsZero reports whether the id references nothing.
func (id ServiceId) IsZero() bool {
	return id.uniqueID == ""
}

// TypeName returns "ServiceId".
func (id ServiceId) TypeName() string {
	return "ServiceId"
}

// Redacted abbreviates the unique id; the change key is omitted.
func (id ServiceId) Redacted() string {
	const keep = 8
	if len(id.uniqueID) <= keep {
		return id.uniqueID
	}
	return id.uniqueID[:keep] + "..."
}

// Validate fails when the unique id is empty.
func (id ServiceId) Validate() error {
	return id.validate(id.TypeName())
}

func (id ServiceId) validate(typ string) error {
	if id.uniqueID == "" {
		return &errors.ValidationError{Type: typ, Field: "Id", Reason: errors.ReasonRequired}
	}
	return nil
}

// MarshalJSON encodes the canonical form as a JSON string.
func (id ServiceId) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.uniqueID)
}

// UnmarshalJSON decodes a JSON string into an id without a change key.
func (id *ServiceId) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &errors.UnmarshalError{Type: "ServiceId", Data: data, Reason: "expected a string", Err: err}
	}
	*id = ServiceId{uniqueID: s}
	return nil
}

// MarshalYAML encodes the canonical form as a YAML string.
func (id ServiceId) MarshalYAML() (any, error) {
	return id.uniqueID, nil
}

// UnmarshalYAML decodes a YAML string into an id without a change key.
func (id *ServiceId) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return &errors.UnmarshalError{Type: "ServiceId", Data: []byte(node.Value), Reason: "expected a string", Err: err}
	}
	*id = ServiceId{uniqueID: s}
	return nil
}

// ReadServiceId reads the Id and ChangeKey attributes of the current start
// element and skips its content, leaving the reader on its end element.
func ReadServiceId(r *wire.Reader) (ServiceId, error) {
	name := r.LocalName()
	uniqueID, ok := r.Attr("Id")
	if !ok || uniqueID == "" {
		return ServiceId{}, r.Errorf(name, "missing Id attribute")
	}
	changeKey, _ := r.Attr("ChangeKey")
	if err := r.SkipCurrentElement(); err != nil {
		return ServiceId{}, err
	}
	return ServiceId{uniqueID: uniqueID, changeKey: changeKey}, nil
}

// WriteServiceId writes id as an empty element named name in ns with Id and,
// when present, ChangeKey attributes.
func WriteServiceId(w *wire.Writer, ns wire.Namespace, name string, id ServiceId) error {
	if id.IsZero() {
		return &errors.ValidationError{Type: name, Field: "Id", Reason: errors.ReasonRequired}
	}
	if err := w.WriteStartElement(ns, name); err != nil {
		return err
	}
	if err := w.WriteAttributeValue("Id", id.uniqueID); err != nil {
		return err
	}
	if id.changeKey != "" {
		if err := w.WriteAttributeValue("ChangeKey", id.changeKey); err != nil {
			return err
		}
	}
	return w.WriteEndElement()
}

func requireUniqueID(s string) error {
	if strings.TrimSpace(s) == "" {
		return &errors.ArgumentError{Param: "uniqueID", Reason: "must not be empty"}
	}
	return nil
}

// ItemId references a mailbox item.
type ItemId struct {
	ServiceId
}

// NewItemId returns an id for uniqueID at revision changeKey, which may be
// empty.
func NewItemId(uniqueID, changeKey string) ItemId {
	return ItemId{NewServiceIdWithChangeKey(uniqueID, changeKey)}
}

// ParseItemId converts a canonical string into an ItemId. An empty string
// is an *errors.ArgumentError.
func ParseItemId(s string) (ItemId, error) {
	if err := requireUniqueID(s); err != nil {
		return ItemId{}, err
	}
	return ItemId{NewServiceId(s)}, nil
}

// TypeName returns "ItemId".
func (id ItemId) TypeName() string { return "ItemId" }

// XMLElementName returns "ItemId".
func (id ItemId) XMLElementName() string { return "ItemId" }

// Equal compares unique ids.
func (id ItemId) Equal(other ItemId) bool { return id.ServiceId.Equal(other.ServiceId) }

// Validate fails when the unique id is empty.
func (id ItemId) Validate() error { return id.validate(id.TypeName()) }

// FolderId references a mailbox folder.
type FolderId struct {
	ServiceId
}

// NewFolderId returns an id for uniqueID at revision changeKey, which may
// be empty.
func NewFolderId(uniqueID, changeKey string) FolderId {
	return FolderId{NewServiceIdWithChangeKey(uniqueID, changeKey)}
}

// ParseFolderId converts a canonical string into a FolderId. An empty
// string is an *errors.ArgumentError.
func ParseFolderId(s string) (FolderId, error) {
	if err := requireUniqueID(s); err != nil {
		return FolderId{}, err
	}
	return FolderId{NewServiceId(s)}, nil
}

func (id FolderId) TypeName() string { return "FolderId" }
func (id FolderId) XMLElementName() string { return "FolderId" }
func (id FolderId) Equal(other FolderId) bool {
	return id.ServiceId.Equal(other.ServiceId)
}
func (id FolderId) Validate() error { return id.validate(id.TypeName()) }

// ConversationId references a conversation thread.
type ConversationId struct {
	ServiceId
}

// NewConversationId returns an id for uniqueID.
func NewConversationId(uniqueID string) ConversationId {
	return ConversationId{NewServiceId(uniqueID)}
}

// ParseConversationId converts a canonical string into a ConversationId.
// An empty string is an *errors.ArgumentError.
func ParseConversationId(s string) (ConversationId, error) {
	if err := requireUniqueID(s); err != nil {
		return ConversationId{}, err
	}
	return ConversationId{NewServiceId(s)}, nil
}

func (id ConversationId) TypeName() string { return "ConversationId" }
func (id ConversationId) XMLElementName() string { return "ConversationId" }
func (id ConversationId) Equal(other ConversationId) bool {
	return id.ServiceId.Equal(other.ServiceId)
}
func (id ConversationId) Validate() error { return id.validate(id.TypeName()) }
