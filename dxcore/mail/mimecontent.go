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
	"dirpx.dev/dxews/dxcore/errors"
	"dirpx.dev/dxews/dxcore/property"
	"dirpx.dev/dxews/dxcore/wire"
)

// MimeContent is the raw MIME stream of an item, carried base64-encoded as
// element text. CharacterSet names the encoding of the decoded content.
type MimeContent struct {
	property.Base
	characterSet property.Optional[string]
	content      property.Bytes
}

// NewMimeContent returns MIME content holding data in characterSet, which
// may be empty.
func NewMimeContent(characterSet string, data []byte) *MimeContent {
	m := &MimeContent{Base: property.NewBase(wire.NamespaceTypes)}
	if characterSet != "" {
		m.characterSet.Load(characterSet)
	}
	m.content.Load(data)
	return m
}

// CharacterSet returns the character set, or "" when unset.
func (m *MimeContent) CharacterSet() string { return m.characterSet.Value() }

// SetCharacterSet sets the character set.
func (m *MimeContent) SetCharacterSet(cs string) { property.Assign(m, &m.characterSet, cs) }

// Content returns a copy of the decoded content.
func (m *MimeContent) Content() []byte {
	data, _ := m.content.Get()
	return data
}

// SetContent replaces the decoded content.
func (m *MimeContent) SetContent(data []byte) { property.AssignBytes(m, &m.content, data) }

func (m *MimeContent) ReadAttributes(r *wire.Reader) error {
	if cs, ok := r.Attr("CharacterSet"); ok {
		m.characterSet.Load(cs)
	}
	return nil
}

// ReadText decodes the element text. Malformed base64 leaves the content
// untouched and returns a *errors.UnmarshalError.
func (m *MimeContent) ReadText(r *wire.Reader, text string) error {
	data, err := wire.ParseBase64(text)
	if err != nil {
		line, column := r.Position()
		return &errors.UnmarshalError{
			Type:   "MimeContent",
			Data:   []byte(text),
			Reason: "invalid base64",
			Line:   line,
			Column: column,
			Err:    err,
		}
	}
	m.content.Load(data)
	return nil
}

func (m *MimeContent) WriteAttributes(w *wire.Writer) error {
	if cs, ok := m.characterSet.Get(); ok {
		return w.WriteAttributeValue("CharacterSet", cs)
	}
	return nil
}

func (m *MimeContent) WriteText(w *wire.Writer) error {
	if data, ok := m.content.Get(); ok && len(data) > 0 {
		return w.WriteValue(data)
	}
	return nil
}
