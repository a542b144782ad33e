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
	"dirpx.dev/dxews/dxcore/property"
	"dirpx.dev/dxews/dxcore/wire"
)

// ClientAppMetadata describes where a client application installed in the
// mailbox is served from and whether it is enabled.
type ClientAppMetadata struct {
	property.Base
	endNodeURL property.Optional[string]
	actionURL  property.Optional[string]
	appStatus  property.Optional[string]
}

// NewClientAppMetadata returns empty metadata.
func NewClientAppMetadata() *ClientAppMetadata {
	return &ClientAppMetadata{Base: property.NewBase(wire.NamespaceTypes)}
}

// EndNodeURL returns the URL the application is served from.
func (m *ClientAppMetadata) EndNodeURL() string { return m.endNodeURL.Value() }

// SetEndNodeURL sets the URL the application is served from.
func (m *ClientAppMetadata) SetEndNodeURL(u string) { property.Assign(m, &m.endNodeURL, u) }

// ActionURL returns the URL of the application's pending action, if any.
func (m *ClientAppMetadata) ActionURL() string { return m.actionURL.Value() }

// SetActionURL sets the URL of the application's pending action.
func (m *ClientAppMetadata) SetActionURL(u string) { property.Assign(m, &m.actionURL, u) }

// AppStatus returns the status reported for the application.
func (m *ClientAppMetadata) AppStatus() string { return m.appStatus.Value() }

// SetAppStatus sets the status reported for the application.
func (m *ClientAppMetadata) SetAppStatus(s string) { property.Assign(m, &m.appStatus, s) }

func (m *ClientAppMetadata) TryReadElement(r *wire.Reader) (bool, error) {
	var target *property.Optional[string]
	switch r.LocalName() {
	case "EndNodeUrl":
		target = &m.endNodeURL
	case "ActionUrl":
		target = &m.actionURL
	case "AppStatus":
		target = &m.appStatus
	default:
		return false, nil
	}
	s, err := r.ReadElementValue()
	if err != nil {
		return true, err
	}
	target.Load(s)
	return true, nil
}

func (m *ClientAppMetadata) WriteElements(w *wire.Writer) error {
	if err := property.WriteOptional(w, wire.NamespaceTypes, "EndNodeUrl", m.endNodeURL); err != nil {
		return err
	}
	if err := property.WriteOptional(w, wire.NamespaceTypes, "ActionUrl", m.actionURL); err != nil {
		return err
	}
	return property.WriteOptional(w, wire.NamespaceTypes, "AppStatus", m.appStatus)
}
