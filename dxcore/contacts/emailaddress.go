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
	"dirpx.dev/dxews/dxcore/property"
	"dirpx.dev/dxews/dxcore/wire"
)

// EmailAddressEntry is one e-mail address slot. The address is the element
// text; the display name and routing type travel as attributes.
type EmailAddressEntry struct {
	property.DictionaryEntry[EmailAddressKey]
	address     property.Optional[string]
	name        property.Optional[string]
	routingType property.Optional[string]
}

// NewEmailAddress returns an entry holding address.
func NewEmailAddress(address string) *EmailAddressEntry {
	e := newEmailAddressEntry()
	e.address.Load(address)
	return e
}

func newEmailAddressEntry() *EmailAddressEntry {
	return &EmailAddressEntry{
		DictionaryEntry: property.NewDictionaryEntry(wire.NamespaceTypes, ParseEmailAddressKey),
	}
}

// Address returns the e-mail address.
func (e *EmailAddressEntry) Address() string { return e.address.Value() }

// SetAddress sets the e-mail address.
func (e *EmailAddressEntry) SetAddress(s string) { property.Assign(e, &e.address, s) }

// Name returns the display name, or "" when unset.
func (e *EmailAddressEntry) Name() string { return e.name.Value() }

// SetName sets the display name.
func (e *EmailAddressEntry) SetName(s string) { property.Assign(e, &e.name, s) }

// RoutingType returns the routing type, typically "SMTP".
func (e *EmailAddressEntry) RoutingType() string { return e.routingType.Value() }

// SetRoutingType sets the routing type.
func (e *EmailAddressEntry) SetRoutingType(s string) { property.Assign(e, &e.routingType, s) }

func (e *EmailAddressEntry) ReadAttributes(r *wire.Reader) error {
	if err := e.DictionaryEntry.ReadAttributes(r); err != nil {
		return err
	}
	if s, ok := r.Attr("Name"); ok {
		e.name.Load(s)
	}
	if s, ok := r.Attr("RoutingType"); ok {
		e.routingType.Load(s)
	}
	return nil
}

func (e *EmailAddressEntry) WriteAttributes(w *wire.Writer) error {
	if err := e.DictionaryEntry.WriteAttributes(w); err != nil {
		return err
	}
	if s, ok := e.name.Get(); ok {
		if err := w.WriteAttributeValue("Name", s); err != nil {
			return err
		}
	}
	if s, ok := e.routingType.Get(); ok {
		return w.WriteAttributeValue("RoutingType", s)
	}
	return nil
}

func (e *EmailAddressEntry) ReadText(_ *wire.Reader, text string) error {
	e.address.Load(text)
	return nil
}

func (e *EmailAddressEntry) WriteText(w *wire.Writer) error {
	if s, ok := e.address.Get(); ok && s != "" {
		return w.WriteValue(s)
	}
	return nil
}

// EmailAddressDictionary holds a contact's e-mail address slots.
type EmailAddressDictionary struct {
	*property.Dictionary[EmailAddressKey, *EmailAddressEntry]
}

// NewEmailAddressDictionary returns an empty dictionary.
func NewEmailAddressDictionary() *EmailAddressDictionary {
	return &EmailAddressDictionary{
		Dictionary: property.NewDictionary[EmailAddressKey](wire.NamespaceTypes, "Entry", newEmailAddressEntry),
	}
}

// EmailAddress returns the address stored at k and whether the slot is
// used.
func (d *EmailAddressDictionary) EmailAddress(k EmailAddressKey) (string, bool) {
	e, ok := d.TryGet(k)
	if !ok {
		return "", false
	}
	return e.Address(), true
}

// SetEmailAddress stores address at k. An existing entry is updated in
// place so its display name and routing type survive; an empty address
// clears the slot.
func (d *EmailAddressDictionary) SetEmailAddress(k EmailAddressKey, address string) error {
	if address == "" {
		return d.Set(k, nil)
	}
	if e, ok := d.TryGet(k); ok {
		e.SetAddress(address)
		return nil
	}
	return d.Set(k, NewEmailAddress(address))
}
