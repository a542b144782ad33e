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

// Package contacts holds the keyed properties of contacts: postal
// addresses and e-mail address slots.
//
// Both are dictionaries indexed by an enumerated key. Entries carry their
// key in a Key attribute, are written in key order and are removed by
// setting nil:
//
//	addrs := contacts.NewPhysicalAddressDictionary()
//	home := contacts.NewPhysicalAddress()
//	home.SetCity("Lisbon")
//	_ = addrs.SetPhysicalAddress(contacts.Home, home)
//	_ = addrs.SetPhysicalAddress(contacts.Other, nil) // no-op when absent
package contacts

import (
	"dirpx.dev/dxews/dxcore/property"
	"dirpx.dev/dxews/dxcore/wire"
)

// PhysicalAddressEntry is one postal address.
type PhysicalAddressEntry struct {
	property.DictionaryEntry[PhysicalAddressKey]
	street          property.Optional[string]
	city            property.Optional[string]
	state           property.Optional[string]
	countryOrRegion property.Optional[string]
	postalCode      property.Optional[string]
}

// NewPhysicalAddress returns an empty address. Its key is assigned when it
// is stored in a dictionary.
func NewPhysicalAddress() *PhysicalAddressEntry {
	return &PhysicalAddressEntry{
		DictionaryEntry: property.NewDictionaryEntry(wire.NamespaceTypes, ParsePhysicalAddressKey),
	}
}

func (e *PhysicalAddressEntry) Street() string { return e.street.Value() }
func (e *PhysicalAddressEntry) SetStreet(s string) { property.Assign(e, &e.street, s) }
func (e *PhysicalAddressEntry) City() string { return e.city.Value() }
func (e *PhysicalAddressEntry) SetCity(s string) { property.Assign(e, &e.city, s) }
func (e *PhysicalAddressEntry) State() string { return e.state.Value() }
func (e *PhysicalAddressEntry) SetState(s string) { property.Assign(e, &e.state, s) }
func (e *PhysicalAddressEntry) CountryOrRegion() string { return e.countryOrRegion.Value() }
func (e *PhysicalAddressEntry) SetCountryOrRegion(s string) { property.Assign(e, &e.countryOrRegion, s) }
func (e *PhysicalAddressEntry) PostalCode() string { return e.postalCode.Value() }
func (e *PhysicalAddressEntry) SetPostalCode(s string) { property.Assign(e, &e.postalCode, s) }

type addressField struct {
	name  string
	value *property.Optional[string]
}

// fields lists the address parts in schema order.
func (e *PhysicalAddressEntry) fields() []addressField {
	return []addressField{
		{"Street", &e.street},
		{"City", &e.city},
		{"State", &e.state},
		{"CountryOrRegion", &e.countryOrRegion},
		{"PostalCode", &e.postalCode},
	}
}

func (e *PhysicalAddressEntry) TryReadElement(r *wire.Reader) (bool, error) {
	for _, f := range e.fields() {
		if f.name != r.LocalName() {
			continue
		}
		s, err := r.ReadElementValue()
		if err != nil {
			return true, err
		}
		f.value.Load(s)
		return true, nil
	}
	return false, nil
}

func (e *PhysicalAddressEntry) WriteElements(w *wire.Writer) error {
	for _, f := range e.fields() {
		if err := property.WriteOptional(w, wire.NamespaceTypes, f.name, *f.value); err != nil {
			return err
		}
	}
	return nil
}

// PhysicalAddressDictionary holds a contact's postal addresses.
type PhysicalAddressDictionary struct {
	*property.Dictionary[PhysicalAddressKey, *PhysicalAddressEntry]
}

// NewPhysicalAddressDictionary returns an empty dictionary.
func NewPhysicalAddressDictionary() *PhysicalAddressDictionary {
	return &PhysicalAddressDictionary{
		Dictionary: property.NewDictionary[PhysicalAddressKey](wire.NamespaceTypes, "Entry", NewPhysicalAddress),
	}
}

// PhysicalAddress returns the address at k, or nil.
func (d *PhysicalAddressDictionary) PhysicalAddress(k PhysicalAddressKey) *PhysicalAddressEntry {
	return d.Get(k)
}

// SetPhysicalAddress stores addr under k; nil removes the address.
func (d *PhysicalAddressDictionary) SetPhysicalAddress(k PhysicalAddressKey, addr *PhysicalAddressEntry) error {
	return d.Set(k, addr)
}
