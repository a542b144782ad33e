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

package contacts_test

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"strings"
	"testing"

	"dirpx.dev/dxews/dxcore/contacts"
	"dirpx.dev/dxews/dxcore/errors"
	"dirpx.dev/dxews/dxcore/property"
	"dirpx.dev/dxews/dxcore/wire"
	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

const decls = ` xmlns:m="` + wire.MessagesURI + `" xmlns:t="` + wire.TypesURI + `"`

func write(t *testing.T, name string, p property.Property) string {
	t.Helper()
	var buf bytes.Buffer
	w := wire.NewWriter(&buf)
	if err := property.WriteElement(w, wire.NamespaceTypes, name, p); err != nil {
		t.Fatalf("WriteElement() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	return buf.String()
}

func read(doc, name string, p property.Property) error {
	r, err := wire.NewReader(strings.NewReader(doc))
	if err != nil {
		return err
	}
	return property.ReadRoot(r, wire.NamespaceTypes, name, p)
}

func TestParsePhysicalAddressKey(t *testing.T) {
	tests := []struct {
		input   string
		want    contacts.PhysicalAddressKey
		wantErr bool
	}{
		{"Business", contacts.Business, false},
		{"home", contacts.Home, false},
		{" OTHER ", contacts.Other, false},
		{"Work", contacts.Business, true},
		{"", contacts.Business, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := contacts.ParsePhysicalAddressKey(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePhysicalAddressKey() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParsePhysicalAddressKey() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKeys_Serialization(t *testing.T) {
	data, err := json.Marshal(contacts.EmailAddress2)
	if err != nil || string(data) != `"EmailAddress2"` {
		t.Fatalf("MarshalJSON() = %s, %v", data, err)
	}

	var k contacts.EmailAddressKey
	if err := json.Unmarshal([]byte(`"emailaddress3"`), &k); err != nil || k != contacts.EmailAddress3 {
		t.Errorf("UnmarshalJSON() = %v, %v, want EmailAddress3", k, err)
	}
	if err := json.Unmarshal([]byte(`2`), &k); err == nil {
		t.Errorf("UnmarshalJSON(2): want error")
	}
	if _, err := json.Marshal(contacts.PhysicalAddressKey(7)); err == nil {
		t.Errorf("MarshalJSON(7): want error")
	}

	var doc struct {
		Key contacts.PhysicalAddressKey `yaml:"key"`
	}
	if err := yaml.Unmarshal([]byte("key: home\n"), &doc); err != nil || doc.Key != contacts.Home {
		t.Errorf("yaml.Unmarshal() = %v, %v, want Home", doc.Key, err)
	}
	if got := contacts.PhysicalAddressKey(-1).String(); got != "unknown" {
		t.Errorf("String() = %q, want unknown", got)
	}
}

func TestPhysicalAddressDictionary_RoundTrip(t *testing.T) {
	d := contacts.NewPhysicalAddressDictionary()

	other := contacts.NewPhysicalAddress()
	other.SetCity("Porto")
	home := contacts.NewPhysicalAddress()
	home.SetStreet("Rua Augusta 1")
	home.SetCity("Lisbon")
	home.SetPostalCode("1100-048")

	if err := d.SetPhysicalAddress(contacts.Other, other); err != nil {
		t.Fatalf("SetPhysicalAddress(Other) error = %v", err)
	}
	if err := d.SetPhysicalAddress(contacts.Home, home); err != nil {
		t.Fatalf("SetPhysicalAddress(Home) error = %v", err)
	}
	if home.Key() != contacts.Home {
		t.Errorf("Key() = %v, want Home", home.Key())
	}

	got := write(t, "PhysicalAddresses", d)
	want := `<t:PhysicalAddresses` + decls + `>` +
		`<t:Entry Key="Home"><t:Street>Rua Augusta 1</t:Street><t:City>Lisbon</t:City><t:PostalCode>1100-048</t:PostalCode></t:Entry>` +
		`<t:Entry Key="Other"><t:City>Porto</t:City></t:Entry>` +
		`</t:PhysicalAddresses>`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("write mismatch (-want +got):\n%s", diff)
	}

	back := contacts.NewPhysicalAddressDictionary()
	if err := read(got, "PhysicalAddresses", back); err != nil {
		t.Fatalf("read error = %v", err)
	}
	if diff := cmp.Diff([]contacts.PhysicalAddressKey{contacts.Home, contacts.Other}, back.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
	if a := back.PhysicalAddress(contacts.Home); a == nil || a.City() != "Lisbon" || a.State() != "" {
		t.Errorf("PhysicalAddress(Home) = %+v", a)
	}
	if back.IsDirty() {
		t.Errorf("freshly read dictionary is dirty")
	}
}

func TestPhysicalAddressDictionary_ChangeTracking(t *testing.T) {
	d := contacts.NewPhysicalAddressDictionary()
	a := contacts.NewPhysicalAddress()
	if err := d.SetPhysicalAddress(contacts.Business, a); err != nil {
		t.Fatal(err)
	}
	d.MarkClean()

	a.SetCountryOrRegion("PT")
	if !d.IsDirty() {
		t.Fatalf("editing an entry did not dirty the dictionary")
	}
	changed, removed := d.Changes()
	if diff := cmp.Diff([]contacts.PhysicalAddressKey{contacts.Business}, changed); diff != "" {
		t.Errorf("changed mismatch (-want +got):\n%s", diff)
	}
	if len(removed) != 0 {
		t.Errorf("removed = %v, want none", removed)
	}

	d.MarkClean()
	if err := d.SetPhysicalAddress(contacts.Business, nil); err != nil {
		t.Fatal(err)
	}
	_, removed = d.Changes()
	if diff := cmp.Diff([]contacts.PhysicalAddressKey{contacts.Business}, removed); diff != "" {
		t.Errorf("removed mismatch (-want +got):\n%s", diff)
	}

	d.MarkClean()
	a.SetCity("Faro")
	if d.IsDirty() {
		t.Errorf("detached entry still notifies the dictionary")
	}
}

func TestPhysicalAddressDictionary_InvalidKey(t *testing.T) {
	d := contacts.NewPhysicalAddressDictionary()
	err := d.SetPhysicalAddress(contacts.PhysicalAddressKey(5), contacts.NewPhysicalAddress())
	var aerr *errors.ArgumentError
	if !stderrors.As(err, &aerr) {
		t.Errorf("SetPhysicalAddress(5) error = %v, want *errors.ArgumentError", err)
	}
}

func TestPhysicalAddressDictionary_UnknownKeyOnRead(t *testing.T) {
	doc := `<t:PhysicalAddresses` + decls + `><t:Entry Key="Work"><t:City>X</t:City></t:Entry></t:PhysicalAddresses>`
	err := read(doc, "PhysicalAddresses", contacts.NewPhysicalAddressDictionary())
	var uerr *errors.UnmarshalError
	if !stderrors.As(err, &uerr) {
		t.Errorf("read error = %v, want *errors.UnmarshalError", err)
	}
}

func TestEmailAddressDictionary_RoundTrip(t *testing.T) {
	doc := `<t:EmailAddresses` + decls + `>` +
		`<t:Entry Key="EmailAddress1" Name="Ana Silva" RoutingType="SMTP">ana@example.com</t:Entry>` +
		`<t:Entry Key="EmailAddress3">ana.home@example.net</t:Entry>` +
		`</t:EmailAddresses>`

	d := contacts.NewEmailAddressDictionary()
	if err := read(doc, "EmailAddresses", d); err != nil {
		t.Fatalf("read error = %v", err)
	}

	tests := []struct {
		key   contacts.EmailAddressKey
		want  string
		found bool
	}{
		{contacts.EmailAddress1, "ana@example.com", true},
		{contacts.EmailAddress2, "", false},
		{contacts.EmailAddress3, "ana.home@example.net", true},
	}
	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			got, ok := d.EmailAddress(tt.key)
			if ok != tt.found || got != tt.want {
				t.Errorf("EmailAddress() = %q, %v, want %q, %v", got, ok, tt.want, tt.found)
			}
		})
	}
	if e := d.Get(contacts.EmailAddress1); e.Name() != "Ana Silva" || e.RoutingType() != "SMTP" {
		t.Errorf("entry attributes = %q, %q", e.Name(), e.RoutingType())
	}

	if got := write(t, "EmailAddresses", d); got != doc {
		t.Errorf("round trip =\n%s\nwant\n%s", got, doc)
	}
}

func TestEmailAddressDictionary_SetEmailAddress(t *testing.T) {
	d := contacts.NewEmailAddressDictionary()
	if err := d.SetEmailAddress(contacts.EmailAddress2, "a@example.com"); err != nil {
		t.Fatal(err)
	}
	e := d.Get(contacts.EmailAddress2)
	e.SetName("A")
	d.MarkClean()

	if err := d.SetEmailAddress(contacts.EmailAddress2, "a@example.com"); err != nil {
		t.Fatal(err)
	}
	if d.IsDirty() {
		t.Errorf("setting the same address dirtied the dictionary")
	}

	if err := d.SetEmailAddress(contacts.EmailAddress2, "b@example.com"); err != nil {
		t.Fatal(err)
	}
	if d.Get(contacts.EmailAddress2) != e || e.Name() != "A" {
		t.Errorf("SetEmailAddress replaced the entry instead of updating it")
	}

	if err := d.SetEmailAddress(contacts.EmailAddress2, ""); err != nil {
		t.Fatal(err)
	}
	if d.Len() != 0 {
		t.Errorf("Len() = %d after clearing, want 0", d.Len())
	}
}
