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

package property_test

import (
	stderrors "errors"
	"testing"

	"dirpx.dev/dxews/dxcore/errors"
	"github.com/google/go-cmp/cmp"
)

func TestDictionary_SetStampsKey(t *testing.T) {
	d := newSlots()
	e := labelled("x")

	if err := d.Set(slotC, e); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if e.Key() != slotC {
		t.Errorf("entry key = %v, want %v", e.Key(), slotC)
	}

	if err := d.Set(slotA, e); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	for _, k := range d.Keys() {
		if got := d.Get(k).Key(); got != k {
			t.Errorf("entry under %v carries key %v", k, got)
		}
	}
	if _, ok := d.TryGet(slotC); ok {
		t.Errorf("moving an entry left it under its old key")
	}
}

func TestDictionary_SetNilRemoves(t *testing.T) {
	d := newSlots()

	if err := d.Set(slotB, nil); err != nil {
		t.Fatalf("Set(absent, nil) error = %v", err)
	}
	if d.Get(slotB) != nil || d.IsDirty() {
		t.Errorf("removing an absent key changed the dictionary")
	}

	_ = d.Set(slotB, labelled("b"))
	_ = d.Set(slotB, nil)
	if v, ok := d.TryGet(slotB); ok || v != nil {
		t.Errorf("TryGet() after removal = %v, %v", v, ok)
	}
	_, removed := d.Changes()
	if diff := cmp.Diff([]slot{slotB}, removed); diff != "" {
		t.Errorf("removed keys mismatch (-want +got):\n%s", diff)
	}
}

func TestDictionary_InvalidKey(t *testing.T) {
	d := newSlots()
	var aerr *errors.ArgumentError
	if err := d.Set(slot(9), labelled("x")); !stderrors.As(err, &aerr) {
		t.Errorf("Set(9) error = %v, want *errors.ArgumentError", err)
	}
}

func TestDictionary_WritesInKeyOrder(t *testing.T) {
	d := newSlots()
	_ = d.Set(slotC, labelled("c"))
	_ = d.Set(slotA, labelled("a"))
	_ = d.Set(slotB, labelled("b"))
	_ = d.Set(slotA, labelled("a2"))

	want := `<t:Slots` + decls + `>` +
		`<t:Entry Key="A"><t:Label>a2</t:Label></t:Entry>` +
		`<t:Entry Key="B"><t:Label>b</t:Label></t:Entry>` +
		`<t:Entry Key="C"><t:Label>c</t:Label></t:Entry>` +
		`</t:Slots>`
	got := render(t, "Slots", d)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("write mismatch (-want +got):\n%s", diff)
	}

	back := newSlots()
	if err := parse(got, "Slots", back); err != nil {
		t.Fatalf("ReadRoot() error = %v", err)
	}
	if diff := cmp.Diff([]slot{slotA, slotB, slotC}, back.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
	if back.IsDirty() {
		t.Errorf("entries read from the wire marked the dictionary dirty")
	}
}

func TestDictionary_ReadRejectsBadKeys(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing", `<t:Slots` + decls + `><t:Entry><t:Label>x</t:Label></t:Entry></t:Slots>`},
		{"unknown", `<t:Slots` + decls + `><t:Entry Key="Z"><t:Label>x</t:Label></t:Entry></t:Slots>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newSlots()
			err := parse(tt.doc, "Slots", d)
			var uerr *errors.UnmarshalError
			if !stderrors.As(err, &uerr) {
				t.Fatalf("ReadRoot() error = %v, want *errors.UnmarshalError", err)
			}
			if d.Len() != 0 {
				t.Errorf("Len() = %d after failed read, want 0", d.Len())
			}
		})
	}
}

func TestDictionary_EntryChangesAreTracked(t *testing.T) {
	root := &counter{}
	d := newSlots()
	d.SetOwner(root)
	_ = d.Set(slotA, labelled("a"))
	_ = d.Set(slotB, labelled("b"))
	d.MarkClean()

	d.Get(slotB).SetLabel("b2")
	changed, removed := d.Changes()
	if diff := cmp.Diff([]slot{slotB}, changed); diff != "" {
		t.Errorf("changed keys mismatch (-want +got):\n%s", diff)
	}
	if len(removed) != 0 {
		t.Errorf("removed = %v, want none", removed)
	}
	if !d.IsDirty() || root.n != 2 {
		t.Errorf("dirty = %v, notifications = %d, want true, 2", d.IsDirty(), root.n)
	}

	same := d.Get(slotA)
	d.MarkClean()
	_ = d.Set(slotA, same)
	if d.IsDirty() {
		t.Errorf("re-setting the same entry marked the dictionary dirty")
	}
}

func TestDictionary_SetRejectsEntryOwnedElsewhere(t *testing.T) {
	first, second := newSlots(), newSlots()
	e := labelled("x")
	if err := first.Set(slotA, e); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	var aerr *errors.ArgumentError
	if err := second.Set(slotB, e); !stderrors.As(err, &aerr) {
		t.Fatalf("Set() of an owned entry error = %v, want *errors.ArgumentError", err)
	}
	if e.Key() != slotA {
		t.Errorf("rejected Set() restamped the key to %v", e.Key())
	}
	if second.Len() != 0 {
		t.Errorf("Len() = %d after rejected Set(), want 0", second.Len())
	}

	first.MarkClean()
	e.SetLabel("y")
	if !first.IsDirty() {
		t.Errorf("entry stopped notifying its dictionary after a rejected Set()")
	}

	_ = first.Set(slotA, nil)
	if err := second.Set(slotB, e); err != nil {
		t.Fatalf("Set() after removal error = %v", err)
	}
	if e.Key() != slotB {
		t.Errorf("entry key = %v, want %v", e.Key(), slotB)
	}
}
